// Package chat derives per-counterpart conversations from the flat
// message collection. Conversations are never stored; every read
// recomputes from the current messages.
package chat

import (
	"sort"
	"strings"

	"talkspot/api/internal/store"
)

// Conversation is the derived view of all traffic between the viewer and
// one counterpart, keyed by the counterpart's user id.
type Conversation struct {
	ID          string
	User        store.User
	Messages    []store.Message
	LastMessage *store.Message
	UnreadCount int
}

func (c Conversation) HasMessages() bool {
	return len(c.Messages) > 0
}

// Conversations builds one candidate conversation per user other than the
// viewer. Messages are ordered by timestamp ascending; ties keep
// insertion order, so append-only storage stays stable.
func Conversations(users []store.User, messages []store.Message, viewerID string) []Conversation {
	conversations := make([]Conversation, 0, len(users))
	for _, other := range users {
		if other.ID == viewerID {
			continue
		}

		var pair []store.Message
		unread := 0
		for _, m := range messages {
			betweenPair := (m.SenderID == viewerID && m.ReceiverID == other.ID) ||
				(m.SenderID == other.ID && m.ReceiverID == viewerID)
			if !betweenPair {
				continue
			}
			pair = append(pair, m)
			if m.ReceiverID == viewerID && !m.Read {
				unread++
			}
		}
		sort.SliceStable(pair, func(i, j int) bool {
			return pair[i].Timestamp.Before(pair[j].Timestamp)
		})

		conversation := Conversation{
			ID:          other.ID,
			User:        other,
			Messages:    pair,
			UnreadCount: unread,
		}
		if len(pair) > 0 {
			last := pair[len(pair)-1]
			conversation.LastMessage = &last
		}
		conversations = append(conversations, conversation)
	}
	return conversations
}

// FilterList applies the conversation-list rule: keep a conversation when
// it has messages, or when the counterpart's first name matches the
// search term. An empty term keeps only conversations with messages.
func FilterList(conversations []Conversation, term string) []Conversation {
	needle := strings.ToLower(strings.TrimSpace(term))
	filtered := make([]Conversation, 0, len(conversations))
	for _, conversation := range conversations {
		if conversation.HasMessages() {
			filtered = append(filtered, conversation)
			continue
		}
		if needle != "" && strings.Contains(strings.ToLower(conversation.User.FirstName), needle) {
			filtered = append(filtered, conversation)
		}
	}
	return filtered
}

type readMarker interface {
	MarkMessageAsRead(id string) error
}

// MarkRead marks every unread incoming message of the conversation, one
// call per message. Each mark is idempotent, so there is no partial
// failure to recover from. Returns the number of messages marked.
func MarkRead(marker readMarker, conversation Conversation, viewerID string) int {
	marked := 0
	for _, m := range conversation.Messages {
		if m.ReceiverID == viewerID && !m.Read {
			if err := marker.MarkMessageAsRead(m.ID); err == nil {
				marked++
			}
		}
	}
	return marked
}
