// Package notify computes the unified notification feed for a viewer.
// The aggregation is stateless: every call recomputes from the current
// collections, so approval notifications re-fire for all historically
// approved posts rather than only on the approval edge.
package notify

import (
	"fmt"
	"time"

	"talkspot/api/internal/store"
)

// ReminderWindow is how far ahead event reminders look. The per-event
// reminderDays field is captured in the model but deliberately not
// consulted here; the header bell always shows a 3-day horizon.
const ReminderWindow = 3 * 24 * time.Hour

// Notification is a single derived feed item. Never persisted.
type Notification struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Feed groups notifications by source. All() concatenates the categories
// in the order the header renders its tabs.
type Feed struct {
	Events    []Notification
	Feed      []Notification
	Approvals []Notification
	Messages  []Notification
}

func (f Feed) All() []Notification {
	all := make([]Notification, 0, len(f.Events)+len(f.Feed)+len(f.Approvals)+len(f.Messages))
	all = append(all, f.Events...)
	all = append(all, f.Feed...)
	all = append(all, f.Approvals...)
	all = append(all, f.Messages...)
	return all
}

// Count is the badge value on the notification bell.
func (f Feed) Count() int {
	return len(f.Events) + len(f.Feed) + len(f.Approvals) + len(f.Messages)
}

// Aggregate builds the four categories for the viewer at the given
// instant. It never fails; unknown authors degrade to "Someone".
func Aggregate(users []store.User, posts []store.Post, events []store.Event, messages []store.Message, viewerID string, now time.Time) Feed {
	firstName := func(userID string) string {
		for _, user := range users {
			if user.ID == userID {
				return user.FirstName
			}
		}
		return "Someone"
	}

	var feed Feed

	for _, event := range events {
		away := event.Date.Sub(now)
		if away >= 0 && away <= ReminderWindow {
			feed.Events = append(feed.Events, Notification{
				ID:   event.ID,
				Text: fmt.Sprintf("Reminder: %s on %s", event.Title, formatDate(event.Date)),
			})
		}
	}

	for _, post := range posts {
		if post.AuthorID != viewerID {
			continue
		}
		for _, likerID := range post.Likes {
			if likerID == viewerID {
				continue
			}
			feed.Feed = append(feed.Feed, Notification{
				ID:   fmt.Sprintf("like-%s-%s", post.ID, likerID),
				Text: fmt.Sprintf("%s liked your post", firstName(likerID)),
			})
		}
		for _, comment := range post.Comments {
			if comment.AuthorID == viewerID {
				continue
			}
			feed.Feed = append(feed.Feed, Notification{
				ID:   "c-" + comment.ID,
				Text: fmt.Sprintf("%s commented on your post", firstName(comment.AuthorID)),
			})
		}
		if post.Status == store.StatusApproved {
			feed.Approvals = append(feed.Approvals, Notification{
				ID:   "app-" + post.ID,
				Text: "Your post was approved",
			})
		}
	}

	for _, message := range messages {
		if message.ReceiverID != viewerID || message.Read {
			continue
		}
		feed.Messages = append(feed.Messages, Notification{
			ID:   "msg-" + message.ID,
			Text: fmt.Sprintf("New message from %s", firstName(message.SenderID)),
		})
	}

	return feed
}

func formatDate(date time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(date.Month()), date.Day(), date.Year())
}
