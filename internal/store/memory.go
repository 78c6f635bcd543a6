// Package store owns the canonical collections of the collaboration
// engine. All mutations go through MemoryStore; every derived view
// (conversations, notifications, search) recomputes from its accessors.
package store

import (
	"fmt"
	"strings"
	"sync"
)

// MemoryStore holds users, posts, events and messages for the process
// lifetime. Mutations fail fast and leave the collections untouched on
// ErrNotFound / ErrInvalidArgument.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []User
	posts    []Post
	events   []Event
	messages []Message
}

func NewMemory(snapshot Snapshot) *MemoryStore {
	s := &MemoryStore{
		users:    make([]User, len(snapshot.Users)),
		posts:    make([]Post, len(snapshot.Posts)),
		events:   make([]Event, len(snapshot.Events)),
		messages: make([]Message, len(snapshot.Messages)),
	}
	copy(s.users, snapshot.Users)
	for i, p := range snapshot.Posts {
		s.posts[i] = clonePost(p)
	}
	for i, e := range snapshot.Events {
		s.events[i] = cloneEvent(e)
	}
	copy(s.messages, snapshot.Messages)
	return s
}

// === Users ===

func (s *MemoryStore) AddUser(user User) error {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("user id and email are required: %w", ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ID == user.ID || strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("user %s already exists: %w", user.ID, ErrInvalidArgument)
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *MemoryStore) RemoveUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, len(s.users))
	copy(users, s.users)
	return users
}

func (s *MemoryStore) GetUserByID(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) GetUserByEmail(email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

// === Posts ===

// AddPost prepends the post so the newest entry renders first. The caller
// derives Status via the moderation rules before calling; the store does
// not re-derive it.
func (s *MemoryStore) AddPost(post Post) error {
	if strings.TrimSpace(post.ID) == "" {
		return fmt.Errorf("post id is required: %w", ErrInvalidArgument)
	}
	if strings.TrimSpace(post.Content) == "" && post.Image == "" && post.Link == "" {
		return fmt.Errorf("post needs content, an image or a link: %w", ErrInvalidArgument)
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []Comment{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]Post{post}, s.posts...)
	return nil
}

func (s *MemoryStore) GetPost(id string) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, post := range s.posts {
		if post.ID == id {
			return clonePost(post), nil
		}
	}
	return Post{}, fmt.Errorf("post %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]Post, len(s.posts))
	for i, post := range s.posts {
		posts[i] = clonePost(post)
	}
	return posts
}

// AddComment appends to the post's comment sequence; insertion order is
// display order.
func (s *MemoryStore) AddComment(postID string, comment Comment) error {
	if strings.TrimSpace(comment.Content) == "" {
		return fmt.Errorf("comment content is required: %w", ErrInvalidArgument)
	}
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].Comments = append(s.posts[i].Comments, comment)
			return nil
		}
	}
	return fmt.Errorf("post %s: %w", postID, ErrNotFound)
}

// LikePost toggles userID in the post's like set: present removes, absent
// adds. Two successive calls restore the original set.
func (s *MemoryStore) LikePost(postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].Likes = toggle(s.posts[i].Likes, userID)
			return nil
		}
	}
	return fmt.Errorf("post %s: %w", postID, ErrNotFound)
}

func (s *MemoryStore) LikeComment(postID, commentID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		for j := range s.posts[i].Comments {
			if s.posts[i].Comments[j].ID == commentID {
				s.posts[i].Comments[j].Likes = toggle(s.posts[i].Comments[j].Likes, userID)
				return nil
			}
		}
		return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}
	return fmt.Errorf("post %s: %w", postID, ErrNotFound)
}

// ApprovePost sets the status unconditionally; re-approving an already
// terminal post is accepted.
func (s *MemoryStore) ApprovePost(postID string) error {
	return s.setPostStatus(postID, StatusApproved)
}

func (s *MemoryStore) RejectPost(postID string) error {
	return s.setPostStatus(postID, StatusRejected)
}

func (s *MemoryStore) setPostStatus(postID string, status PostStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("post %s: %w", postID, ErrNotFound)
}

// === Events ===

func (s *MemoryStore) AddEvent(event Event) error {
	if strings.TrimSpace(event.ID) == "" || strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("event id and title are required: %w", ErrInvalidArgument)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("event date is required: %w", ErrInvalidArgument)
	}
	if event.ReminderDays < 1 {
		return fmt.Errorf("reminderDays must be at least 1: %w", ErrInvalidArgument)
	}
	if event.Attendees == nil {
		event.Attendees = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.events))
	for i, event := range s.events {
		events[i] = cloneEvent(event)
	}
	return events
}

// === Messages ===

// AddMessage appends the message; read always starts false, only the
// receiver flips it via MarkMessageAsRead.
func (s *MemoryStore) AddMessage(message Message) error {
	if strings.TrimSpace(message.ID) == "" {
		return fmt.Errorf("message id is required: %w", ErrInvalidArgument)
	}
	if strings.TrimSpace(message.Content) == "" {
		return fmt.Errorf("message content is required: %w", ErrInvalidArgument)
	}
	message.Read = false
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *MemoryStore) MarkMessageAsRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("message %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// Empty reports whether the store holds no users at all; used at startup
// to decide whether to seed.
func (s *MemoryStore) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) == 0
}

func toggle(set []string, member string) []string {
	for i, existing := range set {
		if existing == member {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, member)
}

func clonePost(post Post) Post {
	cloned := post
	cloned.Likes = append([]string{}, post.Likes...)
	cloned.Comments = make([]Comment, len(post.Comments))
	for i, comment := range post.Comments {
		cloned.Comments[i] = comment
		cloned.Comments[i].Likes = append([]string{}, comment.Likes...)
	}
	return cloned
}

func cloneEvent(event Event) Event {
	cloned := event
	cloned.Attendees = append([]string{}, event.Attendees...)
	return cloned
}
