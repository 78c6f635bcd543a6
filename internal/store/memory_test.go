package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore() *MemoryStore {
	return NewMemory(Seed())
}

func TestAddPostPrepends(t *testing.T) {
	s := newTestStore()

	post := Post{
		ID:        "new-post",
		AuthorID:  "2",
		Content:   "Fresh off the press",
		Status:    StatusPending,
		CreatedAt: time.Now(),
		Likes:     []string{},
		Comments:  []Comment{},
		Type:      TypePost,
	}
	if err := s.AddPost(post); err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}

	posts := s.Posts()
	if posts[0].ID != "new-post" {
		t.Errorf("expected new post first, got %s", posts[0].ID)
	}
}

func TestAddPostRequiresContent(t *testing.T) {
	s := newTestStore()

	err := s.AddPost(Post{ID: "empty", AuthorID: "2", Status: StatusPending})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	// An image alone is enough.
	err = s.AddPost(Post{ID: "img-only", AuthorID: "2", Image: "/assets/x.png", Status: StatusPending})
	if err != nil {
		t.Errorf("image-only post rejected: %v", err)
	}
}

func TestLikePostToggles(t *testing.T) {
	s := newTestStore()

	if err := s.LikePost("3", "2"); err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	post, err := s.GetPost("3")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if len(post.Likes) != 1 || post.Likes[0] != "2" {
		t.Errorf("expected likes [2], got %v", post.Likes)
	}

	// Second like from the same user removes the first.
	if err := s.LikePost("3", "2"); err != nil {
		t.Fatalf("second like failed: %v", err)
	}
	post, _ = s.GetPost("3")
	if len(post.Likes) != 0 {
		t.Errorf("expected no likes after toggle, got %v", post.Likes)
	}
}

func TestLikePostNotFound(t *testing.T) {
	s := newTestStore()

	err := s.LikePost("missing", "2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLikeCommentToggles(t *testing.T) {
	s := newTestStore()

	// Seed comment "1" on post "1" starts liked by users 1 and 3.
	if err := s.LikeComment("1", "1", "4"); err != nil {
		t.Fatalf("LikeComment failed: %v", err)
	}
	post, _ := s.GetPost("1")
	if len(post.Comments[0].Likes) != 3 {
		t.Errorf("expected 3 likes, got %v", post.Comments[0].Likes)
	}

	if err := s.LikeComment("1", "1", "4"); err != nil {
		t.Fatalf("LikeComment toggle failed: %v", err)
	}
	post, _ = s.GetPost("1")
	if len(post.Comments[0].Likes) != 2 {
		t.Errorf("expected 2 likes after toggle, got %v", post.Comments[0].Likes)
	}
}

func TestLikeCommentMissingComment(t *testing.T) {
	s := newTestStore()

	err := s.LikeComment("1", "missing", "4")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCommentAppends(t *testing.T) {
	s := newTestStore()

	comment := Comment{
		ID:        "c-new",
		AuthorID:  "3",
		Content:   "Great news",
		CreatedAt: time.Now(),
		Likes:     []string{},
	}
	if err := s.AddComment("1", comment); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	post, _ := s.GetPost("1")
	if len(post.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(post.Comments))
	}
	if post.Comments[1].ID != "c-new" {
		t.Errorf("expected new comment last, got %s", post.Comments[1].ID)
	}
}

func TestAddCommentValidation(t *testing.T) {
	s := newTestStore()

	err := s.AddComment("1", Comment{ID: "c-empty", AuthorID: "3"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty content, got %v", err)
	}

	err = s.AddComment("missing", Comment{ID: "c-x", AuthorID: "3", Content: "hi"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing post, got %v", err)
	}
}

func TestApproveAndRejectPost(t *testing.T) {
	s := newTestStore()

	if err := s.ApprovePost("3"); err != nil {
		t.Fatalf("ApprovePost failed: %v", err)
	}
	post, _ := s.GetPost("3")
	if post.Status != StatusApproved {
		t.Errorf("expected approved, got %s", post.Status)
	}

	// Rejecting an approved post still sets the status; the engine keeps
	// moderation writes unconditional.
	if err := s.RejectPost("3"); err != nil {
		t.Fatalf("RejectPost failed: %v", err)
	}
	post, _ = s.GetPost("3")
	if post.Status != StatusRejected {
		t.Errorf("expected rejected, got %s", post.Status)
	}

	if err := s.ApprovePost("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddMessageForcesUnread(t *testing.T) {
	s := newTestStore()

	message := Message{
		ID:         "m-new",
		SenderID:   "1",
		ReceiverID: "2",
		Content:    "ping",
		Timestamp:  time.Now(),
		Read:       true,
	}
	if err := s.AddMessage(message); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	messages := s.Messages()
	last := messages[len(messages)-1]
	if last.Read {
		t.Error("new message must start unread regardless of input")
	}
}

func TestAddMessageRequiresContent(t *testing.T) {
	s := newTestStore()

	err := s.AddMessage(Message{ID: "m-x", SenderID: "1", ReceiverID: "2"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestMarkMessageAsReadIdempotent(t *testing.T) {
	s := newTestStore()

	if err := s.MarkMessageAsRead("1"); err != nil {
		t.Fatalf("MarkMessageAsRead failed: %v", err)
	}
	if err := s.MarkMessageAsRead("1"); err != nil {
		t.Fatalf("second MarkMessageAsRead failed: %v", err)
	}

	for _, m := range s.Messages() {
		if m.ID == "1" && !m.Read {
			t.Error("message 1 should be read")
		}
	}

	if err := s.MarkMessageAsRead("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUsersLifecycle(t *testing.T) {
	s := newTestStore()

	user := User{
		ID:        "5",
		FirstName: "Lina",
		LastName:  "Ben Salah",
		Email:     "lina.bensalah@company.com",
		Role:      RoleEmployee,
		IsActive:  true,
	}
	if err := s.AddUser(user); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	got, err := s.GetUserByEmail("lina.bensalah@company.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != "5" {
		t.Errorf("expected user 5, got %s", got.ID)
	}

	if err := s.RemoveUser("5"); err != nil {
		t.Fatalf("RemoveUser failed: %v", err)
	}
	if _, err := s.GetUserByID("5"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after removal, got %v", err)
	}

	if err := s.RemoveUser("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddEventValidation(t *testing.T) {
	s := newTestStore()

	err := s.AddEvent(Event{ID: "e-x", Date: time.Now()})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for missing title, got %v", err)
	}

	err = s.AddEvent(Event{
		ID:           "e-new",
		Title:        "Retro",
		Date:         time.Now().Add(48 * time.Hour),
		Time:         "15:00",
		Type:         EventMeeting,
		Attendees:    []string{},
		ReminderDays: 1,
		CreatedBy:    "1",
	})
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	if len(s.Events()) != 4 {
		t.Errorf("expected 4 events, got %d", len(s.Events()))
	}
}

func TestReadersReturnCopies(t *testing.T) {
	s := newTestStore()

	posts := s.Posts()
	posts[0].Content = "mutated"
	posts[0].Likes = append(posts[0].Likes, "999")

	fresh, _ := s.GetPost(posts[0].ID)
	if fresh.Content == "mutated" {
		t.Error("caller mutation leaked into the store")
	}
	for _, id := range fresh.Likes {
		if id == "999" {
			t.Error("likes slice shared with caller")
		}
	}
}
