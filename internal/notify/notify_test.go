package notify

import (
	"testing"
	"time"

	"talkspot/api/internal/store"
)

var now = time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

func testUsers() []store.User {
	return []store.User{
		{ID: "1", FirstName: "Admin", LastName: "User"},
		{ID: "2", FirstName: "Nour", LastName: "Touihri"},
		{ID: "3", FirstName: "Chifa", LastName: "Guesmi"},
	}
}

func TestEventReminderWindow(t *testing.T) {
	events := []store.Event{
		{ID: "past", Title: "Yesterday", Date: now.Add(-24 * time.Hour)},
		{ID: "today", Title: "Today", Date: now},
		{ID: "edge", Title: "Exactly three days", Date: now.Add(72 * time.Hour)},
		{ID: "far", Title: "Four days out", Date: now.Add(96 * time.Hour)},
	}

	feed := Aggregate(testUsers(), nil, events, nil, "1", now)
	if len(feed.Events) != 2 {
		t.Fatalf("expected 2 reminders, got %d: %+v", len(feed.Events), feed.Events)
	}
	if feed.Events[0].ID != "today" || feed.Events[1].ID != "edge" {
		t.Errorf("unexpected reminder set: %+v", feed.Events)
	}
}

func TestEventReminderText(t *testing.T) {
	events := []store.Event{
		{ID: "1", Title: "Team All-Hands Meeting", Date: time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)},
	}
	feed := Aggregate(testUsers(), nil, events, nil, "1", now)
	if len(feed.Events) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(feed.Events))
	}
	want := "Reminder: Team All-Hands Meeting on 1/19/2024"
	if feed.Events[0].Text != want {
		t.Errorf("got %q, want %q", feed.Events[0].Text, want)
	}
}

func TestLikeNotifications(t *testing.T) {
	posts := []store.Post{
		{ID: "p1", AuthorID: "1", Content: "hello", Status: store.StatusPending, Likes: []string{"2", "1", "3"}},
	}

	feed := Aggregate(testUsers(), posts, nil, nil, "1", now)
	if len(feed.Feed) != 2 {
		t.Fatalf("expected 2 like notifications, got %d", len(feed.Feed))
	}
	// The author's own like never notifies.
	for _, n := range feed.Feed {
		if n.ID == "like-p1-1" {
			t.Error("self-like must not notify")
		}
	}
	if feed.Feed[0].ID != "like-p1-2" || feed.Feed[0].Text != "Nour liked your post" {
		t.Errorf("unexpected notification: %+v", feed.Feed[0])
	}
}

func TestCommentNotifications(t *testing.T) {
	posts := []store.Post{
		{ID: "p1", AuthorID: "1", Content: "hello", Status: store.StatusPending, Comments: []store.Comment{
			{ID: "c1", AuthorID: "3", Content: "nice"},
			{ID: "c2", AuthorID: "1", Content: "thanks"},
		}},
	}

	feed := Aggregate(testUsers(), posts, nil, nil, "1", now)
	if len(feed.Feed) != 1 {
		t.Fatalf("expected 1 comment notification, got %d", len(feed.Feed))
	}
	if feed.Feed[0].ID != "c-c1" || feed.Feed[0].Text != "Chifa commented on your post" {
		t.Errorf("unexpected notification: %+v", feed.Feed[0])
	}
}

func TestApprovalNotificationRefires(t *testing.T) {
	posts := []store.Post{
		{ID: "p1", AuthorID: "1", Content: "mine approved", Status: store.StatusApproved},
		{ID: "p2", AuthorID: "1", Content: "mine pending", Status: store.StatusPending},
		{ID: "p3", AuthorID: "2", Content: "theirs approved", Status: store.StatusApproved},
	}

	// The aggregation is stateless, so approved posts notify on every call.
	for i := 0; i < 2; i++ {
		feed := Aggregate(testUsers(), posts, nil, nil, "1", now)
		if len(feed.Approvals) != 1 {
			t.Fatalf("expected 1 approval notification, got %d", len(feed.Approvals))
		}
		if feed.Approvals[0].ID != "app-p1" || feed.Approvals[0].Text != "Your post was approved" {
			t.Errorf("unexpected notification: %+v", feed.Approvals[0])
		}
	}
}

func TestMessageNotifications(t *testing.T) {
	messages := []store.Message{
		{ID: "m1", SenderID: "2", ReceiverID: "1", Content: "hi", Read: false},
		{ID: "m2", SenderID: "3", ReceiverID: "1", Content: "yo", Read: true},
		{ID: "m3", SenderID: "1", ReceiverID: "2", Content: "out", Read: false},
	}

	feed := Aggregate(testUsers(), nil, nil, messages, "1", now)
	if len(feed.Messages) != 1 {
		t.Fatalf("expected 1 message notification, got %d", len(feed.Messages))
	}
	if feed.Messages[0].ID != "msg-m1" || feed.Messages[0].Text != "New message from Nour" {
		t.Errorf("unexpected notification: %+v", feed.Messages[0])
	}

	// Reading the message removes the notification on the next call.
	messages[0].Read = true
	feed = Aggregate(testUsers(), nil, nil, messages, "1", now)
	if len(feed.Messages) != 0 {
		t.Errorf("expected no message notifications after read, got %d", len(feed.Messages))
	}
}

func TestUnknownSenderFallsBackToSomeone(t *testing.T) {
	messages := []store.Message{
		{ID: "m1", SenderID: "ghost", ReceiverID: "1", Content: "boo", Read: false},
	}
	feed := Aggregate(testUsers(), nil, nil, messages, "1", now)
	if len(feed.Messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(feed.Messages))
	}
	if feed.Messages[0].Text != "New message from Someone" {
		t.Errorf("got %q", feed.Messages[0].Text)
	}
}

func TestAllConcatenatesInTabOrder(t *testing.T) {
	feed := Feed{
		Events:    []Notification{{ID: "e"}},
		Feed:      []Notification{{ID: "f"}},
		Approvals: []Notification{{ID: "a"}},
		Messages:  []Notification{{ID: "m"}},
	}
	all := feed.All()
	if len(all) != 4 || feed.Count() != 4 {
		t.Fatalf("expected 4 notifications, got %d / count %d", len(all), feed.Count())
	}
	order := []string{"e", "f", "a", "m"}
	for i, want := range order {
		if all[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, all[i].ID, want)
		}
	}
}
