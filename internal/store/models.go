package store

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// PostStatus is the moderation lifecycle tag controlling feed visibility.
type PostStatus string

const (
	StatusPending  PostStatus = "pending"
	StatusApproved PostStatus = "approved"
	StatusRejected PostStatus = "rejected"
)

type PostType string

const (
	TypePost         PostType = "post"
	TypeAnnouncement PostType = "announcement"
	TypeShare        PostType = "share"
)

type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventTraining EventType = "training"
	EventCompany  EventType = "company"
	EventBirthday EventType = "birthday"
)

type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`
	// Profile dates kept as YYYY-MM-DD strings; nothing in the engine
	// computes with them.
	HireDate  string `json:"hireDate"`
	BirthDate string `json:"birthDate"`
	Avatar    string `json:"avatar"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"isActive"`
}

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     []string  `json:"likes"`
}

type Post struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"authorId"`
	Content   string     `json:"content"`
	Image     string     `json:"image,omitempty"`
	Link      string     `json:"link,omitempty"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	Likes     []string   `json:"likes"`
	Comments  []Comment  `json:"comments"`
	Type      PostType   `json:"type"`
	// ParentID references the original post for type "share".
	ParentID string `json:"parentId,omitempty"`
}

type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Location     string    `json:"location,omitempty"`
	Type         EventType `json:"type"`
	Attendees    []string  `json:"attendees"`
	ReminderDays int       `json:"reminderDays"`
	CreatedBy    string    `json:"createdBy"`
}

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// Snapshot is the startup payload handed to the in-memory store by a
// persistence collaborator (Postgres loader or the built-in seed).
type Snapshot struct {
	Users    []User
	Posts    []Post
	Events   []Event
	Messages []Message
}
