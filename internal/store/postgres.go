package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to the optional snapshot database. The engine itself never
// writes back; Postgres only supplies the startup snapshot.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(10)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// LoadSnapshot reads the full collections from Postgres in display order.
func LoadSnapshot(ctx context.Context, db *sql.DB) (Snapshot, error) {
	var snapshot Snapshot

	users, err := loadUsers(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Users = users

	posts, err := loadPosts(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Posts = posts

	events, err := loadEvents(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Events = events

	messages, err := loadMessages(ctx, db)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Messages = messages

	return snapshot, nil
}

func loadUsers(ctx context.Context, db *sql.DB) ([]User, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, position, department,
		       hire_date, birth_date, avatar, role, is_active
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		var role string
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
			&user.Phone, &user.Position, &user.Department, &user.HireDate,
			&user.BirthDate, &user.Avatar, &role, &user.IsActive); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.Role = Role(role)
		users = append(users, user)
	}
	return users, rows.Err()
}

func loadPosts(ctx context.Context, db *sql.DB) ([]Post, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, author_id, content, COALESCE(image, ''), COALESCE(link, ''),
		       status, created_at, type, COALESCE(parent_id, '')
		FROM posts
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	index := make(map[string]int)
	for rows.Next() {
		var post Post
		var status, postType string
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Content, &post.Image,
			&post.Link, &status, &post.CreatedAt, &postType, &post.ParentID); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		post.Status = PostStatus(status)
		post.Type = PostType(postType)
		post.Likes = []string{}
		post.Comments = []Comment{}
		index[post.ID] = len(posts)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadPostLikes(ctx, db, posts, index); err != nil {
		return nil, err
	}
	if err := loadComments(ctx, db, posts, index); err != nil {
		return nil, err
	}
	return posts, nil
}

func loadPostLikes(ctx context.Context, db *sql.DB, posts []Post, index map[string]int) error {
	rows, err := db.QueryContext(ctx, `
		SELECT post_id, user_id FROM post_likes ORDER BY post_id, liked_at`)
	if err != nil {
		return fmt.Errorf("load post likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, userID string
		if err := rows.Scan(&postID, &userID); err != nil {
			return fmt.Errorf("scan post like: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Likes = append(posts[i].Likes, userID)
		}
	}
	return rows.Err()
}

func loadComments(ctx context.Context, db *sql.DB, posts []Post, index map[string]int) error {
	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at
		FROM comments c
		ORDER BY c.post_id, c.created_at`)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()

	commentIndex := make(map[string][2]int)
	for rows.Next() {
		var comment Comment
		var postID string
		if err := rows.Scan(&comment.ID, &postID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		comment.Likes = []string{}
		i, ok := index[postID]
		if !ok {
			continue
		}
		commentIndex[comment.ID] = [2]int{i, len(posts[i].Comments)}
		posts[i].Comments = append(posts[i].Comments, comment)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	likeRows, err := db.QueryContext(ctx, `
		SELECT comment_id, user_id FROM comment_likes ORDER BY comment_id, liked_at`)
	if err != nil {
		return fmt.Errorf("load comment likes: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var commentID, userID string
		if err := likeRows.Scan(&commentID, &userID); err != nil {
			return fmt.Errorf("scan comment like: %w", err)
		}
		if pos, ok := commentIndex[commentID]; ok {
			comment := &posts[pos[0]].Comments[pos[1]]
			comment.Likes = append(comment.Likes, userID)
		}
	}
	return likeRows.Err()
}

func loadEvents(ctx context.Context, db *sql.DB) ([]Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, event_date, event_time,
		       COALESCE(location, ''), type, reminder_days, created_by
		FROM events
		ORDER BY event_date`)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var events []Event
	index := make(map[string]int)
	for rows.Next() {
		var event Event
		var eventType string
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.Date,
			&event.Time, &event.Location, &eventType, &event.ReminderDays,
			&event.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.Type = EventType(eventType)
		event.Attendees = []string{}
		index[event.ID] = len(events)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attendeeRows, err := db.QueryContext(ctx, `
		SELECT event_id, user_id FROM event_attendees ORDER BY event_id, joined_at`)
	if err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}
	defer attendeeRows.Close()

	for attendeeRows.Next() {
		var eventID, userID string
		if err := attendeeRows.Scan(&eventID, &userID); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		if i, ok := index[eventID]; ok {
			events[i].Attendees = append(events[i].Attendees, userID)
		}
	}
	return events, attendeeRows.Err()
}

func loadMessages(ctx context.Context, db *sql.DB) ([]Message, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, sent_at, read
		FROM messages
		ORDER BY sent_at`)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var message Message
		if err := rows.Scan(&message.ID, &message.SenderID, &message.ReceiverID,
			&message.Content, &message.Timestamp, &message.Read); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
