package store

import "time"

// Seed returns the demo dataset used when no persistence collaborator is
// configured: four directory entries, a small feed, three events and an
// open conversation with the admin.
func Seed() Snapshot {
	return Snapshot{
		Users: []User{
			{
				ID:         "1",
				FirstName:  "Admin",
				LastName:   "User",
				Email:      "admin@company.com",
				Phone:      "+1234567890",
				Position:   "System Administrator",
				Department: "IT",
				HireDate:   "2020-01-15",
				BirthDate:  "1985-03-20",
				Avatar:     "/assets/admin.png",
				Role:       RoleAdmin,
				IsActive:   true,
			},
			{
				ID:         "2",
				FirstName:  "Nour",
				LastName:   "Touihri",
				Email:      "nour.touihri@company.com",
				Phone:      "+1234567891",
				Position:   "Marketing Manager",
				Department: "Marketing",
				HireDate:   "2021-06-10",
				BirthDate:  "1990-07-15",
				Avatar:     "/assets/nour.jpg",
				Role:       RoleEmployee,
				IsActive:   true,
			},
			{
				ID:         "3",
				FirstName:  "Chifa",
				LastName:   "Guesmi",
				Email:      "chifa.guesmi@company.com",
				Phone:      "+1234567892",
				Position:   "Software Developer",
				Department: "Engineering",
				HireDate:   "2022-03-01",
				BirthDate:  "1988-11-30",
				Avatar:     "/assets/chifa.jpeg",
				Role:       RoleEmployee,
				IsActive:   true,
			},
			{
				ID:         "4",
				FirstName:  "Mohamed",
				LastName:   "Jaouadi",
				Email:      "mohamed.jaouadi@company.com",
				Phone:      "+1234567893",
				Position:   "HR Specialist",
				Department: "Human Resources",
				HireDate:   "2021-09-20",
				BirthDate:  "1992-05-08",
				Avatar:     "/assets/mohamed.jpg",
				Role:       RoleEmployee,
				IsActive:   true,
			},
		},
		Posts: []Post{
			{
				ID:        "1",
				AuthorID:  "1",
				Content:   "Welcome to TalkSpot! We are excited to launch our new internal platform to enhance communication and collaboration across our organization.",
				Status:    StatusApproved,
				CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
				Likes:     []string{"2", "3", "4"},
				Comments: []Comment{
					{
						ID:        "1",
						AuthorID:  "2",
						Content:   "This looks amazing! Can't wait to explore all the features.",
						CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
						Likes:     []string{"1", "3"},
					},
				},
				Type: TypeAnnouncement,
			},
			{
				ID:        "2",
				AuthorID:  "2",
				Content:   "Just finished presenting our Q1 marketing strategy. Exciting times ahead for our product launches!",
				Image:     "/assets/q1-strategy.jpg",
				Status:    StatusApproved,
				CreatedAt: time.Date(2024, 1, 14, 15, 30, 0, 0, time.UTC),
				Likes:     []string{"1", "3"},
				Comments:  []Comment{},
				Type:      TypePost,
			},
			{
				ID:        "3",
				AuthorID:  "3",
				Content:   "Working on some exciting new features for our platform. Stay tuned for updates!",
				Status:    StatusPending,
				CreatedAt: time.Date(2024, 1, 14, 9, 15, 0, 0, time.UTC),
				Likes:     []string{},
				Comments:  []Comment{},
				Type:      TypePost,
			},
		},
		Events: []Event{
			{
				ID:          "1",
				Title:       "Team All-Hands Meeting",
				Description: "Monthly team meeting to discuss progress and upcoming projects",
				Date:        time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
				Time:        "14:00",
				Location:    "Conference Room A",
				Type:         EventMeeting,
				Attendees:    []string{"1", "2", "3", "4"},
				ReminderDays: 2,
				CreatedBy:    "1",
			},
			{
				ID:          "2",
				Title:       "Chifa's Birthday",
				Description: "Celebrating Chifa's birthday!",
				Date:        time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				Time:        "12:00",
				Location:    "Break Room",
				Type:         EventBirthday,
				Attendees:    []string{"1", "2", "3", "4"},
				ReminderDays: 1,
				CreatedBy:    "1",
			},
			{
				ID:          "3",
				Title:       "Product Launch Training",
				Description: "Training session for the new product launch",
				Date:        time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
				Time:        "10:00",
				Location:    "Training Room",
				Type:         EventTraining,
				Attendees:    []string{"2", "3"},
				ReminderDays: 3,
				CreatedBy:    "1",
			},
		},
		Messages: []Message{
			{
				ID:         "1",
				SenderID:   "2",
				ReceiverID: "1",
				Content:    "Hi Admin, I have a question about the new policy updates.",
				Timestamp:  time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
				Read:       false,
			},
			{
				ID:         "2",
				SenderID:   "1",
				ReceiverID: "2",
				Content:    "Sure, I'd be happy to help! What specific policy are you asking about?",
				Timestamp:  time.Date(2024, 1, 15, 9, 45, 0, 0, time.UTC),
				Read:       true,
			},
			{
				ID:         "3",
				SenderID:   "3",
				ReceiverID: "1",
				Content:    "The new feature deployment is ready for review.",
				Timestamp:  time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
				Read:       false,
			},
		},
	}
}
