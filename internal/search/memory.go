package search

import (
	"strings"

	"talkspot/api/internal/store"
)

// Memory scans the live collections with case-insensitive substring
// containment: event titles, employee first/last names, post content and
// comment text. No ranking or tokenization; hits keep collection order.
// Reading the store at query time keeps results fresh across mutations.
type Memory struct {
	store *store.MemoryStore
}

func NewMemory(dataStore *store.MemoryStore) *Memory {
	return &Memory{store: dataStore}
}

// Healthy always holds; the scanner has no external dependency.
func (m *Memory) Healthy() bool {
	return true
}

// Search returns empty category lists for a blank or whitespace query.
func (m *Memory) Search(q Query) (Results, error) {
	results := Results{
		Events:    []Result{},
		Employees: []Result{},
		Posts:     []Result{},
		Comments:  []Result{},
	}
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return results, nil
	}

	for _, event := range m.store.Events() {
		if containsFold(event.Title, needle) {
			results.Events = append(results.Events, Result{
				Type:  ResultEvent,
				ID:    event.ID,
				Title: event.Title,
			})
		}
	}

	for _, user := range m.store.Users() {
		if containsFold(user.FirstName, needle) || containsFold(user.LastName, needle) {
			results.Employees = append(results.Employees, Result{
				Type:    ResultEmployee,
				ID:      user.ID,
				Title:   user.FirstName + " " + user.LastName,
				Snippet: user.Position,
			})
		}
	}

	for _, post := range m.store.Posts() {
		if containsFold(post.Content, needle) {
			results.Posts = append(results.Posts, Result{
				Type:    ResultPost,
				ID:      post.ID,
				Title:   snippet(post.Content),
				Snippet: post.Content,
			})
		}
		for _, comment := range post.Comments {
			if containsFold(comment.Content, needle) {
				results.Comments = append(results.Comments, Result{
					Type:    ResultComment,
					ID:      comment.ID,
					Title:   snippet(comment.Content),
					Snippet: comment.Content,
					PostID:  post.ID,
				})
			}
		}
	}

	return clamp(results, q.Limit), nil
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func snippet(text string) string {
	const maxLen = 80
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= maxLen {
		return trimmed
	}
	return strings.TrimSpace(trimmed[:maxLen]) + "…"
}

func clamp(results Results, limit int) Results {
	if limit <= 0 {
		return results
	}
	if len(results.Events) > limit {
		results.Events = results.Events[:limit]
	}
	if len(results.Employees) > limit {
		results.Employees = results.Employees[:limit]
	}
	if len(results.Posts) > limit {
		results.Posts = results.Posts[:limit]
	}
	if len(results.Comments) > limit {
		results.Comments = results.Comments[:limit]
	}
	return results
}
