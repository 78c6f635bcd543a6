package search

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"
)

const (
	idxEvents    = "talkspot_events"
	idxEmployees = "talkspot_employees"
	idxPosts     = "talkspot_posts"
	idxComments  = "talkspot_comments"
)

// Meili implements Searcher via Meilisearch. It is an optional upgrade
// over the in-memory scanner; the facade falls back when it is down.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates a Meilisearch client and configures indexes. The
// returned backend may start unhealthy; a background loop keeps probing.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		log.Printf("search: meilisearch unavailable at %s: %v", url, err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndexes()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndexes() {
	indexes := []struct {
		uid        string
		searchable []string
	}{
		{uid: idxEvents, searchable: []string{"title"}},
		{uid: idxEmployees, searchable: []string{"firstName", "lastName"}},
		{uid: idxPosts, searchable: []string{"content"}},
		{uid: idxComments, searchable: []string{"content"}},
	}

	for _, idx := range indexes {
		if _, err := m.client.CreateIndex(&meili.IndexConfig{
			Uid:        idx.uid,
			PrimaryKey: "id",
		}); err != nil {
			log.Printf("search: create index %s (may already exist): %v", idx.uid, err)
		}
		if _, err := m.client.Index(idx.uid).UpdateSearchableAttributes(&idx.searchable); err != nil {
			log.Printf("search: update searchable attrs for %s: %v", idx.uid, err)
		}
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("search: meilisearch recovered, reconfiguring indexes")
				m.configureIndexes()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// Search queries the four indexes and groups hits per category. A blank
// query short-circuits to empty lists to match the scanner's contract.
func (m *Meili) Search(q Query) (Results, error) {
	results := Results{
		Events:    []Result{},
		Employees: []Result{},
		Posts:     []Result{},
		Comments:  []Result{},
	}
	if !m.healthy.Load() {
		return results, fmt.Errorf("meilisearch unhealthy")
	}
	if strings.TrimSpace(q.Text) == "" {
		return results, nil
	}

	limit := int64(q.Limit)
	if limit == 0 {
		limit = 20
	}

	queries := make([]*meili.SearchRequest, 0, 4)
	for _, uid := range []string{idxEvents, idxEmployees, idxPosts, idxComments} {
		queries = append(queries, &meili.SearchRequest{
			IndexUID: uid,
			Query:    q.Text,
			Limit:    limit,
		})
	}

	resp, err := m.client.MultiSearch(&meili.MultiSearchRequest{Queries: queries})
	if err != nil {
		m.healthy.Store(false)
		return results, fmt.Errorf("meilisearch multi-search: %w", err)
	}

	for _, sr := range resp.Results {
		for _, hit := range sr.Hits {
			switch sr.IndexUID {
			case idxEvents:
				results.Events = append(results.Events, Result{
					Type:  ResultEvent,
					ID:    decodeString(hit, "id"),
					Title: decodeString(hit, "title"),
				})
			case idxEmployees:
				results.Employees = append(results.Employees, Result{
					Type:  ResultEmployee,
					ID:    decodeString(hit, "id"),
					Title: strings.TrimSpace(decodeString(hit, "firstName") + " " + decodeString(hit, "lastName")),
				})
			case idxPosts:
				content := decodeString(hit, "content")
				results.Posts = append(results.Posts, Result{
					Type:    ResultPost,
					ID:      decodeString(hit, "id"),
					Title:   snippet(content),
					Snippet: content,
				})
			case idxComments:
				content := decodeString(hit, "content")
				results.Comments = append(results.Comments, Result{
					Type:    ResultComment,
					ID:      decodeString(hit, "id"),
					Title:   snippet(content),
					Snippet: content,
					PostID:  decodeString(hit, "postId"),
				})
			}
		}
	}

	return results, nil
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// IndexEvent adds or updates an event in the search index.
func (m *Meili) IndexEvent(record EventRecord) error {
	_, err := m.client.Index(idxEvents).AddDocuments([]EventRecord{record}, nil)
	return err
}

// IndexEmployee adds or updates a directory entry in the search index.
func (m *Meili) IndexEmployee(record EmployeeRecord) error {
	_, err := m.client.Index(idxEmployees).AddDocuments([]EmployeeRecord{record}, nil)
	return err
}

// IndexPost adds or updates a post in the search index.
func (m *Meili) IndexPost(record PostRecord) error {
	_, err := m.client.Index(idxPosts).AddDocuments([]PostRecord{record}, nil)
	return err
}

// IndexComment adds or updates a comment in the search index.
func (m *Meili) IndexComment(record CommentRecord) error {
	_, err := m.client.Index(idxComments).AddDocuments([]CommentRecord{record}, nil)
	return err
}

// DeleteEmployee removes a directory entry from the search index.
func (m *Meili) DeleteEmployee(id string) error {
	_, err := m.client.Index(idxEmployees).DeleteDocument(id, nil)
	return err
}

// IndexEvents bulk-indexes events.
func (m *Meili) IndexEvents(records []EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxEvents).AddDocuments(records, nil)
	return err
}

// IndexEmployees bulk-indexes directory entries.
func (m *Meili) IndexEmployees(records []EmployeeRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxEmployees).AddDocuments(records, nil)
	return err
}

// IndexPosts bulk-indexes posts.
func (m *Meili) IndexPosts(records []PostRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxPosts).AddDocuments(records, nil)
	return err
}

// IndexComments bulk-indexes comments.
func (m *Meili) IndexComments(records []CommentRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxComments).AddDocuments(records, nil)
	return err
}
