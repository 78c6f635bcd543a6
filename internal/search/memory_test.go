package search

import (
	"testing"

	"talkspot/api/internal/store"
)

func newTestScanner() *Memory {
	return NewMemory(store.NewMemory(store.Seed()))
}

func TestBlankQueryReturnsEmptyLists(t *testing.T) {
	scanner := newTestScanner()

	for _, q := range []string{"", "   ", "\t"} {
		results, err := scanner.Search(Query{Text: q})
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", q, err)
		}
		if results.Total() != 0 {
			t.Errorf("Search(%q): expected no hits, got %d", q, results.Total())
		}
		// Empty but non-nil, so JSON renders [] not null.
		if results.Events == nil || results.Employees == nil || results.Posts == nil || results.Comments == nil {
			t.Errorf("Search(%q): category lists must be non-nil", q)
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	scanner := newTestScanner()

	lower, err := scanner.Search(Query{Text: "birthday"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	upper, err := scanner.Search(Query{Text: "BIRTHDAY"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(lower.Events) != 1 || len(upper.Events) != len(lower.Events) {
		t.Errorf("case sensitivity leak: lower=%d upper=%d", len(lower.Events), len(upper.Events))
	}
}

func TestSearchMatchesAllCategories(t *testing.T) {
	scanner := newTestScanner()

	// "chifa" appears as an employee name and in an event title.
	results, err := scanner.Search(Query{Text: "chifa"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Employees) != 1 {
		t.Errorf("expected 1 employee hit, got %d", len(results.Employees))
	}
	if len(results.Events) != 1 {
		t.Errorf("expected 1 event hit, got %d", len(results.Events))
	}

	// Comment text is searched and carries the parent post id.
	results, err = scanner.Search(Query{Text: "explore all the features"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Comments) != 1 {
		t.Fatalf("expected 1 comment hit, got %d", len(results.Comments))
	}
	if results.Comments[0].PostID != "1" {
		t.Errorf("comment hit should reference post 1, got %s", results.Comments[0].PostID)
	}
}

func TestSearchNoMatch(t *testing.T) {
	scanner := newTestScanner()

	results, err := scanner.Search(Query{Text: "zzz-no-such-term"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results.Total() != 0 {
		t.Errorf("expected no hits, got %d", results.Total())
	}
}

func TestSearchLimit(t *testing.T) {
	scanner := newTestScanner()

	// Every seeded user works at "company.com"; "a" hits broadly.
	unlimited, err := scanner.Search(Query{Text: "a"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	limited, err := scanner.Search(Query{Text: "a", Limit: 1})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(unlimited.Employees) < 2 {
		t.Fatalf("expected a broad match for the limit test, got %d", len(unlimited.Employees))
	}
	if len(limited.Employees) != 1 {
		t.Errorf("expected 1 employee with limit, got %d", len(limited.Employees))
	}
}

func TestSearchSeesLiveMutations(t *testing.T) {
	dataStore := store.NewMemory(store.Seed())
	scanner := NewMemory(dataStore)

	results, _ := scanner.Search(Query{Text: "quarterly offsite"})
	if results.Total() != 0 {
		t.Fatalf("unexpected pre-existing hit")
	}

	err := dataStore.AddPost(store.Post{
		ID:       "p-offsite",
		AuthorID: "2",
		Content:  "Planning the quarterly offsite agenda",
		Status:   store.StatusPending,
	})
	if err != nil {
		t.Fatalf("AddPost failed: %v", err)
	}

	results, _ = scanner.Search(Query{Text: "quarterly offsite"})
	if len(results.Posts) != 1 {
		t.Errorf("expected the new post to be searchable immediately, got %d hits", len(results.Posts))
	}
}

func TestServiceFallsBackWithoutMeili(t *testing.T) {
	service := NewService(nil, newTestScanner())

	response := service.Search(Query{Text: "birthday"})
	if response.Total != 1 {
		t.Errorf("expected 1 hit through the facade, got %d", response.Total)
	}
	if response.Query != "birthday" {
		t.Errorf("response should echo the query, got %q", response.Query)
	}
}
