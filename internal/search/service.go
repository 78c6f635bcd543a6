package search

import "log"

// Service is the facade that tries Meilisearch first and falls back to
// the in-memory scanner. meili may be nil when not configured.
type Service struct {
	meili  *Meili
	memory *Memory
}

func NewService(meiliBackend *Meili, memoryBackend *Memory) *Service {
	return &Service{meili: meiliBackend, memory: memoryBackend}
}

// Search never fails: a backend error degrades to the scanner, and a
// scanner error (which cannot currently happen) degrades to empty lists.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: results, Total: results.Total(), Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to memory scan: %v", err)
	}

	results, err := s.memory.Search(q)
	if err != nil {
		log.Printf("search: memory scan error: %v", err)
		return Response{Results: Results{
			Events:    []Result{},
			Employees: []Result{},
			Posts:     []Result{},
			Comments:  []Result{},
		}, Query: q.Text}
	}
	return Response{Results: results, Total: results.Total(), Query: q.Text}
}

// IndexEvent indexes an event (fire-and-forget to Meilisearch).
func (s *Service) IndexEvent(record EventRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexEvent(record); err != nil {
			log.Printf("search: index event %s: %v", record.ID, err)
		}
	}()
}

// IndexEmployee indexes a directory entry (fire-and-forget).
func (s *Service) IndexEmployee(record EmployeeRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexEmployee(record); err != nil {
			log.Printf("search: index employee %s: %v", record.ID, err)
		}
	}()
}

// IndexPost indexes a post (fire-and-forget).
func (s *Service) IndexPost(record PostRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexPost(record); err != nil {
			log.Printf("search: index post %s: %v", record.ID, err)
		}
	}()
}

// IndexComment indexes a comment (fire-and-forget).
func (s *Service) IndexComment(record CommentRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexComment(record); err != nil {
			log.Printf("search: index comment %s: %v", record.ID, err)
		}
	}()
}

// DeleteEmployee removes a directory entry from the index (fire-and-forget).
func (s *Service) DeleteEmployee(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteEmployee(id); err != nil {
			log.Printf("search: delete employee %s: %v", id, err)
		}
	}()
}

// ReindexAll pushes the current collections into Meilisearch; called at
// startup so the external index catches up with the snapshot.
func (s *Service) ReindexAll(events []EventRecord, employees []EmployeeRecord, posts []PostRecord, comments []CommentRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	if err := s.meili.IndexEvents(events); err != nil {
		log.Printf("search: reindex events: %v", err)
	}
	if err := s.meili.IndexEmployees(employees); err != nil {
		log.Printf("search: reindex employees: %v", err)
	}
	if err := s.meili.IndexPosts(posts); err != nil {
		log.Printf("search: reindex posts: %v", err)
	}
	if err := s.meili.IndexComments(comments); err != nil {
		log.Printf("search: reindex comments: %v", err)
	}
}
