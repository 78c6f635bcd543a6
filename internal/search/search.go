package search

// ResultType identifies the kind of entity in a search result.
type ResultType string

const (
	ResultEvent    ResultType = "event"
	ResultEmployee ResultType = "employee"
	ResultPost     ResultType = "post"
	ResultComment  ResultType = "comment"
)

// Result is a single search hit returned to the caller.
type Result struct {
	Type    ResultType `json:"type"`
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Snippet string     `json:"snippet,omitempty"`
	// PostID links a comment hit back to its parent post.
	PostID string `json:"postId,omitempty"`
}

// Query describes a search request.
type Query struct {
	Text  string
	Limit int
}

// Results holds the per-category hit lists. A blank query produces empty
// lists in every category.
type Results struct {
	Events    []Result `json:"events"`
	Employees []Result `json:"employees"`
	Posts     []Result `json:"posts"`
	Comments  []Result `json:"comments"`
}

func (r Results) Total() int {
	return len(r.Events) + len(r.Employees) + len(r.Posts) + len(r.Comments)
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results Results `json:"results"`
	Total   int     `json:"total"`
	Query   string  `json:"query"`
}

// Searcher can execute a cross-entity search.
type Searcher interface {
	Search(q Query) (Results, error)
	Healthy() bool
}

// EventRecord is the data we index for an event.
type EventRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// EmployeeRecord is the data we index for a directory entry.
type EmployeeRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PostRecord is the data we index for a post.
type PostRecord struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// CommentRecord is the data we index for a comment.
type CommentRecord struct {
	ID      string `json:"id"`
	PostID  string `json:"postId"`
	Content string `json:"content"`
}
