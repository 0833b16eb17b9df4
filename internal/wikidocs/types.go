package wikidocs

// Page is a node in a book's page hierarchy. Page IDs are globally unique
// across all books, not just within one book. The order of Children is the
// document order and must be preserved through any transformation.
type Page struct {
	ID       int     `json:"id"`
	Subject  string  `json:"subject"`
	Content  string  `json:"content"`
	ParentID int     `json:"parent_id"`
	BookID   int     `json:"book_id,omitempty"`
	Depth    int     `json:"depth"`
	Seq      int     `json:"seq"`
	OpenYN   string  `json:"open_yn,omitempty"`
	Children []*Page `json:"children,omitempty"`
}

// Book is a top-level document. Pages is a forest: multiple top-level pages
// are siblings at depth 0.
type Book struct {
	ID      int     `json:"id"`
	Subject string  `json:"subject"`
	Summary string  `json:"summary,omitempty"`
	Pages   []*Page `json:"pages"`
}

// BookSummary is one entry from the book listing endpoint.
type BookSummary struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Summary string `json:"summary,omitempty"`
}

// PageRequest is the body for PUT /pages/{id}/. The API requires depth and
// seq to be present; the server recomputes both, so they are always sent as
// zero.
type PageRequest struct {
	ID       int    `json:"id"`
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	ParentID int    `json:"parent_id"`
	BookID   int    `json:"book_id"`
	Depth    int    `json:"depth"`
	Seq      int    `json:"seq"`
	OpenYN   string `json:"open_yn"`
}

// BlogPostRequest is the body for blog create/update endpoints.
type BlogPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
	Tags     string `json:"tags"`
}

// CreatePageID is the page ID that tells the API to create a new page
// instead of updating an existing one.
const CreatePageID = -1
