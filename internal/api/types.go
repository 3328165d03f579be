package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Article describes an archived article in a transport-friendly format.
type Article struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	Source      string       `json:"source,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	Format      string       `json:"format"`
	Category    string       `json:"category"`
	Keywords    []string     `json:"keywords"`
	Memos       []Memo       `json:"memos"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Memo describes a single memo in an article's thread. Memos are listed
// newest-first, matching display order.
type Memo struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	IsSummary bool   `json:"isSummary"`
	CreatedAt string `json:"createdAt"`
}

// Attachment carries an attachment with its inline payload, matching the
// stored shape so clients can resubmit the list on update. Size is derived
// and ignored on input.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataUrl,omitempty"`
	Size     int    `json:"size"`
}

// Category pairs a category with the keywords seen under it.
type Category struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// DraftRequest carries the mutable article fields for create and update.
// Attachments are a full replacement list: entries omitted from an update are
// removed from the article.
type DraftRequest struct {
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	Source      string       `json:"source"`
	Format      string       `json:"format"`
	Category    string       `json:"category"`
	Keywords    []string     `json:"keywords"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// MemoRequest carries the payload for memo creation and edits.
type MemoRequest struct {
	Content string `json:"content"`
}

// SummarizeRequest asks for a free-standing summary of arbitrary text.
type SummarizeRequest struct {
	Text string `json:"text"`
}

// SummarizeResponse wraps a summary result.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// ArticleListResponse wraps a collection of articles.
type ArticleListResponse struct {
	Articles []Article `json:"articles"`
}

// ArticleResponse wraps a single article.
type ArticleResponse struct {
	Article Article `json:"article"`
}

// CategoryListResponse wraps the derived category index.
type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}
