package archive

import (
	"time"

	"github.com/google/uuid"
)

// Article is a single archived piece of content together with its metadata,
// optional file attachments, and the memo thread it owns.
type Article struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	Source      string       `json:"source"`
	CreatedAt   time.Time    `json:"createdAt"`
	Format      Format       `json:"format"`
	Category    string       `json:"category"`
	Keywords    []string     `json:"keywords"`
	Memos       []Memo       `json:"memos"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Memo is a short user- or AI-authored annotation attached to one article.
// Its ID is unique within the owning article only.
type Memo struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsSummary bool      `json:"isSummary"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment is a file captured alongside an article, stored inline as a
// base64 data URI.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataUrl"`
}

// NewID returns a fresh opaque identifier for articles and memos.
func NewID() string {
	return uuid.NewString()
}

// FindMemo returns the index of the memo with the given ID, or -1.
func (a *Article) FindMemo(memoID string) int {
	for i := range a.Memos {
		if a.Memos[i].ID == memoID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the article so callers can hand out snapshots
// without exposing shared slices.
func (a Article) Clone() Article {
	out := a
	if a.Keywords != nil {
		out.Keywords = append([]string(nil), a.Keywords...)
	}
	if a.Memos != nil {
		out.Memos = append([]Memo(nil), a.Memos...)
	}
	if a.Attachments != nil {
		out.Attachments = append([]Attachment(nil), a.Attachments...)
	}
	return out
}

// CloneAll deep-copies a collection.
func CloneAll(articles []Article) []Article {
	if articles == nil {
		return nil
	}
	out := make([]Article, len(articles))
	for i := range articles {
		out[i] = articles[i].Clone()
	}
	return out
}
