package archive

import (
	"errors"
	"strings"
)

// Draft carries the mutable article fields supplied by a create or edit
// submission. ID, CreatedAt, and the memo thread are never part of a draft.
type Draft struct {
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	Source      string       `json:"source"`
	Format      Format       `json:"format"`
	Category    string       `json:"category"`
	Keywords    []string     `json:"keywords"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

var (
	// ErrTitleRequired rejects drafts with a blank title.
	ErrTitleRequired = errors.New("title is required")
	// ErrCategoryRequired rejects drafts with a blank category.
	ErrCategoryRequired = errors.New("category is required")
)

// Validate rejects drafts that must not be persisted. It runs before any
// state mutation so a failed submission leaves the collection untouched.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrCategoryRequired
	}
	if !d.Format.Valid() {
		_, err := ParseFormat(string(d.Format))
		return err
	}
	return nil
}
