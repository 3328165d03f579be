package api

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/archive"
	"inkwell/internal/attachment"
	"inkwell/internal/catalog"
)

// FromArticle converts an archive record to its API representation. The memo
// thread is reordered newest-first for display.
func FromArticle(article archive.Article) Article {
	dto := Article{
		ID:        article.ID,
		Title:     article.Title,
		Body:      article.Body,
		Source:    article.Source,
		CreatedAt: FormatTime(article.CreatedAt),
		Format:    string(article.Format),
		Category:  article.Category,
		Keywords:  append([]string{}, article.Keywords...),
		Memos:     []Memo{},
	}
	for _, memo := range catalog.SortMemosForDisplay(article.Memos) {
		dto.Memos = append(dto.Memos, FromMemo(memo))
	}
	for _, att := range article.Attachments {
		dto.Attachments = append(dto.Attachments, FromAttachment(att))
	}
	return dto
}

// FromArticles converts a slice of archive records into API DTOs.
func FromArticles(articles []archive.Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, article := range articles {
		out = append(out, FromArticle(article))
	}
	return out
}

// FromMemo converts a memo record to its API representation.
func FromMemo(memo archive.Memo) Memo {
	return Memo{
		ID:        memo.ID,
		Content:   memo.Content,
		IsSummary: memo.IsSummary,
		CreatedAt: FormatTime(memo.CreatedAt),
	}
}

// FromAttachment converts a stored attachment, carrying the inline payload so
// it can round-trip through an update.
func FromAttachment(att archive.Attachment) Attachment {
	return Attachment{
		Name:     att.Name,
		MimeType: att.MimeType,
		DataURL:  att.DataURL,
		Size:     decodedPayloadSize(att.DataURL),
	}
}

// FromCategoryEntries converts the derived category index into API DTOs.
func FromCategoryEntries(entries []catalog.CategoryEntry) []Category {
	out := make([]Category, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Category{
			Category: entry.Category,
			Keywords: append([]string{}, entry.Keywords...),
		})
	}
	return out
}

// FormatTime converts a time to RFC3339 or returns empty string.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// Draft resolves the request into a validated-shape archive draft. An empty
// format defaults to "other"; an unknown one is an error. Inline attachments
// are checked against the size cap and MIME restriction.
func (r DraftRequest) Draft() (archive.Draft, error) {
	format := archive.FormatOther
	if strings.TrimSpace(r.Format) != "" {
		parsed, err := archive.ParseFormat(r.Format)
		if err != nil {
			return archive.Draft{}, err
		}
		format = parsed
	}
	attachments, err := toArchiveAttachments(r.Attachments)
	if err != nil {
		return archive.Draft{}, err
	}
	return archive.Draft{
		Title:       r.Title,
		Body:        r.Body,
		Source:      r.Source,
		Format:      format,
		Category:    r.Category,
		Keywords:    append([]string(nil), r.Keywords...),
		Attachments: attachments,
	}, nil
}

func toArchiveAttachments(attachments []Attachment) ([]archive.Attachment, error) {
	if len(attachments) == 0 {
		return nil, nil
	}
	out := make([]archive.Attachment, 0, len(attachments))
	for _, att := range attachments {
		if !attachment.Allowed(att.MimeType) {
			return nil, fmt.Errorf("%q: %w", att.Name, attachment.ErrUnsupportedType)
		}
		size := decodedPayloadSize(att.DataURL)
		if size == 0 {
			return nil, fmt.Errorf("attachment %q: missing or malformed data url", att.Name)
		}
		if size > attachment.MaxFileBytes {
			return nil, &attachment.TooLargeError{Name: att.Name, Size: int64(size)}
		}
		out = append(out, archive.Attachment{
			Name:     att.Name,
			MimeType: att.MimeType,
			DataURL:  att.DataURL,
		})
	}
	return out, nil
}

// decodedPayloadSize derives the raw byte count from the base64 segment of a
// data URI without decoding it.
func decodedPayloadSize(dataURL string) int {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return 0
	}
	trimmed := strings.TrimRight(payload, "=")
	if trimmed == "" {
		return 0
	}
	return base64.RawStdEncoding.DecodedLen(len(trimmed))
}
