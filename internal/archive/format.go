package archive

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat rejects format tags outside the known set.
var ErrUnknownFormat = errors.New("unknown format")

// Format tags the kind of content an article was captured from.
type Format string

const (
	FormatNews  Format = "news"
	FormatBlog  Format = "blog"
	FormatBook  Format = "book"
	FormatPaper Format = "paper"
	FormatVideo Format = "video"
	FormatPDF   Format = "pdf"
	FormatOther Format = "other"
)

// Formats lists every valid format tag in display order.
func Formats() []Format {
	return []Format{FormatNews, FormatBlog, FormatBook, FormatPaper, FormatVideo, FormatPDF, FormatOther}
}

// ParseFormat resolves a user-supplied format tag. Matching is
// case-insensitive; the stored value is always the lowercase tag.
func ParseFormat(value string) (Format, error) {
	tag := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Formats() {
		if tag == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownFormat, value, strings.Join(formatTags(), ", "))
}

// Valid reports whether the format is one of the known tags.
func (f Format) Valid() bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

func formatTags() []string {
	formats := Formats()
	tags := make([]string, len(formats))
	for i, f := range formats {
		tags[i] = string(f)
	}
	return tags
}
