package textutil

import "strings"

// SplitKeywords parses comma-separated keyword input: each entry is trimmed
// and empty entries are dropped. Order is preserved and duplicates are kept;
// deduplication is a display concern, not a model one.
func SplitKeywords(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}

// JoinKeywords renders keywords back into the comma-separated form shown in
// edit prompts.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}

// Truncate shortens text to at most max runes, appending an ellipsis when
// anything was cut. Newlines are collapsed so table rows stay single-line.
func Truncate(text string, max int) string {
	flattened := strings.Join(strings.Fields(text), " ")
	if max <= 0 {
		return flattened
	}
	runes := []rune(flattened)
	if len(runes) <= max {
		return flattened
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
