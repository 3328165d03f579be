package catalog

import (
	"sort"

	"inkwell/internal/archive"
)

// Filter selects a subset of the collection. The zero value selects
// everything.
type Filter struct {
	Category string
	Keyword  string
}

// None matches the whole collection.
var None = Filter{}

// ByCategory filters on exact category equality.
func ByCategory(category string) Filter {
	return Filter{Category: category}
}

// ByKeyword filters on exact keyword membership.
func ByKeyword(keyword string) Filter {
	return Filter{Keyword: keyword}
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.Category == "" && f.Keyword == ""
}

func (f Filter) matches(article archive.Article) bool {
	if f.Category != "" {
		return article.Category == f.Category
	}
	if f.Keyword != "" {
		for _, keyword := range article.Keywords {
			if keyword == f.Keyword {
				return true
			}
		}
		return false
	}
	return true
}

// FilterArticles returns the matching subset sorted descending by creation
// time. The sort is stable so ties keep their relative collection order.
func FilterArticles(articles []archive.Article, filter Filter) []archive.Article {
	matched := make([]archive.Article, 0, len(articles))
	for _, article := range articles {
		if filter.matches(article) {
			matched = append(matched, article)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// SortMemosForDisplay returns the memo thread newest-first. Storage order is
// append order; the reversal happens only at display time.
func SortMemosForDisplay(memos []archive.Memo) []archive.Memo {
	out := append([]archive.Memo(nil), memos...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
