package catalog

import "inkwell/internal/archive"

// CategoryEntry pairs a category with the distinct keywords used by its
// articles.
type CategoryEntry struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// BuildCategoryIndex maps each category to the set of distinct keywords used
// by articles in that category. Categories appear in first-encounter order
// over a single pass; keywords keep first-encounter order within a category.
func BuildCategoryIndex(articles []archive.Article) []CategoryEntry {
	entries := make([]CategoryEntry, 0)
	position := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	for _, article := range articles {
		idx, ok := position[article.Category]
		if !ok {
			idx = len(entries)
			position[article.Category] = idx
			entries = append(entries, CategoryEntry{Category: article.Category, Keywords: []string{}})
			seen[article.Category] = make(map[string]struct{})
		}
		for _, keyword := range article.Keywords {
			if _, dup := seen[article.Category][keyword]; dup {
				continue
			}
			seen[article.Category][keyword] = struct{}{}
			entries[idx].Keywords = append(entries[idx].Keywords, keyword)
		}
	}
	return entries
}

// Categories returns just the category names, first-encounter order.
func Categories(articles []archive.Article) []string {
	entries := BuildCategoryIndex(articles)
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Category
	}
	return names
}
