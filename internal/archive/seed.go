package archive

import "time"

// Seed returns the default collection manufactured when durable storage is
// empty or unreadable on first run.
func Seed(now time.Time) []Article {
	return []Article{
		{
			ID:    NewID(),
			Title: "Getting started with your archive",
			Body: "Inkwell keeps every article you capture in one local archive. " +
				"Give each entry a category and a few keywords, then use them to filter the list view. " +
				"Attach memos to record your own thoughts, or select a passage and ask for an AI summary. " +
				"This seed entry can be edited or deleted like any other article.",
			Source:    "https://github.com/inkwell-archive/inkwell",
			CreatedAt: now,
			Format:    FormatBlog,
			Category:  "Tech",
			Keywords:  []string{"archive", "notes", "getting-started"},
			Memos:     []Memo{},
		},
	}
}
