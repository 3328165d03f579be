package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"inkwell/internal/api"
	"inkwell/internal/archive"
	"inkwell/internal/textutil"
)

var titleCaser = cases.Title(language.English)

// formatLabel renders a stored format tag for display ("pdf" -> "PDF",
// "blog" -> "Blog").
func formatLabel(format string) string {
	if format == string(archive.FormatPDF) {
		return "PDF"
	}
	return titleCaser.String(format)
}

func formatChoices() string {
	tags := make([]string, 0, len(archive.Formats()))
	for _, f := range archive.Formats() {
		tags = append(tags, string(f))
	}
	return strings.Join(tags, ", ")
}

// confirm reads a y/N answer from the reader.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func buildArticleRows(articles []api.Article) [][]string {
	rows := make([][]string, 0, len(articles))
	for _, article := range articles {
		rows = append(rows, []string{
			article.ID,
			textutil.Truncate(article.Title, 40),
			formatLabel(article.Format),
			article.Category,
			textutil.Truncate(textutil.JoinKeywords(article.Keywords), 30),
			article.CreatedAt,
		})
	}
	return rows
}
