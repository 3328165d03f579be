// Package api provides the application service layer shared by the CLI and
// the HTTP surface. It translates archive records into transport-friendly
// DTOs and coordinates the store, the category catalog, and the
// summarization gateway behind a single ArticleService.
package api
