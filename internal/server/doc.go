// Package server exposes the archive over a local HTTP API. The surface is a
// thin JSON translation of the api.ArticleService; all domain rules live in
// the service and the store.
package server
