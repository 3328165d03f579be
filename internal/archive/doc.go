// Package archive defines the article and memo domain model shared by the
// store, catalog, and user-facing surfaces.
//
// Articles own their memo threads outright; memos are addressed by the
// (article ID, memo ID) composite key and never reference their parent.
// Drafts carry the mutable subset of article fields and are validated before
// any state mutation takes place.
//
// Keep this package free of persistence and transport concerns so every
// consumer shares one definition of what an article is.
package archive
