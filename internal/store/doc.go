// Package store persists the article collection and owns all mutation of it.
//
// The in-memory collection is authoritative for the session. Durable storage
// is a single named entry in a SQLite database holding the whole collection
// serialized as a JSON array; every accepted mutation rebuilds the collection,
// swaps it in atomically, and writes the full payload back through on a
// best-effort basis. A write failure is logged and the session continues; a
// decode failure on load falls back to the seed collection and is never
// surfaced as an error.
//
// There is no schema migration. A structurally incompatible payload is
// treated as absent and triggers a reseed.
package store
