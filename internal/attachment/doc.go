// Package attachment loads and validates article file attachments.
//
// Files are gated on a per-file size cap and an image/PDF MIME restriction
// before they ever reach the store, then carried inline as base64 data URIs
// so the collection remains a single self-contained payload. The data-URI
// codec here is the only place that format is produced or parsed.
package attachment
