// Package llm wraps the OpenRouter-style chat completion API used for
// summarization and attachment text extraction.
//
// The client retries transient failures with exponential backoff (honoring
// Retry-After), tolerates the schema drift seen across completion providers
// (message, delta, and legacy text payloads), and supports multimodal
// requests carrying inline base64 file content alongside the instruction.
//
// Callers that must never fail live one level up in internal/summarize; this
// package reports errors normally.
package llm
