// Package summarize is the gateway between the archive and the remote LLM
// service.
//
// Its contract is deliberately narrow: text in, string out. Both operations
// always resolve to a displayable string; remote failures degrade to fixed
// fallback messages and are never surfaced as errors to callers. Blank input
// short-circuits without a remote call.
package summarize
