// Package textutil provides small text helpers shared by form-style input
// parsing and the CLI renderers.
//
// The primary use cases are splitting comma-separated keyword input the way
// the article form does, detecting blank input before invoking the
// summarization gateway, and truncating long values for table display.
package textutil
