// Command inkwell manages a local article archive: capture articles, thread
// memos onto them, browse the derived category index, and summarize content
// through a remote LLM service.
package main
