package summarize

// summarizePromptPrefix captures the instructions sent with every text
// summarization request. Update this text centrally so every call stays in
// sync.
const summarizePromptPrefix = `Summarize the following text in 3 to 5 sentences, keeping only the essential content. You must retain the key terms of the original text. Write in a formal register.

[Text to summarize]:
`

// imageExtractPrompt asks for text extraction only, with no commentary, so
// the result can be appended to an article body verbatim.
const imageExtractPrompt = `Extract all text from this image. Respond with only the extracted text and do not add any other explanation.`

// documentSummaryPrompt is used for non-image attachments (PDF documents).
const documentSummaryPrompt = `Summarize the key points of this document.`
