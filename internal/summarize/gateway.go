package summarize

import (
	"context"
	"log/slog"
	"strings"

	"inkwell/internal/archive"
	"inkwell/internal/attachment"
	"inkwell/internal/logging"
)

// Fixed user-facing strings. Callers display these verbatim; a fallback memo
// is otherwise indistinguishable from a real summary in the UI.
const (
	// EmptyInputMessage is returned for blank input without a remote call.
	EmptyInputMessage = "There is no text to summarize."
	// TextFallback is returned when a text summarization call fails.
	TextFallback = "AI summarization failed. Please try again later."
	// ImageFallback is returned when image text extraction fails.
	ImageFallback = "Text extraction from the image failed."
	// DocumentFallback is returned when document summarization fails.
	DocumentFallback = "Document summarization failed."
)

// Completer is the slice of the LLM client the gateway needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithFile(ctx context.Context, prompt, mimeType, base64Data string) (string, error)
}

// Gateway adapts the remote completion service to the archive's
// never-fails summarization contract.
type Gateway struct {
	completer Completer
	logger    *slog.Logger
}

// NewGateway wraps a completer. A nil logger is replaced with a no-op one.
func NewGateway(completer Completer, logger *slog.Logger) *Gateway {
	return &Gateway{
		completer: completer,
		logger:    logging.NewComponentLogger(logger, "summarize"),
	}
}

// Summarize produces a 3-to-5 sentence summary of the text. Blank input and
// every failure mode resolve to a fixed message; this never returns an error.
func (g *Gateway) Summarize(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return EmptyInputMessage
	}

	result, err := g.completer.Complete(ctx, summarizePromptPrefix+"\""+text+"\"")
	if err != nil {
		g.logger.Warn("text summarization failed", logging.Error(err))
		return TextFallback
	}
	return strings.TrimSpace(result)
}

// ProcessFile extracts text from image attachments and summarizes document
// attachments. Like Summarize, it always resolves to a displayable string.
func (g *Gateway) ProcessFile(ctx context.Context, att archive.Attachment) string {
	isImage := attachment.IsImage(att.MimeType)

	prompt := documentSummaryPrompt
	if isImage {
		prompt = imageExtractPrompt
	}

	payload, err := attachment.Base64Payload(att)
	if err != nil {
		g.logger.Warn("attachment payload unreadable",
			logging.String("name", att.Name), logging.Error(err))
		return g.fileFallback(isImage)
	}

	result, err := g.completer.CompleteWithFile(ctx, prompt, att.MimeType, payload)
	if err != nil {
		g.logger.Warn("attachment processing failed",
			logging.String("name", att.Name),
			logging.String("mime_type", att.MimeType),
			logging.Error(err))
		return g.fileFallback(isImage)
	}
	return strings.TrimSpace(result)
}

func (g *Gateway) fileFallback(isImage bool) string {
	if isImage {
		return ImageFallback
	}
	return DocumentFallback
}
