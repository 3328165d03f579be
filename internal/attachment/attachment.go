package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/archive"
)

// MaxFileBytes caps individual attachment size at 5 MiB.
const MaxFileBytes = 5 * 1024 * 1024

// ErrUnsupportedType rejects attachments that are neither images nor PDFs.
var ErrUnsupportedType = errors.New("attachment type not supported (images and PDF only)")

// TooLargeError reports a file that exceeds the per-file size cap.
type TooLargeError struct {
	Name string
	Size int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("attachment %q is %d bytes, exceeding the %d byte limit", e.Name, e.Size, int64(MaxFileBytes))
}

// IsImage reports whether the MIME type denotes an image.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// Allowed reports whether the MIME type passes the image/PDF restriction.
func Allowed(mimeType string) bool {
	return IsImage(mimeType) || mimeType == "application/pdf"
}

// LoadFile reads a file from disk, validates it against the size cap and MIME
// restriction, and returns it as an inline attachment. Validation failures
// occur before any state mutation.
func LoadFile(path string) (archive.Attachment, error) {
	var empty archive.Attachment

	info, err := os.Stat(path)
	if err != nil {
		return empty, fmt.Errorf("stat attachment: %w", err)
	}
	if info.Size() > MaxFileBytes {
		return empty, &TooLargeError{Name: filepath.Base(path), Size: info.Size()}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return empty, fmt.Errorf("read attachment: %w", err)
	}

	mimeType := detectMimeType(path, data)
	if !Allowed(mimeType) {
		return empty, fmt.Errorf("%q: %w", filepath.Base(path), ErrUnsupportedType)
	}

	return archive.Attachment{
		Name:     filepath.Base(path),
		MimeType: mimeType,
		DataURL:  EncodeDataURL(mimeType, data),
	}, nil
}

// EncodeDataURL renders bytes as a base64 data URI.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URI back into its MIME type and raw bytes.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, errors.New("decode data url: missing data: prefix")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("decode data url: missing payload separator")
	}
	mimeType, _, _ := strings.Cut(meta, ";")
	if !strings.Contains(meta, ";base64") {
		return "", nil, errors.New("decode data url: payload is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mimeType, data, nil
}

// Base64Payload returns the raw base64 portion of an attachment's data URI,
// the shape remote LLM requests expect for inline content.
func Base64Payload(att archive.Attachment) (string, error) {
	_, after, ok := strings.Cut(att.DataURL, ",")
	if !ok || after == "" {
		return "", fmt.Errorf("attachment %q: malformed data url", att.Name)
	}
	return after, nil
}

func detectMimeType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	sniffed := http.DetectContentType(data)
	if mediaType, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mediaType
	}
	return "application/octet-stream"
}
