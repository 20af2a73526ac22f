package genai

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotImage indicates that a source payload does not carry an image MIME type.
var ErrNotImage = errors.New("genai: source is not an image")

// Blob is the inline-data pair the generateContent API expects for binary
// inputs: raw bytes plus their MIME type.
type Blob struct {
	MIMEType string
	Data     []byte
}

// NewBlob wraps raw image bytes into a Blob. The MIME hint is used when it
// names an image type; otherwise the type is sniffed from the bytes.
func NewBlob(data []byte, mimeHint string) (Blob, error) {
	if len(data) == 0 {
		return Blob{}, errors.New("genai: empty image payload")
	}
	mime := strings.ToLower(strings.TrimSpace(mimeHint))
	if !isImageMIME(mime) {
		mime = sniffMIME(data)
	}
	if !isImageMIME(mime) {
		return Blob{}, fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return Blob{MIMEType: mime, Data: data}, nil
}

// BlobFromFile reads a local image file. The file extension is used as the
// MIME hint, falling back to content sniffing.
func BlobFromFile(path string) (Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blob{}, fmt.Errorf("genai: read image file: %w", err)
	}
	return NewBlob(data, mimeFromExtension(path))
}

// ParseDataURL decodes an RFC 2397 data URL, the format browser file readers
// produce, into a Blob. Only base64-encoded image payloads are accepted.
func ParseDataURL(raw string) (Blob, error) {
	raw = strings.TrimSpace(raw)
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return Blob{}, errors.New("genai: not a data url")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Blob{}, errors.New("genai: malformed data url")
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return Blob{}, errors.New("genai: data url is not base64 encoded")
	}
	if strings.TrimSpace(payload) == "" {
		return Blob{}, errors.New("genai: empty image payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Blob{}, fmt.Errorf("genai: decode data url: %w", err)
	}
	return NewBlob(data, mediaType)
}

// DataURL renders the blob back into a data URL suitable for an <img> src.
func (b Blob) DataURL() string {
	return "data:" + b.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

func isImageMIME(mime string) bool {
	return strings.HasPrefix(mime, "image/") && len(mime) > len("image/")
}

func sniffMIME(data []byte) string {
	return strings.ToLower(http.DetectContentType(data))
}

func mimeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return ""
	}
}
