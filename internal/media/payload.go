// Package media decodes the inline image payloads clients send with activities.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize is the largest decoded image accepted, in bytes.
const MaxImageSize = 10 * 1024 * 1024

var (
	ErrEmptyPayload   = errors.New("image payload is empty")
	ErrInvalidPayload = errors.New("image payload is not valid base64")
	ErrNotImage       = errors.New("payload is not an image")
	ErrTooLarge       = errors.New("image exceeds 10MB limit")
)

// Image is a decoded image ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	// Extension includes the leading dot, e.g. ".png".
	Extension string
}

// Key returns a fresh object key for the image.
func (i Image) Key() string {
	return uuid.NewString() + i.Extension
}

// Decode accepts either a data URI (data:image/png;base64,....) or bare base64.
// The content type is sniffed from the bytes; a declared type must agree
// that the payload is an image.
func Decode(payload string) (Image, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return Image{}, ErrEmptyPayload
	}

	encoded := payload
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return Image{}, ErrInvalidPayload
		}
		declared := strings.TrimSuffix(header, ";base64")
		if declared != "" && !strings.HasPrefix(declared, "image/") {
			return Image{}, fmt.Errorf("%w: declared %s", ErrNotImage, declared)
		}
		encoded = data
	}

	if base64.StdEncoding.DecodedLen(len(encoded)) > MaxImageSize+3 {
		return Image{}, ErrTooLarge
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return Image{}, ErrInvalidPayload
	}
	if len(data) == 0 {
		return Image{}, ErrEmptyPayload
	}
	if len(data) > MaxImageSize {
		return Image{}, ErrTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return Image{}, fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}

	return Image{
		Data:        data,
		ContentType: mime.String(),
		Extension:   mime.Extension(),
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
