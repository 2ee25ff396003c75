package media

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG: signature plus IHDR, IDAT and IEND chunks
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestDecode(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "data uri", payload: "data:image/png;base64," + encoded},
		{name: "bare base64", payload: encoded},
		{name: "unpadded base64", payload: strings.TrimRight(encoded, "=")},
		{name: "surrounding whitespace", payload: "  " + encoded + "\n"},
		{name: "empty", payload: "   ", wantErr: ErrEmptyPayload},
		{name: "garbage", payload: "%%%not base64%%%", wantErr: ErrInvalidPayload},
		{name: "data uri without base64 marker", payload: "data:image/png," + encoded, wantErr: ErrInvalidPayload},
		{name: "declared non image", payload: "data:text/plain;base64," + encoded, wantErr: ErrNotImage},
		{name: "text content", payload: base64.StdEncoding.EncodeToString([]byte("hello, world")), wantErr: ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.payload)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, pngBytes, img.Data)
			assert.Equal(t, "image/png", img.ContentType)
			assert.Equal(t, ".png", img.Extension)
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	big := make([]byte, MaxImageSize+1)
	copy(big, pngBytes)

	_, err := Decode(base64.StdEncoding.EncodeToString(big))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestImage_Key(t *testing.T) {
	img := Image{Extension: ".jpg"}

	a, b := img.Key(), img.Key()
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.Len(t, a, 36+len(".jpg"))
	assert.NotEqual(t, a, b)
}
