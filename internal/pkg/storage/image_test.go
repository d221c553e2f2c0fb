package storage

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, w, h int) io.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestValidate(t *testing.T) {
	p := NewImageProcessor(100, 100, 4000, 4000)

	w, h, err := p.Validate(pngImage(t, 640, 480))
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestValidateTooSmall(t *testing.T) {
	p := NewImageProcessor(100, 100, 4000, 4000)

	_, _, err := p.Validate(pngImage(t, 99, 200))
	assert.ErrorIs(t, err, ErrImageTooSmall)
}

func TestValidateTooLarge(t *testing.T) {
	p := NewImageProcessor(100, 100, 4000, 4000)

	_, _, err := p.Validate(pngImage(t, 4001, 200))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestValidateNotAnImage(t *testing.T) {
	p := NewImageProcessor(100, 100, 4000, 4000)

	_, _, err := p.Validate(bytes.NewReader([]byte("definitely not an image")))
	assert.Error(t, err)
}

func TestGenerateThumbnail(t *testing.T) {
	p := NewImageProcessor(100, 100, 4000, 4000)

	thumb, err := p.GenerateThumbnail(pngImage(t, 640, 480), 200, 200)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(thumb)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 200)
	assert.LessOrEqual(t, cfg.Height, 200)
}
