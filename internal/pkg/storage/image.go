package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

var (
	ErrImageTooSmall = errors.New("image dimensions are too small")
	ErrImageTooLarge = errors.New("image dimensions are too large")
)

// ImageProcessor handles image validation and processing like resizing.
type ImageProcessor struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// NewImageProcessor creates a new ImageProcessor with dimension bounds.
func NewImageProcessor(minWidth, minHeight, maxWidth, maxHeight int) *ImageProcessor {
	return &ImageProcessor{
		MinWidth:  minWidth,
		MinHeight: minHeight,
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
	}
}

// Validate decodes the image header and checks its dimensions against the
// configured bounds. Returns width and height on success.
func (p *ImageProcessor) Validate(content io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(content)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	if cfg.Width < p.MinWidth || cfg.Height < p.MinHeight {
		return cfg.Width, cfg.Height, ErrImageTooSmall
	}
	if cfg.Width > p.MaxWidth || cfg.Height > p.MaxHeight {
		return cfg.Width, cfg.Height, ErrImageTooLarge
	}

	return cfg.Width, cfg.Height, nil
}

// GenerateThumbnail creates a thumbnail from the source image.
// maxWidth and maxHeight define the bounding box for the thumbnail.
// It returns the thumbnail content as a JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, nil
}
