// Package imaging validates profile pictures before they are stored.
//
// Only the image header is parsed (DecodeConfig), never the full pixel
// data, so oversized uploads are rejected cheaply.
package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

const (
	MaxBytes = 1 << 20 // 1MB

	MinSide = 500
	MaxSide = 1000
)

var (
	ErrUnsupportedFormat = errors.New("Only JPG and PNG files are allowed")
	ErrBadDimensions     = errors.New("Image must be between 500x500 and 1000x1000 pixels")
	ErrNotSquare         = errors.New("Image must be square")
	ErrTooLarge          = errors.New("Image size must be less than 1MB")
	ErrUndecodable       = errors.New("Invalid image data")
)

// Validate checks encoded size, format, dimensions and squareness, in that
// order, returning the first violated constraint.
func Validate(data []byte) error {
	if len(data) == 0 {
		return ErrUndecodable
	}
	if len(data) > MaxBytes {
		return ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ErrUndecodable
	}
	if format != "jpeg" && format != "png" {
		return ErrUnsupportedFormat
	}

	if cfg.Width < MinSide || cfg.Height < MinSide || cfg.Width > MaxSide || cfg.Height > MaxSide {
		return ErrBadDimensions
	}
	if cfg.Width != cfg.Height {
		return ErrNotSquare
	}
	return nil
}
