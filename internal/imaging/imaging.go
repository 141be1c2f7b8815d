// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates resized product image variants. Uploads are
// re-encoded as JPEG at storefront-friendly widths; variants larger
// than the source are skipped to avoid upscaling.
package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Variant describes a single responsive image size.
type Variant struct {
	Name    string // e.g., "thumb", "card", "full"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100
}

// DefaultVariants defines the standard sizes for catalog images.
var DefaultVariants = []Variant{
	{Name: "thumb", Width: 320, Quality: 70},
	{Name: "card", Width: 640, Quality: 80},
	{Name: "full", Width: 1280, Quality: 85},
}

// ProcessedImage holds one generated variant ready for upload.
type ProcessedImage struct {
	Name        string
	Width       int
	Height      int
	Data        []byte // JPEG-encoded image bytes
	ContentType string // Always "image/jpeg"
}

// GenerateVariants decodes the source image and produces one JPEG per
// variant no wider than the source. The source aspect ratio is kept.
func GenerateVariants(src []byte, variants []Variant) ([]ProcessedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	srcWidth := img.Bounds().Dx()

	var out []ProcessedImage
	for _, v := range variants {
		if v.Width > srcWidth {
			continue
		}

		resized := imaging.Resize(img, v.Width, 0, imaging.Lanczos)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(v.Quality)); err != nil {
			return nil, fmt.Errorf("encode %s variant: %w", v.Name, err)
		}

		out = append(out, ProcessedImage{
			Name:        v.Name,
			Width:       resized.Bounds().Dx(),
			Height:      resized.Bounds().Dy(),
			Data:        buf.Bytes(),
			ContentType: "image/jpeg",
		})
	}
	return out, nil
}
