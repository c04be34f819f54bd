package folio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 82
)

// isOptimizable reports whether name is an image format optimizeImage
// can re-encode.
func isOptimizable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// optimizeImage scales images wider than maxImageWidth down to that width,
// keeping their format. It reports false, with the input unchanged, when the
// image is already small enough or the result would not be smaller.
func optimizeImage(src []byte) ([]byte, bool, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return src, false, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= maxImageWidth {
		return src, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return src, false, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	newH := bounds.Dy() * maxImageWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = (&png.Encoder{CompressionLevel: png.BestCompression}).Encode(&buf, dst)
	default:
		return src, false, nil
	}
	if err != nil {
		return src, false, fmt.Errorf("encode %s: %w", format, err)
	}
	if buf.Len() >= len(src) {
		return src, false, nil
	}
	return buf.Bytes(), true, nil
}
