package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"golang.org/x/image/draw"
)

const (
	maxImageDimension = 1600
	jpegQuality       = 80
)

// CompressImage decodes an uploaded image, scales it down so neither side
// exceeds maxImageDimension, and re-encodes it as JPEG. Uploads that do not
// decode as an image are rejected here rather than stored as-is.
func CompressImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageDimension || h > maxImageDimension {
		scale := float64(maxImageDimension) / float64(w)
		if h > w {
			scale = float64(maxImageDimension) / float64(h)
		}
		dw, dh := int(float64(w)*scale), int(float64(h)*scale)
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
