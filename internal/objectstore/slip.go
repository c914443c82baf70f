package objectstore

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	slipMaxSide     = 1600
	slipJPEGQuality = 85
)

// NormalizeSlip проверяет, что файл является изображением, поворачивает его по EXIF,
// уменьшает до slipMaxSide по большей стороне и перекодирует в JPEG.
// Файл больше maxBytes отклоняется с ErrTooLarge.
func NormalizeSlip(r io.Reader, maxBytes int64) ([]byte, string, error) {
	const op = "objectstore.NormalizeSlip"

	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if int64(len(raw)) > maxBytes {
		return nil, "", fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	switch http.DetectContentType(raw) {
	case "image/jpeg", "image/png", "image/gif", "image/bmp":
	default:
		return nil, "", fmt.Errorf("%s: %w", op, ErrUnsupportedType)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w: %v", op, ErrUnsupportedType, err)
	}

	b := img.Bounds()
	if b.Dx() > slipMaxSide || b.Dy() > slipMaxSide {
		img = imaging.Fit(img, slipMaxSide, slipMaxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(slipJPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
