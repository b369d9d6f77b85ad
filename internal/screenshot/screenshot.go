package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// TimestampLayout is the local-time format substituted for {ts} in filename
// templates.
const TimestampLayout = "2006-01-02_15-04-05"

// DefaultTemplate names saved captures when no template is given.
const DefaultTemplate = "ds1054z-scope-display_{ts}.png"

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// Compose decodes a display dump (BMP on stock firmware, PNG on newer ones)
// and blends a uniform dimming mask over it at the given ratio. The ratio is
// clamped to [0, 1]; 0 leaves the image untouched, 1 blacks it out.
func Compose(raw []byte, ratio float64) (image.Image, error) {
	display, err := decode(raw)
	if err != nil {
		return nil, err
	}

	bounds := display.Bounds()
	composed := image.NewRGBA(bounds)
	draw.Draw(composed, bounds, display, bounds.Min, draw.Src)

	alpha := uint8(Clamp(ratio) * 0xff)
	if alpha > 0 {
		mask := image.NewUniform(color.RGBA{A: alpha})
		draw.Draw(composed, bounds, mask, image.Point{}, draw.Over)
	}
	return composed, nil
}

// Clamp bounds an overlay ratio to [0, 1].
func Clamp(ratio float64) float64 {
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}

// Save writes the image as PNG to the expanded filename template and returns
// the path written.
func Save(img image.Image, template string, now time.Time) (string, error) {
	path := ExpandTemplate(template, now)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create screenshot %q: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encode screenshot %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("write screenshot %q: %w", path, err)
	}
	return path, nil
}

// ExpandTemplate substitutes the {ts} placeholder with the local timestamp.
// An empty template falls back to DefaultTemplate.
func ExpandTemplate(template string, now time.Time) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	return strings.ReplaceAll(template, "{ts}", now.Local().Format(TimestampLayout))
}

func decode(raw []byte) (image.Image, error) {
	if len(raw) >= len(pngMagic) && bytes.Equal(raw[:len(pngMagic)], pngMagic) {
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode PNG display dump: %w", err)
		}
		return img, nil
	}
	img, err := bmp.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode BMP display dump: %w", err)
	}
	return img, nil
}
