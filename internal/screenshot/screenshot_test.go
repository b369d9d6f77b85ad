package screenshot_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"ds1054z/internal/screenshot"
)

func whiteBMP(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	return buf.Bytes()
}

func TestComposeDimsImage(t *testing.T) {
	raw := whiteBMP(t, 4, 3)

	composed, err := screenshot.Compose(raw, 0.5)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := composed.Bounds(); got.Dx() != 4 || got.Dy() != 3 {
		t.Fatalf("bounds = %v", got)
	}

	r, g, b, _ := composed.At(1, 1).RGBA()
	// White under a half-alpha black mask lands mid-gray.
	for _, channel := range []uint32{r, g, b} {
		if channel>>8 < 0x70 || channel>>8 > 0x90 {
			t.Fatalf("pixel not dimmed to mid-gray: r=%x g=%x b=%x", r>>8, g>>8, b>>8)
		}
	}
}

func TestComposeZeroRatioLeavesPixels(t *testing.T) {
	raw := whiteBMP(t, 2, 2)

	composed, err := screenshot.Compose(raw, 0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	r, _, _, _ := composed.At(0, 0).RGBA()
	if r>>8 != 0xff {
		t.Fatalf("pixel changed with zero overlay: %x", r>>8)
	}
}

func TestComposeClampsOutOfRangeRatio(t *testing.T) {
	raw := whiteBMP(t, 2, 2)

	composed, err := screenshot.Compose(raw, 7.5)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	r, g, b, _ := composed.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("ratio above 1 should black out: r=%x g=%x b=%x", r, g, b)
	}

	if got := screenshot.Clamp(-3); got != 0 {
		t.Fatalf("Clamp(-3) = %v", got)
	}
}

func TestComposeAcceptsPNGDump(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	if _, err := screenshot.Compose(buf.Bytes(), 0.5); err != nil {
		t.Fatalf("Compose PNG: %v", err)
	}
}

func TestComposeRejectsGarbage(t *testing.T) {
	if _, err := screenshot.Compose([]byte("not an image"), 0.5); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestExpandTemplate(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 9, 0, time.Local)

	got := screenshot.ExpandTemplate("shot_{ts}.png", now)
	if got != "shot_2026-08-28_14-30-09.png" {
		t.Fatalf("ExpandTemplate = %q", got)
	}

	if got := screenshot.ExpandTemplate("", now); got != "ds1054z-scope-display_2026-08-28_14-30-09.png" {
		t.Fatalf("default template = %q", got)
	}
}

func TestSaveWritesDecodablePNG(t *testing.T) {
	raw := whiteBMP(t, 4, 4)
	composed, err := screenshot.Compose(raw, 0.6)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	template := filepath.Join(t.TempDir(), "capture_{ts}.png")
	path, err := screenshot.Save(composed, template, time.Now())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved file: %v", err)
	}
	defer file.Close()
	if _, err := png.Decode(file); err != nil {
		t.Fatalf("saved file is not valid PNG: %v", err)
	}
}
