package loaders

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/df07/go-raytracer/pkg/core"
)

// testImage is a 2x2 image: white, red / green, blue
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func checkTestPixels(t *testing.T, data *ImageData) {
	t.Helper()
	if data.Width != 2 || data.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", data.Width, data.Height)
	}
	if len(data.Pixels) != 12 {
		t.Fatalf("Expected 12 bytes, got %d", len(data.Pixels))
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b byte
	}{
		{"top-left white", 0, 0, 255, 255, 255},
		{"top-right red", 1, 0, 255, 0, 0},
		{"bottom-left green", 0, 1, 0, 255, 0},
		{"bottom-right blue", 1, 1, 0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b := data.At(tt.x, tt.y)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%s: expected (%d,%d,%d), got (%d,%d,%d)", tt.name, tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func TestLoadImage_PNG(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, testImage()); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	data, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if data.Format != "png" {
		t.Errorf("Expected format png, got %s", data.Format)
	}
	checkTestPixels(t, data)
}

func TestDecodeImage_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatalf("Failed to encode BMP: %v", err)
	}

	data, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if data.Format != "bmp" {
		t.Errorf("Expected format bmp, got %s", data.Format)
	}
	checkTestPixels(t, data)
}

func TestDecodeImage_Unsupported(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeImage_TranslucentTexels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	data, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	tests := []struct {
		x       int
		r, g, b byte
	}{
		{0, 200, 100, 50},
		{1, 10, 20, 30},
	}
	for _, tt := range tests {
		r, g, b := data.At(tt.x, 0)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("Pixel %d: expected (%d,%d,%d), got (%d,%d,%d)", tt.x, tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func TestLoadImage_NotFound(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nonexistent.png"))
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestImageData_Texture(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	data, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	// v=1 is the top row of the image
	tex := data.Texture()
	if got := tex.Value(0.75, 0.9, core.Vec3{}); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red at the top right, got %v", got)
	}
	if got := tex.Value(0.25, 0.1, core.Vec3{}); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected green at the bottom left, got %v", got)
	}
}
