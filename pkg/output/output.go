// Package output writes rendered frames to image files and HDR framebuffer dumps.
package output

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// Format selects the file encoding of a frame
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
	FormatPPM Format = "ppm"
	FormatRaw Format = "raw" // linear float32 framebuffer
)

// Compression selects the codec of a raw framebuffer
type Compression string

const (
	CompressionZstd   Compression = "zstd"
	CompressionSnappy Compression = "snappy"
)

var (
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrUnknownCompression = errors.New("unknown compression")
)

// Formats lists every supported format
var Formats = []Format{FormatPNG, FormatBMP, FormatPPM, FormatRaw}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ParseCompression validates a compression name
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(name)); c {
	case CompressionZstd, CompressionSnappy:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// Extension returns the conventional file extension, including the dot
func Extension(format Format, compression Compression) string {
	if format != FormatRaw {
		return "." + string(format)
	}
	if compression == CompressionSnappy {
		return ".rgbf.sz"
	}
	return ".rgbf.zst"
}

// Encode writes the frame to w in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format, compression Compression) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, frame.Image())
	case FormatBMP:
		return bmp.Encode(w, frame.Image())
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatRaw:
		return WriteRaw(w, frame, compression)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile encodes the frame into path, creating parent directories as needed
func WriteFile(path string, frame *renderer.Frame, format Format, compression Compression) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	if err := Encode(file, frame, format, compression); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
