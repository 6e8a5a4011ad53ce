package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder

	"github.com/df07/go-raytracer/pkg/material"
)

// ErrUnsupportedFormat is returned for image data no registered decoder recognizes
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageData contains a decoded image as tightly packed 8-bit RGB rows, top row first
type ImageData struct {
	Width  int
	Height int
	Format string // Decoder name: png, jpeg, gif or bmp
	Pixels []byte
}

// At returns the RGB bytes of pixel (x, y)
func (d *ImageData) At(x, y int) (r, g, b byte) {
	i := 3 * (y*d.Width + x)
	return d.Pixels[i], d.Pixels[i+1], d.Pixels[i+2]
}

// Texture wraps the pixels in an image texture
func (d *ImageData) Texture() *material.ImageTexture {
	return material.NewImageTexture(d.Width, d.Height, d.Pixels)
}

// LoadImage loads a PNG, JPEG, GIF or BMP image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes an image stream, auto-detecting the format from its header
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, 0, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Straight alpha keeps translucent texels at their stored color
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			pixels = append(pixels, c.R, c.G, c.B)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: pixels,
	}, nil
}
