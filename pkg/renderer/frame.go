package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// maxChannel keeps a fully saturated channel below 1 so that *256 never reaches 256
const maxChannel = 0.999

// RGB is a tone-mapped 8-bit pixel
type RGB struct {
	R, G, B uint8
}

// Frame holds a rendered image: tone-mapped bytes plus the averaged linear radiance
type Frame struct {
	Width, Height int
	Pixels        [][]RGB     // Pixels[y][x], row 0 at the top
	Linear        []core.Vec3 // Averaged linear radiance, row-major, row 0 at the top
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	pixels := make([][]RGB, height)
	for y := range pixels {
		pixels[y] = make([]RGB, width)
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Linear: make([]core.Vec3, width*height),
	}
}

// SetPixel stores the accumulated sample sum for pixel (x, y)
func (f *Frame) SetPixel(x, y int, sum core.Vec3, samples int) {
	f.Linear[y*f.Width+x] = sum.Multiply(1.0 / float64(samples))
	f.Pixels[y][x] = ToneMap(sum, samples)
}

// LinearAt returns the averaged linear radiance of pixel (x, y)
func (f *Frame) LinearAt(x, y int) core.Vec3 {
	return f.Linear[y*f.Width+x]
}

// Image converts the frame to an RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.Pixels[y][x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// ToneMap averages a sample sum, applies gamma 2 and quantizes to bytes.
// Each channel is clamped to [0, 0.999] before scaling by 256 and truncating.
func ToneMap(sum core.Vec3, samples int) RGB {
	scale := 1.0 / float64(samples)
	return RGB{
		R: toByte(sum.X * scale),
		G: toByte(sum.Y * scale),
		B: toByte(sum.Z * scale),
	}
}

func toByte(c float64) uint8 {
	// NaN from a degenerate sample would otherwise survive the clamp
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	g := math.Sqrt(c)
	if g > maxChannel {
		g = maxChannel
	}
	return uint8(256 * g)
}

// CalculateAverageLuminance returns the average relative luminance of the frame's linear radiance
func (f *Frame) CalculateAverageLuminance() float64 {
	if len(f.Linear) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range f.Linear {
		total += c.Luminance()
	}
	return total / float64(len(f.Linear))
}
