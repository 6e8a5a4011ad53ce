package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// colorScale converts 8-bit channels to [0,1]
const colorScale = 1.0 / 255.0

// ImageTexture provides color from a decoded RGB byte buffer
type ImageTexture struct {
	Width  int
	Height int
	Pixels []byte // Row-major RGB: Pixels[3*(y*Width+x)+c]
}

// NewImageTexture creates a new image texture over width*height*3 bytes
func NewImageTexture(width, height int, pixels []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture at given UV coordinates using nearest-neighbor filtering.
// Coordinates are clamped to [0,1] and v is flipped so v=0 is the bottom row.
// An empty image yields solid cyan so missing data is visible in renders.
func (t *ImageTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height*3 {
		return core.NewVec3(0, 1, 1)
	}

	u = clamp01(u)
	v = 1.0 - clamp01(v)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// u or v of exactly 1.0 maps one past the last pixel
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	i := 3 * (y*t.Width + x)
	return core.NewVec3(
		float64(t.Pixels[i])*colorScale,
		float64(t.Pixels[i+1])*colorScale,
		float64(t.Pixels[i+2])*colorScale,
	)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
