package renderer

import (
	"context"
	"image"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world           core.Hittable
	camera          *Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for a world seen through camera
func NewTileRenderer(world core.Hittable, camera *Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTileBounds renders pixels within bounds into frame. The context is checked
// between pixels; on cancellation the number of finished pixels and ctx.Err() are returned.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, frame *Frame, sampler core.Sampler, progress *Progress) (int, error) {
	done := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return done, err
			}
			frame.SetPixel(x, y, tr.samplePixel(x, y, sampler), tr.samplesPerPixel)
			done++
			progress.Add(1)
		}
	}
	return done, nil
}

// samplePixel returns the sum of samplesPerPixel jittered samples through pixel (x, y)
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	// Image rows run top to bottom, the viewport's t axis bottom to top
	j := tr.height - 1 - y

	colorAccum := core.Vec3{}
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := (float64(j) + jitter.Y) / float64(tr.height)

		ray := tr.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, sampler))
	}
	return colorAccum
}
