package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// ShadowAcneEpsilon is the smallest accepted hit parameter, so a scattered ray
// does not re-hit the surface it just left
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSolidBackground(core.Vec3{})
	}
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	return RayColor(ray, pt.Background, world, pt.MaxDepth, sampler)
}

// RayColor returns emitted + attenuation * RayColor(scattered, depth-1) at the
// nearest hit, the background on a miss, and black once depth reaches zero
func RayColor(ray core.Ray, background Background, world core.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return background.Color(ray)
	}

	emitted := emittedLight(hit)
	if hit.Material == nil {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return emitted
	}

	incoming := RayColor(scatter.Scattered, background, world, depth-1, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// emittedLight returns the emitted light from a material if it's emissive
func emittedLight(hit *core.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		return emitter.Emitted(hit.U, hit.V, hit.Point)
	}
	return core.Vec3{}
}
