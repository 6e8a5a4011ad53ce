package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit core.Texture // Emitted radiance
}

// NewDiffuseLight creates an emitter with constant radiance
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates an emitter whose radiance varies with a texture
func NewTexturedDiffuseLight(emit core.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter always absorbs; lights only emit
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted implements core.Emitter
func (d *DiffuseLight) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return d.Emit.Value(u, v, point)
}
