package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards all output
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, facing against the incoming ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Texture coordinates in [0,1]
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything a ray can be intersected with.
// Implementations are immutable once built and safe for concurrent queries.
type Hittable interface {
	// Hit returns the nearest intersection with t in [tMin, tMax]. The sampler is
	// only consumed by primitives that are themselves stochastic (participating media).
	Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool)

	// BoundingBox returns the box enclosing the object over the shutter interval,
	// or false if the object cannot be bounded.
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns false when the material absorbs the incoming ray
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(u, v float64, point Vec3) Vec3
}

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at given texture coordinates and 3D point
	Value(u, v float64, point Vec3) Vec3
}
