package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along ray from world
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3
}

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// SolidBackground is a constant background color
type SolidBackground struct {
	Value core.Vec3
}

// NewSolidBackground creates a constant background
func NewSolidBackground(color core.Vec3) SolidBackground {
	return SolidBackground{Value: color}
}

// Color returns the constant color
func (b SolidBackground) Color(ray core.Ray) core.Vec3 {
	return b.Value
}

// GradientBackground blends from Bottom to Top with the ray's vertical direction
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a vertical sky gradient
func NewGradientBackground(top, bottom core.Vec3) GradientBackground {
	return GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground creates the classic white-to-blue sky gradient
func NewSkyBackground() GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Color returns a gradient color based on ray direction
func (b GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
