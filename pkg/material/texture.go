package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two textures in a 3D lattice of cells
type Checker struct {
	Even core.Texture
	Odd  core.Texture
}

// NewChecker creates a checker texture from two sub-textures
func NewChecker(even, odd core.Texture) *Checker {
	return &Checker{Even: even, Odd: odd}
}

// NewCheckerColors creates a checker texture alternating two solid colors
func NewCheckerColors(even, odd core.Vec3) *Checker {
	return NewChecker(NewSolidColor(even), NewSolidColor(odd))
}

// Value picks the odd texture where sin(10x)sin(10y)sin(10z) is negative
func (c *Checker) Value(u, v float64, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, point)
	}
	return c.Even.Value(u, v, point)
}
