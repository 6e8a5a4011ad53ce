package material

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestChecker_Value(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerColors(even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		// sin(1)^3 > 0
		{"all positive", core.NewVec3(0.1, 0.1, 0.1), even},
		// sin(-1)*sin(1)*sin(1) < 0
		{"one negative", core.NewVec3(-0.1, 0.1, 0.1), odd},
		// two negatives cancel
		{"two negative", core.NewVec3(-0.1, -0.1, 0.1), even},
		// zero product counts as even
		{"on boundary", core.NewVec3(0, 0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Value(0, 0, tt.point); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestChecker_NestedTextures(t *testing.T) {
	inner := NewCheckerColors(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	outer := NewChecker(inner, NewSolidColor(core.NewVec3(0, 0, 1)))

	got := outer.Value(0, 0, core.NewVec3(0.1, 0.1, 0.1))
	if got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected nested even color, got %v", got)
	}
}

func TestSolidColor_Value(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	texture := NewSolidColor(color)
	if got := texture.Value(0.7, 0.3, core.NewVec3(5, 5, 5)); got != color {
		t.Errorf("Expected %v, got %v", color, got)
	}
}

func TestNoiseTexture_Range(t *testing.T) {
	texture := NewNoiseTexture(4, core.NewSeededSampler(42))
	sampler := core.NewSeededSampler(7)

	for i := 0; i < 500; i++ {
		p := core.RandomVec3InRange(sampler, -10, 10)
		c := texture.Value(0, 0, p)
		if c.X < 0 || c.X > 1 || math.IsNaN(c.X) {
			t.Fatalf("Noise texture value %v out of [0,1] at %v", c, p)
		}
		if c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Expected gray value, got %v", c)
		}
	}
}
