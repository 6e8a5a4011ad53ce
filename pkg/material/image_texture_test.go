package material

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestImageTexture_Value(t *testing.T) {
	// Layout:
	//   white black   (row 0, top)
	//   red   blue    (row 1, bottom)
	pixels := []byte{
		255, 255, 255, 0, 0, 0,
		255, 0, 0, 0, 0, 255,
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"bottom-left", 0.1, 0.1, red},
		{"bottom-right", 0.9, 0.1, blue},
		{"top-left", 0.1, 0.9, white},
		{"top-right", 0.9, 0.9, black},
		{"u=1 clamps to last column", 1.0, 0.9, black},
		{"v=0 clamps to last row", 0.1, 0.0, red},
		{"negative coordinates clamp", -3, -3, red},
		{"large coordinates clamp", 5, 5, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Value(tt.u, tt.v, core.Vec3{}); got != tt.expected {
				t.Errorf("UV(%g,%g): expected %v, got %v", tt.u, tt.v, tt.expected, got)
			}
		})
	}
}

func TestImageTexture_ScalesChannels(t *testing.T) {
	texture := NewImageTexture(1, 1, []byte{51, 102, 204})
	got := texture.Value(0.5, 0.5, core.Vec3{})
	expected := core.NewVec3(0.2, 0.4, 0.8)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestImageTexture_EmptyFallsBackToCyan(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Value(0.5, 0.5, core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan debug color, got %v", got)
	}
}
