package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestCamera_PinholeRays(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1.0,
	})
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(1, 1, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected pinhole origin, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_Forward(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(3, 0, 0),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 16.0 / 9.0,
	})

	if forward := camera.Forward(); !vecNear(forward, core.NewVec3(-1, 0, 0), 1e-12) {
		t.Errorf("Expected forward direction (-1,0,0), got %v", forward)
	}
}

func TestCamera_DepthOfField(t *testing.T) {
	config := CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   1.5,
		Aperture:      2.0,
		FocusDistance: 0, // focus on LookAt
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(7)
	forward := camera.Forward()

	moved := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		// Lens samples stay on the lens disk
		offset := ray.Origin.Subtract(config.LookFrom)
		if offset.Length() > config.Aperture/2+1e-9 {
			t.Fatalf("Origin %v outside the lens", ray.Origin)
		}
		if math.Abs(offset.Dot(forward)) > 1e-9 {
			t.Fatalf("Origin %v not in the lens plane", ray.Origin)
		}
		if offset.Length() > 1e-3 {
			moved = true
		}

		// Every ray through the image center converges on the focus point
		if focus := ray.Origin.Add(ray.Direction); !vecNear(focus, config.LookAt, 1e-9) {
			t.Fatalf("Expected ray through %v, got %v", config.LookAt, focus)
		}
	}
	if !moved {
		t.Error("Expected lens sampling to move the ray origin")
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	base := CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VFov:        90,
		AspectRatio: 1,
	}

	t.Run("open shutter", func(t *testing.T) {
		config := base
		config.Time0, config.Time1 = 0, 1
		camera := NewCamera(config)
		sampler := core.NewSeededSampler(3)

		minTime, maxTime := 1.0, 0.0
		for i := 0; i < 1000; i++ {
			ray := camera.GetRay(0.5, 0.5, sampler)
			minTime = math.Min(minTime, ray.Time)
			maxTime = math.Max(maxTime, ray.Time)
		}
		if minTime < 0 || maxTime >= 1 {
			t.Errorf("Expected times in [0,1), got [%f,%f]", minTime, maxTime)
		}
		if maxTime-minTime < 0.9 {
			t.Errorf("Expected times spread across the shutter, got [%f,%f]", minTime, maxTime)
		}
	})

	t.Run("instant shutter", func(t *testing.T) {
		config := base
		config.Time0, config.Time1 = 0.5, 0.5
		camera := NewCamera(config)
		if ray := camera.GetRay(0.2, 0.7, core.NewSeededSampler(3)); ray.Time != 0.5 {
			t.Errorf("Expected time 0.5, got %f", ray.Time)
		}
	})
}
