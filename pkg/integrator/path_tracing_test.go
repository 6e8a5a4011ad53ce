package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

func TestRayColor_DepthZeroIsBlack(t *testing.T) {
	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	ball := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	world := geometry.NewHittableList(ground, ball)
	background := NewSkyBackground()
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 100; i++ {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.RandomUnitVector(sampler))
		if c := RayColor(ray, background, world, 0, sampler); c != (core.Vec3{}) {
			t.Fatalf("Expected black at depth 0, got %v", c)
		}
	}
}

func TestRayColor_Background(t *testing.T) {
	world := geometry.NewHittableList()
	background := NewSolidBackground(core.NewVec3(0.1, 0.2, 0.3))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if c := RayColor(ray, background, world, 5, core.NewSeededSampler(1)); c != background.Value {
		t.Errorf("Expected background %v, got %v", background.Value, c)
	}
}

func TestRayColor_EmissiveSphere(t *testing.T) {
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, light))
	background := NewSolidBackground(core.Vec3{})
	sampler := core.NewSeededSampler(1)

	hitRay := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if c := RayColor(hitRay, background, world, 1, sampler); c != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected emission (4,4,4), got %v", c)
	}

	missRay := core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1))
	if c := RayColor(missRay, background, world, 1, sampler); c != (core.Vec3{}) {
		t.Errorf("Expected zero background, got %v", c)
	}
}

func TestRayColor_EmittedPlusAttenuatedBounce(t *testing.T) {
	// A mirror facing a light: one bounce returns albedo * emission
	mirror := geometry.NewXYRect(-10, 10, -10, 10, 0, material.NewMetal(core.NewVec3(0.5, 0.25, 1), 0))
	light := geometry.NewXYRect(-10, 10, -10, 10, 5, material.NewDiffuseLight(core.NewVec3(2, 2, 2)))
	world := geometry.NewHittableList(mirror, light)
	background := NewSolidBackground(core.Vec3{})
	sampler := core.NewSeededSampler(1)

	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	if c := RayColor(ray, background, world, 1, sampler); c != (core.Vec3{}) {
		t.Errorf("Depth 1 stops after the mirror, expected black, got %v", c)
	}

	expected := core.NewVec3(1, 0.5, 2)
	if c := RayColor(ray, background, world, 2, sampler); c.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestRayColor_MirrorsTerminate(t *testing.T) {
	// Two facing mirrors bounce forever without the depth limit
	m := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)
	world := geometry.NewHittableList(
		geometry.NewXYRect(-1, 1, -1, 1, 0, m),
		geometry.NewXYRect(-1, 1, -1, 1, 1, m),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 1))
	c := RayColor(ray, NewSolidBackground(core.NewVec3(1, 1, 1)), world, 50, core.NewSeededSampler(1))
	if c != (core.Vec3{}) {
		t.Errorf("Expected black after exhausting the bounce limit, got %v", c)
	}
}

func TestRayColor_IgnoresHitsBelowEpsilon(t *testing.T) {
	// Origin on the surface of the sphere looking outward: no self-hit
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuseLight(core.NewVec3(1, 1, 1))))
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	background := NewSolidBackground(core.NewVec3(0.5, 0.5, 0.5))
	if c := RayColor(ray, background, world, 3, core.NewSeededSampler(1)); c != background.Value {
		t.Errorf("Expected background, got %v", c)
	}
}

func TestPathTracingIntegrator_RayColor(t *testing.T) {
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, light))
	pt := NewPathTracingIntegrator(1, nil)

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if c := pt.RayColor(ray, world, core.NewSeededSampler(1)); c != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected (4,4,4), got %v", c)
	}
}

func TestGradientBackground(t *testing.T) {
	bg := NewSkyBackground()
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), bg.Top},
		{"straight down", core.NewVec3(0, -1, 0), bg.Bottom},
		{"horizon", core.NewVec3(1, 0, 0), bg.Top.Add(bg.Bottom).Multiply(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bg.Color(core.NewRay(core.Vec3{}, tt.direction.Multiply(3)))
			if math.Abs(c.Subtract(tt.expected).Length()) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}
