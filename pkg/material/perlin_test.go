package material

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestPerlin_NoiseBounded(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(42))
	sampler := core.NewSeededSampler(1)

	for i := 0; i < 2000; i++ {
		p := core.RandomVec3InRange(sampler, -50, 50)
		n := perlin.Noise(p)
		if n < -1 || n > 1 {
			t.Fatalf("Noise %f at %v outside [-1, 1]", n, p)
		}
	}
}

func TestPerlin_NoiseContinuous(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(42))
	sampler := core.NewSeededSampler(2)
	const eps = 1e-6

	for i := 0; i < 1000; i++ {
		p := core.RandomVec3InRange(sampler, -20, 20)
		offset := core.RandomUnitVector(sampler).Multiply(eps)
		diff := math.Abs(perlin.Noise(p) - perlin.Noise(p.Add(offset)))
		// gradient magnitude is bounded by a small constant
		if diff > 10*eps {
			t.Fatalf("Noise jumped by %g between %v and %v", diff, p, p.Add(offset))
		}
	}
}

func TestPerlin_ZeroAtLatticePoints(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(42))
	for _, p := range []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(3, -2, 7),
		core.NewVec3(-100, 255, 256),
	} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Expected zero noise at lattice point %v, got %f", p, n)
		}
	}
}

func TestPerlin_Deterministic(t *testing.T) {
	a := NewPerlin(core.NewSeededSampler(5))
	b := NewPerlin(core.NewSeededSampler(5))
	p := core.NewVec3(1.3, 2.7, -0.4)
	if a.Noise(p) != b.Noise(p) {
		t.Error("Expected identical noise for identical seeds")
	}
}

func TestPerlin_PermutationsArePermutations(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(9))
	for name, perm := range map[string][perlinPointCount]int{
		"x": perlin.permX,
		"y": perlin.permY,
		"z": perlin.permZ,
	} {
		var seen [perlinPointCount]bool
		for _, v := range perm {
			if v < 0 || v >= perlinPointCount || seen[v] {
				t.Fatalf("perm%s is not a permutation of [0,255]", name)
			}
			seen[v] = true
		}
	}
}

func TestPerlin_TurbNonNegative(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(42))
	sampler := core.NewSeededSampler(3)
	for i := 0; i < 200; i++ {
		p := core.RandomVec3InRange(sampler, -5, 5)
		if turb := perlin.Turb(p, 7); turb < 0 || turb > 2 {
			t.Fatalf("Turbulence %f out of range at %v", turb, p)
		}
	}
}
