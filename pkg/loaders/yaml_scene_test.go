package loaders

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
)

const testSceneYAML = `
camera:
  look_from: [0, 0, 10]
  look_at: [0, 0, 0]
  vup: [0, 1, 0]
  vfov: 30
  aspect: 1.5
  time0: 0
  time1: 1
background:
  type: gradient
  top: [0.5, 0.7, 1.0]
  bottom: [1, 1, 1]
render:
  samples_per_pixel: 16
  max_depth: 8
textures:
  checker:
    type: checker
    even: white
    odd_color: [0.2, 0.3, 0.1]
  white:
    type: solid
    color: [0.9, 0.9, 0.9]
  marble:
    type: noise
    scale: 4
materials:
  ground:
    type: lambertian
    texture: checker
  marble:
    type: lambertian
    texture: marble
  glass:
    type: dielectric
    ir: 1.5
  light:
    type: diffuse_light
    emit: [7, 7, 7]
objects:
  - type: sphere
    center: [0, -1000, 0]
    radius: 1000
    material: ground
  - type: moving_sphere
    center: [0, 2, 0]
    center1: [0, 2.5, 0]
    time0: 0
    time1: 1
    radius: 0.5
    material: marble
  - type: xz_rect
    x0: -1
    x1: 1
    z0: -1
    z1: 1
    k: 5
    material: light
  - type: box
    min: [0, 0, 0]
    max: [1, 1, 1]
    material: glass
    rotate_y: 90
    translate: [3, 0, 0]
  - type: sphere
    center: [-3, 1, 0]
    radius: 1
    medium:
      density: 0.5
      color: [1, 1, 1]
  - type: group
    bvh: true
    translate: [0, 0, -5]
    objects:
      - type: sphere
        center: [0, 1, 0]
        radius: 0.25
        material: glass
      - type: sphere
        center: [1, 1, 0]
        radius: 0.25
        material: marble
bvh: true
`

func TestYAMLScene_Build(t *testing.T) {
	desc, err := ParseYAMLScene(strings.NewReader(testSceneYAML))
	if err != nil {
		t.Fatalf("ParseYAMLScene failed: %v", err)
	}

	built, err := desc.Build(BuildOptions{Seed: 1})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if built.Camera.LookFrom != core.NewVec3(0, 0, 10) || built.Camera.VFov != 30 || built.Camera.AspectRatio != 1.5 {
		t.Errorf("Unexpected camera %+v", built.Camera)
	}
	if built.Camera.Time1 != 1 {
		t.Errorf("Expected time1 1, got %f", built.Camera.Time1)
	}
	if built.SamplesPerPixel != 16 || built.MaxDepth != 8 {
		t.Errorf("Expected 16 spp depth 8, got %d/%d", built.SamplesPerPixel, built.MaxDepth)
	}

	bg, ok := built.Background.(integrator.GradientBackground)
	if !ok || bg.Top != core.NewVec3(0.5, 0.7, 1.0) {
		t.Errorf("Expected gradient background, got %#v", built.Background)
	}

	if _, ok := built.World.(*geometry.BVHNode); !ok {
		t.Fatalf("Expected BVH world, got %T", built.World)
	}
	if built.BVHStats == nil || built.BVHStats.Primitives != 6 {
		t.Errorf("Expected BVH over 6 top-level objects, got %+v", built.BVHStats)
	}

	// Straight down onto the checker ground at the origin
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 2), core.NewVec3(0, -1, 0))
	hit, ok := built.World.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected to hit the ground")
	}
	lambertian, ok := hit.Material.(*material.Lambertian)
	if !ok {
		t.Fatalf("Expected lambertian ground, got %T", hit.Material)
	}
	if _, ok := lambertian.Albedo.(*material.Checker); !ok {
		t.Errorf("Expected checker albedo, got %T", lambertian.Albedo)
	}

	// Looking up at the light
	ray = core.NewRay(core.NewVec3(0, 4, 0.1), core.NewVec3(0, 1, 0))
	hit, ok = built.World.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected to hit the light")
	}
	if _, ok := hit.Material.(core.Emitter); !ok || math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected emitter at t=1, got %T at t=%f", hit.Material, hit.T)
	}

	// The rotated box lands at x in [3,4], z in [-1,0]
	ray = core.NewRay(core.NewVec3(3.5, 0.5, 5), core.NewVec3(0, 0, -1))
	hit, ok = built.World.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1))
	if !ok || math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected to hit the transformed box at t=5, got hit=%t", ok)
	}

	// The grouped spheres are moved back by 5
	ray = core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(0, 0, -1))
	hit, ok = built.World.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1))
	if !ok || math.Abs(hit.T-4.75) > 1e-9 {
		t.Errorf("Expected to hit the grouped sphere at t=4.75, got hit=%t", ok)
	}
}

func TestYAMLScene_SharedMaterials(t *testing.T) {
	desc, err := ParseYAMLScene(strings.NewReader(`
materials:
  red:
    type: lambertian
    albedo: [0.65, 0.05, 0.05]
objects:
  - {type: sphere, center: [0, 0, -1], radius: 0.5, material: red}
  - {type: sphere, center: [2, 0, -1], radius: 0.5, material: red}
`))
	if err != nil {
		t.Fatalf("ParseYAMLScene failed: %v", err)
	}
	built, err := desc.Build(BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	list, ok := built.World.(*geometry.HittableList)
	if !ok || list.Len() != 2 {
		t.Fatalf("Expected a list of 2 objects, got %T", built.World)
	}
	a := list.Objects[0].(*geometry.Sphere).Material
	b := list.Objects[1].(*geometry.Sphere).Material
	if a != b {
		t.Error("Expected both spheres to share one material instance")
	}
	if _, ok := built.Background.(integrator.SolidBackground); !ok {
		t.Errorf("Expected solid background by default, got %T", built.Background)
	}
}

func TestYAMLScene_AggregatesErrors(t *testing.T) {
	desc, err := ParseYAMLScene(strings.NewReader(`
camera:
  look_from: [0, 0]
materials:
  shiny:
    type: metal
    albedo: [1, 1, 1]
    fuzz: 3
objects:
  - {type: sphere, center: [0, 0, 0], radius: 1, material: missing}
  - {type: torus, material: shiny}
  - {type: sphere, center: [0, 0, 0], radius: 1}
`))
	if err != nil {
		t.Fatalf("ParseYAMLScene failed: %v", err)
	}

	_, err = desc.Build(BuildOptions{})
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	errs := multierr.Errors(err)
	expected := []string{
		"camera.look_from: expected 3 components",
		"materials.shiny.fuzz",
		`unknown material "missing"`,
		`unknown object type "torus"`,
		"objects[2]: missing material",
	}
	if len(errs) != len(expected) {
		t.Fatalf("Expected %d errors, got %d: %v", len(expected), len(errs), err)
	}
	for _, want := range expected {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error mentioning %q, got %v", want, err)
		}
	}
}

func TestYAMLScene_TextureErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "cycle",
			yaml: `
textures:
  a: {type: checker, even: b, odd_color: [0, 0, 0]}
  b: {type: checker, even: a, odd_color: [0, 0, 0]}
materials:
  m: {type: lambertian, texture: a}
objects:
  - {type: sphere, center: [0, 0, 0], radius: 1, material: m}
`,
			want: "texture cycle",
		},
		{
			name: "unknown reference",
			yaml: `
materials:
  m: {type: lambertian, texture: nowhere}
objects:
  - {type: sphere, center: [0, 0, 0], radius: 1, material: m}
`,
			want: `unknown texture "nowhere"`,
		},
		{
			name: "missing image",
			yaml: `
textures:
  earth: {type: image, file: does-not-exist.jpg}
materials:
  m: {type: lambertian, texture: earth}
objects:
  - {type: sphere, center: [0, 0, 0], radius: 1, material: m}
`,
			want: "does-not-exist.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := ParseYAMLScene(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("ParseYAMLScene failed: %v", err)
			}
			_, err = desc.Build(BuildOptions{TextureDir: t.TempDir()})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestYAMLScene_ImageTexture(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "map.png"))
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	if err := png.Encode(f, testImage()); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	scenePath := filepath.Join(dir, "scene.yaml")
	sceneYAML := `
textures:
  map: {type: image, file: map.png}
materials:
  m: {type: lambertian, texture: map}
objects:
  - {type: sphere, center: [0, 0, 0], radius: 2, material: m}
`
	if err := os.WriteFile(scenePath, []byte(sceneYAML), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	desc, err := LoadYAMLScene(scenePath)
	if err != nil {
		t.Fatalf("LoadYAMLScene failed: %v", err)
	}
	built, err := desc.Build(BuildOptions{TextureDir: dir})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	sphere := built.World.(*geometry.HittableList).Objects[0].(*geometry.Sphere)
	tex := sphere.Material.(*material.Lambertian).Albedo.(*material.ImageTexture)
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}
}

func TestParseYAMLScene_UnknownField(t *testing.T) {
	_, err := ParseYAMLScene(strings.NewReader("objects:\n  - {type: sphere, radius: 1, colour: red}\n"))
	if err == nil {
		t.Error("Expected error for unknown field")
	}
}
