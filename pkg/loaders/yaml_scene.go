package loaders

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// SceneDescription is a YAML scene file: camera, background, named textures
// and materials, and a tree of objects
type SceneDescription struct {
	Camera     CameraSpec              `yaml:"camera"`
	Background BackgroundSpec          `yaml:"background"`
	Render     RenderSpec              `yaml:"render"`
	Textures   map[string]TextureSpec  `yaml:"textures"`
	Materials  map[string]MaterialSpec `yaml:"materials"`
	Objects    []ObjectSpec            `yaml:"objects"`
	BVH        bool                    `yaml:"bvh"`
}

// Vec is a three-component vector written as a YAML sequence
type Vec []float64

// CameraSpec mirrors renderer.CameraConfig
type CameraSpec struct {
	LookFrom  Vec     `yaml:"look_from"`
	LookAt    Vec     `yaml:"look_at"`
	Up        Vec     `yaml:"vup"`
	VFov      float64 `yaml:"vfov"`
	Aspect    float64 `yaml:"aspect"`
	Aperture  float64 `yaml:"aperture"`
	FocusDist float64 `yaml:"focus_dist"`
	Time0     float64 `yaml:"time0"`
	Time1     float64 `yaml:"time1"`
}

// BackgroundSpec selects a solid color or a vertical gradient
type BackgroundSpec struct {
	Type   string `yaml:"type"` // solid (default) or gradient
	Color  Vec    `yaml:"color"`
	Top    Vec    `yaml:"top"`
	Bottom Vec    `yaml:"bottom"`
}

// RenderSpec holds the scene's recommended sampling settings
type RenderSpec struct {
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	MaxDepth        int `yaml:"max_depth"`
}

// TextureSpec describes a texture. Checker children are named textures or colors.
type TextureSpec struct {
	Type      string  `yaml:"type"` // solid, checker, noise, image
	Color     Vec     `yaml:"color"`
	Even      string  `yaml:"even"`
	Odd       string  `yaml:"odd"`
	EvenColor Vec     `yaml:"even_color"`
	OddColor  Vec     `yaml:"odd_color"`
	Scale     float64 `yaml:"scale"`
	File      string  `yaml:"file"`
}

// MaterialSpec describes a material. Texture takes precedence over the color fields.
type MaterialSpec struct {
	Type    string  `yaml:"type"` // lambertian, metal, dielectric, diffuse_light, isotropic
	Albedo  Vec     `yaml:"albedo"`
	Emit    Vec     `yaml:"emit"`
	Texture string  `yaml:"texture"`
	Fuzz    float64 `yaml:"fuzz"`
	IR      float64 `yaml:"ir"`
}

// MediumSpec turns an object into the boundary of a constant-density volume
type MediumSpec struct {
	Density float64 `yaml:"density"`
	Color   Vec     `yaml:"color"`
	Texture string  `yaml:"texture"`
}

// ObjectSpec describes one object. Wrappers apply in the order medium, rotate_y, translate.
type ObjectSpec struct {
	Type     string  `yaml:"type"` // sphere, moving_sphere, xy_rect, xz_rect, yz_rect, box, group
	Material string  `yaml:"material"`
	Center   Vec     `yaml:"center"`
	Center1  Vec     `yaml:"center1"`
	Time0    float64 `yaml:"time0"`
	Time1    float64 `yaml:"time1"`
	Radius   float64 `yaml:"radius"`
	X0       float64 `yaml:"x0"`
	X1       float64 `yaml:"x1"`
	Y0       float64 `yaml:"y0"`
	Y1       float64 `yaml:"y1"`
	Z0       float64 `yaml:"z0"`
	Z1       float64 `yaml:"z1"`
	K        float64 `yaml:"k"`
	Min      Vec     `yaml:"min"`
	Max      Vec     `yaml:"max"`

	Objects []ObjectSpec `yaml:"objects"` // group children
	BVH     bool         `yaml:"bvh"`     // build the group as a BVH

	Medium    *MediumSpec `yaml:"medium"`
	RotateY   float64     `yaml:"rotate_y"`
	Translate Vec         `yaml:"translate"`
}

// BuildOptions configures scene construction
type BuildOptions struct {
	Seed       int64  // Seeds noise textures and BVH axis choices
	TextureDir string // Base directory for relative image paths
}

// BuiltScene is a scene description turned into renderable objects
type BuiltScene struct {
	World           core.Hittable
	Camera          renderer.CameraConfig
	Background      integrator.Background
	SamplesPerPixel int
	MaxDepth        int
	BVHStats        *geometry.BVHStats // nil when the world is a plain list
}

// LoadYAMLScene reads and parses a YAML scene description
func LoadYAMLScene(filename string) (*SceneDescription, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	desc, err := ParseYAMLScene(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ParseYAMLScene parses a YAML scene description
func ParseYAMLScene(r io.Reader) (*SceneDescription, error) {
	var desc SceneDescription
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &desc, nil
}

// sceneBuilder resolves names while building; every problem is collected rather
// than stopping at the first
type sceneBuilder struct {
	desc      *SceneDescription
	opts      BuildOptions
	sampler   core.Sampler
	textures  map[string]core.Texture
	materials map[string]core.Material
	err       error
}

func (b *sceneBuilder) fail(format string, args ...interface{}) {
	b.err = multierr.Append(b.err, fmt.Errorf(format, args...))
}

// Build constructs the scene. All validation errors are returned together;
// use multierr.Errors to list them.
func (d *SceneDescription) Build(opts BuildOptions) (*BuiltScene, error) {
	b := &sceneBuilder{
		desc:      d,
		opts:      opts,
		sampler:   core.NewSeededSampler(opts.Seed),
		textures:  make(map[string]core.Texture),
		materials: make(map[string]core.Material),
	}

	camera := b.camera()
	background := b.background()

	// Sorted so that noise tables are generated in a stable order
	for _, name := range sortedKeys(d.Textures) {
		b.textures[name] = b.texture(name, d.Textures[name], map[string]bool{})
	}
	for _, name := range sortedKeys(d.Materials) {
		b.materials[name] = b.material(name, d.Materials[name])
	}

	if len(d.Objects) == 0 {
		b.fail("scene has no objects")
	}
	objects := make([]core.Hittable, 0, len(d.Objects))
	for i, spec := range d.Objects {
		if obj := b.object(fmt.Sprintf("objects[%d]", i), spec); obj != nil {
			objects = append(objects, obj)
		}
	}

	if b.err != nil {
		return nil, b.err
	}

	built := &BuiltScene{
		Camera:          camera,
		Background:      background,
		SamplesPerPixel: d.Render.SamplesPerPixel,
		MaxDepth:        d.Render.MaxDepth,
	}

	if d.BVH {
		bvh, err := geometry.NewBVH(objects, camera.Time0, camera.Time1, b.sampler)
		if err != nil {
			return nil, fmt.Errorf("failed to build BVH: %w", err)
		}
		stats := bvh.Stats()
		built.World = bvh
		built.BVHStats = &stats
	} else {
		built.World = geometry.NewHittableList(objects...)
	}

	return built, nil
}

func (b *sceneBuilder) vec(field string, v Vec, fallback core.Vec3) core.Vec3 {
	if v == nil {
		return fallback
	}
	if len(v) != 3 {
		b.fail("%s: expected 3 components, got %d", field, len(v))
		return fallback
	}
	return core.NewVec3(v[0], v[1], v[2])
}

func (b *sceneBuilder) camera() renderer.CameraConfig {
	spec := b.desc.Camera
	config := renderer.CameraConfig{
		LookFrom:      b.vec("camera.look_from", spec.LookFrom, core.NewVec3(0, 0, 0)),
		LookAt:        b.vec("camera.look_at", spec.LookAt, core.NewVec3(0, 0, -1)),
		Up:            b.vec("camera.vup", spec.Up, core.NewVec3(0, 1, 0)),
		VFov:          spec.VFov,
		AspectRatio:   spec.Aspect,
		Aperture:      spec.Aperture,
		FocusDistance: spec.FocusDist,
		Time0:         spec.Time0,
		Time1:         spec.Time1,
	}
	if config.VFov == 0 {
		config.VFov = 40
	}
	if config.VFov < 0 || config.VFov >= 180 {
		b.fail("camera.vfov: %g outside (0,180)", config.VFov)
	}
	if config.AspectRatio == 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.LookFrom == config.LookAt {
		b.fail("camera: look_from and look_at coincide")
	}
	if config.Time1 < config.Time0 {
		b.fail("camera: time1 %g before time0 %g", config.Time1, config.Time0)
	}
	return config
}

func (b *sceneBuilder) background() integrator.Background {
	spec := b.desc.Background
	switch spec.Type {
	case "", "solid":
		return integrator.NewSolidBackground(b.vec("background.color", spec.Color, core.Vec3{}))
	case "gradient":
		sky := integrator.NewSkyBackground()
		return integrator.NewGradientBackground(
			b.vec("background.top", spec.Top, sky.Top),
			b.vec("background.bottom", spec.Bottom, sky.Bottom),
		)
	default:
		b.fail("background: unknown type %q", spec.Type)
		return integrator.NewSolidBackground(core.Vec3{})
	}
}

// texture builds a named texture; visiting guards against checker cycles
func (b *sceneBuilder) texture(name string, spec TextureSpec, visiting map[string]bool) core.Texture {
	if tex, ok := b.textures[name]; ok && tex != nil {
		return tex
	}
	field := "textures." + name
	switch spec.Type {
	case "solid":
		return material.NewSolidColor(b.vec(field+".color", spec.Color, core.Vec3{}))
	case "checker":
		visiting[name] = true
		even := b.checkerChild(field+".even", spec.Even, spec.EvenColor, visiting)
		odd := b.checkerChild(field+".odd", spec.Odd, spec.OddColor, visiting)
		delete(visiting, name)
		return material.NewChecker(even, odd)
	case "noise":
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		return material.NewNoiseTexture(scale, b.sampler)
	case "image":
		path := spec.File
		if !filepath.IsAbs(path) && b.opts.TextureDir != "" {
			path = filepath.Join(b.opts.TextureDir, path)
		}
		data, err := LoadImage(path)
		if err != nil {
			b.fail("%s: %w", field, err)
			return material.NewImageTexture(0, 0, nil)
		}
		return data.Texture()
	default:
		b.fail("%s: unknown texture type %q", field, spec.Type)
		return material.NewSolidColor(core.Vec3{})
	}
}

func (b *sceneBuilder) checkerChild(field, ref string, color Vec, visiting map[string]bool) core.Texture {
	if ref == "" {
		return material.NewSolidColor(b.vec(field+"_color", color, core.Vec3{}))
	}
	if visiting[ref] {
		b.fail("%s: texture cycle through %q", field, ref)
		return material.NewSolidColor(core.Vec3{})
	}
	spec, ok := b.desc.Textures[ref]
	if !ok {
		b.fail("%s: unknown texture %q", field, ref)
		return material.NewSolidColor(core.Vec3{})
	}
	tex := b.texture(ref, spec, visiting)
	b.textures[ref] = tex
	return tex
}

// colorTexture resolves a texture reference, falling back to a solid color
func (b *sceneBuilder) colorTexture(field, ref string, color Vec) core.Texture {
	if ref != "" {
		tex, ok := b.textures[ref]
		if !ok {
			b.fail("%s.texture: unknown texture %q", field, ref)
			return material.NewSolidColor(core.Vec3{})
		}
		return tex
	}
	return material.NewSolidColor(b.vec(field, color, core.Vec3{}))
}

func (b *sceneBuilder) material(name string, spec MaterialSpec) core.Material {
	field := "materials." + name
	switch spec.Type {
	case "lambertian":
		return material.NewTexturedLambertian(b.colorTexture(field+".albedo", spec.Texture, spec.Albedo))
	case "metal":
		if spec.Fuzz < 0 || spec.Fuzz > 1 {
			b.fail("%s.fuzz: %g outside [0,1]", field, spec.Fuzz)
		}
		return material.NewMetal(b.vec(field+".albedo", spec.Albedo, core.Vec3{}), spec.Fuzz)
	case "dielectric":
		if spec.IR <= 0 {
			b.fail("%s.ir: refractive index must be positive, got %g", field, spec.IR)
		}
		return material.NewDielectric(spec.IR)
	case "diffuse_light":
		return material.NewTexturedDiffuseLight(b.colorTexture(field+".emit", spec.Texture, spec.Emit))
	case "isotropic":
		return material.NewTexturedIsotropic(b.colorTexture(field+".albedo", spec.Texture, spec.Albedo))
	default:
		b.fail("%s: unknown material type %q", field, spec.Type)
		return nil
	}
}

func (b *sceneBuilder) lookupMaterial(field, name string) core.Material {
	if name == "" {
		// Volumes take their phase function from the medium, groups from their children
		return nil
	}
	mat, ok := b.materials[name]
	if !ok {
		b.fail("%s.material: unknown material %q", field, name)
	}
	return mat
}

func (b *sceneBuilder) object(field string, spec ObjectSpec) core.Hittable {
	mat := b.lookupMaterial(field, spec.Material)
	if spec.Material == "" && spec.Medium == nil && spec.Type != "group" {
		b.fail("%s: missing material", field)
	}

	var obj core.Hittable
	switch spec.Type {
	case "sphere":
		if spec.Radius == 0 {
			b.fail("%s.radius: must not be zero", field)
		}
		obj = geometry.NewSphere(b.vec(field+".center", spec.Center, core.Vec3{}), spec.Radius, mat)
	case "moving_sphere":
		if spec.Radius == 0 {
			b.fail("%s.radius: must not be zero", field)
		}
		obj = geometry.NewMovingSphere(
			b.vec(field+".center", spec.Center, core.Vec3{}),
			b.vec(field+".center1", spec.Center1, core.Vec3{}),
			spec.Time0, spec.Time1, spec.Radius, mat)
	case "xy_rect":
		obj = geometry.NewXYRect(spec.X0, spec.X1, spec.Y0, spec.Y1, spec.K, mat)
	case "xz_rect":
		obj = geometry.NewXZRect(spec.X0, spec.X1, spec.Z0, spec.Z1, spec.K, mat)
	case "yz_rect":
		obj = geometry.NewYZRect(spec.Y0, spec.Y1, spec.Z0, spec.Z1, spec.K, mat)
	case "box":
		obj = geometry.NewBox(b.vec(field+".min", spec.Min, core.Vec3{}), b.vec(field+".max", spec.Max, core.Vec3{}), mat)
	case "group":
		obj = b.group(field, spec)
	default:
		b.fail("%s: unknown object type %q", field, spec.Type)
		return nil
	}
	if obj == nil {
		return nil
	}

	if spec.Medium != nil {
		if spec.Medium.Density <= 0 {
			b.fail("%s.medium.density: must be positive, got %g", field, spec.Medium.Density)
		}
		tex := b.colorTexture(field+".medium.color", spec.Medium.Texture, spec.Medium.Color)
		obj = geometry.NewTexturedConstantMedium(obj, spec.Medium.Density, tex)
	}
	if spec.RotateY != 0 {
		obj = geometry.NewRotateY(obj, spec.RotateY)
	}
	if spec.Translate != nil {
		obj = geometry.NewTranslate(obj, b.vec(field+".translate", spec.Translate, core.Vec3{}))
	}
	return obj
}

func (b *sceneBuilder) group(field string, spec ObjectSpec) core.Hittable {
	if len(spec.Objects) == 0 {
		b.fail("%s: empty group", field)
		return nil
	}
	children := make([]core.Hittable, 0, len(spec.Objects))
	for i, child := range spec.Objects {
		if obj := b.object(fmt.Sprintf("%s.objects[%d]", field, i), child); obj != nil {
			children = append(children, obj)
		}
	}
	if !spec.BVH || len(children) != len(spec.Objects) {
		return geometry.NewHittableList(children...)
	}

	camera := b.desc.Camera
	bvh, err := geometry.NewBVH(children, camera.Time0, camera.Time1, b.sampler)
	if err != nil {
		b.fail("%s: %w", field, err)
		return nil
	}
	return bvh
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
