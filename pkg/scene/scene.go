package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          core.Hittable // Immutable once built; shared by all workers
	CameraConfig   renderer.CameraConfig
	Background     integrator.Background
	SamplingConfig renderer.SamplingConfig // Recommended sampling; Width/Height follow Options.Width
	BVHStats       *geometry.BVHStats      // nil when the world is not a BVH
}

// Options configures scene construction
type Options struct {
	Seed       int64       // Seeds random layouts, noise textures and BVH axis choices
	TextureDir string      // Directory searched for image textures
	Width      int         // Image width; height follows the camera aspect ratio
	Logger     core.Logger // Receives build information; nil discards it
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}

// Camera creates the scene's camera
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// newScene fills in the sampling configuration shared by the built-in scenes
func newScene(name string, world core.Hittable, camera renderer.CameraConfig, background integrator.Background, samplesPerPixel, maxDepth int, opts Options) *Scene {
	sampling := renderer.DefaultSamplingConfig()
	sampling.SamplesPerPixel = samplesPerPixel
	sampling.MaxDepth = maxDepth
	sampling.Seed = opts.Seed
	if opts.Width > 0 {
		sampling.Width = opts.Width
	}
	sampling.Height = max(1, int(float64(sampling.Width)/camera.AspectRatio))

	return &Scene{
		Name:           name,
		World:          world,
		CameraConfig:   camera,
		Background:     background,
		SamplingConfig: sampling,
	}
}

// buildBVH wraps objects in a BVH and logs its shape
func buildBVH(name string, objects []core.Hittable, camera renderer.CameraConfig, sampler core.Sampler, logger core.Logger) (*geometry.BVHNode, *geometry.BVHStats, error) {
	bvh, err := geometry.NewBVH(objects, camera.Time0, camera.Time1, sampler)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	stats := bvh.Stats()
	logger.Printf("%s: BVH with %d nodes over %d primitives, max depth %d, avg leaf depth %.1f\n",
		name, stats.TotalNodes, stats.Primitives, stats.MaxDepth, stats.AvgDepth)
	return bvh, &stats, nil
}

// Create builds a registered scene by name
func Create(name string, opts Options) (*Scene, error) {
	entry, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := entry.build(opts)
	if err != nil {
		return nil, fmt.Errorf("building scene %s: %w", name, err)
	}
	return s, nil
}

// LoadFile builds a scene from a YAML scene description
func LoadFile(path string, opts Options) (*Scene, error) {
	desc, err := loaders.LoadYAMLScene(path)
	if err != nil {
		return nil, err
	}
	built, err := desc.Build(loaders.BuildOptions{Seed: opts.Seed, TextureDir: opts.TextureDir})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	info := ParseSceneMetadata(path)
	spp, depth := built.SamplesPerPixel, built.MaxDepth
	if spp <= 0 {
		spp = renderer.DefaultSamplingConfig().SamplesPerPixel
	}
	if depth <= 0 {
		depth = renderer.DefaultSamplingConfig().MaxDepth
	}

	s := newScene(info.ID, built.World, built.Camera, built.Background, spp, depth, opts)
	s.BVHStats = built.BVHStats
	if s.BVHStats != nil {
		opts.logger().Printf("%s: BVH with %d nodes over %d primitives, max depth %d\n",
			info.ID, s.BVHStats.TotalNodes, s.BVHStats.Primitives, s.BVHStats.MaxDepth)
	}
	return s, nil
}
