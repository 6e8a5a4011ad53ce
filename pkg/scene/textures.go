package scene

import (
	"path/filepath"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/material"
)

// EarthTextureFile is the image looked up in Options.TextureDir by the earth scenes
const EarthTextureFile = "earthmap.jpg"

// NewTwoSpheres creates two large checkered spheres touching at the origin
func NewTwoSpheres(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(checkerGround())
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return newScene("two-spheres", world, outdoorCamera(0), integrator.NewSolidBackground(skyBlue), 100, 50, opts), nil
}

// perlinSpheres returns the marbled ground and sphere shared by the noise scenes
func perlinSpheres(sampler core.Sampler) []core.Hittable {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))
	return []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}
}

// NewTwoPerlinSpheres creates a marbled ground and sphere
func NewTwoPerlinSpheres(opts Options) (*Scene, error) {
	world := geometry.NewHittableList(perlinSpheres(core.NewSeededSampler(opts.Seed))...)
	return newScene("two-perlin-spheres", world, outdoorCamera(0), integrator.NewSolidBackground(skyBlue), 100, 50, opts), nil
}

// earthTexture loads the earth map, falling back to a flat blue when it is missing
func earthTexture(opts Options) core.Texture {
	path := filepath.Join(opts.TextureDir, EarthTextureFile)
	data, err := loaders.LoadImage(path)
	if err != nil {
		opts.logger().Printf("Warning: %v; using a solid texture for the earth\n", err)
		return material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.8))
	}
	return data.Texture()
}

// NewEarth creates an image-mapped globe
func NewEarth(opts Options) (*Scene, error) {
	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earthTexture(opts)))
	world := geometry.NewHittableList(globe)
	return newScene("earth", world, outdoorCamera(0), integrator.NewSolidBackground(skyBlue), 100, 50, opts), nil
}

// NewSimpleLight creates the Perlin spheres lit only by a rectangle light
func NewSimpleLight(opts Options) (*Scene, error) {
	objects := perlinSpheres(core.NewSeededSampler(opts.Seed))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	objects = append(objects, geometry.NewXYRect(3, 5, 1, 3, -2, light))
	world := geometry.NewHittableList(objects...)

	camera := outdoorCamera(0)
	camera.LookFrom = core.NewVec3(26, 3, 6)
	camera.LookAt = core.NewVec3(0, 2, 0)
	camera.FocusDistance = 0

	return newScene("simple-light", world, camera, integrator.NewSolidBackground(core.Vec3{}), 400, 50, opts), nil
}
