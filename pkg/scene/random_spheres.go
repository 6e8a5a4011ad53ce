package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// skyBlue is the flat background of the outdoor scenes
var skyBlue = core.NewVec3(0.70, 0.80, 1.00)

// outdoorCamera frames the scenes built around the origin from (13,2,3)
func outdoorCamera(aperture float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      aperture,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// checkerGround is the green and white checker used on the ground plane
func checkerGround() *material.Checker {
	return material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// NewRandomSpheres creates the cover scene: a checkered ground with a grid of small
// randomly placed spheres, diffuse ones bouncing during the shutter interval
func NewRandomSpheres(opts Options) (*Scene, error) {
	sampler := core.NewSeededSampler(opts.Seed)
	camera := outdoorCamera(0.1)

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checkerGround())),
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			// Keep the space around the big metal sphere free
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse, bouncing upwards while the shutter is open
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				center1 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
				objects = append(objects, geometry.NewMovingSphere(center, center1, 0.0, 1.0, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3InRange(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	bvh, stats, err := buildBVH("random-spheres", objects, camera, sampler, opts.logger())
	if err != nil {
		return nil, err
	}

	s := newScene("random-spheres", bvh, camera, integrator.NewSolidBackground(skyBlue), 100, 50, opts)
	s.BVHStats = stats
	return s, nil
}
