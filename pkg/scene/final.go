package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewFinalScene creates the scene that exercises every feature at once
func NewFinalScene(opts Options) (*Scene, error) {
	sampler := core.NewSeededSampler(opts.Seed)
	logger := opts.logger()

	camera := renderer.CameraConfig{
		LookFrom:    core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
		Time0:       0.0,
		Time1:       1.0,
	}

	// Ground: a grid of boxes with random heights
	groundMat := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	ground := make([]core.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomInRange(sampler, 1, 101)
			ground = append(ground, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), groundMat))
		}
	}
	groundBVH, _, err := buildBVH("final ground", ground, camera, sampler, logger)
	if err != nil {
		return nil, err
	}

	objects := []core.Hittable{groundBVH}

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	objects = append(objects, geometry.NewXZRect(123, 423, 147, 412, 554, light))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	objects = append(objects,
		geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Subsurface look: a glass shell filled with a blue medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	objects = append(objects,
		boundary,
		geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)),
	)

	// Thin fog over everything
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	objects = append(objects, geometry.NewConstantMedium(fog, 0.0001, core.NewVec3(1, 1, 1)))

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTexture(opts))),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.1, sampler))),
	)

	// A cluster of small white spheres, rotated and moved as one instance
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]core.Hittable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		cluster = append(cluster, geometry.NewSphere(core.RandomVec3InRange(sampler, 0, 165), 10, white))
	}
	clusterBVH, _, err := buildBVH("final cluster", cluster, camera, sampler, logger)
	if err != nil {
		return nil, err
	}
	objects = append(objects,
		geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)),
	)

	world := geometry.NewHittableList(objects...)
	return newScene("final", world, camera, integrator.NewSolidBackground(core.Vec3{}), 1000, 50, opts), nil
}
