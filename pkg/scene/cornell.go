package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// boxSize is the edge length of the Cornell box
const boxSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
		Time0:       0.0,
		Time1:       1.0,
	}
}

// cornellWalls returns the five walls plus the ceiling light
func cornellWalls(white core.Material, light core.Material, lightRect *geometry.XZRect) []core.Hittable {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []core.Hittable{
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // left wall seen from the camera
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),
		lightRect,
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // back
	}
}

// cornellBlocks returns the tall and short blocks, rotated and placed
func cornellBlocks(white core.Material) (tall, short core.Hittable) {
	var box1 core.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	box1 = geometry.NewRotateY(box1, 15)
	box1 = geometry.NewTranslate(box1, core.NewVec3(265, 0, 295))

	var box2 core.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	box2 = geometry.NewRotateY(box2, -18)
	box2 = geometry.NewTranslate(box2, core.NewVec3(130, 0, 65))

	return box1, box2
}

// NewCornellBox creates the classic Cornell box with two rotated blocks
func NewCornellBox(opts Options) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	objects := cornellWalls(white, light, geometry.NewXZRect(213, 343, 227, 332, 554, light))
	tall, short := cornellBlocks(white)
	objects = append(objects, tall, short)

	world := geometry.NewHittableList(objects...)
	return newScene("cornell-box", world, cornellCamera(), integrator.NewSolidBackground(core.Vec3{}), 200, 50, opts), nil
}

// NewCornellSmoke replaces the blocks with black smoke and white fog under a larger, dimmer light
func NewCornellSmoke(opts Options) (*Scene, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	objects := cornellWalls(white, light, geometry.NewXZRect(113, 443, 127, 432, 554, light))
	tall, short := cornellBlocks(white)
	objects = append(objects,
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	world := geometry.NewHittableList(objects...)
	return newScene("cornell-smoke", world, cornellCamera(), integrator.NewSolidBackground(core.Vec3{}), 200, 50, opts), nil
}
