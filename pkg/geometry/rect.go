package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// rectPadding gives the flat axis of a rectangle's bounding box a non-zero width
const rectPadding = 1e-4

// axisRect is an axis-aligned rectangle lying in the plane axis[normalAxis] = K.
// The in-plane extents are [A0, A1] along axisA and [B0, B1] along axisB.
type axisRect struct {
	A0, A1, B0, B1 float64
	K              float64
	Material       core.Material

	axisA, axisB, normalAxis int
}

func (r *axisRect) hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// A parallel ray yields a non-finite t, rejected by the range check
	t := (r.K - ray.Origin.Axis(r.normalAxis)) / ray.Direction.Axis(r.normalAxis)
	if !(t >= tMin && t <= tMax) {
		return nil, false
	}

	a := ray.Origin.Axis(r.axisA) + t*ray.Direction.Axis(r.axisA)
	b := ray.Origin.Axis(r.axisB) + t*ray.Direction.Axis(r.axisB)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, unitAxis(r.normalAxis))
	return hitRecord, true
}

func (r *axisRect) boundingBox() core.AABB {
	var lo, hi [3]float64
	lo[r.axisA], hi[r.axisA] = r.A0, r.A1
	lo[r.axisB], hi[r.axisB] = r.B0, r.B1
	lo[r.normalAxis], hi[r.normalAxis] = r.K-rectPadding, r.K+rectPadding
	return core.NewAABB(core.NewVec3(lo[0], lo[1], lo[2]), core.NewVec3(hi[0], hi[1], hi[2]))
}

func unitAxis(axis int) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(1, 0, 0)
	case 1:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// XYRect is a rectangle in the plane z = k with outward normal +Z
type XYRect struct {
	axisRect
}

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *XYRect {
	return &XYRect{axisRect{A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material, axisA: 0, axisB: 1, normalAxis: 2}}
}

// Hit implements core.Hittable
func (r *XYRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return r.hit(ray, tMin, tMax)
}

// BoundingBox implements core.Hittable
func (r *XYRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.boundingBox(), true
}

// XZRect is a rectangle in the plane y = k with outward normal +Y
type XZRect struct {
	axisRect
}

// NewXZRect creates a rectangle spanning [x0,x1]×[z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *XZRect {
	return &XZRect{axisRect{A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material, axisA: 0, axisB: 2, normalAxis: 1}}
}

// Hit implements core.Hittable
func (r *XZRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return r.hit(ray, tMin, tMax)
}

// BoundingBox implements core.Hittable
func (r *XZRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.boundingBox(), true
}

// YZRect is a rectangle in the plane x = k with outward normal +X
type YZRect struct {
	axisRect
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *YZRect {
	return &YZRect{axisRect{A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material, axisA: 1, axisB: 2, normalAxis: 0}}
}

// Hit implements core.Hittable
func (r *YZRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return r.hit(ray, tMin, tMax)
}

// BoundingBox implements core.Hittable
func (r *YZRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.boundingBox(), true
}
