package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-raytracer/pkg/core"
)

var (
	// ErrNoBoundingBox is returned when a primitive handed to BVH construction cannot be bounded
	ErrNoBoundingBox = errors.New("primitive has no bounding box")
	// ErrEmptyScene is returned when a BVH is built over zero primitives
	ErrEmptyScene = errors.New("no primitives to build a BVH over")
)

// BVHNode is a node in the Bounding Volume Hierarchy. Internal nodes wrap two
// sub-trees; a node over a single primitive aliases it as both children.
type BVHNode struct {
	Left  core.Hittable
	Right core.Hittable
	Box   core.AABB
	leaf  bool // Left and Right are the same primitive
}

// boxedHittable caches a primitive's bounding box for the duration of construction
type boxedHittable struct {
	object core.Hittable
	box    core.AABB
}

// NewBVH builds a BVH over objects for the shutter interval [time0, time1].
// The split axis at every node is drawn from sampler. The input slice is not modified.
func NewBVH(objects []core.Hittable, time0, time1 float64, sampler core.Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}

	// Work on a copy so callers can keep using their slice while workers build trees
	boxed := make([]boxedHittable, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d (%T): %w", i, object, ErrNoBoundingBox)
		}
		boxed[i] = boxedHittable{object: object, box: box}
	}

	return buildBVH(boxed, sampler), nil
}

// buildBVH recursively partitions objects by bounding-box minimum along a random axis
func buildBVH(objects []boxedHittable, sampler core.Sampler) *BVHNode {
	axis := sampler.IntN(3)

	switch len(objects) {
	case 1:
		return &BVHNode{
			Left:  objects[0].object,
			Right: objects[0].object,
			Box:   objects[0].box,
			leaf:  true,
		}
	case 2:
		left, right := objects[0], objects[1]
		if right.box.Min.Axis(axis) < left.box.Min.Axis(axis) {
			left, right = right, left
		}
		return &BVHNode{
			Left:  left.object,
			Right: right.object,
			Box:   core.SurroundingBox(left.box, right.box),
		}
	}

	sortByAxis(objects, axis)

	mid := len(objects) / 2
	left := buildBVH(objects[:mid], sampler)
	right := buildBVH(objects[mid:], sampler)

	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   core.SurroundingBox(left.Box, right.Box),
	}
}

// sortByAxis orders objects by their bounding box minimum along the specified axis
func sortByAxis(objects []boxedHittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].box.Min.Axis(axis) < objects[j].box.Min.Axis(axis)
	})
}

// Hit returns the nearest hit in the subtree. The right child is queried with
// tMax tightened to the left hit, so a nearer right hit always wins.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if n.leaf {
		return leftHit, hitLeft
	}
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	Primitives int
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	collectStats(n, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH. Primitives hanging
// directly off an internal node (the two-object case) count as leaves.
func collectStats(object core.Hittable, depth int, stats *BVHStats) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node, ok := object.(*BVHNode)
	if !ok {
		stats.LeafNodes++
		stats.Primitives++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	stats.TotalNodes++
	if node.leaf {
		stats.LeafNodes++
		stats.Primitives++
		stats.AvgDepth += float64(depth)
		return
	}
	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
