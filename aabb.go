package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABBFromPoints scans the points for their extents. An empty slice gives
// an inverted box that no ray can hit.
func NewAABBFromPoints(points []mgl64.Vec3) AABB {
	if len(points) == 0 {
		inf := math.Inf(1)
		return AABB{Min: V(inf, inf, inf), Max: V(-inf, -inf, -inf)}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < box.Min[axis] {
				box.Min[axis] = p[axis]
			}
			if p[axis] > box.Max[axis] {
				box.Max[axis] = p[axis]
			}
		}
	}
	return box
}

func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners lists the eight box corners, used by overlays.
func (b AABB) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
	}
}

// SlabTest reports whether the ray's [Min, Max] span overlaps the box and the
// exit point lies in front of the origin. Axis-parallel rays are handled
// explicitly so a zero direction component never produces NaN.
func (b AABB) SlabTest(ray Ray) bool {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		dir := ray.Direction[axis]
		if dir == 0 {
			if origin < b.Min[axis] || origin > b.Max[axis] {
				return false
			}
			continue
		}

		t1 := (b.Min[axis] - origin) / dir
		t2 := (b.Max[axis] - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	}

	if tMax <= 0 || tMax < tMin {
		return false
	}
	return tMin <= ray.Max && tMax >= ray.Min
}
