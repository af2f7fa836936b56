package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultRayMin keeps primary rays from hitting geometry at the origin.
	DefaultRayMin = 0.0001
	// ShadowBias offsets shadow ray origins along the surface normal.
	ShadowBias = 0.001
)

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Min       float64
	Max       float64
}

func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		Min:       DefaultRayMin,
		Max:       math.MaxFloat64,
	}
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// HitRecord describes the closest hit found so far for one ray.
type HitRecord struct {
	Origin        mgl64.Vec3
	Normal        mgl64.Vec3
	T             float64
	DidHit        bool
	MaterialIndex int
}

func NewHitRecord() HitRecord {
	return HitRecord{T: math.MaxFloat64}
}

// accepts reports whether t lies inside the ray interval and is not farther
// than the current best. All primitives share it so their tie-breaks agree.
func accepts(ray Ray, best HitRecord, t float64) bool {
	if t < ray.Min {
		return false
	}
	if t > ray.Max {
		return false
	}
	if t > best.T {
		return false
	}
	return true
}
