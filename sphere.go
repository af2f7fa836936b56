package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hittable is implemented by every primitive. Hit returns the updated record
// and true when the ray hits the primitive closer than best. With ignoreRecord
// set the call is an occlusion test and best is returned untouched.
type Hittable interface {
	Hit(ray Ray, best HitRecord, ignoreRecord bool) (HitRecord, bool)
}

type Sphere struct {
	Origin        mgl64.Vec3
	Radius        float64
	MaterialIndex int
}

func NewSphere(origin mgl64.Vec3, radius float64, materialIndex int) Sphere {
	return Sphere{Origin: origin, Radius: radius, MaterialIndex: materialIndex}
}

func (s Sphere) Hit(ray Ray, best HitRecord, ignoreRecord bool) (HitRecord, bool) {
	fromCenter := ray.Origin.Sub(s.Origin)
	b := ray.Direction.Dot(fromCenter)
	c := fromCenter.Dot(fromCenter) - s.Radius*s.Radius

	discriminant := b*b - c
	if discriminant <= 0 {
		return best, false
	}

	t := -b - math.Sqrt(discriminant)
	if !accepts(ray, best, t) {
		return best, false
	}
	if ignoreRecord {
		return best, true
	}

	hitPoint := ray.At(t)
	return HitRecord{
		Origin:        hitPoint,
		Normal:        hitPoint.Sub(s.Origin).Mul(1 / s.Radius),
		T:             t,
		DidHit:        true,
		MaterialIndex: s.MaterialIndex,
	}, true
}
