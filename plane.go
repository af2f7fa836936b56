package gosieray

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Plane is one-sided: only rays travelling against the normal hit it.
type Plane struct {
	Origin        mgl64.Vec3
	Normal        mgl64.Vec3
	MaterialIndex int
}

func NewPlane(origin, normal mgl64.Vec3, materialIndex int) Plane {
	n, _ := Normalize(normal)
	return Plane{Origin: origin, Normal: n, MaterialIndex: materialIndex}
}

func (p Plane) Hit(ray Ray, best HitRecord, ignoreRecord bool) (HitRecord, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if denom >= 0 {
		return best, false
	}

	t := p.Origin.Sub(ray.Origin).Dot(p.Normal) / denom
	if !accepts(ray, best, t) {
		return best, false
	}
	if ignoreRecord {
		return best, true
	}

	return HitRecord{
		Origin:        ray.At(t),
		Normal:        p.Normal,
		T:             t,
		DidHit:        true,
		MaterialIndex: p.MaterialIndex,
	}, true
}

// Distance returns the signed distance of a point from the plane.
func (p Plane) Distance(point mgl64.Vec3) float64 {
	return point.Sub(p.Origin).Dot(p.Normal)
}
