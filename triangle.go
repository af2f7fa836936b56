package gosieray

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

type CullMode int

const (
	FrontFaceCulling CullMode = iota
	BackFaceCulling
	NoCulling
)

// detEpsilon is relative to |e1|·|e2|, the largest determinant a unit ray
// direction can produce, so the parallel test is independent of triangle size.
const detEpsilon = 1e-9

func (c CullMode) String() string {
	switch c {
	case FrontFaceCulling:
		return "front"
	case BackFaceCulling:
		return "back"
	case NoCulling:
		return "none"
	}
	return "unknown"
}

type Triangle struct {
	V0, V1, V2    mgl64.Vec3
	Normal        mgl64.Vec3
	CullMode      CullMode
	MaterialIndex int
}

// NewTriangle derives the face normal from the winding v0 -> v1 -> v2.
func NewTriangle(v0, v1, v2 mgl64.Vec3, cullMode CullMode, materialIndex int) Triangle {
	normal, _ := Normalize(v1.Sub(v0).Cross(v2.Sub(v0)))
	return Triangle{
		V0:            v0,
		V1:            v1,
		V2:            v2,
		Normal:        normal,
		CullMode:      cullMode,
		MaterialIndex: materialIndex,
	}
}

func (tr Triangle) Hit(ray Ray, best HitRecord, ignoreRecord bool) (HitRecord, bool) {
	t, ok := intersectTriangle(tr.V0, tr.V1, tr.V2, tr.CullMode, ray, best, ignoreRecord)
	if !ok {
		return best, false
	}
	if ignoreRecord {
		return best, true
	}
	return HitRecord{
		Origin:        ray.At(t),
		Normal:        tr.Normal,
		T:             t,
		DidHit:        true,
		MaterialIndex: tr.MaterialIndex,
	}, true
}

// intersectTriangle is the Moller-Trumbore test shared by single triangles and
// meshes. Occlusion queries flip the culling inequality so shadow rays are not
// blocked by faces a primary ray would cull.
func intersectTriangle(v0, v1, v2 mgl64.Vec3, cullMode CullMode, ray Ray, best HitRecord, ignoreRecord bool) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := ray.Direction.Cross(e2)
	det := p.Dot(e1)

	if scalar.EqualWithinAbs(det, 0, detEpsilon*e1.Len()*e2.Len()) {
		return 0, false
	}

	switch cullMode {
	case FrontFaceCulling:
		if ignoreRecord {
			if det < 0 {
				return 0, false
			}
		} else if det > 0 {
			return 0, false
		}
	case BackFaceCulling:
		if ignoreRecord {
			if det > 0 {
				return 0, false
			}
		} else if det < 0 {
			return 0, false
		}
	}

	toOrigin := ray.Origin.Sub(v0)

	u := toOrigin.Dot(p) / det
	if u < 0 || u > 1 {
		return 0, false
	}

	q := toOrigin.Cross(e1)

	v := ray.Direction.Dot(q) / det
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) / det
	if !accepts(ray, best, t) {
		return 0, false
	}
	return t, true
}
