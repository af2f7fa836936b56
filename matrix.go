package gosieray

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	RotX = 0
	RotY = 1
	RotZ = 2
)

func IdentMatrix() mgl64.Mat4 {
	return mgl64.Ident4()
}

func NewRotationMatrix(axis int, theta float64) mgl64.Mat4 {
	switch axis {
	case RotX:
		return mgl64.HomogRotate3DX(theta)
	case RotY:
		return mgl64.HomogRotate3DY(theta)
	case RotZ:
		return mgl64.HomogRotate3DZ(theta)
	}
	return mgl64.Ident4()
}

func TransMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

func ScaleMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Scale3D(x, y, z)
}

// MatrixFromBasis builds a local-to-world matrix whose columns are the given
// axes and the origin.
func MatrixFromBasis(right, up, forward, origin mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Mat4FromCols(
		right.Vec4(0),
		up.Vec4(0),
		forward.Vec4(0),
		origin.Vec4(1),
	)
}

// TransformPoint applies the full matrix, translation included.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformVector applies only the 3x3 part of the matrix, for directions.
func TransformVector(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// TransformNormal transforms a surface normal with the inverse transpose so
// non-uniform scales keep it perpendicular, then renormalizes it.
func TransformNormal(m mgl64.Mat4, n mgl64.Vec3) mgl64.Vec3 {
	normalMatrix := m.Mat3().Inv().Transpose()
	out, _ := Normalize(normalMatrix.Mul3x1(n))
	return out
}
