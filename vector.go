package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	UnitX = mgl64.Vec3{1, 0, 0}
	UnitY = mgl64.Vec3{0, 1, 0}
	UnitZ = mgl64.Vec3{0, 0, 1}
)

// V is shorthand for building a vector.
func V(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

// Normalize returns the unit vector and the original length. A zero vector
// stays zero instead of turning into NaNs.
func Normalize(v mgl64.Vec3) (mgl64.Vec3, float64) {
	length := math.Sqrt(math.Abs(v.Dot(v)))
	if length == 0 {
		return mgl64.Vec3{}, 0
	}
	return v.Mul(1 / length), length
}

// Reflect mirrors v around the normal n.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

func isNaNVec(v mgl64.Vec3) bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2])
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
