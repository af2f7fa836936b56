package gosieray

import (
	"github.com/go-gl/mathgl/mgl64"
)

type LightType int

const (
	PointLight LightType = iota
	DirectionalLight
)

func (t LightType) String() string {
	switch t {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	}
	return "unknown"
}

// Light is authored once when the scene is built. Origin only matters for
// point lights and Direction only for directional ones.
type Light struct {
	Type      LightType
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Color     ColorRGB
	Intensity float64
}

func NewPointLight(origin mgl64.Vec3, intensity float64, color ColorRGB) Light {
	return Light{
		Type:      PointLight,
		Origin:    origin,
		Color:     color,
		Intensity: intensity,
	}
}

func NewDirectionalLight(direction mgl64.Vec3, intensity float64, color ColorRGB) Light {
	dir, _ := Normalize(direction)
	return Light{
		Type:      DirectionalLight,
		Direction: dir,
		Color:     color,
		Intensity: intensity,
	}
}

// DirectionToLight points from point towards the light. For point lights the
// result is not normalized so callers can take the distance from it.
func DirectionToLight(light Light, point mgl64.Vec3) mgl64.Vec3 {
	switch light.Type {
	case PointLight:
		return light.Origin.Sub(point)
	case DirectionalLight:
		return light.Direction.Mul(-1)
	}
	return mgl64.Vec3{}
}

// Radiance is the light arriving at target: inverse-square falloff for point
// lights, constant for directional lights.
func Radiance(light Light, target mgl64.Vec3) ColorRGB {
	switch light.Type {
	case PointLight:
		toLight := light.Origin.Sub(target)
		rSquared := toLight.Dot(toLight)
		if rSquared == 0 {
			return Black
		}
		return light.Color.Scale(light.Intensity / rSquared)
	case DirectionalLight:
		return light.Color.Scale(light.Intensity)
	}
	return Black
}
