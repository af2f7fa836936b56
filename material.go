package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Material evaluates how a surface responds to light. l points from the
// surface to the light and v from the surface to the viewer. Implementations
// are stateless and never return negative channels.
type Material interface {
	Shade(hit HitRecord, l, v mgl64.Vec3) ColorRGB
	// ShadeFlat is the albedo used when lighting is disabled.
	ShadeFlat() ColorRGB
}

type SolidColor struct {
	Color ColorRGB
}

func (m SolidColor) Shade(HitRecord, mgl64.Vec3, mgl64.Vec3) ColorRGB {
	return m.Color
}

func (m SolidColor) ShadeFlat() ColorRGB {
	return m.Color
}

type Lambert struct {
	DiffuseColor       ColorRGB
	DiffuseReflectance float64
}

func (m Lambert) Shade(HitRecord, mgl64.Vec3, mgl64.Vec3) ColorRGB {
	return BRDFLambert(m.DiffuseReflectance, m.DiffuseColor)
}

func (m Lambert) ShadeFlat() ColorRGB {
	return m.DiffuseColor
}

type LambertPhong struct {
	DiffuseColor  ColorRGB
	KD            float64
	KS            float64
	PhongExponent float64
}

func (m LambertPhong) Shade(hit HitRecord, l, v mgl64.Vec3) ColorRGB {
	return BRDFLambert(m.KD, m.DiffuseColor).Add(BRDFPhong(m.KS, m.PhongExponent, l, v, hit.Normal))
}

func (m LambertPhong) ShadeFlat() ColorRGB {
	return m.DiffuseColor
}

// CookTorrance is a metalness/roughness microfacet material.
type CookTorrance struct {
	Albedo    ColorRGB
	Metalness float64
	Roughness float64
}

var dielectricF0 = Grey(0.04)

func (m CookTorrance) Shade(hit HitRecord, l, v mgl64.Vec3) ColorRGB {
	n := hit.Normal
	nDotL := n.Dot(l)
	nDotV := n.Dot(v)
	if nDotL <= 0 || nDotV <= 0 {
		return Black
	}

	f0 := dielectricF0
	if m.Metalness > 0.5 {
		f0 = m.Albedo
	}

	h, length := Normalize(v.Add(l))
	if length == 0 {
		return Black
	}

	f := FresnelSchlick(h, v, f0)
	d := NormalDistributionGGX(n, h, m.Roughness)
	g := GeometrySmith(n, v, l, m.Roughness)

	specular := f.Scale(d * g / (4 * nDotV * nDotL))

	var diffuse ColorRGB
	if m.Metalness <= 0.5 {
		kd := ColorRGB{1 - f.R, 1 - f.G, 1 - f.B}
		diffuse = kd.Mul(BRDFLambert(1, m.Albedo))
	}

	return nonNegative(diffuse.Add(specular))
}

func (m CookTorrance) ShadeFlat() ColorRGB {
	return m.Albedo
}

func nonNegative(c ColorRGB) ColorRGB {
	return ColorRGB{math.Max(c.R, 0), math.Max(c.G, 0), math.Max(c.B, 0)}
}
