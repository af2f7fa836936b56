package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BRDFLambert is the diffuse term kd * cd / pi.
func BRDFLambert(kd float64, cd ColorRGB) ColorRGB {
	return cd.Scale(kd / math.Pi)
}

// BRDFPhong is a greyscale specular lobe around the mirror direction of l.
// l and v both point away from the surface.
func BRDFPhong(ks, exp float64, l, v, n mgl64.Vec3) ColorRGB {
	reflected := Reflect(l.Mul(-1), n)
	cosAlpha := reflected.Dot(v)
	if cosAlpha <= 0 {
		return Black
	}
	return Grey(ks * math.Pow(cosAlpha, exp))
}

// FresnelSchlick uses the half vector h and view direction v.
func FresnelSchlick(h, v mgl64.Vec3, f0 ColorRGB) ColorRGB {
	factor := math.Pow(1-math.Max(h.Dot(v), 0), 5)
	return ColorRGB{
		R: f0.R + (1-f0.R)*factor,
		G: f0.G + (1-f0.G)*factor,
		B: f0.B + (1-f0.B)*factor,
	}
}

// NormalDistributionGGX is the Trowbridge-Reitz distribution with
// alpha = roughness squared.
func NormalDistributionGGX(n, h mgl64.Vec3, roughness float64) float64 {
	alpha := roughness * roughness
	alphaSq := alpha * alpha
	nDotH := math.Max(n.Dot(h), 0)
	denom := nDotH*nDotH*(alphaSq-1) + 1
	if denom == 0 {
		// perfectly smooth surface seen exactly along its mirror direction
		return 0
	}
	return alphaSq / (math.Pi * denom * denom)
}

// GeometrySchlickGGX uses the direct lighting remap k = (alpha+1)^2 / 8.
func GeometrySchlickGGX(n, v mgl64.Vec3, roughness float64) float64 {
	alpha := roughness * roughness
	k := (alpha + 1) * (alpha + 1) / 8
	nDotV := math.Max(n.Dot(v), 0)
	return nDotV / (nDotV*(1-k) + k)
}

func GeometrySmith(n, v, l mgl64.Vec3, roughness float64) float64 {
	return GeometrySchlickGGX(n, v, roughness) * GeometrySchlickGGX(n, l, roughness)
}
