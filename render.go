package gosieray

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

type LightingMode int

const (
	ObservedArea LightingMode = iota
	RadianceOnly
	BRDFOnly
	Combined
)

func (m LightingMode) Next() LightingMode {
	return (m + 1) % (Combined + 1)
}

func (m LightingMode) String() string {
	switch m {
	case ObservedArea:
		return "OBSERVED AREA ONLY"
	case RadianceOnly:
		return "RADIANCE ONLY"
	case BRDFOnly:
		return "BRDF ONLY"
	case Combined:
		return "COMBINED"
	}
	return "UNKNOWN"
}

// ParseLightingMode accepts the short names used on the command line and in
// scene files.
func ParseLightingMode(name string) (LightingMode, error) {
	switch name {
	case "observed", "observed-area":
		return ObservedArea, nil
	case "radiance":
		return RadianceOnly, nil
	case "brdf":
		return BRDFOnly, nil
	case "combined", "":
		return Combined, nil
	}
	return Combined, fmt.Errorf("unknown lighting mode %q", name)
}

// RenderConfig is read once at the start of every pass.
type RenderConfig struct {
	ShadowsEnabled bool
	LightingMode   LightingMode
	// Unlit skips lighting and shows each material's flat albedo.
	Unlit bool
	// Workers bounds the number of rows rendered at once. Zero or less means
	// GOMAXPROCS.
	Workers int
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		ShadowsEnabled: true,
		LightingMode:   Combined,
		Workers:        runtime.GOMAXPROCS(0),
	}
}

type RenderStats struct {
	Duration time.Duration
	Pixels   int
	Hits     int
}

// Renderer owns the 8-bit RGB frame buffer. A Renderer is not safe for
// concurrent Render calls.
type Renderer struct {
	width, height int
	buffer        []uint8
	scratch       []uint8
	stats         RenderStats
}

func NewRenderer(width, height int) *Renderer {
	r := &Renderer{}
	r.Resize(width, height)
	return r
}

func (r *Renderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == r.width && height == r.height && r.buffer != nil {
		return
	}
	r.width = width
	r.height = height
	r.buffer = make([]uint8, 3*width*height)
	r.scratch = make([]uint8, 3*width*height)
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Buffer is the last completed frame as row-major RGB triples.
func (r *Renderer) Buffer() []uint8 {
	return r.buffer
}

func (r *Renderer) LastStats() RenderStats {
	return r.stats
}

// Image copies the last completed frame into an opaque RGBA image.
func (r *Renderer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the frame into dst as RGBA bytes; dst must hold 4·W·H
// bytes.
func (r *Renderer) CopyRGBA(dst []uint8) {
	for i, j := 0, 0; i < len(r.buffer); i, j = i+3, j+4 {
		dst[j] = r.buffer[i]
		dst[j+1] = r.buffer[i+1]
		dst[j+2] = r.buffer[i+2]
		dst[j+3] = 0xff
	}
}

// Render traces one frame of scene. It refuses to start when ctx is already
// done or the scene is invalid, and in that case the previous frame is left
// untouched. Once started, a pass always runs to completion.
func (r *Renderer) Render(ctx context.Context, scene *Scene, cfg RenderConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scene.Validate(); err != nil {
		return fmt.Errorf("scene is not renderable: %w", err)
	}

	start := time.Now()
	cam := *scene.Camera()
	width, height := r.width, r.height
	out := r.scratch

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var hits atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		g.Go(func() error {
			rowHits := 0
			row := out[3*y*width : 3*(y+1)*width]
			for x := 0; x < width; x++ {
				c, hit := shadePixel(scene, cam, cfg, x, y, width, height)
				if hit {
					rowHits++
				}
				row[3*x], row[3*x+1], row[3*x+2] = c.MaxToOne().RGB8()
			}
			hits.Add(int64(rowHits))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.buffer, r.scratch = r.scratch, r.buffer
	r.stats = RenderStats{
		Duration: time.Since(start),
		Pixels:   width * height,
		Hits:     int(hits.Load()),
	}
	return nil
}

// ShadePixel returns the untone-mapped color seen through pixel (px, py).
func ShadePixel(scene *Scene, cam Camera, cfg RenderConfig, px, py, width, height int) ColorRGB {
	c, _ := shadePixel(scene, cam, cfg, px, py, width, height)
	return c
}

func shadePixel(scene *Scene, cam Camera, cfg RenderConfig, px, py, width, height int) (ColorRGB, bool) {
	ray := NewRay(cam.Origin, cam.RayDirection(px, py, width, height))
	hit := scene.GetClosestHit(ray)
	if !hit.DidHit {
		return Black, false
	}
	return shadeHit(scene, ray, hit, cfg), true
}

// ShadeRay traces ray into scene and evaluates the lighting at its closest
// hit. A miss is black.
func ShadeRay(scene *Scene, ray Ray, cfg RenderConfig) ColorRGB {
	hit := scene.GetClosestHit(ray)
	if !hit.DidHit {
		return Black
	}
	return shadeHit(scene, ray, hit, cfg)
}

func shadeHit(scene *Scene, ray Ray, hit HitRecord, cfg RenderConfig) ColorRGB {
	materials := scene.Materials()
	if hit.MaterialIndex < 0 || hit.MaterialIndex >= len(materials) {
		panic(fmt.Sprintf("material index %d out of range (have %d)", hit.MaterialIndex, len(materials)))
	}
	material := materials[hit.MaterialIndex]

	if cfg.Unlit {
		return material.ShadeFlat()
	}

	v := ray.Direction.Mul(-1)
	var final ColorRGB
	for _, light := range scene.Lights() {
		l, maxT := lightVector(light, hit.Origin)
		if l == (mgl64.Vec3{}) {
			continue
		}

		if cfg.ShadowsEnabled {
			shadowRay := NewRay(hit.Origin.Add(hit.Normal.Mul(ShadowBias)), l)
			shadowRay.Max = maxT
			if scene.DoesHit(shadowRay) {
				continue
			}
		}

		cosTheta := hit.Normal.Dot(l)
		switch cfg.LightingMode {
		case ObservedArea:
			if cosTheta > 0 {
				final = final.Add(Grey(cosTheta))
			}
		case RadianceOnly:
			final = final.Add(Radiance(light, hit.Origin))
		case BRDFOnly:
			final = final.Add(material.Shade(hit, l, v))
		case Combined:
			if cosTheta > 0 {
				final = final.Add(Radiance(light, hit.Origin).Mul(material.Shade(hit, l, v)).Scale(cosTheta))
			}
		}
	}
	return final
}

// lightVector returns the unit direction from point to light and how far a
// shadow ray may travel before passing the light.
func lightVector(light Light, point mgl64.Vec3) (mgl64.Vec3, float64) {
	l, distance := Normalize(DirectionToLight(light, point))
	if light.Type == DirectionalLight {
		return l, math.MaxFloat64
	}
	return l, distance
}
