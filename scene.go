package gosieray

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene owns everything that exists in the world. It must not be mutated
// while a render pass is running.
type Scene struct {
	spheres   []Sphere
	planes    []Plane
	triangles []Triangle
	meshes    []*TriangleMesh
	materials []Material
	lights    []Light
	camera    *Camera

	// Animator, when set, is run by Update between frames.
	Animator func(s *Scene, elapsed float64)
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddMaterial(m Material) int {
	s.materials = append(s.materials, m)
	return len(s.materials) - 1
}

func (s *Scene) AddSphere(origin mgl64.Vec3, radius float64, materialIndex int) {
	s.spheres = append(s.spheres, NewSphere(origin, radius, materialIndex))
}

func (s *Scene) AddPlane(origin, normal mgl64.Vec3, materialIndex int) {
	s.planes = append(s.planes, NewPlane(origin, normal, materialIndex))
}

func (s *Scene) AddTriangle(t Triangle) {
	s.triangles = append(s.triangles, t)
}

func (s *Scene) AddTriangleMesh(m *TriangleMesh) *TriangleMesh {
	s.meshes = append(s.meshes, m)
	return m
}

func (s *Scene) AddPointLight(origin mgl64.Vec3, intensity float64, color ColorRGB) {
	s.lights = append(s.lights, NewPointLight(origin, intensity, color))
}

func (s *Scene) AddDirectionalLight(direction mgl64.Vec3, intensity float64, color ColorRGB) {
	s.lights = append(s.lights, NewDirectionalLight(direction, intensity, color))
}

func (s *Scene) SetCamera(c *Camera) {
	s.camera = c
}

func (s *Scene) Camera() *Camera {
	return s.camera
}

func (s *Scene) Materials() []Material {
	return s.materials
}

func (s *Scene) Lights() []Light {
	return s.lights
}

func (s *Scene) Meshes() []*TriangleMesh {
	return s.meshes
}

func (s *Scene) Triangles() []Triangle {
	return s.triangles
}

// Update runs the scene's animation between frames.
func (s *Scene) Update(elapsed float64) {
	if s.Animator != nil {
		s.Animator(s, elapsed)
	}
}

// GetClosestHit tests every primitive and keeps the nearest hit.
func (s *Scene) GetClosestHit(ray Ray) HitRecord {
	closest := NewHitRecord()
	for i := range s.spheres {
		closest, _ = s.spheres[i].Hit(ray, closest, false)
	}
	for i := range s.planes {
		closest, _ = s.planes[i].Hit(ray, closest, false)
	}
	for i := range s.triangles {
		closest, _ = s.triangles[i].Hit(ray, closest, false)
	}
	for _, m := range s.meshes {
		closest, _ = m.Hit(ray, closest, false)
	}
	return closest
}

// DoesHit reports whether anything blocks the ray. It stops at the first
// primitive that accepts.
func (s *Scene) DoesHit(ray Ray) bool {
	empty := NewHitRecord()
	for i := range s.spheres {
		if _, ok := s.spheres[i].Hit(ray, empty, true); ok {
			return true
		}
	}
	for i := range s.planes {
		if _, ok := s.planes[i].Hit(ray, empty, true); ok {
			return true
		}
	}
	for i := range s.triangles {
		if _, ok := s.triangles[i].Hit(ray, empty, true); ok {
			return true
		}
	}
	for _, m := range s.meshes {
		if _, ok := m.Hit(ray, empty, true); ok {
			return true
		}
	}
	return false
}

// Validate checks the invariants a render pass relies on. All problems are
// reported together.
func (s *Scene) Validate() error {
	var errs []error
	if s.camera == nil {
		errs = append(errs, ErrNoCamera)
	}

	checkMaterial := func(kind string, i, idx int) {
		if idx < 0 || idx >= len(s.materials) {
			errs = append(errs, fmt.Errorf("%s %d: %w: %d (have %d)", kind, i, ErrInvalidMaterialIndex, idx, len(s.materials)))
		}
	}

	for i, sp := range s.spheres {
		checkMaterial("sphere", i, sp.MaterialIndex)
		if !(sp.Radius > 0) {
			errs = append(errs, fmt.Errorf("sphere %d: %w: radius %v", i, ErrInvalidPrimitive, sp.Radius))
		}
	}
	for i, p := range s.planes {
		checkMaterial("plane", i, p.MaterialIndex)
		if math.Abs(p.Normal.Len()-1) > 1e-6 {
			errs = append(errs, fmt.Errorf("plane %d: %w: normal is not unit length", i, ErrInvalidPrimitive))
		}
	}
	for i, t := range s.triangles {
		checkMaterial("triangle", i, t.MaterialIndex)
		if isNaNVec(t.Normal) || t.Normal.Len() == 0 {
			errs = append(errs, fmt.Errorf("triangle %d: %w", i, ErrDegenerateTriangle))
		}
	}
	for i, m := range s.meshes {
		checkMaterial("mesh", i, m.MaterialIndex)
		if err := m.validate(); err != nil {
			errs = append(errs, fmt.Errorf("mesh %d: %w", i, err))
			continue
		}
		if len(m.transformedPositions) != len(m.Positions) || len(m.transformedNormals) != len(m.Normals) {
			errs = append(errs, fmt.Errorf("mesh %d: %w: transforms not applied", i, ErrInvalidMesh))
		}
	}
	return errors.Join(errs...)
}
