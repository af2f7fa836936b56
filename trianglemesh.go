package gosieray

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// TriangleMesh is an indexed triangle list with one flat normal per triangle.
// The transformed positions, normals and bounding box are derived state that
// only UpdateTransforms refreshes; Hit never recomputes them.
type TriangleMesh struct {
	Positions     []mgl64.Vec3
	Normals       []mgl64.Vec3
	Indices       []int
	CullMode      CullMode
	MaterialIndex int

	// TriangleTestHook, when set, is called once for every triangle the mesh
	// tests against a ray. It exists for instrumentation in tests.
	TriangleTestHook func()

	rotation    mgl64.Mat4
	translation mgl64.Mat4
	scale       mgl64.Mat4

	transformedPositions []mgl64.Vec3
	transformedNormals   []mgl64.Vec3
	transformedBounds    AABB
}

// NewTriangleMesh builds a mesh from positions, indices and per-triangle
// normals and applies the identity transform.
func NewTriangleMesh(positions []mgl64.Vec3, indices []int, normals []mgl64.Vec3, cullMode CullMode, materialIndex int) (*TriangleMesh, error) {
	m := &TriangleMesh{
		Positions:     positions,
		Normals:       normals,
		Indices:       indices,
		CullMode:      cullMode,
		MaterialIndex: materialIndex,
		rotation:      IdentMatrix(),
		translation:   IdentMatrix(),
		scale:         IdentMatrix(),
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.UpdateTransforms()
	return m, nil
}

// NewTriangleMeshFromData builds a mesh from loaded geometry, deriving flat
// normals when the data carries none.
func NewTriangleMeshFromData(data MeshData, cullMode CullMode, materialIndex int) (*TriangleMesh, error) {
	normals := data.Normals
	if len(normals) == 0 {
		var err error
		normals, err = ComputeFaceNormals(data.Positions, data.Indices)
		if err != nil {
			return nil, err
		}
	}
	return NewTriangleMesh(data.Positions, data.Indices, normals, cullMode, materialIndex)
}

func (m *TriangleMesh) validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	if len(m.Normals) != len(m.Indices)/3 {
		return fmt.Errorf("%w: %d normals for %d triangles", ErrInvalidMesh, len(m.Normals), len(m.Indices)/3)
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return fmt.Errorf("%w: index %d at %d out of range", ErrInvalidMesh, idx, i)
		}
	}
	for i, n := range m.Normals {
		if isNaNVec(n) {
			return fmt.Errorf("%w: triangle %d", ErrDegenerateTriangle, i)
		}
	}
	return nil
}

func (m *TriangleMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *TriangleMesh) Translate(translation mgl64.Vec3) {
	m.translation = TransMatrix(translation[0], translation[1], translation[2])
}

func (m *TriangleMesh) RotateY(yaw float64) {
	m.rotation = NewRotationMatrix(RotY, yaw)
}

func (m *TriangleMesh) Scale(scale mgl64.Vec3) {
	m.scale = ScaleMatrix(scale[0], scale[1], scale[2])
}

func (m *TriangleMesh) Transform() mgl64.Mat4 {
	return m.translation.Mul4(m.rotation).Mul4(m.scale)
}

// UpdateTransforms recomputes the world-space copies of positions and normals
// and the world-space bounding box from the current transform.
func (m *TriangleMesh) UpdateTransforms() {
	final := m.Transform()

	if len(m.transformedPositions) != len(m.Positions) {
		m.transformedPositions = make([]mgl64.Vec3, len(m.Positions))
	}
	for i, p := range m.Positions {
		m.transformedPositions[i] = TransformPoint(final, p)
	}

	if len(m.transformedNormals) != len(m.Normals) {
		m.transformedNormals = make([]mgl64.Vec3, len(m.Normals))
	}
	for i, n := range m.Normals {
		m.transformedNormals[i] = TransformNormal(final, n)
	}

	m.transformedBounds = NewAABBFromPoints(m.transformedPositions)
}

func (m *TriangleMesh) Bounds() AABB {
	return m.transformedBounds
}

// Center moves the source positions so the bounding box is centred on the
// origin.
func (m *TriangleMesh) Center() {
	if len(m.Positions) == 0 {
		return
	}
	center := NewAABBFromPoints(m.Positions).Center()
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Sub(center)
	}
	m.UpdateTransforms()

	size := m.transformedBounds.Size()
	log.Printf("Mesh size: X: %.2f, Y: %.2f, Z: %.2f", size[0], size[1], size[2])
}

func (m *TriangleMesh) Hit(ray Ray, best HitRecord, ignoreRecord bool) (HitRecord, bool) {
	if !m.transformedBounds.SlabTest(ray) {
		return best, false
	}

	hit := false
	for i := 0; i < len(m.Indices)/3; i++ {
		if m.TriangleTestHook != nil {
			m.TriangleTestHook()
		}

		v0 := m.transformedPositions[m.Indices[i*3]]
		v1 := m.transformedPositions[m.Indices[i*3+1]]
		v2 := m.transformedPositions[m.Indices[i*3+2]]

		t, ok := intersectTriangle(v0, v1, v2, m.CullMode, ray, best, ignoreRecord)
		if !ok {
			continue
		}
		if ignoreRecord {
			return best, true
		}

		best = HitRecord{
			Origin:        ray.At(t),
			Normal:        m.transformedNormals[i],
			T:             t,
			DidHit:        true,
			MaterialIndex: m.MaterialIndex,
		}
		hit = true
	}
	return best, hit
}
