package gosieray

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshData is loader output before it becomes a TriangleMesh. Normals is
// either empty or holds one flat normal per triangle.
type MeshData struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []int
}

func (d MeshData) TriangleCount() int {
	return len(d.Indices) / 3
}

// ComputeFaceNormals derives one normal per triangle from its winding. A
// triangle with zero area has no normal and is reported as an error.
func ComputeFaceNormals(positions []mgl64.Vec3, indices []int) ([]mgl64.Vec3, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(indices))
	}
	normals := make([]mgl64.Vec3, 0, len(indices)/3)
	for i := 0; i < len(indices)/3; i++ {
		normal, ok, err := faceNormal(positions, indices, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: triangle %d", ErrDegenerateTriangle, i)
		}
		normals = append(normals, normal)
	}
	return normals, nil
}

// DropDegenerateTriangles removes zero-area triangles and returns how many
// went. Any normals in data are kept aligned with the surviving triangles.
func DropDegenerateTriangles(data MeshData) (MeshData, int) {
	keepNormals := len(data.Normals) == data.TriangleCount()
	out := MeshData{Positions: data.Positions}
	dropped := 0
	for i := 0; i < data.TriangleCount(); i++ {
		if _, ok, err := faceNormal(data.Positions, data.Indices, i); err != nil || !ok {
			dropped++
			continue
		}
		out.Indices = append(out.Indices, data.Indices[i*3:i*3+3]...)
		if keepNormals {
			out.Normals = append(out.Normals, data.Normals[i])
		}
	}
	return out, dropped
}

func faceNormal(positions []mgl64.Vec3, indices []int, tri int) (mgl64.Vec3, bool, error) {
	var v [3]mgl64.Vec3
	for k := 0; k < 3; k++ {
		idx := indices[tri*3+k]
		if idx < 0 || idx >= len(positions) {
			return mgl64.Vec3{}, false, fmt.Errorf("%w: index %d in triangle %d out of range", ErrInvalidMesh, idx, tri)
		}
		v[k] = positions[idx]
	}
	normal, length := Normalize(v[1].Sub(v[0]).Cross(v[2].Sub(v[0])))
	if length == 0 || isNaNVec(normal) {
		return mgl64.Vec3{}, false, nil
	}
	return normal, true, nil
}

// fanTriangulate appends the triangles (p0, pi, pi+1) of a convex polygon.
func fanTriangulate(indices []int, polygon []int) []int {
	for i := 1; i+1 < len(polygon); i++ {
		indices = append(indices, polygon[0], polygon[i], polygon[i+1])
	}
	return indices
}

// LoadMeshFile picks a loader from the file extension and drops any
// zero-area triangles. scale only applies to 3MF files.
func LoadMeshFile(fileName string, scale float64) (MeshData, error) {
	log.Printf("Loading mesh %s...", fileName)

	var data MeshData
	var err error
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".obj":
		data, err = LoadOBJFile(fileName)
	case ".ply":
		data, err = LoadPLYFile(fileName)
	case ".3mf":
		data, err = Load3MFFile(fileName, scale)
	default:
		return MeshData{}, fmt.Errorf("unsupported mesh format %q", filepath.Ext(fileName))
	}
	if err != nil {
		return MeshData{}, err
	}

	data, dropped := DropDegenerateTriangles(data)
	if dropped > 0 {
		log.Printf("Dropped %d degenerate triangles from %s", dropped, fileName)
	}
	log.Printf("Points: %d", len(data.Positions))
	log.Printf("Triangles: %d", data.TriangleCount())
	return data, nil
}
