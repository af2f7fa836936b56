package gosieray

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hpinc/go3mf"
)

// Load3MFFile merges the meshes of every build item in a 3MF package into one
// MeshData. Coordinates are divided by scale, so 1000 turns millimetres into
// metres.
func Load3MFFile(fileName string, scale float64) (MeshData, error) {
	if scale == 0 {
		scale = 1
	}

	var model go3mf.Model
	r, err := go3mf.OpenReader(fileName)
	if err != nil {
		return MeshData{}, fmt.Errorf("could not open 3MF file %s: %w", fileName, err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return MeshData{}, fmt.Errorf("error decoding 3MF file %s: %w", fileName, err)
	}

	var data MeshData
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}

		base := len(data.Positions)
		for _, v := range obj.Mesh.Vertices.Vertex {
			data.Positions = append(data.Positions, mgl64.Vec3{
				float64(v.X()) / scale,
				float64(v.Y()) / scale,
				float64(v.Z()) / scale,
			})
		}
		for _, t := range obj.Mesh.Triangles.Triangle {
			data.Indices = append(data.Indices, base+int(t.V1), base+int(t.V2), base+int(t.V3))
		}
	}
	return data, nil
}
