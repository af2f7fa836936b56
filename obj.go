package gosieray

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

func LoadOBJFile(fileName string) (MeshData, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return MeshData{}, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return MeshData{}, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	return data, nil
}

// ParseOBJ reads the vertex and face statements of a Wavefront OBJ stream.
// Face corners may be written as v, v/vt, v//vn or v/vt/vn; only the position
// index is used. Negative indices count back from the last vertex read.
func ParseOBJ(reader io.Reader) (MeshData, error) {
	var data MeshData
	scanner := bufio.NewScanner(reader)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return MeshData{}, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var p mgl64.Vec3
			for i := 0; i < 3; i++ {
				val, err := strconv.ParseFloat(parts[i+1], 64)
				if err != nil {
					return MeshData{}, fmt.Errorf("line %d: could not parse coordinate '%s': %w", lineNo, parts[i+1], err)
				}
				p[i] = val
			}
			data.Positions = append(data.Positions, p)

		case "f":
			if len(parts) < 4 {
				return MeshData{}, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			polygon := make([]int, 0, len(parts)-1)
			for _, corner := range parts[1:] {
				idx, err := parseOBJIndex(corner, len(data.Positions))
				if err != nil {
					return MeshData{}, fmt.Errorf("line %d: %w", lineNo, err)
				}
				polygon = append(polygon, idx)
			}
			data.Indices = fanTriangulate(data.Indices, polygon)
		}
	}

	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("error reading from OBJ source: %w", err)
	}
	return data, nil
}

func parseOBJIndex(corner string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(corner, '/'); slash >= 0 {
		corner = corner[:slash]
	}
	idx, err := strconv.Atoi(corner)
	if err != nil {
		return 0, fmt.Errorf("could not parse face index '%s': %w", corner, err)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += vertexCount
	default:
		return 0, fmt.Errorf("%w: face index 0", ErrInvalidMesh)
	}
	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("%w: face index %s refers to a vertex not yet defined", ErrInvalidMesh, corner)
	}
	return idx, nil
}
