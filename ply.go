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

func LoadPLYFile(fileName string) (MeshData, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return MeshData{}, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return MeshData{}, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return data, nil
}

// ParsePLY reads an ASCII PLY stream. The first three vertex properties are
// taken as x, y, z and anything after them (colors, normals) is ignored.
// Faces are fan-triangulated.
func ParsePLY(reader io.Reader) (MeshData, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return MeshData{}, fmt.Errorf("missing ply magic line")
	}

	var vertexCount, faceCount int
	var vertexProps int
	var currentElement string
	headerDone := false

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return MeshData{}, fmt.Errorf("unsupported PLY format %q, only ascii is read", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return MeshData{}, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			currentElement = parts[1]
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return MeshData{}, fmt.Errorf("could not parse element count '%s': %w", parts[2], err)
			}
			switch currentElement {
			case "vertex":
				vertexCount = count
			case "face":
				faceCount = count
			}
		case "property":
			if currentElement == "vertex" {
				vertexProps++
			}
		case "end_header":
			headerDone = true
			break header
		}
	}
	if !headerDone {
		return MeshData{}, fmt.Errorf("unexpected end of file while reading header")
	}
	if vertexCount > 0 && vertexProps < 3 {
		return MeshData{}, fmt.Errorf("vertex element declares %d properties, need x y z", vertexProps)
	}

	data := MeshData{Positions: make([]mgl64.Vec3, 0, vertexCount)}
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return MeshData{}, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return MeshData{}, fmt.Errorf("invalid vertex data on vertex %d", i)
		}
		var p mgl64.Vec3
		for k := 0; k < 3; k++ {
			val, err := strconv.ParseFloat(parts[k], 64)
			if err != nil {
				return MeshData{}, fmt.Errorf("vertex %d: could not parse coordinate '%s': %w", i, parts[k], err)
			}
			p[k] = val
		}
		data.Positions = append(data.Positions, p)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return MeshData{}, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return MeshData{}, fmt.Errorf("empty face line for face %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil {
			return MeshData{}, fmt.Errorf("face %d: could not parse vertex count: %w", i, err)
		}
		if numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return MeshData{}, fmt.Errorf("invalid face data on face %d", i)
		}

		polygon := make([]int, numFaceVerts)
		for j := 0; j < numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil {
				return MeshData{}, fmt.Errorf("face %d: could not parse index '%s': %w", i, parts[j+1], err)
			}
			if idx < 0 || idx >= vertexCount {
				return MeshData{}, fmt.Errorf("%w: face %d index %d out of range", ErrInvalidMesh, i, idx)
			}
			polygon[j] = idx
		}
		data.Indices = fanTriangulate(data.Indices, polygon)
	}

	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return data, nil
}
