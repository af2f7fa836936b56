package gosieray

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var builtinScenes = map[string]func() (*Scene, error){
	"reference": func() (*Scene, error) { return NewReferenceScene(), nil },
	"simple":    func() (*Scene, error) { return NewSimpleScene(), nil },
}

// BuiltinSceneNames lists the names BuiltinScene accepts.
func BuiltinSceneNames() []string {
	return slices.Sorted(maps.Keys(builtinScenes))
}

// BuiltinScene returns a scene by name. "mesh:<path>" wraps a mesh file in
// the mesh scene and a path ending in .yaml or .yml is loaded as a scene file.
func BuiltinScene(name string) (*Scene, error) {
	if path, ok := strings.CutPrefix(name, "mesh:"); ok {
		return NewMeshScene(path)
	}
	if ext := strings.ToLower(name); strings.HasSuffix(ext, ".yaml") || strings.HasSuffix(ext, ".yml") {
		return LoadSceneFile(name)
	}
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %s)", name, strings.Join(BuiltinSceneNames(), ", "))
	}
	return build()
}

// addRoom encloses the origin in five planes facing inwards.
func addRoom(s *Scene, material int) {
	s.AddPlane(V(0, 0, 10), V(0, 0, -1), material)
	s.AddPlane(V(0, 0, 0), V(0, 1, 0), material)
	s.AddPlane(V(0, 10, 0), V(0, -1, 0), material)
	s.AddPlane(V(5, 0, 0), V(-1, 0, 0), material)
	s.AddPlane(V(-5, 0, 0), V(1, 0, 0), material)
}

// NewReferenceScene is two rows of Cook-Torrance spheres, metal above
// plastic at three roughness levels, with three spinning triangles that use
// each cull mode.
func NewReferenceScene() *Scene {
	s := NewScene()
	s.SetCamera(NewCamera(V(0, 3, -9), 45))

	silver := ColorRGB{R: 0.972, G: 0.960, B: 0.915}
	plastic := Grey(0.75)
	roughMetal := s.AddMaterial(CookTorrance{Albedo: silver, Metalness: 1, Roughness: 1})
	mediumMetal := s.AddMaterial(CookTorrance{Albedo: silver, Metalness: 1, Roughness: 0.6})
	smoothMetal := s.AddMaterial(CookTorrance{Albedo: silver, Metalness: 1, Roughness: 0.1})
	roughPlastic := s.AddMaterial(CookTorrance{Albedo: plastic, Metalness: 0, Roughness: 1})
	mediumPlastic := s.AddMaterial(CookTorrance{Albedo: plastic, Metalness: 0, Roughness: 0.6})
	smoothPlastic := s.AddMaterial(CookTorrance{Albedo: plastic, Metalness: 0, Roughness: 0.1})
	greyBlue := s.AddMaterial(Lambert{DiffuseColor: ColorRGB{R: 0.49, G: 0.57, B: 0.57}, DiffuseReflectance: 1})
	white := s.AddMaterial(Lambert{DiffuseColor: White, DiffuseReflectance: 1})

	addRoom(s, greyBlue)

	s.AddSphere(V(-1.75, 1, 0), 0.75, roughMetal)
	s.AddSphere(V(0, 1, 0), 0.75, mediumMetal)
	s.AddSphere(V(1.75, 1, 0), 0.75, smoothMetal)
	s.AddSphere(V(-1.75, 3, 0), 0.75, roughPlastic)
	s.AddSphere(V(0, 3, 0), 0.75, mediumPlastic)
	s.AddSphere(V(1.75, 3, 0), 0.75, smoothPlastic)

	positions := []mgl64.Vec3{V(-0.75, 1.5, 0), V(0.75, 0, 0), V(-0.75, 0, 0)}
	indices := []int{0, 1, 2}
	normals, _ := ComputeFaceNormals(positions, indices)

	var spinning []*TriangleMesh
	for i, cull := range []CullMode{BackFaceCulling, FrontFaceCulling, NoCulling} {
		// own copy so Center on one mesh cannot move the others
		mesh, err := NewTriangleMesh(slices.Clone(positions), indices, normals, cull, white)
		if err != nil {
			panic(err)
		}
		mesh.Translate(V(-1.75+1.75*float64(i), 4.5, 0))
		mesh.UpdateTransforms()
		spinning = append(spinning, s.AddTriangleMesh(mesh))
	}

	var total float64
	s.Animator = func(_ *Scene, elapsed float64) {
		total += elapsed
		yaw := (math.Cos(total) + 1) / 2 * 2 * math.Pi
		for _, m := range spinning {
			m.RotateY(yaw)
			m.UpdateTransforms()
		}
	}

	s.AddPointLight(V(0, 5, 5), 50, ColorRGB{R: 1, G: 0.61, B: 0.45})
	s.AddPointLight(V(-2.5, 5, -5), 70, ColorRGB{R: 1, G: 0.8, B: 0.45})
	s.AddPointLight(V(2.5, 2.5, -5), 50, ColorRGB{R: 0.34, G: 0.47, B: 0.68})
	return s
}

// NewSimpleScene is a handful of Lambert and Phong spheres on a floor, lit by
// one point light and a low sun.
func NewSimpleScene() *Scene {
	s := NewScene()
	s.SetCamera(NewCamera(V(0, 1, -5), 45))

	red := s.AddMaterial(Lambert{DiffuseColor: Red, DiffuseReflectance: 1})
	blue := s.AddMaterial(LambertPhong{DiffuseColor: Blue, KD: 1, KS: 1, PhongExponent: 60})
	yellow := s.AddMaterial(Lambert{DiffuseColor: Yellow, DiffuseReflectance: 1})
	green := s.AddMaterial(Lambert{DiffuseColor: Green, DiffuseReflectance: 1})
	magenta := s.AddMaterial(Lambert{DiffuseColor: Magenta, DiffuseReflectance: 1})

	s.AddSphere(V(-0.75, 1, 0), 1, red)
	s.AddSphere(V(0.75, 1, 0), 1, blue)
	s.AddSphere(V(0, 0.25, -1.5), 0.25, yellow)

	s.AddPlane(V(0, 0, 0), V(0, 1, 0), green)
	s.AddPlane(V(0, 0, 10), V(0, 0, -1), magenta)

	s.AddPointLight(V(0, 5, -5), 25, White)
	s.AddDirectionalLight(V(1, -1, 1), 0.5, ColorRGB{R: 1, G: 0.95, B: 0.8})
	return s
}

// NewMeshScene loads one OBJ, PLY or 3MF file, centres it in a small room and
// spins it slowly.
func NewMeshScene(path string) (*Scene, error) {
	data, err := LoadMeshFile(path, 1000)
	if err != nil {
		return nil, err
	}

	s := NewScene()
	s.SetCamera(NewCamera(V(0, 3, -9), 45))

	floor := s.AddMaterial(Lambert{DiffuseColor: ColorRGB{R: 0.49, G: 0.57, B: 0.57}, DiffuseReflectance: 1})
	body := s.AddMaterial(CookTorrance{Albedo: ColorRGB{R: 0.95, G: 0.64, B: 0.54}, Metalness: 1, Roughness: 0.5})
	addRoom(s, floor)

	mesh, err := NewTriangleMeshFromData(data, BackFaceCulling, body)
	if err != nil {
		return nil, fmt.Errorf("building mesh from %s: %w", path, err)
	}
	mesh.Center()

	size := mesh.Bounds().Size()
	largest := math.Max(size[0], math.Max(size[1], size[2]))
	scale := 1.0
	if largest > 0 {
		scale = 4 / largest
	}
	mesh.Scale(V(scale, scale, scale))
	mesh.Translate(V(0, size[1]*scale/2, 0))
	mesh.UpdateTransforms()
	s.AddTriangleMesh(mesh)

	var yaw float64
	s.Animator = func(_ *Scene, elapsed float64) {
		yaw = math.Mod(yaw+elapsed, 2*math.Pi)
		mesh.RotateY(yaw)
		mesh.UpdateTransforms()
	}

	s.AddPointLight(V(0, 5, 5), 50, ColorRGB{R: 1, G: 0.61, B: 0.45})
	s.AddPointLight(V(-2.5, 5, -5), 70, ColorRGB{R: 1, G: 0.8, B: 0.45})
	s.AddPointLight(V(2.5, 2.5, -5), 50, ColorRGB{R: 0.34, G: 0.47, B: 0.68})
	return s, nil
}
