package gosieray

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// SceneFile is the YAML description of a scene.
type SceneFile struct {
	Camera    CameraSpec              `yaml:"camera"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Lights    []LightSpec             `yaml:"lights"`
	Spheres   []SphereSpec            `yaml:"spheres,omitempty"`
	Planes    []PlaneSpec             `yaml:"planes,omitempty"`
	Triangles []TriangleSpec          `yaml:"triangles,omitempty"`
	Meshes    []MeshSpec              `yaml:"meshes,omitempty"`
}

type CameraSpec struct {
	Origin [3]float64  `yaml:"origin"`
	LookAt *[3]float64 `yaml:"look_at,omitempty"`
	Fov    float64     `yaml:"fov"`
	Pitch  float64     `yaml:"pitch,omitempty"` // degrees, ignored with look_at
	Yaw    float64     `yaml:"yaw,omitempty"`   // degrees, ignored with look_at
}

type MaterialSpec struct {
	Type      string     `yaml:"type"` // solid, lambert, lambert_phong, cook_torrance
	Color     [3]float64 `yaml:"color"`
	KD        float64    `yaml:"kd,omitempty"`
	KS        float64    `yaml:"ks,omitempty"`
	Exponent  float64    `yaml:"exponent,omitempty"`
	Metalness float64    `yaml:"metalness,omitempty"`
	Roughness float64    `yaml:"roughness,omitempty"`
}

type LightSpec struct {
	Type      string     `yaml:"type"` // point or directional
	Origin    [3]float64 `yaml:"origin,omitempty"`
	Direction [3]float64 `yaml:"direction,omitempty"`
	Color     [3]float64 `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

type SphereSpec struct {
	Origin   [3]float64 `yaml:"origin"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

type PlaneSpec struct {
	Origin   [3]float64 `yaml:"origin"`
	Normal   [3]float64 `yaml:"normal"`
	Material string     `yaml:"material"`
}

type TriangleSpec struct {
	V0       [3]float64 `yaml:"v0"`
	V1       [3]float64 `yaml:"v1"`
	V2       [3]float64 `yaml:"v2"`
	Cull     string     `yaml:"cull,omitempty"`
	Material string     `yaml:"material"`
}

type MeshSpec struct {
	Path      string      `yaml:"path"`
	Unit      float64     `yaml:"unit,omitempty"` // 3MF coordinate divisor
	Center    bool        `yaml:"center,omitempty"`
	Translate [3]float64  `yaml:"translate,omitempty"`
	RotateY   float64     `yaml:"rotate_y,omitempty"` // degrees
	Scale     *[3]float64 `yaml:"scale,omitempty"`
	Spin      float64     `yaml:"spin,omitempty"` // degrees per second around Y
	Cull      string      `yaml:"cull,omitempty"`
	Material  string      `yaml:"material"`
}

// ValidationError names the offending field of a scene file.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ParseCullMode(name string) (CullMode, error) {
	switch strings.ToLower(name) {
	case "front":
		return FrontFaceCulling, nil
	case "back":
		return BackFaceCulling, nil
	case "none", "":
		return NoCulling, nil
	}
	return NoCulling, fmt.Errorf("unknown cull mode %q", name)
}

func vec(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}

func color3(a [3]float64) ColorRGB {
	return ColorRGB{R: a[0], G: a[1], B: a[2]}
}

// LoadSceneFile reads, validates and builds a scene. Relative mesh paths are
// resolved against the directory of the scene file.
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	sf := &SceneFile{}
	if err := yaml.Unmarshal(data, sf); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}

	if errs := sf.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation errors: %v", errs)
	}

	baseDir := filepath.Dir(path)
	for i := range sf.Meshes {
		if !filepath.IsAbs(sf.Meshes[i].Path) {
			sf.Meshes[i].Path = filepath.Join(baseDir, sf.Meshes[i].Path)
		}
	}

	scene, err := sf.Build()
	if err != nil {
		return nil, fmt.Errorf("building scene from %s: %w", path, err)
	}
	return scene, nil
}

// Validate reports every problem in the document at once.
func (sf *SceneFile) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	isZero := func(a [3]float64) bool { return a == [3]float64{} }
	checkMaterial := func(field, name string) {
		if _, ok := sf.Materials[name]; !ok {
			add(field, "unknown material %q", name)
		}
	}
	checkCull := func(field, name string) {
		if _, err := ParseCullMode(name); err != nil {
			add(field, "%v", err)
		}
	}

	if sf.Camera.Fov <= 0 || sf.Camera.Fov >= 180 {
		add("camera.fov", "must be between 0 and 180 degrees exclusive")
	}
	if sf.Camera.LookAt != nil && *sf.Camera.LookAt == sf.Camera.Origin {
		add("camera.look_at", "must differ from the camera origin")
	}

	if len(sf.Materials) == 0 {
		add("materials", "at least one material is required")
	}
	for _, name := range slices.Sorted(maps.Keys(sf.Materials)) {
		m := sf.Materials[name]
		field := "materials." + name
		switch m.Type {
		case "solid", "lambert", "lambert_phong":
		case "cook_torrance":
			if m.Roughness < 0 || m.Roughness > 1 {
				add(field+".roughness", "must be between 0 and 1")
			}
			if m.Metalness < 0 || m.Metalness > 1 {
				add(field+".metalness", "must be between 0 and 1")
			}
		default:
			add(field+".type", "unknown material type %q", m.Type)
		}
		for c, v := range m.Color {
			if v < 0 {
				add(fmt.Sprintf("%s.color[%d]", field, c), "must be non-negative")
			}
		}
		if m.KD < 0 || m.KS < 0 || m.Exponent < 0 {
			add(field, "kd, ks and exponent must be non-negative")
		}
	}

	for i, l := range sf.Lights {
		field := fmt.Sprintf("lights[%d]", i)
		switch l.Type {
		case "point":
		case "directional":
			if isZero(l.Direction) {
				add(field+".direction", "must be non-zero")
			}
		default:
			add(field+".type", "unknown light type %q", l.Type)
		}
		if l.Intensity < 0 {
			add(field+".intensity", "must be non-negative")
		}
	}

	for i, s := range sf.Spheres {
		field := fmt.Sprintf("spheres[%d]", i)
		if !(s.Radius > 0) {
			add(field+".radius", "must be positive")
		}
		checkMaterial(field+".material", s.Material)
	}
	for i, p := range sf.Planes {
		field := fmt.Sprintf("planes[%d]", i)
		if isZero(p.Normal) {
			add(field+".normal", "must be non-zero")
		}
		checkMaterial(field+".material", p.Material)
	}
	for i, t := range sf.Triangles {
		field := fmt.Sprintf("triangles[%d]", i)
		tri := NewTriangle(vec(t.V0), vec(t.V1), vec(t.V2), NoCulling, 0)
		if tri.Normal.Len() == 0 {
			add(field, "has zero area")
		}
		checkCull(field+".cull", t.Cull)
		checkMaterial(field+".material", t.Material)
	}
	for i, m := range sf.Meshes {
		field := fmt.Sprintf("meshes[%d]", i)
		if m.Path == "" {
			add(field+".path", "is required")
		}
		if m.Unit < 0 {
			add(field+".unit", "must be positive")
		}
		if m.Scale != nil && (m.Scale[0] == 0 || m.Scale[1] == 0 || m.Scale[2] == 0) {
			add(field+".scale", "components must be non-zero")
		}
		checkCull(field+".cull", m.Cull)
		checkMaterial(field+".material", m.Material)
	}
	return errs
}

// Build turns a validated document into a scene. Materials get indices in
// name order so repeated loads produce identical scenes.
func (sf *SceneFile) Build() (*Scene, error) {
	scene := NewScene()

	materialIndex := make(map[string]int, len(sf.Materials))
	for _, name := range slices.Sorted(maps.Keys(sf.Materials)) {
		materialIndex[name] = scene.AddMaterial(sf.Materials[name].material())
	}

	var cam *Camera
	if sf.Camera.LookAt != nil {
		cam = NewCameraLookAt(vec(sf.Camera.Origin), vec(*sf.Camera.LookAt), sf.Camera.Fov)
	} else {
		cam = NewCamera(vec(sf.Camera.Origin), sf.Camera.Fov)
		cam.AddAngle(sf.Camera.Pitch, sf.Camera.Yaw)
	}
	scene.SetCamera(cam)

	for _, l := range sf.Lights {
		switch l.Type {
		case "point":
			scene.AddPointLight(vec(l.Origin), l.Intensity, color3(l.Color))
		case "directional":
			scene.AddDirectionalLight(vec(l.Direction), l.Intensity, color3(l.Color))
		}
	}
	for _, s := range sf.Spheres {
		scene.AddSphere(vec(s.Origin), s.Radius, materialIndex[s.Material])
	}
	for _, p := range sf.Planes {
		scene.AddPlane(vec(p.Origin), vec(p.Normal), materialIndex[p.Material])
	}
	for _, t := range sf.Triangles {
		cull, _ := ParseCullMode(t.Cull)
		scene.AddTriangle(NewTriangle(vec(t.V0), vec(t.V1), vec(t.V2), cull, materialIndex[t.Material]))
	}

	type spinner struct {
		mesh  *TriangleMesh
		base  float64
		speed float64
		angle float64
	}
	var spinners []*spinner
	for i, m := range sf.Meshes {
		data, err := LoadMeshFile(m.Path, m.Unit)
		if err != nil {
			return nil, fmt.Errorf("meshes[%d]: %w", i, err)
		}
		cull, _ := ParseCullMode(m.Cull)
		mesh, err := NewTriangleMeshFromData(data, cull, materialIndex[m.Material])
		if err != nil {
			return nil, fmt.Errorf("meshes[%d]: %w", i, err)
		}
		if m.Center {
			mesh.Center()
		}
		mesh.Translate(vec(m.Translate))
		mesh.RotateY(degreesToRadians(m.RotateY))
		if m.Scale != nil {
			mesh.Scale(vec(*m.Scale))
		}
		mesh.UpdateTransforms()
		scene.AddTriangleMesh(mesh)

		if m.Spin != 0 {
			spinners = append(spinners, &spinner{mesh: mesh, base: degreesToRadians(m.RotateY), speed: degreesToRadians(m.Spin)})
		}
	}

	if len(spinners) > 0 {
		scene.Animator = func(_ *Scene, elapsed float64) {
			for _, s := range spinners {
				s.angle = math.Mod(s.angle+s.speed*elapsed, 2*math.Pi)
				s.mesh.RotateY(s.base + s.angle)
				s.mesh.UpdateTransforms()
			}
		}
	}
	return scene, nil
}

func (m MaterialSpec) material() Material {
	c := color3(m.Color)
	switch m.Type {
	case "lambert":
		return Lambert{DiffuseColor: c, DiffuseReflectance: m.KD}
	case "lambert_phong":
		return LambertPhong{DiffuseColor: c, KD: m.KD, KS: m.KS, PhongExponent: m.Exponent}
	case "cook_torrance":
		return CookTorrance{Albedo: c, Metalness: m.Metalness, Roughness: m.Roughness}
	}
	return SolidColor{Color: c}
}
