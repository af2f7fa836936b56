package gosieray

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinScenes(t *testing.T) {
	names := BuiltinSceneNames()
	assert.Equal(t, []string{"reference", "simple"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := BuiltinScene(name)
			require.NoError(t, err)
			assert.NoError(t, s.Validate())
			assert.NotEmpty(t, s.Lights())
		})
	}

	_, err := BuiltinScene("cornell")
	assert.ErrorContains(t, err, "unknown scene")
}

func TestReferenceScene(t *testing.T) {
	assert := assert.New(t)
	s := NewReferenceScene()

	meshes := s.Meshes()
	require.Len(t, meshes, 3)
	assert.Equal(BackFaceCulling, meshes[0].CullMode)
	assert.Equal(FrontFaceCulling, meshes[1].CullMode)
	assert.Equal(NoCulling, meshes[2].CullMode)
	assert.Len(s.Lights(), 3)

	// the camera looks at the middle column of spheres
	hit := s.GetClosestHit(NewRay(s.Camera().Origin, s.Camera().Forward))
	require.True(t, hit.DidHit)
	assert.IsType(CookTorrance{}, s.Materials()[hit.MaterialIndex])

	before := meshes[0].Bounds()
	s.Update(1)
	after := meshes[0].Bounds()
	assert.NotEqual(before, after)
	assertVecNear(t, before.Center(), after.Center())
}

func TestNewMeshScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	s, err := BuiltinScene("mesh:" + path)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	meshes := s.Meshes()
	require.Len(t, meshes, 1)
	bounds := meshes[0].Bounds()
	// scaled to four units and stood on the floor
	assert.InDelta(t, 4, bounds.Size()[1], 1e-9)
	assert.InDelta(t, 0, bounds.Min[1], 1e-9)

	s.Update(0.5)
	assert.InDelta(t, 4, meshes[0].Bounds().Size()[1], 1e-9)

	_, err = NewMeshScene(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
}

func TestBuiltinSceneLoadsSceneFiles(t *testing.T) {
	s, err := BuiltinScene(writeTestScene(t))
	require.NoError(t, err)
	assert.Len(t, s.Meshes(), 1)
}
