package gosieray

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, float64EqualityThreshold)
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, float64EqualityThreshold), "want %v, got %v", want, got)
}

func TestSphereHit(t *testing.T) {
	assert := assert.New(t)
	sphere := NewSphere(V(0, 0, 0), 1, 3)

	t.Run("through centre takes nearer root", func(t *testing.T) {
		ray := NewRay(V(0, 0, -5), UnitZ)
		hit, ok := sphere.Hit(ray, NewHitRecord(), false)
		require.True(t, ok)
		assert.True(hit.DidHit)
		assert.True(almostEqual(4, hit.T))
		assertVecNear(t, V(0, 0, -1), hit.Origin)
		assertVecNear(t, V(0, 0, -1), hit.Normal)
		assert.True(almostEqual(1, hit.Normal.Len()))
		assert.Greater(hit.Normal.Dot(hit.Origin.Sub(sphere.Origin)), 0.0)
		assert.Equal(3, hit.MaterialIndex)
	})

	t.Run("off axis normal is unit and outward", func(t *testing.T) {
		origin := V(0.3, -0.2, -4)
		dir, _ := Normalize(V(0.1, 0.05, 1))
		hit, ok := sphere.Hit(NewRay(origin, dir), NewHitRecord(), false)
		require.True(t, ok)
		assert.True(almostEqual(1, hit.Normal.Len()))
		assert.Greater(hit.Normal.Dot(hit.Origin.Sub(sphere.Origin)), 0.0)
	})

	t.Run("beyond max is a miss", func(t *testing.T) {
		ray := NewRay(V(0, 0, -5), UnitZ)
		ray.Max = 3
		best := NewHitRecord()
		hit, ok := sphere.Hit(ray, best, false)
		assert.False(ok)
		assert.Equal(best, hit)
	})

	t.Run("farther than best is a miss", func(t *testing.T) {
		best := NewHitRecord()
		best.T = 2
		best.DidHit = true
		hit, ok := sphere.Hit(NewRay(V(0, 0, -5), UnitZ), best, false)
		assert.False(ok)
		assert.Equal(best, hit)
	})

	t.Run("tangent ray is a miss", func(t *testing.T) {
		_, ok := sphere.Hit(NewRay(V(1, 0, -5), UnitZ), NewHitRecord(), false)
		assert.False(ok)
	})

	t.Run("occlusion leaves record untouched", func(t *testing.T) {
		best := NewHitRecord()
		hit, ok := sphere.Hit(NewRay(V(0, 0, -5), UnitZ), best, true)
		assert.True(ok)
		assert.Equal(best, hit)
	})
}

func TestPlaneHit(t *testing.T) {
	assert := assert.New(t)
	floor := NewPlane(V(0, 0, 0), V(0, 2, 0), 1)
	assertVecNear(t, UnitY, floor.Normal)

	hit, ok := floor.Hit(NewRay(V(1, 5, 2), V(0, -1, 0)), NewHitRecord(), false)
	require.True(t, ok)
	assert.True(almostEqual(5, hit.T))
	assertVecNear(t, V(1, 0, 2), hit.Origin)
	assertVecNear(t, UnitY, hit.Normal)
	assert.True(almostEqual(0, floor.Distance(hit.Origin)))

	_, ok = floor.Hit(NewRay(V(1, 5, 2), V(0, 1, 0)), NewHitRecord(), false)
	assert.False(ok, "ray leaving the plane")

	_, ok = floor.Hit(NewRay(V(1, 5, 2), V(1, 0, 0)), NewHitRecord(), false)
	assert.False(ok, "parallel ray")

	_, ok = floor.Hit(NewRay(V(1, -5, 2), V(0, 1, 0)), NewHitRecord(), false)
	assert.False(ok, "ray from behind")
}

// frontFacing points its normal at a camera on the -Z side.
func frontFacing(cull CullMode) Triangle {
	return NewTriangle(V(0, 1, 0), V(1, -1, 0), V(-1, -1, 0), cull, 0)
}

func backFacing(cull CullMode) Triangle {
	return NewTriangle(V(0, 1, 0), V(-1, -1, 0), V(1, -1, 0), cull, 0)
}

func TestTriangleNormal(t *testing.T) {
	assertVecNear(t, V(0, 0, -1), frontFacing(NoCulling).Normal)
	assertVecNear(t, V(0, 0, 1), backFacing(NoCulling).Normal)
}

func TestTriangleCulling(t *testing.T) {
	ray := NewRay(V(0, 0, -5), UnitZ)

	testCases := []struct {
		name     string
		triangle Triangle
		hit      bool
		occludes bool
	}{
		{"front face, front culling", frontFacing(FrontFaceCulling), false, true},
		{"front face, back culling", frontFacing(BackFaceCulling), true, false},
		{"front face, no culling", frontFacing(NoCulling), true, true},
		{"back face, front culling", backFacing(FrontFaceCulling), true, false},
		{"back face, back culling", backFacing(BackFaceCulling), false, true},
		{"back face, no culling", backFacing(NoCulling), true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := tc.triangle.Hit(ray, NewHitRecord(), false)
			assert.Equal(t, tc.hit, ok)
			if ok {
				assert.True(t, almostEqual(5, hit.T))
				assertVecNear(t, tc.triangle.Normal, hit.Normal)
			}

			_, ok = tc.triangle.Hit(ray, NewHitRecord(), true)
			assert.Equal(t, tc.occludes, ok)
		})
	}
}

func TestTriangleWindingInvariantWithoutCulling(t *testing.T) {
	v0, v1, v2 := V(-2, -1, 3), V(2, -1, 4), V(0, 2, 3.5)
	permutations := [][3]mgl64.Vec3{
		{v0, v1, v2}, {v0, v2, v1}, {v1, v0, v2},
		{v1, v2, v0}, {v2, v0, v1}, {v2, v1, v0},
	}
	ray := NewRay(V(0, 0, -5), UnitZ)

	var first HitRecord
	for i, p := range permutations {
		hit, ok := NewTriangle(p[0], p[1], p[2], NoCulling, 0).Hit(ray, NewHitRecord(), false)
		require.True(t, ok, "permutation %d", i)
		if i == 0 {
			first = hit
			continue
		}
		assert.True(t, almostEqual(first.T, hit.T), "permutation %d", i)
	}
}

func TestTriangleMisses(t *testing.T) {
	assert := assert.New(t)
	tri := frontFacing(NoCulling)

	_, ok := tri.Hit(NewRay(V(3, 0, -5), UnitZ), NewHitRecord(), false)
	assert.False(ok, "outside the edges")

	_, ok = tri.Hit(NewRay(V(0, 0, -5), UnitX), NewHitRecord(), false)
	assert.False(ok, "parallel to the plane")

	degenerate := NewTriangle(V(0, 0, 0), V(1, 1, 0), V(2, 2, 0), NoCulling, 0)
	_, ok = degenerate.Hit(NewRay(V(1, 1, -5), UnitZ), NewHitRecord(), false)
	assert.False(ok, "zero area")

	_, ok = tri.Hit(NewRay(V(0, 0, 1), UnitZ), NewHitRecord(), false)
	assert.False(ok, "behind the origin")
}

func TestAABBSlabTest(t *testing.T) {
	box := NewAABBFromPoints([]mgl64.Vec3{V(-1, -1, -1), V(1, 1, 1)})

	testCases := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"straight in", NewRay(V(0, 0, -5), UnitZ), true},
		{"axis parallel outside", NewRay(V(2, 0, -5), UnitZ), false},
		{"pointing away", NewRay(V(0, 0, -5), V(0, 0, -1)), false},
		{"starting inside", NewRay(V(0, 0, 0), UnitX), true},
		{"span ends short", Ray{Origin: V(0, 0, -5), Direction: UnitZ, Min: 0, Max: 3}, false},
		{"span starts late", Ray{Origin: V(0, 0, -5), Direction: UnitZ, Min: 7, Max: 10}, false},
		{"diagonal", NewRay(V(-5, -5, -5), V(1, 1, 1).Normalize()), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, box.SlabTest(tc.ray))
		})
	}
}

func TestAABBFromPoints(t *testing.T) {
	assert := assert.New(t)
	box := NewAABBFromPoints([]mgl64.Vec3{V(1, 2, 3), V(-1, 5, 0), V(0, 0, 1)})
	assertVecNear(t, V(-1, 0, 0), box.Min)
	assertVecNear(t, V(1, 5, 3), box.Max)
	assertVecNear(t, V(0, 2.5, 1.5), box.Center())
	assertVecNear(t, V(2, 5, 3), box.Size())

	empty := NewAABBFromPoints(nil)
	assert.False(empty.SlabTest(NewRay(V(0, 0, 0), UnitZ)))
	assert.True(math.IsInf(empty.Min[0], 1))
}

func TestSmallTrianglesStillHit(t *testing.T) {
	for _, size := range []float64{1, 1e-3, 1e-5, 1e-7} {
		positions := []mgl64.Vec3{V(-size, -size, 0), V(0, size, 0), V(size, -size, 0)}
		tri := NewTriangle(positions[0], positions[1], positions[2], NoCulling, 0)

		hit, ok := tri.Hit(NewRay(V(0, 0, -1), UnitZ), NewHitRecord(), false)
		require.True(t, ok, "size %g", size)
		assert.True(t, almostEqual(1, hit.T), "size %g", size)
		assertVecNear(t, V(0, 0, -1), hit.Normal)

		_, ok = tri.Hit(NewRay(V(-1, 0, 0), UnitX), NewHitRecord(), false)
		assert.False(t, ok, "parallel ray, size %g", size)

		mesh, err := NewTriangleMeshFromData(MeshData{Positions: positions, Indices: []int{0, 1, 2}}, NoCulling, 0)
		require.NoError(t, err)
		_, ok = mesh.Hit(NewRay(V(0, 0, -1), UnitZ), NewHitRecord(), true)
		assert.True(t, ok, "mesh occlusion, size %g", size)
	}
}
