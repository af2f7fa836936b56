package gosieray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	assert.True(t, almostEqual(1, c.Forward.Len()), "forward %v", c.Forward)
	assert.True(t, almostEqual(1, c.Right.Len()), "right %v", c.Right)
	assert.True(t, almostEqual(1, c.Up.Len()), "up %v", c.Up)
	assert.True(t, almostEqual(0, c.Forward.Dot(c.Right)))
	assert.True(t, almostEqual(0, c.Forward.Dot(c.Up)))
	assert.True(t, almostEqual(0, c.Right.Dot(c.Up)))
	// right-handed: right x up = forward
	assertVecNear(t, c.Forward, c.Right.Cross(c.Up))
}

func TestNewCamera(t *testing.T) {
	assert := assert.New(t)
	c := NewCamera(V(1, 2, 3), 90)

	assertVecNear(t, UnitZ, c.Forward)
	assertVecNear(t, UnitX, c.Right)
	assertVecNear(t, UnitY, c.Up)
	assert.True(almostEqual(1, c.FovScale))
	assertVecNear(t, V(1, 2, 3), TransformPoint(c.CameraToWorld, V(0, 0, 0)))
}

func TestCameraBasisStaysOrthonormal(t *testing.T) {
	c := NewCamera(V(0, 0, 0), 60)
	angles := [][2]float64{{30, 45}, {-50, 170}, {10, -300}, {200, 0}, {-400, 33}}
	for _, a := range angles {
		c.AddAngle(a[0], a[1])
		assertOrthonormal(t, c)
		assert.LessOrEqual(t, math.Abs(c.TotalPitch), maxPitchDeg)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera(V(0, 0, 0), 60)
	c.AddAngle(500, 0)
	assert.Equal(t, maxPitchDeg, c.TotalPitch)
	c.AddAngle(-1000, 0)
	assert.Equal(t, -maxPitchDeg, c.TotalPitch)
	assertOrthonormal(t, c)
}

func TestCameraSetFov(t *testing.T) {
	testCases := []struct {
		in, want float64
	}{
		{90, 90},
		{0, minFov},
		{-20, minFov},
		{180, maxFov},
		{45, 45},
	}
	for _, tc := range testCases {
		c := NewCamera(V(0, 0, 0), 60)
		c.SetFov(tc.in)
		assert.Equal(t, tc.want, c.FovAngle)
		assert.True(t, almostEqual(math.Tan(degreesToRadians(tc.want)/2), c.FovScale))
	}
}

func TestNewCameraLookAt(t *testing.T) {
	testCases := []struct {
		name           string
		origin, target [3]float64
	}{
		{"down +z", [3]float64{0, 0, -5}, [3]float64{0, 0, 0}},
		{"along +x", [3]float64{0, 0, 0}, [3]float64{5, 0, 0}},
		{"up and left", [3]float64{1, 0, 1}, [3]float64{-2, 3, 4}},
		{"down and behind", [3]float64{0, 5, 0}, [3]float64{1, 0, -3}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCameraLookAt(vec(tc.origin), vec(tc.target), 60)
			want, _ := Normalize(vec(tc.target).Sub(vec(tc.origin)))
			assertVecNear(t, want, c.Forward)
			assertOrthonormal(t, c)
		})
	}
}

func TestCameraMove(t *testing.T) {
	assert := assert.New(t)
	c := NewCamera(V(0, 0, 0), 60)
	before := *c

	c.Move(CameraDelta{})
	assert.Equal(before, *c)

	c.Move(CameraDelta{Forward: 2, Right: 1, Up: 3, Fov: 10, Yaw: 90})
	// translation uses the basis from before the rotation
	assertVecNear(t, V(1, 3, 2), c.Origin)
	assert.Equal(70.0, c.FovAngle)
	assertVecNear(t, UnitX, c.Forward)
	assertVecNear(t, V(1, 3, 2), TransformPoint(c.CameraToWorld, V(0, 0, 0)))
	assertOrthonormal(t, c)
}

func TestCameraRayDirection(t *testing.T) {
	c := NewCamera(V(0, 0, 0), 90)
	c.AddAngle(10, 20)

	assertVecNear(t, c.Forward, c.RayDirection(0, 0, 1, 1))
	assertVecNear(t, c.Forward, c.RayDirection(2, 1, 5, 3))

	// top left pixel leans left and up
	d := c.RayDirection(0, 0, 64, 48)
	assert.Less(t, d.Dot(c.Right), 0.0)
	assert.Greater(t, d.Dot(c.Up), 0.0)
	assert.True(t, almostEqual(1, d.Len()))
}

func TestCameraProjectToPixel(t *testing.T) {
	c := NewCamera(V(1, 2, -3), 70)
	c.AddAngle(-15, 40)

	for _, px := range [][2]int{{10, 20}, {0, 0}, {63, 47}, {32, 24}} {
		p := c.Origin.Add(c.RayDirection(px[0], px[1], 64, 48).Mul(7))
		x, y, ok := c.ProjectToPixel(p, 64, 48)
		require.True(t, ok)
		assert.True(t, almostEqual(float64(px[0]), x), "x %v for %v", x, px)
		assert.True(t, almostEqual(float64(px[1]), y), "y %v for %v", y, px)
	}

	_, _, ok := c.ProjectToPixel(c.Origin.Sub(c.Forward), 64, 48)
	assert.False(t, ok)
}

func TestCameraClone(t *testing.T) {
	c := NewCamera(V(0, 0, 0), 60)
	clone := c.Clone()
	clone.Move(CameraDelta{Forward: 5})
	assertVecNear(t, V(0, 0, 0), c.Origin)
	assertVecNear(t, V(0, 0, 5), clone.Origin)
}

func TestCameraKeyDelta(t *testing.T) {
	c := NewCamera(V(0, 0, 0), 60)
	step := c.TranslateSpeed * 0.5

	testCases := []struct {
		name string
		in   KeyInput
		want CameraDelta
	}{
		{"nothing held", KeyInput{}, CameraDelta{}},
		{"forward and right", KeyInput{Forward: true, Right: true}, CameraDelta{Forward: step, Right: step}},
		{"opposite keys cancel", KeyInput{Forward: true, Back: true, Up: true, Down: true}, CameraDelta{}},
		{"back left down", KeyInput{Back: true, Left: true, Down: true}, CameraDelta{Forward: -step, Right: -step, Up: -step}},
		{"up arrow widens", KeyInput{WidenFov: true}, CameraDelta{Fov: 15}},
		{"down arrow narrows", KeyInput{NarrowFov: true}, CameraDelta{Fov: -15}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.KeyDelta(tc.in, 0.5))
		})
	}

	c.Move(c.KeyDelta(KeyInput{WidenFov: true}, 0.5))
	assert.Equal(t, 75.0, c.FovAngle)
}
