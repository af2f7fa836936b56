package gosieray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minFov      = 1.0
	maxFov      = 179.0
	maxPitchDeg = 89.0
)

// Camera is a pinhole camera looking down its forward axis. The basis and
// CameraToWorld are derived from TotalPitch and TotalYaw and are recomputed
// by every mutating method before it returns.
type Camera struct {
	Origin   mgl64.Vec3
	FovAngle float64
	FovScale float64

	Forward mgl64.Vec3
	Up      mgl64.Vec3
	Right   mgl64.Vec3

	TotalPitch float64
	TotalYaw   float64

	TranslateSpeed float64
	RotateSpeed    float64

	CameraToWorld mgl64.Mat4
}

// CameraDelta gathers one frame of input. Translations are in world units,
// angles in degrees.
type CameraDelta struct {
	Forward float64
	Right   float64
	Up      float64
	Pitch   float64
	Yaw     float64
	Fov     float64
}

func (d CameraDelta) IsZero() bool {
	return d == CameraDelta{}
}

// fovSpeed is how fast the held arrow keys change the fov, in degrees per
// second.
const fovSpeed = 30.0

// KeyInput is the set of movement keys held during one tick.
type KeyInput struct {
	Forward, Back bool
	Right, Left   bool
	Up, Down      bool
	WidenFov      bool
	NarrowFov     bool
}

// KeyDelta converts held keys into a delta scaled by the tick length dt in
// seconds.
func (c *Camera) KeyDelta(in KeyInput, dt float64) CameraDelta {
	var d CameraDelta
	step := c.TranslateSpeed * dt
	axis := func(pos, neg bool) float64 {
		switch {
		case pos && !neg:
			return 1
		case neg && !pos:
			return -1
		}
		return 0
	}
	d.Forward = axis(in.Forward, in.Back) * step
	d.Right = axis(in.Right, in.Left) * step
	d.Up = axis(in.Up, in.Down) * step
	d.Fov = axis(in.WidenFov, in.NarrowFov) * fovSpeed * dt
	return d
}

func NewCamera(origin mgl64.Vec3, fovAngle float64) *Camera {
	c := &Camera{
		Origin:         origin,
		Forward:        UnitZ,
		Up:             UnitY,
		Right:          UnitX,
		TranslateSpeed: 20,
		RotateSpeed:    0.5,
	}
	c.SetFov(fovAngle)
	c.updateOrientation()
	return c
}

// NewCameraLookAt places a camera at origin facing target.
func NewCameraLookAt(origin, target mgl64.Vec3, fovAngle float64) *Camera {
	c := NewCamera(origin, fovAngle)
	dir, length := Normalize(target.Sub(origin))
	if length == 0 {
		return c
	}
	c.TotalYaw = mgl64.RadToDeg(math.Atan2(dir[0], dir[2]))
	c.TotalPitch = mgl64.RadToDeg(-math.Asin(clamp(dir[1], -1, 1)))
	c.updateOrientation()
	return c
}

func (c *Camera) SetFov(fovAngle float64) {
	c.FovAngle = clamp(fovAngle, minFov, maxFov)
	c.FovScale = math.Tan(degreesToRadians(c.FovAngle) / 2)
}

// AddAngle accumulates pitch and yaw in degrees. Pitch is kept short of the
// poles so the basis never degenerates.
func (c *Camera) AddAngle(pitch, yaw float64) {
	c.TotalPitch += pitch
	c.TotalYaw += yaw
	c.updateOrientation()
}

// Move applies a whole frame of input and recomputes the derived state once.
func (c *Camera) Move(d CameraDelta) {
	if d.IsZero() {
		return
	}
	c.Origin = c.Origin.
		Add(c.Forward.Mul(d.Forward)).
		Add(c.Right.Mul(d.Right)).
		Add(UnitY.Mul(d.Up))
	if d.Fov != 0 {
		c.SetFov(c.FovAngle + d.Fov)
	}
	c.TotalPitch += d.Pitch
	c.TotalYaw += d.Yaw
	c.updateOrientation()
}

func (c *Camera) updateOrientation() {
	c.TotalPitch = clamp(c.TotalPitch, -maxPitchDeg, maxPitchDeg)

	rotY := NewRotationMatrix(RotY, degreesToRadians(c.TotalYaw))
	rotX := NewRotationMatrix(RotX, degreesToRadians(c.TotalPitch))
	finalRotation := rotY.Mul4(rotX)

	c.Forward, _ = Normalize(TransformVector(finalRotation, UnitZ))
	c.CameraToWorld = c.CalculateCameraToWorld()
}

// CalculateCameraToWorld rebuilds right and up from forward and returns the
// camera-to-world matrix.
func (c *Camera) CalculateCameraToWorld() mgl64.Mat4 {
	c.Right, _ = Normalize(UnitY.Cross(c.Forward))
	c.Up, _ = Normalize(c.Forward.Cross(c.Right))
	return MatrixFromBasis(c.Right, c.Up, c.Forward, c.Origin)
}

// RayDirection maps the centre of pixel (px, py) to a unit world direction.
func (c Camera) RayDirection(px, py, width, height int) mgl64.Vec3 {
	aspectRatio := float64(width) / float64(height)
	x := (2*(float64(px)+0.5)/float64(width) - 1) * aspectRatio * c.FovScale
	y := (1 - 2*(float64(py)+0.5)/float64(height)) * c.FovScale

	dir, _ := Normalize(TransformVector(c.CameraToWorld, V(x, y, 1)))
	return dir
}

// ProjectToPixel is the inverse of RayDirection. ok is false for points
// behind the camera.
func (c Camera) ProjectToPixel(p mgl64.Vec3, width, height int) (float64, float64, bool) {
	d := p.Sub(c.Origin)
	z := d.Dot(c.Forward)
	if z <= 0 {
		return 0, 0, false
	}
	aspectRatio := float64(width) / float64(height)
	x := d.Dot(c.Right) / z / (aspectRatio * c.FovScale)
	y := d.Dot(c.Up) / z / c.FovScale

	px := (x+1)*float64(width)/2 - 0.5
	py := (1-y)*float64(height)/2 - 0.5
	return px, py, true
}

// Clone returns an independent copy of the camera.
func (c *Camera) Clone() *Camera {
	clone := *c
	return &clone
}
