package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects how the free camera reacts to input
type Mode int

const (
	// ModeEdit flies freely while the look button is held
	ModeEdit Mode = iota
	// ModeFPS always looks with the mouse and pins the position to a supplied point
	ModeFPS
	// ModeLocked ignores input
	ModeLocked
)

const (
	pitchLimit = 89.0

	BaseSpeed  = 10
	BoostSpeed = 33
	TurboSpeed = 9999
)

// Controls is one frame of input for the free camera
type Controls struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
	Boost, Turbo      bool
	// Look is true while the mouse-look button is held
	Look bool
	// LookDelta is the previous cursor position minus the current one, in pixels
	LookDelta mgl32.Vec2
}

// FreeCamera maps mouse and keyboard input to a Camera's position and orientation.
// Yaw and pitch are in degrees; yaw 0 looks down +Z.
type FreeCamera struct {
	Camera *Camera
	Mode   Mode

	MoveSpeed float32
	Pitch     float32
	Yaw       float32

	previousPosition mgl32.Vec3
}

// NewFreeCamera wraps cam in edit mode
func NewFreeCamera(cam *Camera) *FreeCamera {
	return &FreeCamera{
		Camera:    cam,
		Mode:      ModeEdit,
		MoveSpeed: BaseSpeed,
	}
}

// PreviousPosition is the camera position before the last Update
func (f *FreeCamera) PreviousPosition() mgl32.Vec3 {
	return f.previousPosition
}

// LookAt points the camera at target by setting yaw and pitch
func (f *FreeCamera) LookAt(target mgl32.Vec3) {
	d := target.Sub(f.Camera.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	f.Pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(d.Y())))))
	f.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(d.X()), float64(d.Z()))))
	f.Camera.Target = f.Camera.Position.Add(f.Front())
}

// Front returns the unit look direction from yaw and pitch
func (f *FreeCamera) Front() mgl32.Vec3 {
	p := float64(mgl32.DegToRad(f.Pitch))
	y := float64(mgl32.DegToRad(f.Yaw))
	return mgl32.Vec3{
		float32(math.Cos(p) * math.Sin(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p) * math.Cos(y)),
	}.Normalize()
}

// Update applies one frame of input. pinned is the position used in ModeFPS.
func (f *FreeCamera) Update(ctl Controls, dt float32, screenHeight int, pinned mgl32.Vec3) {
	f.previousPosition = f.Camera.Position

	if f.Mode == ModeLocked || (!ctl.Look && f.Mode != ModeFPS) {
		return
	}

	switch {
	case ctl.Boost && ctl.Turbo:
		f.MoveSpeed = TurboSpeed
	case ctl.Boost:
		f.MoveSpeed = BoostSpeed
	default:
		f.MoveSpeed = BaseSpeed
	}

	if screenHeight > 0 {
		degPerPixel := f.Camera.Fovy / float32(screenHeight)
		delta := ctl.LookDelta.Mul(degPerPixel)
		f.Pitch = clampPitch(f.Pitch + delta.Y())
		f.Yaw += delta.X()
	}

	forward := f.Front()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	step := dt * f.MoveSpeed
	forwardSpeed := axis(ctl.Forward, ctl.Backward) * step
	sideSpeed := axis(ctl.Right, ctl.Left) * step
	upSpeed := axis(ctl.Up, ctl.Down) * step

	switch f.Mode {
	case ModeEdit:
		pos := f.Camera.Position
		pos = pos.Add(forward.Mul(forwardSpeed))
		pos = pos.Add(right.Mul(sideSpeed))
		pos[1] += upSpeed
		f.Camera.Position = pos
	case ModeFPS:
		f.Camera.Position = pinned
	}

	f.Camera.Target = f.Camera.Position.Add(forward)
}

// axis maps a pair of opposing buttons to -1, 0 or 1; the positive one wins
func axis(positive, negative bool) float32 {
	if positive {
		return 1
	}
	if negative {
		return -1
	}
	return 0
}

func clampPitch(p float32) float32 {
	if p > pitchLimit {
		return pitchLimit
	}
	if p < -pitchLimit {
		return -pitchLimit
	}
	return p
}
