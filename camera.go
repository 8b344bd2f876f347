package lantern

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	CameraFovYDeg = 45.0
	CameraZNear   = 0.01
	CameraZFar    = 1000.0

	MouseOrbitSpeed      = 0.3
	MouseDollySpeed      = 1.0
	MouseTrackSpeed      = 0.5
	MouseWheelDollySpeed = 0.25
)

const (
	DollyMin = CameraZNear
	DollyMax = 2 * roomMaxDim
)

// Camera orbits a target point at a fixed offset along its forward
// axis. Orientation is the single source of truth for the rotation;
// axes, position and matrices are derived in Rebuild.
type Camera struct {
	Pitch       float32 // accumulated pitch, degrees, clamped to +-90
	Offset      float32 // distance from target, clamped to [DollyMin, DollyMax]
	Target      mgl32.Vec3
	Orientation mgl32.Quat

	XAxis    mgl32.Vec3 // right
	YAxis    mgl32.Vec3 // up
	ZAxis    mgl32.Vec3 // forward
	Position mgl32.Vec3

	View           mgl32.Mat4
	ViewProjection mgl32.Mat4
}

func NewCamera() *Camera {
	cam := &Camera{
		Offset:      RoomSizeZ,
		Orientation: mgl32.QuatIdent(),
	}
	cam.Rebuild(1)
	return cam
}

// Track slides the target in the camera plane: dx along the right
// axis (inverted, so dragging right moves the scene right), dy along
// the up axis.
func (cam *Camera) Track(dx, dy float32) {
	cam.Target = cam.Target.Sub(cam.XAxis.Mul(dx)).Add(cam.YAxis.Mul(dy))
}

// Dolly moves the camera along its forward axis; positive d moves
// toward the target. The offset never leaves [DollyMin, DollyMax].
func (cam *Camera) Dolly(d float32) {
	cam.Offset -= d
	if cam.Offset < DollyMin {
		cam.Offset = DollyMin
	}
	if cam.Offset > DollyMax {
		cam.Offset = DollyMax
	}
}

// Orbit rotates the camera around the target. Yaw turns about the
// world up axis, pitch about the camera's local right axis. Pitch is
// clamped to +-90 degrees; a request that would overshoot applies
// only the remainder, so the clamp never causes a snap-back.
func (cam *Camera) Orbit(yawDeg, pitchDeg float32) {
	newPitch := cam.Pitch + pitchDeg
	if newPitch > 90 {
		pitchDeg = 90 - cam.Pitch
		newPitch = 90
	}
	if newPitch < -90 {
		pitchDeg = -90 - cam.Pitch
		newPitch = -90
	}
	cam.Pitch = newPitch

	if yawDeg != 0 {
		yaw := mgl32.QuatRotate(mgl32.DegToRad(yawDeg), mgl32.Vec3{0, 1, 0})
		cam.Orientation = cam.Orientation.Mul(yaw)
	}
	if pitchDeg != 0 {
		pitch := mgl32.QuatRotate(mgl32.DegToRad(pitchDeg), mgl32.Vec3{1, 0, 0})
		cam.Orientation = pitch.Mul(cam.Orientation)
	}
}

// Rebuild renormalizes the orientation and derives axes, position and
// the view/projection matrices for the given aspect ratio.
func (cam *Camera) Rebuild(aspect float32) {
	cam.Orientation = cam.Orientation.Normalize()

	m := cam.Orientation.Mat4()
	x := mgl32.Vec3{m.At(0, 0), m.At(0, 1), m.At(0, 2)}
	y := mgl32.Vec3{m.At(1, 0), m.At(1, 1), m.At(1, 2)}
	z := mgl32.Vec3{-m.At(2, 0), -m.At(2, 1), -m.At(2, 2)}

	cam.XAxis = x
	cam.YAxis = y
	cam.ZAxis = z
	cam.Position = cam.Target.Add(z.Mul(-cam.Offset))

	// View rotation rows are right/up/-forward; translation is the
	// position projected onto those rows.
	cam.View = mgl32.Mat4{
		x[0], y[0], -z[0], 0,
		x[1], y[1], -z[1], 0,
		x[2], y[2], -z[2], 0,
		-x.Dot(cam.Position), -y.Dot(cam.Position), z.Dot(cam.Position), 1,
	}

	proj := mgl32.Perspective(mgl32.DegToRad(CameraFovYDeg), aspect, CameraZNear, CameraZFar)
	cam.ViewProjection = proj.Mul4(cam.View)
}
