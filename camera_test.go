package lantern

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func vec3Near(t *testing.T, got, want mgl32.Vec3, eps float32, label string) {
	t.Helper()
	if got.Sub(want).Len() > eps {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}

func TestNewCamera_LooksAtCenterFromPlusZ(t *testing.T) {
	cam := NewCamera()

	vec3Near(t, cam.Position, mgl32.Vec3{0, 0, RoomSizeZ}, 1e-4, "position")
	vec3Near(t, cam.ZAxis, mgl32.Vec3{0, 0, -1}, 1e-4, "forward")
	vec3Near(t, cam.XAxis, mgl32.Vec3{1, 0, 0}, 1e-4, "right")
	vec3Near(t, cam.YAxis, mgl32.Vec3{0, 1, 0}, 1e-4, "up")
	vec3Near(t, cam.Target, mgl32.Vec3{}, 0, "target")
}

func TestCamera_TargetProjectsToScreenCenter(t *testing.T) {
	cam := NewCamera()
	cam.Orbit(30, -20)
	cam.Rebuild(4.0 / 3.0)

	clip := cam.ViewProjection.Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	if clip.W() <= 0 {
		t.Fatalf("target behind the camera, w=%v", clip.W())
	}
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-4)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-4)
}

func TestCamera_DollyClamps(t *testing.T) {
	cam := NewCamera()

	cam.Dolly(10 * DollyMax)
	assert.Equal(t, float32(DollyMin), cam.Offset)

	cam.Dolly(-10 * DollyMax)
	assert.Equal(t, float32(DollyMax), cam.Offset)
}

func TestCamera_PitchClampConsumesRemainder(t *testing.T) {
	cam := NewCamera()

	cam.Orbit(0, 80)
	assert.Equal(t, float32(80), cam.Pitch)

	// Only 10 of the requested 30 degrees remain before the clamp.
	cam.Orbit(0, 30)
	assert.Equal(t, float32(90), cam.Pitch)
	cam.Rebuild(1)

	// At +90 the camera hangs directly above the target.
	vec3Near(t, cam.Position, mgl32.Vec3{0, RoomSizeZ, 0}, 1e-2, "position at +90 pitch")

	cam.Orbit(0, -200)
	assert.Equal(t, float32(-90), cam.Pitch)
}

func TestCamera_TrackMovesTargetInCameraPlane(t *testing.T) {
	cam := NewCamera()

	cam.Track(5, 3)
	vec3Near(t, cam.Target, mgl32.Vec3{-5, 3, 0}, 1e-4, "target after track")

	cam.Rebuild(1)
	vec3Near(t, cam.Position, mgl32.Vec3{-5, 3, RoomSizeZ}, 1e-4, "position follows target")
}

func TestCamera_YawOrbitKeepsHeight(t *testing.T) {
	cam := NewCamera()

	cam.Orbit(90, 0)
	cam.Rebuild(1)

	if math.Abs(float64(cam.Position.Y())) > 1e-3 {
		t.Errorf("pure yaw changed camera height: %v", cam.Position)
	}
	assert.InDelta(t, RoomSizeZ, float64(cam.Position.Len()), 1e-2)
}

func TestCamera_OrientationStaysNormalized(t *testing.T) {
	cam := NewCamera()

	for i := 0; i < 2000; i++ {
		cam.Orbit(1.7, 0.9)
		cam.Orbit(-0.3, -1.1)
		cam.Rebuild(1)
	}

	assert.InDelta(t, 1.0, float64(cam.Orientation.Len()), 1e-4)
	assert.InDelta(t, 1.0, float64(cam.XAxis.Len()), 1e-3)
	assert.InDelta(t, 1.0, float64(cam.ZAxis.Len()), 1e-3)
}
