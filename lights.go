package lantern

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	LightLaunchAngleDeg = 45.0
	LightMarkerRadius   = 2.0
	LightBaseSpeed      = 80.0
	LightDefaultRadius  = 100.0

	MaxLightsTier1 = 2
	MaxLightsTier2 = 8
)

// LightRadiusMax caps the falloff radius at 1.25x the largest room
// dimension; a bigger radius cannot add anything visible.
const LightRadiusMax = 1.25 * roomMaxDim

// PointLight is a positional light bouncing around the room. Velocity
// drives the simulation only and is never uploaded to the GPU.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32
	Radius   float32

	Velocity mgl32.Vec3
}

// Launch assigns a fresh velocity: speed uniform in [base, 1.5x base],
// elevation fixed at 45 degrees, azimuth uniform around the circle.
// Position is left untouched.
func (l *PointLight) Launch(rng *rand.Rand) {
	rho := float32(LightBaseSpeed + 0.5*LightBaseSpeed*rng.Float64())
	phi := float32(mgl32.DegToRad(LightLaunchAngleDeg))
	theta := float32(rng.Float64() * 2 * math.Pi)

	sinPhi := float32(math.Sin(float64(phi)))
	cosPhi := float32(math.Cos(float64(phi)))
	sinTheta := float32(math.Sin(float64(theta)))
	cosTheta := float32(math.Cos(float64(theta)))

	l.Velocity = mgl32.Vec3{
		rho * cosPhi * cosTheta,
		rho * sinPhi,
		rho * cosPhi * sinTheta,
	}
}

// Integrate advances the light one explicit Euler step and reflects
// the velocity off the room walls. The bounce margin is twice the
// marker radius; the position itself is never clamped, so a light
// caught outside the margin keeps flipping until it is back inside.
func (l *PointLight) Integrate(dt float32) {
	l.Position = l.Position.Add(l.Velocity.Mul(dt))

	limitX := float32(roomHalfX - 2*LightMarkerRadius)
	limitY := float32(roomHalfY - 2*LightMarkerRadius)
	limitZ := float32(roomHalfZ - 2*LightMarkerRadius)

	if l.Position.X() > limitX || l.Position.X() < -limitX {
		l.Velocity[0] = -l.Velocity[0]
	}
	if l.Position.Y() > limitY || l.Position.Y() < -limitY {
		l.Velocity[1] = -l.Velocity[1]
	}
	if l.Position.Z() > limitZ || l.Position.Z() < -limitZ {
		l.Velocity[2] = -l.Velocity[2]
	}
}

// AdjustRadius grows or shrinks the falloff radius, silently clamped
// to [0, LightRadiusMax].
func (l *PointLight) AdjustRadius(delta float32) {
	l.Radius += delta
	if l.Radius < 0 {
		l.Radius = 0
	}
	if l.Radius > LightRadiusMax {
		l.Radius = LightRadiusMax
	}
}

// PresetLights returns the eight demo lights, all parked at the room
// center with a zero velocity until launched. Each light uses its
// color for all three terms, so the ambient contribution carries the
// light's hue too.
func PresetLights() []PointLight {
	colors := [][4]float32{
		{1, 1, 1, 1}, // white
		{1, 0, 0, 1}, // red
		{0, 1, 0, 1}, // green
		{0, 0, 1, 1}, // blue
		{1, 1, 0, 1}, // yellow
		{0, 1, 1, 1}, // cyan
		{1, 0, 1, 1}, // magenta
		{100.0 / 255.0, 149.0 / 255.0, 237.0 / 255.0, 1}, // cornflower blue
	}

	lights := make([]PointLight, len(colors))
	for i, color := range colors {
		lights[i] = PointLight{
			Ambient:  color,
			Diffuse:  color,
			Specular: color,
			Radius:   LightDefaultRadius,
		}
	}
	return lights
}

// SceneSettings holds the runtime toggles driven by the keyboard.
type SceneSettings struct {
	AnimateLights bool
	ShowLights    bool
	ShowHelp      bool
	UseColorMaps  bool

	// GlobalAmbient is added once per fragment regardless of lights.
	GlobalAmbient [4]float32
}

type LightsModule struct {
	// Seed for the launch directions; zero means time-based.
	Seed int64
}

func (mod LightsModule) Install(app *App, cmd *Commands) error {
	seed := mod.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for _, light := range PresetLights() {
		light.Launch(rng)
		cmd.AddEntity(&light)
	}

	cmd.AddResources(&SceneSettings{
		AnimateLights: true,
		ShowLights:    true,
		ShowHelp:      true,
		UseColorMaps:  true,
		GlobalAmbient: [4]float32{0, 0, 0, 1},
	})

	app.UseSystem(System(lightMotionSystem).InStage(Update))
	return nil
}

func lightMotionSystem(control *RunControl, settings *SceneSettings, timeResource *Time, cmd *Commands) {
	if !control.HasFocus || !settings.AnimateLights {
		return
	}

	dt := float32(timeResource.Dt)
	MakeQuery1[PointLight](cmd).Map(func(eid EntityId, light *PointLight) bool {
		light.Integrate(dt)
		return true
	})
}
