package lantern

import (
	"math"
	"math/rand"
	"testing"
)

func TestPointLight_LaunchAlwaysUpward(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))

		var light PointLight
		light.Launch(rng)

		if light.Velocity.Y() <= 0 {
			t.Errorf("seed %d: expected upward launch, got vy=%v", seed, light.Velocity.Y())
		}

		speed := float64(light.Velocity.Len())
		if speed < LightBaseSpeed-1e-3 || speed > 1.5*LightBaseSpeed+1e-3 {
			t.Errorf("seed %d: speed %v outside [%v, %v]", seed, speed, LightBaseSpeed, 1.5*LightBaseSpeed)
		}

		// Elevation is fixed at 45 degrees, so vy must equal
		// speed * sin(45).
		wantVy := speed * math.Sin(math.Pi/4)
		if math.Abs(float64(light.Velocity.Y())-wantVy) > 1e-2 {
			t.Errorf("seed %d: vy=%v, want %v", seed, light.Velocity.Y(), wantVy)
		}
	}
}

func TestPointLight_LaunchLeavesPositionUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	light := PointLight{}
	light.Position[0] = 12
	light.Launch(rng)

	if light.Position.X() != 12 || light.Position.Y() != 0 || light.Position.Z() != 0 {
		t.Errorf("Launch moved the light to %v", light.Position)
	}
}

func TestPointLight_IntegrateReflectsPastMargin(t *testing.T) {
	limitX := float32(roomHalfX - 2*LightMarkerRadius)

	light := PointLight{}
	light.Position[0] = limitX - 0.5
	light.Velocity[0] = 100

	light.Integrate(0.01)

	if light.Velocity.X() != -100 {
		t.Errorf("expected vx flipped to -100, got %v", light.Velocity.X())
	}
	// The position crossed the margin and stays there; only the
	// velocity reacts.
	if light.Position.X() <= limitX {
		t.Errorf("expected position past the margin, got %v", light.Position.X())
	}
}

func TestPointLight_IntegrateReflectsEachAxisIndependently(t *testing.T) {
	limitY := float32(roomHalfY - 2*LightMarkerRadius)

	light := PointLight{}
	light.Position[1] = -limitY + 0.5
	light.Velocity = [3]float32{10, -100, 10}

	light.Integrate(0.01)

	if light.Velocity.Y() != 100 {
		t.Errorf("expected vy flipped to 100, got %v", light.Velocity.Y())
	}
	if light.Velocity.X() != 10 || light.Velocity.Z() != 10 {
		t.Errorf("x/z velocity should be untouched, got %v", light.Velocity)
	}
}

func TestPointLight_IntegrateNoFlipInsideMargin(t *testing.T) {
	light := PointLight{}
	light.Velocity = [3]float32{50, 50, 50}

	light.Integrate(0.1)

	if light.Velocity != [3]float32{50, 50, 50} {
		t.Errorf("velocity flipped inside the room: %v", light.Velocity)
	}
}

func TestPointLight_AdjustRadiusClamps(t *testing.T) {
	light := PointLight{Radius: LightDefaultRadius}

	light.AdjustRadius(-2 * LightDefaultRadius)
	if light.Radius != 0 {
		t.Errorf("expected radius clamped to 0, got %v", light.Radius)
	}

	light.AdjustRadius(2 * LightRadiusMax)
	if light.Radius != LightRadiusMax {
		t.Errorf("expected radius clamped to %v, got %v", float32(LightRadiusMax), light.Radius)
	}

	light.Radius = LightDefaultRadius
	light.AdjustRadius(1)
	if light.Radius != LightDefaultRadius+1 {
		t.Errorf("expected radius %v, got %v", LightDefaultRadius+1, light.Radius)
	}
}

func TestPresetLights(t *testing.T) {
	lights := PresetLights()

	if len(lights) != 8 {
		t.Fatalf("expected 8 preset lights, got %d", len(lights))
	}

	for i, l := range lights {
		if l.Radius != LightDefaultRadius {
			t.Errorf("light %d: radius %v, want %v", i, l.Radius, float32(LightDefaultRadius))
		}
		// The light's color drives all three terms.
		if l.Ambient != l.Diffuse || l.Diffuse != l.Specular {
			t.Errorf("light %d: ambient/diffuse/specular presets should match, got %v/%v/%v",
				i, l.Ambient, l.Diffuse, l.Specular)
		}
		if l.Position.Len() != 0 {
			t.Errorf("light %d: should start at the room center", i)
		}
	}

	if lights[0].Diffuse != [4]float32{1, 1, 1, 1} {
		t.Errorf("first light should be white, got %v", lights[0].Diffuse)
	}
	want := [4]float32{100.0 / 255.0, 149.0 / 255.0, 237.0 / 255.0, 1}
	if lights[7].Diffuse != want {
		t.Errorf("last light should be cornflower blue, got %v", lights[7].Diffuse)
	}
}
