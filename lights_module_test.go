package lantern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLightsModule_SpawnsPresetLights(t *testing.T) {
	app, err := NewAppBuilder().
		UseModule(LightsModule{Seed: 1}).
		Build()
	require.NoError(t, err)

	cmd := app.Commands()

	launched := 0
	MakeQuery1[PointLight](cmd).Map(func(eid EntityId, light *PointLight) bool {
		launched++
		if light.Velocity.Y() <= 0 {
			t.Errorf("light %d not launched upward: %v", eid, light.Velocity)
		}
		return true
	})
	assert.Equal(t, MaxLightsTier2, launched)
}

func TestLightsModule_SettingsDefaults(t *testing.T) {
	app, err := NewAppBuilder().
		UseModule(LightsModule{Seed: 1}).
		Build()
	require.NoError(t, err)

	settings, ok := resourceOf[SceneSettings](app)
	require.True(t, ok)

	assert.True(t, settings.AnimateLights)
	assert.True(t, settings.ShowLights)
	assert.True(t, settings.ShowHelp)
	assert.True(t, settings.UseColorMaps)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, settings.GlobalAmbient)
}

func TestLightsModule_SeedIsDeterministic(t *testing.T) {
	collect := func(seed int64) []PointLight {
		app, err := NewAppBuilder().
			UseModule(LightsModule{Seed: seed}).
			Build()
		require.NoError(t, err)

		var lights []PointLight
		MakeQuery1[PointLight](app.Commands()).Map(func(eid EntityId, l *PointLight) bool {
			lights = append(lights, *l)
			return true
		})
		return lights
	}

	a := collect(99)
	b := collect(99)

	velocities := func(ls []PointLight) map[[3]float32]bool {
		m := map[[3]float32]bool{}
		for _, l := range ls {
			m[l.Velocity] = true
		}
		return m
	}
	assert.Equal(t, velocities(a), velocities(b))
}
