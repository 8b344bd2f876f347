package lantern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTechniqueSelector_PrefersTier2(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier1: true, Tier2: true})
	require.NoError(t, err)

	assert.Equal(t, Tier2, s.Tier)
	assert.Equal(t, Tier2SinglePass, s.Technique())
	assert.Equal(t, MaxLightsTier2, s.ActiveLightCount())
}

func TestNewTechniqueSelector_Tier1Only(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier1: true})
	require.NoError(t, err)

	assert.Equal(t, Tier1, s.Tier)
	assert.Equal(t, MaxLightsTier1, s.ActiveLightCount())

	// With a single supported tier the toggle is inert.
	s.ToggleTier()
	assert.Equal(t, Tier1, s.Tier)
}

func TestNewTechniqueSelector_NoSupport(t *testing.T) {
	_, err := NewTechniqueSelector(ShaderCaps{})
	assert.ErrorIs(t, err, ErrNoShaderSupport)
}

func TestTechniqueSelector_ToggleTierPreservesPassMode(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier1: true, Tier2: true})
	require.NoError(t, err)

	s.ToggleTier()
	assert.Equal(t, Tier1, s.Tier)
	assert.Equal(t, MaxLightsTier1, s.ActiveLightCount())

	s.ToggleMultiPass()
	assert.Equal(t, Tier1MultiPass, s.Technique())

	// The high tier always renders single pass.
	s.ToggleTier()
	assert.Equal(t, Tier2, s.Tier)
	assert.Equal(t, Tier2SinglePass, s.Technique())

	// Coming back resumes multi-pass.
	s.ToggleTier()
	assert.Equal(t, Tier1MultiPass, s.Technique())

	s.ToggleMultiPass()
	assert.Equal(t, Tier1SinglePass, s.Technique())
}

func TestTechniqueSelector_MultiPassIsTier1Only(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier1: true, Tier2: true})
	require.NoError(t, err)

	s.ToggleMultiPass()
	assert.Equal(t, Tier2SinglePass, s.Technique())
}

func TestFrameBindings_TruncatesToActiveCount(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier1: true})
	require.NoError(t, err)

	cam := NewCamera()
	lights := PresetLights()

	b := s.FrameBindings(cam, lights, [4]float32{0, 0, 0, 1})

	require.Len(t, b.Lights, MaxLightsTier1)
	assert.Equal(t, uint32(MaxLightsTier1), b.NumLights)
	assert.Equal(t, Tier1SinglePass, b.Technique)
}

func TestFrameBindings_PacksRadiusIntoPositionW(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier1: true, Tier2: true})
	require.NoError(t, err)

	lights := []PointLight{{
		Position: [3]float32{1, 2, 3},
		Diffuse:  [4]float32{1, 0, 0, 1},
		Radius:   42,
	}}

	b := s.FrameBindings(NewCamera(), lights, [4]float32{})

	require.Len(t, b.Lights, 1)
	assert.Equal(t, [4]float32{1, 2, 3, 42}, b.Lights[0].Position)
	assert.Equal(t, uint32(1), b.NumLights)
}

func TestFrameBindings_CarriesCameraState(t *testing.T) {
	s, err := NewTechniqueSelector(ShaderCaps{Tier2: true})
	require.NoError(t, err)

	cam := NewCamera()
	b := s.FrameBindings(cam, nil, [4]float32{0.1, 0.2, 0.3, 1})

	assert.Equal(t, cam.ViewProjection, b.ViewProjection)
	assert.Equal(t, [4]float32{0, 0, RoomSizeZ, 1}, b.CameraPos)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, b.GlobalAmbient)
	assert.Equal(t, uint32(0), b.NumLights)
}
