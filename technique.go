package lantern

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

type TechniqueTier int

const (
	Tier1 TechniqueTier = iota + 1
	Tier2
)

func (t TechniqueTier) String() string {
	switch t {
	case Tier1:
		return "tier 1"
	case Tier2:
		return "tier 2"
	}
	return "unknown tier"
}

type PassMode int

const (
	SinglePass PassMode = iota
	MultiPass
)

// TechniqueID names one concrete shading configuration. Render code
// switches on this value and nothing else.
type TechniqueID int

const (
	Tier2SinglePass TechniqueID = iota
	Tier1SinglePass
	Tier1MultiPass
)

func (id TechniqueID) String() string {
	switch id {
	case Tier2SinglePass:
		return "per-pixel lighting (single pass)"
	case Tier1SinglePass:
		return "per-pixel lighting (single pass, 2 lights)"
	case Tier1MultiPass:
		return "per-pixel lighting (multi pass, 2 lights)"
	}
	return "unknown technique"
}

// ShaderCaps reports which shader tiers the device can run. Tier2
// supports dynamic loops over 8 lights; Tier1 is limited to 2 lights
// unrolled.
type ShaderCaps struct {
	Tier1 bool
	Tier2 bool
}

var ErrNoShaderSupport = errors.New("device supports no shading tier")

// TechniqueSelector owns the tier / pass-mode choice and the number
// of lights fed to the shader.
type TechniqueSelector struct {
	caps ShaderCaps

	Tier TechniqueTier
	Pass PassMode
}

// NewTechniqueSelector picks the best supported tier, preferring
// Tier2. An unsupported device is an error, not a degraded mode.
func NewTechniqueSelector(caps ShaderCaps) (*TechniqueSelector, error) {
	if !caps.Tier1 && !caps.Tier2 {
		return nil, ErrNoShaderSupport
	}

	tier := Tier1
	if caps.Tier2 {
		tier = Tier2
	}

	return &TechniqueSelector{
		caps: caps,
		Tier: tier,
		Pass: SinglePass,
	}, nil
}

// ToggleTier switches between tiers when both are supported;
// otherwise it does nothing. The pass mode is kept, so coming back to
// the low tier resumes multi-pass if it was on.
func (s *TechniqueSelector) ToggleTier() {
	if !s.caps.Tier1 || !s.caps.Tier2 {
		return
	}

	if s.Tier == Tier2 {
		s.Tier = Tier1
	} else {
		s.Tier = Tier2
	}
}

// ToggleMultiPass flips between single and multi pass. Tier2 always
// renders in a single pass, so the toggle is a no-op there.
func (s *TechniqueSelector) ToggleMultiPass() {
	if s.Tier != Tier1 {
		return
	}

	if s.Pass == SinglePass {
		s.Pass = MultiPass
	} else {
		s.Pass = SinglePass
	}
}

func (s *TechniqueSelector) Technique() TechniqueID {
	if s.Tier == Tier2 {
		return Tier2SinglePass
	}
	if s.Pass == MultiPass {
		return Tier1MultiPass
	}
	return Tier1SinglePass
}

// ActiveLightCount is how many lights the current technique shades.
func (s *TechniqueSelector) ActiveLightCount() int {
	if s.Tier == Tier2 {
		return MaxLightsTier2
	}
	return MaxLightsTier1
}

// LightBinding is one light as the shader sees it. Position.w carries
// the falloff radius.
type LightBinding struct {
	Position [4]float32
	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32
}

// FrameBindings is everything per-frame the shading pipelines consume.
type FrameBindings struct {
	World                 mgl32.Mat4
	WorldInverseTranspose mgl32.Mat4
	ViewProjection        mgl32.Mat4
	CameraPos             [4]float32
	GlobalAmbient         [4]float32
	NumLights             uint32
	Lights                []LightBinding
	Technique             TechniqueID
}

// FrameBindings assembles the shader inputs for one frame. The room
// never moves, so the world matrix is identity and the normal matrix
// follows suit. Lights are truncated to exactly ActiveLightCount.
func (s *TechniqueSelector) FrameBindings(cam *Camera, lights []PointLight, globalAmbient [4]float32) FrameBindings {
	n := s.ActiveLightCount()
	if n > len(lights) {
		n = len(lights)
	}

	bound := make([]LightBinding, n)
	for i := 0; i < n; i++ {
		l := &lights[i]
		bound[i] = LightBinding{
			Position: [4]float32{l.Position.X(), l.Position.Y(), l.Position.Z(), l.Radius},
			Ambient:  l.Ambient,
			Diffuse:  l.Diffuse,
			Specular: l.Specular,
		}
	}

	return FrameBindings{
		World:                 mgl32.Ident4(),
		WorldInverseTranspose: mgl32.Ident4(),
		ViewProjection:        cam.ViewProjection,
		CameraPos:             [4]float32{cam.Position.X(), cam.Position.Y(), cam.Position.Z(), 1},
		GlobalAmbient:         globalAmbient,
		NumLights:             uint32(n),
		Lights:                bound,
		Technique:             s.Technique(),
	}
}
