package lantern

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct{}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY float64
	ScrollY        float64
	scrollAccum    float64

	WindowWidth, WindowHeight int
}

func (mod InputModule) Install(app *App, cmd *Commands) error {
	window, ok := resourceOf[WindowState](app)
	if !ok {
		return fmt.Errorf("input requires the window module")
	}

	input := &Input{}

	// Scroll only arrives through the callback, fired while
	// windowSystem pumps events. Registered once; inputSystem drains
	// the accumulator each frame.
	window.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff float64, yoff float64) {
		input.scrollAccum += yoff
	})

	cmd.AddResources(input)
	app.UseSystem(System(inputSystem).InStage(PreUpdate))
	return nil
}

// inputSystem snapshots keyboard, mouse and scroll state for the
// frame.
func inputSystem(s *WindowState, input *Input) {
	// Update Keyboard
	for key, glfwKey := range keyToGlfw {
		action := s.windowGlfw.GetKey(glfwKey)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if glfw.Press == action {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else if glfw.Release == action {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	// Update Mouse
	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()

	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		var glfwBtn glfw.MouseButton
		switch btn {
		case MouseButtonLeft:
			glfwBtn = glfw.MouseButtonLeft
		case MouseButtonRight:
			glfwBtn = glfw.MouseButtonRight
		case MouseButtonMiddle:
			glfwBtn = glfw.MouseButtonMiddle
		}

		action := s.windowGlfw.GetMouseButton(glfwBtn)
		input.JustPressed[btn] = false
		input.JustReleased[btn] = false

		if glfw.Press == action {
			if !input.Pressed[btn] {
				input.JustPressed[btn] = true
			}
			input.Pressed[btn] = true
		} else if glfw.Release == action {
			if input.Pressed[btn] {
				input.JustReleased[btn] = true
			}
			input.Pressed[btn] = false
		}
	}

	input.ScrollY = input.scrollAccum
	input.scrollAccum = 0

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyB:       glfw.KeyB,
	KeyC:       glfw.KeyC,
	KeyD:       glfw.KeyD,
	KeyE:       glfw.KeyE,
	KeyF:       glfw.KeyF,
	KeyG:       glfw.KeyG,
	KeyH:       glfw.KeyH,
	KeyI:       glfw.KeyI,
	KeyJ:       glfw.KeyJ,
	KeyK:       glfw.KeyK,
	KeyL:       glfw.KeyL,
	KeyM:       glfw.KeyM,
	KeyN:       glfw.KeyN,
	KeyO:       glfw.KeyO,
	KeyP:       glfw.KeyP,
	KeyQ:       glfw.KeyQ,
	KeyR:       glfw.KeyR,
	KeyS:       glfw.KeyS,
	KeyT:       glfw.KeyT,
	KeyU:       glfw.KeyU,
	KeyV:       glfw.KeyV,
	KeyW:       glfw.KeyW,
	KeyX:       glfw.KeyX,
	KeyY:       glfw.KeyY,
	KeyZ:       glfw.KeyZ,
	Key0:       glfw.Key0,
	Key1:       glfw.Key1,
	Key2:       glfw.Key2,
	Key3:       glfw.Key3,
	Key4:       glfw.Key4,
	Key5:       glfw.Key5,
	Key6:       glfw.Key6,
	Key7:       glfw.Key7,
	Key8:       glfw.Key8,
	Key9:       glfw.Key9,
	KeySpace:   glfw.KeySpace,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyKPPlus:  glfw.KeyKPAdd,
	KeyKPMinus: glfw.KeyKPSubtract,
	KeyShift:   glfw.KeyLeftShift,
	KeyLeftAlt: glfw.KeyLeftAlt,
}
