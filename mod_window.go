package lantern

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowModule struct {
	Width  int
	Height int
	Title  string
}

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	focused    bool
	fullscreen bool
	savedX     int
	savedY     int
	savedW     int
	savedH     int
}

func (mod WindowModule) Install(app *App, cmd *Commands) error {
	state, err := createWindowState(mod.Width, mod.Height, mod.Title)
	if err != nil {
		return err
	}

	cmd.AddResources(state)
	app.UseSystem(System(windowSystem).InStage(PreUpdate))
	return nil
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	state := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
		focused:      true,
	}

	win.SetFocusCallback(func(w *glfw.Window, focused bool) {
		state.focused = focused
	})

	return state, nil
}

// windowSystem pumps the event queue. While the window has focus it
// polls; without focus it blocks in WaitEvents so the process idles
// instead of spinning. The simulation resumes on focus without a time
// jump because the frame timer rejects the oversized sample.
func windowSystem(s *WindowState, control *RunControl) {
	if s.focused {
		glfw.PollEvents()
	} else {
		glfw.WaitEvents()
	}

	control.HasFocus = s.focused

	if s.windowGlfw.ShouldClose() {
		control.Quit = true
	}

	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()
}

func (s *WindowState) ToggleFullscreen() {
	if !s.fullscreen {
		s.savedX, s.savedY = s.windowGlfw.GetPos()
		s.savedW, s.savedH = s.windowGlfw.GetSize()

		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		s.windowGlfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		s.fullscreen = true
	} else {
		s.windowGlfw.SetMonitor(nil, s.savedX, s.savedY, s.savedW, s.savedH, 0)
		s.fullscreen = false
	}
}

func (s *WindowState) AspectRatio() float32 {
	if s.WindowHeight == 0 {
		return 1
	}
	return float32(s.WindowWidth) / float32(s.WindowHeight)
}
