package lantern

// CameraMode tells which mouse gesture currently owns the camera.
type CameraMode int

const (
	CameraIdle CameraMode = iota
	CameraTracking
	CameraDollying
	CameraOrbiting
)

// CameraMapper translates raw pointer events into camera operations.
// It is a plain state machine: one mode at a time, the most recent
// button press wins, and on release the surviving button is picked by
// fixed priority (left, then right, then middle).
type CameraMapper struct {
	Mode CameraMode

	buttonsDown int
	prevX       float32
	prevY       float32
}

func (m *CameraMapper) ButtonDown(button int, x, y float32) {
	m.buttonsDown++

	switch button {
	case MouseButtonLeft:
		m.Mode = CameraTracking
	case MouseButtonMiddle:
		m.Mode = CameraDollying
	case MouseButtonRight:
		m.Mode = CameraOrbiting
	default:
		return
	}

	m.prevX = x
	m.prevY = y
}

func (m *CameraMapper) Move(x, y float32, cam *Camera) {
	dx := x - m.prevX
	dy := y - m.prevY

	switch m.Mode {
	case CameraTracking:
		cam.Track(dx*MouseTrackSpeed, dy*MouseTrackSpeed)
	case CameraDollying:
		// Dragging down pulls the camera away from the target.
		cam.Dolly(-dy * MouseDollySpeed)
	case CameraOrbiting:
		cam.Orbit(dx*MouseOrbitSpeed, dy*MouseOrbitSpeed)
	}

	m.prevX = x
	m.prevY = y
}

func (m *CameraMapper) ButtonUp(leftHeld, rightHeld, middleHeld bool) {
	if m.buttonsDown > 0 {
		m.buttonsDown--
	}

	if m.buttonsDown == 0 {
		m.Mode = CameraIdle
		return
	}

	if leftHeld {
		m.Mode = CameraTracking
	} else if rightHeld {
		m.Mode = CameraOrbiting
	} else if middleHeld {
		m.Mode = CameraDollying
	} else {
		m.Mode = CameraIdle
		m.buttonsDown = 0
	}
}

func (m *CameraMapper) Wheel(ticks float32, cam *Camera) {
	cam.Dolly(ticks * MouseWheelDollySpeed)
}

type OrbitCameraModule struct{}

func (mod OrbitCameraModule) Install(app *App, cmd *Commands) error {
	cmd.AddResources(NewCamera(), &CameraMapper{})
	app.UseSystem(System(cameraInputSystem).InStage(Update))
	app.UseSystem(System(cameraRebuildSystem).InStage(PostUpdate))
	return nil
}

func cameraInputSystem(input *Input, mapper *CameraMapper, cam *Camera) {
	x := float32(input.MouseX)
	y := float32(input.MouseY)

	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		if input.JustPressed[btn] {
			mapper.ButtonDown(btn, x, y)
		}
	}

	if mapper.Mode != CameraIdle {
		mapper.Move(x, y, cam)
	}

	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		if input.JustReleased[btn] {
			mapper.ButtonUp(
				input.Pressed[MouseButtonLeft],
				input.Pressed[MouseButtonRight],
				input.Pressed[MouseButtonMiddle],
			)
		}
	}

	if input.ScrollY != 0 {
		mapper.Wheel(float32(input.ScrollY), cam)
	}
}

func cameraRebuildSystem(cam *Camera, window *WindowState) {
	cam.Rebuild(window.AspectRatio())
}
