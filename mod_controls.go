package lantern

type ControlsModule struct{}

func (mod ControlsModule) Install(app *App, cmd *Commands) error {
	app.UseSystem(System(controlsSystem).InStage(Update))
	return nil
}

// controlsSystem maps the demo hotkeys onto scene state:
//
//	Space      pause/resume light motion
//	+ / -      grow/shrink the light falloff radius
//	H          toggle the help overlay
//	L          toggle the light marker spheres
//	M          toggle multi-pass (tier 1 only)
//	S          toggle the shading tier
//	T          toggle color map textures
//	Alt+Enter  toggle fullscreen
//	Esc        quit
func controlsSystem(
	input *Input,
	settings *SceneSettings,
	selector *TechniqueSelector,
	window *WindowState,
	control *RunControl,
	cmd *Commands,
) {
	if input.JustPressed[KeySpace] {
		settings.AnimateLights = !settings.AnimateLights
	}
	if input.JustPressed[KeyH] {
		settings.ShowHelp = !settings.ShowHelp
	}
	if input.JustPressed[KeyL] {
		settings.ShowLights = !settings.ShowLights
	}
	if input.JustPressed[KeyM] {
		selector.ToggleMultiPass()
	}
	if input.JustPressed[KeyS] {
		selector.ToggleTier()
	}
	if input.JustPressed[KeyT] {
		settings.UseColorMaps = !settings.UseColorMaps
	}
	if input.JustPressed[KeyEscape] {
		control.Quit = true
	}
	if input.Pressed[KeyLeftAlt] && input.JustPressed[KeyEnter] {
		window.ToggleFullscreen()
	}

	var radiusDelta float32
	if input.JustPressed[KeyEqual] || input.JustPressed[KeyKPPlus] {
		radiusDelta += 1
	}
	if input.JustPressed[KeyMinus] || input.JustPressed[KeyKPMinus] {
		radiusDelta -= 1
	}
	if radiusDelta != 0 {
		MakeQuery1[PointLight](cmd).Map(func(eid EntityId, light *PointLight) bool {
			light.AdjustRadius(radiusDelta)
			return true
		})
	}
}
