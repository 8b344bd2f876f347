package lantern

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// sceneUniforms mirrors the SceneUniforms block in the WGSL shaders,
// field for field. Params: x = shininess, y = light count, z = light
// index for the multi-pass technique.
type sceneUniforms struct {
	World         [16]float32
	WorldIT       [16]float32
	ViewProj      [16]float32
	CameraPos     [4]float32
	GlobalAmbient [4]float32
	MatAmbient    [4]float32
	MatDiffuse    [4]float32
	MatEmissive   [4]float32
	MatSpecular   [4]float32
	Params        [4]float32
	Lights        [MaxLightsTier2]LightBinding
}

func makeSceneUniforms(b FrameBindings, world mgl32.Mat4, mat Material, lightIndex int) sceneUniforms {
	u := sceneUniforms{
		World:         [16]float32(world),
		WorldIT:       [16]float32(world.Inv().Transpose()),
		ViewProj:      [16]float32(b.ViewProjection),
		CameraPos:     b.CameraPos,
		GlobalAmbient: b.GlobalAmbient,
		MatAmbient:    mat.Ambient,
		MatDiffuse:    mat.Diffuse,
		MatEmissive:   mat.Emissive,
		MatSpecular:   mat.Specular,
		Params:        [4]float32{mat.Shininess, float32(b.NumLights), float32(lightIndex), 0},
	}
	copy(u.Lights[:], b.Lights)
	return u
}

type RendererModule struct {
	// ColorMapPath is the room texture; missing or empty falls back
	// to the plain white texture.
	ColorMapPath string
	// FontPath enables the HUD overlay when set.
	FontPath string
	// EmulateTier1 pretends the device cannot run the tier-2 shaders,
	// to exercise the 2-light paths on capable hardware.
	EmulateTier1 bool
}

type RendererState struct {
	gpu *GpuState
	log Logger

	pipelineTier2    *wgpu.RenderPipeline
	pipelineTier1    *wgpu.RenderPipeline
	pipelineAmbient  *wgpu.RenderPipeline
	pipelineOneLight *wgpu.RenderPipeline
	pipelineOverlay  *wgpu.RenderPipeline

	roomVertexBuf    *wgpu.Buffer
	roomVertexCount  uint32
	sphereVertexBuf  *wgpu.Buffer
	sphereIndexBuf   *wgpu.Buffer
	sphereIndexCount uint32

	roomUniformBuf    *wgpu.Buffer
	passUniformBufs   [MaxLightsTier1]*wgpu.Buffer
	markerUniformBufs [MaxLightsTier2]*wgpu.Buffer

	colorMapView *wgpu.TextureView
	whiteView    *wgpu.TextureView
	atlasView    *wgpu.TextureView
	sampler      *wgpu.Sampler

	overlay *TextOverlay
}

func (mod RendererModule) Install(app *App, cmd *Commands) error {
	window, ok := resourceOf[WindowState](app)
	if !ok {
		return fmt.Errorf("renderer requires the window module")
	}
	assets, ok := resourceOf[AssetServer](app)
	if !ok {
		return fmt.Errorf("renderer requires the asset server module")
	}
	log := app.Logger()

	gpu, err := createGpuState(window)
	if err != nil {
		return err
	}

	caps := detectShaderCaps(gpu, mod.EmulateTier1)
	selector, err := NewTechniqueSelector(caps)
	if err != nil {
		return err
	}

	state := &RendererState{gpu: gpu, log: log}

	solid := pipelineOptions{depthWrite: true, depthCompare: wgpu.CompareFunctionLess}
	additive := pipelineOptions{
		blend: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
		},
		depthWrite:   false,
		depthCompare: wgpu.CompareFunctionLessEqual,
	}
	alphaBlend := pipelineOptions{
		blend: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		},
		depthWrite:   false,
		depthCompare: wgpu.CompareFunctionAlways,
	}

	if caps.Tier2 {
		state.pipelineTier2, err = createRenderPipeline("scene tier2", shaderSceneTier2, Vertex{}, gpu, solid)
		if err != nil {
			return err
		}
	}
	if caps.Tier1 {
		state.pipelineTier1, err = createRenderPipeline("scene tier1", shaderSceneTier1, Vertex{}, gpu, solid)
		if err != nil {
			return err
		}
		state.pipelineAmbient, err = createRenderPipeline("scene ambient", shaderSceneAmbient, Vertex{}, gpu, solid)
		if err != nil {
			return err
		}
		state.pipelineOneLight, err = createRenderPipeline("scene one light", shaderSceneOneLight, Vertex{}, gpu, additive)
		if err != nil {
			return err
		}
	}

	roomVerts := RoomVertices()
	state.roomVertexCount = uint32(len(roomVerts))
	state.roomVertexBuf, err = gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Room Vertex Buffer",
		Contents: sliceToBytes(roomVerts),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return fmt.Errorf("room vertex buffer: %w", err)
	}

	sphereVerts, sphereIndices := BuildSphereMesh(LightMarkerRadius, 32, 32)
	state.sphereIndexCount = uint32(len(sphereIndices))
	state.sphereVertexBuf, state.sphereIndexBuf, err = createVertexIndexBuffers(sphereVerts, sphereIndices, gpu.device)
	if err != nil {
		return err
	}

	var zero sceneUniforms
	state.roomUniformBuf, err = createUniformBuffer("Room Uniforms", zero, gpu)
	if err != nil {
		return err
	}
	for i := range state.passUniformBufs {
		state.passUniformBufs[i], err = createUniformBuffer(fmt.Sprintf("Light Pass %d Uniforms", i), zero, gpu)
		if err != nil {
			return err
		}
	}
	for i := range state.markerUniformBufs {
		state.markerUniformBufs[i], err = createUniformBuffer(fmt.Sprintf("Marker %d Uniforms", i), zero, gpu)
		if err != nil {
			return err
		}
	}

	whiteAsset, _ := assets.Texture(assets.WhiteTexture())
	state.whiteView, err = createTextureFromAsset(whiteAsset, gpu)
	if err != nil {
		return err
	}

	state.colorMapView = state.whiteView
	if mod.ColorMapPath != "" {
		id, err := assets.LoadTexture(mod.ColorMapPath)
		if err != nil {
			log.Warnf("color map unavailable, rendering untextured: %v", err)
		} else {
			asset, _ := assets.Texture(id)
			state.colorMapView, err = createTextureFromAsset(asset, gpu)
			if err != nil {
				return err
			}
		}
	}

	state.sampler, err = createLinearSampler(gpu)
	if err != nil {
		return fmt.Errorf("sampler: %w", err)
	}

	if mod.FontPath != "" {
		state.overlay, err = NewTextOverlay(mod.FontPath, 16)
		if err != nil {
			return err
		}
		texels, w, h := state.overlay.AtlasRGBA()
		state.atlasView, err = createTextureFromAsset(TextureAsset{texels: texels, width: w, height: h}, gpu)
		if err != nil {
			return err
		}
		state.pipelineOverlay, err = createRenderPipeline("overlay", shaderOverlay, OverlayVertex{}, gpu, alphaBlend)
		if err != nil {
			return err
		}
	}

	cmd.AddResources(state, selector)
	app.UseSystem(System(renderSystem).InStage(Render))
	return nil
}

// detectShaderCaps reports the tiers the device can run. A present
// device always handles the fixed 2-light shaders; the loop-based
// tier-2 shaders can be masked out to exercise the low path.
func detectShaderCaps(gpu *GpuState, emulateTier1 bool) ShaderCaps {
	if gpu == nil || gpu.device == nil {
		return ShaderCaps{}
	}
	return ShaderCaps{
		Tier1: true,
		Tier2: !emulateTier1,
	}
}

func renderSystem(
	window *WindowState,
	state *RendererState,
	cam *Camera,
	settings *SceneSettings,
	selector *TechniqueSelector,
	timeResource *Time,
	cmd *Commands,
) {
	gpu := state.gpu

	if uint32(window.WindowWidth) != gpu.surfaceConfig.Width ||
		uint32(window.WindowHeight) != gpu.surfaceConfig.Height {
		if err := gpu.reconfigure(window.WindowWidth, window.WindowHeight); err != nil {
			state.log.Errorf("surface resize failed: %v", err)
			return
		}
	}

	lights := collectLights(cmd)
	bindings := selector.FrameBindings(cam, lights, settings.GlobalAmbient)

	// Room uniforms: identity world, dull material.
	roomUniforms := makeSceneUniforms(bindings, mgl32.Ident4(), DullMaterial(), 0)
	if err := gpu.queue.WriteBuffer(state.roomUniformBuf, 0, toBufferBytes(roomUniforms)); err != nil {
		state.log.Errorf("room uniform upload failed: %v", err)
		return
	}

	if bindings.Technique == Tier1MultiPass {
		for i := 0; i < int(bindings.NumLights) && i < len(state.passUniformBufs); i++ {
			passUniforms := makeSceneUniforms(bindings, mgl32.Ident4(), DullMaterial(), i)
			if err := gpu.queue.WriteBuffer(state.passUniformBufs[i], 0, toBufferBytes(passUniforms)); err != nil {
				state.log.Errorf("light pass uniform upload failed: %v", err)
				return
			}
		}
	}

	if settings.ShowLights {
		for i := 0; i < int(bindings.NumLights); i++ {
			world := mgl32.Translate3D(
				bindings.Lights[i].Position[0],
				bindings.Lights[i].Position[1],
				bindings.Lights[i].Position[2],
			)
			markerUniforms := makeSceneUniforms(bindings, world, ShinyMaterial(), 0)
			if err := gpu.queue.WriteBuffer(state.markerUniformBufs[i], 0, toBufferBytes(markerUniforms)); err != nil {
				state.log.Errorf("marker uniform upload failed: %v", err)
				return
			}
		}
	}

	// A lost surface is recoverable: reconfigure and skip the frame.
	nextTexture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		state.log.Warnf("surface lost, reconfiguring: %v", err)
		if err := gpu.reconfigure(window.WindowWidth, window.WindowHeight); err != nil {
			state.log.Errorf("surface recovery failed: %v", err)
		}
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		state.log.Errorf("swapchain view failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		state.log.Errorf("command encoder failed: %v", err)
		return
	}
	defer encoder.Release()

	colorView := state.whiteView
	if settings.UseColorMaps {
		colorView = state.colorMapView
	}

	rpass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            gpu.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	var frameGarbage []*wgpu.BindGroup
	defer func() {
		for _, bg := range frameGarbage {
			bg.Release()
		}
	}()

	bindAndDrawRoom := func(pipeline *wgpu.RenderPipeline, uniformBuf *wgpu.Buffer) bool {
		group, err := createBindGroup(pipeline, 0, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuf, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: colorView, Size: wgpu.WholeSize},
			{Binding: 2, Sampler: state.sampler, Size: wgpu.WholeSize},
		}, gpu.device)
		if err != nil {
			state.log.Errorf("room bind group failed: %v", err)
			return false
		}
		frameGarbage = append(frameGarbage, group)

		rpass.SetPipeline(pipeline)
		rpass.SetBindGroup(0, group, nil)
		rpass.SetVertexBuffer(0, state.roomVertexBuf, 0, state.roomVertexBuf.GetSize())
		rpass.Draw(state.roomVertexCount, 1, 0, 0)
		return true
	}

	switch bindings.Technique {
	case Tier2SinglePass:
		bindAndDrawRoom(state.pipelineTier2, state.roomUniformBuf)
	case Tier1SinglePass:
		bindAndDrawRoom(state.pipelineTier1, state.roomUniformBuf)
	case Tier1MultiPass:
		bindAndDrawRoom(state.pipelineAmbient, state.roomUniformBuf)
		for i := 0; i < int(bindings.NumLights) && i < len(state.passUniformBufs); i++ {
			bindAndDrawRoom(state.pipelineOneLight, state.passUniformBufs[i])
		}
	}

	if settings.ShowLights {
		markerPipeline := state.pipelineTier1
		if bindings.Technique == Tier2SinglePass {
			markerPipeline = state.pipelineTier2
		}

		for i := 0; i < int(bindings.NumLights); i++ {
			group, err := createBindGroup(markerPipeline, 0, []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: state.markerUniformBufs[i], Size: wgpu.WholeSize},
				{Binding: 1, TextureView: state.whiteView, Size: wgpu.WholeSize},
				{Binding: 2, Sampler: state.sampler, Size: wgpu.WholeSize},
			}, gpu.device)
			if err != nil {
				state.log.Errorf("marker bind group failed: %v", err)
				break
			}
			frameGarbage = append(frameGarbage, group)

			rpass.SetPipeline(markerPipeline)
			rpass.SetBindGroup(0, group, nil)
			rpass.SetVertexBuffer(0, state.sphereVertexBuf, 0, state.sphereVertexBuf.GetSize())
			rpass.SetIndexBuffer(state.sphereIndexBuf, wgpu.IndexFormatUint16, 0, state.sphereIndexBuf.GetSize())
			rpass.DrawIndexed(state.sphereIndexCount, 1, 0, 0, 0)
		}
	}

	var overlayBuf *wgpu.Buffer
	if state.overlay != nil {
		var radius float32
		if len(lights) > 0 {
			radius = lights[0].Radius
		}
		text := BuildStatusText(settings, selector, timeResource.FPS, radius)
		verts := state.overlay.BuildVertices(text, 4, 2, [4]float32{1, 1, 0, 1}, window.WindowWidth, window.WindowHeight)

		if len(verts) > 0 {
			overlayBuf, err = gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
				Label:    "Overlay Vertex Buffer",
				Contents: sliceToBytes(verts),
				Usage:    wgpu.BufferUsageVertex,
			})
			if err != nil {
				state.log.Errorf("overlay vertex buffer failed: %v", err)
			} else {
				group, err := createBindGroup(state.pipelineOverlay, 0, []wgpu.BindGroupEntry{
					{Binding: 0, TextureView: state.atlasView, Size: wgpu.WholeSize},
					{Binding: 1, Sampler: state.sampler, Size: wgpu.WholeSize},
				}, gpu.device)
				if err != nil {
					state.log.Errorf("overlay bind group failed: %v", err)
				} else {
					frameGarbage = append(frameGarbage, group)
					rpass.SetPipeline(state.pipelineOverlay)
					rpass.SetBindGroup(0, group, nil)
					rpass.SetVertexBuffer(0, overlayBuf, 0, overlayBuf.GetSize())
					rpass.Draw(uint32(len(verts)), 1, 0, 0)
				}
			}
		}
	}
	if overlayBuf != nil {
		defer overlayBuf.Release()
	}

	if err := rpass.End(); err != nil {
		state.log.Errorf("render pass end failed: %v", err)
		return
	}

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		state.log.Errorf("encoder finish failed: %v", err)
		return
	}
	gpu.queue.Submit(cmdBuf)
	gpu.surface.Present()
}

// collectLights snapshots the lights in a stable order. Archetype
// iteration order is randomized by Go's map, so sort by entity id to
// keep light indices steady across frames.
func collectLights(cmd *Commands) []PointLight {
	type entry struct {
		eid   EntityId
		light PointLight
	}
	var entries []entry

	MakeQuery1[PointLight](cmd).Map(func(eid EntityId, light *PointLight) bool {
		entries = append(entries, entry{eid: eid, light: *light})
		return true
	})

	slices.SortFunc(entries, func(a, b entry) int {
		if a.eid < b.eid {
			return -1
		}
		if a.eid > b.eid {
			return 1
		}
		return 0
	})

	lights := make([]PointLight, len(entries))
	for i, e := range entries {
		lights[i] = e.light
	}
	return lights
}
