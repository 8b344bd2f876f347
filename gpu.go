package lantern

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

type GpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration

	depthView *wgpu.TextureView
}

func createGpuState(s *WindowState) (*GpuState, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	// wraps GLFW window into a wgpu surface.
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	// finds a suitable GPU (discrete GPU preferred)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	// allocates the device and command queue
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "Main Device",
		RequiredFeatures: nil,
		RequiredLimits:   nil,
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	// defines how the swapchain behaves (size, format, vsync)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(s.WindowWidth),
		Height:      uint32(s.WindowHeight),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}

	surface.Configure(adapter, device, &surfaceConfig)

	gpu := &GpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: &surfaceConfig,
	}
	if err := gpu.rebuildDepthTexture(); err != nil {
		return nil, err
	}
	return gpu, nil
}

// reconfigure resizes the swapchain and depth buffer. Also the
// recovery path after a lost surface.
func (gpu *GpuState) reconfigure(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	gpu.surfaceConfig.Width = uint32(width)
	gpu.surfaceConfig.Height = uint32(height)
	gpu.surface.Configure(gpu.adapter, gpu.device, gpu.surfaceConfig)
	return gpu.rebuildDepthTexture()
}

func (gpu *GpuState) rebuildDepthTexture() error {
	if gpu.depthView != nil {
		gpu.depthView.Release()
		gpu.depthView = nil
	}

	texture, err := gpu.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              gpu.surfaceConfig.Width,
			Height:             gpu.surfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	defer texture.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}
	gpu.depthView = view
	return nil
}

type pipelineOptions struct {
	blend        *wgpu.BlendState
	depthWrite   bool
	depthCompare wgpu.CompareFunction
}

func createRenderPipeline(name string, shaderCode string, vertexType any, gpu *GpuState, opts pipelineOptions) (*wgpu.RenderPipeline, error) {
	shader, err := gpu.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", name, err)
	}
	defer shader.Release()

	vertexBufferLayout := createVertexBufferLayout(vertexType)

	pipeline, err := gpu.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: name,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    gpu.surfaceConfig.Format,
					Blend:     opts.blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: opts.depthWrite,
			DepthCompare:      opts.depthCompare,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s pipeline: %w", name, err)
	}
	return pipeline, nil
}

func createVertexIndexBuffers[V any](vertices []V, indices []uint16, device *wgpu.Device) (vertexBuf *wgpu.Buffer, indexBuf *wgpu.Buffer, err error) {
	vertexBuf, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: sliceToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("vertex buffer: %w", err)
	}
	indexBuf, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Index Buffer",
		Contents: sliceToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("index buffer: %w", err)
	}
	return vertexBuf, indexBuf, nil
}

func createUniformBuffer(name string, data any, gpu *GpuState) (*wgpu.Buffer, error) {
	buffer, err := gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: toBufferBytes(data),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return buffer, nil
}

func createTextureFromAsset(asset TextureAsset, gpu *GpuState) (*wgpu.TextureView, error) {
	textureExtent := wgpu.Extent3D{
		Width:              asset.width,
		Height:             asset.height,
		DepthOrArrayLayers: 1,
	}
	texture, err := gpu.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          textureExtent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	defer texture.Release()

	textureView, err := texture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	err = gpu.queue.WriteTexture(
		texture.AsImageCopy(),
		asset.texels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  asset.width * 4,
			RowsPerImage: asset.height,
		},
		&textureExtent,
	)
	if err != nil {
		return nil, fmt.Errorf("upload texture: %w", err)
	}
	return textureView, nil
}

func createLinearSampler(gpu *GpuState) (*wgpu.Sampler, error) {
	return gpu.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
}

func createVertexBufferLayout(vertexType any) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("lantern") {
			format := parseFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float32x2":
		return wgpu.VertexFormatFloat32x2
	case "float32x3":
		return wgpu.VertexFormatFloat32x3
	case "float32x4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

func createBindGroup(pipeline *wgpu.RenderPipeline, groupId uint32, entries []wgpu.BindGroupEntry, device *wgpu.Device) (*wgpu.BindGroup, error) {
	layout := pipeline.GetBindGroupLayout(groupId)
	defer layout.Release()

	group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("bind group %d: %w", groupId, err)
	}
	return group, nil
}

func sliceToBytes[E any](src []E) []byte {
	if len(src) == 0 {
		return nil
	}
	var e E
	return unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), len(src)*int(unsafe.Sizeof(e)))
}

// toBufferBytes serializes a uniform struct field by field, little
// endian, in declaration order. Uniform structs are laid out to match
// the WGSL side exactly, so no implicit padding is ever inserted.
func toBufferBytes(data any) []byte {
	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	buf := new(bytes.Buffer)
	readUniformBytes(val, buf)
	return buf.Bytes()
}

func readUniformBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Struct {
				readUniformBytes(elem, buf)
			} else {
				if err := binary.Write(buf, binary.LittleEndian, elem.Interface()); err != nil {
					panic(fmt.Errorf("failed to write slice element: %w", err))
				}
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformBytes(field.Field(i), buf)
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field.Kind()))
	}
}
