package platform

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/cones"
)

// Renderer presents the window surface every frame, cleared to a fixed
// colour. Scene geometry is not drawn.
type Renderer struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration
	clear    wgpu.Color
}

func NewRenderer(w *Window, clear [4]float32) (*Renderer, error) {
	instance := wgpu.CreateInstance(nil)

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.handle))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "cones device",
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		device.Release()
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, errors.New("surface reports no formats")
	}

	r := &Renderer{
		instance: instance,
		surface:  surface,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
		config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			Width:       uint32(w.Width),
			Height:      uint32(w.Height),
			PresentMode: wgpu.PresentModeFifo, // vsync
			AlphaMode:   caps.AlphaModes[0],
		},
		clear: wgpu.Color{R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: float64(clear[3])},
	}
	surface.Configure(adapter, device, r.config)
	return r, nil
}

func (r *Renderer) Release() {
	r.queue.Release()
	r.device.Release()
	r.adapter.Release()
	r.surface.Release()
	r.instance.Release()
}

// resize reconfigures the surface when the framebuffer changed. A zero
// sized (minimised) window skips the frame.
func (r *Renderer) resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if uint32(width) != r.config.Width || uint32(height) != r.config.Height {
		r.config.Width = uint32(width)
		r.config.Height = uint32(height)
		r.surface.Configure(r.adapter, r.device, r.config)
	}
	return true
}

func (r *Renderer) draw() error {
	nextTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clear,
			},
		},
	})
	defer pass.Release()
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.surface.Present()
	return nil
}

type RendererModule struct {
	Renderer *Renderer
}

func (m RendererModule) Install(app *cones.App, cmd *cones.Commands) {
	cmd.AddResources(m.Renderer)
	app.UseSystem(
		cones.System(renderSystem).
			InStage(cones.Render).
			RunAlways(),
	)
}

func renderSystem(cmd *cones.Commands, r *Renderer, w *Window) {
	if !r.resize(w.Width, w.Height) {
		return
	}
	if err := r.draw(); err != nil {
		cmd.Logger().Warnf("frame skipped: %v", err)
	}
}
