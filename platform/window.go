package platform

import (
	"fmt"

	"github.com/gekko3d/cones"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window without a client API; the renderer draws into it
// through a WebGPU surface. GLFW calls must happen on the main thread.
type Window struct {
	handle *glfw.Window
	Width  int
	Height int
	Title  string
}

func OpenWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context, WebGPU owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{handle: handle, Title: title}
	w.Width, w.Height = handle.GetFramebufferSize()
	return w, nil
}

func (w *Window) Close() {
	w.handle.Destroy()
	glfw.Terminate()
}

// WindowModule publishes the window and its framebuffer size. The size is
// captured once at install time; the camera does not follow resizes.
type WindowModule struct {
	Window *Window
}

func (m WindowModule) Install(app *cones.App, cmd *cones.Commands) {
	cmd.AddResources(
		m.Window,
		&cones.ScreenDimensions{Width: float32(m.Window.Width), Height: float32(m.Window.Height)},
	)
	app.UseSystem(
		cones.System(windowEventsSystem).
			InStage(cones.Prelude).
			RunAlways(),
	)
}

// windowEventsSystem pumps GLFW events, tracks the framebuffer size for the
// renderer and asks the app to exit when the window is closed or Escape is
// pressed.
func windowEventsSystem(cmd *cones.Commands, w *Window) {
	glfw.PollEvents()

	w.Width, w.Height = w.handle.GetFramebufferSize()

	if w.handle.ShouldClose() || w.handle.GetKey(glfw.KeyEscape) == glfw.Press {
		cmd.Logger().Infof("Window closed, exiting")
		cmd.ChangeState(cones.StateExiting)
	}
}
