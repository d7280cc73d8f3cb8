package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/cones"
	"github.com/gekko3d/cones/platform"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML display/scene config (defaults are used when empty)")
	headless := flag.Bool("headless", false, "Run without a window; requires -frames")
	frames := flag.Uint64("frames", 0, "Exit after this many frames (0 runs until the window is closed)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if err := run(*configPath, *headless, *frames, *debug); err != nil {
		cones.NewDefaultLogger("cones", *debug).Errorf("%v", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, frames uint64, debug bool) error {
	cfg := cones.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = cones.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if headless && frames == 0 {
		return errors.New("-headless needs -frames")
	}

	scene, err := cones.NewConesModule(cfg.Scene)
	if err != nil {
		return err
	}

	builder := cones.NewAppBuilder().
		UseStates(cones.StateRunning, cones.StateExiting).
		UseModule(
			cones.LoggingModule{Prefix: "cones", Debug: debug},
			cones.TimeModule{},
			cones.AssetServerModule{},
		)

	if headless {
		builder.UseModule(cones.StaticScreenModule{Width: cfg.Display.Width, Height: cfg.Display.Height})
	} else {
		window, err := platform.OpenWindow(cfg.Display.Width, cfg.Display.Height, cfg.Display.Title)
		if err != nil {
			return fmt.Errorf("window: %w", err)
		}
		defer window.Close()

		renderer, err := platform.NewRenderer(window, cfg.Display.ClearColor)
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		defer renderer.Release()

		builder.UseModule(
			platform.WindowModule{Window: window},
			platform.RendererModule{Renderer: renderer},
		)
	}

	builder.UseModule(scene)
	if frames > 0 {
		builder.UseModule(cones.FrameLimitModule{Frames: frames, Exit: cones.StateExiting})
	}

	builder.Build().Run()
	return nil
}
