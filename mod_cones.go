package cones

import (
	"fmt"
)

const (
	StateRunning State = iota
	StateExiting
)

// ConesModule builds the demo scene when StateRunning is entered and moves
// the lights and the camera every frame after that.
type ConesModule struct {
	Grid          GridLayout
	ConeDivisions int
	Lights        LightRig
}

func NewConesModule(cfg SceneConfig) (*ConesModule, error) {
	red, err := ParseColor(cfg.RedLightColor)
	if err != nil {
		return nil, fmt.Errorf("red light: %w", err)
	}
	green, err := ParseColor(cfg.GreenLightColor)
	if err != nil {
		return nil, fmt.Errorf("green light: %w", err)
	}

	return &ConesModule{
		Grid:          GridLayout{Size: cfg.GridSize, Spacing: cfg.Spacing},
		ConeDivisions: cfg.ConeDivisions,
		Lights: LightRig{
			Intensity: cfg.LightIntensity,
			Red:       red,
			Green:     green,
		},
	}, nil
}

func (m ConesModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(m.setupSystem).
			InStage(Update).
			InState(OnEnter(StateRunning)),
	)
	app.UseSystem(
		System(MoveLightsSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(MoveCameraSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func (m ConesModule) setupSystem(cmd *Commands, assets *AssetServer, screen *ScreenDimensions) {
	logger := cmd.Logger()

	logger.Infof("Load mesh")
	mesh, base := LoadConeAssets(assets, m.ConeDivisions)

	logger.Infof("Create shapes")
	cones := PopulateGrid(cmd, assets, mesh, base, m.Grid)
	logger.Debugf("%d cones, %d textures, %d materials", len(cones), assets.TextureCount(), assets.MaterialCount())

	logger.Infof("Create lights")
	SpawnLights(cmd, m.Lights)

	logger.Infof("Put camera")
	SpawnCamera(cmd, screen)
}

// StaticScreenModule provides fixed ScreenDimensions when no window exists.
type StaticScreenModule struct {
	Width  int
	Height int
}

func (m StaticScreenModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&ScreenDimensions{Width: float32(m.Width), Height: float32(m.Height)})
}
