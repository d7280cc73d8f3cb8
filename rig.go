package cones

import (
	"math"
)

// LightRig configures the two orbiting point lights.
type LightRig struct {
	Intensity float32
	Red       [3]float32
	Green     [3]float32
}

func DefaultLightRig() LightRig {
	return LightRig{
		Intensity: 10.0,
		Red:       [3]float32{1, 0, 0},
		Green:     [3]float32{0, 1, 0},
	}
}

// SpawnLights creates the red light at (10, 0, -3) and the green light at
// (-10, 0, -3), each tagged for the motion system.
func SpawnLights(cmd *Commands, rig LightRig) (red EntityId, green EntityId) {
	redTransform := NewTransform()
	redTransform.SetTranslation(10.0, 0.0, -3.0)

	greenTransform := NewTransform()
	greenTransform.SetTranslation(-10.0, 0.0, -3.0)

	redLight := NewPointLight(rig.Red, rig.Intensity)
	greenLight := NewPointLight(rig.Green, rig.Intensity)

	red = cmd.AddEntity(
		&redLight,
		&redTransform,
		&LightColorComponent{Color: LightColorRed},
	)
	green = cmd.AddEntity(
		&greenLight,
		&greenTransform,
		&LightColorComponent{Color: LightColorGreen},
	)
	return red, green
}

// SpawnCamera creates the camera at (0, 0, -12) turned half way around the
// Y axis, sized to the current screen.
func SpawnCamera(cmd *Commands, screen *ScreenDimensions) EntityId {
	transform := NewTransform()
	transform.SetTranslation(0.0, 0.0, -12.0)
	transform.PrependRotationYAxis(math.Pi)

	camera := StandardCamera3D(screen.Width, screen.Height)
	return cmd.AddEntity(&camera, &transform)
}
