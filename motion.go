package cones

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	lightOrbitRate   = 10.0
	lightOrbitRadius = 100.0
	lightDepth       = -3.0

	cameraOrbitRadius = 8.0
	cameraDepth       = -5.0
)

var (
	cameraTarget = mgl32.Vec3{0, 0, 0}
	cameraUp     = mgl32.Vec3{0, 0, -1}
)

// LightPosition is where a rig light of the given colour sits at time
// seconds. The green orbit swaps the axes of the red one. ok is false for
// colours outside the rig.
func LightPosition(color LightColor, seconds float32) (pos mgl32.Vec3, ok bool) {
	angle := float64(seconds) * lightOrbitRate
	movementY := float32(-math.Sin(angle) * lightOrbitRadius)
	movementX := float32(math.Cos(angle) * lightOrbitRadius)

	switch color {
	case LightColorRed:
		return mgl32.Vec3{movementX, movementY, lightDepth}, true
	case LightColorGreen:
		return mgl32.Vec3{movementY, movementX, lightDepth}, true
	}
	return mgl32.Vec3{}, false
}

// CameraPosition is the camera orbit: radius 8 in the XY plane at depth -5,
// one radian per second.
func CameraPosition(seconds float32) mgl32.Vec3 {
	s := float64(seconds)
	return mgl32.Vec3{
		float32(-cameraOrbitRadius * math.Sin(s)),
		float32(cameraOrbitRadius * math.Cos(s)),
		cameraDepth,
	}
}

func MoveLightsSystem(cmd *Commands, t *Time) {
	seconds := t.AbsoluteSeconds()
	MakeQuery2[LightColorComponent, TransformComponent](cmd).Map(func(eid EntityId, tag *LightColorComponent, transform *TransformComponent) bool {
		if pos, ok := LightPosition(tag.Color, seconds); ok {
			transform.Position = pos
		}
		return true
	})
}

func MoveCameraSystem(cmd *Commands, t *Time) {
	seconds := t.AbsoluteSeconds()
	logger := cmd.Logger()
	MakeQuery2[CameraComponent, TransformComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, transform *TransformComponent) bool {
		transform.Position = CameraPosition(seconds)
		transform.FaceTowards(cameraTarget, cameraUp)
		if logger.DebugEnabled() {
			logger.Debugf("camera %d at %v, view-projection %v", eid, transform.Position, cam.ViewProjection(transform))
		}
		return true
	})
}
