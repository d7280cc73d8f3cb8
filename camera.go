package cones

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ScreenDimensions is provided by the host. It is read once when the camera
// rig is built; later resizes do not change the camera projection.
type ScreenDimensions struct {
	Width  float32
	Height float32
}

type CameraComponent struct {
	Fovy       float32
	Aspect     float32
	Near       float32
	Far        float32
	Projection mgl32.Mat4
}

// StandardCamera3D is a perspective camera with a 60 degree vertical field
// of view sized to the given screen.
func StandardCamera3D(width, height float32) CameraComponent {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	cam := CameraComponent{
		Fovy:   math.Pi / 3,
		Aspect: aspect,
		Near:   0.1,
		Far:    2000,
	}
	cam.Projection = mgl32.Perspective(cam.Fovy, cam.Aspect, cam.Near, cam.Far)
	return cam
}

// ViewProjection combines the projection with the inverse of the camera
// transform.
func (c *CameraComponent) ViewProjection(t *TransformComponent) mgl32.Mat4 {
	return c.Projection.Mul4(t.Matrix().Inv())
}
