package cones

import (
	"fmt"
)

type LightType uint32

const (
	LightTypePoint LightType = 0
)

// LightComponent is the ECS component for lights
type LightComponent struct {
	Type       LightType
	Color      [3]float32 // linear RGB
	Intensity  float32
	Radius     float32
	Smoothness float32
}

func NewPointLight(color [3]float32, intensity float32) LightComponent {
	return LightComponent{
		Type:       LightTypePoint,
		Color:      color,
		Intensity:  intensity,
		Radius:     10,
		Smoothness: 4,
	}
}

// LightColor identifies a member of the light rig.
type LightColor int

const (
	LightColorRed LightColor = iota
	LightColorGreen
)

func (c LightColor) String() string {
	switch c {
	case LightColorRed:
		return "red"
	case LightColorGreen:
		return "green"
	}
	return fmt.Sprintf("LightColor(%d)", int(c))
}

// LightColorComponent marks a light as a rig member. Lights without it are
// never moved.
type LightColorComponent struct {
	Color LightColor
}
