package exporter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/forgefield/sceneport/pkg/scene"
)

// Attenuation is a constant/linear/quadratic distance falloff triple.
type Attenuation struct {
	Constant  float64 `json:"constant"`
	Linear    float64 `json:"linear"`
	Quadratic float64 `json:"quadratic"`
}

// LightProperties is the per-light payload of a light instance. Optional
// fields are pointers so they are emitted only for light types (and host
// capabilities) that define them.
type LightProperties struct {
	Color     Vec3    `json:"color"`
	Intensity float64 `json:"intensity"`
	Enabled   bool    `json:"enabled"`

	Range       *float64     `json:"range,omitempty"`
	Attenuation *Attenuation `json:"attenuation,omitempty"`
	Direction   *Vec3        `json:"direction,omitempty"`
	Cutoff      *float64     `json:"cutoff,omitempty"`
	OuterCutoff *float64     `json:"outerCutoff,omitempty"`

	ShadowEnabled       *bool    `json:"shadowEnabled,omitempty"`
	ShadowBias          *float64 `json:"shadowBias,omitempty"`
	ShadowMapResolution *int     `json:"shadowMapResolution,omitempty"`
	ShadowOrthoSize     *float64 `json:"shadowOrthoSize,omitempty"`
}

const shadowMapResolution = 2048

// ExportLight maps a host light object to a scene light instance, or nil if
// the object carries no light data. Area lights are approximated as point
// lights.
func ExportLight(obj *scene.Object) *Instance {
	if obj == nil || obj.Light == nil {
		return nil
	}
	light := obj.Light

	var instType string
	switch light.Kind {
	case scene.LightSun:
		instType = "directionalLight"
	case scene.LightSpot:
		instType = "spotLight"
	default: // point and area
		instType = "pointLight"
	}

	props := &LightProperties{
		Color:   Vec3{X: light.Color[0], Y: light.Color[1], Z: light.Color[2]},
		Enabled: !obj.HiddenInViewport,
	}

	// Host energy and target intensity use different scales; sun lights
	// are divided down, and nothing ever emits below 0.1.
	if light.Kind == scene.LightSun {
		props.Intensity = math.Max(0.1, light.Energy/10.0)
	} else {
		props.Intensity = math.Max(0.1, light.Energy)
	}

	positional := light.Kind == scene.LightPoint ||
		light.Kind == scene.LightSpot ||
		light.Kind == scene.LightArea

	if positional {
		// A host-supplied distance is floored, even at zero; only a host
		// without the concept gets the 25.0 default.
		r := 25.0
		if light.Range != nil {
			r = math.Max(0.1, *light.Range)
		}
		props.Range = &r

		att := Attenuation{Constant: 1.0, Linear: 0.09, Quadratic: 0.032}
		if light.Falloff != nil {
			switch light.Falloff.Kind {
			case scene.FalloffInverseLinear:
				att = Attenuation{Constant: 1.0, Linear: 0.1, Quadratic: 0.0}
			case scene.FalloffInverseSquare:
				att = Attenuation{Constant: 1.0, Linear: 0.0, Quadratic: 0.1}
			}
		}
		props.Attenuation = &att
	}

	if light.Kind == scene.LightSun || light.Kind == scene.LightSpot {
		dir := lightDirection(obj.World)
		props.Direction = &dir
	}

	if light.Kind == scene.LightSpot && light.Spot != nil {
		cutoff := clamp(mgl64.RadToDeg(light.Spot.SizeRad), 0, 90)
		outer := clamp(cutoff*(1.0+light.Spot.Blend), 0, 90)
		props.Cutoff = &cutoff
		props.OuterCutoff = &outer
	}

	if light.Shadow != nil {
		enabled := light.Shadow.Enabled
		props.ShadowEnabled = &enabled
		if enabled {
			bias := 0.01
			if light.Shadow.BufferBias != nil {
				bias = math.Max(0.0, *light.Shadow.BufferBias)
			}
			props.ShadowBias = &bias

			res := shadowMapResolution
			props.ShadowMapResolution = &res

			if light.Kind == scene.LightSun {
				ortho := 100.0
				if light.Shadow.ClipStart != nil && light.Shadow.ClipEnd != nil {
					ortho = math.Max(1.0, *light.Shadow.ClipEnd-*light.Shadow.ClipStart)
				}
				props.ShadowOrthoSize = &ortho
			}
		}
	}

	transform := ExtractTransform(obj.World, true)

	return &Instance{
		ID:       LightID(obj.Name),
		Type:     instType,
		Position: transform.Position,
		Rotation: transform.Rotation,
		Scale:    transform.Scale,
		Light:    props,
	}
}

// ExportAllLights exports every light object, in order, skipping objects
// without light data.
func ExportAllLights(objects []*scene.Object) []*Instance {
	var out []*Instance
	for _, obj := range objects {
		if obj == nil || obj.Kind != scene.KindLight {
			continue
		}
		if inst := ExportLight(obj); inst != nil {
			out = append(out, inst)
		}
	}
	return out
}

// lightDirection is the object's local -Z axis rotated into world space by
// the world matrix's 3x3 block, normalized.
func lightDirection(world mgl64.Mat4) Vec3 {
	m3 := world.Mat3()
	dir := m3.Mul3x1(mgl64.Vec3{0, 0, -1})
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Vec3{X: dir.X(), Y: dir.Y(), Z: dir.Z()}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
