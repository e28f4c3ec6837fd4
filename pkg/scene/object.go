// Package scene defines the read-only scene-graph input model consumed by the
// exporter: objects with world transforms, mesh geometry with material slots,
// shading node graphs, images and lights. Optional host capabilities (shadow
// support, falloff types, spot shape) are modeled as nil-able sub-structs so
// the exporter branches on presence, never on probing.
package scene

import "github.com/go-gl/mathgl/mgl64"

// ObjectKind tags the payload carried by an Object.
type ObjectKind int

const (
	KindOther ObjectKind = iota
	KindMesh
	KindLight
)

// Object is a single scene-graph node as presented by the host application.
// Exactly one of Mesh/Light is non-nil for the corresponding kind.
type Object struct {
	Name             string
	Kind             ObjectKind
	World            mgl64.Mat4
	HiddenInViewport bool

	Mesh  *MeshData
	Light *LightData
}

// FaceVert addresses one corner of a polygon. Normal and UV are indices into
// the mesh's Normals/UVs slices, or -1 when the corner has none.
type FaceVert struct {
	Position int
	Normal   int
	UV       int
}

// Face is a polygon loop with a material slot index (-1 for no material).
type Face struct {
	Verts    []FaceVert
	Material int
}

// MeshData is the geometry payload of a mesh object, plus its ordered
// material slot list. Slots may contain nil entries.
type MeshData struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       [][2]float64
	Faces     []Face
	Materials []*Material
}

// LightKind is the host-side light type.
type LightKind int

const (
	LightPoint LightKind = iota
	LightSun
	LightSpot
	LightArea
)

// FalloffKind describes the host's distance falloff model for a light.
type FalloffKind int

const (
	FalloffInverseLinear FalloffKind = iota
	FalloffInverseSquare
	FalloffCustom
)

// Falloff is present only when the host light exposes a falloff type.
type Falloff struct {
	Kind FalloffKind
}

// SpotShape is present only for spot lights.
type SpotShape struct {
	SizeRad float64 // cone half-angle, radians
	Blend   float64 // edge blend factor, 0-1
}

// ShadowConfig is present only when the host light supports shadows. The
// pointer fields are nil when the host does not expose them.
type ShadowConfig struct {
	Enabled    bool
	BufferBias *float64
	ClipStart  *float64
	ClipEnd    *float64
}

// LightData is the payload of a light object. Range is nil when the host
// does not expose a distance.
type LightData struct {
	Kind   LightKind
	Color  [3]float64
	Energy float64
	Range  *float64

	Falloff *Falloff
	Spot    *SpotShape
	Shadow  *ShadowConfig
}
