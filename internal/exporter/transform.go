package exporter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a JSON-facing 3-component vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform is a decomposed object transform. Rotation is Euler XYZ (X
// applied first, fixed axes) in degrees.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// axisConversion maps the host basis (forward +Y, up +Z) to the target basis
// (forward -Z, up +Y): a -90 degree rotation about X. It matches the geometry
// exporter's axis options so JSON transforms and OBJ files agree.
var axisConversion = mgl64.Mat4{
	1, 0, 0, 0,
	0, 0, -1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// AxisConversion returns the host-to-target basis change matrix.
func AxisConversion() mgl64.Mat4 { return axisConversion }

// ExtractTransform decomposes a world matrix into position, rotation and
// scale. With convertAxes set the matrix is first rebased into the target
// Y-up convention.
func ExtractTransform(world mgl64.Mat4, convertAxes bool) Transform {
	m := world
	if convertAxes {
		m = axisConversion.Mul4(world)
	}

	position := Vec3{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}

	cols := [3]mgl64.Vec3{
		{m.At(0, 0), m.At(1, 0), m.At(2, 0)},
		{m.At(0, 1), m.At(1, 1), m.At(2, 1)},
		{m.At(0, 2), m.At(1, 2), m.At(2, 2)},
	}

	scale := Vec3{X: cols[0].Len(), Y: cols[1].Len(), Z: cols[2].Len()}

	// A negative determinant means a reflection; carry the sign on X.
	if det3(cols) < 0 {
		scale.X = -scale.X
	}

	rotation := eulerDegrees(rotationQuat(cols, scale))

	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

func det3(c [3]mgl64.Vec3) float64 {
	return c[0].Dot(c[1].Cross(c[2]))
}

// rotationQuat normalizes the column vectors and converts the remaining pure
// rotation to a quaternion. Zero-magnitude columns (degenerate zero scale)
// fall back to the corresponding canonical axis so the conversion stays
// finite; their rotational contribution is undefined by contract.
func rotationQuat(cols [3]mgl64.Vec3, scale Vec3) mgl64.Quat {
	factors := [3]float64{scale.X, scale.Y, scale.Z}
	axes := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := range cols {
		if factors[i] == 0 {
			cols[i] = axes[i]
		} else {
			cols[i] = cols[i].Mul(1 / factors[i])
		}
	}
	rot := mgl64.Mat4{
		cols[0][0], cols[0][1], cols[0][2], 0,
		cols[1][0], cols[1][1], cols[1][2], 0,
		cols[2][0], cols[2][1], cols[2][2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(rot).Normalize()
}

// eulerDegrees converts a rotation quaternion to Euler XYZ angles in degrees,
// extracting from R = Rz*Ry*Rx (X applied first about fixed axes).
func eulerDegrees(q mgl64.Quat) Vec3 {
	m := q.Mat4()

	var x, y, z float64
	sy := -m.At(2, 0)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	y = math.Asin(sy)

	if math.Abs(sy) < 0.999999 {
		x = math.Atan2(m.At(2, 1), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(0, 0))
	} else {
		// Gimbal pole: fold everything into X.
		x = math.Atan2(sy*m.At(0, 1), sy*m.At(0, 2))
		z = 0
	}

	return Vec3{
		X: mgl64.RadToDeg(x),
		Y: mgl64.RadToDeg(y),
		Z: mgl64.RadToDeg(z),
	}
}
