package exporter

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const transformEps = 1e-6

func vecNear(t *testing.T, label string, got, want Vec3, eps float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps ||
		math.Abs(got.Y-want.Y) > eps ||
		math.Abs(got.Z-want.Z) > eps {
		t.Errorf("%s: expected (%v, %v, %v), got (%v, %v, %v)",
			label, want.X, want.Y, want.Z, got.X, got.Y, got.Z)
	}
}

func TestExtractTransformIdentity(t *testing.T) {
	tr := ExtractTransform(mgl64.Ident4(), false)

	vecNear(t, "position", tr.Position, Vec3{}, transformEps)
	vecNear(t, "rotation", tr.Rotation, Vec3{}, transformEps)
	vecNear(t, "scale", tr.Scale, Vec3{X: 1, Y: 1, Z: 1}, transformEps)
}

func TestExtractTransformTranslation(t *testing.T) {
	world := mgl64.Translate3D(1, 2, 3)

	tr := ExtractTransform(world, false)
	vecNear(t, "position", tr.Position, Vec3{X: 1, Y: 2, Z: 3}, transformEps)

	// The axis conversion maps (x, y, z) to (x, z, -y).
	tr = ExtractTransform(world, true)
	vecNear(t, "converted position", tr.Position, Vec3{X: 1, Y: 3, Z: -2}, transformEps)
}

func TestExtractTransformRotationRoundTrip(t *testing.T) {
	cases := []struct{ x, y, z float64 }{
		{30, 0, 0},
		{0, 45, 0},
		{0, 0, 60},
		{30, 45, 60},
		{-20, 10, 170},
		{15, -80, -45},
	}

	for _, c := range cases {
		world := mgl64.HomogRotate3DZ(mgl64.DegToRad(c.z)).
			Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(c.y))).
			Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(c.x)))

		tr := ExtractTransform(world, false)
		vecNear(t, "rotation", tr.Rotation, Vec3{X: c.x, Y: c.y, Z: c.z}, 1e-4)
		vecNear(t, "scale", tr.Scale, Vec3{X: 1, Y: 1, Z: 1}, transformEps)
	}
}

func TestExtractTransformAxisConversionRotation(t *testing.T) {
	// An identity world viewed through the basis change is a -90 degree
	// rotation about X.
	tr := ExtractTransform(mgl64.Ident4(), true)
	vecNear(t, "rotation", tr.Rotation, Vec3{X: -90, Y: 0, Z: 0}, 1e-4)
}

func TestExtractTransformScale(t *testing.T) {
	world := mgl64.Translate3D(5, 0, 0).Mul4(mgl64.Scale3D(2, 3, 4))

	tr := ExtractTransform(world, false)
	vecNear(t, "position", tr.Position, Vec3{X: 5, Y: 0, Z: 0}, transformEps)
	vecNear(t, "scale", tr.Scale, Vec3{X: 2, Y: 3, Z: 4}, transformEps)
	vecNear(t, "rotation", tr.Rotation, Vec3{}, 1e-4)
}

func TestExtractTransformReflection(t *testing.T) {
	// A mirrored matrix has a negative determinant; the sign lands on the
	// X scale component and the rotation stays proper.
	world := mgl64.Scale3D(-2, 3, 4)

	tr := ExtractTransform(world, false)
	vecNear(t, "scale", tr.Scale, Vec3{X: -2, Y: 3, Z: 4}, transformEps)
	vecNear(t, "rotation", tr.Rotation, Vec3{}, 1e-4)
}

func TestExtractTransformZeroScale(t *testing.T) {
	world := mgl64.Scale3D(0, 1, 1)

	tr := ExtractTransform(world, false)
	vecNear(t, "scale", tr.Scale, Vec3{X: 0, Y: 1, Z: 1}, transformEps)

	// The rotation must stay finite even with a degenerate column.
	for _, v := range []float64{tr.Rotation.X, tr.Rotation.Y, tr.Rotation.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("rotation not finite: %+v", tr.Rotation)
		}
	}
}

func TestExtractTransformGimbal(t *testing.T) {
	// Pitch at exactly 90 degrees hits the gimbal pole; Z folds to zero and
	// the matrix must still round-trip.
	world := mgl64.HomogRotate3DY(mgl64.DegToRad(90))

	tr := ExtractTransform(world, false)
	if math.Abs(tr.Rotation.Y-90) > 1e-3 {
		t.Errorf("expected Y rotation 90, got %v", tr.Rotation.Y)
	}
	if tr.Rotation.Z != 0 {
		t.Errorf("expected Z rotation folded to 0, got %v", tr.Rotation.Z)
	}
	for _, v := range []float64{tr.Rotation.X, tr.Rotation.Y, tr.Rotation.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("rotation not finite: %+v", tr.Rotation)
		}
	}
}

func TestAxisConversionBasis(t *testing.T) {
	m := AxisConversion()

	up := m.Mul4x1(mgl64.Vec4{0, 0, 1, 0})
	if !up.ApproxEqual(mgl64.Vec4{0, 1, 0, 0}) {
		t.Errorf("host up should map to +Y, got %v", up)
	}
	forward := m.Mul4x1(mgl64.Vec4{0, 1, 0, 0})
	if !forward.ApproxEqual(mgl64.Vec4{0, 0, -1, 0}) {
		t.Errorf("host forward should map to -Z, got %v", forward)
	}
}
