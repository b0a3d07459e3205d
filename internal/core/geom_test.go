package core

import (
	"math"
	"testing"
)

func TestVecAddSubScale(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 0, -1}

	sum := a.Add(b)
	if sum != (Vec3{5, 2, 2}) {
		t.Errorf("Add: got %v", sum)
	}

	diff := a.Sub(b)
	if diff != (Vec3{-3, 2, 4}) {
		t.Errorf("Sub: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %v", scaled)
	}
}

func TestNormXZ(t *testing.T) {
	v := Vec3{3, 7, 4}.NormXZ()
	if math.Abs(v.LenXZ()-1.0) > 1e-9 {
		t.Errorf("NormXZ length = %v, want 1", v.LenXZ())
	}
	if v.Y != 0 {
		t.Errorf("NormXZ should zero the Y component, got %v", v.Y)
	}

	// Zero vector must not produce NaN
	z := Vec3{}.NormXZ()
	if z != (Vec3{}) {
		t.Errorf("NormXZ of zero vector = %v, want zero", z)
	}
}

func TestDistXZIgnoresY(t *testing.T) {
	a := Vec3{0, 100, 0}
	b := Vec3{3, -50, 4}
	if d := DistXZ(a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("DistXZ = %v, want 5", d)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 {
		t.Error("Clamp above max")
	}
	if Clamp(-1, 0, 3) != 0 {
		t.Error("Clamp below min")
	}
	if ClampF(0.5, 0, 1) != 0.5 {
		t.Error("ClampF in range")
	}
	if ClampF(2.5, 0, 1) != 1 {
		t.Error("ClampF above max")
	}
}
