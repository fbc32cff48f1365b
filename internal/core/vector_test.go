package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(3, 4), V2(1, -2)
	if got := a.Add(b); got != V2(4, 2) {
		t.Fatalf("Add = %v", got)
	}
	if got := a.Sub(b); got != V2(2, 6) {
		t.Fatalf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V2(6, 8) {
		t.Fatalf("Scale = %v", got)
	}
	if got := a.Div(2); got != V2(1.5, 2) {
		t.Fatalf("Div = %v", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Fatalf("Dot = %v", got)
	}
	if a.Magnitude() != 5 || a.MagnitudeSq() != 25 {
		t.Fatal("magnitude of (3,4) should be 5")
	}
	if got := a.Neg(); got != V2(-3, -4) {
		t.Fatalf("Neg = %v", got)
	}
}

func TestVec2NormalizeAndPerpendicular(t *testing.T) {
	n := V2(3, 4).Normalize()
	if math.Abs(n.Magnitude()-1) > 1e-12 {
		t.Fatalf("normalized length %f", n.Magnitude())
	}
	if z := (Vec2{}).Normalize(); !z.IsZero() {
		t.Fatalf("zero vector should stay zero, got %v", z)
	}
	down := V2(0, 1)
	if got := down.PerpendicularCW(); got != V2(-1, 0) {
		t.Fatalf("PerpendicularCW(0,1) = %v", got)
	}
	if down.PerpendicularCW().Dot(down) != 0 {
		t.Fatal("perpendicular should be orthogonal")
	}
}

func TestVec2Round(t *testing.T) {
	x, y := V2(2.5, -1.4).Round()
	if x != 3 || y != -1 {
		t.Fatalf("Round = (%d,%d)", x, y)
	}
}
