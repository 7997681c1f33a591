package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSideFromIntersect(t *testing.T) {
	tests := []struct {
		intersect mgl64.Vec2
		expected  Side
	}{
		{mgl64.Vec2{-1, 0}, SideRight},
		{mgl64.Vec2{1, 0}, SideLeft},
		{mgl64.Vec2{0, -1}, SideBottom},
		{mgl64.Vec2{0, 1}, SideTop},
		{mgl64.Vec2{-3, 2}, SideRight},
		{mgl64.Vec2{1, 1}, SideTop}, // ties go to the vertical axis
		{mgl64.Vec2{0, 0}, SideNone},
	}

	for _, tc := range tests {
		if got := SideFromIntersect(tc.intersect); got != tc.expected {
			t.Errorf("SideFromIntersect(%v) = %v, expected %v", tc.intersect, got, tc.expected)
		}
	}
}

func TestSideOpposite(t *testing.T) {
	pairs := map[Side]Side{
		SideTop:    SideBottom,
		SideBottom: SideTop,
		SideLeft:   SideRight,
		SideRight:  SideLeft,
		SideNone:   SideNone,
	}
	for s, want := range pairs {
		if got := s.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, expected %v", s, got, want)
		}
		if ParseSide(s.String()) != s {
			t.Errorf("ParseSide(%q) did not round-trip", s.String())
		}
	}
}

func TestVectorHelpers(t *testing.T) {
	if got := Cross(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}); got != 1 {
		t.Errorf("Cross() = %v, expected 1", got)
	}
	if got := Normalize(mgl64.Vec2{}); got != (mgl64.Vec2{}) {
		t.Errorf("Normalize(zero) = %v, expected zero", got)
	}
	if got := Normal(mgl64.Vec2{2, 0}); !got.ApproxEqual(mgl64.Vec2{0, 1}) {
		t.Errorf("Normal() = %v, expected (0, 1)", got)
	}
	if got := Rotate(mgl64.Vec2{1, 0}, math.Pi/2); !got.ApproxEqualThreshold(mgl64.Vec2{0, 1}, 1e-9) {
		t.Errorf("Rotate() = %v, expected (0, 1)", got)
	}
}
