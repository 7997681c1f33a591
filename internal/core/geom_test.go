package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoundsIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Bounds
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(5, 5, 15, 15),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(15, 0, 25, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(0, 15, 10, 25),
			expected: false,
		},
		{
			name:     "touching edge (no overlap)",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(10, 0, 20, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBounds(0, 0, 20, 20),
			b:        NewBounds(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewBounds(0, 0, 10, 10),
			b:        NewBounds(9.5, 9.5, 12, 12),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestBoundsFromPoints(t *testing.T) {
	b := BoundsFromPoints([]mgl64.Vec2{{3, -1}, {-2, 4}, {0, 0}})
	if b != NewBounds(-2, -1, 3, 4) {
		t.Errorf("BoundsFromPoints() = %+v, expected {-2 -1 3 4}", b)
	}
	if b.Width() != 5 || b.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, expected 5/5", b.Width(), b.Height())
	}

	if empty := BoundsFromPoints(nil); empty != (Bounds{}) {
		t.Errorf("BoundsFromPoints(nil) = %+v, expected zero bounds", empty)
	}
}

func TestBoundsCombine(t *testing.T) {
	b := NewBounds(0, 0, 10, 10)

	c := b.Combine(NewBounds(-5, 2, 3, 20))
	if c != NewBounds(-5, 0, 10, 20) {
		t.Errorf("Combine() = %+v", c)
	}

	if b.Width() != 10 || b.Height() != 10 {
		t.Errorf("size = %vx%v, expected 10x10", b.Width(), b.Height())
	}
	if center := b.Center(); center != (mgl64.Vec2{5, 5}) {
		t.Errorf("Center() = %v, expected (5, 5)", center)
	}
}

func TestAbs(t *testing.T) {
	tests := []struct {
		val, expected int
	}{
		{5, 5},
		{-5, 5},
		{0, 0},
	}

	for _, tc := range tests {
		if result := Abs(tc.val); result != tc.expected {
			t.Errorf("Abs(%d) = %d, expected %d", tc.val, result, tc.expected)
		}
	}
}
