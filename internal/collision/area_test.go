package collision

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

func mustBox(t *testing.T, body *Body, w, h float64) *Polygon {
	t.Helper()
	p, err := NewBox(body, w, h)
	if err != nil {
		t.Fatalf("NewBox() error: %v", err)
	}
	return p
}

func mustCircle(t *testing.T, body *Body, r float64) *Circle {
	t.Helper()
	c, err := NewCircle(body, mgl64.Vec2{}, r)
	if err != nil {
		t.Fatalf("NewCircle() error: %v", err)
	}
	return c
}

func mustEdge(t *testing.T, body *Body, begin, end mgl64.Vec2) *Edge {
	t.Helper()
	e, err := NewEdge(body, begin, end)
	if err != nil {
		t.Fatalf("NewEdge() error: %v", err)
	}
	return e
}

func TestDegenerateShapes(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{"negative radius", func() error {
			_, err := NewCircle(nil, mgl64.Vec2{}, -1)
			return err
		}},
		{"two vertices", func() error {
			_, err := NewPolygon(nil, mgl64.Vec2{}, []mgl64.Vec2{{0, 0}, {1, 0}})
			return err
		}},
		{"collinear vertices", func() error {
			_, err := NewPolygon(nil, mgl64.Vec2{}, []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}})
			return err
		}},
		{"concave", func() error {
			_, err := NewPolygon(nil, mgl64.Vec2{}, []mgl64.Vec2{{0, 0}, {4, 0}, {1, 1}, {0, 4}})
			return err
		}},
		{"zero length edge", func() error {
			_, err := NewEdge(nil, mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1})
			return err
		}},
		{"flat box", func() error {
			_, err := NewBox(nil, 0, 5)
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.build(); !errors.Is(err, ErrDegenerateShape) {
				t.Errorf("error = %v, expected ErrDegenerateShape", err)
			}
		})
	}
}

func TestPolygonTransform(t *testing.T) {
	body := NewBody("box", mgl64.Vec2{10, 0}, 1, Active)
	body.Rotation = math.Pi / 2
	box := mustBox(t, body, 2, 4)

	pts := box.WorldPoints()
	if !pts[0].ApproxEqualThreshold(mgl64.Vec2{12, -1}, 1e-9) {
		t.Errorf("first world point = %v, expected (12, -1)", pts[0])
	}
	if c := box.Center(); !c.ApproxEqualThreshold(mgl64.Vec2{10, 0}, 1e-9) {
		t.Errorf("Center() = %v, expected (10, 0)", c)
	}

	b := box.Bounds()
	for _, got := range []struct {
		name      string
		got, want float64
	}{
		{"left", b.Left, 8},
		{"right", b.Right, 12},
		{"top", b.Top, -1},
		{"bottom", b.Bottom, 1},
	} {
		if !mgl64.FloatEqualThreshold(got.got, got.want, 1e-9) {
			t.Errorf("Bounds().%s = %v, expected %v", got.name, got.got, got.want)
		}
	}
}

func TestPolygonAxesDeduplicated(t *testing.T) {
	box := mustBox(t, nil, 4, 2)
	axes := box.Axes()
	if len(axes) != 2 {
		t.Fatalf("len(Axes()) = %d, expected 2", len(axes))
	}
	for _, a := range axes {
		if !mgl64.FloatEqualThreshold(a.Len(), 1, 1e-9) {
			t.Errorf("axis %v is not unit length", a)
		}
	}

	tri, err := NewPolygon(nil, mgl64.Vec2{}, []mgl64.Vec2{{0, 0}, {4, 0}, {0, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(tri.Axes()); n != 3 {
		t.Errorf("triangle has %d axes, expected 3", n)
	}
}

func TestEdgeAxes(t *testing.T) {
	e := mustEdge(t, nil, mgl64.Vec2{0, 0}, mgl64.Vec2{3, 0})
	axes := e.Axes()
	if len(axes) != 4 {
		t.Fatalf("len(Axes()) = %d, expected 4", len(axes))
	}
	if !axes[0].ApproxEqual(core.Negate(axes[1])) || !axes[2].ApproxEqual(core.Negate(axes[3])) {
		t.Errorf("Axes() = %v, expected pairs of opposite vectors", axes)
	}
	if !axes[2].ApproxEqual(mgl64.Vec2{1, 0}) {
		t.Errorf("direction axis = %v, expected (1, 0)", axes[2])
	}
	if c := e.Center(); !c.ApproxEqual(mgl64.Vec2{1.5, 0}) {
		t.Errorf("Center() = %v, expected (1.5, 0)", c)
	}
}

func TestContains(t *testing.T) {
	box := mustBox(t, NewBody("b", mgl64.Vec2{5, 5}, 1, Fixed), 4, 4)
	circle := mustCircle(t, NewBody("c", mgl64.Vec2{0, 0}, 1, Fixed), 2)
	edge := mustEdge(t, nil, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0})

	tests := []struct {
		name     string
		area     Area
		point    mgl64.Vec2
		expected bool
	}{
		{"box center", box, mgl64.Vec2{5, 5}, true},
		{"box corner", box, mgl64.Vec2{7, 7}, true},
		{"outside box", box, mgl64.Vec2{8, 5}, false},
		{"circle rim", circle, mgl64.Vec2{0, 2}, true},
		{"outside circle", circle, mgl64.Vec2{1.5, 1.5}, false},
		{"on edge", edge, mgl64.Vec2{0.5, 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.area.Contains(tc.point); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestMomentOfInertia(t *testing.T) {
	edge := mustEdge(t, nil, mgl64.Vec2{0, 0}, mgl64.Vec2{4, 0})
	light, err := NewEdge(nil, mgl64.Vec2{0, 0}, mgl64.Vec2{4, 0}, WithDefaultMass(5))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		area     Area
		expected float64
	}{
		{"circle", mustCircle(t, NewBody("c", mgl64.Vec2{}, 2, Active), 3), 9},
		{"square", mustBox(t, NewBody("p", mgl64.Vec2{}, 12, Active), 2, 2), 8},
		{"edge default mass", edge, 40},
		{"edge custom default mass", light, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.area.MomentOfInertia(); !mgl64.FloatEqualThreshold(got, tc.expected, 1e-9) {
				t.Errorf("MomentOfInertia() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRayCast(t *testing.T) {
	circle := mustCircle(t, NewBody("c", mgl64.Vec2{10, 0}, 1, Fixed), 2)
	box := mustBox(t, NewBody("b", mgl64.Vec2{10, 0}, 1, Fixed), 4, 4)
	edge := mustEdge(t, nil, mgl64.Vec2{5, -1}, mgl64.Vec2{5, 1})
	right := core.NewRay(mgl64.Vec2{0, 0}, core.VecRight)

	tests := []struct {
		name     string
		area     Area
		ray      core.Ray
		max      float64
		hit      bool
		expected mgl64.Vec2
	}{
		{"circle hit", circle, right, 100, true, mgl64.Vec2{8, 0}},
		{"circle beyond max", circle, right, 5, false, mgl64.Vec2{}},
		{"circle miss", circle, core.NewRay(mgl64.Vec2{0, 0}, core.VecUp), 100, false, mgl64.Vec2{}},
		{"circle from inside", circle, core.NewRay(mgl64.Vec2{10, 0}, core.VecRight), 100, true, mgl64.Vec2{12, 0}},
		{"box nearest side", box, right, 100, true, mgl64.Vec2{8, 0}},
		{"box miss", box, core.NewRay(mgl64.Vec2{0, 5}, core.VecRight), 100, false, mgl64.Vec2{}},
		{"edge hit", edge, right, 100, true, mgl64.Vec2{5, 0}},
		{"edge beyond max", edge, right, 4, false, mgl64.Vec2{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.area.RayCast(tc.ray, tc.max)
			if ok != tc.hit {
				t.Fatalf("RayCast() hit = %v, expected %v", ok, tc.hit)
			}
			if ok && !got.ApproxEqualThreshold(tc.expected, 1e-9) {
				t.Errorf("RayCast() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleIgnoresRotation(t *testing.T) {
	body := NewBody("c", mgl64.Vec2{1, 1}, 1, Active)
	body.Rotation = 1.2
	c, err := NewCircle(body, mgl64.Vec2{2, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Center(); !got.ApproxEqual(mgl64.Vec2{3, 1}) {
		t.Errorf("Center() = %v, expected (3, 1)", got)
	}
}
