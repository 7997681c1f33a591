package collision

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

func box(t *testing.T, id string, ct CollisionType, x, y, w, h float64) (*Body, *Polygon) {
	t.Helper()
	b := NewBody(id, mgl64.Vec2{x, y}, 1, ct)
	return b, mustBox(t, b, w, h)
}

func collidePair(t *testing.T, a, b Area) *Pair {
	t.Helper()
	c, err := Collide(a, b)
	if err != nil {
		t.Fatalf("Collide() error: %v", err)
	}
	if c == nil {
		t.Fatal("Collide() = nil, expected contact")
	}
	p, err := NewPair(c)
	if err != nil {
		t.Fatalf("NewPair() error: %v", err)
	}
	return p
}

func TestActiveAgainstFixed(t *testing.T) {
	player, pa := box(t, "player", Active, 0, 0, 10, 10)
	player.Vel = mgl64.Vec2{5, 0}
	wall, wa := box(t, "wall", Fixed, 10, 0, 10, 10)

	if c, err := Collide(pa, wa); err != nil || c != nil {
		t.Fatalf("touching boxes: Collide() = %v, %v, expected nil, nil", c, err)
	}

	wall.Pos = mgl64.Vec2{9, 0}
	p := collidePair(t, pa, wa)
	if p.Side != core.SideRight {
		t.Errorf("Side = %v, expected right", p.Side)
	}
	if !p.Intersect.ApproxEqual(mgl64.Vec2{-1, 0}) {
		t.Errorf("Intersect = %v, expected (-1, 0)", p.Intersect)
	}

	p.Evaluate()
	if !player.Pos.ApproxEqual(mgl64.Vec2{-1, 0}) {
		t.Errorf("player.Pos = %v, expected (-1, 0)", player.Pos)
	}
	if !player.Vel.ApproxEqual(mgl64.Vec2{0, 0}) {
		t.Errorf("player.Vel = %v, expected (0, 0)", player.Vel)
	}
	if !wall.Pos.ApproxEqual(mgl64.Vec2{9, 0}) {
		t.Errorf("wall moved to %v", wall.Pos)
	}
}

func TestResolveByCollisionType(t *testing.T) {
	tests := []struct {
		name               string
		left, right        CollisionType
		leftVel, rightVel  mgl64.Vec2
		leftPos, rightPos  mgl64.Vec2
		leftWant, rightWnt mgl64.Vec2
	}{
		{
			name: "fixed pair does not move",
			left: Fixed, right: Fixed,
			leftVel: mgl64.Vec2{1, 0}, rightVel: mgl64.Vec2{-1, 0},
			leftPos: mgl64.Vec2{0, 0}, rightPos: mgl64.Vec2{8, 0},
			leftWant: mgl64.Vec2{1, 0}, rightWnt: mgl64.Vec2{-1, 0},
		},
		{
			name: "active pair splits displacement",
			left: Active, right: Active,
			leftVel: mgl64.Vec2{5, 0}, rightVel: mgl64.Vec2{-3, 0},
			leftPos: mgl64.Vec2{-1, 0}, rightPos: mgl64.Vec2{9, 0},
			leftWant: mgl64.Vec2{0, 0}, rightWnt: mgl64.Vec2{0, 0},
		},
		{
			name: "active chasing keeps slower speed",
			left: Active, right: Active,
			leftVel: mgl64.Vec2{5, 1}, rightVel: mgl64.Vec2{2, 0},
			leftPos: mgl64.Vec2{-1, 0}, rightPos: mgl64.Vec2{9, 0},
			leftWant: mgl64.Vec2{2, 1}, rightWnt: mgl64.Vec2{2, 0},
		},
		{
			name: "passive neither moves nor blocks",
			left: Active, right: Passive,
			leftVel: mgl64.Vec2{5, 0}, rightVel: mgl64.Vec2{0, 0},
			leftPos: mgl64.Vec2{0, 0}, rightPos: mgl64.Vec2{8, 0},
			leftWant: mgl64.Vec2{5, 0}, rightWnt: mgl64.Vec2{0, 0},
		},
		{
			name: "elastic bounces off fixed",
			left: Elastic, right: Fixed,
			leftVel: mgl64.Vec2{4, 3}, rightVel: mgl64.Vec2{0, 0},
			leftPos: mgl64.Vec2{-2, 0}, rightPos: mgl64.Vec2{8, 0},
			leftWant: mgl64.Vec2{-4, 3}, rightWnt: mgl64.Vec2{0, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, la := box(t, "left", tc.left, 0, 0, 10, 10)
			r, ra := box(t, "right", tc.right, 8, 0, 10, 10)
			l.Vel, r.Vel = tc.leftVel, tc.rightVel

			collidePair(t, la, ra).Evaluate()

			if !l.Pos.ApproxEqual(tc.leftPos) {
				t.Errorf("left.Pos = %v, expected %v", l.Pos, tc.leftPos)
			}
			if !r.Pos.ApproxEqual(tc.rightPos) {
				t.Errorf("right.Pos = %v, expected %v", r.Pos, tc.rightPos)
			}
			if !l.Vel.ApproxEqual(tc.leftWant) {
				t.Errorf("left.Vel = %v, expected %v", l.Vel, tc.leftWant)
			}
			if !r.Vel.ApproxEqual(tc.rightWnt) {
				t.Errorf("right.Vel = %v, expected %v", r.Vel, tc.rightWnt)
			}
		})
	}
}

func TestElasticLandsOnFloor(t *testing.T) {
	ball, ba := box(t, "ball", Elastic, 0, 0, 10, 10)
	ball.Vel = mgl64.Vec2{0, 10}
	_, fa := box(t, "floor", Fixed, 0, 9, 100, 10)

	p := collidePair(t, ba, fa)
	if p.Side != core.SideBottom {
		t.Fatalf("Side = %v, expected bottom", p.Side)
	}
	p.Evaluate()

	if !ball.Pos.ApproxEqual(mgl64.Vec2{0, -1}) {
		t.Errorf("ball.Pos = %v, expected (0, -1)", ball.Pos)
	}
	if !ball.Vel.ApproxEqual(mgl64.Vec2{0, -10}) {
		t.Errorf("ball.Vel = %v, expected (0, -10)", ball.Vel)
	}
}

func TestEvaluateEmitsEventsBeforeResolution(t *testing.T) {
	player, pa := box(t, "player", Active, 0, 0, 10, 10)
	coin, ca := box(t, "coin", Fixed, 9, 0, 10, 10)

	var order []string
	player.OnCollision(func(ev CollisionEvent) {
		order = append(order, "player")
		if ev.Self != player || ev.Other != coin {
			t.Errorf("player event has Self=%v Other=%v", ev.Self, ev.Other)
		}
		if ev.Side != core.SideRight || !ev.Intersect.ApproxEqual(mgl64.Vec2{-1, 0}) {
			t.Errorf("player event side=%v intersect=%v", ev.Side, ev.Intersect)
		}
		if !player.Pos.ApproxEqual(mgl64.Vec2{0, 0}) {
			t.Errorf("player already moved to %v when notified", player.Pos)
		}
	})
	coin.OnCollision(func(ev CollisionEvent) {
		order = append(order, "coin")
		if ev.Side != core.SideLeft || !ev.Intersect.ApproxEqual(mgl64.Vec2{1, 0}) {
			t.Errorf("coin event side=%v intersect=%v", ev.Side, ev.Intersect)
		}
	})

	collidePair(t, pa, ca).Evaluate()

	if len(order) != 2 || order[0] != "player" || order[1] != "coin" {
		t.Errorf("event order = %v, expected [player coin]", order)
	}
}

func TestNewPairWithoutBody(t *testing.T) {
	a := mustBox(t, nil, 10, 10)
	_, b := box(t, "b", Fixed, 5, 0, 10, 10)

	c, err := Collide(a, b)
	if err != nil || c == nil {
		t.Fatalf("Collide() = %v, %v, expected contact", c, err)
	}
	if _, err := NewPair(c); !errors.Is(err, ErrNoBody) {
		t.Errorf("NewPair() error = %v, expected ErrNoBody", err)
	}
}

func TestPairEquals(t *testing.T) {
	a, b, c := at("a", 0, 0), at("b", 0, 0), at("c", 0, 0)
	ab := &Pair{Left: a, Right: b}

	if !ab.Equals(&Pair{Left: b, Right: a}) {
		t.Error("pair should equal its mirror")
	}
	if ab.Equals(&Pair{Left: a, Right: c}) {
		t.Error("pairs with different bodies should differ")
	}
	if ab.Equals(nil) {
		t.Error("pair should not equal nil")
	}
}

func TestCancelAxis(t *testing.T) {
	tests := []struct {
		self, other, expected float64
	}{
		{5, 0, 0},
		{5, 2, 2},
		{2, 5, 2},
		{-5, -2, -2},
		{-2, -5, -2},
		{5, -3, 0},
		{-3, 5, 0},
		{0, 0, 0},
	}

	for _, tc := range tests {
		if got := cancelAxis(tc.self, tc.other); got != tc.expected {
			t.Errorf("cancelAxis(%v, %v) = %v, expected %v", tc.self, tc.other, got, tc.expected)
		}
	}
}
