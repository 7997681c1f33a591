package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Line is a segment between two world points.
type Line struct {
	Begin, End mgl64.Vec2
}

// NewLine creates a segment from begin to end.
func NewLine(begin, end mgl64.Vec2) Line {
	return Line{Begin: begin, End: end}
}

// Slope returns the unit direction from Begin to End.
func (l Line) Slope() mgl64.Vec2 {
	return Normalize(l.End.Sub(l.Begin))
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return Distance(l.Begin, l.End)
}

// Ray is a half-line starting at Pos travelling along the unit vector Dir.
type Ray struct {
	Pos mgl64.Vec2
	Dir mgl64.Vec2
}

// NewRay creates a ray; dir is normalized.
func NewRay(pos, dir mgl64.Vec2) Ray {
	return Ray{Pos: pos, Dir: Normalize(dir)}
}

// Point returns the point at parametric distance t along the ray.
func (r Ray) Point(t float64) mgl64.Vec2 {
	return r.Pos.Add(r.Dir.Mul(t))
}

// Intersect returns the parametric distance along the ray at which it
// crosses the segment, or -1 if it never does. Parallel rays never hit.
func (r Ray) Intersect(line Line) float64 {
	length := line.Length()
	if length < Epsilon {
		return -1
	}
	slope := line.Slope()
	numerator := line.Begin.Sub(r.Pos)

	divisor := Cross(r.Dir, slope)
	if math.Abs(divisor) < Epsilon {
		return -1
	}

	t := Cross(numerator, slope) / divisor
	if t < 0 {
		return -1
	}
	u := Cross(numerator, r.Dir) / divisor / length
	if u < 0 || u > 1 {
		return -1
	}
	return t
}

// Projection is the interval covered by a shape projected onto an axis.
type Projection struct {
	Min, Max float64
}

// NewProjection creates a projection interval.
func NewProjection(min, max float64) Projection {
	return Projection{Min: min, Max: max}
}

// ProjectPoints projects every point onto axis.
func ProjectPoints(points []mgl64.Vec2, axis mgl64.Vec2) Projection {
	p := Projection{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, pt := range points {
		d := pt.Dot(axis)
		p.Min = math.Min(p.Min, d)
		p.Max = math.Max(p.Max, d)
	}
	return p
}

// Overlaps reports whether the intervals share more than an endpoint.
func (p Projection) Overlaps(other Projection) bool {
	return p.Max > other.Min && other.Max > p.Min
}

// Overlap returns the shortest distance one interval must move along the
// axis to stop overlapping the other. Zero or negative means separated
// (zero is exactly touching).
func (p Projection) Overlap(other Projection) float64 {
	return math.Min(p.Max-other.Min, other.Max-p.Min)
}
