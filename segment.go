package contour

import (
	"fmt"
	"math"
)

// Segment is a line or circular arc derived on demand from a pair of consecutive vertexes. For
// arcs the center, radius, and start/end angles are derived from the chord and bulge; an arc
// turns counter clockwise when Theta0 < Theta1 and clockwise otherwise.
type Segment struct {
	Start, End     Point
	Center         Point
	Radius         float64
	Theta0, Theta1 float64
	IsArc          bool
}

// SegmentCount returns the number of segments of the polyline, including the implicit closing
// segment for closed polylines.
func SegmentCount(p View) int {
	return segmentCountFor(p.Len(), p.Closed())
}

// SegmentAt returns segment i of the polyline, wrapping the end vertex index for closed
// polylines.
func SegmentAt(p View, i int) Segment {
	return segmentFromVertexes(p.At(i), p.At((i+1)%p.Len()))
}

// segmentFromVertexes derives the segment between two consecutive vertexes from v1's bulge.
func segmentFromVertexes(v1, v2 Vertex) Segment {
	if v1.Bulge == 0.0 {
		return Segment{Start: v1.Pos(), End: v2.Pos()}
	}
	radius, center := arcRadiusCenter(v1, v2)
	theta0 := v1.Pos().Sub(center).Angle()
	theta1 := theta0 + angleFromBulge(v1.Bulge)
	return Segment{
		Start:  v1.Pos(),
		End:    v2.Pos(),
		Center: center,
		Radius: radius,
		Theta0: theta0,
		Theta1: theta1,
		IsArc:  true,
	}
}

// arcRadiusCenter computes the radius and center of the arc from v1 to v2 defined by v1's bulge.
// The radius follows from the chord length and the sagitta, the center lies on the chord's
// perpendicular bisector on the side given by the bulge sign and magnitude.
func arcRadiusCenter(v1, v2 Vertex) (float64, Point) {
	b := math.Abs(v1.Bulge)
	chord := v2.Pos().Sub(v1.Pos())
	s := chord.Length() / 2.0
	sagitta := b * s
	radius := s * (b*b + 1.0) / (2.0 * b)

	mid := v1.Pos().Interpolate(v2.Pos(), 0.5)
	perp := chord.Rot90CCW()
	if v1.Bulge < 0.0 {
		perp = chord.Rot90CW()
	}
	// radius-sagitta is negative when the sweep exceeds PI, putting the center on the other side
	center := mid.Add(perp.Norm(radius - sagitta))
	return radius, center
}

func newLine(p0, p1 Point) Segment {
	return Segment{Start: p0, End: p1}
}

// newArc constructs an arc from center, radius, and angles; CCW when theta0 < theta1.
func newArc(center Point, radius, theta0, theta1 float64) Segment {
	return Segment{
		Start:  center.Add(Point{math.Cos(theta0), math.Sin(theta0)}.Mul(radius)),
		End:    center.Add(Point{math.Cos(theta1), math.Sin(theta1)}.Mul(radius)),
		Center: center,
		Radius: radius,
		Theta0: theta0,
		Theta1: theta1,
		IsArc:  true,
	}
}

// CCW returns true if the arc turns counter clockwise. Lines return false.
func (s Segment) CCW() bool {
	return s.IsArc && s.Theta0 < s.Theta1
}

// Sweep returns the signed included angle of an arc, zero for lines.
func (s Segment) Sweep() float64 {
	if !s.IsArc {
		return 0.0
	}
	return s.Theta1 - s.Theta0
}

// Bulge returns the bulge value encoding this segment from its start vertex.
func (s Segment) Bulge() float64 {
	if !s.IsArc {
		return 0.0
	}
	return bulgeFromAngle(s.Sweep())
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	if !s.IsArc {
		return s.End.Sub(s.Start).Length()
	}
	return s.Radius * math.Abs(s.Sweep())
}

// PointAt returns the position at parameter t in [0,1] along the segment.
func (s Segment) PointAt(t float64) Point {
	if !s.IsArc {
		return s.Start.Interpolate(s.End, t)
	}
	theta := s.Theta0 + t*(s.Theta1-s.Theta0)
	return s.Center.Add(Point{math.Cos(theta), math.Sin(theta)}.Mul(s.Radius))
}

// TangentAt returns the unit tangent direction at parameter t in [0,1].
func (s Segment) TangentAt(t float64) Point {
	if !s.IsArc {
		return s.End.Sub(s.Start).Norm(1.0)
	}
	theta := s.Theta0 + t*(s.Theta1-s.Theta0)
	d := Point{-math.Sin(theta), math.Cos(theta)}
	if !s.CCW() {
		d = d.Neg()
	}
	return d
}

// paramAt returns the parameter in [0,1] of the point p assumed to lie on the segment, clamped
// to the valid range.
func (s Segment) paramAt(p Point) float64 {
	var t float64
	if !s.IsArc {
		d := s.End.Sub(s.Start)
		t = p.Sub(s.Start).Dot(d) / d.Dot(d)
	} else {
		theta := p.Sub(s.Center).Angle()
		sweep := s.Theta1 - s.Theta0
		if 0.0 <= sweep {
			t = angleNorm(theta-s.Theta0) / sweep
		} else {
			t = -angleNorm(s.Theta0-theta) / sweep
		}
		if 1.0 < t {
			// theta lies in the gap outside the sweep, snap to the nearest end
			if math.Abs(deltaAngle(theta, s.Theta0)) <= math.Abs(deltaAngle(theta, s.Theta1)) {
				t = 0.0
			} else {
				t = 1.0
			}
		}
	}
	return math.Max(0.0, math.Min(1.0, t))
}

// ClosestPoint returns the closest point on the segment to p and its parameter.
func (s Segment) ClosestPoint(p Point) (Point, float64) {
	if !s.IsArc {
		d := s.End.Sub(s.Start)
		t := math.Max(0.0, math.Min(1.0, p.Sub(s.Start).Dot(d)/d.Dot(d)))
		return s.Start.Interpolate(s.End, t), t
	}
	if p.Equals(s.Center) {
		return s.Start, 0.0
	}
	theta := p.Sub(s.Center).Angle()
	if angleBetween(theta, s.Theta0, s.Theta1) {
		q := s.Center.Add(p.Sub(s.Center).Norm(s.Radius))
		return q, s.paramAt(q)
	}
	if p.Sub(s.Start).Length() <= p.Sub(s.End).Length() {
		return s.Start, 0.0
	}
	return s.End, 1.0
}

// Bounds returns the axis-aligned bounding box of the segment. Arc boxes are exact, including
// the bulged side past the chord.
func (s Segment) Bounds() Rect {
	r := Rect{s.Start.X, s.Start.Y, 0.0, 0.0}.AddPoint(s.End)
	if !s.IsArc {
		return r
	}
	for i, extreme := range []Point{{1.0, 0.0}, {0.0, 1.0}, {-1.0, 0.0}, {0.0, -1.0}} {
		theta := float64(i) * math.Pi / 2.0
		if angleBetween(theta, s.Theta0, s.Theta1) {
			r = r.AddPoint(s.Center.Add(extreme.Mul(s.Radius)))
		}
	}
	return r
}

// SplitAt splits the segment at parameter t in (0,1) into two segments.
func (s Segment) SplitAt(t float64) (Segment, Segment) {
	if !s.IsArc {
		mid := s.Start.Interpolate(s.End, t)
		return newLine(s.Start, mid), newLine(mid, s.End)
	}
	theta := s.Theta0 + t*(s.Theta1-s.Theta0)
	return newArc(s.Center, s.Radius, s.Theta0, theta), newArc(s.Center, s.Radius, theta, s.Theta1)
}

// Reverse returns the segment with inverted direction.
func (s Segment) Reverse() Segment {
	if !s.IsArc {
		return newLine(s.End, s.Start)
	}
	return Segment{
		Start:  s.End,
		End:    s.Start,
		Center: s.Center,
		Radius: s.Radius,
		Theta0: s.Theta1,
		Theta1: s.Theta0,
		IsArc:  true,
	}
}

func (s Segment) String() string {
	if !s.IsArc {
		return fmt.Sprintf("L%v--%v", s.Start, s.End)
	}
	return fmt.Sprintf("A%v--%v c=%v r=%g", s.Start, s.End, s.Center, s.Radius)
}

////////////////////////////////////////////////////////////////

// SegmentScanner iterates over the segments of a polyline front to back. It is restartable by
// creating a new scanner from the same view.
type SegmentScanner struct {
	p View
	i int
}

// Segments returns a scanner over the segments of the polyline.
func Segments(p View) *SegmentScanner {
	return &SegmentScanner{p: p, i: -1}
}

// Scan advances to the next segment and returns true if there is one.
func (s *SegmentScanner) Scan() bool {
	if s.i+1 < SegmentCount(s.p) {
		s.i++
		return true
	}
	return false
}

// Index returns the current segment index.
func (s *SegmentScanner) Index() int {
	return s.i
}

// Segment returns the current segment.
func (s *SegmentScanner) Segment() Segment {
	return SegmentAt(s.p, s.i)
}
