package contour

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestArcRadiusCenter(t *testing.T) {
	// semicircle below the chord
	r, c := arcRadiusCenter(Vertex{0.0, 0.0, 1.0}, Vertex{2.0, 0.0, 0.0})
	test.Float(t, r, 1.0)
	test.T(t, c, Point{1.0, 0.0})

	// quarter circle
	r, c = arcRadiusCenter(Vertex{0.0, 0.0, math.Tan(math.Pi / 8.0)}, Vertex{1.0, 1.0, 0.0})
	test.Float(t, r, 1.0)
	test.T(t, c, Point{0.0, 1.0})

	// negative bulge puts the center on the other side
	r, c = arcRadiusCenter(Vertex{0.0, 0.0, -math.Tan(math.Pi / 8.0)}, Vertex{1.0, 1.0, 0.0})
	test.Float(t, r, 1.0)
	test.T(t, c, Point{1.0, 0.0})
}

func TestSegmentLine(t *testing.T) {
	s := segmentFromVertexes(Vertex{0.0, 0.0, 0.0}, Vertex{3.0, 4.0, 0.0})
	test.T(t, s.IsArc, false)
	test.Float(t, s.Length(), 5.0)
	test.T(t, s.PointAt(0.5), Point{1.5, 2.0})
	test.T(t, s.TangentAt(0.0), Point{0.6, 0.8})
	test.T(t, s.Bounds(), Rect{0.0, 0.0, 3.0, 4.0})
	test.Float(t, s.Bulge(), 0.0)
}

func TestSegmentArc(t *testing.T) {
	s := segmentFromVertexes(Vertex{0.0, 0.0, 1.0}, Vertex{2.0, 0.0, 0.0})
	test.T(t, s.IsArc, true)
	test.T(t, s.CCW(), true)
	test.Float(t, s.Radius, 1.0)
	test.Float(t, s.Sweep(), math.Pi)
	test.Float(t, s.Length(), math.Pi)
	test.Float(t, s.Bulge(), 1.0)
	test.T(t, s.PointAt(0.5), Point{1.0, -1.0})
	test.T(t, s.TangentAt(0.5), Point{1.0, 0.0})
	test.T(t, s.Bounds(), Rect{0.0, -1.0, 2.0, 1.0})

	// clockwise variant bulges upward
	s = segmentFromVertexes(Vertex{0.0, 0.0, -1.0}, Vertex{2.0, 0.0, 0.0})
	test.T(t, s.CCW(), false)
	test.Float(t, s.Bulge(), -1.0)
	test.T(t, s.PointAt(0.5), Point{1.0, 1.0})
	test.T(t, s.Bounds(), Rect{0.0, 0.0, 2.0, 1.0})
}

func TestSegmentParamAt(t *testing.T) {
	s := segmentFromVertexes(Vertex{0.0, 0.0, 1.0}, Vertex{2.0, 0.0, 0.0})
	test.Float(t, s.paramAt(Point{0.0, 0.0}), 0.0)
	test.Float(t, s.paramAt(Point{1.0, -1.0}), 0.5)
	test.Float(t, s.paramAt(Point{2.0, 0.0}), 1.0)

	l := newLine(Point{0.0, 0.0}, Point{2.0, 0.0})
	test.Float(t, l.paramAt(Point{0.5, 1.0}), 0.25)
}

func TestSegmentClosestPoint(t *testing.T) {
	s := segmentFromVertexes(Vertex{0.0, 0.0, 1.0}, Vertex{2.0, 0.0, 0.0})
	p, u := s.ClosestPoint(Point{1.0, -2.0})
	test.T(t, p, Point{1.0, -1.0})
	test.Float(t, u, 0.5)

	p, _ = s.ClosestPoint(Point{1.0, 2.0})
	test.That(t, p.Equals(s.Start) || p.Equals(s.End))

	l := newLine(Point{0.0, 0.0}, Point{2.0, 0.0})
	p, u = l.ClosestPoint(Point{0.5, 1.0})
	test.T(t, p, Point{0.5, 0.0})
	test.Float(t, u, 0.25)
	p, _ = l.ClosestPoint(Point{-1.0, 1.0})
	test.T(t, p, Point{0.0, 0.0})
}

func TestSegmentSplit(t *testing.T) {
	s := segmentFromVertexes(Vertex{0.0, 0.0, 1.0}, Vertex{2.0, 0.0, 0.0})
	s0, s1 := s.SplitAt(0.5)
	test.Float(t, s0.Length(), 0.5*math.Pi)
	test.Float(t, s1.Length(), 0.5*math.Pi)
	test.T(t, s0.End, Point{1.0, -1.0})
	test.T(t, s1.Start, Point{1.0, -1.0})
	test.Float(t, s0.Bulge(), math.Tan(math.Pi/8.0))

	l0, l1 := newLine(Point{0.0, 0.0}, Point{2.0, 0.0}).SplitAt(0.25)
	test.T(t, l0.End, Point{0.5, 0.0})
	test.T(t, l1.Start, Point{0.5, 0.0})
}

func TestSegmentReverse(t *testing.T) {
	s := segmentFromVertexes(Vertex{0.0, 0.0, 1.0}, Vertex{2.0, 0.0, 0.0})
	r := s.Reverse()
	test.T(t, r.Start, s.End)
	test.T(t, r.End, s.Start)
	test.T(t, r.CCW(), false)
	test.Float(t, r.Bulge(), -1.0)
	test.T(t, r.PointAt(0.5), Point{1.0, -1.0})
}

func TestSegmentScanner(t *testing.T) {
	p := NewPolyline(true).Add(0.0, 0.0, 0.0).Add(1.0, 0.0, 0.0).Add(1.0, 1.0, 0.0).Add(0.0, 1.0, 0.0)
	test.T(t, SegmentCount(p), 4)

	n := 0
	for scanner := Segments(p); scanner.Scan(); {
		test.T(t, scanner.Index(), n)
		s := scanner.Segment()
		test.T(t, s.Start, p.At(n).Pos())
		test.T(t, s.End, p.At((n+1)%4).Pos())
		n++
	}
	test.T(t, n, 4)

	open := NewPolyline(false).Add(0.0, 0.0, 0.0).Add(1.0, 0.0, 0.0)
	test.T(t, SegmentCount(open), 1)
}
