package contour

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestToLineString(t *testing.T) {
	open := NewPolyline(false).Add(0.0, 0.0, 0.0).Add(1.0, 0.0, 0.0).Add(1.0, 1.0, 0.0)
	ls := ToLineString(open, 0.01)
	test.T(t, len(ls), 3)
	test.T(t, ls[0], orb.Point{0.0, 0.0})
	test.T(t, ls[2], orb.Point{1.0, 1.0})

	// closed polylines repeat the first point
	square := NewPolyline(true).Add(0.0, 0.0, 0.0).Add(1.0, 0.0, 0.0).Add(1.0, 1.0, 0.0).Add(0.0, 1.0, 0.0)
	ls = ToLineString(square, 0.01)
	test.T(t, len(ls), 5)
	test.T(t, ls[4], ls[0])
}

func TestToRing(t *testing.T) {
	circle := NewPolyline(true).Add(0.0, 0.0, 1.0).Add(2.0, 0.0, 1.0)
	ring := ToRing(circle, 0.01)
	test.That(t, ring.Closed())
	for _, pt := range ring {
		test.That(t, math.Abs(Point{pt[0], pt[1]}.Sub(Point{1.0, 0.0}).Length()-1.0) <= 0.01)
	}
}

func TestFromLineString(t *testing.T) {
	p := FromLineString(orb.LineString{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1.0}})
	test.T(t, p.Closed(), false)
	test.T(t, p.Len(), 3)
	test.T(t, p.At(2), Vertex{1.0, 1.0, 0.0})
}

func TestFromRing(t *testing.T) {
	p := FromRing(orb.Ring{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1.0}, {0.0, 1.0}, {0.0, 0.0}})
	test.T(t, p.Closed(), true)
	test.T(t, p.Len(), 4)
	test.Float(t, Area(p), 1.0)

	// rings convert back with the closing point restored
	ring := ToRing(p, 0.01)
	test.T(t, len(ring), 5)
}

func TestFromPolygon(t *testing.T) {
	poly := orb.Polygon{
		{{0.0, 0.0}, {2.0, 0.0}, {2.0, 2.0}, {0.0, 2.0}, {0.0, 0.0}},
		{{0.5, 0.5}, {0.5, 1.5}, {1.5, 1.5}, {1.5, 0.5}, {0.5, 0.5}},
	}
	ps := FromPolygon(poly)
	test.T(t, len(ps), 2)
	test.Float(t, Area(ps[0]), 4.0)
	test.Float(t, Area(ps[1]), -1.0)
}
