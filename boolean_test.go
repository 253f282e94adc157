package contour

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func unitSquare(x, y, w float64) *Polyline {
	return NewPolyline(true).Add(x, y, 0.0).Add(x+w, y, 0.0).Add(x+w, y+w, 0.0).Add(x, y+w, 0.0)
}

func totalArea(ps []*Polyline) float64 {
	area := 0.0
	for _, p := range ps {
		area += Area(p)
	}
	return area
}

func TestCombineIdentical(t *testing.T) {
	a := unitSquare(0.0, 0.0, 1.0)

	qs, err := Union(a, a, 0.0)
	test.Error(t, err)
	test.Float(t, totalArea(qs), 1.0)

	qs, err = Intersect(a, a, 0.0)
	test.Error(t, err)
	test.Float(t, totalArea(qs), 1.0)

	qs, err = Difference(a, a, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 0)

	qs, err = ExclusiveOr(a, a, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 0)
}

func TestCombineOverlapping(t *testing.T) {
	a := unitSquare(0.0, 0.0, 1.0)
	b := unitSquare(0.5, 0.5, 1.0)

	qs, err := Union(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.T(t, qs[0].Closed(), true)
	test.Float(t, Area(qs[0]), 1.75)

	qs, err = Intersect(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.T(t, qs[0].Len(), 4)
	test.Float(t, Area(qs[0]), 0.25)
	test.T(t, Contains(qs[0], Point{0.75, 0.75}), true)

	qs, err = Difference(a, b, 0.0)
	test.Error(t, err)
	test.Float(t, totalArea(qs), 0.75)

	qs, err = ExclusiveOr(a, b, 0.0)
	test.Error(t, err)
	test.Float(t, totalArea(qs), 1.5)
}

func TestCombineDisjoint(t *testing.T) {
	a := unitSquare(0.0, 0.0, 1.0)
	b := unitSquare(3.0, 0.0, 1.0)

	qs, err := Union(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 2)
	test.Float(t, totalArea(qs), 2.0)

	qs, err = Intersect(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 0)

	qs, err = Difference(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), 1.0)

	qs, err = ExclusiveOr(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 2)
}

func TestCombineNested(t *testing.T) {
	a := unitSquare(0.0, 0.0, 2.0)
	b := unitSquare(0.5, 0.5, 1.0)

	qs, err := Union(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), 4.0)

	qs, err = Intersect(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), 1.0)

	// the subtrahend becomes a clockwise hole
	qs, err = Difference(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 2)
	test.Float(t, totalArea(qs), 3.0)
	test.That(t, Area(qs[1]) < 0.0)

	qs, err = ExclusiveOr(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 2)
	test.Float(t, totalArea(qs), 3.0)
}

func TestCombineSharedEdge(t *testing.T) {
	a := unitSquare(0.0, 0.0, 2.0)
	b := unitSquare(1.0, 0.0, 2.0)

	qs, err := Union(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), 6.0)

	qs, err = Intersect(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.T(t, qs[0].Len(), 4)
	test.Float(t, Area(qs[0]), 2.0)

	qs, err = Difference(a, b, 0.0)
	test.Error(t, err)
	test.Float(t, totalArea(qs), 2.0)
}

func TestCombineCircles(t *testing.T) {
	a := NewPolyline(true).Add(-1.0, 0.0, 1.0).Add(1.0, 0.0, 1.0)
	b := NewPolyline(true).Add(0.0, 0.0, 1.0).Add(2.0, 0.0, 1.0)
	lens := 2.0*math.Pi/3.0 - math.Sqrt(3.0)/2.0

	qs, err := Union(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), 2.0*math.Pi-lens)

	qs, err = Intersect(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), lens)

	qs, err = Difference(a, b, 0.0)
	test.Error(t, err)
	test.Float(t, totalArea(qs), math.Pi-lens)
}

func TestCombineOrientation(t *testing.T) {
	// operands are normalized, a clockwise input gives the same result
	a := unitSquare(0.0, 0.0, 1.0)
	b := unitSquare(0.5, 0.5, 1.0)
	InvertDirection(b)
	test.T(t, CCW(b), false)

	qs, err := Union(a, b, 0.0)
	test.Error(t, err)
	test.T(t, len(qs), 1)
	test.Float(t, Area(qs[0]), 1.75)
}

func TestCombineInvalid(t *testing.T) {
	square := unitSquare(0.0, 0.0, 1.0)

	open := NewPolyline(false).Add(0.0, 0.0, 0.0).Add(1.0, 0.0, 0.0).Add(1.0, 1.0, 0.0)
	_, err := Union(square, open, 0.0)
	test.That(t, errors.Is(err, ErrNotClosed))

	bowtie := NewPolyline(true).Add(0.0, 0.0, 0.0).Add(1.0, 1.0, 0.0).Add(1.0, 0.0, 0.0).Add(0.0, 1.0, 0.0)
	_, err = Union(bowtie, square, 0.0)
	test.That(t, errors.Is(err, ErrSelfIntersecting))

	_, err = Union(NewPolyline(true).Add(0.0, 0.0, 0.0), square, 0.0)
	test.That(t, errors.Is(err, ErrTooFewVertexes))
}
