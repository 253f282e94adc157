package contour

import (
	"github.com/paulmach/orb"
)

// Conversion to and from orb geometries. Arcs have no orb representation and are flattened to
// line segments within errorDistance before conversion.

// ToLineString flattens p into an orb.LineString.
func ToLineString(p View, errorDistance float64) orb.LineString {
	q := Flatten(p, errorDistance)
	ls := make(orb.LineString, 0, q.Len()+1)
	for i := 0; i < q.Len(); i++ {
		v := q.At(i)
		ls = append(ls, orb.Point{v.X, v.Y})
	}
	if q.Closed() && 0 < len(ls) {
		ls = append(ls, ls[0])
	}
	return ls
}

// ToRing flattens a closed polyline into an orb.Ring, oriented as p is.
func ToRing(p View, errorDistance float64) orb.Ring {
	return orb.Ring(ToLineString(p, errorDistance))
}

// FromLineString converts an orb.LineString into an open polyline.
func FromLineString(ls orb.LineString) *Polyline {
	p := NewPolyline(false)
	p.Reserve(len(ls))
	for _, pt := range ls {
		p.Add(pt[0], pt[1], 0.0)
	}
	return p
}

// FromRing converts an orb.Ring into a closed polyline, dropping the repeated closing point.
func FromRing(r orb.Ring) *Polyline {
	p := NewPolyline(true)
	p.Reserve(len(r))
	for i, pt := range r {
		if i == len(r)-1 && 1 < len(r) && pt == r[0] {
			break
		}
		p.Add(pt[0], pt[1], 0.0)
	}
	return p
}

// FromPolygon converts an orb.Polygon into one closed polyline per ring.
func FromPolygon(poly orb.Polygon) []*Polyline {
	ps := make([]*Polyline, 0, len(poly))
	for _, r := range poly {
		ps = append(ps, FromRing(r))
	}
	return ps
}
