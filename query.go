package contour

import (
	"math"
)

// Area returns the signed enclosed area of a closed polyline, positive for counter clockwise
// orientation. Open polylines return zero. The shoelace formula over the chords is corrected by
// the circular segment area of each arc.
func Area(p View) float64 {
	if !p.Closed() {
		return 0.0
	}

	area2 := 0.0
	for scanner := Segments(p); scanner.Scan(); {
		s := scanner.Segment()
		area2 += s.Start.PerpDot(s.End)
		if s.IsArc {
			// circular segment area is the sector area minus the chord triangle area
			base := s.End.Sub(s.Start).Length()
			sagitta := math.Abs(s.Bulge()) * base / 2.0
			height := s.Radius - sagitta
			segArea2 := math.Abs(s.Sweep())*s.Radius*s.Radius - base*height
			if !s.CCW() {
				segArea2 = -segArea2
			}
			area2 += segArea2
		}
	}
	return area2 / 2.0
}

// CCW returns true if a closed polyline is oriented counter clockwise.
func CCW(p View) bool {
	return 0.0 <= Area(p)
}

// Length returns the total path length of the polyline.
func Length(p View) float64 {
	d := 0.0
	for scanner := Segments(p); scanner.Scan(); {
		d += scanner.Segment().Length()
	}
	return d
}

// Extents returns the bounding box of the polyline, and false if it has no segments.
func Extents(p View) (Rect, bool) {
	scanner := Segments(p)
	if !scanner.Scan() {
		return Rect{}, false
	}
	r := scanner.Segment().Bounds()
	for scanner.Scan() {
		r = r.Add(scanner.Segment().Bounds())
	}
	return r, true
}

// WindingNumber returns the number of turns a closed polyline makes around pos, positive for
// counter clockwise winding and zero if pos is outside. Open polylines return zero. The result is
// undefined when pos lies on the polyline itself.
func WindingNumber(p View, pos Point) int {
	if !p.Closed() || p.Len() < 2 {
		return 0
	}

	winding := 0
	for scanner := Segments(p); scanner.Scan(); {
		s := scanner.Segment()
		if !s.IsArc {
			winding += lineWinding(s, pos)
		} else {
			winding += arcWinding(s, pos)
		}
	}
	return winding
}

func isLeft(p0, p1, pos Point) bool {
	return 0.0 < p1.Sub(p0).PerpDot(pos.Sub(p0))
}

func isLeftOrOn(p0, p1, pos Point) bool {
	return 0.0 <= p1.Sub(p0).PerpDot(pos.Sub(p0))
}

func lineWinding(s Segment, pos Point) int {
	if s.Start.Y <= pos.Y {
		if pos.Y < s.End.Y && isLeft(s.Start, s.End, pos) {
			return 1 // upward crossing, pos left of segment
		}
	} else if s.End.Y <= pos.Y && !isLeft(s.Start, s.End, pos) {
		return -1 // downward crossing, pos right of segment
	}
	return 0
}

// arcWinding handles crossings of the arc itself rather than its chord: where the chord crossing
// test disagrees with the side of the bulge, membership of pos in the arc's disk decides.
func arcWinding(s Segment, pos Point) int {
	ccw := s.CCW()
	var left bool
	if ccw {
		left = isLeft(s.Start, s.End, pos)
	} else {
		left = isLeftOrOn(s.Start, s.End, pos)
	}
	inDisk := func() bool {
		d := pos.Sub(s.Center)
		return d.Dot(d) < s.Radius*s.Radius
	}

	if s.Start.Y <= pos.Y {
		if pos.Y < s.End.Y {
			// upward chord crossing
			if ccw {
				if left || inDisk() {
					return 1
				}
			} else if left && !inDisk() {
				return 1
			}
		} else {
			// chord below pos, the bulge may still reach around it
			if ccw && !left && s.End.X < pos.X && pos.X < s.Start.X && inDisk() {
				return 1
			} else if !ccw && left && s.Start.X < pos.X && pos.X < s.End.X && inDisk() {
				return -1
			}
		}
	} else if s.End.Y <= pos.Y {
		// downward chord crossing
		if ccw {
			if !left && !inDisk() {
				return -1
			}
		} else if left {
			if inDisk() {
				return -1
			}
		} else {
			return -1
		}
	} else {
		// chord above pos
		if ccw && !left && s.Start.X < pos.X && pos.X < s.End.X && inDisk() {
			return 1
		} else if !ccw && left && s.End.X < pos.X && pos.X < s.Start.X && inDisk() {
			return -1
		}
	}
	return 0
}

// Contains returns true if pos lies inside the closed polyline (non-zero winding).
func Contains(p View, pos Point) bool {
	return WindingNumber(p, pos) != 0
}

// ClosestPoint returns the closest point on the polyline to pos, the index of the segment it
// lies on, and the distance. It returns false if the polyline has no segments.
func ClosestPoint(p View, pos Point) (Point, int, float64, bool) {
	found := false
	var closest Point
	index := 0
	dist := math.Inf(1.0)
	for scanner := Segments(p); scanner.Scan(); {
		q, _ := scanner.Segment().ClosestPoint(pos)
		if d := q.Sub(pos).Length(); d < dist {
			closest, index, dist = q, scanner.Index(), d
			found = true
		}
	}
	return closest, index, dist, found
}

// Flatten returns a polyline with all arcs approximated by line segments that deviate at most
// errorDistance from the arc.
func Flatten(p View, errorDistance float64) *Polyline {
	q := &Polyline{closed: p.Closed()}
	if p.Len() == 0 {
		return q
	}
	errorDistance = math.Abs(errorDistance)
	if errorDistance < Epsilon {
		errorDistance = Epsilon
	}

	for scanner := Segments(p); scanner.Scan(); {
		s := scanner.Segment()
		if !s.IsArc || s.Radius <= errorDistance {
			q.Add(s.Start.X, s.Start.Y, 0.0)
			continue
		}
		sweep := math.Abs(s.Sweep())
		subAngle := 2.0 * math.Acos(1.0-errorDistance/s.Radius)
		n := math.Ceil(sweep / subAngle)
		q.Add(s.Start.X, s.Start.Y, 0.0)
		for i := 1; i < int(n); i++ {
			pos := s.PointAt(float64(i) / n)
			q.Add(pos.X, pos.Y, 0.0)
		}
	}
	if !p.Closed() {
		last := p.At(p.Len() - 1)
		q.Add(last.X, last.Y, 0.0)
	}
	return q
}
