package contour

import (
	"fmt"
	"math"
	"sort"
)

// Segment pair intersection with tolerant classification. Every pair resolves to one of four
// outcomes: no intersection, a crossing at one or two transversal points, a tangent touch at a
// single point without crossing, or a coincident overlap over a shared sub-range. Degenerate
// configurations never fail, they classify.

// IntersectionKind classifies the intersection between two segments.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	Crossing
	Tangent
	Coincident
)

func (k IntersectionKind) String() string {
	switch k {
	case Crossing:
		return "Crossing"
	case Tangent:
		return "Tangent"
	case Coincident:
		return "Coincident"
	}
	return "None"
}

// Intersection is a single intersection point with its parameters along both segments.
type Intersection struct {
	Point
	TA, TB float64
}

func (z Intersection) String() string {
	return fmt.Sprintf("%v t={%g,%g}", z.Point, z.TA, z.TB)
}

// Intersections is the classified result of intersecting two segments. For Crossing it holds one
// or two points, for Tangent exactly one, and for Coincident the two end points of the shared
// sub-range together with the parameter spans along both segments.
type Intersections struct {
	Kind         IntersectionKind
	Points       []Intersection
	SpanA, SpanB [2]float64
}

// IntersectSegments intersects two segments with tolerance eps.
func IntersectSegments(a, b Segment, eps float64) Intersections {
	if eps <= 0.0 {
		eps = Epsilon
	}
	if !a.IsArc && !b.IsArc {
		return intersectLineLine(a, b, eps)
	} else if !a.IsArc {
		return intersectLineArc(a, b, eps, false)
	} else if !b.IsArc {
		return intersectLineArc(b, a, eps, true)
	}
	return intersectArcArc(a, b, eps)
}

func (zs *Intersections) add(pos Point, ta, tb float64) {
	ta = math.Max(0.0, math.Min(1.0, ta))
	tb = math.Max(0.0, math.Min(1.0, tb))
	zs.Points = append(zs.Points, Intersection{pos, ta, tb})
}

// finishCoincident sorts the collected overlap points along a and fills the spans. A zero-length
// overlap downgrades to a tangent touch, and shared end points without a shared range between
// them (possible for arcs on the same circle) downgrade to plain crossings.
func (zs *Intersections) finishCoincident(a, b Segment, eps float64) {
	if len(zs.Points) == 0 {
		zs.Kind = NoIntersection
		return
	}
	sort.SliceStable(zs.Points, func(i, j int) bool {
		return zs.Points[i].TA < zs.Points[j].TA
	})
	first, last := zs.Points[0], zs.Points[len(zs.Points)-1]
	if first.Point.equalsEps(last.Point, eps) || (last.TA-first.TA)*a.Length() <= eps {
		zs.Kind = Tangent
		zs.Points = zs.Points[:1]
		return
	}
	mid := a.PointAt(0.5 * (first.TA + last.TA))
	if q, _ := b.ClosestPoint(mid); eps < q.Sub(mid).Length() {
		zs.Kind = Crossing
		zs.Points = []Intersection{first, last}
		return
	}
	zs.Kind = Coincident
	zs.Points = []Intersection{first, last}
	zs.SpanA = [2]float64{first.TA, last.TA}
	zs.SpanB = [2]float64{first.TB, last.TB}
	if zs.SpanB[1] < zs.SpanB[0] {
		zs.SpanB = [2]float64{zs.SpanB[1], zs.SpanB[0]}
	}
}

// http://www.cs.swan.ac.uk/~cssimon/line_intersection.html
func intersectLineLine(a, b Segment, eps float64) Intersections {
	zs := Intersections{}
	da := a.End.Sub(a.Start)
	db := b.End.Sub(b.Start)
	lenA, lenB := da.Length(), db.Length()
	if lenA <= eps || lenB <= eps {
		return zs
	}

	div := da.PerpDot(db)
	if math.Abs(div) <= eps*lenA*lenB {
		// parallel
		if math.Abs(da.PerpDot(b.Start.Sub(a.Start))) <= eps*lenA {
			// collinear, collect the end points that lie on the other segment
			for _, p := range []Point{a.Start, a.End} {
				q, t := b.ClosestPoint(p)
				if q.Sub(p).Length() <= eps {
					zs.add(p, a.paramAt(p), t)
				}
			}
			for _, p := range []Point{b.Start, b.End} {
				q, t := a.ClosestPoint(p)
				if q.Sub(p).Length() <= eps {
					zs.add(p, t, b.paramAt(p))
				}
			}
			zs.finishCoincident(a, b, eps)
		}
		return zs
	}

	ta := db.PerpDot(a.Start.Sub(b.Start)) / div
	tb := da.PerpDot(a.Start.Sub(b.Start)) / div
	if Interval(ta, -eps/lenA, 1.0+eps/lenA) && Interval(tb, -eps/lenB, 1.0+eps/lenB) {
		zs.Kind = Crossing
		zs.add(a.Start.Interpolate(a.End, ta), ta, tb)
	}
	return zs
}

// http://mathworld.wolfram.com/Circle-LineIntersection.html
func intersectionRayCircle(l0, l1, c Point, r float64) (Point, Point, bool) {
	d := l1.Sub(l0).Norm(1.0) // along line direction, anchored in l0, its length is 1
	D := l0.Sub(c).PerpDot(d)
	discriminant := r*r - D*D
	if discriminant < 0 {
		return Point{}, Point{}, false
	}
	discriminant = math.Sqrt(discriminant)

	ax := D * d.Y
	bx := d.X * discriminant
	if d.Y < 0.0 {
		bx = -bx
	}
	ay := -D * d.X
	by := math.Abs(d.Y) * discriminant
	return c.Add(Point{ax + bx, ay + by}), c.Add(Point{ax - bx, ay - by}), true
}

// https://math.stackexchange.com/questions/256100/how-can-i-find-the-points-at-which-two-circles-intersect
func intersectionCircleCircle(c0 Point, r0 float64, c1 Point, r1 float64) (Point, Point, bool) {
	R := c0.Sub(c1).Length()
	if R < math.Abs(r0-r1) || r0+r1 < R || c0.Equals(c1) {
		return Point{}, Point{}, false
	}
	R2 := R * R

	k := r0*r0 - r1*r1
	a := 0.5
	b := 0.5 * k / R2
	c := 0.5 * math.Sqrt(2.0*(r0*r0+r1*r1)/R2-k*k/(R2*R2)-1.0)

	i0 := c0.Add(c1).Mul(a)
	i1 := c1.Sub(c0).Mul(b)
	i2 := Point{c1.Y - c0.Y, c0.X - c1.X}.Mul(c)
	return i0.Add(i1).Add(i2), i0.Add(i1).Sub(i2), true
}

// intersectLineArc intersects line a with arc b. When swapped the caller passed them in reverse
// order and the parameters are swapped back in the result.
func intersectLineArc(line, arc Segment, eps float64, swapped bool) Intersections {
	zs := Intersections{}
	da := line.End.Sub(line.Start)
	lenA := da.Length()
	if lenA <= eps {
		return zs
	}

	// distance from the circle center to the infinite line decides tangency
	D := math.Abs(line.Start.Sub(arc.Center).PerpDot(da.Norm(1.0)))
	tangent := math.Abs(D-arc.Radius) <= eps

	p0, p1, ok := intersectionRayCircle(line.Start, line.End, arc.Center, arc.Radius)
	if !ok && tangent {
		// grazing pass just outside the circle, project the closest point onto it
		p0 = arc.Center.Add(line.Start.Add(da.Mul(line.dotParam(arc.Center))).Sub(arc.Center).Norm(arc.Radius))
		p1 = p0
		ok = true
	}
	if !ok {
		return zs
	}

	candidates := []Point{p0}
	if !tangent && !p0.equalsEps(p1, eps) {
		candidates = append(candidates, p1)
	}
	for _, p := range candidates {
		t := line.dotParam(p)
		if !Interval(t, -eps/lenA, 1.0+eps/lenA) {
			continue
		}
		theta := p.Sub(arc.Center).Angle()
		if !angleBetween(theta, arc.Theta0, arc.Theta1) && !onArcEnd(p, arc, eps) {
			continue
		}
		if swapped {
			zs.add(p, arc.paramAt(p), t)
		} else {
			zs.add(p, t, arc.paramAt(p))
		}
	}
	if len(zs.Points) == 0 {
		return zs
	}
	if tangent {
		zs.Kind = Tangent
		zs.Points = zs.Points[:1]
	} else {
		zs.Kind = Crossing
	}
	return zs
}

// dotParam returns the unclamped parameter of the projection of p onto the line segment.
func (s Segment) dotParam(p Point) float64 {
	d := s.End.Sub(s.Start)
	return p.Sub(s.Start).Dot(d) / d.Dot(d)
}

func onArcEnd(p Point, arc Segment, eps float64) bool {
	return p.equalsEps(arc.Start, eps) || p.equalsEps(arc.End, eps)
}

func intersectArcArc(a, b Segment, eps float64) Intersections {
	zs := Intersections{}
	if a.Center.equalsEps(b.Center, eps) && equalEps(a.Radius, b.Radius, eps) {
		// same circle, collect the end points lying on the other arc
		for _, p := range []Point{a.Start, a.End} {
			q, t := b.ClosestPoint(p)
			if q.Sub(p).Length() <= eps {
				zs.add(p, a.paramAt(p), t)
			}
		}
		for _, p := range []Point{b.Start, b.End} {
			q, t := a.ClosestPoint(p)
			if q.Sub(p).Length() <= eps {
				zs.add(p, t, b.paramAt(p))
			}
		}
		zs.finishCoincident(a, b, eps)
		return zs
	}

	R := a.Center.Sub(b.Center).Length()
	tangent := math.Abs(R-(a.Radius+b.Radius)) <= eps || math.Abs(R-math.Abs(a.Radius-b.Radius)) <= eps
	p0, p1, ok := intersectionCircleCircle(a.Center, a.Radius, b.Center, b.Radius)
	if !ok && tangent {
		// externally or internally tangent circles just out of reach
		dir := b.Center.Sub(a.Center).Norm(1.0)
		if R < math.Abs(a.Radius-b.Radius) && b.Radius < a.Radius {
			dir = dir.Neg() // b nested inside a, touch on the near side
		}
		p0 = a.Center.Add(dir.Mul(a.Radius))
		if R < math.Abs(a.Radius-b.Radius) && a.Radius < b.Radius {
			p0 = b.Center.Add(a.Center.Sub(b.Center).Norm(b.Radius))
		}
		p1 = p0
		ok = true
	}
	if !ok {
		return zs
	}

	candidates := []Point{p0}
	if !tangent && !p0.equalsEps(p1, eps) {
		candidates = append(candidates, p1)
	}
	for _, p := range candidates {
		thetaA := p.Sub(a.Center).Angle()
		thetaB := p.Sub(b.Center).Angle()
		if (!angleBetween(thetaA, a.Theta0, a.Theta1) && !onArcEnd(p, a, eps)) ||
			(!angleBetween(thetaB, b.Theta0, b.Theta1) && !onArcEnd(p, b, eps)) {
			continue
		}
		zs.add(p, a.paramAt(p), b.paramAt(p))
	}
	if len(zs.Points) == 0 {
		return zs
	}
	if tangent {
		zs.Kind = Tangent
		zs.Points = zs.Points[:1]
	} else {
		zs.Kind = Crossing
	}
	return zs
}
