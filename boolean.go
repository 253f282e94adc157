package contour

import (
	"math"
)

// Boolean operations on closed regions. Both boundaries are sliced at their mutual intersection
// points, every slice is classified against the other region, the slices the operation keeps are
// stitched back into closed result polylines. Inputs that never cross are resolved by
// containment alone.

// Op selects a boolean operation for Combine.
type Op int

const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
	OpXor
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "Union"
	case OpIntersection:
		return "Intersection"
	case OpDifference:
		return "Difference"
	case OpXor:
		return "Xor"
	}
	return "Op(?)"
}

// Combine applies the boolean operation op to the closed regions bounded by a and b. Both inputs
// must be valid, closed, and free of self-intersections. Results wind counter clockwise, holes
// clockwise. Tolerance zero selects Epsilon.
func Combine(a, b View, op Op, tolerance float64) ([]*Polyline, error) {
	eps := tolerance
	if eps <= 0.0 {
		eps = Epsilon
	}
	ra, err := booleanOperand(a, eps)
	if err != nil {
		return nil, err
	}
	rb, err := booleanOperand(b, eps)
	if err != nil {
		return nil, err
	}

	subsA, subsB, crossed := sliceAtCrossings(ra, rb, eps)
	if !crossed {
		return combineDisjoint(ra, rb, op, eps), nil
	}

	keep := []Segment{}
	keep = append(keep, selectSlices(subsA, rb, op, true, eps)...)
	keep = append(keep, selectSlices(subsB, ra, op, false, eps)...)

	qs := []*Polyline{}
	for _, chain := range stitch(keep, eps) {
		if !chain[0].Start.equalsEps(chain[len(chain)-1].End, eps) {
			continue
		}
		if q := polylineFromChain(chain, true, eps); q != nil {
			qs = append(qs, q)
		}
	}
	return qs, nil
}

// Union returns the region covered by a or b.
func Union(a, b View, tolerance float64) ([]*Polyline, error) {
	return Combine(a, b, OpUnion, tolerance)
}

// Intersect returns the region covered by both a and b.
func Intersect(a, b View, tolerance float64) ([]*Polyline, error) {
	return Combine(a, b, OpIntersection, tolerance)
}

// Difference returns the region covered by a but not by b.
func Difference(a, b View, tolerance float64) ([]*Polyline, error) {
	return Combine(a, b, OpDifference, tolerance)
}

// ExclusiveOr returns the region covered by exactly one of a and b.
func ExclusiveOr(a, b View, tolerance float64) ([]*Polyline, error) {
	return Combine(a, b, OpXor, tolerance)
}

// operand is a validated, counter clockwise oriented boolean input with its segments and index.
type operand struct {
	p    *Polyline
	segs []Segment
	idx  *segmentIndex
}

// booleanOperand validates p as a boolean input and normalizes it to counter clockwise winding.
func booleanOperand(p View, eps float64) (*operand, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if !p.Closed() {
		return nil, ErrNotClosed
	}
	q := NewPolyline(true)
	q.Reserve(p.Len())
	for i := 0; i < p.Len(); i++ {
		q.AddVertex(p.At(i))
	}
	if !CCW(q) {
		InvertDirection(q)
	}
	segs := segmentsOf(q)
	idx := newSegmentListIndex(segs, eps)
	if selfIntersects(q, segs, idx, eps) {
		return nil, ErrSelfIntersecting
	}
	return &operand{q, segs, idx}, nil
}

// sliceAtCrossings splits the segments of both operands at all their mutual intersection points.
// crossed reports whether any intersection was found.
func sliceAtCrossings(a, b *operand, eps float64) ([]Segment, []Segment, bool) {
	splitsA := make([][]float64, len(a.segs))
	splitsB := make([][]float64, len(b.segs))
	crossed := false
	for i := range a.segs {
		for _, j := range b.idx.Query(a.segs[i].Bounds()) {
			zs := IntersectSegments(a.segs[i], b.segs[j], eps)
			for _, z := range zs.Points {
				crossed = true
				splitsA[i] = append(splitsA[i], z.TA)
				splitsB[j] = append(splitsB[j], z.TB)
			}
		}
	}
	if !crossed {
		return nil, nil, false
	}
	return splitSegments(a.segs, splitsA, eps), splitSegments(b.segs, splitsB, eps), true
}

// splitSegments applies per-segment split parameters, dropping slivers below tolerance.
func splitSegments(segs []Segment, splits [][]float64, eps float64) []Segment {
	out := []Segment{}
	for i, s := range segs {
		ts := splits[i]
		insertionSort(ts)
		rest := s
		t0 := 0.0
		epsT := eps / math.Max(s.Length(), eps)
		for _, t := range ts {
			if t-t0 <= epsT || 1.0-t <= epsT {
				continue
			}
			var sub Segment
			sub, rest = rest.SplitAt((t - t0) / (1.0 - t0))
			if eps < sub.Length() {
				out = append(out, sub)
			}
			t0 = t
		}
		if eps < rest.Length() {
			out = append(out, rest)
		}
	}
	return out
}

// slice classification against the other operand's region.
type sliceClass int

const (
	sliceOutside sliceClass = iota
	sliceInside
	sliceOnSame
	sliceOnOpposite
)

func classifySlice(s Segment, other *operand, eps float64) sliceClass {
	mid := s.PointAt(0.5)
	if distanceToSegments(other.segs, other.idx, mid, 2.0*eps) <= eps {
		q, i, _, _ := ClosestPoint(other.p, mid)
		otherSeg := SegmentAt(other.p, i)
		if 0.0 < s.TangentAt(0.5).Dot(otherSeg.TangentAt(otherSeg.paramAt(q))) {
			return sliceOnSame
		}
		return sliceOnOpposite
	}
	if WindingNumber(other.p, mid) != 0 {
		return sliceInside
	}
	return sliceOutside
}

// selectSlices keeps the slices of one operand that belong to the result boundary of op.
// fromA tells whether the slices come from the first operand; coincident boundary parts are kept
// from the first operand only.
func selectSlices(subs []Segment, other *operand, op Op, fromA bool, eps float64) []Segment {
	keep := []Segment{}
	for _, s := range subs {
		switch classifySlice(s, other, eps) {
		case sliceOutside:
			if op == OpUnion || op == OpXor || (op == OpDifference && fromA) {
				keep = append(keep, s)
			}
		case sliceInside:
			switch op {
			case OpIntersection:
				keep = append(keep, s)
			case OpDifference:
				if !fromA {
					keep = append(keep, s.Reverse())
				}
			case OpXor:
				keep = append(keep, s.Reverse())
			}
		case sliceOnSame:
			if fromA && (op == OpUnion || op == OpIntersection) {
				keep = append(keep, s)
			}
		case sliceOnOpposite:
			if fromA && op == OpDifference {
				keep = append(keep, s)
			}
		}
	}
	return keep
}

// combineDisjoint resolves the operation when the boundaries never meet, by containment.
func combineDisjoint(a, b *operand, op Op, eps float64) []*Polyline {
	aInB := Contains(b.p, SegmentAt(a.p, 0).PointAt(0.5))
	bInA := Contains(a.p, SegmentAt(b.p, 0).PointAt(0.5))

	inverted := func(o *operand) *Polyline {
		q := o.p.Copy()
		InvertDirection(q)
		return q
	}
	switch op {
	case OpUnion:
		if aInB {
			return []*Polyline{b.p}
		} else if bInA {
			return []*Polyline{a.p}
		}
		return []*Polyline{a.p, b.p}
	case OpIntersection:
		if aInB {
			return []*Polyline{a.p}
		} else if bInA {
			return []*Polyline{b.p}
		}
		return nil
	case OpDifference:
		if aInB {
			return nil
		} else if bInA {
			return []*Polyline{a.p, inverted(b)}
		}
		return []*Polyline{a.p}
	case OpXor:
		if aInB {
			return []*Polyline{b.p, inverted(a)}
		} else if bInA {
			return []*Polyline{a.p, inverted(b)}
		}
		return []*Polyline{a.p, b.p}
	}
	return nil
}
