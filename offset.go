package contour

import (
	"math"
)

// Parallel offsetting. The raw offset translates every segment perpendicular to its traversal
// direction, joins the gaps that open up at vertexes, then removes the parts of the raw curve
// that ended up too close to the input. Positive distances offset to the right of the traversal
// direction, which is outward for counter clockwise closed polylines.

// Offset computes the polyline(s) at perpendicular distance d from p. A closed input yields
// closed outputs, an open input open ones. The result may be empty when the whole curve
// collapses, or contain several polylines when the offset splits apart. Tolerance zero selects
// Epsilon.
func Offset(p View, d, tolerance float64) ([]*Polyline, error) {
	eps := tolerance
	if eps <= 0.0 {
		eps = Epsilon
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	if math.Abs(d) <= eps {
		q := NewPolyline(p.Closed())
		q.Reserve(p.Len())
		for i := 0; i < p.Len(); i++ {
			q.AddVertex(p.At(i))
		}
		return []*Polyline{q}, nil
	}

	segs := segmentsOf(p)
	raw := rawOffset(p, segs, d, eps)
	if len(raw) == 0 {
		return nil, nil
	}

	subs := splitAtIntersections(raw, eps)
	idx := newSegmentIndex(p, eps)
	subs = pruneClose(subs, segs, idx, d, eps)
	if len(subs) == 0 {
		return nil, nil
	}

	qs := []*Polyline{}
	for _, chain := range stitch(subs, eps) {
		closed := chain[0].Start.equalsEps(chain[len(chain)-1].End, eps)
		if p.Closed() && !closed {
			// leftover fragment of a pruned loop
			continue
		}
		if q := polylineFromChain(chain, p.Closed() && closed, eps); q != nil {
			qs = append(qs, q)
		}
	}
	return qs, nil
}

// offsetSegment displaces a single segment by d. Arcs whose radius collapses to zero or
// inverts are dropped.
func offsetSegment(s Segment, d, eps float64) (Segment, bool) {
	if !s.IsArc {
		shift := s.End.Sub(s.Start).Norm(1.0).Rot90CW().Mul(d)
		return newLine(s.Start.Add(shift), s.End.Add(shift)), true
	}
	r := s.Radius + d
	if !s.CCW() {
		r = s.Radius - d
	}
	if r <= eps {
		return Segment{}, false
	}
	return newArc(s.Center, r, s.Theta0, s.Theta1), true
}

// filletArc bridges the gap between from and to with a circular arc of radius |d| centered on
// the original vertex. The arc turns counter clockwise for positive d.
func filletArc(from, to, center Point, d, eps float64) (Segment, bool) {
	r := math.Abs(d)
	theta0 := from.Sub(center).Angle()
	theta1 := to.Sub(center).Angle()
	if 0.0 < d {
		theta1 = theta0 + angleNorm(theta1-theta0)
	} else {
		theta1 = theta0 - angleNorm(theta0-theta1)
	}
	if math.Abs(theta1-theta0)*r <= eps {
		return Segment{}, false
	}
	arc := newArc(center, r, theta0, theta1)
	arc.Start, arc.End = from, to
	return arc, true
}

// joinRaw connects two consecutive raw offset segments around the original vertex between them.
// Coincident ends merge, truly intersecting segments are trimmed to their intersection, and
// remaining gaps are bridged by a fillet arc. It returns the connector (if any) and the two
// segments after trimming.
func joinRaw(prev, next Segment, vertex Point, d, eps float64) (Segment, bool, Segment, Segment) {
	if prev.End.equalsEps(next.Start, eps) {
		next.Start = prev.End
		return Segment{}, false, prev, next
	}
	zs := IntersectSegments(prev, next, eps)
	if zs.Kind == Crossing || zs.Kind == Tangent {
		// trim both to the intersection closest to the joint
		best := zs.Points[0]
		for _, z := range zs.Points[1:] {
			if best.TA < z.TA {
				best = z
			}
		}
		prev, _ = prev.SplitAt(best.TA)
		_, next = next.SplitAt(best.TB)
		prev.End = best.Point
		next.Start = best.Point
		return Segment{}, false, prev, next
	}
	if arc, ok := filletArc(prev.End, next.Start, vertex, d, eps); ok {
		return arc, true, prev, next
	}
	// gap too small for an arc, close it with a line
	return newLine(prev.End, next.Start), true, prev, next
}

// rawOffset offsets every segment of p by d and joins them into a connected chain.
func rawOffset(p View, segs []Segment, d, eps float64) []Segment {
	type rawSeg struct {
		seg    Segment
		vertex Point // original start vertex, fillet center when joining to the predecessor
	}
	raws := []rawSeg{}
	for i, s := range segs {
		if q, ok := offsetSegment(s, d, eps); ok {
			raws = append(raws, rawSeg{q, p.At(i).Pos()})
		}
	}
	if len(raws) == 0 {
		return nil
	}

	out := []Segment{}
	cur := raws[0].seg
	for _, r := range raws[1:] {
		connector, hasConnector, prev, next := joinRaw(cur, r.seg, r.vertex, d, eps)
		out = append(out, prev)
		if hasConnector {
			out = append(out, connector)
		}
		cur = next
	}
	if p.Closed() && 0 < len(out) {
		connector, hasConnector, prev, next := joinRaw(cur, out[0], raws[0].vertex, d, eps)
		out[0] = next
		out = append(out, prev)
		if hasConnector {
			out = append(out, connector)
		}
	} else {
		out = append(out, cur)
	}
	return out
}

// splitAtIntersections splits every segment at its intersections with all other segments,
// returning the atomic sub-segments in traversal order.
func splitAtIntersections(segs []Segment, eps float64) []Segment {
	splits := make([][]float64, len(segs))
	idx := newSegmentListIndex(segs, eps)
	for i := range segs {
		for _, j := range idx.Query(segs[i].Bounds()) {
			if j <= i {
				continue
			}
			zs := IntersectSegments(segs[i], segs[j], eps)
			for _, z := range zs.Points {
				splits[i] = append(splits[i], z.TA)
				splits[j] = append(splits[j], z.TB)
			}
		}
	}

	out := []Segment{}
	for i, s := range segs {
		ts := splits[i]
		insertionSort(ts)
		rest := s
		t0 := 0.0
		for _, t := range ts {
			if t-t0 <= eps/math.Max(s.Length(), eps) || 1.0-t <= eps/math.Max(s.Length(), eps) {
				continue
			}
			u := (t - t0) / (1.0 - t0)
			var sub Segment
			sub, rest = rest.SplitAt(u)
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

func insertionSort(ts []float64) {
	for i := 1; i < len(ts); i++ {
		for j := i; 0 < j && ts[j] < ts[j-1]; j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

// distanceToSegments returns the distance from pos to the nearest of the given segments, limited
// to candidates whose grown box the point falls in.
func distanceToSegments(segs []Segment, idx *segmentIndex, pos Point, limit float64) float64 {
	d := math.Inf(1.0)
	for _, i := range idx.QueryGrown(Rect{pos.X, pos.Y, 0.0, 0.0}, limit) {
		q, _ := segs[i].ClosestPoint(pos)
		if di := q.Sub(pos).Length(); di < d {
			d = di
		}
	}
	return d
}

// pruneClose removes sub-segments whose midpoint lies closer to the input than |d|. They belong
// to loops of the raw offset that fold back over the input.
func pruneClose(subs, input []Segment, idx *segmentIndex, d, eps float64) []Segment {
	out := subs[:0]
	for _, s := range subs {
		mid := s.PointAt(0.5)
		if distanceToSegments(input, idx, mid, math.Abs(d)+eps) < math.Abs(d)-eps {
			continue
		}
		out = append(out, s)
	}
	return out
}

// stitch connects sub-segments into chains by endpoint proximity. Chains start at the lowest
// unused segment, extend forward, and at junctions continue with the straightest turn. Open
// chains are extended backward from their start afterwards.
func stitch(subs []Segment, eps float64) [][]Segment {
	used := make([]bool, len(subs))
	next := func(end Point, tangent Point) int {
		best, bestTurn := -1, math.Inf(1.0)
		for i, s := range subs {
			if used[i] || !s.Start.equalsEps(end, eps) {
				continue
			}
			turn := math.Abs(tangent.AngleBetween(s.TangentAt(0.0)))
			if turn < bestTurn {
				best, bestTurn = i, turn
			}
		}
		return best
	}
	prev := func(start Point, tangent Point) int {
		best, bestTurn := -1, math.Inf(1.0)
		for i, s := range subs {
			if used[i] || !s.End.equalsEps(start, eps) {
				continue
			}
			turn := math.Abs(s.TangentAt(1.0).AngleBetween(tangent))
			if turn < bestTurn {
				best, bestTurn = i, turn
			}
		}
		return best
	}

	chains := [][]Segment{}
	for i := range subs {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []Segment{subs[i]}
		for {
			last := chain[len(chain)-1]
			if last.End.equalsEps(chain[0].Start, eps) {
				break
			}
			j := next(last.End, last.TangentAt(1.0))
			if j < 0 {
				break
			}
			used[j] = true
			chain = append(chain, subs[j])
		}
		if !chain[len(chain)-1].End.equalsEps(chain[0].Start, eps) {
			for {
				first := chain[0]
				j := prev(first.Start, first.TangentAt(0.0))
				if j < 0 {
					break
				}
				used[j] = true
				chain = append([]Segment{subs[j]}, chain...)
			}
		}
		chains = append(chains, chain)
	}
	return chains
}

// polylineFromChain rebuilds a vertex polyline from a connected segment chain, dropping
// repeated positions.
func polylineFromChain(chain []Segment, closed bool, eps float64) *Polyline {
	q := NewPolyline(closed)
	q.Reserve(len(chain) + 1)
	for _, s := range chain {
		n := q.Len()
		if 0 < n && q.At(n-1).Pos().equalsEps(s.Start, eps) {
			q.SetAt(n-1, Vertex{s.Start.X, s.Start.Y, s.Bulge()})
			continue
		}
		q.AddVertex(Vertex{s.Start.X, s.Start.Y, s.Bulge()})
	}
	if !closed {
		end := chain[len(chain)-1].End
		if q.Len() == 0 || !q.At(q.Len()-1).Pos().equalsEps(end, eps) {
			q.AddVertex(Vertex{end.X, end.Y, 0.0})
		}
	}
	if q.Len() < 2 {
		return nil
	}
	return q
}
