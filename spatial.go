package contour

import (
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
)

// Broad phase over segment bounding boxes. Candidate pairs from the index are refined by the
// exact predicates afterwards, the index itself only has to be conservative.

// segmentBox ties a segment index to its grown bounding box. The tree requires its entries to
// implement geom.Geom, which segmentBox delegates to the box.
type segmentBox struct {
	index  int
	bounds *geom.Bounds
}

func (b *segmentBox) Bounds() *geom.Bounds {
	return b.bounds
}

func (b *segmentBox) Len() int {
	return b.bounds.Len()
}

func (b *segmentBox) Points() func() geom.Point {
	return b.bounds.Points()
}

func (b *segmentBox) Similar(g geom.Geom, tolerance float64) bool {
	q, ok := g.(*segmentBox)
	return ok && b.index == q.index && b.bounds.Similar(q.bounds, tolerance)
}

func (b *segmentBox) Transform(t proj.Transformer) (geom.Geom, error) {
	return b.bounds.Transform(t)
}

func boundsOf(r Rect, grow float64) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: r.X - grow, Y: r.Y - grow},
		Max: geom.Point{X: r.X + r.W + grow, Y: r.Y + r.H + grow},
	}
}

// segmentIndex is an R-tree over the segments of a polyline.
type segmentIndex struct {
	tree *rtree.Rtree
	n    int
}

// newSegmentIndex indexes every segment of p, each box grown by eps so that queries catch
// touches within tolerance.
func newSegmentIndex(p View, eps float64) *segmentIndex {
	return newSegmentListIndex(segmentsOf(p), eps)
}

func newSegmentListIndex(segs []Segment, eps float64) *segmentIndex {
	idx := &segmentIndex{tree: rtree.NewTree(25, 50)}
	for _, s := range segs {
		idx.tree.Insert(&segmentBox{idx.n, boundsOf(s.Bounds(), eps)})
		idx.n++
	}
	return idx
}

// Query returns the indices of all segments whose grown box overlaps r, in ascending order.
func (idx *segmentIndex) Query(r Rect) []int {
	hits := idx.tree.SearchIntersect(boundsOf(r, 0.0))
	is := make([]int, 0, len(hits))
	for _, hit := range hits {
		is = append(is, hit.(*segmentBox).index)
	}
	sort.Ints(is)
	return is
}

// QueryGrown is Query with the query box expanded by grow on all sides.
func (idx *segmentIndex) QueryGrown(r Rect, grow float64) []int {
	hits := idx.tree.SearchIntersect(boundsOf(r, grow))
	is := make([]int, 0, len(hits))
	for _, hit := range hits {
		is = append(is, hit.(*segmentBox).index)
	}
	sort.Ints(is)
	return is
}

// selfIntersects reports whether any two non-adjacent segments of p intersect, or adjacent ones
// intersect beyond their shared end point. Segments are fetched through segs so that callers can
// avoid recomputing them.
func selfIntersects(p View, segs []Segment, idx *segmentIndex, eps float64) bool {
	n := len(segs)
	closed := p.Closed()
	for i := 0; i < n; i++ {
		for _, j := range idx.Query(segs[i].Bounds()) {
			if j <= i {
				continue
			}
			zs := IntersectSegments(segs[i], segs[j], eps)
			if zs.Kind == NoIntersection {
				continue
			}
			if zs.Kind == Coincident {
				return true
			}
			// adjacent segments may only touch at their shared end points; a two-segment
			// closed polyline shares both
			sharedEnd := j == i+1
			sharedStart := closed && i == 0 && j == n-1
			if !sharedEnd && !sharedStart {
				return true
			}
			for _, z := range zs.Points {
				if sharedEnd && z.Point.equalsEps(segs[i].End, eps) {
					continue
				}
				if sharedStart && z.Point.equalsEps(segs[i].Start, eps) {
					continue
				}
				return true
			}
		}
	}
	return false
}

// segmentsOf collects all segments of p into a slice.
func segmentsOf(p View) []Segment {
	segs := make([]Segment, 0, SegmentCount(p))
	for scanner := Segments(p); scanner.Scan(); {
		segs = append(segs, scanner.Segment())
	}
	return segs
}
