package contour

import (
	"errors"
	"fmt"
)

// A polyline is an ordered sequence of vertexes where each vertex carries the bulge of the
// segment towards the next vertex. A closed polyline has an implicit final segment from the last
// vertex back to the first using the last vertex's bulge; adjacency is by index wraparound, there
// is no cyclic structure. Algorithms are written against the narrowest of three capability
// interfaces: View for read access, Mutator for in-place vertex mutation, and Builder for
// constructing new polylines. A concrete type implements whichever subset applies.

var (
	// ErrTooFewVertexes is returned when a polyline has fewer than two vertexes.
	ErrTooFewVertexes = errors.New("polyline needs at least 2 vertexes")

	// ErrInvalidVertex is returned when a vertex has a non-finite coordinate or bulge, or a
	// non-zero bulge over a zero-length chord.
	ErrInvalidVertex = errors.New("invalid vertex")

	// ErrNotClosed is returned by boolean operations when an input polyline is not closed.
	ErrNotClosed = errors.New("polyline must be closed")

	// ErrSelfIntersecting is returned by boolean operations when an input polyline intersects itself.
	ErrSelfIntersecting = errors.New("polyline must not self-intersect")
)

// View is read access to a polyline: vertex count, indexed vertex access, and the closed flag.
type View interface {
	Len() int
	Closed() bool
	At(i int) Vertex
}

// Mutator is read-write access to a polyline.
type Mutator interface {
	View
	SetAt(i int, v Vertex)
}

// Builder constructs a new polyline from scratch and extracts the finished result.
type Builder interface {
	AddVertex(v Vertex)
	SetClosed(closed bool)
	Reserve(n int)
	ToPolyline() *Polyline
}

// Polyline is the owning storage type, implementing View, Mutator, and Builder.
type Polyline struct {
	vertexes []Vertex
	closed   bool
}

// NewPolyline returns a polyline with the given vertexes.
func NewPolyline(closed bool, vertexes ...Vertex) *Polyline {
	return &Polyline{vertexes: vertexes, closed: closed}
}

// FromTriples returns a polyline from a sequence of (x,y,bulge) triples. Triples extracts the
// same sequence back exactly.
func FromTriples(triples [][3]float64, closed bool) *Polyline {
	p := &Polyline{vertexes: make([]Vertex, len(triples)), closed: closed}
	for i, t := range triples {
		p.vertexes[i] = Vertex{t[0], t[1], t[2]}
	}
	return p
}

// Triples returns the vertex sequence as (x,y,bulge) triples.
func (p *Polyline) Triples() [][3]float64 {
	triples := make([][3]float64, len(p.vertexes))
	for i, v := range p.vertexes {
		triples[i] = [3]float64{v.X, v.Y, v.Bulge}
	}
	return triples
}

// Len returns the number of vertexes.
func (p *Polyline) Len() int {
	return len(p.vertexes)
}

// Closed returns true if the polyline is closed.
func (p *Polyline) Closed() bool {
	return p.closed
}

// At returns the vertex at index i.
func (p *Polyline) At(i int) Vertex {
	return p.vertexes[i]
}

// SetAt sets the vertex at index i.
func (p *Polyline) SetAt(i int, v Vertex) {
	p.vertexes[i] = v
}

// Add adds a new vertex to the polyline.
func (p *Polyline) Add(x, y, bulge float64) *Polyline {
	p.vertexes = append(p.vertexes, Vertex{x, y, bulge})
	return p
}

// AddVertex adds a new vertex to the polyline.
func (p *Polyline) AddVertex(v Vertex) {
	p.vertexes = append(p.vertexes, v)
}

// SetClosed sets the closed flag.
func (p *Polyline) SetClosed(closed bool) {
	p.closed = closed
}

// Reserve grows the vertex capacity to hold at least n more vertexes.
func (p *Polyline) Reserve(n int) {
	if cap(p.vertexes)-len(p.vertexes) < n {
		vertexes := make([]Vertex, len(p.vertexes), len(p.vertexes)+n)
		copy(vertexes, p.vertexes)
		p.vertexes = vertexes
	}
}

// ToPolyline returns the finished polyline.
func (p *Polyline) ToPolyline() *Polyline {
	return p
}

// Copy returns a deep copy.
func (p *Polyline) Copy() *Polyline {
	vertexes := make([]Vertex, len(p.vertexes))
	copy(vertexes, p.vertexes)
	return &Polyline{vertexes: vertexes, closed: p.closed}
}

// Equals returns true if both polylines have the same closed flag and equal vertexes with
// tolerance Epsilon.
func (p *Polyline) Equals(q *Polyline) bool {
	if p.closed != q.closed || len(p.vertexes) != len(q.vertexes) {
		return false
	}
	for i, v := range p.vertexes {
		if !v.Equals(q.vertexes[i]) {
			return false
		}
	}
	return true
}

func (p *Polyline) String() string {
	s := "{"
	if p.closed {
		s = "closed{"
	}
	for i, v := range p.vertexes {
		if i != 0 {
			s += " "
		}
		s += v.String()
	}
	return s + "}"
}

// InvertDirection reverses the traversal direction of p in place: the vertex order is reversed,
// bulges shift to stay attached to their chord, and bulge signs flip since reversing traversal
// flips each arc's turn direction. Applying it twice restores the original vertex data exactly.
func InvertDirection(p Mutator) {
	n := p.Len()
	if n < 2 {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		vi, vj := p.At(i), p.At(j)
		p.SetAt(i, vj)
		p.SetAt(j, vi)
	}
	firstBulge := p.At(0).Bulge
	for i := 1; i < n; i++ {
		v, w := p.At(i-1), p.At(i)
		p.SetAt(i-1, Vertex{v.X, v.Y, -w.Bulge})
	}
	last := p.At(n - 1)
	p.SetAt(n-1, Vertex{last.X, last.Y, -firstBulge})
}

// Validate checks the polyline invariants: at least two vertexes, finite coordinates and bulges,
// and no non-zero bulge over a zero-length chord (which would make a degenerate arc).
func Validate(p View) error {
	n := p.Len()
	if n < 2 {
		return fmt.Errorf("%w: have %d", ErrTooFewVertexes, n)
	}
	for i := 0; i < n; i++ {
		v := p.At(i)
		if !v.IsValid() {
			return fmt.Errorf("%w: vertex %d is %v", ErrInvalidVertex, i, v)
		}
	}
	for i := 0; i < segmentCountFor(n, p.Closed()); i++ {
		v1 := p.At(i)
		if v1.Bulge != 0.0 && v1.Pos().Equals(p.At((i+1)%n).Pos()) {
			return fmt.Errorf("%w: vertex %d has bulge over zero-length chord", ErrInvalidVertex, i)
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////

// Range is a read-only sub-view over an index range of another view, without copying vertex
// data. The range may wrap around the end of a closed polyline and may be reversed. It is always
// an open polyline.
type Range struct {
	view     View
	start, n int
	reversed bool
}

// SubView returns a view of n vertexes of p starting at index start, wrapping around the end of
// p when needed.
func SubView(p View, start, n int) *Range {
	return &Range{view: p, start: start, n: n}
}

// Reverse returns the range with inverted traversal direction.
func (r *Range) Reverse() *Range {
	return &Range{view: r.view, start: r.start, n: r.n, reversed: !r.reversed}
}

// Len returns the number of vertexes.
func (r *Range) Len() int {
	return r.n
}

// Closed returns false, a sub-range is always an open polyline.
func (r *Range) Closed() bool {
	return false
}

// At returns the vertex at index i, mapping through the wrapping range and, when reversed,
// inverting the direction on the fly (see InvertDirection).
func (r *Range) At(i int) Vertex {
	if !r.reversed {
		return r.view.At((r.start + i) % r.view.Len())
	}
	k := (r.start + r.n - 1 - i) % r.view.Len()
	v := r.view.At(k)
	if i == r.n-1 {
		last := r.view.At((r.start + r.n - 1) % r.view.Len())
		return Vertex{v.X, v.Y, -last.Bulge}
	}
	prev := (k - 1 + r.view.Len()) % r.view.Len()
	return Vertex{v.X, v.Y, -r.view.At(prev).Bulge}
}

func segmentCountFor(vertexes int, closed bool) int {
	if vertexes < 2 {
		return 0
	} else if closed {
		return vertexes
	}
	return vertexes - 1
}
