package contour

import (
	"fmt"
	"math"
)

// Vertex is a polyline vertex. Bulge encodes the arc from this vertex to the next: zero is a
// straight segment, non-zero a circular arc with included angle 4*atan(|bulge|) turning counter
// clockwise for a positive bulge and clockwise for a negative bulge. The arc center and radius
// follow from the chord to the next vertex and are never stored.
type Vertex struct {
	X, Y  float64
	Bulge float64
}

// Pos returns the vertex position.
func (v Vertex) Pos() Point {
	return Point{v.X, v.Y}
}

// Equals returns true if both vertexes have equal position and bulge with tolerance Epsilon.
func (v Vertex) Equals(w Vertex) bool {
	return Equal(v.X, w.X) && Equal(v.Y, w.Y) && Equal(v.Bulge, w.Bulge)
}

// IsValid returns true if the position and bulge are finite.
func (v Vertex) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Bulge) && !math.IsInf(v.Bulge, 0)
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Bulge)
}

// bulgeFromAngle returns the bulge for an arc with included angle theta, sign taken from theta.
func bulgeFromAngle(theta float64) float64 {
	return math.Tan(theta / 4.0)
}

// angleFromBulge returns the signed included angle for a bulge value.
func angleFromBulge(bulge float64) float64 {
	return 4.0 * math.Atan(bulge)
}
