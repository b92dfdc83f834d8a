// Package geom provides the integer map geometry used by the simulation:
// points, polylines, point/segment distance and segment intersection.
package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrTooFewNodes is returned when a polyline has fewer than two nodes.
var ErrTooFewNodes = errors.New("polyline needs at least two nodes")

// Point is an integer map coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a.vec(), b.vec()))
}

// CeilDistance returns the Euclidean distance rounded up, which is what
// detection ranges are compared against.
func CeilDistance(a, b Point) int {
	return int(math.Ceil(Distance(a, b)))
}

// Midpoint returns the integer midpoint of a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// DistanceToSegment returns the distance from p to the closest point of the
// segment [a, b]. The projection parameter is clamped to [0, 1].
func DistanceToSegment(p, a, b Point) float64 {
	ab := r2.Sub(b.vec(), a.vec())
	ap := r2.Sub(p.vec(), a.vec())

	lenSq := r2.Norm2(ab)
	if lenSq == 0 {
		return r2.Norm(ap)
	}

	t := r2.Dot(ap, ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := r2.Add(a.vec(), r2.Scale(t, ab))
	return r2.Norm(r2.Sub(p.vec(), closest))
}

// orientation returns the sign of the cross product (b-a) x (c-a):
// 1 for counter-clockwise, -1 for clockwise, 0 for collinear.
func orientation(a, b, c Point) int {
	cross := r2.Cross(r2.Sub(b.vec(), a.vec()), r2.Sub(c.vec(), a.vec()))
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}

// withinBox reports whether c lies inside the bounding box of [a, b].
// Only meaningful when a, b and c are collinear.
func withinBox(a, b, c Point) bool {
	return c.X >= min(a.X, b.X) && c.X <= max(a.X, b.X) &&
		c.Y >= min(a.Y, b.Y) && c.Y <= max(a.Y, b.Y)
}

// SegmentsIntersect reports whether segments [p1, p2] and [q1, q2] share at
// least one point. Proper crossings, touching endpoints and collinear overlap
// all count as intersecting.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}

	// Touching: an endpoint lies on the other segment.
	if o1 == 0 && withinBox(p1, p2, q1) {
		return true
	}
	if o2 == 0 && withinBox(p1, p2, q2) {
		return true
	}
	if o3 == 0 && withinBox(q1, q2, p1) {
		return true
	}
	if o4 == 0 && withinBox(q1, q2, p2) {
		return true
	}
	return false
}

// Polyline is an ordered sequence of nodes; each consecutive pair forms one
// segment.
type Polyline struct {
	Nodes []Point
}

// NewPolyline builds a polyline, copying the nodes.
func NewPolyline(nodes ...Point) (Polyline, error) {
	if len(nodes) < 2 {
		return Polyline{}, fmt.Errorf("%w: got %d", ErrTooFewNodes, len(nodes))
	}
	cp := make([]Point, len(nodes))
	copy(cp, nodes)
	return Polyline{Nodes: cp}, nil
}

// NumSegments returns the number of segments in the polyline.
func (pl Polyline) NumSegments() int {
	if len(pl.Nodes) < 2 {
		return 0
	}
	return len(pl.Nodes) - 1
}

// Segment returns the endpoints of segment i.
func (pl Polyline) Segment(i int) (Point, Point) {
	return pl.Nodes[i], pl.Nodes[i+1]
}

// Crosses reports whether the path from a to b intersects any segment.
func (pl Polyline) Crosses(a, b Point) bool {
	for i := 0; i < pl.NumSegments(); i++ {
		n1, n2 := pl.Segment(i)
		if SegmentsIntersect(a, b, n1, n2) {
			return true
		}
	}
	return false
}
