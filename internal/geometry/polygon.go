package geometry

// Polygon is a convex polygon with vertices in counter-clockwise order, as
// produced by ConvexHull. The zero value is an empty polygon that contains
// nothing.
type Polygon struct {
	vertices []Point
}

// NewPolygon wraps a counter-clockwise vertex ring. The slice is used as-is;
// callers must not mutate it afterwards.
func NewPolygon(vertices []Point) Polygon {
	return Polygon{vertices: vertices}
}

// Vertices returns the open vertex ring in counter-clockwise order.
func (p Polygon) Vertices() []Point {
	return p.vertices
}

// Closed returns the vertex ring with the first vertex repeated as the
// last, the form renderers and serializers expect.
func (p Polygon) Closed() []Point {
	if len(p.vertices) == 0 {
		return nil
	}
	closed := make([]Point, 0, len(p.vertices)+1)
	closed = append(closed, p.vertices...)
	closed = append(closed, p.vertices[0])
	return closed
}

// Contains reports whether pt lies inside the polygon or on its boundary.
//
// For a counter-clockwise convex ring a point is inside exactly when it is
// on the left of (or on) every directed edge, so a single pass over the
// edges suffices. Boundary points yield a zero cross product on the touched
// edge and are counted as contained.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.vertices)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		if cross(a, b, pt) < 0 {
			return false
		}
	}
	return true
}
