package geometry

import "sort"

// Point is a location in the plane.
type Point struct {
	X float64
	Y float64
}

// cross returns the z-component of (b-a) x (c-a). Positive when a→b→c is a
// counter-clockwise turn, zero when the three points are collinear.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// ConvexHull computes the convex hull of pts using the monotone chain
// algorithm. The hull is returned in counter-clockwise order, open (the
// first vertex is not repeated). ok is false when the input has fewer than
// three distinct points or when all points are collinear; in that case the
// returned slice is nil.
//
// The input slice is not modified.
func ConvexHull(pts []Point) (hull []Point, ok bool) {
	if len(pts) < 3 {
		return nil, false
	}

	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// Drop exact duplicates so they cannot stall the chain construction.
	uniq := sorted[:1]
	for _, p := range sorted[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return nil, false
	}

	// Lower chain, then upper chain. Popping on cross <= 0 keeps strict
	// corners only: collinear points along an edge are excluded.
	lower := make([]Point, 0, len(uniq))
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]Point, 0, len(uniq))
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain's last point is the first point of the other chain.
	hull = append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points collinear: the chains collapse to a segment.
		return nil, false
	}
	return hull, true
}
