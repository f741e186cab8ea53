package analysis

import (
	"pitchflow/internal/geometry"
	"pitchflow/internal/models"
)

// BuildEmpiricalZone computes the umpire's observed called-strike boundary:
// the convex hull of the called-strike locations. The real decision boundary
// need not be convex; the hull is an approximation that gives a deterministic
// polygon for containment testing.
//
// ok is false when fewer than minPoints called strikes exist or the point
// set is degenerate (all collinear); the caller skips the overlay in that
// case rather than approximating.
func BuildEmpiricalZone(calledStrikes []models.PitchRecord, minPoints int) (geometry.Polygon, bool) {
	if minPoints < 3 {
		minPoints = 3
	}
	if len(calledStrikes) < minPoints {
		return geometry.Polygon{}, false
	}

	pts := make([]geometry.Point, len(calledStrikes))
	for i, rec := range calledStrikes {
		pts[i] = geometry.Point{X: rec.X, Y: rec.Z}
	}

	hull, ok := geometry.ConvexHull(pts)
	if !ok {
		return geometry.Polygon{}, false
	}
	return geometry.NewPolygon(hull), true
}

// empiricalZoneModel converts a hull polygon into the closed outbound form
// (first vertex repeated as the last).
func empiricalZoneModel(poly geometry.Polygon) *models.EmpiricalZone {
	closed := poly.Closed()
	vertices := make([]models.ZoneVertex, len(closed))
	for i, p := range closed {
		vertices[i] = models.ZoneVertex{X: p.X, Z: p.Y}
	}
	return &models.EmpiricalZone{Vertices: vertices}
}
