package analysis

import (
	"pitchflow/internal/geometry"
	"pitchflow/internal/models"
)

// FindInconsistentCalls reports the ball calls whose location lies inside
// or on the empirical zone: pitches the umpire called a ball even though
// the location is consistent with pitches the same umpire called strikes.
// Containment is boundary-inclusive.
//
// An undefined zone (the zero Polygon) flags nothing.
func FindInconsistentCalls(balls []models.PitchRecord, zone geometry.Polygon) []models.PitchRecord {
	inconsistent := []models.PitchRecord{}
	for _, ball := range balls {
		if zone.Contains(geometry.Point{X: ball.X, Y: ball.Z}) {
			inconsistent = append(inconsistent, ball)
		}
	}
	return inconsistent
}
