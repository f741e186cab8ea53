package analysis

import "pitchflow/internal/models"

// EstimateStrikeZone computes the nominal strike zone for a record group.
// Top and bottom are the arithmetic mean of the batter-specific bounds over
// the records that carry both; left and right are the fixed plate
// half-extents. Averaging over the group is a deliberate simplification: a
// single plot uses one representative rectangle even though the true zone
// varies per batter.
//
// Returns nil when no record carries zone bounds; a default height is never
// synthesized.
func EstimateStrikeZone(records []models.PitchRecord, plateHalfWidth float64) *models.StrikeZoneRect {
	var topSum, bottomSum float64
	n := 0
	for _, rec := range records {
		if rec.HasZoneBounds() {
			topSum += *rec.ZoneTop
			bottomSum += *rec.ZoneBottom
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return &models.StrikeZoneRect{
		Left:   -plateHalfWidth,
		Right:  plateHalfWidth,
		Top:    topSum / float64(n),
		Bottom: bottomSum / float64(n),
	}
}
