package analysis

import (
	"fmt"

	"pitchflow/internal/models"
	"pitchflow/internal/statsapi"
)

// Extract walks the play-by-play structure for one game and returns the
// normalized pitch records in feed order. Events that are not pitches or
// lack plate-crossing coordinates are skipped silently; partial Statcast
// data is expected and common. The only failure is a feed with no play
// data at all, reported as statsapi.ErrNoData.
func Extract(pbp *statsapi.PlayByPlay) ([]models.PitchRecord, error) {
	if pbp == nil || pbp.AllPlays == nil {
		return nil, fmt.Errorf("%w: empty play-by-play", statsapi.ErrNoData)
	}

	var records []models.PitchRecord
	walk(pbp, func(rec models.PitchRecord, _ models.Side) {
		records = append(records, rec)
	})
	return records, nil
}

// ExtractBySide partitions the records by defending side using the at-bat's
// half-inning marker: in the top half the home team is pitching.
func ExtractBySide(pbp *statsapi.PlayByPlay) (home, away []models.PitchRecord, err error) {
	if pbp == nil || pbp.AllPlays == nil {
		return nil, nil, fmt.Errorf("%w: empty play-by-play", statsapi.ErrNoData)
	}

	walk(pbp, func(rec models.PitchRecord, side models.Side) {
		if side == models.SideHome {
			home = append(home, rec)
		} else {
			away = append(away, rec)
		}
	})
	return home, away, nil
}

func walk(pbp *statsapi.PlayByPlay, emit func(models.PitchRecord, models.Side)) {
	for _, play := range pbp.AllPlays {
		side := models.SideAway
		if play.About.HalfInning == "top" {
			side = models.SideHome
		}
		for _, ev := range play.PlayEvents {
			if rec, ok := normalize(ev); ok {
				emit(rec, side)
			}
		}
	}
}

// normalize is the single normalization step of the pipeline: it returns a
// fully populated PitchRecord, or ok=false when the event is not a pitch or
// carries no plate coordinates. Downstream components never re-check for
// missing fields.
func normalize(ev statsapi.PlayEvent) (models.PitchRecord, bool) {
	if !ev.IsPitch {
		return models.PitchRecord{}, false
	}
	if ev.PitchData == nil || ev.PitchData.Coordinates == nil {
		return models.PitchRecord{}, false
	}
	coords := ev.PitchData.Coordinates
	if coords.PX == nil || coords.PZ == nil {
		return models.PitchRecord{}, false
	}

	rec := models.PitchRecord{
		X:          *coords.PX,
		Z:          *coords.PZ,
		PitchType:  "Unknown",
		Call:       models.CallUnknown,
		ZoneTop:    ev.PitchData.StrikeZoneTop,
		ZoneBottom: ev.PitchData.StrikeZoneBottom,
	}
	if ev.Details != nil {
		if ev.Details.Type != nil && ev.Details.Type.Description != "" {
			rec.PitchType = ev.Details.Type.Description
		}
		if ev.Details.Call != nil {
			rec.Call = models.ParseCall(ev.Details.Call.Description)
		}
	}
	return rec, true
}
