package analysis

import (
	"pitchflow/config"
	"pitchflow/internal/models"
	"pitchflow/internal/statsapi"
)

// Grouping selects how a game's records are grouped before analysis. The
// classification, zone and consistency logic is identical either way; only
// the grouping key differs.
type Grouping int

const (
	// GroupGame analyzes all pitches of the game as one group.
	GroupGame Grouping = iota
	// GroupBySide analyzes the home and away defenses separately.
	GroupBySide
)

// Options carries the analysis tunables. Zero values fall back to the
// rule-book plate half width and a 3-point hull minimum.
type Options struct {
	Grouping       Grouping
	PlateHalfWidth float64
	MinHullPoints  int
}

// OptionsFromConfig lifts the analysis configuration into pipeline options.
func OptionsFromConfig(cfg config.AnalysisConfig, grouping Grouping) Options {
	return Options{
		Grouping:       grouping,
		PlateHalfWidth: cfg.PlateHalfWidth,
		MinHullPoints:  cfg.MinHullPoints,
	}
}

func (o Options) withDefaults() Options {
	if o.PlateHalfWidth <= 0 {
		o.PlateHalfWidth = config.DefaultPlateHalfWidth
	}
	if o.MinHullPoints < 3 {
		o.MinHullPoints = 3
	}
	return o
}

// AnalyzeGame runs the full pipeline over one game's play-by-play: extract,
// classify, estimate the nominal zone, build the empirical zone and flag
// inconsistent calls. It is a pure function of its inputs; concurrent
// invocations for different games share nothing.
func AnalyzeGame(pbp *statsapi.PlayByPlay, opts Options) ([]models.SideReport, error) {
	opts = opts.withDefaults()

	if opts.Grouping == GroupBySide {
		home, away, err := ExtractBySide(pbp)
		if err != nil {
			return nil, err
		}
		return []models.SideReport{
			analyzeGroup(models.SideHome, home, opts),
			analyzeGroup(models.SideAway, away, opts),
		}, nil
	}

	records, err := Extract(pbp)
	if err != nil {
		return nil, err
	}
	return []models.SideReport{analyzeGroup(models.SideGame, records, opts)}, nil
}

func analyzeGroup(side models.Side, records []models.PitchRecord, opts Options) models.SideReport {
	buckets := Classify(records)

	report := models.SideReport{
		Side:         side,
		TotalPitches: len(records),
		Buckets:      buckets,
		Inconsistent: []models.PitchRecord{},
		TypeCounts:   TypeCounts(records),
	}

	report.StrikeZone = EstimateStrikeZone(records, opts.PlateHalfWidth)

	if zone, ok := BuildEmpiricalZone(buckets[models.CallCalledStrike], opts.MinHullPoints); ok {
		report.EmpiricalZone = empiricalZoneModel(zone)
		report.Inconsistent = FindInconsistentCalls(buckets[models.CallBall], zone)
	}

	if len(records) > 0 {
		last := records[len(records)-1]
		report.LastPitch = &last
	}
	return report
}
