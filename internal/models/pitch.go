package models

import "strings"

// CallKind is the closed set of umpire-call outcomes a pitch can have.
type CallKind string

const (
	CallBall           CallKind = "ball"
	CallCalledStrike   CallKind = "called_strike"
	CallSwingingStrike CallKind = "swinging_strike"
	CallFoul           CallKind = "foul"
	CallInPlay         CallKind = "in_play"
	CallUnknown        CallKind = "unknown"
)

// AllCalls lists every CallKind in a stable order.
var AllCalls = []CallKind{
	CallBall,
	CallCalledStrike,
	CallSwingingStrike,
	CallFoul,
	CallInPlay,
	CallUnknown,
}

// ParseCall maps a feed call description to its CallKind. The feed encodes
// several distinct in-play outcomes ("In play, run(s)", "In play, no out",
// ...) that all share the "In play" prefix; every other form is matched
// exactly. Unrecognized text maps to CallUnknown.
func ParseCall(description string) CallKind {
	switch description {
	case "Ball":
		return CallBall
	case "Called Strike":
		return CallCalledStrike
	case "Swinging Strike":
		return CallSwingingStrike
	case "Foul":
		return CallFoul
	}
	if strings.HasPrefix(description, "In play") {
		return CallInPlay
	}
	return CallUnknown
}

// PitchRecord is one normalized pitch: a plate-crossing location, the pitch
// type label, the umpire call and, when the feed supplies them, the
// batter-specific strike-zone bounds. Records are fully populated at
// extraction time; downstream components never re-check for missing fields.
type PitchRecord struct {
	X         float64  `json:"x"`
	Z         float64  `json:"z"`
	PitchType string   `json:"pitch_type"`
	Call      CallKind `json:"call"`

	// ZoneTop and ZoneBottom are nil when the feed omits batter sizing.
	ZoneTop    *float64 `json:"zone_top,omitempty"`
	ZoneBottom *float64 `json:"zone_bottom,omitempty"`
}

// HasZoneBounds reports whether both batter-specific zone bounds are present.
func (r PitchRecord) HasZoneBounds() bool {
	return r.ZoneTop != nil && r.ZoneBottom != nil
}

// StrikeZoneRect is the nominal, rule-book referenced strike zone for a set
// of pitches. Left/right are the fixed plate half-extents; top/bottom are
// the mean of the batter-specific bounds observed across the set.
type StrikeZoneRect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// ZoneVertex is one vertex of the empirical zone polygon, in plate
// coordinates (feet).
type ZoneVertex struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// EmpiricalZone is the convex hull of called-strike locations, closed: the
// first vertex is repeated as the last. It stands in for the umpire's
// observed decision boundary.
type EmpiricalZone struct {
	Vertices []ZoneVertex `json:"vertices"`
}
