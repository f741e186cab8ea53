package models

import "time"

// Side identifies which defense's pitches a report covers. SideGame is the
// unsplit whole-game grouping.
type Side string

const (
	SideGame Side = "game"
	SideHome Side = "home"
	SideAway Side = "away"
)

// SideReport is the outbound analysis for one pitch grouping: the classified
// buckets, the two zone overlays (absent when undefined), the inconsistent
// ball calls and the most recent pitch in feed order.
type SideReport struct {
	Side          Side                       `json:"side"`
	TotalPitches  int                        `json:"total_pitches"`
	Buckets       map[CallKind][]PitchRecord `json:"buckets"`
	StrikeZone    *StrikeZoneRect            `json:"strike_zone,omitempty"`
	EmpiricalZone *EmpiricalZone             `json:"empirical_zone,omitempty"`
	Inconsistent  []PitchRecord              `json:"inconsistent_calls"`
	LastPitch     *PitchRecord               `json:"last_pitch,omitempty"`
	TypeCounts    map[string]int             `json:"pitch_type_counts"`
}

// GameInfo carries the labels used to title a report. Pitcher names fall
// back to "TBD" and the umpire to "Unknown" when the boxscore omits them.
type GameInfo struct {
	GamePk      int    `json:"game_pk"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomePitcher string `json:"home_pitcher"`
	AwayPitcher string `json:"away_pitcher"`
	Umpire      string `json:"umpire"`
}

// Title renders the conventional "Away @ Home" heading.
func (g GameInfo) Title() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// GameReport bundles everything the rendering side needs for one game.
type GameReport struct {
	Info        GameInfo     `json:"info"`
	Sides       []SideReport `json:"sides"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// ScheduleGame is one entry of the per-day schedule listing.
type ScheduleGame struct {
	GamePk    int    `json:"game_pk"`
	Status    string `json:"status"`
	HomeName  string `json:"home_name"`
	AwayName  string `json:"away_name"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// Label renders the dropdown label the dashboard shows for a game.
func (g ScheduleGame) Label() string {
	return g.AwayName + " @ " + g.HomeName + " (" + g.Status + ")"
}

// Live reports whether a game is still being played and should be polled.
func (g ScheduleGame) Live() bool {
	return g.Status == "In Progress"
}
