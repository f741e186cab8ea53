package statsapi

// Raw feed payloads. The upstream API is loosely typed and frequently omits
// nested objects, so every optional field is a pointer; absence is a defined
// state the extractor handles, never an error.

// PlayByPlay is the nested play-by-play structure for one game.
type PlayByPlay struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is one at-bat with its constituent events.
type Play struct {
	About      PlayAbout   `json:"about"`
	PlayEvents []PlayEvent `json:"playEvents"`
}

// PlayAbout carries the half-inning marker: "top" when the home team is
// pitching, "bottom" when the away team is.
type PlayAbout struct {
	HalfInning string `json:"halfInning"`
}

// PlayEvent is a single event within a play; only events flagged as pitches
// are of interest here.
type PlayEvent struct {
	IsPitch   bool          `json:"isPitch"`
	Details   *EventDetails `json:"details"`
	PitchData *PitchData    `json:"pitchData"`
}

// EventDetails nests the pitch-type and umpire-call labels.
type EventDetails struct {
	Type *Described `json:"type"`
	Call *Described `json:"call"`
}

// Described is the feed's {"description": ...} wrapper.
type Described struct {
	Description string `json:"description"`
}

// PitchData carries the measured pitch geometry. Statcast gaps are common:
// coordinates or zone bounds may be missing on any pitch.
type PitchData struct {
	StrikeZoneTop    *float64     `json:"strikeZoneTop"`
	StrikeZoneBottom *float64     `json:"strikeZoneBottom"`
	Coordinates      *Coordinates `json:"coordinates"`
}

// Coordinates is the plate-crossing location in feet. pX is horizontal
// offset from the plate center, pZ is height above the ground.
type Coordinates struct {
	PX *float64 `json:"pX"`
	PZ *float64 `json:"pZ"`
}

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk int           `json:"gamePk"`
	Status gameStatus    `json:"status"`
	Teams  scheduleTeams `json:"teams"`
}

type gameStatus struct {
	DetailedState string `json:"detailedState"`
}

type scheduleTeams struct {
	Home scheduleTeamSide `json:"home"`
	Away scheduleTeamSide `json:"away"`
}

type scheduleTeamSide struct {
	Score int     `json:"score"`
	Team  teamRef `json:"team"`
}

type teamRef struct {
	Name string `json:"name"`
}

type boxscoreResponse struct {
	Teams     boxscoreTeams `json:"teams"`
	Officials []official    `json:"officials"`
}

type boxscoreTeams struct {
	Home boxscoreTeam `json:"home"`
	Away boxscoreTeam `json:"away"`
}

type boxscoreTeam struct {
	Team     teamRef                   `json:"team"`
	Pitchers []int                     `json:"pitchers"`
	Players  map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person personRef `json:"person"`
}

type personRef struct {
	FullName string `json:"fullName"`
}

type official struct {
	Official     personRef `json:"official"`
	OfficialType string    `json:"officialType"`
}
