package statsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pitchflow/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.FeedConfig{
		BaseURL:           baseURL,
		Timeout:           config.Duration(2 * time.Second),
		RequestsPerSecond: 100,
		BurstSize:         100,
		SportID:           1,
	})
}

func TestScheduleParsesGames(t *testing.T) {
	mockData := `{
        "dates": [{
            "games": [{
                "gamePk": 745804,
                "status": {"detailedState": "In Progress"},
                "teams": {
                    "away": {"score": 3, "team": {"name": "Cubs"}},
                    "home": {"score": 2, "team": {"name": "Cardinals"}}
                }
            }]
        }]
    }`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sportId"); got != "1" {
			t.Errorf("unexpected sportId %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockData))
	}))
	defer server.Close()

	games, err := testClient(server.URL).Schedule(context.Background(), "06/01/2024")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.GamePk != 745804 || g.Status != "In Progress" {
		t.Fatalf("unexpected game: %+v", g)
	}
	if g.AwayName != "Cubs" || g.HomeName != "Cardinals" || g.AwayScore != 3 || g.HomeScore != 2 {
		t.Fatalf("unexpected teams/scores: %+v", g)
	}
	if !g.Live() {
		t.Fatal("In Progress game should report Live")
	}
}

func TestScheduleEmptyDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dates": []}`))
	}))
	defer server.Close()

	games, err := testClient(server.URL).Schedule(context.Background(), "12/25/2024")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}
}

func TestPlayByPlayDecodesOptionalFields(t *testing.T) {
	mockData := `{
        "allPlays": [{
            "about": {"halfInning": "top"},
            "playEvents": [
                {
                    "isPitch": true,
                    "details": {"type": {"description": "Slider"}, "call": {"description": "Ball"}},
                    "pitchData": {
                        "strikeZoneTop": 3.4,
                        "strikeZoneBottom": 1.6,
                        "coordinates": {"pX": 0.12, "pZ": 2.2}
                    }
                },
                {"isPitch": true, "pitchData": {"coordinates": {"pX": -0.4}}},
                {"isPitch": false}
            ]
        }]
    }`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/game/745804/playByPlay" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(mockData))
	}))
	defer server.Close()

	pbp, err := testClient(server.URL).PlayByPlay(context.Background(), 745804)
	if err != nil {
		t.Fatalf("PlayByPlay: %v", err)
	}

	events := pbp.AllPlays[0].PlayEvents
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	full := events[0]
	if full.Details.Call.Description != "Ball" || *full.PitchData.Coordinates.PX != 0.12 {
		t.Fatalf("unexpected first event: %+v", full)
	}
	if *full.PitchData.StrikeZoneTop != 3.4 {
		t.Fatalf("zone top not decoded: %+v", full.PitchData)
	}

	partial := events[1]
	if partial.Details != nil {
		t.Fatal("missing details should decode as nil")
	}
	if partial.PitchData.Coordinates.PZ != nil {
		t.Fatal("missing pZ should decode as nil")
	}
}

func TestPlayByPlayNoPlays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).PlayByPlay(context.Background(), 1)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestPlayByPlayNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := testClient(server.URL).PlayByPlay(context.Background(), 99)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for 404, got %v", err)
	}
}

func TestPlayByPlayMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"allPlays": "not an array"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).PlayByPlay(context.Background(), 1)
	if !errors.Is(err, ErrMalformedFeed) {
		t.Fatalf("expected ErrMalformedFeed, got %v", err)
	}
}

func TestGameContextFallbacks(t *testing.T) {
	mockData := `{
        "teams": {
            "home": {
                "team": {"name": "Cardinals"},
                "pitchers": [660271],
                "players": {"ID660271": {"person": {"fullName": "Some Pitcher"}}}
            },
            "away": {"team": {"name": "Cubs"}, "pitchers": []}
        },
        "officials": [
            {"official": {"fullName": "First Base Ump"}, "officialType": "First Base"}
        ]
    }`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockData))
	}))
	defer server.Close()

	info, err := testClient(server.URL).GameContext(context.Background(), 745804)
	if err != nil {
		t.Fatalf("GameContext: %v", err)
	}

	if info.HomePitcher != "Some Pitcher" {
		t.Fatalf("unexpected home pitcher: %q", info.HomePitcher)
	}
	if info.AwayPitcher != "TBD" {
		t.Fatalf("expected TBD away pitcher, got %q", info.AwayPitcher)
	}
	if info.Umpire != "Unknown" {
		t.Fatalf("expected Unknown umpire, got %q", info.Umpire)
	}
	if info.Title() != "Cubs @ Cardinals" {
		t.Fatalf("unexpected title: %q", info.Title())
	}
}
