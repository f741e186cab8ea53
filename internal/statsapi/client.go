package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"pitchflow/config"
	"pitchflow/internal/models"
	"pitchflow/logger"
)

var (
	// ErrNoData indicates the feed has no play data for the requested game
	// or date. Callers report it upward as an explicit "no data" result.
	ErrNoData = errors.New("statsapi: no data")

	// ErrMalformedFeed indicates the feed returned a payload whose shape
	// could not be decoded at all. This is the only hard failure.
	ErrMalformedFeed = errors.New("statsapi: malformed feed payload")
)

// Client is a rate-limited REST client for the MLB Stats API. It is safe
// for concurrent use; each request honors the shared limiter.
type Client struct {
	baseURL string
	sportID int
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Log
}

// NewClient builds a client from the feed configuration.
func NewClient(cfg config.FeedConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rps
	}
	sport := cfg.SportID
	if sport <= 0 {
		sport = 1
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		sportID: sport,
		http:    &http.Client{Timeout: cfg.Timeout.Std()},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     logger.GetLogger(),
	}
}

// Schedule returns the games scheduled for date (MM/DD/YYYY format).
// A day without games yields an empty slice, not an error.
func (c *Client) Schedule(ctx context.Context, date string) ([]models.ScheduleGame, error) {
	endpoint := fmt.Sprintf("%s/schedule?sportId=%d&date=%s", c.baseURL, c.sportID, url.QueryEscape(date))

	var payload scheduleResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	var games []models.ScheduleGame
	for _, day := range payload.Dates {
		for _, g := range day.Games {
			games = append(games, models.ScheduleGame{
				GamePk:    g.GamePk,
				Status:    g.Status.DetailedState,
				HomeName:  g.Teams.Home.Team.Name,
				AwayName:  g.Teams.Away.Team.Name,
				HomeScore: g.Teams.Home.Score,
				AwayScore: g.Teams.Away.Score,
			})
		}
	}

	c.log.WithComponent("statsapi_client").WithFields(logger.Fields{
		"date":  date,
		"games": len(games),
	}).Debug("fetched schedule")
	return games, nil
}

// PlayByPlay fetches the nested play-by-play structure for one game.
// ErrNoData is returned when the feed knows no such game or carries no
// plays for it yet.
func (c *Client) PlayByPlay(ctx context.Context, gamePk int) (*PlayByPlay, error) {
	endpoint := fmt.Sprintf("%s/game/%d/playByPlay", c.baseURL, gamePk)

	var payload PlayByPlay
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.AllPlays == nil {
		return nil, fmt.Errorf("%w: game %d has no plays", ErrNoData, gamePk)
	}
	return &payload, nil
}

// GameContext resolves the labels used to title a game report: team names,
// current pitchers and the home-plate umpire. Missing pitchers fall back to
// "TBD", a missing umpire to "Unknown".
func (c *Client) GameContext(ctx context.Context, gamePk int) (models.GameInfo, error) {
	endpoint := fmt.Sprintf("%s/game/%d/boxscore", c.baseURL, gamePk)

	var payload boxscoreResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return models.GameInfo{}, err
	}

	info := models.GameInfo{
		GamePk:      gamePk,
		HomeTeam:    payload.Teams.Home.Team.Name,
		AwayTeam:    payload.Teams.Away.Team.Name,
		HomePitcher: pitcherName(payload.Teams.Home),
		AwayPitcher: pitcherName(payload.Teams.Away),
		Umpire:      homePlateUmpire(payload.Officials),
	}
	return info, nil
}

func pitcherName(team boxscoreTeam) string {
	if len(team.Pitchers) == 0 {
		return "TBD"
	}
	player, ok := team.Players["ID"+strconv.Itoa(team.Pitchers[0])]
	if !ok || player.Person.FullName == "" {
		return "TBD"
	}
	return player.Person.FullName
}

func homePlateUmpire(officials []official) string {
	for _, o := range officials {
		if o.OfficialType == "Home Plate" && o.Official.FullName != "" {
			return o.Official.FullName
		}
	}
	return "Unknown"
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("statsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrNoData, endpoint)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("statsapi returned status %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	return nil
}
