package refresher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pitchflow/config"
	"pitchflow/internal/models"
)

type stubTarget struct {
	mu        sync.Mutex
	games     []models.ScheduleGame
	schedErr  error
	refreshed []int
	gameErr   map[int]error
}

func (s *stubTarget) RefreshSchedule(ctx context.Context, date string) ([]models.ScheduleGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedErr != nil {
		return nil, s.schedErr
	}
	return s.games, nil
}

func (s *stubTarget) RefreshGame(ctx context.Context, gamePk int) (*models.GameReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.gameErr[gamePk]; err != nil {
		return nil, err
	}
	s.refreshed = append(s.refreshed, gamePk)
	return &models.GameReport{Info: models.GameInfo{GamePk: gamePk}}, nil
}

func (s *stubTarget) refreshedGames() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.refreshed...)
}

func newTestRefresher(target Target) *Refresher {
	r := New(config.RefreshConfig{ScheduleSpec: "@every 1m", LiveSpec: "@every 15s"}, target)
	r.ctx, r.cancel = context.WithCancel(context.Background())
	return r
}

func TestRefreshScheduleTracksLiveGames(t *testing.T) {
	target := &stubTarget{
		games: []models.ScheduleGame{
			{GamePk: 1, Status: "Final"},
			{GamePk: 2, Status: "In Progress"},
			{GamePk: 3, Status: "In Progress"},
			{GamePk: 4, Status: "Scheduled"},
		},
	}
	r := newTestRefresher(target)
	defer r.cancel()

	r.refreshSchedule()

	live := r.liveGames()
	if len(live) != 2 || live[0] != 2 || live[1] != 3 {
		t.Fatalf("unexpected live games: %v", live)
	}
}

func TestRefreshScheduleErrorKeepsPreviousLiveSet(t *testing.T) {
	target := &stubTarget{
		games: []models.ScheduleGame{{GamePk: 7, Status: "In Progress"}},
	}
	r := newTestRefresher(target)
	defer r.cancel()

	r.refreshSchedule()
	if live := r.liveGames(); len(live) != 1 {
		t.Fatalf("expected one live game, got %v", live)
	}

	target.mu.Lock()
	target.schedErr = errors.New("upstream down")
	target.mu.Unlock()

	r.refreshSchedule()
	if live := r.liveGames(); len(live) != 1 || live[0] != 7 {
		t.Fatalf("live set should survive a failed refresh, got %v", live)
	}
}

func TestRefreshLiveRebuildsOnlyLiveGames(t *testing.T) {
	target := &stubTarget{
		games: []models.ScheduleGame{
			{GamePk: 1, Status: "Final"},
			{GamePk: 2, Status: "In Progress"},
		},
	}
	r := newTestRefresher(target)
	defer r.cancel()

	r.refreshSchedule()
	r.refreshLive()

	refreshed := target.refreshedGames()
	if len(refreshed) != 1 || refreshed[0] != 2 {
		t.Fatalf("expected only the live game to refresh, got %v", refreshed)
	}
}

func TestRefreshLiveContinuesPastFailures(t *testing.T) {
	target := &stubTarget{
		games: []models.ScheduleGame{
			{GamePk: 2, Status: "In Progress"},
			{GamePk: 3, Status: "In Progress"},
		},
		gameErr: map[int]error{2: errors.New("feed hiccup")},
	}
	r := newTestRefresher(target)
	defer r.cancel()

	r.refreshSchedule()
	r.refreshLive()

	refreshed := target.refreshedGames()
	if len(refreshed) != 1 || refreshed[0] != 3 {
		t.Fatalf("expected the healthy game to refresh, got %v", refreshed)
	}
}

func TestRefreshLiveNoLiveGames(t *testing.T) {
	target := &stubTarget{
		games: []models.ScheduleGame{{GamePk: 1, Status: "Final"}},
	}
	r := newTestRefresher(target)
	defer r.cancel()

	r.refreshSchedule()
	r.refreshLive()

	if refreshed := target.refreshedGames(); len(refreshed) != 0 {
		t.Fatalf("expected no refreshes, got %v", refreshed)
	}
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	r := New(config.RefreshConfig{ScheduleSpec: "not a spec", LiveSpec: "@every 15s"}, &stubTarget{})
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	r.cancel()
}

func TestStartAndStop(t *testing.T) {
	target := &stubTarget{
		games: []models.ScheduleGame{{GamePk: 9, Status: "In Progress"}},
	}
	r := New(config.RefreshConfig{ScheduleSpec: "@every 1h", LiveSpec: "@every 1h"}, target)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	// Start performs an immediate schedule pass.
	if live := r.liveGames(); len(live) != 1 || live[0] != 9 {
		t.Fatalf("expected immediate schedule refresh, got %v", live)
	}

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
