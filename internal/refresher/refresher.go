// Package refresher drives the periodic work behind the dashboard: a cron
// schedule re-fetches the day's game listing and a faster cadence rebuilds
// the reports of games that are still in progress.
package refresher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"pitchflow/config"
	"pitchflow/internal/metrics"
	"pitchflow/internal/models"
	"pitchflow/logger"
)

// Target is the slice of the dashboard the refresher feeds. Both methods
// bypass caches so a refresh always reflects the live feed.
type Target interface {
	RefreshSchedule(ctx context.Context, date string) ([]models.ScheduleGame, error)
	RefreshGame(ctx context.Context, gamePk int) (*models.GameReport, error)
}

const scheduleDateLayout = "01/02/2006"

// Refresher owns the cron entries and the set of live gamePks discovered by
// the most recent schedule pass.
type Refresher struct {
	cfg    config.RefreshConfig
	target Target
	log    *logger.Log
	cron   *cron.Cron

	mu   sync.Mutex
	live []int

	ctx    context.Context
	cancel context.CancelFunc

	now func() time.Time
}

// New builds a refresher over the given target. Start must be called before
// any work happens.
func New(cfg config.RefreshConfig, target Target) *Refresher {
	return &Refresher{
		cfg:    cfg,
		target: target,
		log:    logger.GetLogger(),
		now:    time.Now,
	}
}

// Start registers the cron entries and begins running them. The schedule is
// fetched once immediately so the dashboard has data before the first tick.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.cron = cron.New()

	if _, err := r.cron.AddFunc(r.cfg.ScheduleSpec, r.refreshSchedule); err != nil {
		return fmt.Errorf("invalid schedule refresh spec %q: %w", r.cfg.ScheduleSpec, err)
	}
	if _, err := r.cron.AddFunc(r.cfg.LiveSpec, r.refreshLive); err != nil {
		return fmt.Errorf("invalid live refresh spec %q: %w", r.cfg.LiveSpec, err)
	}

	r.refreshSchedule()
	r.cron.Start()

	r.log.WithComponent("refresher").WithFields(logger.Fields{
		"schedule_spec": r.cfg.ScheduleSpec,
		"live_spec":     r.cfg.LiveSpec,
	}).Info("refresher started")
	return nil
}

// Stop halts the cron entries and waits for any running job to finish.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.log.WithComponent("refresher").Info("refresher stopped")
}

func (r *Refresher) refreshSchedule() {
	ctx, cancel := context.WithTimeout(r.ctx, 30*time.Second)
	defer cancel()

	date := r.now().Format(scheduleDateLayout)
	games, err := r.target.RefreshSchedule(ctx, date)
	if err != nil {
		r.log.WithComponent("refresher").WithError(err).Warn("schedule refresh failed")
		return
	}

	live := make([]int, 0, len(games))
	for _, g := range games {
		if g.Live() {
			live = append(live, g.GamePk)
		}
	}

	r.mu.Lock()
	r.live = live
	r.mu.Unlock()

	metrics.EmitMetric(r.log, "refresher", "schedule_games", len(games), "gauge", logger.Fields{
		"date": date,
		"live": len(live),
	})
}

func (r *Refresher) refreshLive() {
	r.mu.Lock()
	live := append([]int(nil), r.live...)
	r.mu.Unlock()

	if len(live) == 0 {
		return
	}

	refreshed := 0
	for _, gamePk := range live {
		ctx, cancel := context.WithTimeout(r.ctx, 30*time.Second)
		_, err := r.target.RefreshGame(ctx, gamePk)
		cancel()
		if err != nil {
			r.log.WithComponent("refresher").WithError(err).WithFields(logger.Fields{
				"game_pk": gamePk,
			}).Warn("live game refresh failed")
			continue
		}
		refreshed++
	}

	metrics.EmitMetric(r.log, "refresher", "games_refreshed", refreshed, "gauge", logger.Fields{
		"live": len(live),
	})
}

// liveGames reports the gamePks the last schedule pass found in progress.
func (r *Refresher) liveGames() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.live...)
}
