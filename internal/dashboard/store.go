package dashboard

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"pitchflow/internal/metrics"
	"pitchflow/internal/models"
)

// metricStore retains a bounded collection of the most recent metrics that have been
// emitted by the application. It is safe for concurrent use.
type metricStore struct {
	mu    sync.RWMutex
	items []metrics.Metric
	limit int
}

func newMetricStore(limit int) *metricStore {
	if limit <= 0 {
		limit = 200
	}
	return &metricStore{limit: limit}
}

func (s *metricStore) handle(metric metrics.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, metric)
	if len(s.items) > s.limit {
		// keep the most recent entries only
		s.items = append([]metrics.Metric(nil), s.items[len(s.items)-s.limit:]...)
	}
}

func (s *metricStore) snapshot() []metrics.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]metrics.Metric, len(s.items))
	copy(out, s.items)
	return out
}

// logRecord is the serialisable representation of a captured log entry that is
// served by the dashboard API.
type logRecord struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// logStore retains the most recent logs that flow through the global logger. The
// store implements the logrus Hook interface so that it can be attached directly to
// the application's logger.
type logStore struct {
	mu      sync.RWMutex
	items   []logRecord
	limit   int
	enabled atomic.Bool
}

func newLogStore(limit int) *logStore {
	if limit <= 0 {
		limit = 200
	}
	ls := &logStore{limit: limit}
	ls.enabled.Store(true)
	return ls
}

func (s *logStore) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (s *logStore) Fire(entry *logrus.Entry) error {
	if !s.enabled.Load() {
		return nil
	}

	record := logRecord{
		Timestamp: entry.Time,
		Level:     entry.Level.String(),
		Message:   entry.Message,
	}

	if component, ok := entry.Data["component"].(string); ok {
		record.Component = component
	}

	if len(entry.Data) > 0 {
		record.Fields = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			if k == "component" {
				continue
			}

			switch val := v.(type) {
			case error:
				record.Fields[k] = val.Error()
			case fmt.Stringer:
				record.Fields[k] = val.String()
			default:
				record.Fields[k] = val
			}
		}
	}

	s.mu.Lock()
	s.items = append(s.items, record)
	if len(s.items) > s.limit {
		s.items = append([]logRecord(nil), s.items[len(s.items)-s.limit:]...)
	}
	s.mu.Unlock()
	return nil
}

func (s *logStore) snapshot() []logRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]logRecord, len(s.items))
	copy(out, s.items)
	return out
}

func (s *logStore) close() {
	s.enabled.Store(false)
}

type cachedReport struct {
	report   *models.GameReport
	cachedAt time.Time
}

// reportCache holds recently built game reports keyed by gamePk. Entries
// expire after the configured TTL and the cache never holds more than limit
// entries; the stalest entry is evicted first.
type reportCache struct {
	mu    sync.RWMutex
	items map[int]cachedReport
	limit int
	ttl   time.Duration

	now func() time.Time
}

func newReportCache(limit int, ttl time.Duration) *reportCache {
	if limit <= 0 {
		limit = 50
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &reportCache{
		items: make(map[int]cachedReport),
		limit: limit,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *reportCache) get(gamePk int) (*models.GameReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.items[gamePk]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.cachedAt) > c.ttl {
		return nil, false
	}
	return entry.report, true
}

func (c *reportCache) put(gamePk int, report *models.GameReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[gamePk]; !exists && len(c.items) >= c.limit {
		c.evictStalest()
	}
	c.items[gamePk] = cachedReport{report: report, cachedAt: c.now()}
}

// evictStalest removes the oldest entry. Callers must hold the write lock.
func (c *reportCache) evictStalest() {
	var (
		stalestKey int
		stalestAt  time.Time
		found      bool
	)
	for key, entry := range c.items {
		if !found || entry.cachedAt.Before(stalestAt) {
			stalestKey = key
			stalestAt = entry.cachedAt
			found = true
		}
	}
	if found {
		delete(c.items, stalestKey)
	}
}

type cachedSchedule struct {
	games    []models.ScheduleGame
	cachedAt time.Time
}

// scheduleCache holds per-date schedule listings with the same TTL semantics
// as the report cache. Dates are the MM/DD/YYYY strings the feed expects.
type scheduleCache struct {
	mu    sync.RWMutex
	items map[string]cachedSchedule
	ttl   time.Duration

	now func() time.Time
}

func newScheduleCache(ttl time.Duration) *scheduleCache {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &scheduleCache{
		items: make(map[string]cachedSchedule),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *scheduleCache) get(date string) ([]models.ScheduleGame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.items[date]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.cachedAt) > c.ttl {
		return nil, false
	}
	return entry.games, true
}

func (c *scheduleCache) put(date string, games []models.ScheduleGame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Stale dates accumulate slowly (one key per queried day); prune any
	// expired entries while we hold the lock.
	for key, entry := range c.items {
		if c.now().Sub(entry.cachedAt) > c.ttl {
			delete(c.items, key)
		}
	}
	c.items[date] = cachedSchedule{games: games, cachedAt: c.now()}
}
