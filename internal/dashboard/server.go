package dashboard

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchflow/config"
	"pitchflow/internal/analysis"
	"pitchflow/internal/metrics"
	"pitchflow/internal/models"
	"pitchflow/internal/statsapi"
	"pitchflow/logger"
)

// Feed is the slice of the stats client the dashboard depends on. The
// concrete implementation is *statsapi.Client; tests substitute stubs.
type Feed interface {
	Schedule(ctx context.Context, date string) ([]models.ScheduleGame, error)
	PlayByPlay(ctx context.Context, gamePk int) (*statsapi.PlayByPlay, error)
	GameContext(ctx context.Context, gamePk int) (models.GameInfo, error)
}

// scheduleDateLayout is the MM/DD/YYYY format the feed expects.
const scheduleDateLayout = "01/02/2006"

// Server hosts the Gin-powered JSON API serving per-game consistency reports.
type Server struct {
	cfg           config.DashboardConfig
	opts          analysis.Options
	log           *logger.Log
	feed          Feed
	metricStore   *metricStore
	logStore      *logStore
	metricHandler metrics.MetricHandlerID
	reports       *reportCache
	schedules     *scheduleCache
	hub           *gameHub
	resources     *resourceMonitor
	httpServer    *http.Server

	now func() time.Time
}

// NewServer constructs a dashboard server when the dashboard feature is enabled.
// When the dashboard is disabled the returned server will be nil.
func NewServer(cfg config.DashboardConfig, opts analysis.Options, feed Feed, log *logger.Log) (*Server, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	cfg.Address = normalizeAddress(cfg.Address)

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = config.Duration(5 * time.Second)
	}

	if cfg.LogHistory <= 0 {
		cfg.LogHistory = 200
	}

	if cfg.ResourceHistory <= 0 {
		cfg.ResourceHistory = 200
	}

	metricStore := newMetricStore(cfg.ResourceHistory)
	handlerID := metrics.RegisterMetricHandler(metricStore.handle)

	logStore := newLogStore(cfg.LogHistory)
	log.AddHook(logStore)

	return &Server{
		cfg:           cfg,
		opts:          opts,
		log:           log,
		feed:          feed,
		metricStore:   metricStore,
		logStore:      logStore,
		metricHandler: handlerID,
		reports:       newReportCache(cfg.CacheSize, cfg.CacheTTL.Std()),
		schedules:     newScheduleCache(cfg.CacheTTL.Std()),
		hub:           newGameHub(log),
		resources:     newResourceMonitor(cfg.ResourceHistory, cfg.RefreshInterval.Std(), "/", log),
		now:           time.Now,
	}, nil
}

// Run starts the dashboard HTTP server and blocks until the provided context is
// cancelled or the underlying HTTP server exits with an error.
func (s *Server) Run(ctx context.Context, appName string) error {
	if s == nil {
		return nil
	}

	defer s.cleanup()

	router, err := s.buildRouter(appName)
	if err != nil {
		return err
	}

	if s.resources != nil {
		s.resources.start(ctx)
	}

	s.httpServer = &http.Server{
		Addr:    s.cfg.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return err
	}
}

func (s *Server) cleanup() {
	metrics.UnregisterMetricHandler(s.metricHandler)
	if s.logStore != nil {
		s.logStore.close()
	}
	if s.resources != nil {
		s.resources.stop()
	}
	if s.hub != nil {
		s.hub.close()
	}
}

// Address reports the network address the dashboard server listens on.
func (s *Server) Address() string {
	if s == nil {
		return ""
	}
	return s.cfg.Address
}

// RefreshSchedule fetches the schedule for a date, bypassing the cache, and
// stores the result for subsequent API reads.
func (s *Server) RefreshSchedule(ctx context.Context, date string) ([]models.ScheduleGame, error) {
	if s == nil {
		return nil, nil
	}
	games, err := s.feed.Schedule(ctx, date)
	if err != nil {
		return nil, err
	}
	s.schedules.put(date, games)
	return games, nil
}

// RefreshGame rebuilds the report for a game, bypassing the cache, and pushes
// the fresh report to any websocket subscribers.
func (s *Server) RefreshGame(ctx context.Context, gamePk int) (*models.GameReport, error) {
	if s == nil {
		return nil, nil
	}
	report, err := s.buildReport(ctx, gamePk)
	if err != nil {
		return nil, err
	}
	s.reports.put(gamePk, report)
	s.hub.broadcast(gamePk, report)
	return report, nil
}

func (s *Server) scheduleFor(ctx context.Context, date string) ([]models.ScheduleGame, error) {
	if games, ok := s.schedules.get(date); ok {
		return games, nil
	}
	return s.RefreshSchedule(ctx, date)
}

func (s *Server) reportFor(ctx context.Context, gamePk int) (*models.GameReport, error) {
	if report, ok := s.reports.get(gamePk); ok {
		return report, nil
	}
	report, err := s.buildReport(ctx, gamePk)
	if err != nil {
		return nil, err
	}
	s.reports.put(gamePk, report)
	return report, nil
}

func (s *Server) buildReport(ctx context.Context, gamePk int) (*models.GameReport, error) {
	start := time.Now()

	pbp, err := s.feed.PlayByPlay(ctx, gamePk)
	if err != nil {
		return nil, err
	}

	sides, err := analysis.AnalyzeGame(pbp, s.opts)
	if err != nil {
		return nil, err
	}

	info, err := s.feed.GameContext(ctx, gamePk)
	if err != nil {
		// The report is still useful without its labels.
		s.log.WithComponent("dashboard").WithError(err).WithFields(logger.Fields{
			"game_pk": gamePk,
		}).Warn("failed to resolve game context")
		info = models.GameInfo{
			GamePk:      gamePk,
			HomePitcher: "TBD",
			AwayPitcher: "TBD",
			Umpire:      "Unknown",
		}
	}

	logger.LogPerformanceEntry(s.log.WithFields(logger.Fields{"game_pk": gamePk}), "dashboard", "build_report", time.Since(start), nil)

	return &models.GameReport{
		Info:        info,
		Sides:       sides,
		GeneratedAt: s.now(),
	}, nil
}

func (s *Server) buildRouter(appName string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": appName,
			"endpoints": []string{
				"/api/games",
				"/api/game/:id",
				"/api/logs",
				"/api/resources",
				"/ws/game/:id",
			},
		})
	})

	router.GET("/api/games", func(c *gin.Context) {
		date := c.DefaultQuery("date", s.now().Format(scheduleDateLayout))
		if _, err := time.Parse(scheduleDateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be MM/DD/YYYY"})
			return
		}

		games, err := s.scheduleFor(c.Request.Context(), date)
		if err != nil {
			s.log.WithComponent("dashboard").WithError(err).Warn("failed to fetch schedule")
			c.JSON(http.StatusBadGateway, gin.H{"error": "error retrieving schedule"})
			return
		}

		payload := make([]gin.H, 0, len(games))
		for _, g := range games {
			payload = append(payload, gin.H{
				"game_pk":    g.GamePk,
				"label":      g.Label(),
				"status":     g.Status,
				"home_name":  g.HomeName,
				"away_name":  g.AwayName,
				"home_score": g.HomeScore,
				"away_score": g.AwayScore,
				"live":       g.Live(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"date": date, "games": payload})
	})

	router.GET("/api/game/:id", func(c *gin.Context) {
		gamePk, err := strconv.Atoi(c.Param("id"))
		if err != nil || gamePk <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game id must be a positive integer"})
			return
		}

		report, err := s.reportFor(c.Request.Context(), gamePk)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, report)
		case errors.Is(err, statsapi.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"error": "error retrieving game data"})
		case errors.Is(err, statsapi.ErrMalformedFeed):
			s.log.WithComponent("dashboard").WithError(err).Error("malformed feed payload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed feed payload"})
		default:
			s.log.WithComponent("dashboard").WithError(err).Warn("failed to build game report")
			c.JSON(http.StatusBadGateway, gin.H{"error": "error retrieving game data"})
		}
	})

	router.GET("/api/logs", func(c *gin.Context) {
		logsSnapshot := s.logStore.snapshot()
		payload := make([]gin.H, 0, len(logsSnapshot))
		for _, l := range logsSnapshot {
			payload = append(payload, gin.H{
				"timestamp": l.Timestamp.Format(time.RFC3339Nano),
				"level":     l.Level,
				"component": l.Component,
				"message":   l.Message,
				"fields":    l.Fields,
			})
		}
		c.JSON(http.StatusOK, gin.H{"logs": payload})
	})

	router.GET("/api/metrics", func(c *gin.Context) {
		metricsSnapshot := s.metricStore.snapshot()
		payload := make([]gin.H, 0, len(metricsSnapshot))
		for _, m := range metricsSnapshot {
			payload = append(payload, gin.H{
				"timestamp": m.Timestamp.Format(time.RFC3339Nano),
				"component": m.Component,
				"name":      m.Name,
				"value":     m.Value,
				"type":      m.Type,
				"fields":    m.Fields,
			})
		}
		c.JSON(http.StatusOK, gin.H{"metrics": payload})
	})

	router.GET("/api/resources", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"resources": s.resources.snapshot()})
	})

	router.GET("/ws/game/:id", func(c *gin.Context) {
		gamePk, err := strconv.Atoi(c.Param("id"))
		if err != nil || gamePk <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game id must be a positive integer"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already written the failure response.
			s.log.WithComponent("dashboard").WithError(err).Debug("websocket upgrade failed")
			return
		}

		sub := s.hub.subscribe(gamePk, conn)

		// Seed the stream with the current report so subscribers do not
		// wait a full refresh cycle for their first frame.
		if report, err := s.reportFor(c.Request.Context(), gamePk); err == nil {
			select {
			case sub.send <- report:
			default:
			}
		}

		s.hub.serve(gamePk, sub)
	})

	return router, nil
}

// requestID tags every request with an identifier so log lines produced while
// serving it can be correlated. An inbound X-Request-ID is honored.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)

	if addr == "" {
		return "0.0.0.0:8686"
	}

	if strings.Contains(addr, "://") {
		if parsed, err := url.Parse(addr); err == nil {
			if host := parsed.Host; host != "" {
				addr = host
			} else if parsed.Opaque != "" {
				addr = parsed.Opaque
			}
		}
	}

	if strings.HasPrefix(addr, ":") {
		if len(addr) > 1 && addr[1] >= '0' && addr[1] <= '9' {
			return "0.0.0.0" + addr
		}
	}

	host, port, err := net.SplitHostPort(addr)
	if err == nil {
		if host == "" || host == "*" {
			host = "0.0.0.0"
		}
		if port == "" {
			port = "8686"
		}
		return net.JoinHostPort(host, port)
	}

	if ip := net.ParseIP(addr); ip != nil {
		return net.JoinHostPort(addr, "8686")
	}

	if !strings.Contains(addr, ":") {
		return net.JoinHostPort(addr, "8686")
	}

	return addr
}
