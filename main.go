package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pitchflow/config"
	"pitchflow/internal/analysis"
	"pitchflow/internal/dashboard"
	"pitchflow/internal/models"
	"pitchflow/internal/refresher"
	"pitchflow/internal/statsapi"
	"pitchflow/logger"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	date := flag.String("date", "", "Analyze games for this date (MM/DD/YYYY), print the reports and exit")
	team := flag.String("team", "", "With -date, restrict analysis to games involving this team")

	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	appName := cfg.Pitchflow.Name
	if appName == "" {
		appName = "pitchflow"
	}

	log.WithFields(logger.Fields{
		"service": appName,
		"version": cfg.Pitchflow.Version,
	}).Info("starting pitchflow")

	client := statsapi.NewClient(cfg.Feed)
	opts := analysis.OptionsFromConfig(cfg.Analysis, analysis.GroupBySide)

	if *date != "" {
		if err := analyzeDay(context.Background(), client, opts, *date, *team, log); err != nil {
			log.WithError(err).Error("day analysis failed")
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := dashboard.NewServer(cfg.Dashboard, opts, client, log)
	if err != nil {
		log.WithError(err).Error("failed to create dashboard server")
		os.Exit(1)
	}
	if srv == nil {
		log.WithComponent("main").Error("dashboard disabled and no -date given; nothing to run")
		os.Exit(1)
	}

	ref := refresher.New(cfg.Refresh, srv)
	if err := ref.Start(ctx); err != nil {
		log.WithError(err).Error("failed to start refresher")
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx, appName); err != nil {
			log.WithError(err).Error("dashboard server failed")
			cancel()
		}
	}()

	log.WithFields(logger.Fields{"address": srv.Address()}).Info("all components started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.WithFields(logger.Fields{"signal": sig.String()}).Info("shutdown signal received")
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown")
	cancel()

	log.Info("stopping refresher")
	ref.Stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("graceful shutdown completed")
	case <-time.After(30 * time.Second):
		log.Warn("graceful shutdown timeout exceeded")
	}

	log.Info("pitchflow stopped")
}

// analyzeDay is the one-shot CLI mode: analyze every game on the date (that
// matches the optional team filter) and print the reports as JSON.
func analyzeDay(ctx context.Context, client *statsapi.Client, opts analysis.Options, date, team string, log *logger.Log) error {
	games, err := client.Schedule(ctx, date)
	if err != nil {
		return err
	}

	team = strings.ToLower(strings.TrimSpace(team))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	analyzed := 0
	for _, g := range games {
		if team != "" &&
			!strings.Contains(strings.ToLower(g.HomeName), team) &&
			!strings.Contains(strings.ToLower(g.AwayName), team) {
			continue
		}

		pbp, err := client.PlayByPlay(ctx, g.GamePk)
		if err != nil {
			if errors.Is(err, statsapi.ErrNoData) {
				log.WithComponent("main").WithFields(logger.Fields{
					"game_pk": g.GamePk,
					"label":   g.Label(),
				}).Warn("error retrieving game data")
				continue
			}
			return err
		}

		sides, err := analysis.AnalyzeGame(pbp, opts)
		if err != nil {
			return err
		}

		info, err := client.GameContext(ctx, g.GamePk)
		if err != nil {
			log.WithComponent("main").WithError(err).WithFields(logger.Fields{
				"game_pk": g.GamePk,
			}).Warn("failed to resolve game context")
			info = models.GameInfo{GamePk: g.GamePk, HomePitcher: "TBD", AwayPitcher: "TBD", Umpire: "Unknown"}
		}

		report := models.GameReport{Info: info, Sides: sides, GeneratedAt: time.Now()}
		if err := enc.Encode(report); err != nil {
			return err
		}
		analyzed++
	}

	log.WithComponent("main").WithFields(logger.Fields{
		"date":     date,
		"games":    len(games),
		"analyzed": analyzed,
	}).Info("day analysis complete")
	return nil
}
