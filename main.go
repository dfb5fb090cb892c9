package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/awards"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/config"
	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/export"
	server "github.com/mauv0809/driveway-hoops/internal/http"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/notifier/slack"
	"github.com/mauv0809/driveway-hoops/internal/outbox"
	"github.com/mauv0809/driveway-hoops/internal/pubsub"
	"github.com/mauv0809/driveway-hoops/internal/scheduler"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/mauv0809/driveway-hoops/internal/tracker"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	hoopsStore := store.New(db)
	season, err := hoopsStore.EnsureDefaultSeason(cfg.DefaultSeasonName)
	if err != nil {
		log.Fatalf("Failed to ensure default season: %s", err)
	}
	log.Info("Default season ready", "id", season.ID, "name", season.Name)

	lifetime := metrics.New(db)
	metricsSvc := metrics.NewService().WithLifetimeStore(lifetime)
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	// Without a project the outbox keeps queueing and /sync/push reports it.
	var publisher pubsub.PubSubClient
	if cfg.ProjectID != "" {
		client, err := pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer client.Close()
		publisher = client
	} else {
		log.Warn("GCP_PROJECT not set, remote sync disabled")
	}

	rules := boxscore.Rules{TargetScore: cfg.Rules.TargetScore, WinMargin: cfg.Rules.WinMargin}
	aggOpts := aggregate.Options{CloseGameMargin: cfg.Rules.CloseGameMargin}
	statsCfg := stats.Config{
		Rules:     rules,
		Aggregate: aggOpts,
		Thresholds: awards.Thresholds{
			MinGames:             cfg.Awards.MinGames,
			ClutchMinGames:       cfg.Awards.ClutchMinGames,
			MostImprovedMinGames: cfg.Awards.MostImprovedMinGames,
		},
	}

	dispatcher := outbox.NewDispatcher(hoopsStore, publisher, metricsSvc)
	s := server.NewServer(server.Deps{
		Store:          hoopsStore,
		Tracker:        tracker.New(hoopsStore, notifier, metricsSvc, rules),
		Stats:          stats.New(hoopsStore, metricsSvc, statsCfg),
		Exporter:       export.New(hoopsStore, rules, aggOpts),
		Dispatcher:     dispatcher,
		Merger:         outbox.NewMerger(hoopsStore),
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Lifetime:       lifetime,
	}, cfg)

	sched := scheduler.New(cfg.SyncSchedule, dispatcher)
	if dispatcher.Configured() {
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %s", err)
		}
		defer sched.Stop()
	}

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
