package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/magiccup/fantastat/internal/config"
	"github.com/magiccup/fantastat/internal/database"
	server "github.com/magiccup/fantastat/internal/http"
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
	"github.com/magiccup/fantastat/internal/notifier"
	slacknotifier "github.com/magiccup/fantastat/internal/notifier/slack"
	"github.com/magiccup/fantastat/internal/report"
	"github.com/magiccup/fantastat/internal/stats"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	leagueStore := league.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	engine := stats.New(leagueStore, metricsSvc)
	imp := importer.New(leagueStore, metricsSvc)
	reportGen := report.New(leagueStore, engine, metricsSvc)

	var notif notifier.Notifier = notifier.NewNop()
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		notif = slacknotifier.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
		log.Info("Slack notifier enabled", "channel", cfg.Slack.ChannelID)
	}

	s := server.NewServer(
		leagueStore,
		engine,
		imp,
		reportGen,
		notif,
		metricsSvc,
		metricsHandler,
		cfg,
	)

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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
