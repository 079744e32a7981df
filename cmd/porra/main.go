package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/birreros/porra/internal/adapters/calendar"
	"github.com/birreros/porra/internal/adapters/http/api"
	"github.com/birreros/porra/internal/adapters/remote"
	"github.com/birreros/porra/internal/adapters/repository"
	app "github.com/birreros/porra/internal/app"
	"github.com/birreros/porra/internal/config"
	"github.com/birreros/porra/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	races, err := calendar.LoadRaces(cfg.CalendarPath)
	if err != nil {
		log.Warn(ctx, "race calendar unavailable; running without one",
			logger.String("path", cfg.CalendarPath), logger.Error(err))
	}

	drivers, err := calendar.LoadDrivers(cfg.DriversPath)
	if err != nil {
		log.Warn(ctx, "driver list unavailable; running without one",
			logger.String("path", cfg.DriversPath), logger.Error(err))
	}

	store, err := repository.NewFileStore(cfg.CachePath, repository.WithIndent(cfg.CacheIndent))
	if err != nil {
		os.Stderr.WriteString("failed to open snapshot store: " + err.Error() + "\n")
		return
	}

	opts := []app.Option{
		app.WithLogger(log.Named("service")),
		app.WithStore(store),
		app.WithRaces(races),
		app.WithDrivers(drivers),
		app.WithStatsTopLimit(cfg.StatsTopLimit),
	}
	if cfg.RemoteBaseURL != "" {
		client, err := remote.NewClient(cfg.RemoteBaseURL, remote.WithSecret(cfg.RemoteSecret))
		if err != nil {
			os.Stderr.WriteString("failed to build remote client: " + err.Error() + "\n")
			return
		}
		pusher := remote.NewPusher(client,
			remote.WithPushInterval(time.Duration(cfg.PushIntervalMS)*time.Millisecond),
			remote.WithPusherLogger(log.Named("pusher")),
		)
		opts = append(opts, app.WithRemote(client, pusher))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
