package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/trailerboard/internal/api"
	"github.com/creamcroissant/trailerboard/internal/bootstrap"
	"github.com/creamcroissant/trailerboard/internal/job"
	"github.com/creamcroissant/trailerboard/internal/security"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and background jobs",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	scheduler, err := buildScheduler(a, a.infra.Registry)
	if err != nil {
		return err
	}
	// Warm the summary cache and gauges before the first request.
	if err := scheduler.RunNow(ctx, statusSnapshotJobName); err != nil {
		a.logger.Warn("initial status snapshot failed", "error", err)
	}
	scheduler.Start()

	limiter, err := security.NewRateLimiter(a.infra.Cache)
	if err != nil {
		return err
	}
	router := api.NewRouter(a.logger, a.services, a.cfg.Metrics, a.infra.Registry,
		api.WithWriteLimit(limiter, a.cfg.HTTP.WriteLimit, a.cfg.HTTP.WriteWindow),
	)
	server := bootstrap.NewHTTPServer(a.cfg.HTTP, router)

	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTP.Addr, "env", a.cfg.App.Environment, "version", a.cfg.App.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down http server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", "error", err)
	}
	a.logger.Info("server exited cleanly")
	return nil
}

const (
	statusSnapshotJobName = "orders.status_snapshot"
	buildDigestJobName    = "schedule.build_digest"
)

// buildScheduler registers the background jobs. reg may be nil for one-shot
// runs that have no metrics endpoint.
func buildScheduler(a *app, reg prometheus.Registerer) (*job.Scheduler, error) {
	scheduler := job.NewScheduler(a.logger)

	snapshot, err := job.NewStatusSnapshotJob(a.services.Board, reg, a.logger)
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(a.cfg.Board.SnapshotSpec, snapshot); err != nil {
		return nil, err
	}

	digest, err := job.NewBuildDigestJob(a.services.Schedule, reg, a.logger)
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(a.cfg.Board.DigestSpec, digest); err != nil {
		return nil, fmt.Errorf("digest job: %w", err)
	}
	return scheduler, nil
}
