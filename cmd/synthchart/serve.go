package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"SynthChart/internal/api"
	"SynthChart/internal/model"
	"SynthChart/internal/recorder"
	"SynthChart/internal/scheduler"
)

var runOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chart API and the scheduled refresh of configured pairs",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true",
		"Refresh every configured pair once at startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, col, err := setup()
	if err != nil {
		return err
	}
	logger.Info("SynthChart starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	periods, err := cfg.ChartPeriods()
	if err != nil {
		return err
	}
	var targets []scheduler.Target
	for _, p := range cfg.Pairs {
		for _, period := range periods {
			targets = append(targets, scheduler.Target{
				Base:   model.CurrencyKey(p.Base),
				Quote:  model.CurrencyKey(p.Quote),
				Period: period,
			})
		}
	}

	sched := scheduler.NewScheduler(ctx, col, rec, targets, logger)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		cancel()
		sched.Stop()
	}()

	if runOnStart {
		logger.Info("run-on-start enabled, refreshing now")
		sched.RunInBackground()
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.NewHandler(col, rec, logger),
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping...")
	case err := <-serveErr:
		logger.WithError(err).Error("http server error")
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("SynthChart stopped")
	return nil
}
