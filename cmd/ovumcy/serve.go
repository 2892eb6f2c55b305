package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcy/internal/api"
	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var (
		port      string
		accessLog bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, accessLog)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides config)")
	cmd.Flags().BoolVar(&accessLog, "access-log", true, "log every request")
	return cmd
}

func runServe(portOverride string, accessLog bool) error {
	cfg, database, err := loadRuntime()
	if err != nil {
		return err
	}
	defer closeDatabase(database)

	if portOverride != "" {
		cfg.Server.Port = portOverride
	}
	location := cfg.Location()
	time.Local = location

	handler, err := api.NewHandler(database, api.HandlerOptions{
		SecretKey: cfg.Security.SecretKey,
		TokenTTL:  cfg.Security.TokenTTL,
		Location:  location,
		Analytics: analyticsConfig(cfg),
	})
	if err != nil {
		return err
	}
	app := api.NewApp(handler, api.AppOptions{
		MetricsEnabled: cfg.Metrics.Enabled,
		AccessLog:      accessLog,
	})

	if cfg.Recalc.Enabled {
		recalculation := scheduler.NewRecalculationScheduler(handler.Recalculation(), cfg.Recalc.Schedule, location)
		if err := recalculation.Start(); err != nil {
			return err
		}
		defer recalculation.Stop()
		logging.Info().Str("schedule", cfg.Recalc.Schedule).Msg("recalculation scheduler started")
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logging.Info().
		Str("port", cfg.Server.Port).
		Str("db", cfg.Database.Path).
		Str("tz", location.String()).
		Msg("ovumcy listening")
	return app.Listen(":" + cfg.Server.Port)
}
