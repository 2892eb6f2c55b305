package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcy/internal/config"
	"github.com/terraincognita07/ovumcy/internal/db"
	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/services"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "ovumcy",
		Short:         "Ovumcy menstrual cycle tracking API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv(config.ConfigPathEnvVar, configPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newServeCommand(),
		newRecalcCommand(),
		newMigrateCommand(),
		newResetPasswordCommand(),
		newGenerateSecretCommand(),
	)
	return root
}

// loadRuntime loads configuration, configures logging and opens the database
// with migrations applied.
func loadRuntime() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	return cfg, database, nil
}

func analyticsConfig(cfg *config.Config) services.AnalyticsConfig {
	return services.AnalyticsConfig{
		MinCyclesForPrediction: cfg.Analytics.MinCyclesForPrediction,
		DefaultCycleLength:     cfg.Analytics.DefaultCycleLength,
	}
}

func closeDatabase(database *gorm.DB) {
	if err := db.Close(database); err != nil {
		logging.Warn().Err(err).Msg("database close failed")
	}
}
