package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcy/internal/api"
	"github.com/terraincognita07/ovumcy/internal/db"
	"github.com/terraincognita07/ovumcy/internal/services"
)

const triggerCLI = "cli"

var errRecalcTargetRequired = errors.New("pass --all or --user")

type recalcOptions struct {
	userID   uint
	all      bool
	insights bool
}

func (options recalcOptions) validate() error {
	if options.all == (options.userID != 0) {
		return errRecalcTargetRequired
	}
	return nil
}

func newRecalcCommand() *cobra.Command {
	options := recalcOptions{}

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate statistics and predictions",
		Long:  "Recalculate statistics and predictions for one user or every user. Insights are only generated with --insights.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return options.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecalc(cmd.OutOrStdout(), options)
		},
	}
	cmd.Flags().UintVar(&options.userID, "user", 0, "recalculate a single user id")
	cmd.Flags().BoolVar(&options.all, "all", false, "recalculate every user")
	cmd.Flags().BoolVar(&options.insights, "insights", false, "also generate insights")
	return cmd
}

func runRecalc(out io.Writer, options recalcOptions) error {
	cfg, database, err := loadRuntime()
	if err != nil {
		return err
	}
	defer closeDatabase(database)

	recalculation := api.NewServices(db.NewRepositories(database), analyticsConfig(cfg)).Recalculation
	runOptions := services.RecalculationOptions{IncludeInsights: options.insights, Trigger: triggerCLI}
	now := time.Now().In(cfg.Location())

	if options.userID != 0 {
		result, err := recalculation.RecalculateUser(options.userID, now, runOptions)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "user %d: prediction=%t insights=%d\n", result.UserID, result.PredictionGenerated, result.InsightsGenerated)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	summary, err := recalculation.RecalculateAll(ctx, now, runOptions)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "users=%d predictions=%d insights=%d failures=%d\n", summary.Users, summary.Predictions, summary.Insights, summary.Failures)
	return nil
}
