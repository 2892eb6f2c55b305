package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcy/internal/cli"
	"github.com/terraincognita07/ovumcy/internal/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := loadRuntime()
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", cfg.Database.Path)
			return nil
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Replace a user's password with a temporary one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := loadRuntime()
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			return cli.RunResetPasswordCommand(db.NewUserRepository(database), args[0], cmd.OutOrStdout())
		},
	}
}

func newGenerateSecretCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "gen-secret",
		Short: "Print a random SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerateSecretCommand(length, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&length, "length", 48, "number of characters")
	return cmd
}
