package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/geocoder89/mesto/internal/config"
	"github.com/geocoder89/mesto/internal/db"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the mesto database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		migrationCmd("up", "Apply all pending migrations", (*db.Migrator).Up),
		migrationCmd("down", "Roll back the most recent migration", (*db.Migrator).Down),
		migrationCmd("status", "Print the state of every migration", (*db.Migrator).Status),
		versionCmd(),
	)

	return root
}

func migrationCmd(use, short string, fn func(*db.Migrator, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *db.Migrator) error {
				if err := fn(m, cmd.Context()); err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", use).Wrap(err)
				}
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *db.Migrator) error {
				v, err := m.Version(cmd.Context())
				if err != nil {
					return oops.Code("MIGRATION_FAILED").With("operation", "version").Wrap(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

func withMigrator(ctx context.Context, fn func(*db.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	dbURL, err := config.DatabaseURL(env)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	pool, err := db.NewPool(ctx, dbURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	m, err := db.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
