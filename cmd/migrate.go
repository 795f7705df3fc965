// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/content-platform/migrations"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// migrateCmd manages the schema of the postgres store backend
var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down [version]|status|check]",
	Short: "Run database migrations for the postgres store backend",
	Long:  `Run database migrations for the postgres store backend, the DSN defaults to the DSN environment variable`,
	Args:  migrateArgs,
	RunE:  runMigrate,
}

// migrationReport is the json rendering of up and down.
type migrationReport struct {
	Applied []*goose.MigrationResult `json:"applied"`
}

// checkReport is the json rendering of check.
type checkReport struct {
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "status", "check":
		if len(args) == 2 {
			return fmt.Errorf("%s takes no version argument", args[0])
		}
	case "down":
		if len(args) == 2 {
			if v, err := strconv.ParseInt(args[1], 10, 64); err != nil || v < 0 {
				return fmt.Errorf("invalid version number: %q", args[1])
			}
		}
	default:
		return fmt.Errorf("invalid migration command: %q", args[0])
	}

	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	var target int64 = -1
	if len(args) > 1 {
		target, _ = strconv.ParseInt(args[1], 10, 64)
	}

	dsn, _ := cmd.Flags().GetString("dsn")
	format, _ := cmd.Flags().GetString("format")

	if dsn == "" {
		return fmt.Errorf("a DSN is required, set --dsn or the DSN environment variable")
	}
	if format != formatText && format != formatJSON {
		return fmt.Errorf("invalid format %q", format)
	}

	cmd.SilenceUsage = true
	return migrate(cmd.Context(), dsn, command, format, target, cmd.OutOrStdout())
}

func init() {
	migrateCmd.Flags().String("dsn", os.Getenv("DSN"), "PostgreSQL DSN connection string")
	migrateCmd.Flags().StringP("format", "f", formatText, "Output format (text or json)")

	rootCmd.AddCommand(migrateCmd)
}

func openMigrationDB(ctx context.Context, dsn string) (*sql.DB, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %v", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("DB connection failed: %v", err)
	}

	return db, nil
}

func migrate(ctx context.Context, dsn, command, format string, target int64, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openMigrationDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []goose.ProviderOption
	if format == formatJSON {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		return reportResults(out, format, results)
	case "down":
		results, err := migrateDown(ctx, provider, target)
		if err != nil {
			return err
		}
		return reportResults(out, format, results)
	case "status":
		return reportStatus(ctx, provider, format, out)
	case "check":
		return reportCheck(ctx, provider, format, out)
	}

	return nil
}

func migrateDown(ctx context.Context, provider *goose.Provider, target int64) ([]*goose.MigrationResult, error) {
	if target >= 0 {
		return provider.DownTo(ctx, target)
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return nil, err
	}

	return []*goose.MigrationResult{result}, nil
}

func reportResults(out io.Writer, format string, results []*goose.MigrationResult) error {
	if format == formatJSON {
		if results == nil {
			results = []*goose.MigrationResult{}
		}
		return json.NewEncoder(out).Encode(migrationReport{Applied: results})
	}

	for _, r := range results {
		fmt.Fprintln(out, r)
	}
	return nil
}

func reportStatus(ctx context.Context, provider *goose.Provider, format string, out io.Writer) error {
	statuses, err := provider.Status(ctx)
	if err != nil {
		return err
	}

	if format == formatJSON {
		return json.NewEncoder(out).Encode(statuses)
	}

	w := newTable()
	fmt.Fprintln(w, "APPLIED_AT\tMIGRATION")
	for _, s := range statuses {
		appliedAt := "Pending"
		if s.State == goose.StateApplied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\n", appliedAt, s.Source.Path)
	}
	return w.Flush()
}

func reportCheck(ctx context.Context, provider *goose.Provider, format string, out io.Writer) error {
	hasPending, err := provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	status := "ok"
	if hasPending {
		status = "pending"
	}

	if format == formatJSON {
		return json.NewEncoder(out).Encode(checkReport{Status: status, Version: current})
	}

	if hasPending {
		return fmt.Errorf("migrations are pending: current version %d", current)
	}

	fmt.Fprintf(out, "Database is up to date (version %d)\n", current)
	return nil
}
