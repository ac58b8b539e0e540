// Command backfill runs the financial backfill once from the command line.
//
//	backfill -dsn postgres://... [-dry-run] [-log-level debug]
//
// With -dry-run it prints the preview; otherwise it runs the migration and
// prints the result. Both are written to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"laundrydesk/internal/app"
	appctx "laundrydesk/internal/core/context"
	"laundrydesk/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "backfill: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("backfill", flag.ContinueOnError)
	dsn := fs.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (defaults to DATABASE_URL)")
	dryRun := fs.Bool("dry-run", false, "print the preview without writing")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dsn == "" {
		return fmt.Errorf("-dsn or DATABASE_URL is required")
	}

	log, err := logger.New(logger.Config{
		Level:       *logLevel,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext(appctx.OriginCLI))

	application, err := app.New(ctx, app.Config{
		DatabaseURL:     *dsn,
		MaxConns:        4,
		ApplicationName: "laundrydesk-backfill",
	})
	if err != nil {
		return err
	}
	defer application.Close()

	return execute(ctx, application, *dryRun, out)
}

func execute(ctx context.Context, application *app.App, dryRun bool, out io.Writer) error {
	var report any
	if dryRun {
		preview, err := application.Backfill.Preview(ctx)
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		report = preview
	} else {
		res, err := application.Backfill.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		report = res
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
