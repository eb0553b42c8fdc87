package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/langpal/langpal-api/config"
	"github.com/langpal/langpal-api/domain/export"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/pkg/migrations"
	"github.com/langpal/langpal-api/pkg/utils"
)

func main() {
	// CSV may go to stdout, so logs go to stderr.
	logger := log.NewLogger(os.Stderr, log.ParseLevel(os.Getenv("LOG_LEVEL")))

	config.InitializeEnvFile(logger)

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error

	switch args[0] {
	case "migrate":
		err = runMigrate(logger, args[1:])

	case "export":
		err = runExport(logger, args[1:])

	case "hash-key":
		err = runHashKey(args[1:], os.Stdout)

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err.Error())
		os.Exit(1)
	}
}

func runMigrate(logger *log.Logger, args []string) error {
	direction := migrations.DirectionUp
	if len(args) > 0 {
		direction = migrations.Direction(args[0])
	}

	if driver := config.NewKVStoreConfig().Driver; driver != kvstore.DriverPostgres {
		return fmt.Errorf("migrate only applies to KV_STORE_DRIVER=postgres (got %q)", driver)
	}

	db, err := config.NewDatabase(logger, nil)
	if err != nil {
		return fmt.Errorf("connect to database for migration: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance for migration: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrations.Run(ctx, sqlDB, migrations.Config{Dir: migrationsDir, Logger: logger}, direction); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	logger.Info("Database migrations completed", "direction", string(direction))
	return nil
}

func runExport(logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	output := fs.String("o", "", "write CSV to this file instead of stdout")

	if len(args) == 0 {
		return fmt.Errorf("export needs a dataset: waitlist, contact or team-applications")
	}
	dataset := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	exportCfg, err := export.LoadExportConfig()
	if err != nil {
		return err
	}

	cache := config.NewCacheConfig().NewCacheOrNil(logger)
	if cache != nil {
		defer func() { _ = config.CloseCache(cache, logger) }()
	}

	storeCfg := config.NewKVStoreConfig()
	if err := config.ValidateStoreDriverAllowed(config.CurrentEnvironment(), storeCfg.Driver); err != nil {
		return err
	}

	store, err := config.NewKVStore(logger, storeCfg, cache, false)
	if err != nil {
		return err
	}
	defer config.CloseKVStore(store, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	attachment, err := export.NewExportService(logger, store, exportCfg.EscapeCSV).Export(ctx, dataset)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = os.Stdout.Write(attachment.Body)
		return err
	}

	if err := os.WriteFile(*output, attachment.Body, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}

	logger.Info("Export written", "dataset", dataset, "rows", attachment.Rows, "file", *output)
	return nil
}

func runHashKey(args []string, out io.Writer) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: cli hash-key <raw-key>")
	}

	hash, err := export.HashAPIKey(args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, hash)
	return err
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate [up|down]                 Apply pending migrations (or roll back one) and exit")
	fmt.Println("  export <dataset> [-o file]        Write the waitlist, contact or team-applications CSV")
	fmt.Println("  hash-key <raw-key>                Print the bcrypt hash to use as EXPORT_API_KEY_HASH")
}
