package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pvidovic/estima/internal/cli"
	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/db"
	"github.com/pvidovic/estima/internal/phases"
	"github.com/pvidovic/estima/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local .env files may carry ESTIMA_* settings; absence is fine.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.estima/estima.db
	dbPath := os.Getenv("ESTIMA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".estima", "estima.db")
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	configRepo := repository.NewSQLiteConfigRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)

	// Load the persisted global configuration; fall back to built-in
	// defaults when nothing is stored yet or the load fails.
	ctx := context.Background()
	var store *config.Store
	global, err := configRepo.LoadGlobal(ctx)
	if err != nil || global == nil {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load configuration (%v), using defaults\n", err)
		}
		store = config.NewStore()
		if err := configRepo.SaveGlobal(ctx, store.Global()); err != nil {
			return fmt.Errorf("seeding default configuration: %w", err)
		}
	} else {
		store = config.NewStoreFrom(global)
	}

	defs, err := phases.LoadDefinitionsOrDefault(os.Getenv("ESTIMA_PHASES"))
	if err != nil {
		return fmt.Errorf("loading phase definitions: %w", err)
	}

	app := &cli.App{
		Store:       store,
		Config:      configRepo,
		Projects:    projectRepo,
		Definitions: defs,
		ProjectName: os.Getenv("ESTIMA_PROJECT"),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
