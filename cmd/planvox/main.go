package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/planvox/planvox/internal/allocator"
	"github.com/planvox/planvox/internal/cli"
	"github.com/planvox/planvox/internal/db"
	"github.com/planvox/planvox/internal/repository"
	"github.com/planvox/planvox/internal/service"
	"github.com/planvox/planvox/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.planvox/planvox.db
	dbPath := os.Getenv("PLANVOX_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planvox", "planvox.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// PLANVOX_SEED pins the allocator's randomness for reproducible plans.
	seed := time.Now().UnixNano()
	if raw := os.Getenv("PLANVOX_SEED"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing PLANVOX_SEED: %w", err)
		}
		seed = parsed
	}
	alloc := allocator.New(rand.New(rand.NewSource(seed)))

	engine := session.NewEngine(alloc)

	app := &cli.App{
		Conversations: service.NewConversationService(engine, sessionRepo, uow),
	}

	// Detect interactive terminal for shell-only entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
