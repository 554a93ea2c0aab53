package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/pintowar/bellum-sub001/internal/db"
	"github.com/pintowar/bellum-sub001/internal/engines"
	"github.com/pintowar/bellum-sub001/internal/scheduler"
	"github.com/pintowar/bellum-sub001/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wiring every subcommand needs.
type app struct {
	registry      *scheduler.Registry
	historyRepo   store.HistoryRepo
	isInteractive func() bool
}

func run() error {
	dbPath := os.Getenv("RCPSS_RUN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".rcpss", "runs.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer scheduler.RunObserver = scheduler.NoopRunObserver{}
	if level := os.Getenv("RCPSS_LOG_LEVEL"); level != "" {
		observer = scheduler.NewLogRunObserver(os.Stderr)
		slog.SetLogLoggerLevel(parseLevel(level))
	}

	a := &app{
		registry:    engines.DefaultRegistry(observer),
		historyRepo: store.NewSQLiteHistoryRepo(database),
		isInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	root := newRootCmd(a)
	return root.Execute()
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
