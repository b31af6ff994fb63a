package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/tgienger/taskhub/internal/config"
	"github.com/tgienger/taskhub/internal/db"
	"github.com/tgienger/taskhub/internal/export"
	"github.com/tgienger/taskhub/internal/logging"
	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/seed"
	"github.com/tgienger/taskhub/internal/store"
	"github.com/tgienger/taskhub/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("taskhub", flag.ContinueOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if cfg.ShowVersion {
		fmt.Printf("taskhub %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	// The UI owns the terminal, so logs go to a file
	fileLogger, err := logging.NewFileLogger(cfg.DataDir, logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat))
	if err != nil {
		return err
	}
	defer fileLogger.Close()
	logger := fileLogger.Logger
	logger.Info("starting", "version", version, "data_dir", cfg.DataDir)

	var settings *db.DB
	if cfg.RememberView {
		settings, err = db.New(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("initializing settings database: %w", err)
		}
		defer settings.Close()
	}

	tasks, err := initialTasks(cfg, logger)
	if err != nil {
		return err
	}

	st, err := store.New(store.WithTasks(tasks), store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	app := ui.NewApp(st, ui.Options{
		Settings:      settings,
		Exporter:      export.New(cfg.ExportDir, cfg.ExportFormat),
		Logger:        logger,
		ToastDuration: cfg.ToastDuration(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	logger.Info("exiting", "tasks", st.Len())
	return nil
}

// initialTasks returns the seed file's tasks, the demo set, or nothing
func initialTasks(cfg *config.Config, logger *log.Logger) ([]models.Task, error) {
	switch {
	case cfg.SeedFile != "":
		tasks, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		logger.Info("seed file loaded", "path", cfg.SeedFile, "tasks", len(tasks))
		return tasks, nil
	case cfg.Demo:
		return seed.Sample(models.DateOf(time.Now())), nil
	}
	return nil, nil
}
