package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusflow-app/focusflow/internal/reminder"
	"github.com/focusflow-app/focusflow/internal/storage"
	"github.com/focusflow-app/focusflow/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusflow failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	slots := update.LoadSlotTimes(context.Background(), repo)
	engine := reminder.NewEngine(slots)

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModelWithConfig(repo, engine, notifier, cfg)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
