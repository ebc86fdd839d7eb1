package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath         string
	DesktopNotifications bool
	TaskPollSeconds      int
	HabitPollSeconds     int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:         defaultDatabasePath(),
		DesktopNotifications: false,
		TaskPollSeconds:      5,
		HabitPollSeconds:     60,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvBool("FOCUSFLOW_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSFLOW_TASK_POLL_SECONDS"); ok && v > 0 {
		cfg.TaskPollSeconds = v
	}
	if v, ok := getEnvInt("FOCUSFLOW_HABIT_POLL_SECONDS"); ok && v > 0 {
		cfg.HabitPollSeconds = v
	}
	return cfg
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusflow.db"
	}
	return filepath.Join(home, ".focusflow", "focusflow.db")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
