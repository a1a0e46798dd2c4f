// Package config loads the read-only feature flags that the task core
// branches on, plus the optional display theme.
//
// Settings are read once at startup and passed around by value; nothing in
// the core mutates or persists them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the boolean feature flags from settings.conf together with
// runtime tunables.
type Settings struct {
	EnableCompletionAndCreationDates          bool
	HideCompletionAndCreationDates            bool
	PlaceCursorBeforeMetadataWhenEditingTasks bool
	DisplayHiddenTasksByDefault               bool
	HideTasksWithThresholdDates               bool

	// SyncInterval is the watcher's poll interval for external changes.
	SyncInterval time.Duration

	// Debug enables the rotating debug log next to the settings file.
	Debug bool
}

// Defaults returns the stock configuration used when no settings file
// exists.
func Defaults() Settings {
	return Settings{
		EnableCompletionAndCreationDates: true,
		HideCompletionAndCreationDates:   true,
		HideTasksWithThresholdDates:      true,
		SyncInterval:                     2 * time.Second,
	}
}

// DefaultPath returns the conventional settings location,
// ~/.config/todo-txt-tui/settings.conf.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todo-txt-tui", "settings.conf")
}

// Load reads settings from the given file. A missing file yields the
// defaults without error; a present but unreadable or malformed file is an
// error. Environment variables prefixed TODOTXT_ override file values.
func Load(path string) (Settings, error) {
	def := Defaults()

	v := viper.New()
	v.SetDefault("enableCompletionAndCreationDates", def.EnableCompletionAndCreationDates)
	v.SetDefault("hideCompletionAndCreationDates", def.HideCompletionAndCreationDates)
	v.SetDefault("placeCursorBeforeMetadataWhenEditingTasks", def.PlaceCursorBeforeMetadataWhenEditingTasks)
	v.SetDefault("displayHiddenTasksByDefault", def.DisplayHiddenTasksByDefault)
	v.SetDefault("hideTasksWithThresholdDates", def.HideTasksWithThresholdDates)
	v.SetDefault("syncInterval", def.SyncInterval)
	v.SetDefault("debug", def.Debug)
	v.SetEnvPrefix("TODOTXT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return def, fmt.Errorf("failed to read settings %s: %w", path, err)
			}
		}
	}

	return Settings{
		EnableCompletionAndCreationDates:          v.GetBool("enableCompletionAndCreationDates"),
		HideCompletionAndCreationDates:            v.GetBool("hideCompletionAndCreationDates"),
		PlaceCursorBeforeMetadataWhenEditingTasks: v.GetBool("placeCursorBeforeMetadataWhenEditingTasks"),
		DisplayHiddenTasksByDefault:               v.GetBool("displayHiddenTasksByDefault"),
		HideTasksWithThresholdDates:               v.GetBool("hideTasksWithThresholdDates"),
		SyncInterval:                              v.GetDuration("syncInterval"),
		Debug:                                     v.GetBool("debug"),
	}, nil
}
