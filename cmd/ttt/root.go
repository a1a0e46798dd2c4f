package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mdillondc/todo-txt-tui/internal/config"
	"github.com/mdillondc/todo-txt-tui/internal/list"
	"github.com/mdillondc/todo-txt-tui/internal/logging"
	"github.com/mdillondc/todo-txt-tui/internal/store"
)

var (
	flagFile     string
	flagSettings string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "ttt",
	Short: "Manage a todo.txt task list",
	Long: `ttt manages a plain-text task list in the todo.txt format: one task per
line, with priority, dates, recurrence, projects and contexts encoded as
inline tags. Completed tasks are archived to a sibling done.txt.

Every mutation rewrites the line in canonical form, so the file stays
normalized no matter how tags were typed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "todo.txt", "path to the todo.txt file")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", config.DefaultPath(), "path to the settings file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write a debug log next to the settings file")
}

// loadSettings reads the settings file and applies command-line overrides.
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load(flagSettings)
	if err != nil {
		return cfg, err
	}
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, nil
}

// newLogger returns the debug logger for one subsystem prefix.
func newLogger(cfg config.Settings, prefix string) *log.Logger {
	if !cfg.Debug {
		return logging.Discard()
	}
	dir := filepath.Dir(flagSettings)
	return logging.New(prefix, filepath.Join(dir, "debug.log"))
}

// newList wires the store and the mutation layer from the persistent flags.
func newList() (*list.List, config.Settings, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, cfg, err
	}
	st := store.New(flagFile)
	return list.New(st, cfg, newLogger(cfg, "[list] ")), cfg, nil
}

// storeFor returns the store for the configured file path.
func storeFor() *store.Store {
	return store.New(flagFile)
}

// settingsDir returns the directory holding the settings file, which also
// hosts the theme, the debug log and the search index.
func settingsDir() string {
	return filepath.Dir(flagSettings)
}

// themePath returns the theme file conventionally next to the settings.
func themePath() string {
	if flagSettings == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(flagSettings), "theme.toml")
}

func printLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(os.Stdout, line)
	}
}
