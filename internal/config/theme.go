package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Theme holds the display colors, as ANSI color codes or hex strings
// understood by lipgloss. Users can override any entry in theme.toml next
// to the settings file.
type Theme struct {
	Priorities map[string]string `toml:"priorities"`
	Project    string            `toml:"project"`
	Context    string            `toml:"context"`
	Metadata   string            `toml:"metadata"`
	Completed  string            `toml:"completed"`
	Link       string            `toml:"link"`

	HeadingOverdue string `toml:"heading_overdue"`
	HeadingToday   string `toml:"heading_today"`
	HeadingFuture  string `toml:"heading_future"`
}

// DefaultTheme mirrors the stock terminal palette.
func DefaultTheme() Theme {
	return Theme{
		Priorities: map[string]string{
			"A": "9",  // light red
			"B": "3",  // brown
			"C": "10", // light green
			"D": "12", // light blue
			"E": "5",  // dark magenta
		},
		Project:        "11",
		Context:        "13",
		Metadata:       "8",
		Completed:      "8",
		Link:           "12",
		HeadingOverdue: "9",
		HeadingToday:   "10",
		HeadingFuture:  "7",
	}
}

// LoadTheme reads a theme file, filling any omitted entry from the default
// palette. A missing file yields the defaults without error.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		if os.IsNotExist(err) {
			return DefaultTheme(), nil
		}
		return DefaultTheme(), fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	if theme.Priorities == nil {
		theme.Priorities = DefaultTheme().Priorities
	}
	return theme, nil
}
