package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mdillondc/todo-txt-tui/internal/config"
	"github.com/mdillondc/todo-txt-tui/internal/index"
	"github.com/mdillondc/todo-txt-tui/internal/render"
	"github.com/mdillondc/todo-txt-tui/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the task list grouped by due date",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, cfg, err := newList()
		if err != nil {
			return err
		}
		lines, err := l.Sorted()
		if err != nil {
			return err
		}
		theme, err := config.LoadTheme(themePath())
		if err != nil {
			return err
		}
		fmt.Print(render.New(cfg, theme).List(lines, time.Now()))
		return nil
	},
}

var flagSearchIndex bool

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search tasks case-insensitively",
	Long: `Search the task list for a substring, case-insensitively. With --archive
the sibling done.txt is searched too, through the SQLite index kept next
to the settings file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		l, cfg, err := newList()
		if err != nil {
			return err
		}

		if !flagSearchIndex {
			matched, err := l.Search(query)
			if err != nil {
				return err
			}
			printLines(matched)
			return nil
		}

		db, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.SyncStore(storeFor()); err != nil {
			return err
		}
		matched, err := db.Search(query)
		if err != nil {
			return err
		}
		printLines(matched)
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the unique +project tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		tags, err := l.Projects()
		if err != nil {
			return err
		}
		printLines(tags)
		return nil
	},
}

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List the unique @context tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		tags, err := l.Contexts()
		if err != nil {
			return err
		}
		printLines(tags)
		return nil
	},
}

var flagExportFormat string

// exportTask is the serialized view of one parsed task.
type exportTask struct {
	Line      string   `json:"line" yaml:"line"`
	Completed bool     `json:"completed" yaml:"completed"`
	Priority  string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Created   string   `json:"created,omitempty" yaml:"created,omitempty"`
	Finished  string   `json:"finished,omitempty" yaml:"finished,omitempty"`
	Due       string   `json:"due,omitempty" yaml:"due,omitempty"`
	Recur     string   `json:"recur,omitempty" yaml:"recur,omitempty"`
	Threshold string   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Hidden    bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Projects  []string `json:"projects,omitempty" yaml:"projects,omitempty"`
	Contexts  []string `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Text      string   `json:"text" yaml:"text"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export parsed tasks as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		lines, err := l.Sorted()
		if err != nil {
			return err
		}

		out := make([]exportTask, len(lines))
		for i, line := range lines {
			t := task.Parse(line)
			out[i] = exportTask{
				Line:      task.Normalize(line),
				Completed: t.Completed,
				Priority:  t.Priority,
				Created:   t.CreationDate,
				Finished:  t.CompletionDate,
				Due:       t.Due,
				Recur:     t.Recur,
				Threshold: t.Threshold,
				Hidden:    t.Hidden,
				Projects:  t.Projects,
				Contexts:  t.Contexts,
				Text:      strings.Join(t.FreeText, " "),
			}
		}

		switch flagExportFormat {
		case "yaml":
			return yaml.NewEncoder(os.Stdout).Encode(out)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		default:
			return fmt.Errorf("unknown export format %q (want yaml or json)", flagExportFormat)
		}
	},
}

// openIndex opens the SQLite search index kept next to the settings file.
func openIndex(cfg config.Settings) (*index.DB, error) {
	dir := "."
	if flagSettings != "" {
		dir = settingsDir()
	}
	return index.Open(filepath.Join(dir, "index.db"), newLogger(cfg, "[index] "))
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchIndex, "archive", false, "include done.txt via the search index")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(listCmd, searchCmd, projectsCmd, contextsCmd, exportCmd)
}
