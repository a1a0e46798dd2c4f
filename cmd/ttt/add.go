package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a task",
	Long: `Add a task to the list. With no arguments and a terminal attached, an
input prompt is shown.

Due dates accept natural-language shorthands: due:today, due:tom, due:fri,
due:nw (next week), due:nm (next month), due:11dec. They are resolved to
concrete dates when the task is stored. A task identical to an existing
line is skipped silently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			var err error
			text, err = promptText("Add Task", "")
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return nil
			}
		}

		l, _, err := newList()
		if err != nil {
			return err
		}
		line, err := l.Add(text)
		if err != nil {
			return err
		}
		fmt.Println(line)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// promptText opens an input form pre-filled with initial. It fails when no
// terminal is attached rather than blocking a pipeline.
func promptText(title, initial string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no task text given and stdin is not a terminal")
	}
	text := initial
	input := huh.NewInput().Title(title).Value(&text)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt aborted: %w", err)
	}
	return text, nil
}
