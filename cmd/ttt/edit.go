package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdillondc/todo-txt-tui/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit <old text> [new text]",
	Short: "Edit a task",
	Long: `Replace the first task matching the old text. With only the old text and
a terminal attached, an editing prompt is shown pre-filled with the task.

When placeCursorBeforeMetadataWhenEditingTasks is enabled, the prompt
edits only the free-text portion and the task's tags are carried over
unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, cfg, err := newList()
		if err != nil {
			return err
		}

		oldText := args[0]
		var newText string
		if len(args) > 1 {
			newText = strings.Join(args[1:], " ")
		} else {
			canonical := task.Normalize(oldText)
			if cfg.PlaceCursorBeforeMetadataWhenEditingTasks {
				text, metadata := task.SplitMetadata(canonical)
				edited, err := promptText("Edit Task", text)
				if err != nil {
					return err
				}
				newText = strings.TrimSpace(edited + " " + metadata)
			} else {
				newText, err = promptText("Edit Task", canonical)
				if err != nil {
					return err
				}
			}
		}
		if strings.TrimSpace(newText) == "" {
			return nil
		}

		line, err := l.Edit(oldText, newText)
		if err != nil {
			return err
		}
		fmt.Println(line)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
