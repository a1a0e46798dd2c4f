package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <text...>",
	Short: "Toggle completion of a task",
	Long: `Toggle the completion state of the first task matching the given text.
Completing a recurring task (rec: tag) also schedules its next occurrence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		line, err := l.Complete(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if line == "" {
			fmt.Println("no matching task")
			return nil
		}
		fmt.Println(line)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <text...>",
	Short: "Delete a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		return l.Delete(strings.Join(args, " "))
	},
}

var postponeCmd = &cobra.Command{
	Use:   "postpone <text...>",
	Short: "Push a task's due date to tomorrow",
	Long: `Move the due date of the first task matching the given text. A task due
today or later slips one day; an overdue task jumps to tomorrow rather
than creeping forward from the past. Tasks without a due date are left
alone.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		line, err := l.Postpone(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if line == "" {
			fmt.Println("no matching task with a due date")
			return nil
		}
		fmt.Println(line)
		return nil
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move completed tasks to done.txt",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		return l.Archive()
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite the whole file in canonical form",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := newList()
		if err != nil {
			return err
		}
		lines, err := l.NormalizeAll()
		if err != nil {
			return err
		}
		printLines(lines)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd, rmCmd, postponeCmd, archiveCmd, normalizeCmd)
}
