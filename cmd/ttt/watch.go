package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdillondc/todo-txt-tui/internal/config"
	"github.com/mdillondc/todo-txt-tui/internal/render"
	"github.com/mdillondc/todo-txt-tui/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the list whenever the file changes",
	Long: `Watch the todo.txt file and re-print the grouped listing whenever another
process modifies it. Changes are picked up by polling the file's
modification time; file system notifications only shorten the wait for
the next poll.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, cfg, err := newList()
		if err != nil {
			return err
		}
		theme, err := config.LoadTheme(themePath())
		if err != nil {
			return err
		}
		renderer := render.New(cfg, theme)

		// Normalize once up front so the session starts from canonical text.
		if _, err := l.NormalizeAll(); err != nil {
			return err
		}
		lines, err := l.Sorted()
		if err != nil {
			return err
		}
		fmt.Print(renderer.List(lines, time.Now()))

		st := storeFor()
		watcher, err := watch.New(st, &watch.Config{
			Interval: cfg.SyncInterval,
			Logger:   newLogger(cfg, "[watch] "),
		})
		if err != nil {
			return err
		}

		notifier, err := watch.NewNotifier(st.Path())
		if err != nil {
			return err
		}
		if err := notifier.Start(watcher.Nudge); err != nil {
			return err
		}
		defer notifier.Stop()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var focus watch.Focus
		watcher.Run(ctx,
			func() watch.Focus { return focus },
			func(r watch.Refresh) {
				focus = r.Focus
				fmt.Println("---")
				fmt.Print(renderer.List(r.Lines, time.Now()))
			})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
