package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdillondc/todo-txt-tui/internal/dashboard"
	"github.com/mdillondc/todo-txt-tui/internal/watch"
)

var flagServePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only live dashboard of the task list",
	Long: `Serve the task list on localhost: GET /tasks returns the current sorted
list as JSON, and /ws streams every change as it lands in the file. The
dashboard never writes; edits keep going through the file or the other
commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, cfg, err := newList()
		if err != nil {
			return err
		}

		server := dashboard.NewServer(&dashboard.Config{
			Port:   flagServePort,
			Logger: newLogger(cfg, "[dashboard] "),
		})
		if err := server.Start(); err != nil {
			return err
		}
		defer server.Stop()
		cmd.Printf("dashboard listening on http://%s\n", server.Addr())

		handler := dashboard.NewHandler(server, newLogger(cfg, "[dashboard] "))

		lines, err := l.Sorted()
		if err != nil {
			return err
		}
		handler.OnListChanged(lines, time.Now())

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

		watcher.Run(ctx,
			func() watch.Focus { return watch.Focus{} },
			func(r watch.Refresh) {
				handler.OnListChanged(r.Lines, time.Now())
			})
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&flagServePort, "port", 8321, "localhost port for the dashboard")
	rootCmd.AddCommand(serveCmd)
}
