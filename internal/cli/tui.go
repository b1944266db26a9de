package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/route"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/watch"
)

// NewUICommand creates the interactive terminal UI command.
func NewUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui [route]",
		Short: "Open the interactive terminal UI",
		Long: `Open the interactive terminal UI.

The optional route selects the first view: "/" or "#pending" for the overview,
"/to-do-list/<id>#done" for one list. Logs go to the configured log file.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var start route.Route
			if len(args) == 1 {
				r, err := route.Parse(args[0])
				if err != nil {
					return err
				}
				start = r
			}

			logger, closer, err := logging.OpenFile(opts.Config.LogFile, logging.Options{Level: opts.Config.LogLevel})
			if err != nil {
				return err
			}
			opts.setLogger(logger, closer)

			svc, err := opts.service()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var events <-chan struct{}
			if loc := svc.Repository().Location(); opts.Config.Watch && loc != "" {
				w, err := watch.New(loc, watch.DefaultDebounce, logger)
				if err != nil {
					return err
				}
				if err := w.Start(ctx); err != nil {
					return err
				}
				defer w.Close()
				events = w.Events()
			}

			logger.Info("ui start", "route", start.String(), "backend", opts.Config.Backend)
			last, err := ui.Run(ctx, svc, opts.Theme(), start, events)
			if err != nil {
				return err
			}
			logger.Info("ui exit", "route", last.String())
			return nil
		},
	}
}
