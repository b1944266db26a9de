// Package cli wires the tada command line: every list and item operation for
// scripting, plus the interactive UI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/backend"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// RootOptions is the state shared by all subcommands.
type RootOptions struct {
	Config *config.Config
	Logger *log.Logger
	Group  bool // list grouped by pending/done

	svc     *todo.Service
	closers []io.Closer
}

// Theme is the configured theme, or the default before config is loaded.
func (o *RootOptions) Theme() ui.Theme {
	if o.Config == nil {
		return ui.NewTheme(config.DefaultTheme)
	}
	return ui.NewTheme(o.Config.Theme)
}

func (o *RootOptions) printer(cmd *cobra.Command) ui.Printer {
	return ui.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr(), Theme: o.Theme()}
}

// service opens the configured backend on first use.
func (o *RootOptions) service() (*todo.Service, error) {
	if o.svc != nil {
		return o.svc, nil
	}
	kv, err := backend.Open(o.Config.Backend, o.Config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", o.Config.Backend, err)
	}
	repo := store.NewRepository(kv, o.Config.Key, o.Logger)
	o.closers = append(o.closers, repo)
	o.Logger.Debug("opened store", "backend", o.Config.Backend, "path", repo.Location())
	o.svc = todo.New(repo, todo.WithLogger(o.Logger))
	return o.svc, nil
}

// setLogger replaces the logger, e.g. with a file logger for the UI.
func (o *RootOptions) setLogger(l *log.Logger, c io.Closer) {
	o.Logger = l
	if c != nil {
		o.closers = append(o.closers, c)
	}
}

// Close releases the store and any log file, most recent first.
func (o *RootOptions) Close() error {
	var errs []error
	for i := len(o.closers) - 1; i >= 0; i-- {
		errs = append(errs, o.closers[i].Close())
	}
	o.closers = nil
	return errors.Join(errs...)
}

// NewRootCommand creates the root command.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tada",
		Short: "tada - to-do lists in the terminal",
		Long: `tada keeps named to-do lists in a single document and edits them from
the command line or an interactive terminal UI.

Lists and items are addressed by ID or by their 1-based position.
Filters are all, pending and done (a leading # is accepted).`,
		Example: `  tada list add Groceries
  tada item add 1 "Buy milk"
  tada item toggle 1 1
  tada list ls pending
  tada ui /to-do-list/1709285400000#done`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return WrapExitError(ExitUsage, "config", err)
			}
			opts.Config = cfg
			logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel})
			if err != nil {
				return WrapExitError(ExitUsage, "config", err)
			}
			opts.Logger = logger
			return nil
		},
		RunE: helpAndFail,
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, c.CommandPath(), err)
	})

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().BoolVar(&opts.Group, "group", false, "group output by pending/done")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewItemCommand(opts))
	cmd.AddCommand(NewPreviewCommand(opts))
	cmd.AddCommand(NewUICommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := NewRootCommand(opts)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if cerr := opts.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	if err == nil {
		return ExitSuccess
	}
	if msg := err.Error(); msg != "" {
		ui.Printer{Out: stdout, Err: stderr, Theme: opts.Theme()}.Fail(msg)
	}
	return GetExitCode(err)
}

// Main is Execute against the process streams.
func Main(ctx context.Context) int {
	return Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// usageArgs turns a positional-argument failure into a usage error.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return WrapExitError(ExitUsage, "usage: "+cmd.UseLine(), err)
		}
		return nil
	}
}

// helpAndFail prints help for a command group called without a subcommand.
func helpAndFail(cmd *cobra.Command, _ []string) error {
	_ = cmd.Help()
	return NewExitError(ExitUsage, "")
}
