package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/ui"
)

// NewListCommand creates the list command group.
func NewListCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"lists", "l"},
		Short:   "Manage to-do lists",
		Long:    "Manage to-do lists. A <list> ref is a 1-based position or an ID; write id:<ID> to force an ID.",
		Args:    usageArgs(cobra.NoArgs),
		RunE:    helpAndFail,
	}
	cmd.AddCommand(
		newListLsCommand(opts),
		newListAddCommand(opts),
		newListRenameCommand(opts),
		newListRmCommand(opts),
		newListToggleCommand(opts),
		newListToggleAllCommand(opts),
		newListClearCommand(opts),
	)
	return cmd
}

func newListLsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [all|pending|done]",
		Short: "Show lists",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilterArg(args)
			if err != nil {
				return err
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.Lists(cmd.Context())
			if err != nil {
				return err
			}
			t := opts.Theme()
			panel := renderPanel(t, "to-do lists", listRows(lists), lists.Counts(), f, opts.Group, ui.NoListsText)
			fmt.Fprintln(cmd.OutOrStdout(), panel)
			fmt.Fprintln(cmd.OutOrStdout(), t.Muted.Render("Tip: add with `tada list add Groceries`"))
			return nil
		},
	}
}

func newListAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a list",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			l, err := svc.CreateList(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("created %q [%d]", l.Name, l.ID))
			return nil
		},
	}
}

func newListRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list> <name...>",
		Short: "Rename a list",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.Lists(cmd.Context())
			if err != nil {
				return err
			}
			l, err := resolveList(lists, args[0])
			if err != nil {
				return refHint(opts, cmd, err, "tada list ls")
			}
			name := strings.Join(args[1:], " ")
			if _, err := svc.RenameList(cmd.Context(), l.ID, name); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("renamed %q to %q", l.Name, strings.TrimSpace(name)))
			return nil
		},
	}
}

func newListRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <list>",
		Aliases: []string{"delete"},
		Short:   "Delete a list and its items",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.Lists(cmd.Context())
			if err != nil {
				return err
			}
			l, err := resolveList(lists, args[0])
			if err != nil {
				return refHint(opts, cmd, err, "tada list ls")
			}
			if _, err := svc.DeleteList(cmd.Context(), l.ID); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("removed %q", l.Name))
			return nil
		},
	}
}

func newListToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <list>",
		Aliases: []string{"done"},
		Short:   "Flip a list's done flag",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.Lists(cmd.Context())
			if err != nil {
				return err
			}
			l, err := resolveList(lists, args[0])
			if err != nil {
				return refHint(opts, cmd, err, "tada list ls")
			}
			if _, err := svc.ToggleList(cmd.Context(), l.ID); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("toggled %q", l.Name))
			return nil
		},
	}
}

func newListToggleAllCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Flip every list's done flag",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.ToggleAllLists(cmd.Context())
			if err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("toggled %d lists", len(lists)))
			return nil
		},
	}
}

func newListClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every done list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.Lists(cmd.Context())
			if err != nil {
				return err
			}
			if lists.Counts().Done == 0 {
				opts.printer(cmd).Hint("nothing to clear")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout()) {
				opts.printer(cmd).Hint("cancelled")
				return nil
			}
			_, n, err := svc.ClearDoneLists(cmd.Context())
			if err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("cleared %d", n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks before a destructive clear. Only y or yes proceeds.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Sure? [y/N] ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// refHint points at the listing command after a bad ref and passes the
// error on.
func refHint(opts *RootOptions, cmd *cobra.Command, err error, ls string) error {
	opts.printer(cmd).Hint(fmt.Sprintf("Hint: run `%s` to see valid positions and IDs (use id:<ID> to pick by ID)", ls))
	return err
}
