package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// NewItemCommand creates the item command group.
func NewItemCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items", "i"},
		Short:   "Manage the items of one list",
		Long:    "Manage the items of one list. Refs are 1-based positions or IDs; write id:<ID> to force an ID.",
		Args:    usageArgs(cobra.NoArgs),
		RunE:    helpAndFail,
	}
	cmd.AddCommand(
		newItemLsCommand(opts),
		newItemAddCommand(opts),
		newItemEditCommand(opts),
		newItemRmCommand(opts),
		newItemToggleCommand(opts),
		newItemToggleAllCommand(opts),
		newItemClearCommand(opts),
	)
	return cmd
}

// openList resolves a list ref against the stored document.
func openList(ctx context.Context, opts *RootOptions, cmd *cobra.Command, ref string) (*todo.Service, model.List, error) {
	svc, err := opts.service()
	if err != nil {
		return nil, model.List{}, err
	}
	lists, err := svc.Lists(ctx)
	if err != nil {
		return nil, model.List{}, err
	}
	l, err := resolveList(lists, ref)
	if err != nil {
		return nil, model.List{}, refHint(opts, cmd, err, "tada list ls")
	}
	return svc, l, nil
}

// openItem resolves a list ref and an item ref within it.
func openItem(ctx context.Context, opts *RootOptions, cmd *cobra.Command, listRef, itemRef string) (*todo.Service, model.List, model.Item, error) {
	svc, l, err := openList(ctx, opts, cmd, listRef)
	if err != nil {
		return nil, model.List{}, model.Item{}, err
	}
	it, err := resolveItem(l, itemRef)
	if err != nil {
		return nil, model.List{}, model.Item{}, refHint(opts, cmd, err, "tada item ls "+listRef)
	}
	return svc, l, it, nil
}

func newItemLsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <list> [all|pending|done]",
		Short: "Show a list's items",
		Args:  usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilterArg(args[1:])
			if err != nil {
				return err
			}
			_, l, err := openList(cmd.Context(), opts, cmd, args[0])
			if err != nil {
				return err
			}
			t := opts.Theme()
			title := t.State(l.Name, l.Done)
			fmt.Fprintln(cmd.OutOrStdout(), renderPanel(t, title, itemRows(l), l.Counts(), f, opts.Group, ui.EmptyListText))
			return nil
		},
	}
}

func newItemAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <text...>",
		Short: "Add an item",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, err := openList(cmd.Context(), opts, cmd, args[0])
			if err != nil {
				return err
			}
			it, err := svc.AddItem(cmd.Context(), l.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("added %q to %q [%d]", it.Text, l.Name, it.ID))
			return nil
		},
	}
}

func newItemEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <list> <item> <text...>",
		Short: "Change an item's text",
		Args:  usageArgs(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, it, err := openItem(cmd.Context(), opts, cmd, args[0], args[1])
			if err != nil {
				return err
			}
			text := strings.Join(args[2:], " ")
			if _, err := svc.EditItem(cmd.Context(), l.ID, it.ID, text); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("edited %q", strings.TrimSpace(text)))
			return nil
		},
	}
}

func newItemRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <list> <item>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, it, err := openItem(cmd.Context(), opts, cmd, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := svc.DeleteItem(cmd.Context(), l.ID, it.ID); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("removed %q", it.Text))
			return nil
		},
	}
}

func newItemToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <list> <item>",
		Aliases: []string{"done"},
		Short:   "Flip an item's done flag",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, it, err := openItem(cmd.Context(), opts, cmd, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := svc.ToggleItem(cmd.Context(), l.ID, it.ID); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("toggled %q", it.Text))
			return nil
		},
	}
}

func newItemToggleAllCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all <list>",
		Short: "Flip every item's done flag",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, err := openList(cmd.Context(), opts, cmd, args[0])
			if err != nil {
				return err
			}
			got, err := svc.ToggleAllItems(cmd.Context(), l.ID)
			if err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("toggled %d items", len(got.Items)))
			return nil
		},
	}
}

func newItemClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear <list>",
		Short: "Delete a list's done items",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, err := openList(cmd.Context(), opts, cmd, args[0])
			if err != nil {
				return err
			}
			if l.Counts().Done == 0 {
				opts.printer(cmd).Hint("nothing to clear")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout()) {
				opts.printer(cmd).Hint("cancelled")
				return nil
			}
			_, n, err := svc.ClearDoneItems(cmd.Context(), l.ID)
			if err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("cleared %d from %q", n, l.Name))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
