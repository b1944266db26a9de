package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// NewPreviewCommand creates the read-only preview command.
func NewPreviewCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <list>",
		Short: "Print a read-only view of one list",
		Args:  usageArgs(cobra.ExactArgs(1)),
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
			switch {
			case errors.Is(err, model.ErrListNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderPreview(model.List{}, false, opts.Theme()))
				return WrapExitError(ExitUsage, "", err)
			case err != nil:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderPreview(l, true, opts.Theme()))
			return nil
		},
	}
}
