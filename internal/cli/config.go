package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigCommand prints the effective configuration.
func NewConfigCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Config.Write(cmd.OutOrStdout())
		},
	}
}
