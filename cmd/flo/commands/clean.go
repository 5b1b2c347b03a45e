package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/flo/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove derived output files and recorded state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			includeInternals, _ := cmd.Flags().GetBool("include-internals")
			return c.components.App.Clean(cmd.Context(), app.CleanOptions{
				IncludeInternals: includeInternals,
			})
		},
	}
	cmd.Flags().Bool("include-internals", false, "Also remove the .flo state directory")
	return cmd
}
