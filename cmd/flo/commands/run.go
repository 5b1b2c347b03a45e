package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/flo/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every out-of-date task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			only, _ := cmd.Flags().GetString("only")
			skip, _ := cmd.Flags().GetStringArray("skip")
			startAt, _ := cmd.Flags().GetString("start-at")
			jobs, _ := cmd.Flags().GetInt("jobs")

			_, err := c.components.App.Run(cmd.Context(), app.RunOptions{
				Force:   force,
				Only:    only,
				Skip:    skip,
				StartAt: startAt,
				Jobs:    jobs,
			})
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Treat every task as out of date")
	cmd.Flags().String("only", "", "Run only the named task and its ancestors")
	cmd.Flags().StringArray("skip", nil, "Pretend the producer of this output already ran (repeatable)")
	cmd.Flags().String("start-at", "", "Run the named task and its descendants only")
	cmd.Flags().IntP("jobs", "j", 1, "Number of tasks to run concurrently")
	return cmd
}
