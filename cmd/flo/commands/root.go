// Package commands implements the CLI commands for the flo task runner.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/flo/internal/app"
	"go.trai.ch/flo/internal/build"
)

// CLI represents the command line interface for flo.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance with the given components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "flo",
		Short:         "A declarative incremental task runner",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Task file to load instead of flo.yaml")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if name, _ := cmd.Flags().GetString("config"); name != "" {
			c.SetConfigFile(name)
		}
	}

	cli := &CLI{
		components: c,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(cli.newRunCmd())
	rootCmd.AddCommand(cli.newStatusCmd())
	rootCmd.AddCommand(cli.newCleanCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
