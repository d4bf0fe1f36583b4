package main

import (
	"github.com/spf13/cobra"

	"blog-views/pkg/config"
	"blog-views/pkg/featureflags"
)

// commandContext carries flags shared by every command
type commandContext struct {
	configFile string
	output     string

	// format is the resolved output format, set before any command runs
	format string
}

// open loads configuration and builds the application for one command run.
// The configured feature flags are attached to the command's context.
func (c *commandContext) open(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := featureflags.WithManager(cmd.Context(), featureflags.NewFromConfig(cfg.Features))
	cmd.SetContext(ctx)

	return newApp(ctx, cfg, cmd.ErrOrStderr())
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "blogctx",
		Short:         "Preview the template contexts of blog pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cc.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cc.format = format
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&cc.output, "output", "o", "", "Output format: json or table (default table on a terminal, json otherwise)")

	rootCmd.AddCommand(newIndexCommand(cc))
	rootCmd.AddCommand(newArticleCommand(cc))
	rootCmd.AddCommand(newFeedCommand(cc))

	return rootCmd
}
