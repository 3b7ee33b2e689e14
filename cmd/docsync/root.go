package main

import (
	"os"

	"github.com/docsync-dev/docsync/cmd/docsync/commands"
	"github.com/docsync-dev/docsync/cmd/docsync/opts"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newRootCmd builds the docsync command tree
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "docsync",
		Short: "Documentation maintenance tools",
		Long: `docsync keeps a documentation site in step with its sibling repositories.

It repairs broken image references by locating source images across the
sibling checkouts, and synchronizes README files into the documentation
tree with rewritten image paths, generated frontmatter, and attribution.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(ro.Debug)
		},
	}

	cmd.PersistentFlags().StringVarP(&ro.ConfigPath, "config", "c", "docsync.yaml", "config file path")
	cmd.PersistentFlags().BoolVar(&ro.DryRun, "dry-run", false, "show what would be done without making changes")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		commands.NewFixImagesCmd(ro),
		commands.NewSyncReadmesCmd(ro),
	)

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
