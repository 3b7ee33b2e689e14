package commands

import (
	"github.com/docsync-dev/docsync/cmd/docsync/opts"
	"github.com/docsync-dev/docsync/pkg/config"
	"github.com/docsync-dev/docsync/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewSyncReadmesCmd creates the sync-readmes command
func NewSyncReadmesCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync-readmes",
		Short: "Synchronize repository READMEs into the documentation tree",
		Long: `sync-readmes copies README files from sibling repositories into the
documentation tree according to the config, rewriting image references,
injecting frontmatter and attribution, and flagging pages that still
need real content in a generated report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "sync-readmes").Logger().WithContext(ctx)

			cfg, err := config.Load(ctx, ro.ConfigPath)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if len(cfg.Repositories) == 0 {
				return errors.Errorf("no repositories configured in %s", ro.ConfigPath)
			}

			console := newConsole(ro)
			options, err := buildOptions(ro, cfg, console)
			if err != nil {
				return err
			}

			op, err := operation.NewSyncReadmes(options)
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			logger := zerolog.Ctx(ctx)
			if err := operation.NewRunner(logger, false).Run(ctx, op); err != nil {
				return errors.Errorf("synchronizing readmes: %w", err)
			}

			console.Successf("readme synchronization complete: %d file(s) processed", op.Summary().Processed)
			return nil
		},
	}

	return cmd
}
