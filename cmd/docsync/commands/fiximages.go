package commands

import (
	"os"
	"path/filepath"

	"github.com/docsync-dev/docsync/cmd/docsync/opts"
	"github.com/docsync-dev/docsync/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewFixImagesCmd creates the fix-images command
func NewFixImagesCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		docsDir string
		file    string
		repos   []string
	)

	cmd := &cobra.Command{
		Use:   "fix-images",
		Short: "Repair broken image references in the documentation tree",
		Long: `fix-images scans markdown files for image references, locates the source
images across the configured sibling repositories, copies them into the
documentation asset tree, and rewrites the references in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "fix-images").Logger().WithContext(ctx)

			cfg, err := loadOptionalConfig(ctx, ro.ConfigPath)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			if len(repos) == 0 {
				repos = cfg.SourceRepos
			}
			existing := make([]string, 0, len(repos))
			for _, repo := range repos {
				if _, err := os.Stat(repo); err == nil {
					existing = append(existing, repo)
				} else {
					zerolog.Ctx(ctx).Debug().Str("repo", repo).Msg("skipping missing source repository")
				}
			}
			if len(existing) == 0 {
				return errors.Errorf("no source repositories found")
			}

			console := newConsole(ro)
			options, err := buildOptions(ro, cfg, console)
			if err != nil {
				return err
			}

			if docsDir == "" {
				docsDir = cfg.DocsDir
			}
			docsAbs, err := filepath.Abs(docsDir)
			if err != nil {
				return errors.Errorf("resolving docs directory: %w", err)
			}
			fileAbs := ""
			if file != "" {
				fileAbs, err = filepath.Abs(file)
				if err != nil {
					return errors.Errorf("resolving file path: %w", err)
				}
			}

			console.Header("fixing image references")

			op, err := operation.NewFixImages(options, docsAbs, fileAbs, existing)
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			logger := zerolog.Ctx(ctx)
			if err := operation.NewRunner(logger, false).Run(ctx, op); err != nil {
				return errors.Errorf("fixing images: %w", err)
			}

			console.Successf("image fixing complete: %d image(s) fixed", op.Summary().ImagesFixed)
			return nil
		},
	}

	cmd.Flags().StringVar(&docsDir, "docs-dir", "", "documentation root (default: docs_dir from config)")
	cmd.Flags().StringVar(&file, "file", "", "process only a specific file")
	cmd.Flags().StringSliceVar(&repos, "repos", nil, "candidate source repositories in priority order (default: source_repos from config)")

	return cmd
}
