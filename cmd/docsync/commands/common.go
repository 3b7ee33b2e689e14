package commands

import (
	"context"
	"os"

	"github.com/docsync-dev/docsync/cmd/docsync/opts"
	"github.com/docsync-dev/docsync/pkg/config"
	"github.com/docsync-dev/docsync/pkg/log"
	"github.com/docsync-dev/docsync/pkg/operation"
	"github.com/docsync-dev/docsync/pkg/status"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// newConsole builds the user-facing console logger
func newConsole(ro *opts.RootOpts) *log.Logger {
	level := zerolog.InfoLevel
	if ro.Debug {
		level = zerolog.DebugLevel
	}
	return log.New(os.Stdout, level)
}

// loadOptionalConfig loads the config file when it exists and falls back to
// defaults when it does not. A present-but-broken config is still an error.
func loadOptionalConfig(ctx context.Context, path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return config.Default(), nil
	}
	return config.Load(ctx, path)
}

// buildOptions assembles the shared operation collaborators rooted at the
// current working directory
func buildOptions(ro *opts.RootOpts, cfg *config.Config, console *log.Logger) (operation.Options, error) {
	baseDir, err := os.Getwd()
	if err != nil {
		return operation.Options{}, errors.Errorf("getting working directory: %w", err)
	}
	return operation.Options{
		Config:    cfg,
		BaseDir:   baseDir,
		StatusMgr: status.New(baseDir, ro.DryRun),
		Console:   console,
	}, nil
}
