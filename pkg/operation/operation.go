// Package operation provides the documentation maintenance batch operations.
package operation

import (
	"context"
	"sort"

	"github.com/docsync-dev/docsync/pkg/config"
	"github.com/docsync-dev/docsync/pkg/log"
	"github.com/docsync-dev/docsync/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single batch operation over the documentation tree
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🔧 Options contains the shared collaborators every operation needs
type Options struct {
	// Config is the loaded configuration
	Config *config.Config
	// BaseDir is the workspace root all configured paths are relative to
	BaseDir string
	// StatusMgr performs file operations and tracks outcomes
	StatusMgr *status.Manager
	// Console is the user-facing logger
	Console *log.Logger
}

// validate checks that the required collaborators are present
func (opts Options) validate() error {
	if opts.Config == nil {
		return errors.Errorf("config is required")
	}
	if opts.BaseDir == "" {
		return errors.Errorf("base directory is required")
	}
	if opts.StatusMgr == nil {
		return errors.Errorf("status manager is required")
	}
	if opts.Console == nil {
		return errors.Errorf("console logger is required")
	}
	return nil
}

// 📦 BaseOperation carries the shared collaborators
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a BaseOperation from options
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

// 📋 printFileReport renders one aligned console line per file the status
// manager tracked, sorted by path
func (op *BaseOperation) printFileReport() {
	files := op.StatusMgr.Files()
	if len(files) == 0 {
		return
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	for _, info := range files {
		op.Console.Line(status.FormatFileLine(info))
	}
}
