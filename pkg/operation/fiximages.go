package operation

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/docsync-dev/docsync/pkg/locate"
	"github.com/docsync-dev/docsync/pkg/paths"
	"github.com/docsync-dev/docsync/pkg/scan"
	"github.com/docsync-dev/docsync/pkg/status"
	"github.com/docsync-dev/docsync/pkg/text"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📈 FixSummary aggregates the outcome of a fix-images run
type FixSummary struct {
	FilesScanned      int // Markdown files examined
	FilesWithFixes    int // Files where at least one reference was repaired
	ImagesFixed       int // Source images located and copied
	ReferencesUpdated int // Reference occurrences rewritten
	MissingSources    int // References whose source image was never found
}

// 🖼️ FixImagesOperation repairs broken image references across the
// documentation tree
type FixImagesOperation struct {
	BaseOperation

	docsDir  string // absolute documentation root
	file     string // optional absolute single-file restriction
	locator  *locate.Locator
	resolver *paths.Resolver
	replacer *text.RefReplacer
	summary  FixSummary
}

// 📦 NewFixImages creates the fix-images operation. repos are the candidate
// source repository roots in priority order; entries that do not exist on
// disk must already have been filtered out by the caller.
func NewFixImages(opts Options, docsDir, file string, repos []string) (*FixImagesOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, errors.Errorf("at least one source repository is required")
	}

	return &FixImagesOperation{
		BaseOperation: NewBaseOperation(opts),
		docsDir:       docsDir,
		file:          file,
		locator:       locate.New(repos, opts.Config.SkipPatterns),
		resolver: &paths.Resolver{
			DocsDir:   docsDir,
			AssetsDir: opts.Config.AssetsDir,
			Rules:     opts.Config.Rules(),
		},
		replacer: text.NewRefReplacer(),
	}, nil
}

// Name implements Operation
func (op *FixImagesOperation) Name() string {
	return "fix-images"
}

// Summary returns the aggregated result of the run
func (op *FixImagesOperation) Summary() FixSummary {
	return op.summary
}

// 🏃 Execute runs the operation
func (op *FixImagesOperation) Execute(ctx context.Context) error {
	if err := op.StatusMgr.CreateDir(ctx, filepath.Join(op.docsDir, filepath.FromSlash(op.Config.AssetsDir))); err != nil {
		return errors.Errorf("creating assets directory: %w", err)
	}

	files, err := op.collectFiles()
	if err != nil {
		return errors.Errorf("collecting markdown files: %w", err)
	}

	users := status.NewUserLogger(ctx)
	for _, file := range files {
		// README files in the docs tree are sync targets, not hand-written
		// documents; leave them to the synchronizer.
		if filepath.Base(file) == "README.md" {
			users.LogFileChange(status.FileChange{
				Type:        status.FileSkipped,
				Path:        file,
				Description: "readme files are managed by the synchronizer",
			})
			continue
		}
		fixed, changes, err := op.processFile(ctx, file)
		if err != nil {
			op.Console.Errorf("failed to process %s: %v", file, err)
			continue
		}
		if fixed > 0 {
			op.summary.FilesWithFixes++
			op.summary.ImagesFixed += fixed
			op.summary.ReferencesUpdated += changes
		}
	}
	op.summary.FilesScanned = len(files)

	op.printFileReport()
	op.Console.Info(fmt.Sprintf("files scanned: %d, files with fixes: %d, images fixed: %d, references updated: %d",
		op.summary.FilesScanned, op.summary.FilesWithFixes, op.summary.ImagesFixed, op.summary.ReferencesUpdated))
	if op.StatusMgr.DryRun() {
		users.LogRunNote("dry run, no files were modified")
	}

	return nil
}

// 📚 collectFiles gathers the markdown files to examine
func (op *FixImagesOperation) collectFiles() ([]string, error) {
	if op.file != "" {
		return []string{op.file}, nil
	}

	var files []string
	err := filepath.WalkDir(op.docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// 📄 processFile repairs the references of one document, returning how many
// images were fixed and how many reference occurrences were rewritten
func (op *FixImagesOperation) processFile(ctx context.Context, file string) (int, int, error) {
	logger := zerolog.Ctx(ctx)
	users := status.NewUserLogger(ctx)

	rel := file
	if r, err := filepath.Rel(op.docsDir, file); err == nil {
		rel = r
	}
	logger.Info().Str("file", rel).Msg("processing document")

	raw, err := op.StatusMgr.ReadFile(ctx, file)
	if err != nil {
		return 0, 0, errors.Errorf("reading document: %w", err)
	}

	refs := scan.FindImageRefs(ctx, string(raw), scan.Options{DocsDir: op.docsDir})
	if len(refs) == 0 {
		logger.Debug().Str("file", rel).Msg("no image references need fixing")
		return 0, 0, nil
	}
	logger.Info().Str("file", rel).Int("references", len(refs)).Msg("found image references")

	updates := make(map[string]string)
	fixed := 0
	for _, ref := range refs {
		logger.Info().Int("line", ref.Line).Str("ref", ref.Path).Msg("image reference")

		source, ok := op.locator.Find(ctx, ref.Path)
		if !ok {
			op.Console.Warningf("source image not found: %s", filepath.Base(ref.Path))
			op.summary.MissingSources++
			continue
		}

		target := op.resolver.Resolve(source, file)
		if err := op.StatusMgr.CopyFile(ctx, source, target); err != nil {
			op.Console.Errorf("failed to copy %s: %v", source, err)
			continue
		}
		users.LogFileChange(status.FileChange{
			Type:        status.FileCopied,
			Path:        filepath.Base(source),
			Description: fmt.Sprintf("to %s", filepath.Dir(target)),
		})

		updates[ref.Path] = paths.Relative(target, file)
		fixed++
	}

	result := op.replacer.Replace(ctx, string(raw), updates)
	if result.WasModified {
		if _, err := op.StatusMgr.WriteFileAtomic(ctx, file, []byte(result.ModifiedContent)); err != nil {
			return fixed, 0, errors.Errorf("writing document: %w", err)
		}
		users.LogFileChange(status.FileChange{
			Type:        status.FileRewritten,
			Path:        rel,
			Description: fmt.Sprintf("%d reference(s)", result.Changes),
		})
	}

	return fixed, result.Changes, nil
}
