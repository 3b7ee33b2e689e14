package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docsync-dev/docsync/pkg/config"
	"github.com/docsync-dev/docsync/pkg/markdown"
	"github.com/docsync-dev/docsync/pkg/paths"
	"github.com/docsync-dev/docsync/pkg/status"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🖼️ Image reference patterns inside synced READMEs
var (
	syncMarkdownImage = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	syncHTMLImageDQ   = regexp.MustCompile(`<img\s+(?:[^>]*\s)?src="([^"]+)"`)
	syncHTMLImageSQ   = regexp.MustCompile(`<img\s+(?:[^>]*\s)?src='([^']+)'`)
)

// 🖼️ imageExtensions are the asset types routed into the flat asset directory
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// 📋 NeedRecord marks a synced document whose body fell under the
// content-length threshold
type NeedRecord struct {
	Source string // Workspace-relative source path
	Target string // Workspace-relative target path
	Length int    // Body length in characters, whitespace-trimmed
}

// 📈 SyncSummary aggregates the outcome of a sync-readmes run
type SyncSummary struct {
	Processed    int // Pairs synced successfully
	Warnings     int // Pairs flagged as needing content
	Errors       int // Pairs that failed and were skipped
	NeedsContent []NeedRecord
}

// 📚 SyncReadmesOperation copies configured READMEs into the documentation
// tree, rewriting image references and injecting frontmatter and attribution
type SyncReadmesOperation struct {
	BaseOperation

	summary SyncSummary
}

// 📦 NewSyncReadmes creates the sync-readmes operation
func NewSyncReadmes(opts Options) (*SyncReadmesOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &SyncReadmesOperation{BaseOperation: NewBaseOperation(opts)}, nil
}

// Name implements Operation
func (op *SyncReadmesOperation) Name() string {
	return "sync-readmes"
}

// Summary returns the aggregated result of the run
func (op *SyncReadmesOperation) Summary() SyncSummary {
	return op.summary
}

// 🏃 Execute runs the operation. Every pair is processed independently: a
// failure is logged and counted, never fatal for the batch.
func (op *SyncReadmesOperation) Execute(ctx context.Context) error {
	for _, repo := range op.Config.Repositories {
		op.Console.Header(fmt.Sprintf("synchronizing %s", repo.Name))

		if repo.MainReadme != nil {
			op.syncPair(ctx, *repo.MainReadme)
		}
		for _, sub := range repo.SubReadmes {
			op.syncPair(ctx, sub)
		}
	}

	if len(op.summary.NeedsContent) > 0 {
		if err := op.writeNeedsReport(ctx); err != nil {
			op.Console.Errorf("failed to write needs report: %v", err)
		}
	}

	op.printFileReport()
	op.Console.Info(fmt.Sprintf("files processed: %d, warnings: %d, errors: %d, files needing content: %d",
		op.summary.Processed, op.summary.Warnings, op.summary.Errors, len(op.summary.NeedsContent)))
	if op.StatusMgr.DryRun() {
		status.NewUserLogger(ctx).LogRunNote("dry run, no files were modified")
	}

	return nil
}

// 🔁 syncPair is the error boundary around one pair
func (op *SyncReadmesOperation) syncPair(ctx context.Context, pair config.ReadmePair) {
	if err := op.processPair(ctx, pair); err != nil {
		status.NewUserLogger(ctx).LogFileChange(status.FileChange{
			Type:  status.FileError,
			Path:  pair.Source,
			Error: err,
		})
		op.Console.Errorf("failed to process %s: %v", pair.Source, err)
		op.summary.Errors++
		return
	}
	op.summary.Processed++
}

// 📄 processPair syncs a single source README into its target location
func (op *SyncReadmesOperation) processPair(ctx context.Context, pair config.ReadmePair) error {
	logger := zerolog.Ctx(ctx)
	users := status.NewUserLogger(ctx)

	sourceAbs := filepath.Join(op.BaseDir, filepath.FromSlash(pair.Source))
	targetAbs := filepath.Join(op.BaseDir, filepath.FromSlash(pair.Target))

	exists, err := op.StatusMgr.FileExists(ctx, sourceAbs)
	if err != nil {
		return errors.Errorf("checking source: %w", err)
	}
	if !exists {
		return errors.Errorf("source file not found: %s", sourceAbs)
	}
	logger.Info().Str("source", pair.Source).Str("target", pair.Target).Msg("processing readme")

	raw, err := op.StatusMgr.ReadFile(ctx, sourceAbs)
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}

	body := op.rewriteImageRefs(ctx, string(raw), sourceAbs, targetAbs)

	contentLength := len(strings.TrimSpace(body))
	needsContent := contentLength < op.Config.MinContentLength

	title, ok := markdown.ExtractTitle(raw)
	if !ok {
		title = markdown.TitleFromPath(pair.Source)
	}

	var doc strings.Builder
	doc.WriteString(frontmatter(title, pair.Source))
	doc.WriteString("\n\n")
	doc.WriteString(attribution(pair.Source, op.Config.RepositoryURL(pair.Source)))
	doc.WriteString("\n")
	if needsContent {
		doc.WriteString("\n")
		doc.WriteString(todoWarning(contentLength))
		doc.WriteString("\n")
	}
	doc.WriteString("\n")
	doc.WriteString(body)
	if needsContent {
		fmt.Fprintf(&doc, "\n\n---\n\n*Note: This documentation page requires additional content from the engineering team. The current source README file contains only %d characters.*", contentLength)
	}

	if needsContent {
		op.summary.NeedsContent = append(op.summary.NeedsContent, NeedRecord{
			Source: pair.Source,
			Target: pair.Target,
			Length: contentLength,
		})
		op.summary.Warnings++
		op.Console.Warningf("minimal content in %s (%d characters)", pair.Source, contentLength)
	}

	st, err := op.StatusMgr.WriteFileAtomic(ctx, targetAbs, []byte(doc.String()))
	if err != nil {
		return errors.Errorf("writing target: %w", err)
	}

	changeType := status.FileRewritten
	if st == status.StatusNew {
		changeType = status.FileCopied
	}
	users.LogFileChange(status.FileChange{
		Type:        changeType,
		Path:        pair.Target,
		Description: fmt.Sprintf("from %s", pair.Source),
	})

	return nil
}

// 🔄 rewriteImageRefs rebases every relative image reference so it resolves
// from the target document's served location, copying referenced images into
// the flat asset directory along the way
func (op *SyncReadmesOperation) rewriteImageRefs(ctx context.Context, content, sourceAbs, targetAbs string) string {
	content = syncMarkdownImage.ReplaceAllStringFunc(content, func(match string) string {
		groups := syncMarkdownImage.FindStringSubmatch(match)
		ref := groups[2]
		if skipSyncRef(ref) {
			return match
		}
		fixed := op.convertRelativeRef(ctx, ref, sourceAbs, targetAbs)
		return fmt.Sprintf("![%s](%s)", groups[1], fixed)
	})

	for _, pattern := range []*regexp.Regexp{syncHTMLImageDQ, syncHTMLImageSQ} {
		content = pattern.ReplaceAllStringFunc(content, func(match string) string {
			groups := pattern.FindStringSubmatch(match)
			ref := groups[1]
			if skipSyncRef(ref) {
				return match
			}
			fixed := op.convertRelativeRef(ctx, ref, sourceAbs, targetAbs)
			// Preserve the surrounding attributes.
			return strings.Replace(match, ref, fixed, 1)
		})
	}

	return content
}

// 🚫 skipSyncRef reports references that are not relative paths
func skipSyncRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "/") ||
		strings.HasPrefix(ref, "#")
}

// 📐 convertRelativeRef rebases one relative reference from the source
// file's location to the target's served location
func (op *SyncReadmesOperation) convertRelativeRef(ctx context.Context, ref, sourceAbs, targetAbs string) string {
	logger := zerolog.Ctx(ctx)

	absPath := filepath.Clean(filepath.Join(filepath.Dir(sourceAbs), filepath.FromSlash(ref)))

	relToBase, err := filepath.Rel(op.BaseDir, absPath)
	if err != nil || strings.HasPrefix(relToBase, "..") {
		// Outside the workspace; leave untouched.
		return ref
	}

	docsAbs := filepath.Join(op.BaseDir, filepath.FromSlash(op.Config.DocsDir))

	if imageExtensions[strings.ToLower(filepath.Ext(absPath))] {
		if _, err := os.Stat(absPath); err == nil {
			dst := filepath.Join(docsAbs, filepath.FromSlash(op.Config.AssetsDir), filepath.Base(absPath))
			if _, err := op.StatusMgr.CopyFileIfNewer(ctx, absPath, dst); err != nil {
				logger.Error().Err(err).Str("image", absPath).Msg("copying referenced image")
			}
		} else {
			op.Console.Warningf("referenced image not found: %s", relToBase)
		}

		targetRelDocs, err := filepath.Rel(docsAbs, targetAbs)
		if err != nil {
			return ref
		}
		return paths.AssetHref(targetRelDocs, op.Config.AssetsDir, filepath.Base(absPath), op.Config.Pretty())
	}

	// Non-image references get plain target-relative rebasing without
	// pretty-URL compensation.
	rel, err := filepath.Rel(filepath.Dir(targetAbs), absPath)
	if err != nil {
		return ref
	}
	return filepath.ToSlash(rel)
}

// 📑 frontmatter renders the generated document header
func frontmatter(title, source string) string {
	fields := struct {
		Title  string `yaml:"title"`
		Source string `yaml:"source"`
	}{Title: title, Source: source}

	data, err := yaml.Marshal(fields)
	if err != nil {
		// Marshal of a plain string struct cannot realistically fail; fall
		// back to something valid.
		return fmt.Sprintf("---\ntitle: %q\nsource: %q\n---", title, source)
	}
	return "---\n" + string(data) + "---"
}

// 📣 attribution renders the admonition linking back to the source
func attribution(sourceRel, url string) string {
	return fmt.Sprintf(`!!! info "Source"
    This content is synchronized from [`+"`%s`"+`](%s)

    To make changes, please edit the source file and run the synchronization script.`, sourceRel, url)
}

// ⚠️ todoWarning renders the minimal-content callout
func todoWarning(contentLength int) string {
	return fmt.Sprintf(`!!! warning "TODO: Documentation Needed"
    This page needs significant content. The source README currently contains only %d characters.
    See the documentation needs report for details on what content is required.`, contentLength)
}
