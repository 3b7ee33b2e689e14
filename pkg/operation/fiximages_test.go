package operation

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/docsync-dev/docsync/pkg/config"
	"github.com/docsync-dev/docsync/pkg/log"
	"github.com/docsync-dev/docsync/pkg/scan"
	"github.com/docsync-dev/docsync/pkg/status"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T, base string, dryRun bool) Options {
	t.Helper()
	return Options{
		Config:    config.Default(),
		BaseDir:   base,
		StatusMgr: status.New(base, dryRun),
		Console:   log.New(io.Discard, zerolog.Disabled),
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFixImages_RepairsBrokenReference(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")

	mustWrite(t, filepath.Join(docsDir, "guide.md"), "# Guide\n\n![diagram](diagram.png)\n")
	mustWrite(t, filepath.Join(repoA, "assets", "diagram.png"), "png-bytes")

	op, err := NewFixImages(testOptions(t, base, false), docsDir, "", []string{repoA})
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, NewRunner(&logger, false).Run(context.Background(), op))

	// Image landed in the flat asset directory.
	copied, err := os.ReadFile(filepath.Join(docsDir, "assets", "images", "diagram.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(copied))

	// Reference rewritten relative to the document.
	rewritten, err := os.ReadFile(filepath.Join(docsDir, "guide.md"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "![diagram](assets/images/diagram.png)")

	summary := op.Summary()
	assert.Equal(t, 1, summary.FilesScanned)
	assert.Equal(t, 1, summary.FilesWithFixes)
	assert.Equal(t, 1, summary.ImagesFixed)
	assert.Equal(t, 1, summary.ReferencesUpdated)
	assert.Equal(t, 0, summary.MissingSources)
}

func TestFixImages_RoundTripResolvability(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")

	docFile := filepath.Join(docsDir, "how-to", "robots", "teleop.md")
	mustWrite(t, docFile, "![d](../images/diagram.png)\n")
	mustWrite(t, filepath.Join(repoA, "media", "diagram.png"), "png")

	op, err := NewFixImages(testOptions(t, base, false), docsDir, "", []string{repoA})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	rewritten, err := os.ReadFile(docFile)
	require.NoError(t, err)

	// Re-scanning the rewritten document yields a reference that resolves to
	// an existing file from the document's directory.
	refs := scan.FindImageRefs(context.Background(), string(rewritten), scan.Options{DocsDir: docsDir})
	require.Len(t, refs, 1)
	resolved := filepath.Join(filepath.Dir(docFile), filepath.FromSlash(refs[0].Path))
	assert.FileExists(t, resolved)
}

func TestFixImages_MissingSourceLeavesReference(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")
	require.NoError(t, os.MkdirAll(repoA, 0755))

	original := "![gone](missing.png)\n"
	mustWrite(t, filepath.Join(docsDir, "guide.md"), original)

	op, err := NewFixImages(testOptions(t, base, false), docsDir, "", []string{repoA})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	content, err := os.ReadFile(filepath.Join(docsDir, "guide.md"))
	require.NoError(t, err)
	assert.Equal(t, original, string(content))

	summary := op.Summary()
	assert.Equal(t, 1, summary.MissingSources)
	assert.Equal(t, 0, summary.ImagesFixed)
}

func TestFixImages_SkipsReadmeFiles(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")

	original := "![d](diagram.png)\n"
	mustWrite(t, filepath.Join(docsDir, "README.md"), original)
	mustWrite(t, filepath.Join(repoA, "diagram.png"), "png")

	op, err := NewFixImages(testOptions(t, base, false), docsDir, "", []string{repoA})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	content, err := os.ReadFile(filepath.Join(docsDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestFixImages_DryRunTouchesNothing(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")

	original := "![diagram](diagram.png)\n"
	mustWrite(t, filepath.Join(docsDir, "guide.md"), original)
	mustWrite(t, filepath.Join(repoA, "assets", "diagram.png"), "png")

	op, err := NewFixImages(testOptions(t, base, true), docsDir, "", []string{repoA})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	// Decisions identical to a real run...
	summary := op.Summary()
	assert.Equal(t, 1, summary.ImagesFixed)
	assert.Equal(t, 1, summary.ReferencesUpdated)

	// ...but nothing on disk moved.
	assert.NoFileExists(t, filepath.Join(docsDir, "assets", "images", "diagram.png"))
	content, err := os.ReadFile(filepath.Join(docsDir, "guide.md"))
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestFixImages_SingleFileRestriction(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")

	mustWrite(t, filepath.Join(docsDir, "one.md"), "![a](a.png)\n")
	mustWrite(t, filepath.Join(docsDir, "two.md"), "![b](b.png)\n")
	mustWrite(t, filepath.Join(repoA, "a.png"), "a")
	mustWrite(t, filepath.Join(repoA, "b.png"), "b")

	op, err := NewFixImages(testOptions(t, base, false), docsDir, filepath.Join(docsDir, "one.md"), []string{repoA})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	one, err := os.ReadFile(filepath.Join(docsDir, "one.md"))
	require.NoError(t, err)
	assert.Contains(t, string(one), "assets/images/a.png")

	two, err := os.ReadFile(filepath.Join(docsDir, "two.md"))
	require.NoError(t, err)
	assert.Equal(t, "![b](b.png)\n", string(two))
}

func TestFixImages_PrintsFileReport(t *testing.T) {
	base := t.TempDir()
	docsDir := filepath.Join(base, "docs")
	repoA := filepath.Join(base, "repoA")

	mustWrite(t, filepath.Join(docsDir, "guide.md"), "![d](diagram.png)\n")
	mustWrite(t, filepath.Join(repoA, "diagram.png"), "png")

	var console bytes.Buffer
	opts := Options{
		Config:    config.Default(),
		BaseDir:   base,
		StatusMgr: status.New(base, false),
		Console:   log.New(&console, zerolog.Disabled),
	}

	op, err := NewFixImages(opts, docsDir, "", []string{repoA})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	// One aligned outcome line per touched file, keyed by base-relative path.
	out := console.String()
	assert.Contains(t, out, filepath.Join("docs", "assets", "images", "diagram.png"))
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, filepath.Join("docs", "guide.md"))
	assert.Contains(t, out, "modified")
}

func TestFixImages_RequiresRepos(t *testing.T) {
	base := t.TempDir()
	_, err := NewFixImages(testOptions(t, base, false), filepath.Join(base, "docs"), "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source repository")
}
