// Package scan extracts image references from markdown documents.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// 🔍 Two pattern families: markdown image syntax and HTML img tags
var (
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	htmlImagePattern     = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

// 📌 Ref is an image reference found in a document
type Ref struct {
	Path string // The reference as written in the document
	Line int    // 1-based line number
}

// 🔧 Options control which references are reported
type Options struct {
	// DocsDir is the documentation root used to resolve site-root asset
	// references for existence checks.
	DocsDir string

	// AssetPrefix is the site-root asset prefix. References starting with it
	// are reported only when the file is missing under DocsDir. Defaults to
	// "/assets/".
	AssetPrefix string
}

// FindImageRefs returns every image reference in content that is a candidate
// for rewriting, in document order.
//
// Scheme-prefixed references are never reported. References under the
// site-root asset prefix are reported only when broken. Every other relative
// reference is always reported: after a document move, relative paths are
// assumed to need normalization whether or not they currently resolve.
func FindImageRefs(ctx context.Context, content string, opts Options) []Ref {
	logger := zerolog.Ctx(ctx)

	prefix := opts.AssetPrefix
	if prefix == "" {
		prefix = "/assets/"
	}

	var refs []Ref
	for i, line := range strings.Split(content, "\n") {
		lineNum := i + 1
		for _, pattern := range []*regexp.Regexp{markdownImagePattern, htmlImagePattern} {
			for _, match := range pattern.FindAllStringSubmatch(line, -1) {
				imagePath := match[1]

				if strings.HasPrefix(imagePath, "http") {
					continue
				}

				if strings.HasPrefix(imagePath, prefix) {
					full := filepath.Join(opts.DocsDir, strings.TrimPrefix(imagePath, "/"))
					if _, err := os.Stat(full); err == nil {
						continue
					}
					logger.Debug().Str("ref", imagePath).Int("line", lineNum).Msg("broken site-root asset reference")
					refs = append(refs, Ref{Path: imagePath, Line: lineNum})
					continue
				}

				refs = append(refs, Ref{Path: imagePath, Line: lineNum})
			}
		}
	}

	return refs
}
