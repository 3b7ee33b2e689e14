// Package locate finds source image files across candidate repositories.
package locate

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🗂️ DefaultSkipPatterns are directory names never worth descending into
var DefaultSkipPatterns = []string{"node_modules", "__pycache__"}

// 🔎 Locator searches an ordered list of repository roots for files by name
type Locator struct {
	repos        []string
	skipPatterns []string
}

// 🏭 New creates a Locator over the given repository roots. Patterns are
// doublestar globs matched against directory basenames; nil selects
// DefaultSkipPatterns.
func New(repos []string, skipPatterns []string) *Locator {
	if skipPatterns == nil {
		skipPatterns = DefaultSkipPatterns
	}
	return &Locator{repos: repos, skipPatterns: skipPatterns}
}

// Find returns the first file whose basename matches name, walking each
// repository depth-first in configured order. Hidden directories and
// directories matching a skip pattern are pruned. First match wins; no
// disambiguation is attempted when several candidates share a basename.
func (l *Locator) Find(ctx context.Context, name string) (string, bool) {
	logger := zerolog.Ctx(ctx)
	name = filepath.Base(name)

	for _, repo := range l.repos {
		var found string
		err := filepath.WalkDir(repo, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
				return nil
			}
			if d.IsDir() {
				if path == repo {
					return nil
				}
				if strings.HasPrefix(d.Name(), ".") || l.shouldSkip(ctx, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() == name {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			logger.Debug().Str("repo", repo).Err(err).Msg("walk failed")
			continue
		}
		if found != "" {
			logger.Debug().Str("name", name).Str("source", found).Msg("located source image")
			return found, true
		}
	}

	return "", false
}

// 🚫 shouldSkip checks a directory basename against the skip patterns
func (l *Locator) shouldSkip(ctx context.Context, dirName string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range l.skipPatterns {
		matched, err := doublestar.Match(pattern, dirName)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
