// Package text applies literal reference replacements to document content.
package text

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// 🔄 ReplacementResult describes the outcome of applying a set of replacements
type ReplacementResult struct {
	OriginalContent string // Content before any replacement
	ModifiedContent string // Content after all replacements
	Changes         int    // Total occurrences replaced
	WasModified     bool   // Whether any replacement occurred
}

// 🔧 RefReplacer rewrites reference strings inside document text
type RefReplacer struct{}

// 🏭 NewRefReplacer creates a new RefReplacer
func NewRefReplacer() *RefReplacer {
	return &RefReplacer{}
}

// Replace applies every old→new mapping to content as a literal substring
// substitution in a single left-to-right pass. At each position the longest
// matching key wins, and substituted text is never rescanned, so a shorter
// key can neither break a longer key's match (e.g. "img.png" inside
// "sub/img.png") nor match inside a replacement value that happens to end
// with it. Ties in key length are broken lexicographically to keep output
// deterministic.
func (r *RefReplacer) Replace(ctx context.Context, content string, updates map[string]string) *ReplacementResult {
	logger := zerolog.Ctx(ctx)

	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}
	if len(updates) == 0 {
		return result
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	counts := make(map[string]int, len(keys))
	var b strings.Builder
	b.Grow(len(content))

	for i := 0; i < len(content); {
		matched := false
		for _, old := range keys {
			if strings.HasPrefix(content[i:], old) {
				b.WriteString(updates[old])
				counts[old]++
				i += len(old)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(content[i])
			i++
		}
	}

	for _, old := range keys {
		occurrences := counts[old]
		if occurrences == 0 {
			continue
		}
		result.Changes += occurrences
		result.WasModified = true
		logger.Info().
			Int("occurrences", occurrences).
			Str("from", old).
			Str("to", updates[old]).
			Msg("replaced reference")
	}

	if result.WasModified {
		result.ModifiedContent = b.String()
	}
	return result
}
