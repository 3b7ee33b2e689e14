// Package paths decides where copied assets land and how documents refer to
// them after a move.
package paths

import (
	"path/filepath"
	"strings"
)

// 📐 PlacementRule routes a located source image to a destination directory
// under the documentation root. Rules are evaluated in order; the first rule
// whose conditions all hold wins.
type PlacementRule struct {
	// SourceContains are substrings that must all appear in the
	// slash-normalized source image path.
	SourceContains []string `json:"source_contains" yaml:"source_contains" hcl:"source_contains"`

	// SourceParent, when set, must equal the basename of the source image's
	// parent directory.
	SourceParent string `json:"source_parent,omitempty" yaml:"source_parent,omitempty" hcl:"source_parent,optional"`

	// DocContains, when set, must appear in the slash-normalized path of the
	// referencing document.
	DocContains string `json:"doc_contains,omitempty" yaml:"doc_contains,omitempty" hcl:"doc_contains,optional"`

	// Dest is the destination directory, relative to the documentation root.
	Dest string `json:"dest" yaml:"dest" hcl:"dest"`
}

// DefaultPlacementRules reproduce the routing the documentation tree grew up
// with: tutorial asset bundles split between the how-to and tutorials
// subtrees depending on the referencing document, and sensor-simulation doc
// images keep their nested home.
func DefaultPlacementRules() []PlacementRule {
	return []PlacementRule{
		{
			SourceContains: []string{"tutorials/assets", "bring_your_own_xr"},
			DocContains:    "how-to",
			Dest:           "how-to/assets/resources",
		},
		{
			SourceContains: []string{"tutorials/assets", "bring_your_own_xr"},
			Dest:           "tutorials/resources",
		},
		{
			SourceContains: []string{"sensor-simulation"},
			SourceParent:   "docs",
			Dest:           "reference/sensor-simulation/docs",
		},
	}
}

// 🎯 Resolver chooses destination paths for copied images
type Resolver struct {
	DocsDir   string          // Documentation root
	AssetsDir string          // Flat asset directory relative to DocsDir, e.g. "assets/images"
	Rules     []PlacementRule // Ordered special-case rules
}

// Resolve returns the destination path for sourceImage when referenced from
// docFile. Falls back to the flat asset directory keyed only by filename;
// two distinct sources sharing a basename silently overwrite there.
func (r *Resolver) Resolve(sourceImage, docFile string) string {
	name := filepath.Base(sourceImage)
	for _, rule := range r.Rules {
		if rule.matches(sourceImage, docFile) {
			return filepath.Join(r.DocsDir, filepath.FromSlash(rule.Dest), name)
		}
	}
	return filepath.Join(r.DocsDir, filepath.FromSlash(r.AssetsDir), name)
}

func (rule PlacementRule) matches(sourceImage, docFile string) bool {
	source := filepath.ToSlash(sourceImage)
	for _, sub := range rule.SourceContains {
		if !strings.Contains(source, sub) {
			return false
		}
	}
	if rule.SourceParent != "" && filepath.Base(filepath.Dir(sourceImage)) != rule.SourceParent {
		return false
	}
	if rule.DocContains != "" && !strings.Contains(filepath.ToSlash(docFile), rule.DocContains) {
		return false
	}
	return true
}

// Relative returns imagePath expressed relative to docFile's directory,
// forward-slash normalized. When no relative path exists the input is
// returned unchanged.
func Relative(imagePath, docFile string) string {
	rel, err := filepath.Rel(filepath.Dir(docFile), imagePath)
	if err != nil {
		return imagePath
	}
	return filepath.ToSlash(rel)
}

// AssetHref builds the reference a synced document uses for an asset in the
// flat asset directory. targetRelDocs is the target document's path relative
// to the documentation root, including the filename.
//
// With pretty URLs the site generator serves page.md as page/index.html, one
// level deeper than the file itself, so the upward step count equals the
// full segment count rather than the directory depth.
func AssetHref(targetRelDocs, assetsDir, assetName string, pretty bool) string {
	parts := strings.Split(filepath.ToSlash(targetRelDocs), "/")
	depth := len(parts)
	if !pretty {
		depth--
	}
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("../", depth) + strings.TrimSuffix(filepath.ToSlash(assetsDir), "/") + "/" + assetName
}
