// Package markdown extracts document metadata needed for generated
// frontmatter.
package markdown

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractTitle returns the text of the first level-1 heading in source.
// Markdown links and inline formatting inside the heading are flattened to
// their visible text. Returns false when the document has no level-1 heading.
func ExtractTitle(source []byte) (string, bool) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var title string
	var found bool
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(nodeText(heading, source))
		found = true
		return ast.WalkStop, nil
	})

	if !found || title == "" {
		return "", false
	}
	return title, true
}

// nodeText collects the plain text of a node's subtree
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(nodeText(c, source))
		}
	}
	return buf.String()
}

// TitleFromPath derives a readable title from a source file's
// workspace-relative path when the document itself has no usable heading.
// The parent directory name is cleaned up and title-cased; a parent named
// "scripts" is skipped in favor of its own parent, since it never names the
// component the README describes.
func TitleFromPath(relPath string) string {
	parts := strings.Split(filepath.ToSlash(relPath), "/")

	if len(parts) > 2 {
		parent := parts[len(parts)-2]
		if parent == "scripts" && len(parts) > 3 {
			parent = parts[len(parts)-3]
		}
		return cleanTitle(parent)
	}

	return cleanTitle(filepath.Base(filepath.Dir(filepath.FromSlash(relPath))))
}

// cleanTitle turns a directory name into display text
func cleanTitle(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
