package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for file path
	statusWidth = 12 // Width for status text
)

// 🎯 FormatFileLine formats a single file outcome for console display
func FormatFileLine(info FileInfo) string {
	var prefix string
	switch info.Status {
	case StatusNew:
		prefix = color.GreenString("✓")
	case StatusModified:
		prefix = color.YellowString("⟳")
	case StatusSkipped:
		prefix = color.HiBlackString("-")
	case StatusUnchanged:
		prefix = color.CyanString("•")
	default:
		prefix = color.RedString("?")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, info.Path)
	statusPart := fmt.Sprintf("%-*s", statusWidth, info.Status.String())

	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
	)
}
