package operation

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📄 ReportFilename is where the needs report lands under the docs root
const ReportFilename = "documentation-needs-report.md"

const reportActionItems = `

## Action Items

1. Review each file listed above
2. Add comprehensive documentation including:
   - Overview/Introduction
   - Prerequisites/Requirements
   - Installation/Setup instructions
   - Usage examples
   - API reference (if applicable)
   - Troubleshooting guide
   - Links to related documentation

## Priority Guidelines

- **❌ Critical** (< 100 chars): These files are essentially empty and need immediate attention
- **⚠️ Needs Expansion** (< 500 chars): These files have some content but need significant expansion
`

// 📊 writeNeedsReport aggregates the collected needs-content records into a
// single markdown report, sorted ascending by body length
func (op *SyncReadmesOperation) writeNeedsReport(ctx context.Context) error {
	records := make([]NeedRecord, len(op.summary.NeedsContent))
	copy(records, op.summary.NeedsContent)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Length < records[j].Length
	})

	var b strings.Builder
	fmt.Fprintf(&b, `# Documentation Needs Report

This report lists all README files that need additional content from the engineering team.

Generated: %s

## Files Needing Documentation

Total files with minimal content: %d

| Source File | Target Documentation | Current Length | Status |
|------------|---------------------|----------------|---------|
`, time.Now().Format(time.RFC3339), len(records))

	for _, record := range records {
		fmt.Fprintf(&b, "| `%s` | `%s` | %d chars | %s |\n",
			record.Source, record.Target, record.Length, severityLabel(record.Length))
	}

	b.WriteString(reportActionItems)

	reportPath := filepath.Join(op.BaseDir, filepath.FromSlash(op.Config.DocsDir), ReportFilename)
	if _, err := op.StatusMgr.WriteFileAtomic(ctx, reportPath, []byte(b.String())); err != nil {
		return errors.Errorf("writing report: %w", err)
	}

	op.Console.Infof("documentation needs report generated: %s", reportPath)
	return nil
}

// 🏷️ severityLabel maps a body length to its binary severity
func severityLabel(length int) string {
	if length < 100 {
		return "❌ Critical"
	}
	return "⚠️ Needs Expansion"
}
