// Package report renders the plain-text data quality report. One section per
// entity stream in fixed order, then the run-level notes. The report is
// written even when the load fails, so partial diagnostics always survive.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fleximart/etl/internal/core"
)

// Section is one entity stream's block of the report.
type Section struct {
	Title  string
	Counts core.QualityCounts
}

// Render produces the full report text.
func Render(generatedAt time.Time, runID string, sections []Section, extraNotes []string) string {
	var b strings.Builder

	b.WriteString("FlexiMart ETL Data Quality Report\n")
	fmt.Fprintf(&b, "Generated on: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	if runID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", runID)
	}
	b.WriteString("\n")

	for _, s := range sections {
		fmt.Fprintf(&b, "== %s ==\n", s.Title)
		fmt.Fprintf(&b, "Rows read: %d\n", s.Counts.RowsRead)
		fmt.Fprintf(&b, "Duplicates removed: %d\n", s.Counts.DuplicatesRemoved)
		fmt.Fprintf(&b, "Missing values filled: %d\n", s.Counts.MissingFilled)
		fmt.Fprintf(&b, "Rows dropped: %d\n", s.Counts.RowsDropped)
		fmt.Fprintf(&b, "Rows loaded: %d\n", s.Counts.Loaded)
		if len(s.Counts.Notes) > 0 {
			b.WriteString("Notes:\n")
			for _, n := range s.Counts.Notes {
				fmt.Fprintf(&b, "- %s\n", n)
			}
		}
		b.WriteString("\n")
	}

	if len(extraNotes) > 0 {
		b.WriteString("== Additional Notes ==\n")
		for _, n := range extraNotes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Write renders the report and writes it to path.
func Write(path string, generatedAt time.Time, runID string, sections []Section, extraNotes []string) error {
	content := Render(generatedAt, runID, sections, extraNotes)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
