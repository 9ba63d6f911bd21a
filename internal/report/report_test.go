package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fleximart/etl/internal/core"
)

func testSections() []Section {
	return []Section{
		{Title: "Customers", Counts: core.QualityCounts{
			RowsRead: 10, DuplicatesRemoved: 1, MissingFilled: 2, RowsDropped: 3, Loaded: 6,
			Notes: []string{"Dropped 3 customer rows due to missing email (NOT NULL constraint)."},
		}},
		{Title: "Products", Counts: core.QualityCounts{RowsRead: 5, Loaded: 5}},
		{Title: "Sales", Counts: core.QualityCounts{RowsRead: 20, RowsDropped: 2, Loaded: 18}},
	}
}

func TestRenderLayout(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	got := Render(at, "run-123", testSections(), []string{"Orders inserted: 18"})

	wantLines := []string{
		"FlexiMart ETL Data Quality Report",
		"Generated on: 2024-03-01 09:30:00",
		"Run ID: run-123",
		"== Customers ==",
		"Rows read: 10",
		"Duplicates removed: 1",
		"Missing values filled: 2",
		"Rows dropped: 3",
		"Rows loaded: 6",
		"Notes:",
		"- Dropped 3 customer rows due to missing email (NOT NULL constraint).",
		"== Products ==",
		"== Sales ==",
		"== Additional Notes ==",
		"- Orders inserted: 18",
	}
	pos := 0
	for _, line := range wantLines {
		i := strings.Index(got[pos:], line)
		if i < 0 {
			t.Fatalf("report missing %q after position %d:\n%s", line, pos, got)
		}
		pos += i + len(line)
	}
}

func TestRenderOmitsEmptyParts(t *testing.T) {
	got := Render(time.Now(), "", []Section{{Title: "Customers"}}, nil)

	if strings.Contains(got, "Run ID") {
		t.Errorf("empty run id should be omitted:\n%s", got)
	}
	if strings.Contains(got, "Notes:") {
		t.Errorf("section without notes should have no Notes block:\n%s", got)
	}
	if strings.Contains(got, "Additional Notes") {
		t.Errorf("no extra notes, no Additional Notes block:\n%s", got)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	if err := Write(path, at, "run-123", testSections(), nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != Render(at, "run-123", testSections(), nil) {
		t.Errorf("file content differs from rendered report")
	}
}

func TestWriteBadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "report.txt"), time.Now(), "", nil, nil)
	if err == nil {
		t.Fatal("want an error writing into a missing directory")
	}
}
