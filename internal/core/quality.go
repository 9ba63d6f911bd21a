package core

import "fmt"

// QualityCounts accumulates data-quality metrics for one entity stream.
// Each cleaner returns its own instance by value; nothing is shared between
// concurrently running cleaners.
type QualityCounts struct {
	RowsRead          int
	DuplicatesRemoved int
	RowsDropped       int
	MissingFilled     int
	Loaded            int
	Notes             []string
}

// Notef appends a formatted note explaining a drop or fill decision.
func (q *QualityCounts) Notef(format string, args ...any) {
	q.Notes = append(q.Notes, fmt.Sprintf(format, args...))
}
