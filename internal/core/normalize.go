package core

// normalize.go provides the field normalizers for raw FlexiMart cells.
//
// These functions handle the messy reality of hand-maintained exports:
//   - five date formats plus a permissive fallback
//   - phone numbers with spacing, dashes and country-code noise
//   - inconsistent category spellings and casing
//   - currency symbols and thousand separators in numbers
//   - the literal tokens "nan"/"none"/"null" standing in for empty cells
//
// All normalizers returning pgtype values use Valid=false for empty or
// unrepresentable input, letting the database store NULLs.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts are tried in fixed priority order. Ambiguous strings such as
// "01-02-2024" resolve by this priority (month-day-year before day-month-year),
// not by locale.
var dateLayouts = []string{
	"2006-01-02", // 2024-01-15
	"02/01/2006", // 15/01/2024
	"01-02-2006", // 01-22-2024
	"01/02/2006", // 03/12/2024
	"02-01-2006", // 15-01-2024
}

// Fallback layouts for dates no priority format accepts. The month-first list
// is exhausted before the day-first list.
var (
	looseMonthFirstLayouts = []string{
		"2006/01/02", "2006.01.02", "01.02.2006",
		"Jan 2, 2006", "January 2, 2006", "2 Jan 2006", "2 January 2006",
		"2006-01-02 15:04:05",
	}
	looseDayFirstLayouts = []string{
		"02.01.2006",
	}
)

// categorySynonyms maps lowercased category spellings to canonical labels.
var categorySynonyms = map[string]string{
	"electronics": "Electronics",
	"fashion":     "Fashion",
	"groceries":   "Groceries",
}

// IsSentinel reports whether a trimmed cell is empty or one of the literal
// placeholder tokens exports use for missing values.
func IsSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

// ParseDate parses the recognized date formats in priority order, then falls
// back to the permissive layouts, month-first before day-first.
// Returns an invalid Date for empty or unparseable input.
func ParseDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return pgtype.Date{Valid: false}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	for _, layout := range looseMonthFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}
	for _, layout := range looseDayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// NormalizePhone standardizes a phone number to +91-XXXXXXXXXX using the last
// ten digits. The country code is a fixed convention, not detected. Returns
// an invalid Text when fewer than ten digits remain after stripping.
func NormalizePhone(s string) pgtype.Text {
	if IsSentinel(s) {
		return pgtype.Text{Valid: false}
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 10 {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: "+91-" + d[len(d)-10:], Valid: true}
}

// NormalizeCity trims and title-cases a city name.
func NormalizeCity(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: titleCase(s), Valid: true}
}

// NormalizeCategory maps a raw category onto its canonical label. Unrecognized
// non-empty categories are title-cased as-is; empty input becomes "Unknown".
// Unlike the other normalizers this never reports absence: every product has
// a category.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return "Unknown"
	}
	if canonical, ok := categorySynonyms[strings.ToLower(s)]; ok {
		return canonical
	}
	return titleCase(s)
}

// ParseFloat coerces a cell to a float64, tolerating currency symbols,
// thousands separators, and accounting-style parentheses for negatives.
// The second return is false for empty or non-numeric input.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, "₹", "") // Rupee
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt coerces a cell to an int by way of ParseFloat, truncating any
// fractional part.
func ParseInt(s string) (int, bool) {
	f, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Round2 rounds to two decimal places, the precision of every monetary value
// in the target schema.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest. A fresh caser per call keeps this safe under concurrent cleaners.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}
