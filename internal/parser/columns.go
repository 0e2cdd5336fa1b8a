package parser

import "strings"

// FieldRule resolves one semantic field to a column. Candidates are tried in
// order as substrings of the sheet's normalized column names — first
// candidate with a matching column wins. When none hits, Fallback is looked
// up as a literal column name, which may legitimately not exist; the field
// then reads as always-missing for that sheet.
type FieldRule struct {
	Candidates []string
	Fallback   string
}

// ColumnSet is the normalized header of one sheet, resolved once before row
// iteration begins.
type ColumnSet struct {
	header []string
}

// NewColumnSet normalizes a header row (upper-case, trimmed) for lookups.
func NewColumnSet(headerRow []string) *ColumnSet {
	header := make([]string, len(headerRow))
	for i, h := range headerRow {
		header[i] = NormalizeHeaderCell(h)
	}
	return &ColumnSet{header: header}
}

// Index returns the first column named exactly name, or -1.
func (c *ColumnSet) Index(name string) int {
	return c.Nth(name, 0)
}

// Nth returns the n-th (0-based) column named exactly name, or -1. The
// source duplicates some headers (two PESO columns in CABE_ENVIOS).
func (c *ColumnSet) Nth(name string, n int) int {
	want := NormalizeHeaderCell(name)
	seen := 0
	for i, h := range c.header {
		if h == want {
			if seen == n {
				return i
			}
			seen++
		}
	}
	return -1
}

// Resolve applies a FieldRule against the header.
func (c *ColumnSet) Resolve(rule FieldRule) int {
	for _, cand := range rule.Candidates {
		want := strings.ToUpper(cand)
		for i, h := range c.header {
			if h != "" && strings.Contains(h, want) {
				return i
			}
		}
	}
	if rule.Fallback == "" {
		return -1
	}
	return c.Index(rule.Fallback)
}

// Cell is a bounds-safe row accessor; out-of-range and unresolved columns
// read as the empty cell.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
