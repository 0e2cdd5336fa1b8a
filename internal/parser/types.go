package parser

import "time"

// SheetStats accumulates per-sheet row outcomes during one extraction run.
type SheetStats struct {
	Rows      int // data rows seen below the header
	Skipped   int // rows dropped: natural key missing or unparsable
	Filtered  int // rows excluded by the recency window
	Defaulted int // populated cells whose coercion fell back to the default
}

// num coerces through Number and counts a defaulted result when the cell was
// actually populated. An absent cell defaulting to zero is normal and not a
// data-quality signal; a populated cell that failed to parse is.
func (s *SheetStats) num(raw string) float64 {
	v, defaulted := Number(raw)
	if defaulted && !isMissing(raw) {
		s.Defaulted++
	}
	return v
}

// ageDays is the whole-day age of t relative to now, partial days discarded.
// The recency window counts calendar-style days: a row aged exactly the
// window length plus a few hours still falls inside it.
func ageDays(now, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// firstCell returns the first cell among idxs that holds a value. Two
// historical sheet layouts name some columns differently, so both must be
// tried and the first present value wins.
func firstCell(row []string, idxs ...int) string {
	for _, idx := range idxs {
		if v := Cell(row, idx); !isMissing(v) {
			return v
		}
	}
	return ""
}
