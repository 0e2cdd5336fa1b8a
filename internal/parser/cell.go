package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// missingTokens are the trimmed, lower-cased cell values treated as absent.
// "n/a" deliberately does not count: the source workbook uses it as a real
// annotation, not as an empty marker.
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Number strips currency symbols and thousands separators from the cell text
// and parses the rest as a float. Anything unparsable resolves to 0 with
// defaulted=true; it never fails.
func Number(raw string) (val float64, defaulted bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if isMissing(s) {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true
	}
	return f, false
}

// Int coerces through Number and truncates.
func Int(raw string) (int, bool) {
	f, defaulted := Number(raw)
	return int(f), defaulted
}

// Key coerces a natural-key cell to an integer. ok is false when the cell is
// missing or not numeric; callers skip such rows instead of defaulting.
func Key(raw string) (int, bool) {
	f, defaulted := Number(raw)
	if defaulted {
		return 0, false
	}
	return int(f), true
}

// Text returns nil for missing cells and the trimmed text otherwise. Empty
// string never comes back: "not provided" is nil, by contract.
func Text(raw string) *string {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return nil
	}
	return &s
}

// TextOr returns the trimmed text or fallback when the cell is missing.
func TextOr(raw, fallback string) string {
	if t := Text(raw); t != nil {
		return *t
	}
	return fallback
}

// isoLayout matches the timestamp shape the legacy seed files carry.
const isoLayout = "2006-01-02T15:04:05"

// DateText converts a cell to an ISO-8601 timestamp string when the cell
// carries date semantics (an Excel date serial, read raw), returns nil under
// the missing-value rule, and passes any other text through unchanged.
// Ambiguous date strings are not parsed; best effort, never fail the row.
func DateText(raw string) *string {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			iso := t.Format(isoLayout)
			return &iso
		}
	}
	return &s
}

// DateValue resolves a cell to a concrete time for recency comparison.
// ok is false when the cell holds no recognizable date; the caller must
// fail open (an unknown date never excludes a row).
func DateValue(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	for _, layout := range []string{isoLayout, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Digits reports whether the trimmed cell is a plain unsigned decimal. The
// order header's client column is an id only in that exact shape; anything
// else is a free-text name.
func Digits(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
