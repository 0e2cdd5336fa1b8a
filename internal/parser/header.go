package parser

import "strings"

// maxHeaderScan bounds the header search window. Hand-edited workbooks stack
// banner rows and merged titles above the real header, but never this deep.
const maxHeaderScan = 15

// NormalizeHeaderCell upper-cases and trims a cell for header comparison.
func NormalizeHeaderCell(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// LocateHeader scans the first rows of a sheet for the column-header row:
// the first row whose normalized cells contain any anchor token, compared
// exactly. Returns 0 when nothing matches (fail open: assume the sheet
// starts with its header rather than erroring).
func LocateHeader(rows [][]string, anchors ...string) int {
	limit := len(rows)
	if limit > maxHeaderScan {
		limit = maxHeaderScan
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			v := NormalizeHeaderCell(cell)
			if v == "" {
				continue
			}
			for _, anchor := range anchors {
				if v == anchor {
					return i
				}
			}
		}
	}
	return 0
}
