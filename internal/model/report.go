package model

import "time"

// SheetResult is the per-sheet outcome of one extraction run.
type SheetResult struct {
	SheetName       string        `json:"sheetName"`
	HeaderRow       int           `json:"headerRow"`
	Records         int           `json:"records"`
	SkippedRows     int           `json:"skippedRows"`
	FilteredRows    int           `json:"filteredRows"`
	DefaultedFields int           `json:"defaultedFields"`
	Duration        time.Duration `json:"duration"`
}

// ExtractReport summarizes a full pipeline run. DefaultedFields counts every
// numeric/date/text coercion that fell back to its documented default, so a
// run can be audited for data quality without changing the default-on-failure
// contract.
type ExtractReport struct {
	RunID           string        `json:"runId"`
	SourcePath      string        `json:"sourcePath"`
	RecencyDays     int           `json:"recencyDays"`
	Sheets          []SheetResult `json:"sheets"`
	TotalRecords    int           `json:"totalRecords"`
	SkippedRows     int           `json:"skippedRows"`
	DefaultedFields int           `json:"defaultedFields"`
	Duration        time.Duration `json:"duration"`
}

// Add folds one sheet outcome into the run totals.
func (r *ExtractReport) Add(res SheetResult) {
	r.Sheets = append(r.Sheets, res)
	r.TotalRecords += res.Records
	r.SkippedRows += res.SkippedRows
	r.DefaultedFields += res.DefaultedFields
}
