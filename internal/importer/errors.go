package importer

import (
	"errors"
	"fmt"
)

// ErrWorkbookMissing is returned when the source workbook is absent at the
// expected path. The run aborts before any extraction.
var ErrWorkbookMissing = errors.New("source workbook not found")

// SheetNotFoundError marks a required sheet missing from the workbook.
// Downstream joins depend on every required sheet, so this is fatal for the
// whole run, never silently skipped.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("required sheet %q not found in workbook", e.Sheet)
}
