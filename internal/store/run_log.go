package store

import (
	"database/sql"
	"fmt"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/importer"
)

// CreateRun records a starting extraction run.
func (s *Store) CreateRun(runID, sourcePath string, recencyDays int) error {
	_, err := s.db.Exec(`
		INSERT INTO extract_runs (id, source_path, recency_days, status)
		VALUES (?, ?, ?, 'running')
	`, runID, sourcePath, recencyDays)
	if err != nil {
		return fmt.Errorf("create run log: %w", err)
	}
	return nil
}

// CompleteRun finalizes a run with its entity and data-quality counts.
func (s *Store) CompleteRun(runID string, res *importer.Result) error {
	_, err := s.db.Exec(`
		UPDATE extract_runs SET
			clients = ?,
			products = ?,
			suppliers = ?,
			orders = ?,
			shipments = ?,
			skipped_rows = ?,
			defaulted_fields = ?,
			status = 'completed',
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, len(res.Clients), len(res.Products), len(res.Suppliers),
		len(res.Orders), len(res.Shipments),
		res.Report.SkippedRows, res.Report.DefaultedFields, runID)
	if err != nil {
		return fmt.Errorf("complete run log: %w", err)
	}
	return nil
}

// FailRun marks a run failed with its error message.
func (s *Store) FailRun(runID, message string) error {
	_, err := s.db.Exec(`
		UPDATE extract_runs SET
			status = 'failed',
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, message, runID)
	if err != nil {
		return fmt.Errorf("fail run log: %w", err)
	}
	return nil
}

// RunRecord is one row of the extract_runs audit table.
type RunRecord struct {
	ID              string
	SourcePath      string
	RecencyDays     int
	Clients         int
	Products        int
	Suppliers       int
	Orders          int
	Shipments       int
	SkippedRows     int
	DefaultedFields int
	Status          string
	ErrorMessage    string
}

// GetRun loads one audit row by run id.
func (s *Store) GetRun(runID string) (*RunRecord, error) {
	var (
		r      RunRecord
		errMsg sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT id, source_path, recency_days,
			clients, products, suppliers, orders, shipments,
			skipped_rows, defaulted_fields, status, error_message
		FROM extract_runs WHERE id = ?
	`, runID).Scan(&r.ID, &r.SourcePath, &r.RecencyDays,
		&r.Clients, &r.Products, &r.Suppliers, &r.Orders, &r.Shipments,
		&r.SkippedRows, &r.DefaultedFields, &r.Status, &errMsg)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	r.ErrorMessage = errMsg.String
	return &r, nil
}

// RecentRuns lists the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, source_path, recency_days,
			clients, products, suppliers, orders, shipments,
			skipped_rows, defaulted_fields, status, error_message
		FROM extract_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		var (
			r      RunRecord
			errMsg sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.RecencyDays,
			&r.Clients, &r.Products, &r.Suppliers, &r.Orders, &r.Shipments,
			&r.SkippedRows, &r.DefaultedFields, &r.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.ErrorMessage = errMsg.String
		records = append(records, &r)
	}
	return records, rows.Err()
}
