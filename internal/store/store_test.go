package store

import (
	"path/filepath"
	"testing"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/importer"
	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if err := s.CreateRun("run-1", "ventas.xlsx", 30); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	r, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r.Status != "running" || r.SourcePath != "ventas.xlsx" || r.RecencyDays != 30 {
		t.Fatalf("fresh run = %+v", r)
	}

	res := &importer.Result{
		Clients:   []*model.Client{{OldID: 5}},
		Products:  []*model.Product{{SKU: "X1"}, {SKU: "X2"}},
		Orders:    []*model.Order{{OrderNumber: 100}},
		Shipments: []*model.Shipment{{ShipmentNumber: 797}},
		Report:    model.ExtractReport{SkippedRows: 3, DefaultedFields: 2},
	}
	if err := s.CompleteRun("run-1", res); err != nil {
		t.Fatalf("CompleteRun: %v", err)
	}

	r, err = s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun after complete: %v", err)
	}
	if r.Status != "completed" {
		t.Fatalf("status = %q", r.Status)
	}
	if r.Clients != 1 || r.Products != 2 || r.Orders != 1 || r.Shipments != 1 {
		t.Fatalf("counts = %+v", r)
	}
	if r.SkippedRows != 3 || r.DefaultedFields != 2 {
		t.Fatalf("quality counters = %+v", r)
	}
}

func TestFailRun(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.CreateRun("run-2", "ventas.xlsx", 0); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if err := s.FailRun("run-2", "required sheet missing"); err != nil {
		t.Fatalf("FailRun: %v", err)
	}

	r, err := s.GetRun("run-2")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r.Status != "failed" || r.ErrorMessage != "required sheet missing" {
		t.Fatalf("failed run = %+v", r)
	}
}

func TestRecentRuns(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.CreateRun(id, "ventas.xlsx", 0); err != nil {
			t.Fatalf("CreateRun(%s): %v", id, err)
		}
	}

	runs, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Same-second inserts order by id descending.
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("order = %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestGetRunMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if _, err := s.GetRun("nope"); err == nil {
		t.Fatal("unknown run id must error")
	}
}
