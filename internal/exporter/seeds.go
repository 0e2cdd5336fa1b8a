package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/importer"
)

// Seed file names match what the downstream loader consumes.
const (
	ClientsSeedFile   = "clients_seed.json"
	ProductsSeedFile  = "products_seed.json"
	OrdersSeedFile    = "orders_seed.json"
	ShipmentsSeedFile = "shipments_seed.json"
	SuppliersSeedFile = "suppliers_seed.json"
)

// Writer emits the seed collections as indented UTF-8 JSON arrays, one file
// per entity, in source row order.
type Writer struct {
	dir string
	log *zap.Logger
}

// NewWriter creates a seed writer targeting dir.
func NewWriter(dir string, log *zap.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

// WriteAll writes every collection of a completed run. The coordinator only
// returns a Result when all required sheets parsed, so this never produces
// partial output for a broken workbook.
func (w *Writer) WriteAll(res *importer.Result) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", w.dir, err)
	}

	if err := w.write(ClientsSeedFile, res.Clients, len(res.Clients)); err != nil {
		return err
	}
	if err := w.write(ProductsSeedFile, res.Products, len(res.Products)); err != nil {
		return err
	}
	if err := w.write(OrdersSeedFile, res.Orders, len(res.Orders)); err != nil {
		return err
	}
	if err := w.write(ShipmentsSeedFile, res.Shipments, len(res.Shipments)); err != nil {
		return err
	}
	if res.HasSuppliers {
		if err := w.write(SuppliersSeedFile, res.Suppliers, len(res.Suppliers)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(name string, v any, count int) error {
	path := filepath.Join(w.dir, name)
	if err := writeJSON(path, v); err != nil {
		return err
	}
	w.log.Info("seed file written", zap.String("path", path), zap.Int("records", count))
	return nil
}

// writeJSON writes v as an indented JSON document. HTML escaping is off so
// accented names and URLs survive byte-identically across runs.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
