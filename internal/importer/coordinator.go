package importer

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/parser"
)

// Sheet names of the source workbook. Lookup is case-insensitive because
// snapshots flip the casing of ARTICULOS TECNO.
const (
	SheetClients      = "CLIENTES"
	SheetProducts     = "ARTICULOS TECNO"
	SheetOrderHeaders = "CABE_VENTAS"
	SheetOrderDetails = "DETA_VENTAS"
	SheetShipments    = "CABE_ENVIOS"
	SheetSuppliers    = "PROVEEDORES"
)

// Options configures one extraction run.
type Options struct {
	RunID        string
	WorkbookPath string
	RecencyDays  int // <= 0 processes all records
	Now          time.Time
}

// Result carries the five entity collections plus the run report. Nothing
// is written anywhere until every required sheet parsed.
type Result struct {
	Clients      []*model.Client
	Products     []*model.Product
	Suppliers    []*model.Supplier
	Orders       []*model.Order
	Shipments    []*model.Shipment
	HasSuppliers bool
	Report       model.ExtractReport
}

// Coordinator drives the extraction pipeline in sheet-dependency order.
type Coordinator struct {
	log *zap.Logger
}

// NewCoordinator creates the pipeline driver.
func NewCoordinator(log *zap.Logger) *Coordinator {
	return &Coordinator{log: log}
}

// Run executes a full, idempotent recomputation from the source snapshot.
// File-level and sheet-level problems are fatal; row-level problems are
// recovered inside the parsers.
func (c *Coordinator) Run(opts Options) (*Result, error) {
	start := time.Now()
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	if _, err := os.Stat(opts.WorkbookPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrWorkbookMissing, opts.WorkbookPath)
		}
		return nil, fmt.Errorf("stat workbook %s: %w", opts.WorkbookPath, err)
	}

	file, err := excelize.OpenFile(opts.WorkbookPath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", opts.WorkbookPath, err)
	}
	defer file.Close()

	available := file.GetSheetList()
	resolve := func(want string) (string, bool) {
		for _, name := range available {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return name, true
			}
		}
		return "", false
	}

	// All required sheets must be present before anything is extracted.
	required := []string{SheetClients, SheetProducts, SheetOrderHeaders, SheetOrderDetails, SheetShipments}
	actual := make(map[string]string, len(required))
	for _, want := range required {
		name, ok := resolve(want)
		if !ok {
			return nil, &SheetNotFoundError{Sheet: want}
		}
		actual[want] = name
	}

	// Raw cell values keep date cells as Excel serials, which the cell
	// normalizer converts; formatted values would be locale-dependent.
	rowsOf := func(name string) ([][]string, error) {
		rows, rerr := file.GetRows(name, excelize.Options{RawCellValue: true})
		if rerr != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, rerr)
		}
		return rows, nil
	}

	res := &Result{Report: model.ExtractReport{
		RunID:       runID,
		SourcePath:  opts.WorkbookPath,
		RecencyDays: opts.RecencyDays,
	}}

	c.log.Info("extraction started",
		zap.String("runId", runID),
		zap.String("workbook", opts.WorkbookPath),
		zap.Int("recencyDays", opts.RecencyDays))

	// Clients.
	sheetStart := time.Now()
	rows, err := rowsOf(actual[SheetClients])
	if err != nil {
		return nil, err
	}
	clientParser := parser.NewClientParser(c.log)
	res.Clients = clientParser.Parse(rows)
	c.record(res, actual[SheetClients], 0, len(res.Clients), clientParser.Stats, sheetStart)

	// Products.
	sheetStart = time.Now()
	rows, err = rowsOf(actual[SheetProducts])
	if err != nil {
		return nil, err
	}
	productParser := parser.NewProductParser(c.log)
	res.Products = productParser.Parse(rows)
	c.record(res, actual[SheetProducts], productParser.HeaderRow, len(res.Products), productParser.Stats, sheetStart)

	// Shipments.
	sheetStart = time.Now()
	rows, err = rowsOf(actual[SheetShipments])
	if err != nil {
		return nil, err
	}
	shipmentParser := parser.NewShipmentParser(c.log, now, opts.RecencyDays)
	res.Shipments = shipmentParser.Parse(rows)
	c.record(res, actual[SheetShipments], shipmentParser.HeaderRow, len(res.Shipments), shipmentParser.Stats, sheetStart)

	// Orders: headers joined with details.
	sheetStart = time.Now()
	headerRows, err := rowsOf(actual[SheetOrderHeaders])
	if err != nil {
		return nil, err
	}
	detailRows, err := rowsOf(actual[SheetOrderDetails])
	if err != nil {
		return nil, err
	}
	orderParser := parser.NewOrderParser(c.log, now, opts.RecencyDays)
	res.Orders, err = orderParser.Parse(headerRows, detailRows)
	if err != nil {
		return nil, fmt.Errorf("reconcile orders: %w", err)
	}
	itemCount := 0
	for _, o := range res.Orders {
		itemCount += len(o.Items)
	}
	c.record(res, actual[SheetOrderHeaders], orderParser.HeaderRowCabe, len(res.Orders), orderParser.HeaderStats, sheetStart)
	c.record(res, actual[SheetOrderDetails], orderParser.HeaderRowDeta, itemCount, orderParser.DetailStats, sheetStart)

	// Suppliers are optional: the sheet only exists in newer snapshots.
	if name, ok := resolve(SheetSuppliers); ok {
		sheetStart = time.Now()
		rows, err = rowsOf(name)
		if err != nil {
			return nil, err
		}
		supplierParser := parser.NewSupplierParser(c.log)
		res.Suppliers = supplierParser.Parse(rows)
		res.HasSuppliers = true
		c.record(res, name, 0, len(res.Suppliers), supplierParser.Stats, sheetStart)
	} else {
		c.log.Warn("PROVEEDORES sheet not present; supplier collection skipped")
	}

	res.Report.Duration = time.Since(start)
	c.log.Info("extraction finished",
		zap.String("runId", runID),
		zap.Int("records", res.Report.TotalRecords),
		zap.Int("skippedRows", res.Report.SkippedRows),
		zap.Int("defaultedFields", res.Report.DefaultedFields),
		zap.Duration("duration", res.Report.Duration))

	return res, nil
}

func (c *Coordinator) record(res *Result, sheet string, headerRow, records int, stats parser.SheetStats, start time.Time) {
	result := model.SheetResult{
		SheetName:       sheet,
		HeaderRow:       headerRow,
		Records:         records,
		SkippedRows:     stats.Skipped,
		FilteredRows:    stats.Filtered,
		DefaultedFields: stats.Defaulted,
		Duration:        time.Since(start),
	}
	res.Report.Add(result)
	c.log.Info("sheet extracted",
		zap.String("sheet", sheet),
		zap.Int("headerRow", headerRow),
		zap.Int("records", records),
		zap.Int("skippedRows", stats.Skipped),
		zap.Int("filteredRows", stats.Filtered),
		zap.Int("defaultedFields", stats.Defaulted))
}
