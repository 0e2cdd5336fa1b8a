package importer

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

// writeWorkbook lays out a minimal source snapshot. sheets maps sheet name to
// its rows; the first listed sheet replaces the default one.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]string, order []string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet %s: %v", name, err)
			}
		}
		for r, row := range sheets[name] {
			cells := make([]any, len(row))
			for c, v := range row {
				cells[c] = v
			}
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(name, axis, &cells); err != nil {
				t.Fatalf("set row %s!%d: %v", name, r+1, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func sampleSheets() (map[string][][]string, []string) {
	sheets := map[string][][]string{
		SheetClients: {
			{"COD_CLI", "NOMBRE Y APELLIDO", "MAIL", "TELEFONO", "TIPO CLI", "DIRECCION"},
			{"5", "Acme SRL", "ventas@acme.test", "", "", ""},
		},
		SheetProducts: {
			{"SKU", "NOMBRE ARTICULO", "TIPO", "LP1"},
			{"X1", "Widget X1", "GADGET", "99"},
		},
		SheetOrderHeaders: {
			{"PLANILLA DE VENTAS"},
			{},
			{"NRO_PEDIDO", "CLIENTE", "FECHA", "ESTADO", "TOTAL", "SALDO"},
			{"100", "5", "2025-03-01", "", "0", ""},
		},
		SheetOrderDetails: {
			{"INV-REM", "SKU", "CANT", "VTA UNI", "ENVIO NRO"},
			{"100", "X1", "3", "10", "797"},
			{"100", "X1", "0", "0", ""},
		},
		SheetShipments: {
			{"NRO ENVIO", "COD CLI", "FORWARDER", "FECHA SAL", "FECHA LLEG"},
			{"797", "5", "FW Miami", "2025-02-20", ""},
		},
	}
	order := []string{SheetClients, SheetProducts, SheetOrderHeaders, SheetOrderDetails, SheetShipments}
	return sheets, order
}

func TestCoordinatorRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ventas.xlsx")
	sheets, order := sampleSheets()
	writeWorkbook(t, path, sheets, order)

	c := NewCoordinator(zap.NewNop())
	res, err := c.Run(Options{
		RunID:        "test-run",
		WorkbookPath: path,
		Now:          time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Clients) != 1 || res.Clients[0].OldID != 5 || res.Clients[0].Name != "Acme SRL" {
		t.Fatalf("clients = %+v", res.Clients)
	}
	if len(res.Products) != 1 || res.Products[0].SKU != "X1" {
		t.Fatalf("products = %+v", res.Products)
	}
	if len(res.Shipments) != 1 || res.Shipments[0].ShipmentNumber != 797 {
		t.Fatalf("shipments = %+v", res.Shipments)
	}
	if res.Shipments[0].Status.Code != model.StatusEnTransito {
		t.Fatalf("shipment status = %v", res.Shipments[0].Status)
	}

	if len(res.Orders) != 1 {
		t.Fatalf("orders = %+v", res.Orders)
	}
	o := res.Orders[0]
	if o.OrderNumber != 100 {
		t.Fatalf("order number = %d", o.OrderNumber)
	}
	if len(o.Items) != 2 {
		t.Fatalf("items = %d, want the zero-quantity line kept", len(o.Items))
	}
	// Header total is zero: derives from the lines, 3*10 + 0*0.
	if o.TotalAmount != 30 {
		t.Fatalf("total = %v, want 30", o.TotalAmount)
	}
	if o.ClientOldID == nil || *o.ClientOldID != 5 {
		t.Fatalf("client = %v", o.ClientOldID)
	}
	if o.ShipmentNumber == nil || *o.ShipmentNumber != 797 {
		t.Fatalf("shipment = %v", o.ShipmentNumber)
	}

	// No PROVEEDORES sheet in this snapshot.
	if res.HasSuppliers || res.Suppliers != nil {
		t.Fatalf("suppliers = %v / %v", res.HasSuppliers, res.Suppliers)
	}

	if res.Report.RunID != "test-run" {
		t.Fatalf("report run id = %q", res.Report.RunID)
	}
	// CLIENTES, ARTICULOS TECNO, CABE_ENVIOS, CABE_VENTAS, DETA_VENTAS.
	if len(res.Report.Sheets) != 5 {
		t.Fatalf("report sheets = %d", len(res.Report.Sheets))
	}
	if res.Report.TotalRecords == 0 {
		t.Fatalf("report = %+v", res.Report)
	}
}

func TestCoordinatorRunWithSuppliers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ventas.xlsx")
	sheets, order := sampleSheets()
	sheets[SheetSuppliers] = [][]string{
		{"COMPAÑIA", "VENDEDOR", "TELEFONO", "CIUDAD", "ESTADO", "COUNTRY"},
		{"Tech Wholesale", "Mike", "", "Miami", "FL", "USA"},
	}
	order = append(order, SheetSuppliers)
	writeWorkbook(t, path, sheets, order)

	c := NewCoordinator(zap.NewNop())
	res, err := c.Run(Options{WorkbookPath: path})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.HasSuppliers || len(res.Suppliers) != 1 {
		t.Fatalf("suppliers = %v / %+v", res.HasSuppliers, res.Suppliers)
	}
	if res.Suppliers[0].Name != "Tech Wholesale" {
		t.Fatalf("supplier = %+v", res.Suppliers[0])
	}
}

func TestCoordinatorCaseInsensitiveSheetNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ventas.xlsx")
	sheets, _ := sampleSheets()
	renamed := map[string][][]string{
		"Clientes":        sheets[SheetClients],
		"Articulos Tecno": sheets[SheetProducts],
		"CABE_VENTAS":     sheets[SheetOrderHeaders],
		"DETA_VENTAS":     sheets[SheetOrderDetails],
		"cabe_envios":     sheets[SheetShipments],
	}
	order := []string{"Clientes", "Articulos Tecno", "CABE_VENTAS", "DETA_VENTAS", "cabe_envios"}
	writeWorkbook(t, path, renamed, order)

	c := NewCoordinator(zap.NewNop())
	res, err := c.Run(Options{WorkbookPath: path})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Clients) != 1 || len(res.Products) != 1 {
		t.Fatalf("extraction under renamed sheets: %d clients, %d products",
			len(res.Clients), len(res.Products))
	}
}

func TestCoordinatorMissingSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ventas.xlsx")
	sheets, order := sampleSheets()
	delete(sheets, SheetOrderDetails)
	order = order[:3] // drop DETA_VENTAS and CABE_ENVIOS
	writeWorkbook(t, path, sheets, order)

	c := NewCoordinator(zap.NewNop())
	_, err := c.Run(Options{WorkbookPath: path})
	var snf *SheetNotFoundError
	if !errors.As(err, &snf) {
		t.Fatalf("err = %v, want SheetNotFoundError", err)
	}
	if snf.Sheet != SheetOrderDetails {
		t.Fatalf("missing sheet = %q", snf.Sheet)
	}
}

func TestCoordinatorMissingWorkbook(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(zap.NewNop())
	_, err := c.Run(Options{WorkbookPath: filepath.Join(t.TempDir(), "no-such.xlsx")})
	if !errors.Is(err, ErrWorkbookMissing) {
		t.Fatalf("err = %v, want ErrWorkbookMissing", err)
	}
}
