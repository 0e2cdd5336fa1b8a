package parser

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

// Column names on CABE_VENTAS drift across workbook snapshots, so each
// semantic field is resolved by candidate substrings, first match wins. A
// fallback name that turns out absent simply reads as always-missing.
var (
	ruleOrderID  = FieldRule{Candidates: []string{"INV", "REM", "PEDIDO", "NRO", "ORDEN"}, Fallback: "NRO_PEDIDO"}
	ruleClient   = FieldRule{Candidates: []string{"CLIENTE", "NRO CLI", "COD CLI"}, Fallback: "CLIENTE"}
	ruleDate     = FieldRule{Candidates: []string{"FECHA"}, Fallback: "FECHA"}
	ruleStatus   = FieldRule{Candidates: []string{"ESTADO"}, Fallback: "ESTADO"}
	ruleTotal    = FieldRule{Candidates: []string{"TOTAL"}, Fallback: "TOTAL"}
	ruleBalance  = FieldRule{Candidates: []string{"SALDO"}, Fallback: "SALDO"}
	ruleMethod   = FieldRule{Candidates: []string{"METODO"}, Fallback: "METODO"}
	ruleShipment = FieldRule{Candidates: []string{"ENVIO"}, Fallback: "ENVIO NRO"}
)

// OrderParser joins CABE_VENTAS header rows to their DETA_VENTAS lines and
// assembles consistent Order records. A malformed row is skipped with a
// logged reason; it never aborts the run.
type OrderParser struct {
	log         *zap.Logger
	now         time.Time
	recencyDays int

	HeaderRowCabe int
	HeaderRowDeta int
	HeaderStats   SheetStats
	DetailStats   SheetStats
}

// NewOrderParser creates the order reconciler. recencyDays <= 0 means no
// recency filtering.
func NewOrderParser(log *zap.Logger, now time.Time, recencyDays int) *OrderParser {
	return &OrderParser{log: log, now: now, recencyDays: recencyDays}
}

// Parse reconciles the two sheets. Orders come out in header-sheet row
// order; re-running on unchanged input yields an identical collection.
func (p *OrderParser) Parse(headerRows, detailRows [][]string) ([]*model.Order, error) {
	if len(headerRows) == 0 {
		return nil, errors.New("order header sheet has no rows")
	}
	if len(detailRows) == 0 {
		return nil, errors.New("order detail sheet has no rows")
	}

	p.HeaderRowCabe = LocateHeader(headerRows, "NRO_PEDIDO")
	cols := NewColumnSet(headerRows[p.HeaderRowCabe])
	colOrder := cols.Resolve(ruleOrderID)
	colClient := cols.Resolve(ruleClient)
	colDate := cols.Resolve(ruleDate)
	colStatus := cols.Resolve(ruleStatus)
	colTotal := cols.Resolve(ruleTotal)
	colBalance := cols.Resolve(ruleBalance)
	colMethod := cols.Resolve(ruleMethod)
	colShipment := cols.Resolve(ruleShipment)

	// Recency pre-filter on the headers. Rows without a readable date stay
	// in; an unknown date never excludes an order.
	retained := make([][]string, 0, len(headerRows))
	retainedRowNos := make([]int, 0, len(headerRows))
	retainedIDs := make(map[int]bool)
	for i, row := range headerRows[p.HeaderRowCabe+1:] {
		rowNo := p.HeaderRowCabe + i + 2
		p.HeaderStats.Rows++
		if p.recencyDays > 0 {
			if t, known := DateValue(Cell(row, colDate)); known {
				if ageDays(p.now, t) > p.recencyDays {
					p.HeaderStats.Filtered++
					continue
				}
			}
		}
		retained = append(retained, row)
		retainedRowNos = append(retainedRowNos, rowNo)
		if id, ok := Key(Cell(row, colOrder)); ok {
			retainedIDs[id] = true
		}
	}

	details, lineStatus := p.groupDetails(detailRows, retainedIDs)

	orders := make([]*model.Order, 0, len(retained))
	for i, row := range retained {
		rowNo := retainedRowNos[i]

		onum, ok := Key(Cell(row, colOrder))
		if !ok {
			p.HeaderStats.Skipped++
			p.log.Debug("order header skipped: order number missing or not numeric",
				zap.Int("row", rowNo))
			continue
		}

		items := details[onum]
		if items == nil {
			items = make([]*model.OrderItem, 0)
		}

		// The header total is authoritative when non-zero; the line-item sum
		// is only the fallback.
		total := p.HeaderStats.num(Cell(row, colTotal))
		if total == 0 && len(items) > 0 {
			for _, it := range items {
				total += it.UnitPrice * float64(it.Quantity)
			}
		}

		order := &model.Order{
			OrderNumber:   onum,
			Date:          DateText(Cell(row, colDate)),
			TotalAmount:   total,
			PaymentAmount: p.deriveBalancePayment(total, Cell(row, colBalance)),
			PaymentMethod: Text(Cell(row, colMethod)),
			Items:         items,
		}

		// The client column holds either the legacy numeric code or a free
		// text name; never both.
		clientRaw := Cell(row, colClient)
		if Digits(clientRaw) {
			if id, err := strconv.Atoi(strings.TrimSpace(clientRaw)); err == nil {
				order.ClientOldID = &id
			}
		} else {
			order.ClientNameMatch = Text(clientRaw)
		}

		// Detail-line statuses take priority over the header's own column.
		if st, found := lineStatus[onum]; found {
			order.Status = st
		} else {
			order.Status = model.NormalizeStatus(TextOr(Cell(row, colStatus), ""))
		}

		if num, shipOK := Key(Cell(row, colShipment)); shipOK && num != 0 {
			order.ShipmentNumber = &num
		} else {
			// Order-level shipment is a derived value: inherit from the
			// first line item that carries one.
			for _, it := range items {
				if it.ShipmentNumber != nil {
					order.ShipmentNumber = it.ShipmentNumber
					break
				}
			}
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// groupDetails buckets DETA_VENTAS lines by order id and folds per-line
// statuses into an order-level map. The linking column is the first non-null
// of INV-REM and NRO_PEDIDO; rows whose id will not coerce are dropped. Only
// non-default line statuses are recorded, last one in row order wins.
func (p *OrderParser) groupDetails(detailRows [][]string, retainedIDs map[int]bool) (map[int][]*model.OrderItem, map[int]model.Status) {
	p.HeaderRowDeta = LocateHeader(detailRows, "SKU", "INV-REM")
	dcols := NewColumnSet(detailRows[p.HeaderRowDeta])
	dInvRem := dcols.Index("INV-REM")
	dNro := dcols.Index("NRO_PEDIDO")
	dSKU := dcols.Index("SKU")
	dCant := dcols.Index("CANT")
	dCantidad := dcols.Index("CANTIDAD")
	dVtaUni := dcols.Index("VTA UNI")
	dPrecio := dcols.Index("PRECIO")
	dCosto := dcols.Index("COSTO")
	dCostoArt := dcols.Index("COSTO X ART")
	dProfit := dcols.Index("GANANCIA")
	dDetalle := dcols.Index("DETALLE")
	dEnvio := dcols.Index("ENVIO NRO")
	dStatus := dcols.Index("ESTADO")
	dSupplier := dcols.Resolve(FieldRule{Candidates: []string{"PROVEEDOR"}, Fallback: "PROVEEDOR"})
	dInvoice := dcols.Resolve(FieldRule{Candidates: []string{"FACT"}, Fallback: "FACT CPRA"})

	details := make(map[int][]*model.OrderItem)
	lineStatus := make(map[int]model.Status)

	for i, row := range detailRows[p.HeaderRowDeta+1:] {
		rowNo := p.HeaderRowDeta + i + 2
		p.DetailStats.Rows++

		oid, ok := Key(firstCell(row, dInvRem, dNro))
		if !ok {
			p.DetailStats.Skipped++
			p.log.Debug("detail row dropped: order id missing or not numeric",
				zap.Int("row", rowNo))
			continue
		}
		if p.recencyDays > 0 && !retainedIDs[oid] {
			p.DetailStats.Filtered++
			continue
		}

		// Text first so missing-token cells ("null", "none") collapse to the
		// default instead of passing through as a real label.
		status := model.NormalizeStatus(TextOr(Cell(row, dStatus), ""))
		if !status.IsDefault() {
			lineStatus[oid] = status
		}

		sku := Text(Cell(row, dSKU))
		item := &model.OrderItem{
			SKU:             sku,
			Quantity:        int(p.DetailStats.num(firstCell(row, dCant, dCantidad))),
			UnitPrice:       p.DetailStats.num(firstCell(row, dVtaUni, dPrecio)),
			UnitCost:        p.DetailStats.num(firstCell(row, dCosto, dCostoArt)),
			Profit:          p.DetailStats.num(Cell(row, dProfit)),
			ProductName:     Text(Cell(row, dDetalle)),
			Status:          status,
			SupplierName:    Text(Cell(row, dSupplier)),
			PurchaseInvoice: Text(Cell(row, dInvoice)),
		}
		if item.ProductName == nil {
			// Description absent: the SKU doubles as the display name.
			item.ProductName = sku
		}
		if num, shipOK := Key(Cell(row, dEnvio)); shipOK && num != 0 {
			item.ShipmentNumber = &num
		}

		details[oid] = append(details[oid], item)
	}

	return details, lineStatus
}

// deriveBalancePayment derives the recorded payment from the balance column:
// payment = total − balance, floored at zero. A header without a balance
// value is assumed fully paid. Of the two historical policies (floor at
// zero vs. carry a negative balance through as recorded credit) this
// implementation floors, matching the consolidated extraction path; a
// negative balance still yields a payment above the total.
func (p *OrderParser) deriveBalancePayment(total float64, balanceCell string) float64 {
	if Text(balanceCell) == nil {
		return total
	}
	payment := total - p.HeaderStats.num(balanceCell)
	if payment < 0 {
		payment = 0
	}
	return payment
}
