package parser

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

// ShipmentParser extracts CABE_ENVIOS. The header row drifts below banner
// rows, so it is located by the NRO ENVIO anchor.
type ShipmentParser struct {
	log         *zap.Logger
	now         time.Time
	recencyDays int

	HeaderRow int
	Stats     SheetStats
}

// NewShipmentParser creates the CABE_ENVIOS extractor. recencyDays <= 0
// means no recency filtering.
func NewShipmentParser(log *zap.Logger, now time.Time, recencyDays int) *ShipmentParser {
	return &ShipmentParser{log: log, now: now, recencyDays: recencyDays}
}

// Parse builds one Shipment per unique non-zero NRO ENVIO, first occurrence
// wins. When the recency window is set, rows whose departure date is older
// than the window are excluded; rows without a readable date stay in.
func (p *ShipmentParser) Parse(rows [][]string) []*model.Shipment {
	shipments := make([]*model.Shipment, 0)
	if len(rows) == 0 {
		return shipments
	}

	p.HeaderRow = LocateHeader(rows, "NRO ENVIO")
	if len(rows) <= p.HeaderRow+1 {
		return shipments
	}

	cols := NewColumnSet(rows[p.HeaderRow])
	colNum := cols.Index("NRO ENVIO")
	colCli := cols.Index("COD CLI")
	colForwarder := cols.Index("FORWARDER")
	colDateSal := cols.Index("FECHA SAL")
	colDateLleg := cols.Index("FECHA LLEG")
	colTipoCarga := cols.Index("TIPO CARGA")
	colCantArt := cols.Index("CANT ART")
	colCostoTot := cols.Index("COSTO TOT")
	colEnvioCob := cols.Index("ENVIO COB")
	colGanancia := cols.Index("GANANCIA")
	colInvoice := cols.Index("INVOICE")
	colPago := cols.Index("PAGO?")
	colObs := cols.Index("OBSERVACION")
	colLlego := cols.Index("LLEGO?")

	// The sheet carries two weight columns. Explicit PESO FW / PESO CLI
	// headers win; older snapshots title both just PESO, forwarder first.
	colPesoFW := cols.Index("PESO FW")
	if colPesoFW < 0 {
		colPesoFW = cols.Nth("PESO", 0)
	}
	colPesoCli := cols.Index("PESO CLI")
	if colPesoCli < 0 {
		colPesoCli = cols.Nth("PESO", 1)
	}

	seen := make(map[int]bool)
	for i, row := range rows[p.HeaderRow+1:] {
		rowNo := p.HeaderRow + i + 2
		p.Stats.Rows++

		num, ok := Key(Cell(row, colNum))
		if !ok {
			p.Stats.Skipped++
			p.log.Debug("shipment row skipped: NRO ENVIO missing or not numeric",
				zap.Int("row", rowNo))
			continue
		}
		if num == 0 {
			// Number 0 marks placeholder rows in the sheet.
			p.Stats.Skipped++
			p.log.Debug("shipment row skipped: NRO ENVIO is zero", zap.Int("row", rowNo))
			continue
		}

		if p.recencyDays > 0 {
			if t, known := DateValue(Cell(row, colDateSal)); known {
				if ageDays(p.now, t) > p.recencyDays {
					p.Stats.Filtered++
					continue
				}
			}
		}

		if seen[num] {
			p.Stats.Skipped++
			p.log.Debug("duplicate NRO ENVIO ignored, first occurrence wins",
				zap.Int("row", rowNo), zap.Int("shipment", num))
			continue
		}
		seen[num] = true

		dateShipped := DateText(Cell(row, colDateSal))
		dateArrived := DateText(Cell(row, colDateLleg))

		var status model.Status
		if raw := Text(Cell(row, colLlego)); raw != nil {
			status = model.NormalizeStatus(*raw)
		} else {
			// No explicit status: infer the stage from the dates present.
			switch {
			case dateArrived != nil:
				status = model.KnownStatus(model.StatusEnBsas)
			case dateShipped != nil:
				status = model.KnownStatus(model.StatusEnTransito)
			default:
				status = model.KnownStatus(model.StatusMiami)
			}
		}

		sh := &model.Shipment{
			ShipmentNumber:  num,
			Forwarder:       Text(Cell(row, colForwarder)),
			DateShipped:     dateShipped,
			DateArrived:     dateArrived,
			WeightForwarder: p.Stats.num(Cell(row, colPesoFW)),
			WeightClient:    p.Stats.num(Cell(row, colPesoCli)),
			TypeLoad:        Text(Cell(row, colTipoCarga)),
			ItemCount:       int(p.Stats.num(Cell(row, colCantArt))),
			Status:          status,
			Notes:           Text(Cell(row, colObs)),
			Invoice:         Text(Cell(row, colInvoice)),
			IsPaid:          isAffirmative(Text(Cell(row, colPago))),
			PriceTotal:      p.Stats.num(Cell(row, colEnvioCob)),
			CostTotal:       p.Stats.num(Cell(row, colCostoTot)),
			Profit:          p.Stats.num(Cell(row, colGanancia)),
		}
		if cli, cliOK := Key(Cell(row, colCli)); cliOK {
			sh.OldClientID = &cli
		}
		shipments = append(shipments, sh)
	}

	return shipments
}

// isAffirmative interprets the free-text PAGO? column as a boolean.
func isAffirmative(s *string) bool {
	if s == nil {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(*s)) {
	case "SI", "SÍ", "YES", "TRUE", "OK":
		return true
	}
	return strings.Contains(strings.ToUpper(*s), "PAGADO")
}
