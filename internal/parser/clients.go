package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

// ClientParser extracts the CLIENTES sheet. The sheet keeps its header on
// its first row, so no anchor scan is needed.
type ClientParser struct {
	log *zap.Logger

	Stats SheetStats
}

// NewClientParser creates the CLIENTES extractor.
func NewClientParser(log *zap.Logger) *ClientParser {
	return &ClientParser{log: log}
}

// Parse builds one Client per unique COD_CLI; later duplicates are ignored,
// first occurrence wins.
func (p *ClientParser) Parse(rows [][]string) []*model.Client {
	clients := make([]*model.Client, 0)
	if len(rows) < 2 {
		return clients
	}

	cols := NewColumnSet(rows[0])
	colID := cols.Index("COD_CLI")
	colName := cols.Index("NOMBRE Y APELLIDO")
	colMail := cols.Index("MAIL")
	colPhone := cols.Index("TELEFONO")
	colType := cols.Index("TIPO CLI")
	colAddr := cols.Index("DIRECCION")

	seen := make(map[int]bool)
	for i, row := range rows[1:] {
		rowNo := i + 2
		p.Stats.Rows++

		oldID, ok := Key(Cell(row, colID))
		if !ok {
			p.Stats.Skipped++
			p.log.Debug("client row skipped: COD_CLI missing or not numeric",
				zap.Int("row", rowNo))
			continue
		}
		name := strings.TrimSpace(Cell(row, colName))
		if name == "" {
			p.Stats.Skipped++
			p.log.Debug("client row skipped: empty name",
				zap.Int("row", rowNo), zap.Int("codCli", oldID))
			continue
		}
		if seen[oldID] {
			p.Stats.Skipped++
			p.log.Debug("duplicate COD_CLI ignored, first occurrence wins",
				zap.Int("row", rowNo), zap.Int("codCli", oldID))
			continue
		}
		seen[oldID] = true

		clients = append(clients, &model.Client{
			OldID:   oldID,
			Name:    name,
			Email:   Text(Cell(row, colMail)),
			Phone:   Text(Cell(row, colPhone)),
			Type:    TextOr(Cell(row, colType), "CLIENTE"),
			Address: Text(Cell(row, colAddr)),
		})
	}

	return clients
}
