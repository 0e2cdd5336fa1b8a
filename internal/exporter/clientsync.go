package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/parser"
)

// ClientSync patches the CLIENTES sheet from system-side client records.
// Conflict policy: the workbook wins unless its cell is empty — a populated
// cell is never overwritten, only blanks are completed.
type ClientSync struct {
	log *zap.Logger
}

// NewClientSync creates the reverse-sync patcher.
func NewClientSync(log *zap.Logger) *ClientSync {
	return &ClientSync{log: log}
}

// LoadClients reads a client collection previously exported by the system.
func LoadClients(path string) ([]*model.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clients file %s: %w", path, err)
	}
	var clients []*model.Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("decode clients file %s: %w", path, err)
	}
	return clients, nil
}

// Patch fills empty MAIL/TELEFONO/DIRECCION/TIPO CLI cells of rows matched
// by COD_CLI. Returns how many cells were written.
func (s *ClientSync) Patch(f *excelize.File, sheetName string, clients []*model.Client) (int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("sheet %s is empty", sheetName)
	}

	cols := parser.NewColumnSet(rows[0])
	colID := cols.Index("COD_CLI")
	if colID < 0 {
		return 0, fmt.Errorf("sheet %s has no COD_CLI column", sheetName)
	}
	colMail := cols.Index("MAIL")
	colPhone := cols.Index("TELEFONO")
	colType := cols.Index("TIPO CLI")
	colAddr := cols.Index("DIRECCION")

	byID := make(map[int]*model.Client, len(clients))
	for _, cl := range clients {
		if _, dup := byID[cl.OldID]; !dup {
			byID[cl.OldID] = cl
		}
	}

	updated := 0
	for i, row := range rows[1:] {
		rowNo := i + 2

		id, ok := parser.Key(parser.Cell(row, colID))
		if !ok {
			continue
		}
		cl := byID[id]
		if cl == nil {
			continue
		}

		fill := func(col int, value string) error {
			if col < 0 || value == "" {
				return nil
			}
			if strings.TrimSpace(parser.Cell(row, col)) != "" {
				return nil // source wins unless empty
			}
			cellName, cerr := excelize.CoordinatesToCellName(col+1, rowNo)
			if cerr != nil {
				return cerr
			}
			if cerr := f.SetCellValue(sheetName, cellName, value); cerr != nil {
				return cerr
			}
			updated++
			return nil
		}

		for _, pair := range []struct {
			col   int
			value string
		}{
			{colMail, deref(cl.Email)},
			{colPhone, deref(cl.Phone)},
			{colAddr, deref(cl.Address)},
			{colType, cl.Type},
		} {
			if err := fill(pair.col, pair.value); err != nil {
				return updated, fmt.Errorf("patch sheet %s row %d: %w", sheetName, rowNo, err)
			}
		}
	}

	s.log.Info("client reverse sync applied",
		zap.String("sheet", sheetName),
		zap.Int("clients", len(clients)),
		zap.Int("cellsUpdated", updated))
	return updated, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
