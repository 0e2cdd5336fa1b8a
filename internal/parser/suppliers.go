package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

// SupplierParser extracts the optional PROVEEDORES sheet.
type SupplierParser struct {
	log *zap.Logger

	Stats SheetStats
}

// NewSupplierParser creates the PROVEEDORES extractor.
func NewSupplierParser(log *zap.Logger) *SupplierParser {
	return &SupplierParser{log: log}
}

// Parse builds one Supplier per unique company name. The sheet has no email
// column; Address joins city/state/country, eliding empty parts.
func (p *SupplierParser) Parse(rows [][]string) []*model.Supplier {
	suppliers := make([]*model.Supplier, 0)
	if len(rows) < 2 {
		return suppliers
	}

	cols := NewColumnSet(rows[0])
	colName := cols.Index("COMPAÑIA")
	colContact := cols.Index("VENDEDOR")
	colPhone := cols.Index("TELEFONO")
	colCity := cols.Index("CIUDAD")
	colState := cols.Index("ESTADO")
	colCountry := cols.Index("COUNTRY")

	seen := make(map[string]bool)
	for i, row := range rows[1:] {
		rowNo := i + 2
		p.Stats.Rows++

		namePtr := Text(Cell(row, colName))
		if namePtr == nil {
			p.Stats.Skipped++
			p.log.Debug("supplier row skipped: empty company name", zap.Int("row", rowNo))
			continue
		}
		name := *namePtr
		key := strings.ToUpper(name)
		if seen[key] {
			p.Stats.Skipped++
			p.log.Debug("duplicate supplier ignored, first occurrence wins",
				zap.Int("row", rowNo), zap.String("name", name))
			continue
		}
		seen[key] = true

		parts := make([]string, 0, 3)
		for _, idx := range []int{colCity, colState, colCountry} {
			if v := Text(Cell(row, idx)); v != nil {
				parts = append(parts, *v)
			}
		}

		suppliers = append(suppliers, &model.Supplier{
			Name:    name,
			Contact: TextOr(Cell(row, colContact), ""),
			Email:   "",
			Phone:   TextOr(Cell(row, colPhone), ""),
			Address: strings.Join(parts, ", "),
		})
	}

	return suppliers
}
