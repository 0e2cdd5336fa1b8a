package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/diegoteacade22/Sistema-Manejo-Eswcargo/internal/model"
)

// ProductParser extracts ARTICULOS TECNO, keyed by normalized SKU.
type ProductParser struct {
	log *zap.Logger

	HeaderRow int
	Stats     SheetStats
}

// NewProductParser creates the ARTICULOS TECNO extractor.
func NewProductParser(log *zap.Logger) *ProductParser {
	return &ProductParser{log: log}
}

// Parse builds one Product per unique SKU, first occurrence wins. Spare
// parts (TIPO containing REPUESTO) are forced inactive with status
// DISCONTINUADO regardless of the explicit ACTIVO flag.
func (p *ProductParser) Parse(rows [][]string) []*model.Product {
	products := make([]*model.Product, 0)
	if len(rows) == 0 {
		return products
	}

	p.HeaderRow = LocateHeader(rows, "SKU")
	if len(rows) <= p.HeaderRow+1 {
		return products
	}

	cols := NewColumnSet(rows[p.HeaderRow])
	colSKU := cols.Index("SKU")
	colName := cols.Index("NOMBRE ARTICULO")
	colColor := cols.Index("COLOR/GRADE")
	colType := cols.Index("TIPO")
	colModel := cols.Index("MODELO")
	colBrand := cols.Index("MARCA")
	colWeight := cols.Index("PESO KG")
	colVolum := cols.Index("VOLUM")
	colStatus := cols.Index("ESTADO")
	colUltCpra := cols.Index("ULT CPRA")
	colActive := cols.Index("ACTIVO")
	colWebpage := cols.Index("WEBPAGE")
	colLP1 := cols.Index("LP1")
	colLP2 := cols.Index("LP2")
	colLP3 := cols.Index("LP3")
	colStock := cols.Index("STOCK")

	seen := make(map[string]bool)
	for i, row := range rows[p.HeaderRow+1:] {
		rowNo := p.HeaderRow + i + 2
		p.Stats.Rows++

		skuPtr := Text(Cell(row, colSKU))
		if skuPtr == nil {
			p.Stats.Skipped++
			p.log.Debug("product row skipped: empty SKU", zap.Int("row", rowNo))
			continue
		}
		sku := *skuPtr
		key := strings.ToUpper(sku)
		if seen[key] {
			p.Stats.Skipped++
			p.log.Debug("duplicate SKU ignored, first occurrence wins",
				zap.Int("row", rowNo), zap.String("sku", sku))
			continue
		}
		seen[key] = true

		tipo := TextOr(Cell(row, colType), "PRODUCTO")
		status := TextOr(Cell(row, colStatus), "ACTIVO")

		active := true
		if act := Text(Cell(row, colActive)); act != nil {
			up := strings.ToUpper(*act)
			if strings.Contains(up, "NO") || strings.Contains(up, "FALSE") {
				active = false
			}
		}
		// Spare parts are never sellable in this catalog.
		if strings.Contains(strings.ToUpper(tipo), "REPUESTO") {
			active = false
			status = "DISCONTINUADO"
		}

		products = append(products, &model.Product{
			SKU:              sku,
			Name:             TextOr(Cell(row, colName), sku),
			ColorGrade:       Text(Cell(row, colColor)),
			Type:             tipo,
			Model:            Text(Cell(row, colModel)),
			Brand:            Text(Cell(row, colBrand)),
			Weight:           p.Stats.num(Cell(row, colWeight)),
			Volume:           p.Stats.num(Cell(row, colVolum)),
			Status:           status,
			LastPurchaseCost: p.Stats.num(Cell(row, colUltCpra)),
			Active:           active,
			Webpage:          TextOr(Cell(row, colWebpage), ""),
			LP1:              p.Stats.num(Cell(row, colLP1)),
			LP2:              p.Stats.num(Cell(row, colLP2)),
			LP3:              p.Stats.num(Cell(row, colLP3)),
			Stock:            int(p.Stats.num(Cell(row, colStock))),
		})
	}

	return products
}
