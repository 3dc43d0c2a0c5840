// Package report builds inventory reports and dashboard statistics from the
// current entity lists.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/inventorypro/internal/filter"
	"github.com/erazemk/inventorypro/internal/model"
)

// Type selects what a report contains.
type Type string

// Report types.
const (
	TypeSummary   Type = "inventory-summary"
	TypeLowStock  Type = "low-stock"
	TypeMovement  Type = "stock-movement"
	TypeValuation Type = "inventory-valuation"
)

// Types lists every report type.
var Types = []Type{TypeSummary, TypeLowStock, TypeMovement, TypeValuation}

// Valid reports whether t is a known report type.
func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}

// Options selects the report type and narrows the items it covers.
type Options struct {
	Type      Type
	Warehouse string
	Category  string
}

// Row is one item in a report. Movement is set for stock-movement reports
// and Value for valuation reports.
type Row struct {
	model.InventoryItem
	Movement *int             `json:"movement,omitempty"`
	Value    *decimal.Decimal `json:"value,omitempty"`
}

// Report is a generated report.
type Report struct {
	Type       Type             `json:"type"`
	Rows       []Row            `json:"rows"`
	TotalValue *decimal.Decimal `json:"totalValue,omitempty"`
}

// Generate builds a report of the given type.
func Generate(opts Options, items []model.InventoryItem, transfers []model.Transfer) (*Report, error) {
	if opts.Type == "" {
		opts.Type = TypeSummary
	}
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown report type %q", model.ErrInvalid, opts.Type)
	}

	items = filter.Inventory{Warehouse: opts.Warehouse, Category: opts.Category}.Apply(items)
	r := &Report{Type: opts.Type, Rows: make([]Row, 0, len(items))}

	switch opts.Type {
	case TypeLowStock:
		for _, item := range items {
			if item.Status == model.StockStatusLowStock || item.Status == model.StockStatusOutOfStock {
				r.Rows = append(r.Rows, Row{InventoryItem: item})
			}
		}
	case TypeMovement:
		for _, item := range items {
			moved := Movement(item.Name, transfers)
			r.Rows = append(r.Rows, Row{InventoryItem: item, Movement: &moved})
		}
	case TypeValuation:
		total := decimal.Zero
		for _, item := range items {
			value := item.Value()
			total = total.Add(value)
			r.Rows = append(r.Rows, Row{InventoryItem: item, Value: &value})
		}
		r.TotalValue = &total
	default:
		for _, item := range items {
			r.Rows = append(r.Rows, Row{InventoryItem: item})
		}
	}

	return r, nil
}

// Movement sums the quantities of non-cancelled transfers of the named item.
func Movement(itemName string, transfers []model.Transfer) int {
	total := 0
	for _, t := range transfers {
		if t.Status != model.TransferStatusCancelled && strings.EqualFold(t.ItemName, itemName) {
			total += t.Quantity
		}
	}
	return total
}

// FileName is the download name of a report generated on date.
func FileName(t Type, date string) string {
	return fmt.Sprintf("%s-report-%s.csv", t, date)
}
