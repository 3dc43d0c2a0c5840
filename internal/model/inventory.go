package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-precision format used for all record dates.
const DateLayout = "2006-01-02"

// DefaultMinStock is applied when an item is created without a threshold.
const DefaultMinStock = 10

func init() {
	// Prices are persisted and served as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category classifies inventory items.
type Category string

// Categories.
const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryFurniture   Category = "Furniture"
	CategoryOther       Category = "Other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryFurniture,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// StockStatus is derived from stock and minStock, never set directly.
type StockStatus string

// Stock statuses.
const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// Valid reports whether s is a known stock status.
func (s StockStatus) Valid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

// DeriveStockStatus computes an item's status from its stock level and threshold.
func DeriveStockStatus(stock, minStock int) StockStatus {
	switch {
	case stock == 0:
		return StockStatusOutOfStock
	case stock <= minStock:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// InventoryItem is a stocked product held in a warehouse.
type InventoryItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Stock       int             `json:"stock"`
	Status      StockStatus     `json:"status"`
	Warehouse   string          `json:"warehouse"`
	LastUpdated string          `json:"lastUpdated"`
	MinStock    int             `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
}

// Value returns stock multiplied by unit price.
func (i InventoryItem) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Stock)))
}

// Validate checks the item's own fields. Status is not checked because it is
// always recomputed before storing.
func (i InventoryItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, i.Category)
	}
	if i.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalid)
	}
	if i.MinStock < 0 {
		return fmt.Errorf("%w: minStock must not be negative", ErrInvalid)
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	if strings.TrimSpace(i.Warehouse) == "" {
		return fmt.Errorf("%w: warehouse required", ErrInvalid)
	}
	return nil
}

// NewInventoryItem holds the caller-supplied fields for creating an item.
type NewInventoryItem struct {
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Stock     int             `json:"stock"`
	Warehouse string          `json:"warehouse"`
	MinStock  *int            `json:"minStock,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// InventoryPatch carries a partial update. Nil fields are left unchanged.
type InventoryPatch struct {
	Name      *string          `json:"name,omitempty"`
	Category  *Category        `json:"category,omitempty"`
	Stock     *int             `json:"stock,omitempty"`
	Warehouse *string          `json:"warehouse,omitempty"`
	MinStock  *int             `json:"minStock,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// Apply merges the patch into item.
func (p InventoryPatch) Apply(item *InventoryItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Stock != nil {
		item.Stock = *p.Stock
	}
	if p.Warehouse != nil {
		item.Warehouse = *p.Warehouse
	}
	if p.MinStock != nil {
		item.MinStock = *p.MinStock
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
}
