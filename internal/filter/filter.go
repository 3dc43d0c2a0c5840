// Package filter holds the predicate sets behind the list views. Every active
// predicate must match; empty or "all" disables a predicate.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/erazemk/inventorypro/internal/model"
)

// All disables a predicate.
const All = "all"

func active(s string) bool {
	return s != "" && s != All
}

// contains is a case-insensitive substring match over any of fields.
func contains(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func apply[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Inventory filters inventory items.
type Inventory struct {
	Search    string
	Category  string
	Warehouse string
	Status    string
	// MinStock and MaxStock bound stock inclusively. Nil means unbounded.
	MinStock *int
	MaxStock *int
}

// Matches reports whether item passes every active predicate.
func (f Inventory) Matches(item model.InventoryItem) bool {
	if !contains(strings.TrimSpace(f.Search), item.Name, item.ID) {
		return false
	}
	if active(f.Category) && string(item.Category) != f.Category {
		return false
	}
	if active(f.Warehouse) && item.Warehouse != f.Warehouse {
		return false
	}
	if active(f.Status) && string(item.Status) != f.Status {
		return false
	}
	if f.MinStock != nil && item.Stock < *f.MinStock {
		return false
	}
	if f.MaxStock != nil && item.Stock > *f.MaxStock {
		return false
	}
	return true
}

// Apply returns the matching items in input order.
func (f Inventory) Apply(items []model.InventoryItem) []model.InventoryItem {
	return apply(items, f.Matches)
}

// ParseInventory reads an inventory filter from query parameters search,
// category, warehouse, status, minStock and maxStock.
func ParseInventory(q url.Values) (Inventory, error) {
	f := Inventory{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Warehouse: q.Get("warehouse"),
		Status:    q.Get("status"),
	}
	var err error
	if f.MinStock, err = parseBound(q, "minStock"); err != nil {
		return f, err
	}
	if f.MaxStock, err = parseBound(q, "maxStock"); err != nil {
		return f, err
	}
	return f, nil
}

func parseBound(q url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", model.ErrInvalid, name)
	}
	return &n, nil
}

// Warehouse filters warehouses.
type Warehouse struct {
	Search   string
	Status   string
	Location string
}

// Matches reports whether w passes every active predicate.
func (f Warehouse) Matches(w model.Warehouse) bool {
	if !contains(strings.TrimSpace(f.Search), w.Name, w.ID, w.Location) {
		return false
	}
	if active(f.Status) && string(w.Status) != f.Status {
		return false
	}
	if active(f.Location) && w.Location != f.Location {
		return false
	}
	return true
}

// Apply returns the matching warehouses in input order.
func (f Warehouse) Apply(warehouses []model.Warehouse) []model.Warehouse {
	return apply(warehouses, f.Matches)
}

// ParseWarehouse reads a warehouse filter from query parameters search,
// status and location.
func ParseWarehouse(q url.Values) Warehouse {
	return Warehouse{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Location: q.Get("location"),
	}
}

// Transfer filters transfers.
type Transfer struct {
	Search string
	Status string
	// Warehouse matches either end of the transfer.
	Warehouse string
}

// Matches reports whether t passes every active predicate.
func (f Transfer) Matches(t model.Transfer) bool {
	if !contains(strings.TrimSpace(f.Search), t.ItemName, t.ID, t.FromWarehouse, t.ToWarehouse) {
		return false
	}
	if active(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if active(f.Warehouse) && t.FromWarehouse != f.Warehouse && t.ToWarehouse != f.Warehouse {
		return false
	}
	return true
}

// Apply returns the matching transfers in input order.
func (f Transfer) Apply(transfers []model.Transfer) []model.Transfer {
	return apply(transfers, f.Matches)
}

// ParseTransfer reads a transfer filter from query parameters search, status
// and warehouse.
func ParseTransfer(q url.Values) Transfer {
	return Transfer{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Warehouse: q.Get("warehouse"),
	}
}
