package model

import (
	"fmt"
	"strings"
)

// WarehouseStatus is set by operators; it is not derived.
type WarehouseStatus string

// Warehouse statuses.
const (
	WarehouseStatusActive      WarehouseStatus = "Active"
	WarehouseStatusMaintenance WarehouseStatus = "Maintenance"
	WarehouseStatusInactive    WarehouseStatus = "Inactive"
)

// Valid reports whether s is a known warehouse status.
func (s WarehouseStatus) Valid() bool {
	switch s {
	case WarehouseStatusActive, WarehouseStatusMaintenance, WarehouseStatusInactive:
		return true
	}
	return false
}

// Warehouse is a named storage site. Items and transfers refer to it by name.
type Warehouse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Capacity     string          `json:"capacity"`
	CurrentStock int             `json:"currentStock"`
	Utilization  int             `json:"utilization"`
	Status       WarehouseStatus `json:"status"`
}

// Validate checks field ranges.
func (w Warehouse) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if w.CurrentStock < 0 {
		return fmt.Errorf("%w: currentStock must not be negative", ErrInvalid)
	}
	if w.Utilization < 0 || w.Utilization > 100 {
		return fmt.Errorf("%w: utilization must be between 0 and 100", ErrInvalid)
	}
	if !w.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, w.Status)
	}
	return nil
}

// NewWarehouse holds the caller-supplied fields for creating a warehouse.
type NewWarehouse struct {
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Capacity     string          `json:"capacity"`
	CurrentStock int             `json:"currentStock"`
	Utilization  int             `json:"utilization"`
	Status       WarehouseStatus `json:"status"`
}

// WarehousePatch carries a partial update. Nil fields are left unchanged.
type WarehousePatch struct {
	Name         *string          `json:"name,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Capacity     *string          `json:"capacity,omitempty"`
	CurrentStock *int             `json:"currentStock,omitempty"`
	Utilization  *int             `json:"utilization,omitempty"`
	Status       *WarehouseStatus `json:"status,omitempty"`
}

// Apply merges the patch into w.
func (p WarehousePatch) Apply(w *Warehouse) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Location != nil {
		w.Location = *p.Location
	}
	if p.Capacity != nil {
		w.Capacity = *p.Capacity
	}
	if p.CurrentStock != nil {
		w.CurrentStock = *p.CurrentStock
	}
	if p.Utilization != nil {
		w.Utilization = *p.Utilization
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
}
