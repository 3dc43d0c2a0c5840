package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

// KeyWarehouses is the kv key holding the warehouse list.
const KeyWarehouses = "warehouses"

// WarehouseDirectory resolves warehouse names referenced by items and transfers.
type WarehouseDirectory interface {
	ResolveWarehouse(name string) (string, bool)
}

// sameWarehouseName is the one rule for matching warehouse names: surrounding
// spaces and letter case are ignored.
func sameWarehouseName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// WarehouseStore manages warehouses.
type WarehouseStore struct {
	list *collection[model.Warehouse]
}

// NewWarehouseStore loads the warehouse list, seeding it on first use.
func NewWarehouseStore(ctx context.Context, store kv.Store) (*WarehouseStore, error) {
	c, err := loadCollection(ctx, store, KeyWarehouses, model.PrefixWarehouse,
		func(w *model.Warehouse) string { return w.ID }, seedWarehouses)
	if err != nil {
		return nil, err
	}
	return &WarehouseStore{list: c}, nil
}

// List returns all warehouses in insertion order.
func (s *WarehouseStore) List(_ context.Context) []model.Warehouse {
	return s.list.list()
}

// Get returns a warehouse by ID, or nil.
func (s *WarehouseStore) Get(_ context.Context, id string) *model.Warehouse {
	return s.list.get(id)
}

// ResolveWarehouse returns the stored name of the warehouse matching name.
func (s *WarehouseStore) ResolveWarehouse(name string) (string, bool) {
	for _, w := range s.list.list() {
		if sameWarehouseName(w.Name, name) {
			return w.Name, true
		}
	}
	return "", false
}

// HasWarehouse reports whether a warehouse with the given name exists.
func (s *WarehouseStore) HasWarehouse(name string) bool {
	_, ok := s.ResolveWarehouse(name)
	return ok
}

// Add creates a warehouse. Names must be unique.
func (s *WarehouseStore) Add(ctx context.Context, in model.NewWarehouse) (*model.Warehouse, error) {
	w, err := s.list.add(ctx, func(id string, existing []model.Warehouse) (model.Warehouse, error) {
		w := model.Warehouse{
			ID:           id,
			Name:         strings.TrimSpace(in.Name),
			Location:     strings.TrimSpace(in.Location),
			Capacity:     strings.TrimSpace(in.Capacity),
			CurrentStock: in.CurrentStock,
			Utilization:  in.Utilization,
			Status:       in.Status,
		}
		if w.Status == "" {
			w.Status = model.WarehouseStatusActive
		}
		if err := w.Validate(); err != nil {
			return w, err
		}
		return w, checkWarehouseName(existing, w)
	})
	if err != nil {
		return nil, fmt.Errorf("adding warehouse: %w", err)
	}
	return w, nil
}

// Update applies a partial update. A missing ID returns nil, nil.
func (s *WarehouseStore) Update(ctx context.Context, id string, patch model.WarehousePatch) (*model.Warehouse, error) {
	w, err := s.list.update(ctx, id, func(w *model.Warehouse, existing []model.Warehouse) error {
		patch.Apply(w)
		w.Name = strings.TrimSpace(w.Name)
		if err := w.Validate(); err != nil {
			return err
		}
		return checkWarehouseName(existing, *w)
	})
	if err != nil {
		return nil, fmt.Errorf("updating warehouse: %w", err)
	}
	return w, nil
}

// Remove deletes a warehouse and reports whether it existed. Items and
// transfers naming it are left untouched.
func (s *WarehouseStore) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.list.remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("removing warehouse: %w", err)
	}
	return removed, nil
}

func checkWarehouseName(existing []model.Warehouse, w model.Warehouse) error {
	for _, other := range existing {
		if other.ID != w.ID && sameWarehouseName(other.Name, w.Name) {
			return fmt.Errorf("%w: warehouse %q already exists", model.ErrConflict, w.Name)
		}
	}
	return nil
}
