package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

// KeyInventory is the kv key holding the inventory list.
const KeyInventory = "inventory_items"

// InventoryStore manages inventory items. Status is recomputed on every write.
type InventoryStore struct {
	list       *collection[model.InventoryItem]
	warehouses WarehouseDirectory
	images     *ImageStore
	opts       options
}

// NewInventoryStore loads the inventory list, seeding it on first use.
// warehouses may be nil to skip warehouse name checks.
func NewInventoryStore(ctx context.Context, store kv.Store, warehouses WarehouseDirectory, opts ...Option) (*InventoryStore, error) {
	c, err := loadCollection(ctx, store, KeyInventory, model.PrefixInventory,
		func(i *model.InventoryItem) string { return i.ID }, seedInventory)
	if err != nil {
		return nil, err
	}
	return &InventoryStore{
		list:       c,
		warehouses: warehouses,
		images:     NewImageStore(store),
		opts:       applyOptions(opts),
	}, nil
}

// List returns all items in insertion order.
func (s *InventoryStore) List(_ context.Context) []model.InventoryItem {
	return s.list.list()
}

// Get returns an item by ID, or nil.
func (s *InventoryStore) Get(_ context.Context, id string) *model.InventoryItem {
	return s.list.get(id)
}

// Add creates an item. MinStock defaults to model.DefaultMinStock.
func (s *InventoryStore) Add(ctx context.Context, in model.NewInventoryItem) (*model.InventoryItem, error) {
	item, err := s.list.add(ctx, func(id string, _ []model.InventoryItem) (model.InventoryItem, error) {
		item := model.InventoryItem{
			ID:        id,
			Name:      strings.TrimSpace(in.Name),
			Category:  in.Category,
			Stock:     in.Stock,
			Warehouse: strings.TrimSpace(in.Warehouse),
			MinStock:  model.DefaultMinStock,
			Price:     in.Price,
		}
		if in.MinStock != nil {
			item.MinStock = *in.MinStock
		}
		s.stamp(&item)
		if err := item.Validate(); err != nil {
			return item, err
		}
		name, err := s.resolveWarehouse(item.Warehouse)
		item.Warehouse = name
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}
	return item, nil
}

// Update applies a partial update and re-derives status. A missing ID
// returns nil, nil.
func (s *InventoryStore) Update(ctx context.Context, id string, patch model.InventoryPatch) (*model.InventoryItem, error) {
	item, err := s.list.update(ctx, id, func(item *model.InventoryItem, _ []model.InventoryItem) error {
		previous := item.Warehouse
		patch.Apply(item)
		item.Name = strings.TrimSpace(item.Name)
		item.Warehouse = strings.TrimSpace(item.Warehouse)
		s.stamp(item)
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Warehouse == previous {
			return nil
		}
		name, err := s.resolveWarehouse(item.Warehouse)
		item.Warehouse = name
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return item, nil
}

// Remove deletes an item and its image, reporting whether the item existed.
func (s *InventoryStore) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.list.remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("removing item: %w", err)
	}
	if removed {
		if err := s.images.Delete(ctx, id); err != nil {
			return true, err
		}
	}
	return removed, nil
}

// Images returns the store holding item pictures.
func (s *InventoryStore) Images() *ImageStore {
	return s.images
}

func (s *InventoryStore) stamp(item *model.InventoryItem) {
	item.Status = model.DeriveStockStatus(item.Stock, item.MinStock)
	item.LastUpdated = s.opts.now().Format(model.DateLayout)
}

// resolveWarehouse returns the stored spelling of a warehouse name.
func (s *InventoryStore) resolveWarehouse(name string) (string, error) {
	if s.warehouses == nil {
		return name, nil
	}
	if resolved, ok := s.warehouses.ResolveWarehouse(name); ok {
		return resolved, nil
	}
	return name, fmt.Errorf("%w: unknown warehouse %q", model.ErrInvalid, name)
}
