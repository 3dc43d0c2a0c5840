// Package store holds the entity collections and account data, each persisted
// as a JSON blob in a kv.Store.
package store

import (
	"context"

	"github.com/erazemk/inventorypro/internal/kv"
)

// Stores bundles every store the application uses.
type Stores struct {
	Inventory  *InventoryStore
	Warehouses *WarehouseStore
	Transfers  *TransferStore
	Users      *UserStore
	Tokens     *TokenStore
}

// Open loads every store from kv, seeding empty collections.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*Stores, error) {
	warehouses, err := NewWarehouseStore(ctx, store)
	if err != nil {
		return nil, err
	}
	inventory, err := NewInventoryStore(ctx, store, warehouses, opts...)
	if err != nil {
		return nil, err
	}
	transfers, err := NewTransferStore(ctx, store, warehouses, opts...)
	if err != nil {
		return nil, err
	}
	users, err := NewUserStore(ctx, store)
	if err != nil {
		return nil, err
	}
	tokens, err := NewTokenStore(ctx, store, opts...)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Inventory:  inventory,
		Warehouses: warehouses,
		Transfers:  transfers,
		Users:      users,
		Tokens:     tokens,
	}, nil
}
