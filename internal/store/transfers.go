package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
)

// KeyTransfers is the kv key holding the transfer list.
const KeyTransfers = "transfers"

// TransferStore manages stock transfers between warehouses. Transfers are
// records only; they do not move item stock.
type TransferStore struct {
	list       *collection[model.Transfer]
	warehouses WarehouseDirectory
	opts       options
}

// NewTransferStore loads the transfer list, seeding it on first use.
// warehouses may be nil to skip warehouse name checks.
func NewTransferStore(ctx context.Context, store kv.Store, warehouses WarehouseDirectory, opts ...Option) (*TransferStore, error) {
	c, err := loadCollection(ctx, store, KeyTransfers, model.PrefixTransfer,
		func(t *model.Transfer) string { return t.ID }, seedTransfers)
	if err != nil {
		return nil, err
	}
	return &TransferStore{list: c, warehouses: warehouses, opts: applyOptions(opts)}, nil
}

// List returns all transfers in insertion order.
func (s *TransferStore) List(_ context.Context) []model.Transfer {
	return s.list.list()
}

// Get returns a transfer by ID, or nil.
func (s *TransferStore) Get(_ context.Context, id string) *model.Transfer {
	return s.list.get(id)
}

// Add records a transfer request. Both warehouses must exist.
func (s *TransferStore) Add(ctx context.Context, in model.NewTransfer) (*model.Transfer, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("adding transfer: %w", err)
	}
	in.FromWarehouse = strings.TrimSpace(in.FromWarehouse)
	in.ToWarehouse = strings.TrimSpace(in.ToWarehouse)
	if s.warehouses != nil {
		for _, name := range []*string{&in.FromWarehouse, &in.ToWarehouse} {
			resolved, ok := s.warehouses.ResolveWarehouse(*name)
			if !ok {
				return nil, fmt.Errorf("adding transfer: %w: unknown warehouse %q", model.ErrInvalid, *name)
			}
			*name = resolved
		}
	}
	if sameWarehouseName(in.FromWarehouse, in.ToWarehouse) {
		return nil, fmt.Errorf("adding transfer: %w: cannot transfer to the same warehouse", model.ErrInvalid)
	}

	t, err := s.list.add(ctx, func(id string, _ []model.Transfer) (model.Transfer, error) {
		today := s.opts.now().Format(model.DateLayout)
		t := model.Transfer{
			ID:            id,
			ItemName:      strings.TrimSpace(in.ItemName),
			Quantity:      in.Quantity,
			FromWarehouse: in.FromWarehouse,
			ToWarehouse:   in.ToWarehouse,
			Status:        in.Status,
			RequestedBy:   in.RequestedBy,
			RequestedDate: today,
		}
		if t.Status == "" {
			t.Status = model.TransferStatusPending
		}
		if t.Status == model.TransferStatusCompleted {
			t.CompletedDate = today
		}
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding transfer: %w", err)
	}
	return t, nil
}

// UpdateStatus moves a transfer to a new status. Completing a transfer stamps
// its completion date. Setting the current status again changes nothing.
// A missing ID returns nil, nil.
func (s *TransferStore) UpdateStatus(ctx context.Context, id string, status model.TransferStatus) (*model.Transfer, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("updating transfer: %w: unknown status %q", model.ErrInvalid, status)
	}

	t, err := s.list.update(ctx, id, func(t *model.Transfer, _ []model.Transfer) error {
		if t.Status == status {
			return nil
		}
		if !model.CanTransition(t.Status, status) {
			return fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, t.Status, status)
		}
		t.Status = status
		if status == model.TransferStatusCompleted {
			t.CompletedDate = s.opts.now().Format(model.DateLayout)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating transfer: %w", err)
	}
	return t, nil
}

// Remove deletes a transfer and reports whether it existed.
func (s *TransferStore) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.list.remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("removing transfer: %w", err)
	}
	return removed, nil
}
