package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/inventorypro/internal/model"
)

func TestTransferCompleteFlow(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	tr, err := stores.Transfers.Add(ctx, model.NewTransfer{
		ItemName:      "MacBook Air M2",
		Quantity:      15,
		FromWarehouse: "Tech Center",
		ToWarehouse:   "Main Warehouse",
		RequestedBy:   "manager",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if tr.ID != "TRF003" {
		t.Errorf("expected TRF003, got %q", tr.ID)
	}
	if tr.Status != model.TransferStatusPending {
		t.Errorf("expected Pending, got %q", tr.Status)
	}
	if tr.CompletedDate != "" {
		t.Errorf("expected no completedDate, got %q", tr.CompletedDate)
	}

	done, err := stores.Transfers.UpdateStatus(ctx, tr.ID, model.TransferStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if done.CompletedDate == "" {
		t.Error("expected completedDate to be set")
	}
	if done.Quantity != 15 {
		t.Errorf("expected quantity 15, got %d", done.Quantity)
	}
}

func TestTransferRejectsSameOrUnknownWarehouse(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	_, err := stores.Transfers.Add(ctx, model.NewTransfer{
		ItemName: "Chair", Quantity: 1, FromWarehouse: "Main Warehouse", ToWarehouse: "Main Warehouse",
	})
	if !errors.Is(err, model.ErrInvalid) {
		t.Errorf("expected ErrInvalid for same warehouse, got %v", err)
	}

	_, err = stores.Transfers.Add(ctx, model.NewTransfer{
		ItemName: "Chair", Quantity: 1, FromWarehouse: "Main Warehouse", ToWarehouse: "Atlantis",
	})
	if !errors.Is(err, model.ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown warehouse, got %v", err)
	}

	if n := len(stores.Transfers.List(ctx)); n != 2 {
		t.Errorf("expected no transfers added, got %d", n)
	}
}

func TestTransferStatusMachine(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	// TRF001 is In Transit.
	if _, err := stores.Transfers.UpdateStatus(ctx, "TRF001", model.TransferStatusPending); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	// Same status is a no-op.
	tr, err := stores.Transfers.UpdateStatus(ctx, "TRF001", model.TransferStatusInTransit)
	if err != nil || tr.Status != model.TransferStatusInTransit {
		t.Errorf("expected no-op, got %v, %v", tr, err)
	}

	// TRF002 is Completed; it can still be cancelled, keeping its completion date.
	if _, err := stores.Transfers.UpdateStatus(ctx, "TRF002", model.TransferStatusInTransit); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	tr, err = stores.Transfers.UpdateStatus(ctx, "TRF002", model.TransferStatusCancelled)
	if err != nil {
		t.Fatalf("cancelling completed transfer: %v", err)
	}
	if tr.Status != model.TransferStatusCancelled || tr.CompletedDate != "2025-01-19" || tr.Quantity != 15 {
		t.Errorf("unexpected cancelled transfer: %+v", tr)
	}

	// Cancelled is terminal.
	if _, err := stores.Transfers.UpdateStatus(ctx, "TRF002", model.TransferStatusCompleted); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from Cancelled, got %v", err)
	}

	if _, err := stores.Transfers.UpdateStatus(ctx, "TRF001", "Lost"); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown status, got %v", err)
	}

	tr, err = stores.Transfers.UpdateStatus(ctx, "TRF999", model.TransferStatusCancelled)
	if err != nil || tr != nil {
		t.Errorf("expected nil, nil for missing transfer, got %v, %v", tr, err)
	}
}

func TestRemoveTransferTwice(t *testing.T) {
	stores, _ := newTestStores(t)
	ctx := context.Background()

	if removed, _ := stores.Transfers.Remove(ctx, "TRF001"); !removed {
		t.Fatal("expected first remove to succeed")
	}
	if removed, _ := stores.Transfers.Remove(ctx, "TRF001"); removed {
		t.Error("expected second remove to report false")
	}
	if n := len(stores.Transfers.List(ctx)); n != 1 {
		t.Errorf("expected 1 transfer, got %d", n)
	}
}
