package model

import (
	"fmt"
	"strings"
)

// TransferStatus tracks a transfer through its lifecycle.
type TransferStatus string

// Transfer statuses.
const (
	TransferStatusPending   TransferStatus = "Pending"
	TransferStatusInTransit TransferStatus = "In Transit"
	TransferStatusCompleted TransferStatus = "Completed"
	TransferStatusCancelled TransferStatus = "Cancelled"
)

// Valid reports whether s is a known transfer status.
func (s TransferStatus) Valid() bool {
	switch s {
	case TransferStatusPending, TransferStatusInTransit, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a transfer may move from one status to another.
// Transfers move forward to Completed, and may be cancelled at any point
// until they are cancelled.
func CanTransition(from, to TransferStatus) bool {
	if !from.Valid() || !to.Valid() || from == TransferStatusCancelled {
		return false
	}
	switch to {
	case TransferStatusCancelled:
		return true
	case TransferStatusCompleted:
		return from != TransferStatusCompleted
	case TransferStatusInTransit:
		return from == TransferStatusPending
	}
	return false
}

// Transfer represents stock moving between two warehouses.
type Transfer struct {
	ID            string         `json:"id"`
	ItemName      string         `json:"itemName"`
	Quantity      int            `json:"quantity"`
	FromWarehouse string         `json:"fromWarehouse"`
	ToWarehouse   string         `json:"toWarehouse"`
	Status        TransferStatus `json:"status"`
	RequestedBy   string         `json:"requestedBy"`
	RequestedDate string         `json:"requestedDate"`
	CompletedDate string         `json:"completedDate,omitempty"`
}

// NewTransfer holds the caller-supplied fields for requesting a transfer.
type NewTransfer struct {
	ItemName      string         `json:"itemName"`
	Quantity      int            `json:"quantity"`
	FromWarehouse string         `json:"fromWarehouse"`
	ToWarehouse   string         `json:"toWarehouse"`
	Status        TransferStatus `json:"status,omitempty"`
	RequestedBy   string         `json:"requestedBy"`
}

// Validate checks the request independently of existing warehouses.
func (t NewTransfer) Validate() error {
	if strings.TrimSpace(t.ItemName) == "" {
		return fmt.Errorf("%w: itemName required", ErrInvalid)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalid)
	}
	if t.FromWarehouse == "" || t.ToWarehouse == "" {
		return fmt.Errorf("%w: fromWarehouse and toWarehouse required", ErrInvalid)
	}
	if t.FromWarehouse == t.ToWarehouse {
		return fmt.Errorf("%w: cannot transfer to the same warehouse", ErrInvalid)
	}
	if t.Status != "" && !t.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, t.Status)
	}
	return nil
}
