// Package approval resolves pending stock items and checkout requests. Every
// resolution runs as a single transaction: the status move and, for approved
// checkouts, the stock decrement either both commit or neither does.
package approval

import (
	"context"
	"time"

	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

// Approver is the acting user as read from the users table for this request.
type Approver struct {
	ID         int64
	Role       coreuser.Role
	Department string
}

type ResolveItemCommand struct {
	ItemID   int64
	Decision string
	Approver Approver
	Comment  string
}

type ResolveCheckoutCommand struct {
	CheckoutID int64
	Decision   string
	Approver   Approver
}

type ItemResolution struct {
	ItemID           int64     `json:"item_id"`
	ItemName         string    `json:"item_name"`
	Department       string    `json:"department"`
	Status           string    `json:"status"`
	ApproverID       int64     `json:"approver_id"`
	ApprovalDetailID int64     `json:"approval_detail_id"`
	Comment          string    `json:"approval_comment,omitempty"`
	ResolvedAt       time.Time `json:"resolved_at"`
}

type CheckoutResolution struct {
	CheckoutID        int64     `json:"checkout_id"`
	ItemID            int64     `json:"item_id"`
	ItemName          string    `json:"item_name"`
	Department        string    `json:"department"`
	Status            string    `json:"approval_status"`
	Quantity          int64     `json:"quantity"`
	ApproverID        int64     `json:"approver_id"`
	RemainingQuantity *int64    `json:"remaining_quantity,omitempty"`
	ResolvedAt        time.Time `json:"resolved_at"`
}

// Repository performs each resolution inside one database transaction.
type Repository interface {
	// ResolveItem fails with ErrItemNotFound, ErrDepartmentMismatch or
	// ErrInvalidItemStatus and then leaves no trace.
	ResolveItem(ctx context.Context, cmd ResolveItemCommand, at time.Time) (*ItemResolution, error)
	// ResolveCheckout fails with ErrCheckoutNotFound, ErrDepartmentMismatch,
	// ErrInvalidCheckoutStatus or ErrInsufficientStock; on failure the
	// checkout stays pending and stock is unchanged.
	ResolveCheckout(ctx context.Context, cmd ResolveCheckoutCommand, at time.Time) (*CheckoutResolution, error)
}
