package checkout

import (
	"time"

	checkoutDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/checkout"
	"github.com/frahmantamala/stock-management/internal/core/status"
)

type Checkout struct {
	CheckoutID     int64      `json:"checkout_id"`
	ItemID         int64      `json:"item_id"`
	ItemName       string     `json:"item_name"`
	Quantity       int64      `json:"quantity"`
	UserID         int64      `json:"user_id"`
	Department     string     `json:"department"`
	ApprovalStatus string     `json:"approval_status"`
	ApproverID     *int64     `json:"approver_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

func (c *Checkout) IsPending() bool {
	return c.ApprovalStatus == status.Pending
}

func FromDataModel(c *checkoutDatamodel.CheckoutTransaction) *Checkout {
	return &Checkout{
		CheckoutID:     c.CheckoutID,
		ItemID:         c.ItemID,
		ItemName:       c.ItemName,
		Quantity:       c.Quantity,
		UserID:         c.UserID,
		Department:     c.Department,
		ApprovalStatus: c.ApprovalStatus,
		ApproverID:     c.ApproverID,
		CreatedAt:      c.CreatedAt,
		ResolvedAt:     c.ResolvedAt,
	}
}

func fromDataModels(rows []*checkoutDatamodel.CheckoutTransaction) []*Checkout {
	out := make([]*Checkout, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
