package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/approval"
	checkoutDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/checkout"
	itemDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/item"
	"github.com/frahmantamala/stock-management/internal/core/status"
)

// ApprovalRepository implements approval.Repository. All writes inside a
// resolution go through the transaction handle; the guarded UPDATEs make
// the pending check and the stock check atomic with the write.
type ApprovalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) approval.Repository {
	return &ApprovalRepository{db: db}
}

func (r *ApprovalRepository) ResolveItem(ctx context.Context, cmd approval.ResolveItemCommand, at time.Time) (*approval.ItemResolution, error) {
	var res *approval.ItemResolution

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row itemDatamodel.StockItem
		if err := tx.Where("id = ?", cmd.ItemID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrItemNotFound
			}
			return fmt.Errorf("load item: %w", err)
		}
		if row.Department != cmd.Approver.Department {
			return internal.ErrDepartmentMismatch
		}
		if row.Status != status.Pending {
			return internal.ErrInvalidItemStatus
		}

		result := tx.Model(&itemDatamodel.StockItem{}).
			Where("id = ? AND status = ?", cmd.ItemID, status.Pending).
			Updates(map[string]interface{}{
				"status":     cmd.Decision,
				"updated_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("update item status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return internal.ErrInvalidItemStatus
		}

		detail := &itemDatamodel.ApprovalDetail{
			ItemID:          row.ID,
			ApprovalStatus:  cmd.Decision,
			ApproverID:      cmd.Approver.ID,
			ApprovalComment: cmd.Comment,
			CreatedAt:       at,
		}
		if err := tx.Create(detail).Error; err != nil {
			return fmt.Errorf("insert approval detail: %w", err)
		}

		res = &approval.ItemResolution{
			ItemID:           row.ID,
			ItemName:         row.ItemName,
			Department:       row.Department,
			Status:           cmd.Decision,
			ApproverID:       cmd.Approver.ID,
			ApprovalDetailID: detail.ID,
			Comment:          cmd.Comment,
			ResolvedAt:       at,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ApprovalRepository) ResolveCheckout(ctx context.Context, cmd approval.ResolveCheckoutCommand, at time.Time) (*approval.CheckoutResolution, error) {
	var res *approval.CheckoutResolution

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row checkoutDatamodel.CheckoutTransaction
		if err := tx.Where("checkout_id = ?", cmd.CheckoutID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrCheckoutNotFound
			}
			return fmt.Errorf("load checkout: %w", err)
		}
		if row.Department != cmd.Approver.Department {
			return internal.ErrDepartmentMismatch
		}
		if row.ApprovalStatus != status.Pending {
			return internal.ErrInvalidCheckoutStatus
		}

		result := tx.Model(&checkoutDatamodel.CheckoutTransaction{}).
			Where("checkout_id = ? AND approval_status = ?", cmd.CheckoutID, status.Pending).
			Updates(map[string]interface{}{
				"approval_status": cmd.Decision,
				"approver_id":     cmd.Approver.ID,
				"resolved_at":     at,
			})
		if result.Error != nil {
			return fmt.Errorf("update checkout status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return internal.ErrInvalidCheckoutStatus
		}

		res = &approval.CheckoutResolution{
			CheckoutID: row.CheckoutID,
			ItemID:     row.ItemID,
			ItemName:   row.ItemName,
			Department: row.Department,
			Status:     cmd.Decision,
			Quantity:   row.Quantity,
			ApproverID: cmd.Approver.ID,
			ResolvedAt: at,
		}

		if cmd.Decision != status.Approved {
			return nil
		}

		result = tx.Model(&itemDatamodel.StockItem{}).
			Where("id = ? AND status = ? AND quantity >= ?", row.ItemID, status.Approved, row.Quantity).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - ?", row.Quantity),
				"updated_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("decrement stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return internal.ErrInsufficientStock
		}

		var remaining []int64
		if err := tx.Model(&itemDatamodel.StockItem{}).
			Where("id = ?", row.ItemID).
			Pluck("quantity", &remaining).Error; err != nil {
			return fmt.Errorf("read remaining stock: %w", err)
		}
		if len(remaining) == 1 {
			res.RemainingQuantity = &remaining[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
