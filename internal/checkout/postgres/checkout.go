package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/checkout"
	checkoutDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/checkout"
)

type CheckoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) checkout.Repository {
	return &CheckoutRepository{db: db}
}

func (r *CheckoutRepository) Create(ctx context.Context, c *checkoutDatamodel.CheckoutTransaction) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CheckoutRepository) GetByID(ctx context.Context, checkoutID int64) (*checkoutDatamodel.CheckoutTransaction, error) {
	var row checkoutDatamodel.CheckoutTransaction
	if err := r.db.WithContext(ctx).Where("checkout_id = ?", checkoutID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("get checkout: %w", err)
	}
	return &row, nil
}

// ListByStatus is FIFO so approvers see the oldest requests first.
func (r *CheckoutRepository) ListByStatus(ctx context.Context, department, st string) ([]*checkoutDatamodel.CheckoutTransaction, error) {
	var rows []*checkoutDatamodel.CheckoutTransaction
	err := r.db.WithContext(ctx).
		Where("department = ? AND approval_status = ?", department, st).
		Order("created_at ASC, checkout_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *CheckoutRepository) ListByUser(ctx context.Context, userID int64) ([]*checkoutDatamodel.CheckoutTransaction, error) {
	var rows []*checkoutDatamodel.CheckoutTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, checkout_id DESC").
		Find(&rows).Error
	return rows, err
}
