package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/stock-management/internal"
	itemDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/item"
	"github.com/frahmantamala/stock-management/internal/core/status"
	"github.com/frahmantamala/stock-management/internal/item"
)

// ItemRepository implements item.Repository using GORM
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) item.Repository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, row *itemDatamodel.StockItem) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*itemDatamodel.StockItem, error) {
	var row itemDatamodel.StockItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &row, nil
}

// GetApprovedByName picks the oldest approved item when a department holds
// several with the same name.
func (r *ItemRepository) GetApprovedByName(ctx context.Context, department, name string) (*itemDatamodel.StockItem, error) {
	var row itemDatamodel.StockItem
	err := r.db.WithContext(ctx).
		Where("department = ? AND item_name = ? AND status = ?", department, name, status.Approved).
		Order("id ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return &row, nil
}

func (r *ItemRepository) ListByStatus(ctx context.Context, department, st string) ([]*itemDatamodel.StockItem, error) {
	var rows []*itemDatamodel.StockItem
	err := r.db.WithContext(ctx).
		Where("department = ? AND status = ?", department, st).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ItemRepository) SearchApproved(ctx context.Context, department, term string) ([]*itemDatamodel.StockItem, error) {
	var rows []*itemDatamodel.StockItem
	err := r.db.WithContext(ctx).
		Where("department = ? AND status = ? AND LOWER(item_name) LIKE ?",
			department, status.Approved, "%"+strings.ToLower(term)+"%").
		Order("item_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ItemRepository) ListExpiring(ctx context.Context, before time.Time) ([]*itemDatamodel.StockItem, error) {
	var rows []*itemDatamodel.StockItem
	err := r.db.WithContext(ctx).
		Where("status = ? AND quantity > 0 AND expiration_date IS NOT NULL AND expiration_date <= ?",
			status.Approved, before).
		Order("expiration_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ItemRepository) UpdatePending(ctx context.Context, id int64, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&itemDatamodel.StockItem{}).
		Where("id = ? AND status = ?", id, status.Pending).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("update pending item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ItemRepository) RecordDamage(ctx context.Context, report *itemDatamodel.DamagedItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&itemDatamodel.StockItem{}).
			Where("id = ? AND department = ? AND status = ? AND quantity >= ?",
				report.ItemID, report.Department, status.Approved, report.Quantity).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - ?", report.Quantity),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("decrement damaged stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return internal.ErrInsufficientStock
		}
		return tx.Create(report).Error
	})
}

func (r *ItemRepository) ListDamaged(ctx context.Context, department string) ([]*itemDatamodel.DamagedItem, error) {
	var rows []*itemDatamodel.DamagedItem
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}
