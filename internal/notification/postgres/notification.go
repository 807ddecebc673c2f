package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	datamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/notification"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *datamodel.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByDepartment(ctx context.Context, department string, limit int) ([]*datamodel.Notification, error) {
	var rows []*datamodel.Notification
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *NotificationRepository) Exists(ctx context.Context, kind string, subjectID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&datamodel.Notification{}).
		Where("kind = ? AND subject_id = ?", kind, subjectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check notification: %w", err)
	}
	return count > 0, nil
}
