package checkout

import "time"

type CheckoutTransaction struct {
	CheckoutID     int64      `gorm:"column:checkout_id;primaryKey"`
	ItemID         int64      `gorm:"column:item_id;not null;index"`
	ItemName       string     `gorm:"column:item_name;not null"`
	Quantity       int64      `gorm:"column:quantity;not null;check:chk_checkout_transactions_quantity,quantity > 0"`
	UserID         int64      `gorm:"column:user_id;not null;index"`
	Department     string     `gorm:"column:department;not null;index"`
	ApprovalStatus string     `gorm:"column:approval_status;not null;index"`
	ApproverID     *int64     `gorm:"column:approver_id"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
}

func (CheckoutTransaction) TableName() string {
	return "checkout_transactions"
}
