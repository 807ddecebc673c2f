package item

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockItem struct {
	ID             int64           `gorm:"primaryKey"`
	ItemName       string          `gorm:"column:item_name;not null;index"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null"`
	Category       string          `gorm:"column:category;not null"`
	Quantity       int64           `gorm:"column:quantity;not null;check:chk_stock_items_quantity,quantity >= 0"`
	Currency       string          `gorm:"column:currency;size:3;not null"`
	Department     string          `gorm:"column:department;not null;index"`
	MakerID        int64           `gorm:"column:maker_id;not null"`
	Status         string          `gorm:"column:status;not null;index"`
	Description    *string         `gorm:"column:description"`
	PurchaseDate   *time.Time      `gorm:"column:purchase_date"`
	ExpirationDate *time.Time      `gorm:"column:expiration_date"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

// ApprovalDetail is an append-only audit row written when an item is resolved.
type ApprovalDetail struct {
	ID              int64     `gorm:"primaryKey"`
	ItemID          int64     `gorm:"column:item_id;not null;index"`
	ApprovalStatus  string    `gorm:"column:approval_status;not null"`
	ApproverID      int64     `gorm:"column:approver_id;not null"`
	ApprovalComment string    `gorm:"column:approval_comment"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApprovalDetail) TableName() string {
	return "approval_details"
}

type DamagedItem struct {
	ID          int64     `gorm:"primaryKey"`
	ItemID      int64     `gorm:"column:item_id;not null;index"`
	Department  string    `gorm:"column:department;not null;index"`
	Quantity    int64     `gorm:"column:quantity;not null;check:chk_damaged_items_quantity,quantity > 0"`
	Description string    `gorm:"column:description"`
	ReportedBy  int64     `gorm:"column:reported_by;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (DamagedItem) TableName() string {
	return "damaged_items"
}
