package item

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/stock-management/internal/core/datamodel/item"
	"github.com/frahmantamala/stock-management/internal/core/status"
)

const DateLayout = "2006-01-02"

type Item struct {
	ID             int64           `json:"id"`
	ItemName       string          `json:"item_name"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	Quantity       int64           `json:"quantity"`
	Currency       string          `json:"currency"`
	Department     string          `json:"department"`
	MakerID        int64           `json:"maker_id"`
	Status         string          `json:"status"`
	Description    *string         `json:"description,omitempty"`
	PurchaseDate   *time.Time      `json:"purchase_date,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (i *Item) IsPending() bool {
	return i.Status == status.Pending
}

func (i *Item) IsApproved() bool {
	return i.Status == status.Approved
}

// TotalValue is price times on-hand quantity.
func (i *Item) TotalValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

type DamageReport struct {
	ID          int64     `json:"id"`
	ItemID      int64     `json:"item_id"`
	Department  string    `json:"department"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
	ReportedBy  int64     `json:"reported_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToDataModel(i *Item) *item.StockItem {
	return &item.StockItem{
		ID:             i.ID,
		ItemName:       i.ItemName,
		Price:          i.Price,
		Category:       i.Category,
		Quantity:       i.Quantity,
		Currency:       i.Currency,
		Department:     i.Department,
		MakerID:        i.MakerID,
		Status:         i.Status,
		Description:    i.Description,
		PurchaseDate:   i.PurchaseDate,
		ExpirationDate: i.ExpirationDate,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func FromDataModel(s *item.StockItem) *Item {
	return &Item{
		ID:             s.ID,
		ItemName:       s.ItemName,
		Price:          s.Price,
		Category:       s.Category,
		Quantity:       s.Quantity,
		Currency:       s.Currency,
		Department:     s.Department,
		MakerID:        s.MakerID,
		Status:         s.Status,
		Description:    s.Description,
		PurchaseDate:   s.PurchaseDate,
		ExpirationDate: s.ExpirationDate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromDataModels(rows []*item.StockItem) []*Item {
	items := make([]*Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromDataModel(row))
	}
	return items
}

func damageFromDataModel(d *item.DamagedItem) *DamageReport {
	return &DamageReport{
		ID:          d.ID,
		ItemID:      d.ItemID,
		Department:  d.Department,
		Quantity:    d.Quantity,
		Description: d.Description,
		ReportedBy:  d.ReportedBy,
		CreatedAt:   d.CreatedAt,
	}
}
