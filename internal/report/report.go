package report

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// DateLayout is the calendar-day format accepted by date range reports.
const DateLayout = "2006-01-02"

type ExpiringItem struct {
	ID             int64     `db:"id" json:"id"`
	ItemName       string    `db:"item_name" json:"item_name"`
	Category       string    `db:"category" json:"category"`
	Quantity       int64     `db:"quantity" json:"quantity"`
	ExpirationDate time.Time `db:"expiration_date" json:"expiration_date"`
	Expired        bool      `db:"-" json:"expired"`
	DaysLeft       int       `db:"-" json:"days_left"`
}

type AddedItem struct {
	ID        int64           `db:"id" json:"id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	Category  string          `db:"category" json:"category"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Currency  string          `db:"currency" json:"currency"`
	Status    string          `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type ApprovedCheckout struct {
	CheckoutID int64     `db:"checkout_id"`
	ItemName   string    `db:"item_name"`
	Quantity   int64     `db:"quantity"`
	ResolvedAt time.Time `db:"resolved_at"`
}

type StockValueRow struct {
	Price    decimal.Decimal `db:"price"`
	Quantity int64           `db:"quantity"`
}

type CountRow struct {
	Name  string `db:"name" json:"name"`
	Total int64  `db:"total" json:"count"`
}

// Bucket aggregates approved checkouts that fall into one period.
type Bucket struct {
	Period    string `json:"period"`
	Checkouts int    `json:"checkouts"`
	Units     int64  `json:"units"`
}

type CheckoutSummary struct {
	Daily   []Bucket `json:"daily"`
	Weekly  []Bucket `json:"weekly"`
	Monthly []Bucket `json:"monthly"`
}

type Overview struct {
	Department       string          `json:"department"`
	PendingItems     int64           `json:"pending_items"`
	PendingCheckouts int64           `json:"pending_checkouts"`
	ApprovedItems    int64           `json:"approved_items"`
	TotalStockValue  decimal.Decimal `json:"total_stock_value"`
	Currency         string          `json:"currency"`
	Categories       []CountRow      `json:"categories"`
	Roles            []CountRow      `json:"roles"`
}

// PeriodStart returns the first instant of the current week (Monday) or month.
func PeriodStart(now time.Time, period string) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return day
}

func bucketKey(t time.Time, period string) string {
	switch period {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return isoWeekKey(year, week)
	case PeriodMonth:
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}
