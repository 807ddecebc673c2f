package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/stock-management/internal/core/status"
	"github.com/frahmantamala/stock-management/internal/report"
)

// ReportRepository runs the read-only aggregations over sqlx. Queries are
// written with '?' placeholders and rebound for the connection's driver.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ExpiringBefore(ctx context.Context, department string, before time.Time) ([]report.ExpiringItem, error) {
	query := r.db.Rebind(`
		SELECT id, item_name, category, quantity, expiration_date
		FROM stock_items
		WHERE department = ? AND status = ? AND quantity > 0
		  AND expiration_date IS NOT NULL AND expiration_date <= ?
		ORDER BY expiration_date ASC, id ASC`)

	rows := []report.ExpiringItem{}
	if err := r.db.SelectContext(ctx, &rows, query, department, status.Approved, before); err != nil {
		return nil, fmt.Errorf("failed to query expiring items: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) AddedSince(ctx context.Context, department string, from, until time.Time) ([]report.AddedItem, error) {
	query := `
		SELECT id, item_name, category, quantity, price, currency, status, created_at
		FROM stock_items
		WHERE department = ? AND created_at >= ?`
	args := []interface{}{department, from}
	if !until.IsZero() {
		query += ` AND created_at < ?`
		args = append(args, until)
	}
	query += `
		ORDER BY created_at DESC, id DESC`

	rows := []report.AddedItem{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query added items: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) ApprovedCheckouts(ctx context.Context, department string) ([]report.ApprovedCheckout, error) {
	query := r.db.Rebind(`
		SELECT checkout_id, item_name, quantity, resolved_at
		FROM checkout_transactions
		WHERE department = ? AND approval_status = ? AND resolved_at IS NOT NULL
		ORDER BY resolved_at DESC`)

	rows := []report.ApprovedCheckout{}
	if err := r.db.SelectContext(ctx, &rows, query, department, status.Approved); err != nil {
		return nil, fmt.Errorf("failed to query approved checkouts: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) CountItems(ctx context.Context, department, itemStatus string) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM stock_items WHERE department = ? AND status = ?`)
	if err := r.db.GetContext(ctx, &count, query, department, itemStatus); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (r *ReportRepository) CountCheckouts(ctx context.Context, department, checkoutStatus string) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM checkout_transactions WHERE department = ? AND approval_status = ?`)
	if err := r.db.GetContext(ctx, &count, query, department, checkoutStatus); err != nil {
		return 0, fmt.Errorf("failed to count checkouts: %w", err)
	}
	return count, nil
}

func (r *ReportRepository) ApprovedStock(ctx context.Context, department string) ([]report.StockValueRow, error) {
	query := r.db.Rebind(`SELECT price, quantity FROM stock_items WHERE department = ? AND status = ?`)

	rows := []report.StockValueRow{}
	if err := r.db.SelectContext(ctx, &rows, query, department, status.Approved); err != nil {
		return nil, fmt.Errorf("failed to query stock value: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) CategoryCounts(ctx context.Context, department string) ([]report.CountRow, error) {
	query := r.db.Rebind(`
		SELECT category AS name, COUNT(*) AS total
		FROM stock_items
		WHERE department = ? AND status = ?
		GROUP BY category
		ORDER BY category`)

	rows := []report.CountRow{}
	if err := r.db.SelectContext(ctx, &rows, query, department, status.Approved); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) RoleCounts(ctx context.Context, department string) ([]report.CountRow, error) {
	query := r.db.Rebind(`
		SELECT role AS name, COUNT(*) AS total
		FROM users
		WHERE department = ? AND is_active = ?
		GROUP BY role
		ORDER BY role`)

	rows := []report.CountRow{}
	if err := r.db.SelectContext(ctx, &rows, query, department, true); err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}
	return rows, nil
}

// Ping is used by the health endpoint.
func (r *ReportRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
