package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/status"
)

type Repository interface {
	ExpiringBefore(ctx context.Context, department string, before time.Time) ([]ExpiringItem, error)
	// AddedSince returns items created in [from, until). A zero until leaves
	// the range open.
	AddedSince(ctx context.Context, department string, from, until time.Time) ([]AddedItem, error)
	ApprovedCheckouts(ctx context.Context, department string) ([]ApprovedCheckout, error)
	CountItems(ctx context.Context, department, itemStatus string) (int64, error)
	CountCheckouts(ctx context.Context, department, checkoutStatus string) (int64, error)
	ApprovedStock(ctx context.Context, department string) ([]StockValueRow, error)
	CategoryCounts(ctx context.Context, department string) ([]CountRow, error)
	RoleCounts(ctx context.Context, department string) ([]CountRow, error)
}

type Service struct {
	repo     Repository
	logger   *slog.Logger
	window   time.Duration
	currency string
	now      func() time.Time
}

func NewService(repo Repository, logger *slog.Logger, cfg internal.InventoryConfig) *Service {
	window := cfg.ExpiringWindow
	if window <= 0 {
		window = internal.DefaultExpiringWindow
	}
	currency := cfg.DefaultCurrency
	if currency == "" {
		currency = internal.DefaultCurrency
	}
	return &Service{
		repo:     repo,
		logger:   logger,
		window:   window,
		currency: currency,
		now:      time.Now,
	}
}

// WithClock replaces the time source used to place report windows.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ExpiringSoon lists approved items in stock whose expiration date falls
// before the end of the configured window. Items already past their date
// are included and flagged.
func (s *Service) ExpiringSoon(ctx context.Context, department string) ([]ExpiringItem, error) {
	now := s.now()
	rows, err := s.repo.ExpiringBefore(ctx, department, now.Add(s.window))
	if err != nil {
		s.logger.Error("expiring report failed", "department", department, "error", err)
		return nil, err
	}

	today := PeriodStart(now, PeriodDay)
	for i := range rows {
		// expiration dates are calendar days stored as UTC midnight
		exp := rows[i].ExpirationDate
		day := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, now.Location())
		rows[i].DaysLeft = int(day.Sub(today).Hours() / 24)
		rows[i].Expired = rows[i].DaysLeft < 0
	}
	return rows, nil
}

// AddedSince lists items created since the start of the current week or month.
func (s *Service) AddedSince(ctx context.Context, department, period string) ([]AddedItem, error) {
	if period == "" {
		period = PeriodWeek
	}
	if period != PeriodWeek && period != PeriodMonth {
		return nil, internal.NewValidationFieldError("period", "period must be one of: week, month", internal.ErrCodeInvalidPeriod)
	}

	rows, err := s.repo.AddedSince(ctx, department, PeriodStart(s.now(), period), time.Time{})
	if err != nil {
		s.logger.Error("added items report failed", "department", department, "period", period, "error", err)
		return nil, err
	}
	return rows, nil
}

// AddedBetween lists items created on the calendar days from through to,
// both inclusive, given as YYYY-MM-DD. An empty to means today.
func (s *Service) AddedBetween(ctx context.Context, department, from, to string) ([]AddedItem, error) {
	start, err := parseDay("from", from)
	if err != nil {
		return nil, err
	}
	if to == "" {
		to = s.now().UTC().Format(DateLayout)
	}
	end, err := parseDay("to", to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, internal.NewValidationFieldError("to", "to cannot be before from", internal.ErrCodeInvalidDate)
	}

	rows, err := s.repo.AddedSince(ctx, department, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("added items report failed", "department", department, "from", from, "to", to, "error", err)
		return nil, err
	}
	return rows, nil
}

func parseDay(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, internal.NewValidationFieldError(field, field+" is required", internal.ErrCodeInvalidDate)
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, internal.NewValidationFieldError(field, field+" must be a date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	return t, nil
}

func (s *Service) CheckoutSummary(ctx context.Context, department string) (*CheckoutSummary, error) {
	rows, err := s.repo.ApprovedCheckouts(ctx, department)
	if err != nil {
		s.logger.Error("checkout summary failed", "department", department, "error", err)
		return nil, err
	}

	return &CheckoutSummary{
		Daily:   summarize(rows, PeriodDay),
		Weekly:  summarize(rows, PeriodWeek),
		Monthly: summarize(rows, PeriodMonth),
	}, nil
}

func (s *Service) Overview(ctx context.Context, department string) (*Overview, error) {
	out := &Overview{Department: department, Currency: s.currency}

	var err error
	if out.PendingItems, err = s.repo.CountItems(ctx, department, status.Pending); err != nil {
		return nil, err
	}
	if out.ApprovedItems, err = s.repo.CountItems(ctx, department, status.Approved); err != nil {
		return nil, err
	}
	if out.PendingCheckouts, err = s.repo.CountCheckouts(ctx, department, status.Pending); err != nil {
		return nil, err
	}

	stock, err := s.repo.ApprovedStock(ctx, department)
	if err != nil {
		return nil, err
	}
	out.TotalStockValue = StockValue(stock)

	if out.Categories, err = s.repo.CategoryCounts(ctx, department); err != nil {
		return nil, err
	}
	if out.Roles, err = s.repo.RoleCounts(ctx, department); err != nil {
		return nil, err
	}
	return out, nil
}

// StockValue sums price times quantity. Rows are assumed to share a currency.
func StockValue(rows []StockValueRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Price.Mul(decimal.NewFromInt(row.Quantity)))
	}
	return total
}
