package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/item"
)

type ExpiringSource interface {
	ListExpiring(ctx context.Context, before time.Time) ([]*item.Item, error)
}

// Scanner publishes item.expiring for approved items that reach their
// expiration window.
type Scanner struct {
	items     ExpiringSource
	publisher events.Publisher
	logger    *slog.Logger
	window    time.Duration
	now       func() time.Time
}

func NewScanner(items ExpiringSource, publisher events.Publisher, logger *slog.Logger, window time.Duration) *Scanner {
	return &Scanner{
		items:     items,
		publisher: publisher,
		logger:    logger,
		window:    window,
		now:       time.Now,
	}
}

// ScanOnce returns the number of events published.
func (s *Scanner) ScanOnce(ctx context.Context) (int, error) {
	rows, err := s.items.ListExpiring(ctx, s.now().Add(s.window))
	if err != nil {
		return 0, err
	}

	published := 0
	for _, it := range rows {
		if it.ExpirationDate == nil {
			continue
		}
		event := events.NewItemExpiringEvent(it.ID, it.ItemName, it.Department, *it.ExpirationDate)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish expiring item", "item_id", it.ID, "error", err)
			continue
		}
		published++
	}
	return published, nil
}

// Run scans on every tick until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := s.ScanOnce(ctx)
		if err != nil {
			s.logger.Error("expiry scan failed", "error", err)
		} else {
			s.logger.Info("expiry scan finished", "published", n)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("expiry scanner stopped")
			return
		case <-ticker.C:
		}
	}
}
