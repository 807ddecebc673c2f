package notification

import (
	"context"
	"fmt"
	"log/slog"

	datamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/stock-management/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, n *datamodel.Notification) error
	ListByDepartment(ctx context.Context, department string, limit int) ([]*datamodel.Notification, error)
	Exists(ctx context.Context, kind string, subjectID int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, department string, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	rows, err := s.repo.ListByDepartment(ctx, department, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) HandleItemCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ItemCreatedEvent)
	if !ok {
		return unexpected(event)
	}
	return s.record(ctx, e.Department, KindItemCreated, e.ItemID,
		fmt.Sprintf("%s (%d units) is waiting for approval", e.ItemName, e.Quantity))
}

func (s *Service) HandleItemResolved(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ItemResolvedEvent)
	if !ok {
		return unexpected(event)
	}
	return s.record(ctx, e.Department, KindItemResolved, e.ItemID,
		fmt.Sprintf("%s was %s", e.ItemName, e.Status))
}

func (s *Service) HandleCheckoutRequested(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.CheckoutRequestedEvent)
	if !ok {
		return unexpected(event)
	}
	return s.record(ctx, e.Department, KindCheckoutRequested, e.CheckoutID,
		fmt.Sprintf("checkout of %d x %s is waiting for approval", e.Quantity, e.ItemName))
}

func (s *Service) HandleCheckoutResolved(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.CheckoutResolvedEvent)
	if !ok {
		return unexpected(event)
	}
	return s.record(ctx, e.Department, KindCheckoutResolved, e.CheckoutID,
		fmt.Sprintf("checkout of %d x %s was %s", e.Quantity, e.ItemName, e.Status))
}

// HandleItemExpiring records at most one notification per item; the scanner
// republishes on every pass.
func (s *Service) HandleItemExpiring(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ItemExpiringEvent)
	if !ok {
		return unexpected(event)
	}

	seen, err := s.repo.Exists(ctx, KindItemExpiring, e.ItemID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}
	return s.record(ctx, e.Department, KindItemExpiring, e.ItemID,
		fmt.Sprintf("%s expires on %s", e.ItemName, e.ExpirationDate.Format("2006-01-02")))
}

func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeItemCreated, s.HandleItemCreated)
	bus.Subscribe(events.EventTypeItemResolved, s.HandleItemResolved)
	bus.Subscribe(events.EventTypeItemExpiring, s.HandleItemExpiring)
	bus.Subscribe(events.EventTypeCheckoutRequested, s.HandleCheckoutRequested)
	bus.Subscribe(events.EventTypeCheckoutResolved, s.HandleCheckoutResolved)

	s.logger.Info("notification event handlers registered", "handlers", 5)
}

func (s *Service) record(ctx context.Context, department, kind string, subjectID int64, message string) error {
	n := &datamodel.Notification{
		Department: department,
		Kind:       kind,
		SubjectID:  subjectID,
		Message:    message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("failed to store notification", "kind", kind, "subject_id", subjectID, "error", err)
		return err
	}
	s.logger.Debug("notification stored", "kind", kind, "subject_id", subjectID, "department", department)
	return nil
}

func unexpected(event events.Event) error {
	return fmt.Errorf("unexpected event %s of type %T", event.EventType(), event)
}
