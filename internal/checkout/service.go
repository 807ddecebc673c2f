package checkout

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/stock-management/internal"
	checkoutDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/checkout"
	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/core/status"
	"github.com/frahmantamala/stock-management/internal/item"
)

type Repository interface {
	Create(ctx context.Context, c *checkoutDatamodel.CheckoutTransaction) error
	GetByID(ctx context.Context, checkoutID int64) (*checkoutDatamodel.CheckoutTransaction, error)
	ListByStatus(ctx context.Context, department, st string) ([]*checkoutDatamodel.CheckoutTransaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*checkoutDatamodel.CheckoutTransaction, error)
}

type DepartmentResolver interface {
	GetDepartment(ctx context.Context, userID int64) (string, error)
}

// ItemFinder locates the approved item a request names.
type ItemFinder interface {
	GetApprovedByName(ctx context.Context, department, name string) (*item.Item, error)
}

type Service struct {
	repo        Repository
	departments DepartmentResolver
	items       ItemFinder
	publisher   events.Publisher
	logger      *slog.Logger
}

func NewService(repo Repository, departments DepartmentResolver, items ItemFinder,
	publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		items:       items,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateCheckout files a pending request to take units of an approved item.
// Stock is only checked and reduced when the request is approved.
func (s *Service) CreateCheckout(ctx context.Context, userID int64, dto CreateCheckoutDTO) (*Checkout, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	target, err := s.items.GetApprovedByName(ctx, department, dto.ItemName)
	if err != nil {
		return nil, err
	}

	row := &checkoutDatamodel.CheckoutTransaction{
		ItemID:         target.ID,
		ItemName:       target.ItemName,
		Quantity:       dto.Quantity,
		UserID:         userID,
		Department:     department,
		ApprovalStatus: status.Pending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create checkout", "user_id", userID, "item_id", target.ID, "error", err)
		return nil, err
	}

	s.logger.Info("checkout requested",
		"checkout_id", row.CheckoutID,
		"item_id", target.ID,
		"department", department,
		"quantity", dto.Quantity)

	if s.publisher != nil {
		event := events.NewCheckoutRequestedEvent(row.CheckoutID, row.ItemName, department, userID, row.Quantity)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
		}
	}

	return FromDataModel(row), nil
}

func (s *Service) GetByID(ctx context.Context, userID, checkoutID int64) (*Checkout, error) {
	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if row.Department != department {
		return nil, internal.ErrDepartmentMismatch
	}
	return FromDataModel(row), nil
}

// ListPending returns requests still awaiting a decision. Rejected requests
// are final and never reappear here.
func (s *Service) ListPending(ctx context.Context, userID int64) ([]*Checkout, error) {
	return s.listByStatus(ctx, userID, status.Pending)
}

func (s *Service) ListApproved(ctx context.Context, userID int64) ([]*Checkout, error) {
	return s.listByStatus(ctx, userID, status.Approved)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Checkout, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fromDataModels(rows), nil
}

func (s *Service) listByStatus(ctx context.Context, userID int64, st string) ([]*Checkout, error) {
	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByStatus(ctx, department, st)
	if err != nil {
		s.logger.Error("failed to list checkouts", "department", department, "status", st, "error", err)
		return nil, err
	}
	return fromDataModels(rows), nil
}
