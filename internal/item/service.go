package item

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/stock-management/internal"
	itemDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/item"
	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/core/status"
)

type Repository interface {
	Create(ctx context.Context, item *itemDatamodel.StockItem) error
	GetByID(ctx context.Context, id int64) (*itemDatamodel.StockItem, error)
	GetApprovedByName(ctx context.Context, department, name string) (*itemDatamodel.StockItem, error)
	ListByStatus(ctx context.Context, department, status string) ([]*itemDatamodel.StockItem, error)
	SearchApproved(ctx context.Context, department, term string) ([]*itemDatamodel.StockItem, error)
	ListExpiring(ctx context.Context, before time.Time) ([]*itemDatamodel.StockItem, error)
	// UpdatePending applies updates only while the item is still pending.
	// It reports false when no pending row matched.
	UpdatePending(ctx context.Context, id int64, updates map[string]interface{}) (bool, error)
	// RecordDamage decrements an approved item and stores the report in one
	// transaction. It fails with internal.ErrInsufficientStock when the item
	// holds fewer than report.Quantity units.
	RecordDamage(ctx context.Context, report *itemDatamodel.DamagedItem) error
	ListDamaged(ctx context.Context, department string) ([]*itemDatamodel.DamagedItem, error)
}

// DepartmentResolver returns a user's current department.
type DepartmentResolver interface {
	GetDepartment(ctx context.Context, userID int64) (string, error)
}

type CategoryChecker interface {
	IsValidCategory(ctx context.Context, name string) bool
}

type Service struct {
	repo            Repository
	departments     DepartmentResolver
	categories      CategoryChecker
	publisher       events.Publisher
	logger          *slog.Logger
	defaultCurrency string
}

func NewService(repo Repository, departments DepartmentResolver, categories CategoryChecker,
	publisher events.Publisher, logger *slog.Logger, defaultCurrency string) *Service {
	if defaultCurrency == "" {
		defaultCurrency = internal.DefaultCurrency
	}
	return &Service{
		repo:            repo,
		departments:     departments,
		categories:      categories,
		publisher:       publisher,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// CreateItem records a new item as pending in the maker's current department.
func (s *Service) CreateItem(ctx context.Context, makerID int64, dto CreateItemDTO) (*Item, error) {
	dto.Normalize(s.defaultCurrency)
	if err := dto.Validate(); err != nil {
		s.logger.Warn("item validation failed", "maker_id", makerID, "error", err)
		return nil, err
	}

	if !s.categories.IsValidCategory(ctx, dto.Category) {
		return nil, internal.NewValidationFieldError("category", "category is not recognised", internal.ErrCodeInvalidCategory)
	}

	department, err := s.departments.GetDepartment(ctx, makerID)
	if err != nil {
		return nil, err
	}

	purchase, expiration, err := dto.Dates()
	if err != nil {
		return nil, err
	}

	row := &itemDatamodel.StockItem{
		ItemName:       dto.ItemName,
		Price:          dto.Price,
		Category:       dto.Category,
		Quantity:       dto.Quantity,
		Currency:       dto.Currency,
		Department:     department,
		MakerID:        makerID,
		Status:         status.Pending,
		Description:    dto.Description,
		PurchaseDate:   purchase,
		ExpirationDate: expiration,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create item", "maker_id", makerID, "error", err)
		return nil, err
	}

	s.logger.Info("item submitted for approval",
		"item_id", row.ID,
		"department", department,
		"maker_id", makerID,
		"quantity", row.Quantity)

	s.publish(ctx, events.NewItemCreatedEvent(row.ID, row.ItemName, department, makerID, row.Quantity))
	return FromDataModel(row), nil
}

// GetItem returns an item of the caller's department.
func (s *Service) GetItem(ctx context.Context, userID, itemID int64) (*Item, error) {
	row, err := s.itemInDepartment(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) ListApproved(ctx context.Context, userID int64) ([]*Item, error) {
	return s.listByStatus(ctx, userID, status.Approved)
}

func (s *Service) ListPending(ctx context.Context, userID int64) ([]*Item, error) {
	return s.listByStatus(ctx, userID, status.Pending)
}

// Search matches approved items of the caller's department by name, case-insensitively.
func (s *Service) Search(ctx context.Context, userID int64, term string) ([]*Item, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, internal.NewValidationFieldError("q", "search term is required", internal.ErrCodeValidationFailed)
	}

	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.SearchApproved(ctx, department, term)
	if err != nil {
		return nil, err
	}
	return fromDataModels(rows), nil
}

// GetApprovedByName finds the approved item a checkout request refers to.
func (s *Service) GetApprovedByName(ctx context.Context, department, name string) (*Item, error) {
	row, err := s.repo.GetApprovedByName(ctx, department, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// ListExpiring returns approved, in-stock items expiring on or before the given time.
func (s *Service) ListExpiring(ctx context.Context, before time.Time) ([]*Item, error) {
	rows, err := s.repo.ListExpiring(ctx, before)
	if err != nil {
		return nil, err
	}
	return fromDataModels(rows), nil
}

func (s *Service) UpdatePendingQuantity(ctx context.Context, userID, itemID int64, dto UpdateQuantityDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.updatePending(ctx, userID, itemID, map[string]interface{}{"quantity": dto.Quantity})
}

func (s *Service) UpdatePendingPrice(ctx context.Context, userID, itemID int64, dto UpdatePriceDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.updatePending(ctx, userID, itemID, map[string]interface{}{"price": dto.Price.Round(2)})
}

// ReportDamage writes off damaged units of an approved item.
func (s *Service) ReportDamage(ctx context.Context, userID, itemID int64, dto ReportDamageDTO) (*DamageReport, error) {
	dto.Description = strings.TrimSpace(dto.Description)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.itemInDepartment(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if row.Status != status.Approved {
		return nil, internal.ErrInvalidItemStatus
	}

	report := &itemDatamodel.DamagedItem{
		ItemID:      row.ID,
		Department:  row.Department,
		Quantity:    dto.Quantity,
		Description: dto.Description,
		ReportedBy:  userID,
	}
	if err := s.repo.RecordDamage(ctx, report); err != nil {
		s.logger.Warn("damage report rejected", "item_id", itemID, "quantity", dto.Quantity, "error", err)
		return nil, err
	}

	s.logger.Info("damage reported",
		"item_id", itemID,
		"department", row.Department,
		"quantity", dto.Quantity,
		"reported_by", userID)
	return damageFromDataModel(report), nil
}

func (s *Service) ListDamaged(ctx context.Context, userID int64) ([]*DamageReport, error) {
	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListDamaged(ctx, department)
	if err != nil {
		return nil, err
	}
	reports := make([]*DamageReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, damageFromDataModel(row))
	}
	return reports, nil
}

func (s *Service) updatePending(ctx context.Context, userID, itemID int64, updates map[string]interface{}) (*Item, error) {
	row, err := s.itemInDepartment(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if row.Status != status.Pending {
		return nil, internal.ErrInvalidItemStatus
	}

	ok, err := s.repo.UpdatePending(ctx, itemID, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, internal.ErrInvalidItemStatus
	}

	s.logger.Info("pending item updated", "item_id", itemID, "user_id", userID)

	updated, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(updated), nil
}

func (s *Service) itemInDepartment(ctx context.Context, userID, itemID int64) (*itemDatamodel.StockItem, error) {
	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if row.Department != department {
		return nil, internal.ErrDepartmentMismatch
	}
	return row, nil
}

func (s *Service) listByStatus(ctx context.Context, userID int64, st string) ([]*Item, error) {
	department, err := s.departments.GetDepartment(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByStatus(ctx, department, st)
	if err != nil {
		s.logger.Error("failed to list items", "department", department, "status", st, "error", err)
		return nil, err
	}
	return fromDataModels(rows), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
