package category

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/stock-management/internal"
	categoryDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*categoryDatamodel.ItemCategory, error)
	GetByName(ctx context.Context, name string) (*categoryDatamodel.ItemCategory, error)
	Create(ctx context.Context, category *categoryDatamodel.ItemCategory) error
	Update(ctx context.Context, category *categoryDatamodel.ItemCategory) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllCategories(ctx context.Context) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		domainCategory := FromDataModel(dataCategory)
		if domainCategory.IsActiveCategory() {
			responses = append(responses, domainCategory.ToResponse())
		}
	}

	s.logger.Debug("retrieved categories", "count", len(responses))
	return responses, nil
}

// GetCategoryByName returns internal.ErrCategoryNotFound when no active
// category has the name.
func (s *Service) GetCategoryByName(ctx context.Context, name string) (*CategoryResponse, error) {
	dataCategory, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error("failed to get category from repository", "name", name, "error", err)
		return nil, err
	}
	if dataCategory == nil {
		return nil, internal.ErrCategoryNotFound
	}

	domainCategory := FromDataModel(dataCategory)
	if !domainCategory.IsActiveCategory() {
		return nil, internal.ErrCategoryNotFound
	}
	response := domainCategory.ToResponse()
	return &response, nil
}

func (s *Service) IsValidCategory(ctx context.Context, name string) bool {
	_, err := s.GetCategoryByName(ctx, name)
	if errors.Is(err, internal.ErrCategoryNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("error checking category validity", "name", name, "error", err)
		return false
	}
	return true
}

func (s *Service) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*CategoryResponse, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, dto.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive {
			return nil, internal.ErrDuplicateCategory
		}
		existing.IsActive = true
		existing.Description = dto.Description
		if err := s.repo.Update(ctx, existing); err != nil {
			s.logger.Error("failed to reactivate category", "name", dto.Name, "error", err)
			return nil, err
		}
		s.logger.Info("category reactivated", "category_id", existing.ID, "name", existing.Name)
		response := FromDataModel(existing).ToResponse()
		return &response, nil
	}

	domainCategory := NewCategory(dto.Name, dto.Description)
	dataCategory := ToDataModel(domainCategory)
	if err := s.repo.Create(ctx, dataCategory); err != nil {
		s.logger.Error("failed to create category", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("category created", "category_id", dataCategory.ID, "name", dataCategory.Name)
	response := FromDataModel(dataCategory).ToResponse()
	return &response, nil
}
