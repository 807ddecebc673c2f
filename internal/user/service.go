package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/stock-management/internal"
	userDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	ListByDepartment(ctx context.Context, department string) ([]*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, userID int64, updates map[string]interface{}) error
}

// PasswordHasher turns a plain password into a storable hash.
type PasswordHasher func(password string) (string, error)

type Service struct {
	repo   Repository
	hash   PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hash PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hash:   hash,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(u), nil
}

// GetDepartment returns the department currently recorded for userID.
func (s *Service) GetDepartment(ctx context.Context, userID int64) (string, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Department, nil
}

func (s *Service) ListByDepartment(ctx context.Context, department string) ([]*User, error) {
	rows, err := s.repo.ListByDepartment(ctx, department)
	if err != nil {
		s.logger.Error("failed to list users", "department", department, "error", err)
		return nil, err
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, dto.Email); err == nil {
		return nil, internal.ErrEmailTaken
	} else if !errors.Is(err, internal.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hash(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Department:   dto.Department,
		Role:         dto.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	s.logger.Info("user created", "user_id", row.ID, "department", row.Department, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) UpdateUser(ctx context.Context, userID int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Role != nil {
		updates["role"] = string(coreuser.Role(*dto.Role))
	}
	if dto.Department != nil {
		updates["department"] = *dto.Department
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
		s.logger.Info("user updated", "user_id", userID, "fields", len(updates))
	}

	return s.GetByID(ctx, userID)
}
