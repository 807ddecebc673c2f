package user

import (
	"strings"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/common/validation"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

type CreateUserDTO struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

func (d *CreateUserDTO) Normalize() {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Name = strings.TrimSpace(d.Name)
	d.Department = strings.TrimSpace(d.Department)
	if d.Role == "" {
		d.Role = string(coreuser.RoleUser)
	}
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().MaxLength(255).Custom(func(value interface{}) *internal.AppError {
		if s, _ := value.(string); s != "" && !strings.Contains(s, "@") {
			return internal.NewValidationFieldError("email", "email is not valid", internal.ErrCodeValidationFailed)
		}
		return nil
	})
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("password", d.Password).Required().MinLength(8)
	v.Field("department", d.Department).Required().MaxLength(100)
	v.Field("role", d.Role).OneOf(internal.ErrCodeInvalidRole, roleNames()...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO changes a user's role and/or department. Nil fields are left as is.
type UpdateUserDTO struct {
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if d.Role != nil {
		v.Field("role", *d.Role).OneOf(internal.ErrCodeInvalidRole, roleNames()...)
	}
	if d.Department != nil {
		v.Field("department", d.Department).Required().MaxLength(100)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func roleNames() []string {
	roles := coreuser.AllRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
