package auth

import (
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

type RoleChecker interface {
	CanApprove(role coreuser.Role) bool
	IsAdmin(role coreuser.Role) bool
	HasAnyRole(role coreuser.Role, required []coreuser.Role) bool
}

type DefaultRoleChecker struct{}

func NewRoleChecker() RoleChecker {
	return &DefaultRoleChecker{}
}

func (c *DefaultRoleChecker) CanApprove(role coreuser.Role) bool {
	return c.HasAnyRole(role, []coreuser.Role{coreuser.RoleApprover, coreuser.RoleAdmin})
}

func (c *DefaultRoleChecker) IsAdmin(role coreuser.Role) bool {
	return c.HasAnyRole(role, []coreuser.Role{coreuser.RoleAdmin})
}

func (c *DefaultRoleChecker) HasAnyRole(role coreuser.Role, required []coreuser.Role) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
