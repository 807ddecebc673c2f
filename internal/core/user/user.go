package user

// Role is the access level of a user within their department.
type Role string

const (
	RoleUser     Role = "user"
	RoleApprover Role = "approver"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleApprover, RoleAdmin:
		return true
	}
	return false
}

// CanApprove reports whether the role may resolve pending items and checkouts.
func (r Role) CanApprove() bool {
	return r == RoleApprover || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func AllRoles() []Role {
	return []Role{RoleUser, RoleApprover, RoleAdmin}
}
