package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/stock-management/internal"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
	"github.com/frahmantamala/stock-management/internal/transport"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

type RBACAuthorization struct {
	*transport.BaseHandler
	checker RoleChecker
}

func NewRBACAuthorization(checker RoleChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		checker:     checker,
	}
}

// Check lets the request through when the caller holds one of roles.
func (ra *RBACAuthorization) Check(next http.HandlerFunc, roles ...coreuser.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			ra.Logger.Warn("authorization check failed: user not found in context")
			ra.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if !ra.checker.HasAnyRole(user.Role, roles) {
			ra.Logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.ID,
				"role", user.Role,
				"required_roles", roles)
			ra.HandleServiceError(w, internal.ErrInsufficientRole)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(roles ...coreuser.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, roles...)
	}
}

func (ra *RBACAuthorization) RequireApprover() func(http.Handler) http.Handler {
	return ra.Middleware(coreuser.RoleApprover, coreuser.RoleAdmin)
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.Middleware(coreuser.RoleAdmin)
}
