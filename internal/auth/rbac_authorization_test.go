package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
)

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		rbac   *RBACAuthorization
		called bool
		next   http.Handler
	)

	ginkgo.BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		rbac = NewRBACAuthorization(NewRoleChecker(), lg)
		called = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(mw func(http.Handler) http.Handler, u *User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/items/1/status", nil)
		if u != nil {
			req = req.WithContext(ContextWithUser(req.Context(), u))
		}
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, req)
		return w
	}

	ginkgo.It("should reject requests without a user", func() {
		w := serve(rbac.RequireApprover(), nil)
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(called).To(gomega.BeFalse())
	})

	ginkgo.It("should reject plain users from approver routes", func() {
		w := serve(rbac.RequireApprover(), &User{ID: 1, Role: coreuser.RoleUser, Department: "IT"})
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("INSUFFICIENT_ROLE"))
		gomega.Expect(called).To(gomega.BeFalse())
	})

	ginkgo.It("should allow approvers and admins on approver routes", func() {
		for _, role := range []coreuser.Role{coreuser.RoleApprover, coreuser.RoleAdmin} {
			called = false
			w := serve(rbac.RequireApprover(), &User{ID: 2, Role: role, Department: "IT"})
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(called).To(gomega.BeTrue())
		}
	})

	ginkgo.It("should keep admin routes for admins only", func() {
		w := serve(rbac.RequireAdmin(), &User{ID: 2, Role: coreuser.RoleApprover, Department: "IT"})
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))

		w = serve(rbac.RequireAdmin(), &User{ID: 3, Role: coreuser.RoleAdmin, Department: "IT"})
		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
	})
})
