package approval_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/approval"
	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/core/status"
	coreuser "github.com/frahmantamala/stock-management/internal/core/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubEngine struct {
	itemCmd     *approval.ResolveItemCommand
	checkoutCmd *approval.ResolveCheckoutCommand
	err         error
}

func (s *stubEngine) ResolveItem(_ context.Context, cmd approval.ResolveItemCommand) (*approval.ItemResolution, error) {
	s.itemCmd = &cmd
	if s.err != nil {
		return nil, s.err
	}
	return &approval.ItemResolution{ItemID: cmd.ItemID, Status: cmd.Decision}, nil
}

func (s *stubEngine) ResolveCheckout(_ context.Context, cmd approval.ResolveCheckoutCommand) (*approval.CheckoutResolution, error) {
	s.checkoutCmd = &cmd
	if s.err != nil {
		return nil, s.err
	}
	return &approval.CheckoutResolution{CheckoutID: cmd.CheckoutID, Status: cmd.Decision}, nil
}

func resolveRequest(path, id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	r = r.WithContext(auth.ContextWithUser(r.Context(), &auth.User{ID: 10, Role: coreuser.RoleApprover, Department: "IT"}))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("Approval Handler", func() {
	var (
		engine  *stubEngine
		handler *approval.Handler
	)

	BeforeEach(func() {
		engine = &stubEngine{}
		handler = approval.NewHandler(engine)
	})

	It("should pass the caller's current role and department to the engine", func() {
		w := httptest.NewRecorder()
		handler.ResolveItem(w, resolveRequest("/items/4/status", "4", `{"status":" Approved ","approval_comment":"ok"}`))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(engine.itemCmd.ItemID).To(Equal(int64(4)))
		Expect(engine.itemCmd.Decision).To(Equal(status.Approved))
		Expect(engine.itemCmd.Comment).To(Equal("ok"))
		Expect(engine.itemCmd.Approver).To(Equal(approval.Approver{ID: 10, Role: coreuser.RoleApprover, Department: "IT"}))
	})

	DescribeTable("should map engine errors to HTTP statuses",
		func(err error, code int, body string) {
			engine.err = err
			w := httptest.NewRecorder()
			handler.ResolveCheckout(w, resolveRequest("/checkouts/8/status", "8", `{"status":"approved"}`))

			Expect(w.Code).To(Equal(code))
			Expect(w.Body.String()).To(ContainSubstring(body))
		},
		Entry("insufficient stock", internal.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"),
		Entry("already resolved", internal.ErrInvalidCheckoutStatus, http.StatusConflict, "INVALID_STATE"),
		Entry("missing", internal.ErrCheckoutNotFound, http.StatusNotFound, "CHECKOUT_NOT_FOUND"),
		Entry("wrong department", internal.ErrDepartmentMismatch, http.StatusForbidden, "DEPARTMENT_MISMATCH"),
		Entry("bad decision", internal.ErrInvalidDecision, http.StatusBadRequest, "INVALID_DECISION"),
	)

	It("should reject a malformed id", func() {
		w := httptest.NewRecorder()
		handler.ResolveCheckout(w, resolveRequest("/checkouts/x/status", "x", `{"status":"approved"}`))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(engine.checkoutCmd).To(BeNil())
	})
})
