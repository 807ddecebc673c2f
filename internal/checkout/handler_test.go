package checkout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/checkout"
	"github.com/frahmantamala/stock-management/internal/core/status"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubCheckoutService struct {
	checkout.ServiceAPI
	created *checkout.CreateCheckoutDTO
	err     error
}

func (s *stubCheckoutService) CreateCheckout(_ context.Context, userID int64, dto checkout.CreateCheckoutDTO) (*checkout.Checkout, error) {
	s.created = &dto
	if s.err != nil {
		return nil, s.err
	}
	return &checkout.Checkout{CheckoutID: 5, UserID: userID, ItemName: dto.ItemName, Quantity: dto.Quantity, ApprovalStatus: status.Pending}, nil
}

func (s *stubCheckoutService) ListPending(_ context.Context, _ int64) ([]*checkout.Checkout, error) {
	return []*checkout.Checkout{{CheckoutID: 1, ApprovalStatus: status.Pending}}, nil
}

var _ = Describe("Checkout Handler", func() {
	var (
		svc     *stubCheckoutService
		handler *checkout.Handler
	)

	authed := func(r *http.Request) *http.Request {
		return r.WithContext(auth.ContextWithUser(r.Context(), &auth.User{ID: 3, Department: "IT"}))
	}

	BeforeEach(func() {
		svc = &stubCheckoutService{}
		handler = checkout.NewHandler(svc)
	})

	It("should create a checkout request", func() {
		w := httptest.NewRecorder()
		handler.CreateCheckout(w, authed(httptest.NewRequest(http.MethodPost, "/checkouts",
			strings.NewReader(`{"item_name":"stapler","quantity":2}`))))

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(svc.created.Quantity).To(Equal(int64(2)))
		Expect(w.Body.String()).To(ContainSubstring(`"approval_status":"pending"`))
	})

	It("should reject a non-numeric quantity before reaching the service", func() {
		w := httptest.NewRecorder()
		handler.CreateCheckout(w, authed(httptest.NewRequest(http.MethodPost, "/checkouts",
			strings.NewReader(`{"item_name":"stapler","quantity":"two"}`))))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(svc.created).To(BeNil())
	})

	It("should surface INVALID_QUANTITY from the service", func() {
		svc.err = internal.ErrInvalidQuantity
		w := httptest.NewRecorder()
		handler.CreateCheckout(w, authed(httptest.NewRequest(http.MethodPost, "/checkouts",
			strings.NewReader(`{"item_name":"stapler","quantity":0}`))))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_QUANTITY"))
	})

	It("should list pending checkouts", func() {
		w := httptest.NewRecorder()
		handler.ListPending(w, authed(httptest.NewRequest(http.MethodGet, "/checkouts/pending", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"checkouts"`))
	})

	It("should answer 401 without a principal", func() {
		w := httptest.NewRecorder()
		handler.ListMine(w, httptest.NewRequest(http.MethodGet, "/checkouts/mine", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
