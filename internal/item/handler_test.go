package item_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/core/status"
	"github.com/frahmantamala/stock-management/internal/item"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubItemService struct {
	item.ServiceAPI
	lastDTO    item.CreateItemDTO
	creates    int
	searchTerm string
	err        error
}

func (s *stubItemService) CreateItem(_ context.Context, makerID int64, dto item.CreateItemDTO) (*item.Item, error) {
	s.lastDTO = dto
	s.creates++
	if s.err != nil {
		return nil, s.err
	}
	return &item.Item{ID: 7, ItemName: dto.ItemName, MakerID: makerID, Status: status.Pending}, nil
}

func (s *stubItemService) ListApproved(_ context.Context, _ int64) ([]*item.Item, error) {
	return []*item.Item{{ID: 1, ItemName: "stapler", Status: status.Approved}}, nil
}

func (s *stubItemService) Search(_ context.Context, _ int64, term string) ([]*item.Item, error) {
	s.searchTerm = term
	return nil, nil
}

func (s *stubItemService) ReportDamage(_ context.Context, _, _ int64, _ item.ReportDamageDTO) (*item.DamageReport, error) {
	return nil, s.err
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(auth.ContextWithUser(r.Context(), &auth.User{ID: 1, Department: "IT"}))
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("Item Handler", func() {
	var (
		svc     *stubItemService
		handler *item.Handler
	)

	BeforeEach(func() {
		svc = &stubItemService{}
		handler = item.NewHandler(svc)
	})

	It("should create an item with a decimal price", func() {
		body := `{"item_name":"stapler","price":"1250.75","category":"stationery","quantity":4}`
		w := httptest.NewRecorder()

		handler.CreateItem(w, authed(httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))))

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(svc.lastDTO.Price.Equal(decimal.RequireFromString("1250.75"))).To(BeTrue())
		Expect(svc.lastDTO.Quantity).To(Equal(int64(4)))
	})

	It("should answer 400 for a non-numeric quantity", func() {
		body := `{"item_name":"stapler","price":1,"category":"stationery","quantity":"four"}`
		w := httptest.NewRecorder()

		handler.CreateItem(w, authed(httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("quantity"))
	})

	It("should refuse a client-chosen status on create", func() {
		body := `{"item_name":"stapler","price":"5","category":"stationery","quantity":4,"status":"approved"}`
		w := httptest.NewRecorder()

		handler.CreateItem(w, authed(httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(svc.creates).To(BeZero())
	})

	It("should answer 401 without a principal", func() {
		w := httptest.NewRecorder()
		handler.CreateItem(w, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{}`)))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should list approved items", func() {
		w := httptest.NewRecorder()
		handler.ListItems(w, authed(httptest.NewRequest(http.MethodGet, "/items", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		var body struct {
			Items []item.Item `json:"items"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Items).To(HaveLen(1))
	})

	It("should search when a name is given", func() {
		w := httptest.NewRecorder()
		handler.ListItems(w, authed(httptest.NewRequest(http.MethodGet, "/items?name=stap", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.searchTerm).To(Equal("stap"))
	})

	It("should map insufficient stock to 409", func() {
		svc.err = internal.ErrInsufficientStock
		req := withID(authed(httptest.NewRequest(http.MethodPost, "/items/3/damage", strings.NewReader(`{"quantity":9,"description":"x"}`))), "3")
		w := httptest.NewRecorder()

		handler.ReportDamage(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring("INSUFFICIENT_STOCK"))
	})
})
