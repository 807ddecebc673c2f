package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubReportService struct {
	department string
	period     string
	from, to   string
}

func (s *stubReportService) ExpiringSoon(_ context.Context, department string) ([]report.ExpiringItem, error) {
	s.department = department
	return []report.ExpiringItem{{ID: 3, ItemName: "milk", Expired: true, DaysLeft: -1}}, nil
}

func (s *stubReportService) AddedSince(_ context.Context, department, period string) ([]report.AddedItem, error) {
	s.department = department
	s.period = period
	if period == "year" {
		return nil, internal.NewValidationFieldError("period", "period must be one of: week, month", internal.ErrCodeInvalidPeriod)
	}
	return []report.AddedItem{}, nil
}

func (s *stubReportService) AddedBetween(_ context.Context, department, from, to string) ([]report.AddedItem, error) {
	s.department = department
	s.from, s.to = from, to
	if from == "" {
		return nil, internal.NewValidationFieldError("from", "from is required", internal.ErrCodeInvalidDate)
	}
	return []report.AddedItem{{ID: 8, ItemName: "toner"}}, nil
}

func (s *stubReportService) CheckoutSummary(_ context.Context, department string) (*report.CheckoutSummary, error) {
	s.department = department
	return &report.CheckoutSummary{Daily: []report.Bucket{{Period: "2026-10-14", Checkouts: 1, Units: 2}}}, nil
}

func (s *stubReportService) Overview(_ context.Context, department string) (*report.Overview, error) {
	s.department = department
	return &report.Overview{Department: department, TotalStockValue: decimal.RequireFromString("12.50")}, nil
}

var _ = Describe("Report Handler", func() {
	var (
		svc     *stubReportService
		handler *report.Handler
	)

	authed := func(r *http.Request) *http.Request {
		return r.WithContext(auth.ContextWithUser(r.Context(), &auth.User{ID: 4, Department: "Finance"}))
	}

	BeforeEach(func() {
		svc = &stubReportService{}
		handler = report.NewHandler(svc)
	})

	It("scopes reports to the caller's department", func() {
		w := httptest.NewRecorder()
		handler.Expiring(w, authed(httptest.NewRequest(http.MethodGet, "/reports/expiring", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.department).To(Equal("Finance"))

		var body struct {
			Items []map[string]interface{} `json:"items"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Items).To(HaveLen(1))
		Expect(body.Items[0]["expired"]).To(BeTrue())
	})

	It("passes the period through", func() {
		w := httptest.NewRecorder()
		handler.Added(w, authed(httptest.NewRequest(http.MethodGet, "/reports/added?period=month", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.period).To(Equal("month"))
	})

	It("maps an invalid period to 400", func() {
		w := httptest.NewRecorder()
		handler.Added(w, authed(httptest.NewRequest(http.MethodGet, "/reports/added?period=year", nil)))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("uses the date range instead of the period when one is given", func() {
		w := httptest.NewRecorder()
		handler.Added(w, authed(httptest.NewRequest(http.MethodGet, "/reports/added?period=week&from=2026-10-01&to=2026-10-07", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.from).To(Equal("2026-10-01"))
		Expect(svc.to).To(Equal("2026-10-07"))
		Expect(svc.period).To(BeEmpty())
		Expect(w.Body.String()).To(ContainSubstring(`"toner"`))
	})

	It("maps an incomplete date range to 400", func() {
		w := httptest.NewRecorder()
		handler.Added(w, authed(httptest.NewRequest(http.MethodGet, "/reports/added?to=2026-10-07", nil)))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_DATE"))
	})

	It("renders the overview value as a string", func() {
		w := httptest.NewRecorder()
		handler.Overview(w, authed(httptest.NewRequest(http.MethodGet, "/reports/overview", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		var body map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["total_stock_value"]).To(Equal("12.5"))
	})

	It("returns the checkout summary", func() {
		w := httptest.NewRecorder()
		handler.Checkouts(w, authed(httptest.NewRequest(http.MethodGet, "/reports/checkouts", nil)))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"2026-10-14"`))
	})

	It("requires a principal", func() {
		w := httptest.NewRecorder()
		handler.Checkouts(w, httptest.NewRequest(http.MethodGet, "/reports/checkouts", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
