package report

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/transport"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

type ServiceAPI interface {
	ExpiringSoon(ctx context.Context, department string) ([]ExpiringItem, error)
	AddedSince(ctx context.Context, department, period string) ([]AddedItem, error)
	AddedBetween(ctx context.Context, department, from, to string) ([]AddedItem, error)
	CheckoutSummary(ctx context.Context, department string) (*CheckoutSummary, error)
	Overview(ctx context.Context, department string) (*Overview, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// Expiring handles GET /reports/expiring
func (h *Handler) Expiring(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	rows, err := h.Service.ExpiringSoon(r.Context(), user.Department)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": rows})
}

// Added handles GET /reports/added?period=week|month and
// GET /reports/added?from=YYYY-MM-DD&to=YYYY-MM-DD. A date range wins over
// period.
func (h *Handler) Added(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var (
		rows []AddedItem
		err  error
	)
	if from, to := q.Get("from"), q.Get("to"); from != "" || to != "" {
		rows, err = h.Service.AddedBetween(r.Context(), user.Department, from, to)
	} else {
		rows, err = h.Service.AddedSince(r.Context(), user.Department, q.Get("period"))
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": rows})
}

// Checkouts handles GET /reports/checkouts
func (h *Handler) Checkouts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.CheckoutSummary(r.Context(), user.Department)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

// Overview handles GET /reports/overview
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	overview, err := h.Service.Overview(r.Context(), user.Department)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return user, true
}
