package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/transport"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

type ServiceAPI interface {
	CreateCheckout(ctx context.Context, userID int64, dto CreateCheckoutDTO) (*Checkout, error)
	GetByID(ctx context.Context, userID, checkoutID int64) (*Checkout, error)
	ListPending(ctx context.Context, userID int64) ([]*Checkout, error)
	ListApproved(ctx context.Context, userID int64) ([]*Checkout, error)
	ListByUser(ctx context.Context, userID int64) ([]*Checkout, error)
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

// CreateCheckout handles POST /checkouts
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCheckoutDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.CreateCheckout(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// GetCheckout handles GET /checkouts/{id}
func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	checkoutID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	found, err := h.Service.GetByID(r.Context(), user.ID, checkoutID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

// ListMine handles GET /checkouts/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListByUser)
}

// ListPending handles GET /checkouts/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListPending)
}

// ListApproved handles GET /checkouts/approved
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListApproved)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context, int64) ([]*Checkout, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	checkouts, err := fetch(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"checkouts": checkouts})
}
