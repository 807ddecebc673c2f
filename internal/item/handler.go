package item

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/transport"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

type ServiceAPI interface {
	CreateItem(ctx context.Context, makerID int64, dto CreateItemDTO) (*Item, error)
	GetItem(ctx context.Context, userID, itemID int64) (*Item, error)
	ListApproved(ctx context.Context, userID int64) ([]*Item, error)
	ListPending(ctx context.Context, userID int64) ([]*Item, error)
	Search(ctx context.Context, userID int64, term string) ([]*Item, error)
	UpdatePendingQuantity(ctx context.Context, userID, itemID int64, dto UpdateQuantityDTO) (*Item, error)
	UpdatePendingPrice(ctx context.Context, userID, itemID int64, dto UpdatePriceDTO) (*Item, error)
	ReportDamage(ctx context.Context, userID, itemID int64, dto ReportDamageDTO) (*DamageReport, error)
	ListDamaged(ctx context.Context, userID int64) ([]*DamageReport, error)
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

// CreateItem handles POST /items
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	var dto CreateItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.CreateItem(r.Context(), user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListItems handles GET /items, optionally filtered by ?name=
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	var (
		items []*Item
		err   error
	)
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		items, err = h.Service.Search(r.Context(), user.ID, name)
	} else {
		items, err = h.Service.ListApproved(r.Context(), user.ID)
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// ListPendingItems handles GET /items/pending
func (h *Handler) ListPendingItems(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	items, err := h.Service.ListPending(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// GetItem handles GET /items/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}
	itemID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	found, err := h.Service.GetItem(r.Context(), user.ID, itemID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

// UpdateQuantity handles PATCH /items/{id}/quantity
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}
	itemID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateQuantityDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, err := h.Service.UpdatePendingQuantity(r.Context(), user.ID, itemID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// UpdatePrice handles PATCH /items/{id}/price
func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}
	itemID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdatePriceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, err := h.Service.UpdatePendingPrice(r.Context(), user.ID, itemID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// ReportDamage handles POST /items/{id}/damage
func (h *Handler) ReportDamage(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}
	itemID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto ReportDamageDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	report, err := h.Service.ReportDamage(r.Context(), user.ID, itemID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, report)
}

// ListDamaged handles GET /items/damaged
func (h *Handler) ListDamaged(w http.ResponseWriter, r *http.Request) {
	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	reports, err := h.Service.ListDamaged(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"damaged_items": reports})
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("item handler: user not found in context", "path", r.URL.Path)
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return user, true
}
