package approval

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/transport"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

type EngineAPI interface {
	ResolveItem(ctx context.Context, cmd ResolveItemCommand) (*ItemResolution, error)
	ResolveCheckout(ctx context.Context, cmd ResolveCheckoutCommand) (*CheckoutResolution, error)
}

type Handler struct {
	*transport.BaseHandler
	Engine EngineAPI
}

func NewHandler(engine EngineAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Engine:      engine,
	}
}

// ResolveItem handles PATCH /items/{id}/status
func (h *Handler) ResolveItem(w http.ResponseWriter, r *http.Request) {
	approver, dto, id, ok := h.parse(w, r)
	if !ok {
		return
	}

	res, err := h.Engine.ResolveItem(r.Context(), ResolveItemCommand{
		ItemID:   id,
		Decision: dto.Status,
		Approver: approver,
		Comment:  dto.ApprovalComment,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, res)
}

// ResolveCheckout handles PATCH /checkouts/{id}/status
func (h *Handler) ResolveCheckout(w http.ResponseWriter, r *http.Request) {
	approver, dto, id, ok := h.parse(w, r)
	if !ok {
		return
	}

	res, err := h.Engine.ResolveCheckout(r.Context(), ResolveCheckoutCommand{
		CheckoutID: id,
		Decision:   dto.Status,
		Approver:   approver,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (Approver, ResolveDTO, int64, bool) {
	var dto ResolveDTO

	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return Approver{}, dto, 0, false
	}

	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return Approver{}, dto, 0, false
	}

	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return Approver{}, dto, 0, false
	}
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return Approver{}, dto, 0, false
	}

	return Approver{ID: user.ID, Role: user.Role, Department: user.Department}, dto, id, true
}
