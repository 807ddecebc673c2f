package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frahmantamala/stock-management/internal/approval"
	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/category"
	"github.com/frahmantamala/stock-management/internal/checkout"
	"github.com/frahmantamala/stock-management/internal/item"
	"github.com/frahmantamala/stock-management/internal/notification"
	"github.com/frahmantamala/stock-management/internal/report"
	"github.com/frahmantamala/stock-management/internal/transport/middleware"
	"github.com/frahmantamala/stock-management/internal/transport/swagger"
	"github.com/frahmantamala/stock-management/internal/user"
)

type Handlers struct {
	Auth         *auth.Handler
	RBAC         *auth.RBACAuthorization
	User         *user.Handler
	Category     *category.Handler
	Item         *item.Handler
	Checkout     *checkout.Handler
	Approval     *approval.Handler
	Report       *report.Handler
	Notification *notification.Handler
	Health       *HealthHandler
}

type Options struct {
	AllowedOrigins []string
	MetricsEnabled bool
	MetricsPath    string
	TracingEnabled bool
	OpenAPIPath    string
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	router.NotFound(NotFound)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	if opts.TracingEnabled {
		router.Use(middleware.Tracing("stock-management-http"))
	}
	if opts.MetricsEnabled {
		router.Use(middleware.Metrics)
		router.Handle(opts.MetricsPath, promhttp.Handler())
	}

	if opts.OpenAPIPath != "" {
		router.Get(swagger.SpecURL, swagger.SpecHandler(opts.OpenAPIPath))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/ping", h.Health.Ping)

		r.Group(func(lr chi.Router) {
			lr.Use(middleware.Logging(logger))

			lr.Route("/auth", func(ar chi.Router) {
				ar.Post("/login", h.Auth.Login)
				ar.Post("/refresh", h.Auth.RefreshToken)
				ar.Post("/logout", h.Auth.Logout)
			})

			lr.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)
				registerProtected(pr, h)
			})
		})
	})
}

func registerProtected(r chi.Router, h Handlers) {
	requireApprover := h.RBAC.RequireApprover()
	requireAdmin := h.RBAC.RequireAdmin()

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/me", h.User.GetCurrentUser)
		ur.Group(func(ar chi.Router) {
			ar.Use(requireAdmin)
			ar.Get("/", h.User.ListUsers)
			ar.Post("/", h.User.CreateUser)
			ar.Patch("/{id}", h.User.UpdateUser)
		})
	})

	r.Get("/categories", h.Category.GetCategories)
	r.With(requireAdmin).Post("/categories", h.Category.CreateCategory)

	r.Route("/items", func(ir chi.Router) {
		ir.Post("/", h.Item.CreateItem)
		ir.Get("/", h.Item.ListItems)
		ir.Get("/pending", h.Item.ListPendingItems)
		ir.Get("/damaged", h.Item.ListDamaged)
		ir.Get("/{id}", h.Item.GetItem)
		ir.Patch("/{id}/quantity", h.Item.UpdateQuantity)
		ir.Patch("/{id}/price", h.Item.UpdatePrice)
		ir.Post("/{id}/damage", h.Item.ReportDamage)
		ir.With(requireApprover).Patch("/{id}/status", h.Approval.ResolveItem)
	})

	r.Route("/checkouts", func(cr chi.Router) {
		cr.Post("/", h.Checkout.CreateCheckout)
		cr.Get("/mine", h.Checkout.ListMine)
		cr.Get("/{id}", h.Checkout.GetCheckout)
		cr.Group(func(ar chi.Router) {
			ar.Use(requireApprover)
			ar.Get("/pending", h.Checkout.ListPending)
			ar.Get("/approved", h.Checkout.ListApproved)
			ar.Patch("/{id}/status", h.Approval.ResolveCheckout)
		})
	})

	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/expiring", h.Report.Expiring)
		rr.Get("/added", h.Report.Added)
		rr.Get("/checkouts", h.Report.Checkouts)
		rr.Get("/overview", h.Report.Overview)
	})

	r.Get("/notifications", h.Notification.List)
}

// NotFound answers unknown routes with the standard JSON error body.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"route not found"}}`))
}
