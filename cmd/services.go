package cmd

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/approval"
	approvalPostgres "github.com/frahmantamala/stock-management/internal/approval/postgres"
	"github.com/frahmantamala/stock-management/internal/auth"
	"github.com/frahmantamala/stock-management/internal/category"
	categoryPostgres "github.com/frahmantamala/stock-management/internal/category/postgres"
	"github.com/frahmantamala/stock-management/internal/checkout"
	checkoutPostgres "github.com/frahmantamala/stock-management/internal/checkout/postgres"
	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/item"
	itemPostgres "github.com/frahmantamala/stock-management/internal/item/postgres"
	"github.com/frahmantamala/stock-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/stock-management/internal/notification/postgres"
	"github.com/frahmantamala/stock-management/internal/report"
	reportPostgres "github.com/frahmantamala/stock-management/internal/report/postgres"
	"github.com/frahmantamala/stock-management/internal/user"
	userPostgres "github.com/frahmantamala/stock-management/internal/user/postgres"
)

type services struct {
	Users         *user.Service
	Categories    *category.Service
	Items         *item.Service
	Checkouts     *checkout.Service
	Engine        *approval.Engine
	Reports       *report.Service
	ReportRepo    *reportPostgres.ReportRepository
	Notifications *notification.Service
}

// buildServices wires every domain service onto one database. Services
// publish through publisher; notification subscribers are registered on bus.
func buildServices(cfg *internal.Config, db *gorm.DB, sqlxDB *sqlx.DB, bus *events.EventBus, publisher events.Publisher, lg *slog.Logger) *services {
	cost := cfg.Security.BCryptCost
	hash := func(password string) (string, error) {
		return auth.HashPassword(password, cost)
	}

	s := &services{}
	s.Users = user.NewService(userPostgres.NewUserRepository(db), hash, lg)
	s.Categories = category.NewService(categoryPostgres.NewCategoryRepository(db), lg)
	s.Items = item.NewService(itemPostgres.NewItemRepository(db), s.Users, s.Categories, publisher, lg, cfg.Inventory.DefaultCurrency)
	s.Checkouts = checkout.NewService(checkoutPostgres.NewCheckoutRepository(db), s.Users, s.Items, publisher, lg)
	s.Engine = approval.NewEngine(approvalPostgres.NewApprovalRepository(db), publisher, lg)
	s.ReportRepo = reportPostgres.NewReportRepository(sqlxDB)
	s.Reports = report.NewService(s.ReportRepo, lg, cfg.Inventory)
	s.Notifications = notification.NewService(notificationPostgres.NewNotificationRepository(db), lg)
	s.Notifications.RegisterEventHandlers(bus)
	return s
}
