// Package datamodel groups the gorm row types. Models lists every table for
// AutoMigrate in sqlite development databases and tests; postgres schemas
// are owned by the goose migrations under db/migrations.
package datamodel

import (
	"github.com/frahmantamala/stock-management/internal/core/datamodel/category"
	"github.com/frahmantamala/stock-management/internal/core/datamodel/checkout"
	"github.com/frahmantamala/stock-management/internal/core/datamodel/item"
	"github.com/frahmantamala/stock-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/stock-management/internal/core/datamodel/user"
)

func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&category.ItemCategory{},
		&item.StockItem{},
		&item.ApprovalDetail{},
		&item.DamagedItem{},
		&checkout.CheckoutTransaction{},
		&notification.Notification{},
	}
}
