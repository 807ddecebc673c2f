// Package sqlitetest opens migrated in-memory databases for repository tests.
package sqlitetest

import (
	"github.com/frahmantamala/stock-management/internal/core/datamodel"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an in-memory sqlite database with every table migrated.
// The pool is pinned to one connection: each new sqlite connection to
// ":memory:" would otherwise see its own empty database, and it makes
// concurrent transactions queue instead of interleave. Goroutine tests on
// this database check the SQL guards, not lock contention.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(datamodel.Models()...); err != nil {
		return nil, err
	}
	return db, nil
}
