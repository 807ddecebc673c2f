package cmd

import (
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/core/datamodel"
)

// initDB opens the gorm handle used by the repositories and wraps the same
// pool in sqlx for the report queries. sqlite databases are migrated in
// place; postgres schemas come from goose.
func initDB(cfg internal.DatabaseConfig, lg *slog.Logger) (*gorm.DB, *sqlx.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var (
		db         *gorm.DB
		driverName string
		err        error
	)
	switch cfg.Driver {
	case "sqlite":
		driverName = "sqlite3"
		db, err = gorm.Open(sqlite.Open(cfg.Source), gormCfg)
	default:
		driverName = "pgx"
		db, err = gorm.Open(postgres.New(postgres.Config{DSN: cfg.Source, DriverName: driverName}), gormCfg)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
		if err := db.AutoMigrate(datamodel.Models()...); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	lg.Info("database connected", "driver", cfg.Driver)
	return db, sqlx.NewDb(sqlDB, driverName), nil
}
