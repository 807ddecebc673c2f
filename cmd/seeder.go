package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/approval"
	"github.com/frahmantamala/stock-management/internal/category"
	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/core/status"
	"github.com/frahmantamala/stock-management/internal/item"
	"github.com/frahmantamala/stock-management/internal/user"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users, categories and approved stock for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeed(context.Background()); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "delete existing rows before seeding")
}

// seeded tables in delete order
var seedTables = []string{
	"notifications",
	"checkout_transactions",
	"damaged_items",
	"approval_details",
	"stock_items",
	"item_categories",
	"users",
}

const seedPassword = "password123"

type seedUser struct {
	Email      string
	Name       string
	Department string
	Role       string
}

func runSeed(ctx context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	gormDB, db, err := initDB(cfg.Database, lg)
	if err != nil {
		return err
	}
	defer db.Close()

	if clearData {
		if err := clearTables(gormDB); err != nil {
			return err
		}
		fmt.Println("Cleared existing data")
	}

	bus := events.NewEventBus(lg)
	svc := buildServices(cfg, gormDB, db, bus, bus.Synchronous(), lg)

	categories := []category.CreateCategoryDTO{
		{Name: "Electronics", Description: "computers, cables and peripherals"},
		{Name: "Stationery", Description: "paper, pens and office supplies"},
		{Name: "Food", Description: "perishable pantry stock"},
		{Name: "Cleaning", Description: "cleaning products and tools"},
	}
	for _, c := range categories {
		_, err := svc.Categories.CreateCategory(ctx, c)
		if err != nil && !errors.Is(err, internal.ErrDuplicateCategory) {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	fmt.Println("Seeded categories")

	users := []seedUser{
		{"admin@mail.com", "Stock Admin", "IT", "admin"},
		{"approver@mail.com", "IT Approver", "IT", "approver"},
		{"user@mail.com", "IT Staff", "IT", "user"},
		{"hr.approver@mail.com", "HR Approver", "HR", "approver"},
		{"hr.user@mail.com", "HR Staff", "HR", "user"},
	}
	ids := make(map[string]int64, len(users))
	for _, u := range users {
		created, err := svc.Users.CreateUser(ctx, user.CreateUserDTO{
			Email:      u.Email,
			Name:       u.Name,
			Password:   seedPassword,
			Department: u.Department,
			Role:       u.Role,
		})
		if errors.Is(err, internal.ErrEmailTaken) {
			fmt.Println("user already exists:", u.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		ids[u.Email] = created.ID
		fmt.Println("Seeded user:", u.Email)
	}

	makerID, ok := ids["user@mail.com"]
	if !ok {
		fmt.Println("users existed before this run; skipping sample stock")
		return nil
	}
	approver, err := svc.Users.GetByID(ctx, ids["approver@mail.com"])
	if err != nil {
		return err
	}

	soon := time.Now().AddDate(0, 0, 10).Format(item.DateLayout)
	stock := []item.CreateItemDTO{
		{ItemName: "HDMI Cable", Price: decimal.RequireFromString("4500"), Category: "Electronics", Quantity: 20},
		{ItemName: "Wireless Mouse", Price: decimal.RequireFromString("12000.50"), Category: "Electronics", Quantity: 8},
		{ItemName: "A4 Paper", Price: decimal.RequireFromString("6000"), Category: "Stationery", Quantity: 40},
		{ItemName: "Coffee Beans", Price: decimal.RequireFromString("9500"), Category: "Food", Quantity: 5, ExpirationDate: &soon},
	}
	for _, dto := range stock {
		created, err := svc.Items.CreateItem(ctx, makerID, dto)
		if err != nil {
			return fmt.Errorf("failed to seed item %s: %w", dto.ItemName, err)
		}
		_, err = svc.Engine.ResolveItem(ctx, approval.ResolveItemCommand{
			ItemID:   created.ID,
			Decision: status.Approved,
			Approver: approval.Approver{ID: approver.ID, Role: approver.Role, Department: approver.Department},
			Comment:  "seeded",
		})
		if err != nil {
			return fmt.Errorf("failed to approve item %s: %w", dto.ItemName, err)
		}
	}
	fmt.Printf("Seeded %d approved items. All users share the password %q\n", len(stock), seedPassword)
	return nil
}

func clearTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range seedTables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
