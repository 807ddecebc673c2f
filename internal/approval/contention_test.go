package approval_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/approval"
	approvalRepo "github.com/frahmantamala/stock-management/internal/approval/postgres"
	"github.com/frahmantamala/stock-management/internal/core/datamodel"
	checkoutDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/checkout"
	itemDatamodel "github.com/frahmantamala/stock-management/internal/core/datamodel/item"
	"github.com/frahmantamala/stock-management/internal/core/status"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// The sqlite suites pin their pool to one connection, so their concurrent
// approvals run one transaction at a time. These run the same race with a
// real connection pool when STOCK_TEST_POSTGRES_DSN points at a scratch database.
var _ = Describe("Approval Engine on postgres", Ordered, func() {
	var (
		db     *gorm.DB
		engine *approval.Engine
		item   *itemDatamodel.StockItem
	)

	BeforeAll(func() {
		dsn := os.Getenv("STOCK_TEST_POSTGRES_DSN")
		if dsn == "" {
			Skip("STOCK_TEST_POSTGRES_DSN not set")
		}
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(16)
		Expect(db.AutoMigrate(datamodel.Models()...)).To(Succeed())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		engine = approval.NewEngine(approvalRepo.NewApprovalRepository(db), &recordingPublisher{}, lg)
	})

	BeforeEach(func() {
		item = &itemDatamodel.StockItem{
			ItemName: fmt.Sprintf("toner-%d", time.Now().UnixNano()), Price: decimal.RequireFromString("35000"),
			Category: "stationery", Quantity: 10, Currency: "RWF", Department: "IT", MakerID: 1, Status: status.Approved,
		}
		Expect(db.Create(item).Error).To(Succeed())
		DeferCleanup(func() {
			db.Where("item_id = ?", item.ID).Delete(&itemDatamodel.ApprovalDetail{})
			db.Where("item_id = ?", item.ID).Delete(&checkoutDatamodel.CheckoutTransaction{})
			db.Delete(item)
		})
	})

	It("should never oversell when approvals overlap on separate connections", func() {
		const requests = 12
		ids := make([]int64, requests)
		for i := range ids {
			row := &checkoutDatamodel.CheckoutTransaction{
				ItemID: item.ID, ItemName: item.ItemName, Quantity: 3, UserID: 1,
				Department: item.Department, ApprovalStatus: status.Pending,
			}
			Expect(db.Create(row).Error).To(Succeed())
			ids[i] = row.CheckoutID
		}

		errs := make([]error, requests)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id int64) {
				defer GinkgoRecover()
				defer wg.Done()
				<-start
				_, errs[i] = engine.ResolveCheckout(context.Background(), approval.ResolveCheckoutCommand{
					CheckoutID: id, Decision: status.Approved, Approver: itApprover,
				})
			}(i, id)
		}
		close(start)
		wg.Wait()

		var won int
		for _, err := range errs {
			if err == nil {
				won++
				continue
			}
			Expect(errors.Is(err, internal.ErrInsufficientStock)).To(BeTrue(), "got %v", err)
		}
		Expect(won).To(Equal(3))

		var left itemDatamodel.StockItem
		Expect(db.First(&left, item.ID).Error).To(Succeed())
		Expect(left.Quantity).To(Equal(int64(1)))
	})
})
