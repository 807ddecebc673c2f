package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/notification"
	"github.com/frahmantamala/stock-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers such as the expiring stock scanner.`,
}

var expiryWorkerCmd = &cobra.Command{
	Use:   "expiry",
	Short: "Start the expiring stock scanner",
	Long:  `Scan approved stock for items inside the expiring window and notify their departments.`,
	Run: func(cmd *cobra.Command, args []string) {
		startExpiryWorker()
	},
}

var (
	scanInterval time.Duration
	scanOnce     bool
)

func startExpiryWorker() {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.LoggerWrapper()

	gormDB, db, err := initDB(cfg.Database, lg)
	if err != nil {
		lg.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bus := events.NewEventBus(lg)
	svc := buildServices(cfg, gormDB, db, bus, bus.Synchronous(), lg)
	scanner := notification.NewScanner(svc.Items, bus.Synchronous(), lg, cfg.Inventory.ExpiringWindow)

	if scanOnce {
		n, err := scanner.ScanOnce(context.Background())
		if err != nil {
			lg.Error("expiry scan failed", "error", err)
			os.Exit(1)
		}
		lg.Info("expiry scan finished", "published", n)
		return
	}

	interval := scanInterval
	if interval <= 0 {
		interval = cfg.Inventory.ExpiryScanInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("starting expiry worker", "interval", interval, "window", cfg.Inventory.ExpiringWindow)
	scanner.Run(ctx, interval)
}

func init() {
	expiryWorkerCmd.Flags().DurationVar(&scanInterval, "interval", 0, "time between scans (defaults to inventory.expiry_scan_interval)")
	expiryWorkerCmd.Flags().BoolVar(&scanOnce, "once", false, "run a single scan and exit")

	workerCmd.AddCommand(expiryWorkerCmd)
	rootCmd.AddCommand(workerCmd)
}
