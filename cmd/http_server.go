package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/frahmantamala/stock-management/internal"
	"github.com/frahmantamala/stock-management/internal/approval"
	"github.com/frahmantamala/stock-management/internal/auth"
	authPostgres "github.com/frahmantamala/stock-management/internal/auth/postgres"
	"github.com/frahmantamala/stock-management/internal/category"
	"github.com/frahmantamala/stock-management/internal/checkout"
	"github.com/frahmantamala/stock-management/internal/core/events"
	"github.com/frahmantamala/stock-management/internal/item"
	"github.com/frahmantamala/stock-management/internal/notification"
	"github.com/frahmantamala/stock-management/internal/report"
	"github.com/frahmantamala/stock-management/internal/transport"
	"github.com/frahmantamala/stock-management/internal/transport/rest"
	"github.com/frahmantamala/stock-management/internal/transport/swagger"
	"github.com/frahmantamala/stock-management/internal/user"
	"github.com/frahmantamala/stock-management/pkg/logger"
	"github.com/frahmantamala/stock-management/pkg/tracing"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Tracer   trace.TracerProvider
	Router   *chi.Mux
	Logger   *slog.Logger
	Services *services
	Bus      *events.EventBus
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.close(ctx)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func (d *Dependencies) close(ctx context.Context) {
	if err := d.Bus.Drain(ctx); err != nil {
		d.Logger.Error("event handlers did not finish", "error", err)
	}
	if d.Tracer != nil {
		if err := tracing.Shutdown(ctx, d.Tracer); err != nil {
			d.Logger.Error("tracer shutdown error", "error", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("redis close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	gormDB, db, err := initDB(cfg.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps := &Dependencies{Config: cfg, DB: db, Logger: lg, Router: chi.NewRouter()}

	blocklist, err := deps.initBlocklist()
	if err != nil {
		return nil, err
	}

	if cfg.Observability.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Observability.Tracing.ServiceName,
			cfg.Observability.Tracing.JaegerURL, cfg.Observability.Tracing.SamplingRate)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		deps.Tracer = tp
	}

	if cfg.Server.OpenAPIPath != "" {
		if _, err := swagger.LoadSpec(context.Background(), cfg.Server.OpenAPIPath); err != nil {
			return nil, err
		}
	}

	bus := events.NewEventBus(lg)
	deps.Bus = bus
	svc := buildServices(cfg, gormDB, db, bus, bus, lg)
	deps.Services = svc

	authService := auth.NewService(
		authPostgres.NewRepository(gormDB),
		auth.NewJWTTokenGenerator(cfg.Security.JWTAccessSecret, cfg.Security.JWTRefreshSecret,
			cfg.Security.AccessTokenDuration, cfg.Security.RefreshTokenDuration),
		blocklist,
		lg,
	)

	checks := map[string]rest.Check{"database": svc.ReportRepo.Ping}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }
	}

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Auth:         auth.NewHandler(authService),
		RBAC:         auth.NewRBACAuthorization(auth.NewRoleChecker(), lg),
		User:         user.NewHandler(svc.Users),
		Category:     category.NewHandler(transport.NewBaseHandler(lg), svc.Categories),
		Item:         item.NewHandler(svc.Items),
		Checkout:     checkout.NewHandler(svc.Checkouts),
		Approval:     approval.NewHandler(svc.Engine),
		Report:       report.NewHandler(svc.Reports),
		Notification: notification.NewHandler(svc.Notifications),
		Health:       rest.NewHealthHandler(checks),
	}, rest.Options{
		AllowedOrigins: cfg.Server.Origins(),
		MetricsEnabled: cfg.Observability.Metrics.Enabled,
		MetricsPath:    cfg.Observability.Metrics.Path,
		TracingEnabled: cfg.Observability.Tracing.Enabled,
		OpenAPIPath:    cfg.Server.OpenAPIPath,
	}, lg)

	return deps, nil
}

// initBlocklist keeps revoked token ids in redis when configured so logouts
// hold across instances, otherwise in memory.
func (d *Dependencies) initBlocklist() (auth.TokenBlocklist, error) {
	if !d.Config.Redis.Enabled {
		d.Logger.Warn("redis disabled; revoked tokens are kept in memory")
		return auth.NewMemoryBlocklist(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     d.Config.Redis.Addr,
		Password: d.Config.Redis.Password,
		DB:       d.Config.Redis.DB,
	})
	ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	d.Redis = client
	return auth.NewRedisBlocklist(client), nil
}
