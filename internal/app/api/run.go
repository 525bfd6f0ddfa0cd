package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	cataloghttp "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/orderstack/inventory-service/internal/domains/catalog/application"
	catalogports "github.com/orderstack/inventory-service/internal/domains/catalog/ports"
	ordershttp "github.com/orderstack/inventory-service/internal/domains/orders/adapters/http"
	ordersmemory "github.com/orderstack/inventory-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/orderstack/inventory-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/orderstack/inventory-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/orderstack/inventory-service/internal/domains/orders/application"
	ordersports "github.com/orderstack/inventory-service/internal/domains/orders/ports"
	reportshttp "github.com/orderstack/inventory-service/internal/domains/reports/adapters/http"
	reportsapp "github.com/orderstack/inventory-service/internal/domains/reports/application"
	usershttp "github.com/orderstack/inventory-service/internal/domains/users/adapters/http"
	usersmemory "github.com/orderstack/inventory-service/internal/domains/users/adapters/memory"
	userspostgres "github.com/orderstack/inventory-service/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/orderstack/inventory-service/internal/domains/users/application"
	usersdomain "github.com/orderstack/inventory-service/internal/domains/users/domain"
	usersports "github.com/orderstack/inventory-service/internal/domains/users/ports"
	"github.com/orderstack/inventory-service/internal/notify"
	"github.com/orderstack/inventory-service/internal/platform/migrations"
	platformobservability "github.com/orderstack/inventory-service/internal/platform/observability"
	platformpostgres "github.com/orderstack/inventory-service/internal/platform/postgres"
)

// Run boots the inventory HTTP API with observability, repositories, and the
// change-event fan-out wired.
func Run(ctx context.Context) error {
	const serviceName = "inventory-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	notifier := notify.NewNotifier(notify.WithLogger(logger))
	notifier.Subscribe(notify.NewLogListener(logger))
	if cleanupAMQP := connectAMQPListener(cfg, notifier, logger); cleanupAMQP != nil {
		defer cleanupAMQP()
	}

	catalogRepo := buildCatalogRepository(db)
	ordersRepo := buildOrdersRepository(db)
	usersRepo, err := buildUsersRepository(ctx, cfg, db)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo, notifier),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	engineOpts := []ordersapp.Option{
		ordersapp.WithPublisher(notifier),
		ordersapp.WithLogger(logger),
	}
	if cfg.LowStockThreshold > 0 {
		engineOpts = append(engineOpts, ordersapp.WithLowStockThreshold(cfg.LowStockThreshold))
	}
	ordersService := ordersobs.New(
		ordersapp.NewService(ordersRepo, catalogRepo, engineOpts...),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	usersService := usersapp.NewService(usersRepo)
	reportsService := reportsapp.NewService(catalogRepo, ordersRepo)

	router := newRouter(serviceName, catalogService, ordersService, usersService, reportsService)

	addr := ":" + cfg.Port
	logger.Info("inventory API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("inventory API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func newRouter(
	serviceName string,
	catalogService catalogports.Service,
	ordersService ordersports.Service,
	usersService usersports.Service,
	reportsService *reportsapp.Service,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	authenticated := router.Group("", usershttp.Authenticate(usersService))
	manageProducts := authenticated.Group("", usershttp.RequireRole(usersdomain.Role.CanManageProducts))
	manageOrders := authenticated.Group("", usershttp.RequireRole(usersdomain.Role.CanManageOrders))

	usershttp.NewHandler(usersService).Register(router)
	cataloghttp.NewHandler(catalogService).Register(router, manageProducts)
	ordershttp.NewHandler(ordersService).Register(manageOrders)
	reportshttp.NewHandler(reportsService).Register(authenticated)

	return router
}

func buildCatalogRepository(db *gorm.DB) catalogports.Repository {
	if db != nil {
		return catalogpostgres.NewRepository(db)
	}
	return catalogmemory.NewRepository()
}

func buildOrdersRepository(db *gorm.DB) ordersports.Repository {
	if db != nil {
		return orderspostgres.NewRepository(db)
	}
	return ordersmemory.NewRepository()
}

// buildUsersRepository wires the account store and guarantees the configured
// admin account exists so a fresh deployment is never locked out.
func buildUsersRepository(ctx context.Context, cfg Config, db *gorm.DB) (usersports.Repository, error) {
	var repo usersports.Repository
	if db != nil {
		repo = userspostgres.NewRepository(db)
	} else {
		repo = usersmemory.NewRepository()
	}
	if _, err := repo.GetByUsername(ctx, cfg.AdminUsername); err == nil {
		return repo, nil
	}
	admin, err := usersdomain.NewUser(0, cfg.AdminUsername, cfg.AdminPassword, usersdomain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if _, err := repo.Save(ctx, admin); err != nil {
		return nil, err
	}
	return repo, nil
}

func connectAMQPListener(cfg Config, notifier *notify.Notifier, logger *slog.Logger) func() {
	if cfg.AMQPURL == "" {
		return nil
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Warn("AMQP unavailable, change events stay local", slog.String("error", err.Error()))
		return nil
	}
	listener, err := notify.NewAMQPListener(conn)
	if err != nil {
		logger.Warn("AMQP listener setup failed, change events stay local", slog.String("error", err.Error()))
		_ = conn.Close()
		return nil
	}
	notifier.Subscribe(listener)
	logger.Info("AMQP change-event listener enabled", slog.String("exchange", notify.EventsExchange))
	return func() {
		_ = listener.Close()
		_ = conn.Close()
	}
}
