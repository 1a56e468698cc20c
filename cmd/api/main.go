package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/orders"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/cache"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// txRunner transacciones de ventas y órdenes (postgres o memoria).
type txRunner interface {
	sales.SalesTxRunner
	orders.OrdersTxRunner
}

// storage repositorios del backend elegido con STORAGE_DRIVER.
type storage struct {
	products  repository.ProductRepository
	clients   repository.ClientRepository
	orders    repository.OrderRepository
	sales     repository.SaleRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	tx        txRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de reportes")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Cache de reportes opcional: sin REDIS_URL se calcula siempre.
	var (
		weeklyCache appanalytics.WeeklySalesCache
		invalidator sales.ReportInvalidator
	)
	if cfg.Redis.URL != "" {
		reportCache, err := cache.NewReportCache(ctx, cfg.Redis.URL, cfg.Redis.ReportTTL, log.Component("cache"))
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, reportes sin cache")
		} else {
			defer reportCache.Close()
			weeklyCache = reportCache
			invalidator = reportCache
		}
	}

	stock := inventory.NewStockService(store.products)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Backoffice API",
	}))

	app.Get("/health", httpRouter.Health)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   usecase.NewProductUseCase(store.products),
		ClientUC:    usecase.NewClientUseCase(store.clients),
		UserUC:      usecase.NewUserUseCase(store.users),
		Stock:       stock,
		CreateOrder: orders.NewCreateOrderUseCase(store.tx, stock, store.clients),
		Lifecycle:   orders.NewLifecycleUseCase(store.tx, stock),
		OrderQuery:  orders.NewQueryUseCase(store.orders),
		CreateSale:  sales.NewCreateSaleUseCase(store.tx, stock, store.clients, invalidator),
		SaleQuery:   sales.NewQueryUseCase(store.sales, loc),
		WeeklySales: appanalytics.NewWeeklySalesUseCase(store.analytics, weeklyCache, loc),
		Dashboard:   appanalytics.NewDashboardUseCase(store.analytics, stock),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el backend configurado. Con postgres y MIGRATE_ON_START aplica
// las migraciones embebidas antes de crear el pool.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			products:  memory.NewProductRepository(s),
			clients:   memory.NewClientRepository(s),
			orders:    memory.NewOrderRepository(s),
			sales:     memory.NewSaleRepository(s),
			users:     memory.NewUserRepository(s),
			analytics: memory.NewAnalyticsRepository(s),
			tx:        memory.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	if cfg.Storage.MigrateOnStart {
		if err := migrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return postgresStorage(pool), nil
}

func postgresStorage(pool *pgxpool.Pool) *storage {
	return &storage{
		products:  postgres.NewProductRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}
}

func migrateUp(dsn string) error {
	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
