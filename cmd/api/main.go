package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/anbar/anbar-api/docs"
	appanalytics "github.com/anbar/anbar-api/internal/application/analytics"
	"github.com/anbar/anbar-api/internal/application/auth"
	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/application/usecase"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
	"github.com/anbar/anbar-api/internal/infrastructure/observability"
	infrapdf "github.com/anbar/anbar-api/internal/infrastructure/pdf"
	"github.com/anbar/anbar-api/internal/infrastructure/postgres"
	httpRouter "github.com/anbar/anbar-api/internal/interfaces/http"
	"github.com/anbar/anbar-api/pkg/config"
	"github.com/anbar/anbar-api/pkg/logger"
)

// @title                       Anbar API
// @version                     1.0
// @description                 Almacén, catálogo jerárquico y facturación.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization

// storage repositorios del driver elegido.
type storage struct {
	repos     ports.Repos
	tx        ports.TxRunner
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos no se persisten")
		db := memory.NewDB()
		return &storage{
			repos:     db.Repos(),
			tx:        memory.NewTxRunner(db),
			users:     memory.NewUserRepository(db),
			analytics: memory.NewAnalyticsRepository(db),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &storage{
		repos:     postgres.NewRepos(pool),
		tx:        postgres.NewTxRunner(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	metrics := observability.NewCollector("anbar")
	repos := store.repos

	catalogStore := catalog.NewStore(repos.Categories, repos.Products, log.Component("catalog"), metrics)
	defer catalogStore.Close()
	if err := catalogStore.Warm(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}

	discountUC := usecase.NewDiscountUseCase(repos.Discounts, store.tx)
	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		CategoryUC:    usecase.NewCategoryUseCase(repos.Categories, repos.Products, catalogStore),
		ProductUC:     usecase.NewProductUseCase(repos.Products, store.tx, catalogStore),
		WarehouseUC:   usecase.NewWarehouseUseCase(repos.Stock),
		DiscountUC:    discountUC,
		ActivityLogUC: usecase.NewActivityLogUseCase(repos.Logs),
		AdminUC:       usecase.NewAdminUseCase(store.users, repos.Logs, log.Component("admin")),
		Browser:       catalog.NewBrowserUseCase(catalogStore),
		Mover:         catalog.NewMoveUseCase(catalogStore, store.tx, log.Component("catalog"), metrics),
		CustomerUC:    billing.NewCustomerUseCase(repos.Customers),
		SalesUC:       billing.NewInvoiceUseCase(entity.InvoiceSale, repos.Invoices, store.tx, log.Component("sales")),
		PurchasesUC:   billing.NewInvoiceUseCase(entity.InvoicePurchase, repos.Invoices, store.tx, log.Component("purchases")),
		PDFUC:         billing.NewPDFUseCase(repos.Invoices, repos.Customers, infrapdf.NewMarotoPDFGenerator(cfg.App.Name)),
		DashboardUC:   appanalytics.NewDashboardUseCase(store.analytics),
		JWTSecret:     cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.Metrics(metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Anbar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, deps)

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
