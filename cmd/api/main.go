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
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/Inventario-analytics/internal/application/analytics"
	"github.com/jhoicas/Inventario-analytics/internal/application/auth"
	appbarcode "github.com/jhoicas/Inventario-analytics/internal/application/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	domainbc "github.com/jhoicas/Inventario-analytics/internal/domain/barcode"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/Inventario-analytics/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-analytics/internal/interfaces/http"
	"github.com/jhoicas/Inventario-analytics/pkg/config"
	"github.com/jhoicas/Inventario-analytics/pkg/logger"
)

// repositories implementación de persistencia elegida por DB_DRIVER.
type repositories struct {
	items     repository.ItemRepository
	movements repository.StockMovementRepository
	waste     repository.WasteLogRepository
	recipes   repository.RecipeRepository
	users     repository.UserRepository
	tx        inventory.TxRunner
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var repos repositories
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		repos = memoryRepositories(memory.NewStore())
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repos = postgresRepositories(pool)
	}

	settings := inventory.Settings{
		Reorder: domaininv.ReorderParams{
			OrderingCost: decimal.NewFromFloat(cfg.Analytics.OrderingCost),
			HoldingRate:  decimal.NewFromFloat(cfg.Analytics.HoldingRate),
		}.WithDefaults(),
		UsageWindowDays: cfg.Analytics.UsageWindowDays,
		PeriodDays:      cfg.Analytics.PeriodDays,
		LeadTimeDays:    cfg.Analytics.LeadTimeDays,
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.tx)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.items, repos.movements, settings)
	analyticsUC := appanalytics.NewAnalyticsUseCase(repos.items, repos.movements, repos.waste, repos.recipes, settings)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsUC, replenishmentUC, log)

	// Sesiones y analítica de escaneo viven en memoria del proceso.
	sessions := domainbc.NewSessionManager(cfg.Scanner.MaxActiveSessions)
	sessions.SetExpiry(
		time.Duration(cfg.Scanner.SessionIdleMin)*time.Minute,
		time.Duration(cfg.Scanner.SessionRetainMin)*time.Minute,
	)
	barcodeUC := appbarcode.NewUseCase(
		repos.items,
		sessions,
		domainbc.NewScanAnalytics(cfg.Scanner.MaxAttempts, cfg.Scanner.TopCodes),
		infrapdf.NewMarotoLabelGenerator(cfg.App.Name),
	)
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario Analytics API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ItemUC:           inventory.NewItemUseCase(repos.items),
		RegisterMovement: registerMovementUC,
		StockCount:       inventory.NewStockCountUseCase(repos.items, repos.movements, registerMovementUC),
		Replenishment:    replenishmentUC,
		AnalyticsUC:      analyticsUC,
		DashboardUC:      dashboardUC,
		BarcodeUC:        barcodeUC,
		JWTSecret:        cfg.JWT.Secret,
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

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		items:     postgres.NewItemRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		waste:     postgres.NewWasteLogRepository(pool),
		recipes:   postgres.NewRecipeRepository(pool),
		users:     postgres.NewUserRepository(pool),
		tx:        postgres.NewTxRunner(pool),
	}
}

func memoryRepositories(store *memory.Store) repositories {
	return repositories{
		items:     memory.NewItemRepository(store),
		movements: memory.NewStockMovementRepository(store),
		waste:     memory.NewWasteLogRepository(store),
		recipes:   memory.NewRecipeRepository(store),
		users:     memory.NewUserRepository(store),
		tx:        memory.NewTxRunner(store),
	}
}
