package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Inventario-analytics/internal/application/analytics"
	"github.com/jhoicas/Inventario-analytics/internal/application/auth"
	appbarcode "github.com/jhoicas/Inventario-analytics/internal/application/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ItemUC           *inventory.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockCount       *inventory.StockCountUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	AnalyticsUC      *appanalytics.AnalyticsUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	BarcodeUC        *appbarcode.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
//
// Reportes, dashboard y etiquetas son solo para admin y manager; la operación diaria
// (ítems, movimientos, conteos, escaneo) está abierta a todos los roles autenticados.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	reports := RequireRole(entity.RoleAdmin, entity.RoleManager)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff)

	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.RegisterMovement, deps.StockCount, deps.Replenishment)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)

	// Inventario
	invGroup := protected.Group("/inventory")
	invGroup.Get("/items", anyRole, inventoryHandler.ListItems)
	invGroup.Get("/items/:id", anyRole, inventoryHandler.GetItem)
	invGroup.Post("/items/:id/count", anyRole, inventoryHandler.RecordCount)
	invGroup.Post("/movements", anyRole, inventoryHandler.RegisterMovement)
	invGroup.Get("/reorder-suggestions", reports, inventoryHandler.GetReorderSuggestions)
	invGroup.Get("/metrics", reports, analyticsHandler.GetMetrics)
	invGroup.Get("/abc", reports, analyticsHandler.GetABCReport)
	invGroup.Get("/items/:id/analytics", reports, analyticsHandler.GetItemAnalytics)

	// Recetas
	protected.Get("/recipes/:id/cost", reports, analyticsHandler.GetRecipeCost)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", reports, dashboardHandler.GetSummary)

	// Códigos de barras
	barcodeHandler := NewBarcodeHandler(deps.BarcodeUC)
	barcodes := protected.Group("/barcodes")
	barcodes.Post("/labels", reports, barcodeHandler.GenerateLabels)
	barcodes.Get("/:code/validate", anyRole, barcodeHandler.Validate)
	barcodes.Get("/:code/lookup", anyRole, barcodeHandler.Lookup)
	barcodes.Get("/:code/gs1", anyRole, barcodeHandler.ParseGS1)

	// Sesiones de escaneo
	sessions := protected.Group("/scan-sessions", anyRole)
	sessions.Post("/", barcodeHandler.StartSession)
	sessions.Get("/:id", barcodeHandler.GetSession)
	sessions.Post("/:id/scans", barcodeHandler.AddScan)
	sessions.Post("/:id/end", barcodeHandler.EndSession)

	// Analítica de escaneo
	protected.Get("/scan-analytics", reports, barcodeHandler.GetScanAnalytics)
	protected.Post("/scan-analytics/attempts", anyRole, barcodeHandler.RecordAttempt)
}
