package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-analytics/internal/application/analytics"
	appinv "github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/Inventario-analytics/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-analytics/pkg/logger"
)

const company = "c1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}

// newStore: tomate con compras, ventas y merma; queso agotado pero con ventas; aceite sobre el máximo.
func newStore() *memory.Store {
	now := time.Now()
	s := memory.NewStore()
	s.AddItems(
		entity.InventoryItem{ID: "tomate", CompanyID: company, SKU: "TOM", Name: "Tomate", Unit: "kg",
			CurrentStock: dec("20"), MinStock: dec("5"), MaxStock: dec("100"), CostPrice: dec("2"), IsActive: true},
		entity.InventoryItem{ID: "queso", CompanyID: company, SKU: "QUE", Name: "Queso", Unit: "kg",
			CurrentStock: dec("0"), CostPrice: dec("10"), IsActive: true},
		entity.InventoryItem{ID: "aceite", CompanyID: company, SKU: "ACE", Name: "Aceite", Unit: "l",
			CurrentStock: dec("200"), MaxStock: dec("100"), CostPrice: dec("1"), IsActive: true},
		entity.InventoryItem{ID: "ajeno", CompanyID: "c2", SKU: "AJ", Name: "Ajeno", CurrentStock: dec("1"), IsActive: true},
	)
	s.AddMovements(entity.StockMovement{CompanyID: company, ItemID: "tomate", Type: entity.MovementPurchase,
		Quantity: dec("40"), UnitCost: dec("2"), CreatedAt: now.AddDate(0, 0, -5)})
	for d := 1; d <= 10; d++ {
		s.AddMovements(entity.StockMovement{CompanyID: company, ItemID: "tomate", Type: entity.MovementSale,
			Quantity: dec("2"), CreatedAt: now.AddDate(0, 0, -d).Add(-time.Hour)})
	}
	s.AddMovements(entity.StockMovement{CompanyID: company, ItemID: "queso", Type: entity.MovementSale,
		Quantity: dec("10"), CreatedAt: now.AddDate(0, 0, -2)})
	s.AddWasteLogs(entity.WasteLog{CompanyID: company, ItemID: "tomate", Quantity: dec("4"), UnitCost: dec("2"),
		TotalCost: dec("8"), Reason: "maduro", RecordedAt: now.AddDate(0, 0, -3)})
	s.AddRecipes(entity.Recipe{ID: "pizza", CompanyID: company, Name: "Pizza", Portions: 2, SellingPrice: dec("5"),
		Ingredients: []entity.RecipeIngredient{
			{ItemID: "tomate", Quantity: dec("0.5")},
			{ItemID: "queso", Quantity: dec("0.2")},
		}})
	return s
}

func newAnalytics(s *memory.Store, movements repository.StockMovementRepository) *analytics.AnalyticsUseCase {
	if movements == nil {
		movements = memory.NewStockMovementRepository(s)
	}
	return analytics.NewAnalyticsUseCase(
		memory.NewItemRepository(s),
		movements,
		memory.NewWasteLogRepository(s),
		memory.NewRecipeRepository(s),
		appinv.DefaultSettings(),
	)
}

func TestGetMetrics(t *testing.T) {
	m, err := newAnalytics(newStore(), nil).GetMetrics(context.Background(), company)
	require.NoError(t, err)

	assert.Equal(t, 3, m.TotalItems)
	assertDec(t, "240", m.TotalValue)
	assert.Equal(t, 1, m.OutOfStockCount)
	assert.Equal(t, 1, m.OverstockCount)
	assert.Equal(t, 0, m.LowStockCount)
	assert.Equal(t, 1, m.ReorderCount)
	assertDec(t, "8", m.WasteCost)
	assertDec(t, "10", m.ShrinkageRate) // 4 mermados / 40 comprados
	assertDec(t, "0.5", m.AverageTurnoverRate)
	assert.Equal(t, 30, m.PeriodDays)
}

func TestGetABCReport(t *testing.T) {
	r, err := newAnalytics(newStore(), nil).GetABCReport(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, r.Items, 3)

	assert.Equal(t, "queso", r.Items[0].ItemID)
	assert.Equal(t, "A", r.Items[0].Class)
	assertDec(t, "100", r.Items[0].AnnualValue)
	assert.Equal(t, "tomate", r.Items[1].ItemID)
	assert.Equal(t, "C", r.Items[1].Class)

	require.Len(t, r.Summary, 3)
	assert.Equal(t, "A", r.Summary[0].Class)
	assert.Equal(t, 1, r.Summary[0].ItemCount)
	assert.Equal(t, 2, r.Summary[2].ItemCount)
}

func TestGetItemAnalytics(t *testing.T) {
	uc := newAnalytics(newStore(), nil)
	a, err := uc.GetItemAnalytics(context.Background(), company, "tomate")
	require.NoError(t, err)

	assertDec(t, "0", a.OpeningStock) // 20 - 40 comprados + 20 vendidos
	assertDec(t, "0.6667", a.AverageDailyUsage)
	assertDec(t, "2", a.MaxDailyUsage)
	assert.Equal(t, appinv.DefaultLeadTimeDays, a.LeadTimeDays)
	assertDec(t, "9.33", a.SafetyStock) // 2·7 - (20/30)·7
	assertDec(t, "30", a.DaysOfStock)
	assertDec(t, "1", a.TurnoverRate)
	assertDec(t, "10", a.ShrinkageRate)
	assertDec(t, "8", a.WasteCost)
	assert.Equal(t, "C", a.ABCClass)
	assert.True(t, a.EOQ.IsPositive())

	_, err = uc.GetItemAnalytics(context.Background(), company, "ajeno")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetItemAnalytics(context.Background(), company, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetItemAnalytics_VentanaDeConsumoMayorAUnAnio(t *testing.T) {
	s := newStore()
	s.AddMovements(entity.StockMovement{CompanyID: company, ItemID: "aceite", Type: entity.MovementConsumption,
		Quantity: dec("40"), CreatedAt: time.Now().AddDate(0, 0, -380)})

	settings := appinv.DefaultSettings()
	settings.UsageWindowDays = 400
	assert.Equal(t, 400, settings.MovementWindowDays())

	uc := analytics.NewAnalyticsUseCase(
		memory.NewItemRepository(s),
		memory.NewStockMovementRepository(s),
		memory.NewWasteLogRepository(s),
		memory.NewRecipeRepository(s),
		settings,
	)
	a, err := uc.GetItemAnalytics(context.Background(), company, "aceite")
	require.NoError(t, err)
	assertDec(t, "0.1", a.AverageDailyUsage) // 40 / 400
}

func TestGetRecipeCost(t *testing.T) {
	uc := newAnalytics(newStore(), nil)
	c, err := uc.GetRecipeCost(context.Background(), company, "pizza")
	require.NoError(t, err)

	assertDec(t, "3", c.TotalCost) // 0.5·2 + 0.2·10
	assertDec(t, "1.5", c.CostPerPortion)
	assertDec(t, "30", c.FoodCostPct)
	require.Len(t, c.Lines, 2)

	_, err = uc.GetRecipeCost(context.Background(), "c2", "pizza")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetRecipeCost(context.Background(), company, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// shortWindowOnly falla en consultas de más de 60 días (ABC y reposición usan 365).
type shortWindowOnly struct {
	repository.StockMovementRepository
}

func (r shortWindowOnly) ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]entity.StockMovement, error) {
	if to.Sub(from) > 60*24*time.Hour {
		return nil, errors.New("ventana no disponible")
	}
	return r.StockMovementRepository.ListByCompany(ctx, companyID, from, to)
}

func newDashboard(s *memory.Store, movements repository.StockMovementRepository) *analytics.DashboardUseCase {
	if movements == nil {
		movements = memory.NewStockMovementRepository(s)
	}
	replenishment := appinv.NewReplenishmentUseCase(memory.NewItemRepository(s), movements, appinv.DefaultSettings())
	return analytics.NewDashboardUseCase(newAnalytics(s, movements), replenishment, logger.Nop())
}

func TestDashboard_GetSummary(t *testing.T) {
	out, err := newDashboard(newStore(), nil).GetSummary(context.Background(), company)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Metrics.TotalItems)
	assert.Len(t, out.ABC, 3)
	require.Len(t, out.TopReorder, 1)
	assert.Equal(t, "queso", out.TopReorder[0].ItemID)
	assert.NotEmpty(t, out.DateLabel)
}

func TestDashboard_DegradaSinABCNiReposicion(t *testing.T) {
	s := newStore()
	out, err := newDashboard(s, shortWindowOnly{memory.NewStockMovementRepository(s)}).GetSummary(context.Background(), company)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Metrics.TotalItems)
	assert.NotNil(t, out.ABC)
	assert.Empty(t, out.ABC)
	assert.NotNil(t, out.TopReorder)
	assert.Empty(t, out.TopReorder)
}
