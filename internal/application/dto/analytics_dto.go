package dto

import "github.com/shopspring/decimal"

// ── Métricas generales ────────────────────────────────────────────────────────

// InventoryMetricsDTO respuesta de GET /api/inventory/metrics.
type InventoryMetricsDTO struct {
	TotalItems          int             `json:"total_items"`
	TotalValue          decimal.Decimal `json:"total_value"`
	LowStockCount       int             `json:"low_stock_count"`
	OutOfStockCount     int             `json:"out_of_stock_count"`
	OverstockCount      int             `json:"overstock_count"`
	ReorderCount        int             `json:"reorder_count"`
	WasteCost           decimal.Decimal `json:"waste_cost"`            // período de merma
	ShrinkageRate       decimal.Decimal `json:"shrinkage_rate"`        // %
	AverageTurnoverRate decimal.Decimal `json:"average_turnover_rate"` // promedio de ítems con stock
	PeriodDays          int             `json:"period_days"`
}

// ── ABC ───────────────────────────────────────────────────────────────────────

// ABCItemDTO clasificación de un ítem.
type ABCItemDTO struct {
	ItemID        string          `json:"item_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	AnnualUsage   decimal.Decimal `json:"annual_usage"`
	AnnualValue   decimal.Decimal `json:"annual_value"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	Class         string          `json:"class"`
}

// ABCSummaryDTO totales por clase.
type ABCSummaryDTO struct {
	Class      string          `json:"class"`
	ItemCount  int             `json:"item_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	ValuePct   decimal.Decimal `json:"value_pct"`
}

// ABCReportDTO respuesta de GET /api/inventory/abc.
type ABCReportDTO struct {
	Items   []ABCItemDTO    `json:"items"`
	Summary []ABCSummaryDTO `json:"summary"`
}

// ── Por ítem ──────────────────────────────────────────────────────────────────

// ItemAnalyticsDTO respuesta de GET /api/inventory/items/:id/analytics.
type ItemAnalyticsDTO struct {
	Item              ItemDTO         `json:"item"`
	OpeningStock      decimal.Decimal `json:"opening_stock"` // stock reconstruido al inicio del período
	AverageDailyUsage decimal.Decimal `json:"average_daily_usage"`
	MaxDailyUsage     decimal.Decimal `json:"max_daily_usage"`
	LeadTimeDays      int             `json:"lead_time_days"`
	SafetyStock       decimal.Decimal `json:"safety_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"` // calculado
	EOQ               decimal.Decimal `json:"eoq"`
	ReorderQuantity   decimal.Decimal `json:"reorder_quantity"`
	TurnoverRate      decimal.Decimal `json:"turnover_rate"`
	ShrinkageRate     decimal.Decimal `json:"shrinkage_rate"`
	DaysOfStock       decimal.Decimal `json:"days_of_stock"`
	WasteCost         decimal.Decimal `json:"waste_cost"`
	ABCClass          string          `json:"abc_class"`
	PeriodDays        int             `json:"period_days"`
}

// ── Recetas ───────────────────────────────────────────────────────────────────

// RecipeLineDTO costo de un ingrediente.
type RecipeLineDTO struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// RecipeCostDTO respuesta de GET /api/recipes/:id/cost.
type RecipeCostDTO struct {
	RecipeID       string          `json:"recipe_id"`
	Name           string          `json:"name"`
	Portions       int             `json:"portions"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	CostPerPortion decimal.Decimal `json:"cost_per_portion"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	FoodCostPct    decimal.Decimal `json:"food_cost_pct"`
	Lines          []RecipeLineDTO `json:"lines"`
}
