package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DaysPerYear base anual para demanda EOQ y ventana ABC.
const DaysPerYear = 365

var (
	// DefaultOrderingCost costo fijo asumido por pedido (S en la fórmula EOQ).
	DefaultOrderingCost = decimal.NewFromInt(50)
	// DefaultHoldingRate tasa anual de costo de mantener inventario (20% del costo unitario).
	DefaultHoldingRate = decimal.NewFromFloat(0.20)
)

// ReorderParams parámetros de costo para el cálculo de cantidad de pedido.
type ReorderParams struct {
	OrderingCost decimal.Decimal
	HoldingRate  decimal.Decimal
}

// DefaultReorderParams devuelve $50 por pedido y 20% anual de mantenimiento.
func DefaultReorderParams() ReorderParams {
	return ReorderParams{OrderingCost: DefaultOrderingCost, HoldingRate: DefaultHoldingRate}
}

// WithDefaults reemplaza costos no positivos por los valores por defecto.
func (p ReorderParams) WithDefaults() ReorderParams {
	if !p.OrderingCost.IsPositive() {
		p.OrderingCost = DefaultOrderingCost
	}
	if !p.HoldingRate.IsPositive() {
		p.HoldingRate = DefaultHoldingRate
	}
	return p
}

// AverageDailyUsage uso diario promedio (ventas + consumos) en los últimos `days` días.
func AverageDailyUsage(movements []entity.StockMovement, days int, now time.Time) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return usageBetween(movements, windowStart(now, days), now).Div(decimal.NewFromInt(int64(days)))
}

// MaxDailyUsage mayor uso (ventas + consumos) de un solo día dentro de los últimos `days` días.
// Los días se cuentan hacia atrás desde now en bloques de 24 horas.
func MaxDailyUsage(movements []entity.StockMovement, days int, now time.Time) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	from := windowStart(now, days)
	perDay := make(map[int64]decimal.Decimal)
	for _, m := range movements {
		if !m.IsUsage() || !m.Within(from, now) {
			continue
		}
		day := int64(now.Sub(m.CreatedAt) / (24 * time.Hour))
		perDay[day] = perDay[day].Add(m.Quantity.Abs())
	}
	peak := decimal.Zero
	for _, q := range perDay {
		peak = decimal.Max(peak, q)
	}
	return peak
}

// SafetyStock = (uso máx × lead time máx) - (uso prom × lead time prom), con piso en cero.
func SafetyStock(maxDailyUsage, maxLeadTime, avgDailyUsage, avgLeadTime decimal.Decimal) decimal.Decimal {
	return floorZero(maxDailyUsage.Mul(maxLeadTime).Sub(avgDailyUsage.Mul(avgLeadTime)))
}

// ReorderPoint = uso diario × lead time + stock de seguridad, con piso en cero.
func ReorderPoint(avgDailyUsage decimal.Decimal, leadTimeDays int, safetyStock decimal.Decimal) decimal.Decimal {
	return floorZero(avgDailyUsage.Mul(decimal.NewFromInt(int64(leadTimeDays))).Add(safetyStock))
}

// EconomicOrderQuantity = √(2·D·S / H) con H = costo unitario × tasa de mantenimiento.
// Devuelve cero si algún término no es positivo.
func EconomicOrderQuantity(annualDemand, orderingCost, unitCost, holdingRate decimal.Decimal) decimal.Decimal {
	holding := unitCost.Mul(holdingRate)
	if !annualDemand.IsPositive() || !orderingCost.IsPositive() || !holding.IsPositive() {
		return decimal.Zero
	}
	// decimal no tiene raíz cuadrada; la precisión de float64 sobra para cantidades de pedido.
	ratio := annualDemand.Mul(decimal.NewFromInt(2)).Mul(orderingCost).Div(holding).InexactFloat64()
	return decimal.NewFromFloat(math.Sqrt(ratio))
}

// ReorderQuantity cantidad sugerida de pedido para el ítem.
// Si el ítem tiene override manual se devuelve tal cual. Si no, el máximo entre
// EOQ, (stock máximo - actual) y (punto de reorden - actual), redondeado hacia arriba y con piso en cero.
func ReorderQuantity(item entity.InventoryItem, avgDailyUsage decimal.Decimal, params ReorderParams) decimal.Decimal {
	if item.HasManualReorderQuantity() {
		return item.ReorderQuantity
	}
	p := params.WithDefaults()
	annualDemand := avgDailyUsage.Mul(decimal.NewFromInt(DaysPerYear))
	eoq := EconomicOrderQuantity(annualDemand, p.OrderingCost, item.EffectiveCost(), p.HoldingRate)
	toMax := item.MaxStock.Sub(item.CurrentStock)
	toReorderPoint := item.ReorderPoint.Sub(item.CurrentStock)
	return floorZero(decimal.Max(eoq, toMax, toReorderPoint)).Ceil()
}

// NeedsReorder indica si el stock actual alcanzó el punto de reorden
// (o el stock mínimo cuando el ítem no define punto de reorden).
func NeedsReorder(item entity.InventoryItem) bool {
	threshold := item.ReorderPoint
	if !threshold.IsPositive() {
		threshold = item.MinStock
	}
	if !threshold.IsPositive() {
		return !item.CurrentStock.IsPositive()
	}
	return item.CurrentStock.LessThanOrEqual(threshold)
}

// usageBetween suma |cantidad| de ventas y consumos en [from, to].
func usageBetween(movements []entity.StockMovement, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsUsage() && m.Within(from, to) {
			total = total.Add(m.Quantity.Abs())
		}
	}
	return total
}
