package inventory

import (
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Ventanas por defecto (días) para rotación y merma.
const (
	DefaultTurnoverPeriodDays  = 30
	DefaultShrinkagePeriodDays = 30
)

// TurnoverRate = uso del período / stock actual.
// Usa el stock actual y no el promedio del período; es una simplificación aceptada.
// Solo considera movimientos del ítem; devuelve cero si el stock actual es cero.
func TurnoverRate(item entity.InventoryItem, movements []entity.StockMovement, periodDays int, now time.Time) decimal.Decimal {
	if !item.CurrentStock.IsPositive() || periodDays <= 0 {
		return decimal.Zero
	}
	own := make([]entity.StockMovement, 0, len(movements))
	for _, m := range movements {
		if m.ItemID == item.ID {
			own = append(own, m)
		}
	}
	usage := usageBetween(own, windowStart(now, periodDays), now)
	return usage.Div(item.CurrentStock).Round(4)
}

// ShrinkageRate = cantidad mermada / cantidad comprada × 100 en la ventana.
// Los registros de merma son la fuente si hay alguno en la ventana; si no, se usan
// los movimientos tipo waste (registrar una merma genera ambos).
func ShrinkageRate(movements []entity.StockMovement, wasteLogs []entity.WasteLog, periodDays int, now time.Time) decimal.Decimal {
	if periodDays <= 0 {
		return decimal.Zero
	}
	from := windowStart(now, periodDays)

	purchased := decimal.Zero
	wasteFromMovements := decimal.Zero
	for _, m := range movements {
		if !m.Within(from, now) {
			continue
		}
		switch m.Type {
		case entity.MovementPurchase:
			purchased = purchased.Add(m.Quantity.Abs())
		case entity.MovementWaste:
			wasteFromMovements = wasteFromMovements.Add(m.Quantity.Abs())
		}
	}
	if !purchased.IsPositive() {
		return decimal.Zero
	}

	wasted := wasteFromMovements
	logged, found := wasteQuantityBetween(wasteLogs, from, now)
	if found {
		wasted = logged
	}
	return wasted.Div(purchased).Mul(hundred).Round(2)
}

// DaysOfStock días de cobertura con el uso promedio; -1 si no hay uso (cobertura infinita).
func DaysOfStock(current, avgDailyUsage decimal.Decimal) decimal.Decimal {
	if !avgDailyUsage.IsPositive() {
		return decimal.NewFromInt(-1)
	}
	return floorZero(current).Div(avgDailyUsage).Round(1)
}

func wasteQuantityBetween(logs []entity.WasteLog, from, to time.Time) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false
	for _, w := range logs {
		if w.RecordedAt.Before(from) || w.RecordedAt.After(to) {
			continue
		}
		found = true
		total = total.Add(w.Quantity.Abs())
	}
	return total, found
}
