// Package inventory agrupa los servicios de dominio de analítica de inventario:
// stock teórico, varianzas, reorden/EOQ, clasificación ABC, rotación, merma y valorización.
// Todas las funciones son puras; el instante de referencia (now) se recibe como parámetro.
package inventory

import (
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SignedQuantity devuelve el efecto del movimiento sobre el stock:
// compra/ajuste/devolución suman la cantidad registrada; venta/consumo/merma/traslado restan su valor absoluto.
func SignedQuantity(m entity.StockMovement) decimal.Decimal {
	switch m.Type {
	case entity.MovementPurchase, entity.MovementAdjustment, entity.MovementReturn:
		return m.Quantity
	case entity.MovementSale, entity.MovementConsumption, entity.MovementWaste, entity.MovementTransfer:
		return m.Quantity.Abs().Neg()
	}
	return decimal.Zero
}

// TheoreticalStock = stock inicial + Σ cantidades con signo, con piso en cero.
func TheoreticalStock(start decimal.Decimal, movements []entity.StockMovement) decimal.Decimal {
	stock := start
	for _, m := range movements {
		stock = stock.Add(SignedQuantity(m))
	}
	return floorZero(stock)
}

// OpeningStock reconstruye el stock al inicio de la ventana de `days` días restando
// al stock actual el efecto de los movimientos posteriores (sin piso).
func OpeningStock(current decimal.Decimal, movements []entity.StockMovement, days int, now time.Time) decimal.Decimal {
	from := windowStart(now, days)
	stock := current
	for _, m := range movements {
		if m.Within(from, now) {
			stock = stock.Sub(SignedQuantity(m))
		}
	}
	return stock
}

// Variance resultado de comparar un conteo físico contra el stock teórico.
type Variance struct {
	Actual             decimal.Decimal
	Theoretical        decimal.Decimal
	QuantityVariance   decimal.Decimal // Actual - Theoretical
	ValueVariance      decimal.Decimal // QuantityVariance × costo
	PercentageVariance decimal.Decimal // QuantityVariance / Theoretical × 100 (0 si Theoretical = 0)
}

// StockVariance calcula la varianza de cantidad, valor y porcentaje.
func StockVariance(actual, theoretical, unitCost decimal.Decimal) Variance {
	qty := actual.Sub(theoretical)
	pct := decimal.Zero
	if !theoretical.IsZero() {
		pct = qty.Div(theoretical).Mul(hundred).Round(2)
	}
	return Variance{
		Actual:             actual,
		Theoretical:        theoretical,
		QuantityVariance:   qty,
		ValueVariance:      qty.Mul(unitCost),
		PercentageVariance: pct,
	}
}

// windowStart inicio de la ventana móvil de `days` días que termina en now.
func windowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// GroupByItem indexa movimientos por ItemID conservando el orden original.
func GroupByItem(movements []entity.StockMovement) map[string][]entity.StockMovement {
	out := make(map[string][]entity.StockMovement)
	for _, m := range movements {
		out[m.ItemID] = append(out[m.ItemID], m)
	}
	return out
}

// GroupWasteByItem indexa registros de merma por ItemID.
func GroupWasteByItem(logs []entity.WasteLog) map[string][]entity.WasteLog {
	out := make(map[string][]entity.WasteLog)
	for _, w := range logs {
		out[w.ItemID] = append(out[w.ItemID], w)
	}
	return out
}
