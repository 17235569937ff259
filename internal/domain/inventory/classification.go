package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Clases ABC.
const (
	ClassA = "A"
	ClassB = "B"
	ClassC = "C"
)

var (
	thresholdA = decimal.NewFromInt(80) // acumulado ≤ 80% → A
	thresholdB = decimal.NewFromInt(95) // acumulado ≤ 95% → B
)

// ABCResult clasificación de un ítem por contribución al valor de uso anual.
type ABCResult struct {
	ItemID        string
	SKU           string
	Name          string
	AnnualUsage   decimal.Decimal // unidades vendidas/consumidas en los últimos 365 días
	AnnualValue   decimal.Decimal // AnnualUsage × costo efectivo
	CumulativePct decimal.Decimal // % acumulado del valor total, orden descendente
	Class         string
}

// ClassifyABC ordena los ítems por valor de uso anual descendente y asigna clase por
// percentil acumulado. Si el valor total es cero todos los ítems quedan en C.
func ClassifyABC(items []entity.InventoryItem, movements []entity.StockMovement, now time.Time) []ABCResult {
	if len(items) == 0 {
		return []ABCResult{}
	}
	from := windowStart(now, DaysPerYear)
	usageByItem := make(map[string]decimal.Decimal, len(items))
	for _, m := range movements {
		if m.IsUsage() && m.Within(from, now) {
			usageByItem[m.ItemID] = usageByItem[m.ItemID].Add(m.Quantity.Abs())
		}
	}

	results := make([]ABCResult, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		usage := usageByItem[it.ID]
		value := usage.Mul(it.EffectiveCost())
		total = total.Add(value)
		results = append(results, ABCResult{
			ItemID:      it.ID,
			SKU:         it.SKU,
			Name:        it.Name,
			AnnualUsage: usage,
			AnnualValue: value,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].AnnualValue.Equal(results[j].AnnualValue) {
			return results[i].AnnualValue.GreaterThan(results[j].AnnualValue)
		}
		return results[i].SKU < results[j].SKU
	})

	if !total.IsPositive() {
		for i := range results {
			results[i].Class = ClassC
		}
		return results
	}

	cumulative := decimal.Zero
	for i := range results {
		cumulative = cumulative.Add(results[i].AnnualValue)
		pct := cumulative.Div(total).Mul(hundred)
		results[i].CumulativePct = pct.Round(2)
		results[i].Class = classFor(pct)
	}
	return results
}

func classFor(cumulativePct decimal.Decimal) string {
	switch {
	case cumulativePct.LessThanOrEqual(thresholdA):
		return ClassA
	case cumulativePct.LessThanOrEqual(thresholdB):
		return ClassB
	default:
		return ClassC
	}
}

// ABCSummary totales por clase.
type ABCSummary struct {
	Class      string
	ItemCount  int
	TotalValue decimal.Decimal
	ValuePct   decimal.Decimal
}

// SummarizeABC agrupa los resultados por clase (siempre A, B, C en ese orden).
func SummarizeABC(results []ABCResult) []ABCSummary {
	summary := []ABCSummary{{Class: ClassA}, {Class: ClassB}, {Class: ClassC}}
	index := map[string]int{ClassA: 0, ClassB: 1, ClassC: 2}
	total := decimal.Zero
	for _, r := range results {
		i, ok := index[r.Class]
		if !ok {
			continue
		}
		summary[i].ItemCount++
		summary[i].TotalValue = summary[i].TotalValue.Add(r.AnnualValue)
		total = total.Add(r.AnnualValue)
	}
	if total.IsPositive() {
		for i := range summary {
			summary[i].ValuePct = summary[i].TotalValue.Div(total).Mul(hundred).Round(2)
		}
	}
	return summary
}
