package inventory

import (
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// WeightedAverageCost implementa el costo promedio ponderado al recibir mercancía.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(stock, cost, qtyIn, costIn decimal.Decimal) decimal.Decimal {
	sum := stock.Add(qtyIn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(cost).Add(qtyIn.Mul(costIn))
	return num.Div(sum)
}

// StockValue valor del inventario: Σ stock actual × costo efectivo (stocks negativos no restan).
func StockValue(items []entity.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(floorZero(it.CurrentStock).Mul(it.EffectiveCost()))
	}
	return total
}

// StockStatus clasifica el nivel de stock del ítem.
func StockStatus(item entity.InventoryItem) string {
	switch {
	case !item.CurrentStock.IsPositive():
		return entity.StockStatusOut
	case item.CurrentStock.LessThanOrEqual(item.MinStock):
		return entity.StockStatusLow
	case item.MaxStock.IsPositive() && item.CurrentStock.GreaterThan(item.MaxStock):
		return entity.StockStatusOverstock
	default:
		return entity.StockStatusIn
	}
}

// WasteCost costo total de mermas registradas en los últimos periodDays días.
func WasteCost(logs []entity.WasteLog, periodDays int, now time.Time) decimal.Decimal {
	from := windowStart(now, periodDays)
	total := decimal.Zero
	for _, w := range logs {
		if w.RecordedAt.Before(from) || w.RecordedAt.After(now) {
			continue
		}
		total = total.Add(w.Cost())
	}
	return total
}

// IngredientCost costo de una línea de receta.
type IngredientCost struct {
	ItemID   string
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Cost     decimal.Decimal // Quantity × costo unitario
}

// RecipeCosting costeo completo de una receta.
type RecipeCosting struct {
	RecipeID       string
	Name           string
	Portions       int
	TotalCost      decimal.Decimal
	CostPerPortion decimal.Decimal
	SellingPrice   decimal.Decimal
	FoodCostPct    decimal.Decimal // CostPerPortion / SellingPrice × 100
	Lines          []IngredientCost
}

// RecipeCost calcula costo total, por porción y porcentaje de costo de alimentos.
func RecipeCost(recipe entity.Recipe) RecipeCosting {
	out := RecipeCosting{
		RecipeID:     recipe.ID,
		Name:         recipe.Name,
		Portions:     recipe.Portions,
		SellingPrice: recipe.SellingPrice,
		Lines:        make([]IngredientCost, 0, len(recipe.Ingredients)),
	}
	for _, ing := range recipe.Ingredients {
		cost := ing.Quantity.Mul(ing.Cost)
		out.TotalCost = out.TotalCost.Add(cost)
		out.Lines = append(out.Lines, IngredientCost{
			ItemID:   ing.ItemID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Cost:     cost.Round(2),
		})
	}
	portions := recipe.Portions
	if portions <= 0 {
		portions = 1
	}
	out.CostPerPortion = out.TotalCost.Div(decimal.NewFromInt(int64(portions))).Round(2)
	if recipe.SellingPrice.IsPositive() {
		out.FoodCostPct = out.CostPerPortion.Div(recipe.SellingPrice).Mul(hundred).Round(2)
	}
	out.TotalCost = out.TotalCost.Round(2)
	return out
}
