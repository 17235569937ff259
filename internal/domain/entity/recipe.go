package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe receta de un plato; el costo se deriva de sus ingredientes.
type Recipe struct {
	ID           string
	CompanyID    string
	Name         string
	Portions     int
	SellingPrice decimal.Decimal // precio de venta por porción
	Ingredients  []RecipeIngredient
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeIngredient cantidad de un ítem de inventario usada por la receta completa.
type RecipeIngredient struct {
	ItemID   string
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Cost     decimal.Decimal // costo unitario del ítem
}
