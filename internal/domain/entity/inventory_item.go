package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de los niveles mínimo/máximo del ítem.
const (
	StockStatusOut       = "out_of_stock"
	StockStatusLow       = "low_stock"
	StockStatusOverstock = "overstock"
	StockStatusIn        = "in_stock"
)

// InventoryItem representa un insumo o producto inventariado en una ubicación (cocina, bodega, tienda).
// CurrentStock es el stock registrado; el teórico se deriva de los movimientos.
type InventoryItem struct {
	ID              string
	CompanyID       string
	LocationID      string
	SKU             string // código único por empresa
	Barcode         string // UPC/EAN/... opcional
	Name            string
	Category        string
	SupplierID      string
	Unit            string // kg, l, und, ...
	CurrentStock    decimal.Decimal
	MinStock        decimal.Decimal
	MaxStock        decimal.Decimal
	CostPrice       decimal.Decimal // último costo de compra
	AverageCost     decimal.Decimal // costo promedio ponderado (inicia en 0)
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal // override manual; 0 = cálculo automático
	LeadTimeDays    int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveCost devuelve el costo promedio si existe; si no, el costo de compra.
func (i InventoryItem) EffectiveCost() decimal.Decimal {
	if i.AverageCost.IsPositive() {
		return i.AverageCost
	}
	return i.CostPrice
}

// HasManualReorderQuantity indica si el ítem fija manualmente su cantidad de pedido.
func (i InventoryItem) HasManualReorderQuantity() bool {
	return i.ReorderQuantity.IsPositive()
}
