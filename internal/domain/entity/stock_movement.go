package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementPurchase    = "purchase"    // compra a proveedor
	MovementSale        = "sale"        // venta
	MovementConsumption = "consumption" // consumo en producción/cocina
	MovementWaste       = "waste"       // merma
	MovementAdjustment  = "adjustment"  // ajuste (+/-)
	MovementReturn      = "return"      // devolución de cliente
	MovementTransfer    = "transfer"    // salida a otra ubicación
)

// StockMovement representa un movimiento de inventario sobre un ítem.
// Quantity se guarda tal como se registró; el signo efectivo lo decide el tipo.
type StockMovement struct {
	ID         string
	CompanyID  string
	ItemID     string
	LocationID string
	Type       string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	Reference  string // factura, orden, nota de ajuste, etc.
	Notes      string
	CreatedAt  time.Time
	CreatedBy  string // UserID
}

// IsValidMovementType informa si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementPurchase, MovementSale, MovementConsumption, MovementWaste,
		MovementAdjustment, MovementReturn, MovementTransfer:
		return true
	}
	return false
}

// IsInbound: compras, ajustes y devoluciones suman la cantidad registrada.
func (m StockMovement) IsInbound() bool {
	switch m.Type {
	case MovementPurchase, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// IsUsage: ventas y consumos cuentan como uso del ítem.
func (m StockMovement) IsUsage() bool {
	return m.Type == MovementSale || m.Type == MovementConsumption
}

// Within indica si el movimiento ocurrió en [from, to].
func (m StockMovement) Within(from, to time.Time) bool {
	return !m.CreatedAt.Before(from) && !m.CreatedAt.After(to)
}
