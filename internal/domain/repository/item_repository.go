package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemFilter filtros para el listado de ítems. Los campos vacíos no filtran.
type ItemFilter struct {
	Category   string
	LocationID string
	SupplierID string
	Search     string // coincide con nombre, SKU o código de barras
	OnlyActive bool
	Limit      int // 0 = sin límite
	Offset     int
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Los Get devuelven (nil, nil) cuando el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del ítem hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetByBarcode(ctx context.Context, companyID, code string) (*entity.InventoryItem, error)
	List(ctx context.Context, companyID string, f ItemFilter) ([]*entity.InventoryItem, error)
	// UpdateStock fija stock actual y costo promedio tras un movimiento.
	UpdateStock(ctx context.Context, id string, stock, averageCost decimal.Decimal, at time.Time) error
	ListCategories(ctx context.Context, companyID string) ([]string, error)
}
