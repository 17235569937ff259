package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el registro de movimientos (stock, movimiento y merma).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		wasteRepo repository.WasteLogRepository,
	) error) error
}
