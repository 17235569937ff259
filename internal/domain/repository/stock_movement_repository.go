package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para StockMovement (DIP).
// Los rangos [from, to] son inclusivos y se ordenan por fecha ascendente.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]entity.StockMovement, error)
	ListByItem(ctx context.Context, itemID string, from, to time.Time) ([]entity.StockMovement, error)
}
