package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
)

// WasteLogRepository define el puerto de persistencia para registros de merma.
type WasteLogRepository interface {
	Create(ctx context.Context, log *entity.WasteLog) error
	ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]entity.WasteLog, error)
	ListByItem(ctx context.Context, itemID string, from, to time.Time) ([]entity.WasteLog, error)
}
