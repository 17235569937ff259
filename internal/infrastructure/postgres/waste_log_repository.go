package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

var _ repository.WasteLogRepository = (*WasteLogRepo)(nil)

// WasteLogRepo implementación sobre PostgreSQL (usable con pool o tx).
type WasteLogRepo struct {
	q Querier
}

// NewWasteLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWasteLogRepository(q Querier) *WasteLogRepo {
	return &WasteLogRepo{q: q}
}

// Create persiste un registro de merma.
func (r *WasteLogRepo) Create(ctx context.Context, w *entity.WasteLog) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO waste_logs (id, company_id, item_id, quantity, unit_cost, total_cost, reason, recorded_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		w.ID, w.CompanyID, w.ItemID, w.Quantity, w.UnitCost, w.TotalCost, w.Reason, w.RecordedAt, nullIfEmpty(w.RecordedBy),
	)
	if err != nil {
		return fmt.Errorf("insert waste log: %w", err)
	}
	return nil
}

// ListByCompany mermas de la empresa en [from, to].
func (r *WasteLogRepo) ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]entity.WasteLog, error) {
	return r.list(ctx, `SELECT id, company_id, item_id, quantity, unit_cost, total_cost, reason, recorded_at, COALESCE(recorded_by, '')
		FROM waste_logs WHERE company_id = $1 AND recorded_at BETWEEN $2 AND $3 ORDER BY recorded_at`, companyID, from, to)
}

// ListByItem mermas de un ítem en [from, to].
func (r *WasteLogRepo) ListByItem(ctx context.Context, itemID string, from, to time.Time) ([]entity.WasteLog, error) {
	return r.list(ctx, `SELECT id, company_id, item_id, quantity, unit_cost, total_cost, reason, recorded_at, COALESCE(recorded_by, '')
		FROM waste_logs WHERE item_id = $1 AND recorded_at BETWEEN $2 AND $3 ORDER BY recorded_at`, itemID, from, to)
}

func (r *WasteLogRepo) list(ctx context.Context, query string, args ...any) ([]entity.WasteLog, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list waste logs: %w", err)
	}
	defer rows.Close()
	var list []entity.WasteLog
	for rows.Next() {
		var w entity.WasteLog
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.ItemID, &w.Quantity, &w.UnitCost, &w.TotalCost, &w.Reason,
			&w.RecordedAt, &w.RecordedBy); err != nil {
			return nil, fmt.Errorf("scan waste log: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
