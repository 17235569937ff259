package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, item_id, COALESCE(location_id, ''), type, quantity, unit_cost, total_cost,
	COALESCE(reference, ''), COALESCE(notes, ''), created_at, COALESCE(created_by, '')`

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, item_id, location_id, type, quantity, unit_cost, total_cost,
			reference, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ItemID, nullIfEmpty(m.LocationID), m.Type, m.Quantity, m.UnitCost, m.TotalCost,
		nullIfEmpty(m.Reference), nullIfEmpty(m.Notes), m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByCompany movimientos de la empresa en [from, to].
func (r *StockMovementRepo) ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements
		WHERE company_id = $1 AND created_at BETWEEN $2 AND $3 ORDER BY created_at`, companyID, from, to)
}

// ListByItem movimientos de un ítem en [from, to].
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, from, to time.Time) ([]entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements
		WHERE item_id = $1 AND created_at BETWEEN $2 AND $3 ORDER BY created_at`, itemID, from, to)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ItemID, &m.LocationID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.TotalCost, &m.Reference, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
