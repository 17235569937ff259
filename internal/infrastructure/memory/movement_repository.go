package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.WasteLogRepository      = (*WasteLogRepo)(nil)
)

// StockMovementRepo movimientos en memoria.
type StockMovementRepo struct {
	s *Store
}

// NewStockMovementRepository construye el repositorio sobre el store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

// Create agrega el movimiento.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.mu.Lock()
	r.s.movements = append(r.s.movements, *m)
	r.s.mu.Unlock()
	return nil
}

// ListByCompany movimientos de la empresa en [from, to], por fecha.
func (r *StockMovementRepo) ListByCompany(_ context.Context, companyID string, from, to time.Time) ([]entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool {
		return m.CompanyID == companyID && m.Within(from, to)
	}), nil
}

// ListByItem movimientos del ítem en [from, to], por fecha.
func (r *StockMovementRepo) ListByItem(_ context.Context, itemID string, from, to time.Time) ([]entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool {
		return m.ItemID == itemID && m.Within(from, to)
	}), nil
}

func (r *StockMovementRepo) filter(keep func(entity.StockMovement) bool) []entity.StockMovement {
	r.s.mu.RLock()
	var out []entity.StockMovement
	for _, m := range r.s.movements {
		if keep(m) {
			out = append(out, m)
		}
	}
	r.s.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b entity.StockMovement) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

// WasteLogRepo registros de merma en memoria.
type WasteLogRepo struct {
	s *Store
}

// NewWasteLogRepository construye el repositorio sobre el store.
func NewWasteLogRepository(s *Store) *WasteLogRepo {
	return &WasteLogRepo{s: s}
}

// Create agrega el registro.
func (r *WasteLogRepo) Create(_ context.Context, w *entity.WasteLog) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	r.s.mu.Lock()
	r.s.waste = append(r.s.waste, *w)
	r.s.mu.Unlock()
	return nil
}

// ListByCompany mermas de la empresa en [from, to].
func (r *WasteLogRepo) ListByCompany(_ context.Context, companyID string, from, to time.Time) ([]entity.WasteLog, error) {
	return r.filter(func(w entity.WasteLog) bool {
		return w.CompanyID == companyID && inRange(w.RecordedAt, from, to)
	}), nil
}

// ListByItem mermas del ítem en [from, to].
func (r *WasteLogRepo) ListByItem(_ context.Context, itemID string, from, to time.Time) ([]entity.WasteLog, error) {
	return r.filter(func(w entity.WasteLog) bool {
		return w.ItemID == itemID && inRange(w.RecordedAt, from, to)
	}), nil
}

func (r *WasteLogRepo) filter(keep func(entity.WasteLog) bool) []entity.WasteLog {
	r.s.mu.RLock()
	var out []entity.WasteLog
	for _, w := range r.s.waste {
		if keep(w) {
			out = append(out, w)
		}
	}
	r.s.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b entity.WasteLog) int { return a.RecordedAt.Compare(b.RecordedAt) })
	return out
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
