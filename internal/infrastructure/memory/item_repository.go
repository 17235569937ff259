package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems de inventario en memoria.
type ItemRepo struct {
	s *Store
}

// NewItemRepository construye el repositorio sobre el store.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

// Create guarda el ítem; SKU repetido en la empresa devuelve ErrDuplicate.
func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.CompanyID == item.CompanyID && it.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.items[item.ID] = *item
	return nil
}

// GetByID devuelve una copia del ítem o (nil, nil).
func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// GetForUpdate igual a GetByID; el bloqueo lo da TxRunner.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

// GetByBarcode busca el ítem activo de la empresa con ese código.
func (r *ItemRepo) GetByBarcode(_ context.Context, companyID, code string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.CompanyID == companyID && it.IsActive && it.Barcode != "" && it.Barcode == code {
			return &it, nil
		}
	}
	return nil, nil
}

// List filtra y ordena por nombre y SKU.
func (r *ItemRepo) List(_ context.Context, companyID string, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	var list []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.CompanyID != companyID || !matches(it, f) {
			continue
		}
		list = append(list, &it)
	}
	r.s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *entity.InventoryItem) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.SKU, b.SKU)
	})
	if f.Limit <= 0 {
		return list, nil
	}
	if f.Offset >= len(list) {
		return nil, nil
	}
	return list[f.Offset:min(f.Offset+f.Limit, len(list))], nil
}

func matches(it entity.InventoryItem, f repository.ItemFilter) bool {
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.LocationID != "" && it.LocationID != f.LocationID {
		return false
	}
	if f.SupplierID != "" && it.SupplierID != f.SupplierID {
		return false
	}
	if f.OnlyActive && !it.IsActive {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.SKU), q) && it.Barcode != f.Search {
			return false
		}
	}
	return true
}

// UpdateStock fija stock y costo promedio.
func (r *ItemRepo) UpdateStock(_ context.Context, id string, stock, averageCost decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = stock
	it.AverageCost = averageCost
	it.UpdatedAt = at
	r.s.items[id] = it
	return nil
}

// ListCategories categorías distintas de los ítems activos, ordenadas.
func (r *ItemRepo) ListCategories(_ context.Context, companyID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []string
	for _, it := range r.s.items {
		if it.CompanyID == companyID && it.IsActive && it.Category != "" && !slices.Contains(out, it.Category) {
			out = append(out, it.Category)
		}
	}
	slices.Sort(out)
	return out, nil
}
