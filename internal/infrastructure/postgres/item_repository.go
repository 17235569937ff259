package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, company_id, COALESCE(location_id, ''), sku, COALESCE(barcode, ''), name, category,
	COALESCE(supplier_id, ''), unit, current_stock, min_stock, max_stock, cost_price, average_cost,
	reorder_point, reorder_quantity, lead_time_days, is_active, created_at, updated_at`

// ItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem. SKU duplicado en la empresa devuelve ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, company_id, location_id, sku, barcode, name, category, supplier_id, unit,
			current_stock, min_stock, max_stock, cost_price, average_cost, reorder_point, reorder_quantity,
			lead_time_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.CompanyID, nullIfEmpty(item.LocationID), item.SKU, nullIfEmpty(item.Barcode), item.Name,
		item.Category, nullIfEmpty(item.SupplierID), item.Unit,
		item.CurrentStock, item.MinStock, item.MaxStock, item.CostPrice, item.AverageCost,
		item.ReorderPoint, item.ReorderQuantity, item.LeadTimeDays, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem bloqueando la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// GetByBarcode obtiene el ítem activo de la empresa con ese código de barras.
func (r *ItemRepo) GetByBarcode(ctx context.Context, companyID, code string) (*entity.InventoryItem, error) {
	return r.getOne(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE company_id = $1 AND barcode = $2 AND is_active LIMIT 1`,
		companyID, code)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List lista los ítems de la empresa aplicando los filtros presentes.
func (r *ItemRepo) List(ctx context.Context, companyID string, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, f.Category)
		pos++
	}
	if f.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, f.LocationID)
		pos++
	}
	if f.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, f.SupplierID)
		pos++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR barcode = $%d)", pos, pos, pos+1)
		args = append(args, "%"+f.Search+"%", f.Search)
		pos += 2
	}
	if f.OnlyActive {
		query += " AND is_active"
	}
	query += " ORDER BY name, sku"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// UpdateStock fija stock actual y costo promedio.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, stock, averageCost decimal.Decimal, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_stock = $2, average_cost = $3, updated_at = $4 WHERE id = $1`,
		id, stock, averageCost, at)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCategories categorías distintas de los ítems activos de la empresa.
func (r *ItemRepo) ListCategories(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT category FROM inventory_items WHERE company_id = $1 AND is_active AND category <> '' ORDER BY category`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.CompanyID, &it.LocationID, &it.SKU, &it.Barcode, &it.Name, &it.Category,
		&it.SupplierID, &it.Unit, &it.CurrentStock, &it.MinStock, &it.MaxStock, &it.CostPrice, &it.AverageCost,
		&it.ReorderPoint, &it.ReorderQuantity, &it.LeadTimeDays, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
