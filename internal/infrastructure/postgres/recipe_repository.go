package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo lectura de recetas sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID obtiene la receta con sus ingredientes y el costo efectivo actual de cada ítem.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, portions, selling_price, created_at, updated_at
		FROM recipes WHERE id = $1`, id).Scan(
		&rec.ID, &rec.CompanyID, &rec.Name, &rec.Portions, &rec.SellingPrice, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	ingredients, err := r.ingredients(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = ingredients
	return &rec, nil
}

// ListByCompany lista las recetas de la empresa (sin ingredientes).
func (r *RecipeRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, portions, selling_price, created_at, updated_at
		FROM recipes WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.Name, &rec.Portions, &rec.SellingPrice,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

func (r *RecipeRepo) ingredients(ctx context.Context, recipeID string) ([]entity.RecipeIngredient, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ri.item_id, i.name, ri.quantity, COALESCE(NULLIF(ri.unit, ''), i.unit),
			CASE WHEN i.average_cost > 0 THEN i.average_cost ELSE i.cost_price END
		FROM recipe_ingredients ri
		JOIN inventory_items i ON i.id = ri.item_id
		WHERE ri.recipe_id = $1
		ORDER BY i.name`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	var list []entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ItemID, &ing.Name, &ing.Quantity, &ing.Unit, &ing.Cost); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}
