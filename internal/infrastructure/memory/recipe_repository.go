package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas en memoria; el costo de cada ingrediente sale del ítem actual.
type RecipeRepo struct {
	s *Store
}

// NewRecipeRepository construye el repositorio sobre el store.
func NewRecipeRepository(s *Store) *RecipeRepo {
	return &RecipeRepo{s: s}
}

// GetByID devuelve la receta con nombre, unidad y costo efectivo de cada ingrediente.
func (r *RecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.recipes[id]
	if !ok {
		return nil, nil
	}
	ingredients := make([]entity.RecipeIngredient, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		if it, ok := r.s.items[ing.ItemID]; ok {
			ing.Name = it.Name
			ing.Cost = it.EffectiveCost()
			if ing.Unit == "" {
				ing.Unit = it.Unit
			}
		}
		ingredients = append(ingredients, ing)
	}
	rec.Ingredients = ingredients
	return &rec, nil
}

// ListByCompany recetas de la empresa por nombre, sin ingredientes.
func (r *RecipeRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Recipe, error) {
	r.s.mu.RLock()
	var list []*entity.Recipe
	for _, rec := range r.s.recipes {
		if rec.CompanyID == companyID {
			rec.Ingredients = nil
			list = append(list, &rec)
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(list, func(a, b *entity.Recipe) int { return strings.Compare(a.Name, b.Name) })
	return list, nil
}
