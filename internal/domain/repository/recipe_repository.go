package repository

import (
	"context"

	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
)

// RecipeRepository lectura de recetas. GetByID carga los ingredientes con el
// costo efectivo actual de cada ítem; devuelve (nil, nil) si no existe.
type RecipeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Recipe, error)
}
