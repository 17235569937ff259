package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

// ItemUseCase consultas de ítems de inventario (listado filtrado y detalle).
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// List devuelve los ítems de la empresa que cumplen los filtros. El estado de stock es derivado,
// por lo que el filtrado por estado y la paginación se aplican sobre el resultado del repositorio.
func (uc *ItemUseCase) List(ctx context.Context, companyID string, req dto.ItemListRequest) (*dto.ItemListResponse, error) {
	req.DefaultPage()
	items, err := uc.itemRepo.List(ctx, companyID, repository.ItemFilter{
		Category:   req.Category,
		LocationID: req.LocationID,
		SupplierID: req.SupplierID,
		Search:     req.Search,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	categories, err := uc.itemRepo.ListCategories(ctx, companyID)
	if err != nil {
		return nil, err
	}

	filtered := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		if req.Status != "" && domaininv.StockStatus(*it) != req.Status {
			continue
		}
		filtered = append(filtered, ToItemDTO(it))
	}

	total := len(filtered)
	start := min(req.Offset, total)
	end := min(start+req.Limit, total)
	if categories == nil {
		categories = []string{}
	}
	return &dto.ItemListResponse{
		Items:      filtered[start:end],
		Categories: categories,
		Page:       dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	}, nil
}

// GetByID devuelve el ítem si pertenece a la empresa.
func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	out := ToItemDTO(item)
	return &out, nil
}
