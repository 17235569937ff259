package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de una empresa (o de una ubicación).
// Combina el stock con el consumo reciente y la clasificación ABC para priorizar los ítems críticos.
type ReplenishmentUseCase struct {
	itemRepo     repository.ItemRepository
	movementRepo repository.StockMovementRepository
	settings     Settings
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
	settings Settings,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		settings:     settings.WithDefaults(),
	}
}

// GenerateReplenishmentList devuelve los ítems que alcanzaron su punto de reorden con la cantidad
// sugerida de pedido y un ranking de prioridad: clase ABC (A primero) y luego mayor déficit.
// locationID puede ser vacío para considerar todas las ubicaciones.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	companyID, locationID string,
) ([]dto.ReplenishmentSuggestionDTO, error) {
	now := time.Now()

	// 1. Ítems activos de la empresa/ubicación
	items, err := uc.itemRepo.List(ctx, companyID, repository.ItemFilter{LocationID: locationID, OnlyActive: true})
	if err != nil {
		return nil, fmt.Errorf("replenishment: items: %w", err)
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Movimientos del último año (uso diario y ABC)
	movements, err := uc.movementRepo.ListByCompany(ctx, companyID, now.AddDate(0, 0, -uc.settings.MovementWindowDays()), now)
	if err != nil {
		return nil, fmt.Errorf("replenishment: movements: %w", err)
	}
	byItem := domaininv.GroupByItem(movements)

	classByID := make(map[string]string, len(items))
	for _, r := range domaininv.ClassifyABC(DerefItems(items), movements, now) {
		classByID[r.ItemID] = r.Class
	}

	// 3. Sugerencias para los ítems bajo punto de reorden
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, item := range items {
		if !domaininv.NeedsReorder(*item) {
			continue
		}
		avgDaily := domaininv.AverageDailyUsage(byItem[item.ID], uc.settings.UsageWindowDays, now)
		qty := domaininv.ReorderQuantity(*item, avgDaily, uc.settings.Reorder)
		cost := item.EffectiveCost()

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             item.ID,
			SKU:                item.SKU,
			Name:               item.Name,
			SupplierID:         item.SupplierID,
			CurrentStock:       item.CurrentStock,
			ReorderPoint:       item.ReorderPoint,
			AverageDailyUsage:  avgDaily.Round(4),
			DaysOfStock:        domaininv.DaysOfStock(item.CurrentStock, avgDaily),
			SuggestedOrderQty:  qty,
			UnitCost:           cost,
			EstimatedOrderCost: qty.Mul(cost).Round(2),
			ABCClass:           classByID[item.ID],
		})
	}

	// 4. Ordenar: clase ABC, mayor déficit bajo el punto de reorden y SKU para estabilidad
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.ABCClass != b.ABCClass {
			return a.ABCClass < b.ABCClass
		}
		defA := a.ReorderPoint.Sub(a.CurrentStock)
		defB := b.ReorderPoint.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.SKU < b.SKU
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
