package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

// countReference referencia de los ajustes generados por un conteo físico.
const countReference = "CONTEO"

// StockCountUseCase compara un conteo físico contra el stock teórico y opcionalmente
// registra el ajuste que concilia el stock del ítem con lo contado.
type StockCountUseCase struct {
	itemRepo     repository.ItemRepository
	movementRepo repository.StockMovementRepository
	register     *RegisterMovementUseCase
}

// NewStockCountUseCase construye el caso de uso.
func NewStockCountUseCase(
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
	register *RegisterMovementUseCase,
) *StockCountUseCase {
	return &StockCountUseCase{itemRepo: itemRepo, movementRepo: movementRepo, register: register}
}

// RecordCount calcula la varianza del conteo. Con OpeningStock y Since el teórico se reconstruye
// desde los movimientos del período; si no, se usa el stock registrado del ítem.
func (uc *StockCountUseCase) RecordCount(
	ctx context.Context,
	companyID, userID, itemID string,
	in dto.StockCountRequest,
) (*dto.StockCountResultDTO, error) {
	if in.CountedQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if (in.OpeningStock == nil) != (in.Since == nil) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	theoretical := domaininv.TheoreticalStock(item.CurrentStock, nil)
	if in.OpeningStock != nil {
		movements, err := uc.movementRepo.ListByItem(ctx, itemID, *in.Since, time.Now())
		if err != nil {
			return nil, err
		}
		theoretical = domaininv.TheoreticalStock(*in.OpeningStock, movements)
	}

	v := domaininv.StockVariance(in.CountedQuantity, theoretical, item.EffectiveCost())
	out := &dto.StockCountResultDTO{
		ItemID:             item.ID,
		Counted:            v.Actual,
		Theoretical:        v.Theoretical,
		QuantityVariance:   v.QuantityVariance,
		ValueVariance:      v.ValueVariance.Round(2),
		PercentageVariance: v.PercentageVariance,
	}

	adjustment := in.CountedQuantity.Sub(item.CurrentStock)
	if !in.Apply || adjustment.IsZero() {
		return out, nil
	}
	mov, err := uc.register.RegisterMovement(ctx, MovementInputDTO{
		CompanyID: companyID,
		UserID:    userID,
		ItemID:    item.ID,
		Type:      entity.MovementAdjustment,
		Quantity:  adjustment,
		Reference: countReference,
		Notes:     "ajuste por conteo físico",
	})
	if err != nil {
		return nil, err
	}
	out.AdjustmentID = mov.ID
	return out, nil
}
