package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional:
// bloquea la fila del ítem (SELECT FOR UPDATE), actualiza stock y costo promedio,
// guarda el movimiento y, en mermas, el registro de merma. Commit/Rollback vía TxRunner.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInputDTO entrada para registrar un movimiento.
// Quantity debe ser positiva salvo en adjustment, donde el signo indica el sentido.
// UnitCost es obligatorio en purchase; en el resto se usa el costo efectivo del ítem.
type MovementInputDTO struct {
	CompanyID string
	UserID    string
	ItemID    string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reference string
	Notes     string
	Reason    string // motivo de merma
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		CompanyID: companyID,
		UserID:    userID,
		ItemID:    in.ItemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reference: in.Reference,
		Notes:     in.Notes,
		Reason:    in.Reason,
	})
}

// RegisterMovement valida la entrada y aplica el movimiento dentro de una transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResponse, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}

	now := time.Now()
	var out *dto.MovementResponse

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		wasteRepo repository.WasteLogRepository,
	) error {
		// Bloquea la fila del ítem para evitar condiciones de carrera sobre el stock
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.CompanyID != input.CompanyID {
			return domain.ErrForbidden
		}

		unitCost := item.EffectiveCost()
		if input.UnitCost != nil {
			unitCost = *input.UnitCost
		}
		mov := entity.StockMovement{
			ID:         uuid.New().String(),
			CompanyID:  input.CompanyID,
			ItemID:     item.ID,
			LocationID: item.LocationID,
			Type:       input.Type,
			Quantity:   input.Quantity,
			UnitCost:   unitCost,
			TotalCost:  input.Quantity.Abs().Mul(unitCost).Round(2),
			Reference:  input.Reference,
			Notes:      input.Notes,
			CreatedAt:  now,
			CreatedBy:  input.UserID,
		}

		newStock := item.CurrentStock.Add(domaininv.SignedQuantity(mov))
		if newStock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		avgCost := item.AverageCost
		if input.Type == entity.MovementPurchase {
			avgCost = domaininv.WeightedAverageCost(item.CurrentStock, item.EffectiveCost(), input.Quantity, unitCost).Round(4)
		}

		if err := itemRepo.UpdateStock(ctx, item.ID, newStock, avgCost, now); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, &mov); err != nil {
			return err
		}

		out = &dto.MovementResponse{
			ID:          mov.ID,
			ItemID:      mov.ItemID,
			Type:        mov.Type,
			Quantity:    mov.Quantity,
			TotalCost:   mov.TotalCost,
			StockAfter:  newStock,
			AverageCost: avgCost,
			CreatedAt:   now,
		}

		if input.Type != entity.MovementWaste {
			return nil
		}
		waste := &entity.WasteLog{
			ID:         uuid.New().String(),
			CompanyID:  input.CompanyID,
			ItemID:     item.ID,
			Quantity:   input.Quantity.Abs(),
			UnitCost:   unitCost,
			TotalCost:  mov.TotalCost,
			Reason:     input.Reason,
			RecordedAt: now,
			RecordedBy: input.UserID,
		}
		if err := wasteRepo.Create(ctx, waste); err != nil {
			return err
		}
		out.WasteLogID = waste.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateMovement(input MovementInputDTO) error {
	if input.ItemID == "" || !entity.IsValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	if input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	if input.Type != entity.MovementAdjustment && input.Quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if input.Type == entity.MovementPurchase && input.UnitCost == nil {
		return domain.ErrInvalidInput
	}
	return nil
}
