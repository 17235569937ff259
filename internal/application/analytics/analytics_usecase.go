package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	appinv "github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AnalyticsUseCase orquesta las consultas de inventario y aplica los cálculos de dominio:
//   - Métricas generales (valor, niveles de stock, merma, rotación).
//   - Clasificación ABC por valor anual de consumo.
//   - Analítica por ítem (reorden, EOQ, stock de seguridad, cobertura).
//   - Costeo de recetas.
type AnalyticsUseCase struct {
	itemRepo     repository.ItemRepository
	movementRepo repository.StockMovementRepository
	wasteRepo    repository.WasteLogRepository
	recipeRepo   repository.RecipeRepository
	settings     appinv.Settings
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
	wasteRepo repository.WasteLogRepository,
	recipeRepo repository.RecipeRepository,
	settings appinv.Settings,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		wasteRepo:    wasteRepo,
		recipeRepo:   recipeRepo,
		settings:     settings.WithDefaults(),
	}
}

// snapshot datos crudos de la empresa para un cálculo.
type snapshot struct {
	items     []*entity.InventoryItem
	movements []entity.StockMovement
	waste     []entity.WasteLog
}

// loadSnapshot consulta ítems, movimientos y mermas en paralelo (llamadas independientes).
func (uc *AnalyticsUseCase) loadSnapshot(ctx context.Context, companyID string, movementDays int, now time.Time) (*snapshot, error) {
	type itemsResult struct {
		rows []*entity.InventoryItem
		err  error
	}
	type movementsResult struct {
		rows []entity.StockMovement
		err  error
	}
	type wasteResult struct {
		rows []entity.WasteLog
		err  error
	}

	itemsCh := make(chan itemsResult, 1)
	movCh := make(chan movementsResult, 1)
	wasteCh := make(chan wasteResult, 1)

	go func() {
		rows, err := uc.itemRepo.List(ctx, companyID, repository.ItemFilter{OnlyActive: true})
		itemsCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := uc.movementRepo.ListByCompany(ctx, companyID, now.AddDate(0, 0, -movementDays), now)
		movCh <- movementsResult{rows, err}
	}()
	go func() {
		rows, err := uc.wasteRepo.ListByCompany(ctx, companyID, now.AddDate(0, 0, -uc.settings.PeriodDays), now)
		wasteCh <- wasteResult{rows, err}
	}()

	items := <-itemsCh
	movs := <-movCh
	waste := <-wasteCh

	if items.err != nil {
		return nil, fmt.Errorf("analytics: items: %w", items.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("analytics: movimientos: %w", movs.err)
	}
	if waste.err != nil {
		return nil, fmt.Errorf("analytics: mermas: %w", waste.err)
	}
	return &snapshot{items: items.rows, movements: movs.rows, waste: waste.rows}, nil
}

// GetMetrics calcula las métricas generales del inventario de la empresa.
func (uc *AnalyticsUseCase) GetMetrics(ctx context.Context, companyID string) (*dto.InventoryMetricsDTO, error) {
	now := time.Now()
	snap, err := uc.loadSnapshot(ctx, companyID, uc.settings.PeriodDays, now)
	if err != nil {
		return nil, err
	}
	return uc.metrics(snap, now), nil
}

func (uc *AnalyticsUseCase) metrics(snap *snapshot, now time.Time) *dto.InventoryMetricsDTO {
	period := uc.settings.PeriodDays
	items := appinv.DerefItems(snap.items)
	byItem := domaininv.GroupByItem(snap.movements)

	out := &dto.InventoryMetricsDTO{
		TotalItems:    len(items),
		TotalValue:    domaininv.StockValue(items).Round(2),
		WasteCost:     domaininv.WasteCost(snap.waste, period, now).Round(2),
		ShrinkageRate: domaininv.ShrinkageRate(snap.movements, snap.waste, period, now),
		PeriodDays:    period,
	}

	turnoverSum := decimal.Zero
	stocked := 0
	for _, it := range items {
		switch domaininv.StockStatus(it) {
		case entity.StockStatusOut:
			out.OutOfStockCount++
		case entity.StockStatusLow:
			out.LowStockCount++
		case entity.StockStatusOverstock:
			out.OverstockCount++
		}
		if domaininv.NeedsReorder(it) {
			out.ReorderCount++
		}
		if it.CurrentStock.IsPositive() {
			turnoverSum = turnoverSum.Add(domaininv.TurnoverRate(it, byItem[it.ID], period, now))
			stocked++
		}
	}
	if stocked > 0 {
		out.AverageTurnoverRate = turnoverSum.Div(decimal.NewFromInt(int64(stocked))).Round(4)
	}
	return out
}

// GetABCReport clasifica los ítems por valor anual de consumo.
func (uc *AnalyticsUseCase) GetABCReport(ctx context.Context, companyID string) (*dto.ABCReportDTO, error) {
	now := time.Now()
	snap, err := uc.loadSnapshot(ctx, companyID, domaininv.DaysPerYear, now)
	if err != nil {
		return nil, err
	}
	return abcReport(snap, now), nil
}

func abcReport(snap *snapshot, now time.Time) *dto.ABCReportDTO {
	results := domaininv.ClassifyABC(appinv.DerefItems(snap.items), snap.movements, now)
	out := &dto.ABCReportDTO{
		Items:   make([]dto.ABCItemDTO, 0, len(results)),
		Summary: toABCSummaryDTOs(domaininv.SummarizeABC(results)),
	}
	for _, r := range results {
		out.Items = append(out.Items, dto.ABCItemDTO{
			ItemID:        r.ItemID,
			SKU:           r.SKU,
			Name:          r.Name,
			AnnualUsage:   r.AnnualUsage,
			AnnualValue:   r.AnnualValue.Round(2),
			CumulativePct: r.CumulativePct,
			Class:         r.Class,
		})
	}
	return out
}

func toABCSummaryDTOs(summaries []domaininv.ABCSummary) []dto.ABCSummaryDTO {
	out := make([]dto.ABCSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ABCSummaryDTO{
			Class:      s.Class,
			ItemCount:  s.ItemCount,
			TotalValue: s.TotalValue.Round(2),
			ValuePct:   s.ValuePct,
		})
	}
	return out
}

// GetItemAnalytics calcula los indicadores de reposición y rendimiento de un ítem.
func (uc *AnalyticsUseCase) GetItemAnalytics(ctx context.Context, companyID, itemID string) (*dto.ItemAnalyticsDTO, error) {
	now := time.Now()
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

	// La clase ABC depende del resto de ítems de la empresa
	snap, err := uc.loadSnapshot(ctx, companyID, uc.settings.MovementWindowDays(), now)
	if err != nil {
		return nil, err
	}
	movements := domaininv.GroupByItem(snap.movements)[item.ID]
	waste := domaininv.GroupWasteByItem(snap.waste)[item.ID]

	s := uc.settings
	params := s.Reorder.WithDefaults()
	lead := s.LeadTimeFor(item.LeadTimeDays)
	leadDec := decimal.NewFromInt(int64(lead))

	avgDaily := domaininv.AverageDailyUsage(movements, s.UsageWindowDays, now)
	maxDaily := domaininv.MaxDailyUsage(movements, s.UsageWindowDays, now)
	safety := domaininv.SafetyStock(maxDaily, leadDec, avgDaily, leadDec)
	annualDemand := avgDaily.Mul(decimal.NewFromInt(domaininv.DaysPerYear))

	class := classOf(item.ID, snap, now)

	return &dto.ItemAnalyticsDTO{
		Item:              appinv.ToItemDTO(item),
		OpeningStock:      domaininv.OpeningStock(item.CurrentStock, movements, s.PeriodDays, now),
		AverageDailyUsage: avgDaily.Round(4),
		MaxDailyUsage:     maxDaily,
		LeadTimeDays:      lead,
		SafetyStock:       safety.Round(2),
		ReorderPoint:      domaininv.ReorderPoint(avgDaily, lead, safety).Round(2),
		EOQ:               domaininv.EconomicOrderQuantity(annualDemand, params.OrderingCost, item.EffectiveCost(), params.HoldingRate).Round(2),
		ReorderQuantity:   domaininv.ReorderQuantity(*item, avgDaily, params),
		TurnoverRate:      domaininv.TurnoverRate(*item, movements, s.PeriodDays, now),
		ShrinkageRate:     domaininv.ShrinkageRate(movements, waste, s.PeriodDays, now),
		DaysOfStock:       domaininv.DaysOfStock(item.CurrentStock, avgDaily),
		WasteCost:         domaininv.WasteCost(waste, s.PeriodDays, now).Round(2),
		ABCClass:          class,
		PeriodDays:        s.PeriodDays,
	}, nil
}

// classOf clase ABC del ítem dentro de su empresa (C si no figura en el listado activo).
func classOf(itemID string, snap *snapshot, now time.Time) string {
	for _, r := range domaininv.ClassifyABC(appinv.DerefItems(snap.items), snap.movements, now) {
		if r.ItemID == itemID {
			return r.Class
		}
	}
	return domaininv.ClassC
}

// GetRecipeCost calcula el costo de una receta con los costos actuales de sus ingredientes.
func (uc *AnalyticsUseCase) GetRecipeCost(ctx context.Context, companyID, recipeID string) (*dto.RecipeCostDTO, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if recipe.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	c := domaininv.RecipeCost(*recipe)
	out := &dto.RecipeCostDTO{
		RecipeID:       c.RecipeID,
		Name:           c.Name,
		Portions:       c.Portions,
		TotalCost:      c.TotalCost.Round(2),
		CostPerPortion: c.CostPerPortion.Round(2),
		SellingPrice:   c.SellingPrice,
		FoodCostPct:    c.FoodCostPct,
		Lines:          make([]dto.RecipeLineDTO, 0, len(c.Lines)),
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, dto.RecipeLineDTO{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Cost:     l.Cost.Round(2),
		})
	}
	return out, nil
}
