// Package analytics contiene los casos de uso de reportes de inventario y el
// Dashboard de analítica.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	appinv "github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	"github.com/jhoicas/Inventario-analytics/pkg/logger"
)

const dashboardTopReorder = 5 // número de reposiciones en el widget del dashboard

// DashboardUseCase genera el resumen del inventario para el dashboard.
//
// Fuente de datos: AnalyticsUseCase y ReplenishmentUseCase.
// Solo las métricas son obligatorias; si ABC o reposición fallan se registra el error
// y el widget correspondiente se devuelve vacío.
type DashboardUseCase struct {
	analytics     *AnalyticsUseCase
	replenishment *appinv.ReplenishmentUseCase
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analytics *AnalyticsUseCase, replenishment *appinv.ReplenishmentUseCase, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{analytics: analytics, replenishment: replenishment, log: log}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
//
// Tres cálculos en paralelo:
//  1. GetMetrics               → Metrics
//  2. GetABCReport             → ABC (resumen por clase)
//  3. GenerateReplenishmentList → TopReorder (primeras 5)
func (uc *DashboardUseCase) GetSummary(
	ctx context.Context,
	companyID string,
) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// ── Goroutines para paralelizar los 3 cálculos ────────────────────────────
	type metricsResult struct {
		metrics *dto.InventoryMetricsDTO
		err     error
	}
	type abcResult struct {
		report *dto.ABCReportDTO
		err    error
	}
	type reorderResult struct {
		list []dto.ReplenishmentSuggestionDTO
		err  error
	}

	metricsCh := make(chan metricsResult, 1)
	abcCh := make(chan abcResult, 1)
	reorderCh := make(chan reorderResult, 1)

	go func() {
		m, err := uc.analytics.GetMetrics(ctx, companyID)
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		r, err := uc.analytics.GetABCReport(ctx, companyID)
		abcCh <- abcResult{r, err}
	}()
	go func() {
		l, err := uc.replenishment.GenerateReplenishmentList(ctx, companyID, "")
		reorderCh <- reorderResult{l, err}
	}()

	metrics := <-metricsCh
	abc := <-abcCh
	reorder := <-reorderCh

	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas: %w", metrics.err)
	}

	out := &dto.DashboardSummaryDTO{
		Metrics:    *metrics.metrics,
		ABC:        []dto.ABCSummaryDTO{},
		TopReorder: []dto.ReplenishmentSuggestionDTO{},
		DateLabel:  monthLabel(now),
	}
	if abc.err != nil {
		uc.log.Warn().Err(abc.err).Str("company_id", companyID).Msg("dashboard: clasificación ABC no disponible")
	} else {
		out.ABC = abc.report.Summary
	}
	if reorder.err != nil {
		uc.log.Warn().Err(reorder.err).Str("company_id", companyID).Msg("dashboard: reposición no disponible")
	} else {
		top := reorder.list
		if len(top) > dashboardTopReorder {
			top = top[:dashboardTopReorder]
		}
		out.TopReorder = top
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
