package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Inventario-analytics/internal/application/analytics"
)

// AnalyticsHandler maneja los reportes de inventario y el costeo de recetas.
type AnalyticsHandler struct {
	uc *appanalytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetMetrics godoc
// @Summary      Métricas generales del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryMetricsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/metrics [get]
func (h *AnalyticsHandler) GetMetrics(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetMetrics(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetABCReport godoc
// @Summary      Clasificación ABC
// @Description  Ítems ordenados por valor anual de consumo con su clase (A ≤ 80%, B ≤ 95%, C resto).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ABCReportDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/abc [get]
func (h *AnalyticsHandler) GetABCReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetABCReport(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetItemAnalytics godoc
// @Summary      Analítica de un ítem
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemAnalyticsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/analytics [get]
func (h *AnalyticsHandler) GetItemAnalytics(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetItemAnalytics(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRecipeCost godoc
// @Summary      Costo de una receta
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeCostDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/cost [get]
func (h *AnalyticsHandler) GetRecipeCost(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetRecipeCost(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
