package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
)

// StartSession godoc
// @Summary      Iniciar sesión de escaneo
// @Tags         scanning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartScanSessionRequest  false  "location_id"
// @Success      201   {object}  dto.ScanSessionDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scan-sessions [post]
func (h *BarcodeHandler) StartSession(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.StartScanSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.StartSession(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddScan godoc
// @Summary      Registrar lectura en una sesión
// @Tags         scanning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la sesión"
// @Param        body  body  dto.AddScanRequest  true  "code, duration_ms"
// @Success      201   {object}  dto.ScanDTO
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scan-sessions/{id}/scans [post]
func (h *BarcodeHandler) AddScan(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.AddScanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddScan(c.UserContext(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// EndSession godoc
// @Summary      Cerrar sesión de escaneo
// @Tags         scanning
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ScanSessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/scan-sessions/{id}/end [post]
func (h *BarcodeHandler) EndSession(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.EndSession(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSession godoc
// @Summary      Obtener sesión de escaneo
// @Tags         scanning
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ScanSessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scan-sessions/{id} [get]
func (h *BarcodeHandler) GetSession(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetSession(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordAttempt godoc
// @Summary      Reportar intento de lectura
// @Description  El cliente informa lecturas (incluidas las fallidas que nunca llegan a una sesión).
// @Tags         scanning
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ScanAttemptRequest  true  "code, format, success, duration_ms"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/scan-analytics/attempts [post]
func (h *BarcodeHandler) RecordAttempt(c *fiber.Ctx) error {
	var in dto.ScanAttemptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.RecordAttempt(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetScanAnalytics godoc
// @Summary      Rendimiento de lectura
// @Tags         scanning
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ScanAnalyticsDTO
// @Router       /api/scan-analytics [get]
func (h *BarcodeHandler) GetScanAnalytics(c *fiber.Ctx) error {
	return c.JSON(h.uc.ScanAnalytics())
}
