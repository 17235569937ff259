package http

import (
	"github.com/gofiber/fiber/v2"
	appbarcode "github.com/jhoicas/Inventario-analytics/internal/application/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
)

// BarcodeHandler maneja validación, búsqueda, GS1, etiquetas y sesiones de escaneo.
type BarcodeHandler struct {
	uc *appbarcode.UseCase
}

// NewBarcodeHandler construye el handler.
func NewBarcodeHandler(uc *appbarcode.UseCase) *BarcodeHandler {
	return &BarcodeHandler{uc: uc}
}

// Validate godoc
// @Summary      Validar código de barras
// @Description  Detecta el formato y verifica el dígito de control (UPC-A / EAN-13).
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código leído"
// @Success      200   {object}  dto.BarcodeValidationDTO
// @Router       /api/barcodes/{code}/validate [get]
func (h *BarcodeHandler) Validate(c *fiber.Ctx) error {
	return c.JSON(h.uc.Validate(c.Params("code")))
}

// Lookup godoc
// @Summary      Buscar ítem por código de barras
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código leído"
// @Success      200   {object}  dto.BarcodeLookupDTO
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/barcodes/{code}/lookup [get]
func (h *BarcodeHandler) Lookup(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Lookup(c.UserContext(), companyID, c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ParseGS1 godoc
// @Summary      Interpretar código GS1
// @Description  Acepta GTIN plano o element string con AIs (01) GTIN, (17) vencimiento, (10) lote.
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código GS1"
// @Success      200   {object}  dto.GS1DTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/barcodes/{code}/gs1 [get]
func (h *BarcodeHandler) ParseGS1(c *fiber.Ctx) error {
	out, err := h.uc.ParseGS1(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateLabels godoc
// @Summary      Generar etiquetas en PDF
// @Tags         barcodes
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.LabelRequest  true  "item_ids, copies"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/barcodes/labels [post]
func (h *BarcodeHandler) GenerateLabels(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.LabelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	pdf, err := h.uc.GenerateLabels(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiquetas.pdf"`)
	return c.Send(pdf)
}
