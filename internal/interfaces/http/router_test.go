package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Inventario-analytics/internal/application/analytics"
	"github.com/jhoicas/Inventario-analytics/internal/application/auth"
	appbarcode "github.com/jhoicas/Inventario-analytics/internal/application/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	domainbc "github.com/jhoicas/Inventario-analytics/internal/domain/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-analytics/internal/interfaces/http"
	"github.com/jhoicas/Inventario-analytics/pkg/logger"
)

const otherCompanyID = "00000000-0000-0000-0000-000000000009"

type fakeLabels struct{}

func (fakeLabels) GenerateLabels(_ context.Context, labels []appbarcode.Label) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// buildAPI arma la app completa sobre el store en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.AddItems(
		entity.InventoryItem{
			ID: "item-arroz", CompanyID: testCompanyID, SKU: "ARR-1", Barcode: "036000291452",
			Name: "Arroz", Category: "granos", Unit: "kg", IsActive: true,
			CurrentStock: decimal.NewFromInt(10), MinStock: decimal.NewFromInt(5),
			MaxStock: decimal.NewFromInt(50), CostPrice: decimal.NewFromInt(2),
		},
		entity.InventoryItem{
			ID: "item-ajeno", CompanyID: otherCompanyID, SKU: "AJ-1", Name: "Ajeno",
			Unit: "und", IsActive: true, CurrentStock: decimal.NewFromInt(3),
		},
	)

	itemRepo := memory.NewItemRepository(store)
	movRepo := memory.NewStockMovementRepository(store)
	wasteRepo := memory.NewWasteLogRepository(store)
	recipeRepo := memory.NewRecipeRepository(store)
	settings := inventory.DefaultSettings()

	register := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store))
	replenishment := inventory.NewReplenishmentUseCase(itemRepo, movRepo, settings)
	analyticsUC := appanalytics.NewAnalyticsUseCase(itemRepo, movRepo, wasteRepo, recipeRepo, settings)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ItemUC:           inventory.NewItemUseCase(itemRepo),
		RegisterMovement: register,
		StockCount:       inventory.NewStockCountUseCase(itemRepo, movRepo, register),
		Replenishment:    replenishment,
		AnalyticsUC:      analyticsUC,
		DashboardUC:      appanalytics.NewDashboardUseCase(analyticsUC, replenishment, logger.Nop()),
		BarcodeUC:        appbarcode.NewUseCase(itemRepo, domainbc.NewSessionManager(2), domainbc.NewScanAnalytics(100, 5), fakeLabels{}),
		JWTSecret:        testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_RegistroYLogin(t *testing.T) {
	app := buildAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "cocina@example.com", Password: "secreto123", CompanyID: testCompanyID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, entity.RoleStaff, user.Role)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "cocina@example.com", Password: "secreto123", CompanyID: testCompanyID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "cocina@example.com", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "cocina@example.com", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = call(t, app, http.MethodGet, "/api/inventory/items", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ReportesSoloAdminYManager(t *testing.T) {
	app := buildAPI(t)

	resp := call(t, app, http.MethodGet, "/api/inventory/metrics", tokenForRole(t, entity.RoleStaff), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory/metrics", tokenForRole(t, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	metrics := decode[dto.InventoryMetricsDTO](t, resp)
	assert.True(t, metrics.TotalValue.Equal(decimal.NewFromInt(20)), "10 kg a 2 = 20, got %s", metrics.TotalValue)

	resp = call(t, app, http.MethodGet, "/api/dashboard/summary", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory/items", tokenForRole(t, entity.RoleStaff), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ItemListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Arroz", list.Items[0].Name)
}

func TestRouter_ItemDeOtraEmpresa(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, entity.RoleStaff)

	resp := call(t, app, http.MethodGet, "/api/inventory/items/item-ajeno", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory/items/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_RegistrarMovimientos(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, entity.RoleStaff)
	cost := decimal.NewFromInt(2)

	resp := call(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ItemID: "item-arroz", Type: entity.MovementPurchase, Quantity: decimal.NewFromInt(5), UnitCost: &cost,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.True(t, mov.StockAfter.Equal(decimal.NewFromInt(15)), "got %s", mov.StockAfter)

	resp = call(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ItemID: "item-arroz", Type: entity.MovementSale, Quantity: decimal.NewFromInt(100),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = call(t, app, http.MethodPost, "/api/inventory/movements", token, dto.RegisterMovementRequest{
		ItemID: "item-arroz", Type: "robo", Quantity: decimal.NewFromInt(1),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ConteoFisico(t *testing.T) {
	app := buildAPI(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/items/item-arroz/count", tokenForRole(t, entity.RoleStaff), dto.StockCountRequest{
		CountedQuantity: decimal.NewFromInt(8),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StockCountResultDTO](t, resp)
	assert.True(t, out.QuantityVariance.Equal(decimal.NewFromInt(-2)), "got %s", out.QuantityVariance)
	assert.Empty(t, out.AdjustmentID)
}

func TestRouter_CodigosDeBarras(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, entity.RoleStaff)

	resp := call(t, app, http.MethodGet, "/api/barcodes/036000291452/validate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[dto.BarcodeValidationDTO](t, resp)
	assert.True(t, v.Valid)
	assert.Equal(t, "UPC_A", v.Format)

	resp = call(t, app, http.MethodGet, "/api/barcodes/036000291452/lookup", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	l := decode[dto.BarcodeLookupDTO](t, resp)
	require.True(t, l.Found)
	assert.Equal(t, "item-arroz", l.Item.ID)

	resp = call(t, app, http.MethodPost, "/api/barcodes/labels", token, dto.LabelRequest{ItemIDs: []string{"item-arroz"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/barcodes/labels", tokenForRole(t, entity.RoleManager), dto.LabelRequest{ItemIDs: []string{"item-arroz"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRouter_SesionDeEscaneo(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, entity.RoleStaff)

	resp := call(t, app, http.MethodPost, "/api/scan-sessions", token, dto.StartScanSessionRequest{LocationID: "cocina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decode[dto.ScanSessionDTO](t, resp)
	require.NotEmpty(t, session.ID)

	resp = call(t, app, http.MethodPost, "/api/scan-sessions/"+session.ID+"/scans", token, dto.AddScanRequest{Code: "036000291452"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	scan := decode[dto.ScanDTO](t, resp)
	assert.Equal(t, "item-arroz", scan.ItemID)

	resp = call(t, app, http.MethodPost, "/api/scan-sessions/"+session.ID+"/end", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ended := decode[dto.ScanSessionDTO](t, resp)
	assert.False(t, ended.Active)
	assert.Equal(t, 1, ended.Summary.TotalScans)

	resp = call(t, app, http.MethodPost, "/api/scan-sessions/"+session.ID+"/scans", token, dto.AddScanRequest{Code: "036000291452"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "SESSION_CLOSED", body.Code)

	resp = call(t, app, http.MethodPost, "/api/scan-analytics/attempts", token, dto.ScanAttemptRequest{Code: "xx", Success: false, DurationMs: 40})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/scan-analytics", tokenForRole(t, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.ScanAnalyticsDTO](t, resp)
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, 1, stats.Failed)
}

func TestRouter_BodyInvalido(t *testing.T) {
	app := buildAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/movements", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleStaff))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
