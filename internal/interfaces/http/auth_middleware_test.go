package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	apphttp "github.com/jhoicas/Inventario-analytics/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-analytics/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventario-analytics-test"
	testExpMin    = 60
)

// tokenForRole genera el header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

type routeAccess struct {
	method  string
	path    string
	reports bool
}

var protectedRoutes = []routeAccess{
	{http.MethodGet, "/api/inventory/items", false},
	{http.MethodGet, "/api/inventory/items/item-arroz", false},
	{http.MethodPost, "/api/inventory/movements", false},
	{http.MethodPost, "/api/inventory/items/item-arroz/count", false},
	{http.MethodGet, "/api/barcodes/036000291452/validate", false},
	{http.MethodGet, "/api/barcodes/036000291452/lookup", false},
	{http.MethodPost, "/api/scan-sessions/", false},
	{http.MethodPost, "/api/scan-analytics/attempts", false},
	{http.MethodGet, "/api/inventory/reorder-suggestions", true},
	{http.MethodGet, "/api/inventory/metrics", true},
	{http.MethodGet, "/api/inventory/abc", true},
	{http.MethodGet, "/api/inventory/items/item-arroz/analytics", true},
	{http.MethodGet, "/api/dashboard/summary", true},
	{http.MethodPost, "/api/barcodes/labels", true},
	{http.MethodGet, "/api/scan-analytics", true},
}

func TestRouter_AccesoPorRol(t *testing.T) {
	app := buildAPI(t)

	for _, role := range []string{entity.RoleAdmin, entity.RoleManager, entity.RoleStaff} {
		token := tokenForRole(t, role)
		for _, r := range protectedRoutes {
			t.Run(role+" "+r.method+" "+r.path, func(t *testing.T) {
				resp := call(t, app, r.method, r.path, token, nil)
				defer resp.Body.Close()

				if r.reports && role == entity.RoleStaff {
					assert.Equal(t, http.StatusForbidden, resp.StatusCode)
					return
				}
				assert.NotContains(t, []int{http.StatusUnauthorized, http.StatusForbidden}, resp.StatusCode)
			})
		}
	}
}

func TestRouter_RechazaCredencialesInvalidas(t *testing.T) {
	app := buildAPI(t)
	sinRol, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)
	vencido, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"firma inválida", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token vencido", "Bearer " + vencido, "INVALID_TOKEN"},
		{"token sin rol", "Bearer " + sinRol, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodGet, "/api/inventory/metrics", tc.header, nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaClaimsEnLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{
			"user":    apphttp.GetUserID(c),
			"company": apphttp.GetCompanyID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleManager))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	claims := decode[map[string]string](t, resp)
	assert.Equal(t, map[string]string{
		"user": testUserID, "company": testCompanyID, "role": entity.RoleManager,
	}, claims)
}
