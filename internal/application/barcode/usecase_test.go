package barcode_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbarcode "github.com/jhoicas/Inventario-analytics/internal/application/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	domainbc "github.com/jhoicas/Inventario-analytics/internal/domain/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/infrastructure/memory"
)

// labelRecorder guarda las etiquetas recibidas en lugar de renderizarlas.
type labelRecorder struct {
	labels []appbarcode.Label
}

func (r *labelRecorder) GenerateLabels(_ context.Context, labels []appbarcode.Label) ([]byte, error) {
	r.labels = labels
	return []byte("%PDF-fake"), nil
}

func newUseCase(t *testing.T) (*appbarcode.UseCase, *labelRecorder) {
	t.Helper()
	store := memory.NewStore()
	store.AddItems(
		entity.InventoryItem{ID: "arroz", CompanyID: "c1", SKU: "ARZ-1", Name: "Arroz", Barcode: "036000291452", IsActive: true},
		entity.InventoryItem{ID: "salsa", CompanyID: "c1", SKU: "SAL-9", Name: "Salsa", IsActive: true},
		entity.InventoryItem{ID: "ajeno", CompanyID: "c2", SKU: "X-1", Name: "Ajeno", Barcode: "4006381333931", IsActive: true},
	)
	rec := &labelRecorder{}
	uc := appbarcode.NewUseCase(
		memory.NewItemRepository(store),
		domainbc.NewSessionManager(2),
		domainbc.NewScanAnalytics(100, 5),
		rec,
	)
	return uc, rec
}

func TestValidate_NormalizaAGTIN14(t *testing.T) {
	uc, _ := newUseCase(t)

	v := uc.Validate(" 036000291452 ")
	assert.True(t, v.Valid)
	assert.Equal(t, "UPC_A", v.Format)
	assert.Equal(t, "00036000291452", v.GTIN14)

	bad := uc.Validate("036000291453")
	assert.False(t, bad.Valid)
	assert.Empty(t, bad.GTIN14)
	assert.NotEmpty(t, bad.Reason)
}

func TestLookup_VariantesGTINYEmpresa(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	res, err := uc.Lookup(ctx, "c1", "0036000291452")
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "arroz", res.Item.ID)

	other, err := uc.Lookup(ctx, "c1", "4006381333931")
	require.NoError(t, err)
	assert.False(t, other.Found)
	assert.True(t, other.Validation.Valid)

	_, err = uc.Lookup(ctx, "c1", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidBarcode)
}

func TestParseGS1(t *testing.T) {
	uc, _ := newUseCase(t)

	data, err := uc.ParseGS1("0104987123456789" + "17280115" + "10ABC123")
	require.NoError(t, err)
	assert.Equal(t, "04987123456789", data.GTIN14)
	assert.Equal(t, "ABC123", data.LotNumber)

	_, err = uc.ParseGS1("XYZ")
	assert.ErrorIs(t, err, domain.ErrInvalidBarcode)
}

func TestSesion_CicloYPropietario(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	s, err := uc.StartSession(ctx, "u1", dto.StartScanSessionRequest{LocationID: "cocina"})
	require.NoError(t, err)
	assert.True(t, s.Active)

	scan, err := uc.AddScan(ctx, "c1", "u1", s.ID, dto.AddScanRequest{Code: "036000291452", DurationMs: 300})
	require.NoError(t, err)
	assert.True(t, scan.Valid)
	assert.Equal(t, "arroz", scan.ItemID)
	assert.Equal(t, "Arroz", scan.ItemName)

	miss, err := uc.AddScan(ctx, "c1", "u1", s.ID, dto.AddScanRequest{Code: "036000291453", DurationMs: 900})
	require.NoError(t, err)
	assert.False(t, miss.Valid)
	assert.Empty(t, miss.ItemID)

	_, err = uc.AddScan(ctx, "c1", "otro", s.ID, dto.AddScanRequest{Code: "036000291452"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetSession(ctx, "otro", s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	ended, err := uc.EndSession(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.False(t, ended.Active)
	assert.Equal(t, 2, ended.Summary.TotalScans)
	assert.Equal(t, 1, ended.Summary.ValidScans)
	assert.Equal(t, 1, ended.Summary.MatchedItems)

	_, err = uc.AddScan(ctx, "c1", "u1", s.ID, dto.AddScanRequest{Code: "036000291452"})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)

	_, err = uc.GetSession(ctx, "u1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSesion_LimiteDeActivas(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := uc.StartSession(ctx, "u1", dto.StartScanSessionRequest{})
		require.NoError(t, err)
	}
	_, err := uc.StartSession(ctx, "u1", dto.StartScanSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestScanAnalytics_CombinaSesionesEIntentos(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	s, err := uc.StartSession(ctx, "u1", dto.StartScanSessionRequest{})
	require.NoError(t, err)
	_, err = uc.AddScan(ctx, "c1", "u1", s.ID, dto.AddScanRequest{Code: "036000291452", DurationMs: 200})
	require.NoError(t, err)
	require.NoError(t, uc.RecordAttempt(dto.ScanAttemptRequest{Code: "", Format: "UNKNOWN", Success: false, DurationMs: 1800}))
	assert.ErrorIs(t, uc.RecordAttempt(dto.ScanAttemptRequest{DurationMs: -1}), domain.ErrInvalidInput)

	r := uc.ScanAnalytics()
	assert.Equal(t, 2, r.TotalAttempts)
	assert.Equal(t, 1, r.Successful)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, "50", r.SuccessRate.String())
	assert.Equal(t, 1, r.ByFormat["UPC_A"])
	assert.Equal(t, 1, r.ActiveSessions)
	require.NotEmpty(t, r.TopCodes)
	assert.Equal(t, "036000291452", r.TopCodes[0].Code)
}

func TestGenerateLabels(t *testing.T) {
	uc, rec := newUseCase(t)
	ctx := context.Background()

	out, err := uc.GenerateLabels(ctx, "c1", dto.LabelRequest{ItemIDs: []string{"arroz", "salsa"}, Copies: 2})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	require.Len(t, rec.labels, 4)
	assert.Equal(t, "UPC_A", rec.labels[0].Format)
	assert.Equal(t, "SAL-9", rec.labels[2].Code) // sin código de barras usa el SKU
	assert.Equal(t, "CODE_39", rec.labels[2].Format)

	_, err = uc.GenerateLabels(ctx, "c1", dto.LabelRequest{ItemIDs: []string{"ajeno"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GenerateLabels(ctx, "c1", dto.LabelRequest{ItemIDs: []string{"nada"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GenerateLabels(ctx, "c1", dto.LabelRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.GenerateLabels(ctx, "c1", dto.LabelRequest{ItemIDs: []string{"arroz"}, Copies: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
