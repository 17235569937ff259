// Package barcode contiene los casos de uso de códigos de barras: validación,
// búsqueda de ítems, sesiones de escaneo, analítica de lectura y etiquetas.
package barcode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	appinv "github.com/jhoicas/Inventario-analytics/internal/application/inventory"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	domainbc "github.com/jhoicas/Inventario-analytics/internal/domain/barcode"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/Inventario-analytics/internal/domain/repository"
)

const (
	maxLabelCopies = 100
	maxLabelItems  = 500
)

// UseCase orquesta las utilidades de dominio de códigos de barras con el repositorio de ítems.
type UseCase struct {
	itemRepo repository.ItemRepository
	sessions *domainbc.SessionManager
	scans    *domainbc.ScanAnalytics
	labels   LabelGenerator
}

// NewUseCase construye el caso de uso. sessions y scans son compartidos por todo el proceso.
func NewUseCase(
	itemRepo repository.ItemRepository,
	sessions *domainbc.SessionManager,
	scans *domainbc.ScanAnalytics,
	labels LabelGenerator,
) *UseCase {
	return &UseCase{itemRepo: itemRepo, sessions: sessions, scans: scans, labels: labels}
}

// Validate detecta el formato, verifica el dígito de control y normaliza a GTIN-14 cuando aplica.
func (uc *UseCase) Validate(code string) dto.BarcodeValidationDTO {
	v := domainbc.Validate(code)
	out := dto.BarcodeValidationDTO{
		Code:   v.Code,
		Format: v.Format.String(),
		Valid:  v.Valid,
		Reason: v.Reason,
	}
	if v.Valid {
		if gtin, err := domainbc.ToGTIN14(v.Code); err == nil {
			out.GTIN14 = gtin
		}
	}
	return out
}

// Lookup busca el ítem de la empresa asociado al código. Los GTIN numéricos se buscan
// también en sus variantes EAN-13/UPC-A/GTIN-14 para tolerar ceros a la izquierda.
func (uc *UseCase) Lookup(ctx context.Context, companyID, code string) (*dto.BarcodeLookupDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidBarcode
	}
	out := &dto.BarcodeLookupDTO{Validation: uc.Validate(code)}
	item, err := uc.findItem(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if item != nil {
		itemDTO := appinv.ToItemDTO(item)
		out.Found = true
		out.Item = &itemDTO
	}
	return out, nil
}

func (uc *UseCase) findItem(ctx context.Context, companyID, code string) (*entity.InventoryItem, error) {
	for _, candidate := range lookupCandidates(code) {
		item, err := uc.itemRepo.GetByBarcode(ctx, companyID, candidate)
		if err != nil {
			return nil, fmt.Errorf("lookup barcode: %w", err)
		}
		if item != nil {
			return item, nil
		}
	}
	return nil, nil
}

// lookupCandidates código tal cual y, si es un GTIN, sus formas de 14, 13 y 12 dígitos.
func lookupCandidates(code string) []string {
	out := []string{code}
	gtin, err := domainbc.ToGTIN14(code)
	if err != nil {
		return out
	}
	forms := []string{gtin}
	if gtin[0] == '0' {
		forms = append(forms, gtin[1:])
	}
	if strings.HasPrefix(gtin, "00") {
		forms = append(forms, gtin[2:])
	}
	for _, f := range forms {
		if f != code {
			out = append(out, f)
		}
	}
	return out
}

// ParseGS1 interpreta una cadena GS1 (GTIN, vencimiento y lote).
func (uc *UseCase) ParseGS1(code string) (*dto.GS1DTO, error) {
	data, err := domainbc.ParseGS1(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBarcode, err)
	}
	return &dto.GS1DTO{GTIN14: data.GTIN14, ExpiryDate: data.ExpiryDate, LotNumber: data.LotNumber}, nil
}

// ── Sesiones de escaneo ───────────────────────────────────────────────────────

// StartSession abre una sesión de escaneo para el usuario.
func (uc *UseCase) StartSession(_ context.Context, userID string, in dto.StartScanSessionRequest) (*dto.ScanSessionDTO, error) {
	s, err := uc.sessions.Start(userID, in.LocationID, time.Now())
	if err != nil {
		return nil, err
	}
	out := toSessionDTO(s, time.Now())
	return &out, nil
}

// AddScan registra una lectura en la sesión, resolviendo el ítem por código de barras.
// Cada lectura alimenta la analítica de escaneo (éxito = código válido).
func (uc *UseCase) AddScan(ctx context.Context, companyID, userID, sessionID string, in dto.AddScanRequest) (*dto.ScanDTO, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrInvalidBarcode
	}
	if err := uc.ownSession(sessionID, userID); err != nil {
		return nil, err
	}
	item, err := uc.findItem(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	itemID, itemName := "", ""
	if item != nil {
		itemID, itemName = item.ID, item.Name
	}

	now := time.Now()
	scan, err := uc.sessions.AddScan(sessionID, code, itemID, now)
	if err != nil {
		return nil, err
	}
	uc.scans.Record(domainbc.Attempt{
		Code:     scan.Code,
		Format:   domainbc.Format(scan.Format),
		Success:  scan.Valid,
		Duration: time.Duration(in.DurationMs) * time.Millisecond,
		At:       now,
	})
	return &dto.ScanDTO{
		Code:      scan.Code,
		Format:    scan.Format,
		Valid:     scan.Valid,
		ItemID:    scan.ItemID,
		ItemName:  itemName,
		ScannedAt: scan.ScannedAt,
	}, nil
}

// EndSession cierra la sesión y devuelve su resumen.
func (uc *UseCase) EndSession(_ context.Context, userID, sessionID string) (*dto.ScanSessionDTO, error) {
	if err := uc.ownSession(sessionID, userID); err != nil {
		return nil, err
	}
	now := time.Now()
	s, err := uc.sessions.End(sessionID, now)
	if err != nil {
		return nil, err
	}
	out := toSessionDTO(s, now)
	return &out, nil
}

// GetSession devuelve la sesión con su resumen actual.
func (uc *UseCase) GetSession(_ context.Context, userID, sessionID string) (*dto.ScanSessionDTO, error) {
	s, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, domain.ErrForbidden
	}
	out := toSessionDTO(s, time.Now())
	return &out, nil
}

func (uc *UseCase) ownSession(sessionID, userID string) error {
	s, err := uc.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if s.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}

func toSessionDTO(s entity.ScanSession, now time.Time) dto.ScanSessionDTO {
	sum := domainbc.Summarize(s, now)
	out := dto.ScanSessionDTO{
		ID:         s.ID,
		UserID:     s.UserID,
		LocationID: s.LocationID,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		Active:     s.IsActive(),
		Scans:      make([]dto.ScanDTO, 0, len(s.Scans)),
		Summary: dto.ScanSessionSummaryDTO{
			TotalScans:      sum.TotalScans,
			UniqueCodes:     sum.UniqueCodes,
			ValidScans:      sum.ValidScans,
			InvalidScans:    sum.InvalidScans,
			MatchedItems:    sum.MatchedItems,
			DurationSeconds: int64(sum.Duration.Seconds()),
			ScansPerMinute:  sum.ScansPerMinute,
		},
	}
	for _, scan := range s.Scans {
		out.Scans = append(out.Scans, dto.ScanDTO{
			Code:      scan.Code,
			Format:    scan.Format,
			Valid:     scan.Valid,
			ItemID:    scan.ItemID,
			ScannedAt: scan.ScannedAt,
		})
	}
	return out
}

// ── Analítica de escaneo ──────────────────────────────────────────────────────

// RecordAttempt registra un intento reportado por el cliente (p. ej. lecturas fallidas).
func (uc *UseCase) RecordAttempt(in dto.ScanAttemptRequest) error {
	if in.DurationMs < 0 {
		return domain.ErrInvalidInput
	}
	uc.scans.Record(domainbc.Attempt{
		Code:     strings.TrimSpace(in.Code),
		Format:   domainbc.Format(in.Format),
		Success:  in.Success,
		Duration: time.Duration(in.DurationMs) * time.Millisecond,
		At:       time.Now(),
	})
	return nil
}

// ScanAnalytics devuelve el reporte de rendimiento de lectura.
func (uc *UseCase) ScanAnalytics() dto.ScanAnalyticsDTO {
	r := uc.scans.Report()
	out := dto.ScanAnalyticsDTO{
		TotalAttempts:     r.TotalAttempts,
		Successful:        r.Successful,
		Failed:            r.Failed,
		SuccessRate:       r.SuccessRate,
		AverageDurationMs: r.AverageDuration.Milliseconds(),
		P95DurationMs:     r.P95Duration.Milliseconds(),
		ByFormat:          make(map[string]int, len(r.ByFormat)),
		TopCodes:          make([]dto.CodeCountDTO, 0, len(r.TopCodes)),
		ActiveSessions:    len(uc.sessions.Active()),
	}
	for f, n := range r.ByFormat {
		out.ByFormat[f.String()] = n
	}
	for _, c := range r.TopCodes {
		out.TopCodes = append(out.TopCodes, dto.CodeCountDTO{Code: c.Code, Count: c.Count})
	}
	return out
}

// ── Etiquetas ─────────────────────────────────────────────────────────────────

// GenerateLabels renderiza una hoja de etiquetas para los ítems indicados.
// Los ítems sin código de barras usan su SKU (CODE-128).
func (uc *UseCase) GenerateLabels(ctx context.Context, companyID string, in dto.LabelRequest) ([]byte, error) {
	if len(in.ItemIDs) == 0 || len(in.ItemIDs) > maxLabelItems {
		return nil, domain.ErrInvalidInput
	}
	copies := in.Copies
	if copies <= 0 {
		copies = 1
	}
	if copies > maxLabelCopies {
		return nil, domain.ErrInvalidInput
	}

	labels := make([]Label, 0, len(in.ItemIDs)*copies)
	for _, id := range in.ItemIDs {
		item, err := uc.itemRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		code := item.Barcode
		if code == "" {
			code = item.SKU
		}
		label := Label{
			Code:   code,
			Format: domainbc.DetectFormat(code).String(),
			SKU:    item.SKU,
			Name:   item.Name,
		}
		for i := 0; i < copies; i++ {
			labels = append(labels, label)
		}
	}
	return uc.labels.GenerateLabels(ctx, labels)
}
