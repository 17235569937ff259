package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarcodeValidationDTO respuesta de GET /api/barcodes/:code/validate.
type BarcodeValidationDTO struct {
	Code   string `json:"code"`
	Format string `json:"format"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	GTIN14 string `json:"gtin14,omitempty"`
}

// BarcodeLookupDTO respuesta de GET /api/barcodes/:code/lookup.
type BarcodeLookupDTO struct {
	Validation BarcodeValidationDTO `json:"validation"`
	Found      bool                 `json:"found"`
	Item       *ItemDTO             `json:"item,omitempty"`
}

// GS1DTO respuesta de GET /api/barcodes/:code/gs1.
type GS1DTO struct {
	GTIN14     string `json:"gtin14"`
	ExpiryDate string `json:"expiry_date,omitempty"` // YYYYMM
	LotNumber  string `json:"lot_number,omitempty"`
}

// LabelRequest body para POST /api/barcodes/labels.
type LabelRequest struct {
	ItemIDs []string `json:"item_ids"`
	Copies  int      `json:"copies"` // etiquetas por ítem (default 1)
}

// StartScanSessionRequest body para POST /api/scan-sessions.
type StartScanSessionRequest struct {
	LocationID string `json:"location_id"`
}

// AddScanRequest body para POST /api/scan-sessions/:id/scans.
type AddScanRequest struct {
	Code       string `json:"code"`
	DurationMs int64  `json:"duration_ms,omitempty"` // tiempo de decodificación reportado por el lector
}

// ScanDTO lectura dentro de una sesión.
type ScanDTO struct {
	Code      string    `json:"code"`
	Format    string    `json:"format"`
	Valid     bool      `json:"valid"`
	ItemID    string    `json:"item_id,omitempty"`
	ItemName  string    `json:"item_name,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// ScanSessionSummaryDTO métricas de la sesión.
type ScanSessionSummaryDTO struct {
	TotalScans      int             `json:"total_scans"`
	UniqueCodes     int             `json:"unique_codes"`
	ValidScans      int             `json:"valid_scans"`
	InvalidScans    int             `json:"invalid_scans"`
	MatchedItems    int             `json:"matched_items"`
	DurationSeconds int64           `json:"duration_seconds"`
	ScansPerMinute  decimal.Decimal `json:"scans_per_minute"`
}

// ScanSessionDTO estado de una sesión de escaneo.
type ScanSessionDTO struct {
	ID         string                `json:"id"`
	UserID     string                `json:"user_id"`
	LocationID string                `json:"location_id"`
	StartedAt  time.Time             `json:"started_at"`
	EndedAt    *time.Time            `json:"ended_at,omitempty"`
	Active     bool                  `json:"active"`
	Scans      []ScanDTO             `json:"scans"`
	Summary    ScanSessionSummaryDTO `json:"summary"`
}

// ScanAttemptRequest body para POST /api/scan-analytics/attempts (lecturas fallidas del cliente).
type ScanAttemptRequest struct {
	Code       string `json:"code"`
	Format     string `json:"format,omitempty"`
	Success    bool   `json:"success"`
	DurationMs int64  `json:"duration_ms"`
}

// CodeCountDTO código y lecturas exitosas.
type CodeCountDTO struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// ScanAnalyticsDTO respuesta de GET /api/scan-analytics.
type ScanAnalyticsDTO struct {
	TotalAttempts     int             `json:"total_attempts"`
	Successful        int             `json:"successful"`
	Failed            int             `json:"failed"`
	SuccessRate       decimal.Decimal `json:"success_rate"`
	AverageDurationMs int64           `json:"average_duration_ms"`
	P95DurationMs     int64           `json:"p95_duration_ms"`
	ByFormat          map[string]int  `json:"by_format"`
	TopCodes          []CodeCountDTO  `json:"top_codes"`
	ActiveSessions    int             `json:"active_sessions"`
}
