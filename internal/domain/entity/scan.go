package entity

import "time"

// ScanResult lectura individual dentro de una sesión de escaneo.
type ScanResult struct {
	Code      string
	Format    string
	Valid     bool
	ItemID    string // vacío si el código no corresponde a ningún ítem
	ScannedAt time.Time
}

// ScanSession agrupa lecturas de un usuario (p. ej. un conteo físico).
type ScanSession struct {
	ID         string
	UserID     string
	LocationID string
	StartedAt  time.Time
	EndedAt    *time.Time
	Scans      []ScanResult
}

// IsActive indica si la sesión sigue abierta.
func (s *ScanSession) IsActive() bool {
	return s.EndedAt == nil
}
