package barcode

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Valores por defecto del gestor de sesiones.
const (
	DefaultMaxActiveSessions = 5                // sesiones abiertas por usuario
	DefaultIdleTimeout       = 30 * time.Minute // sin lecturas, la sesión se cierra sola
	DefaultRetention         = time.Hour        // tiempo que se conserva una sesión cerrada
)

// SessionManager lleva las sesiones de escaneo en memoria, indexadas por ID.
// Seguro para uso concurrente; siempre devuelve copias de las sesiones.
// Las sesiones inactivas se cierran y las cerradas se eliminan al vencer la retención.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*entity.ScanSession
	maxActive   int
	idleTimeout time.Duration
	retention   time.Duration
	newID       func() string
}

// NewSessionManager construye el gestor; maxActive es el límite de sesiones abiertas por usuario
// (<= 0 usa DefaultMaxActiveSessions).
func NewSessionManager(maxActive int) *SessionManager {
	if maxActive <= 0 {
		maxActive = DefaultMaxActiveSessions
	}
	return &SessionManager{
		sessions:    make(map[string]*entity.ScanSession),
		maxActive:   maxActive,
		idleTimeout: DefaultIdleTimeout,
		retention:   DefaultRetention,
		newID:       uuid.NewString,
	}
}

// SetExpiry cambia el cierre por inactividad y la retención de sesiones cerradas.
// Valores <= 0 conservan el valor actual.
func (m *SessionManager) SetExpiry(idleTimeout, retention time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idleTimeout > 0 {
		m.idleTimeout = idleTimeout
	}
	if retention > 0 {
		m.retention = retention
	}
}

// Start abre una sesión nueva. Devuelve ErrConflict si el usuario alcanzó su máximo de sesiones activas.
func (m *SessionManager) Start(userID, locationID string, at time.Time) (entity.ScanSession, error) {
	m.Sweep(at)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeCountLocked(userID) >= m.maxActive {
		return entity.ScanSession{}, domain.ErrConflict
	}
	s := &entity.ScanSession{
		ID:         m.newID(),
		UserID:     userID,
		LocationID: locationID,
		StartedAt:  at,
		Scans:      []entity.ScanResult{},
	}
	m.sessions[s.ID] = s
	return cloneSession(s), nil
}

// Sweep cierra las sesiones sin actividad durante idleTimeout (EndedAt = última actividad)
// y elimina las cerradas hace más de retention. Devuelve cuántas eliminó.
func (m *SessionManager) Sweep(now time.Time) int {
	var expired []string
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.IsActive() {
			last := lastActivity(s)
			if now.Sub(last) < m.idleTimeout {
				continue
			}
			s.EndedAt = &last
		}
		if now.Sub(*s.EndedAt) >= m.retention {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	removed := 0
	for _, id := range expired {
		if m.Remove(id) == nil {
			removed++
		}
	}
	return removed
}

func lastActivity(s *entity.ScanSession) time.Time {
	if n := len(s.Scans); n > 0 && s.Scans[n-1].ScannedAt.After(s.StartedAt) {
		return s.Scans[n-1].ScannedAt
	}
	return s.StartedAt
}

// AddScan valida el código y lo agrega a la sesión. itemID es el ítem resuelto por el llamador (puede ser vacío).
func (m *SessionManager) AddScan(sessionID, code, itemID string, at time.Time) (entity.ScanResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return entity.ScanResult{}, domain.ErrNotFound
	}
	if !s.IsActive() {
		return entity.ScanResult{}, domain.ErrSessionClosed
	}
	v := Validate(code)
	scan := entity.ScanResult{
		Code:      v.Code,
		Format:    v.Format.String(),
		Valid:     v.Valid,
		ItemID:    itemID,
		ScannedAt: at,
	}
	s.Scans = append(s.Scans, scan)
	return scan, nil
}

// End cierra la sesión. Cerrar dos veces devuelve ErrSessionClosed.
func (m *SessionManager) End(sessionID string, at time.Time) (entity.ScanSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return entity.ScanSession{}, domain.ErrNotFound
	}
	if !s.IsActive() {
		return entity.ScanSession{}, domain.ErrSessionClosed
	}
	ended := at
	s.EndedAt = &ended
	return cloneSession(s), nil
}

// Get devuelve una copia de la sesión.
func (m *SessionManager) Get(sessionID string) (entity.ScanSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return entity.ScanSession{}, domain.ErrNotFound
	}
	return cloneSession(s), nil
}

// Active lista las sesiones abiertas, la más antigua primero.
func (m *SessionManager) Active() []entity.ScanSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.ScanSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		if s.IsActive() {
			out = append(out, cloneSession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Remove elimina la sesión (abierta o cerrada).
func (m *SessionManager) Remove(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *SessionManager) activeCountLocked(userID string) int {
	n := 0
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive() {
			n++
		}
	}
	return n
}

func cloneSession(s *entity.ScanSession) entity.ScanSession {
	out := *s
	out.Scans = append([]entity.ScanResult(nil), s.Scans...)
	if s.EndedAt != nil {
		ended := *s.EndedAt
		out.EndedAt = &ended
	}
	return out
}

// SessionSummary métricas de una sesión de escaneo.
type SessionSummary struct {
	SessionID      string
	TotalScans     int
	UniqueCodes    int
	ValidScans     int
	InvalidScans   int
	MatchedItems   int // lecturas asociadas a un ítem de inventario
	Duration       time.Duration
	ScansPerMinute decimal.Decimal
}

// Summarize calcula el resumen; para sesiones abiertas la duración se mide hasta now.
func Summarize(s entity.ScanSession, now time.Time) SessionSummary {
	out := SessionSummary{SessionID: s.ID, TotalScans: len(s.Scans)}
	unique := make(map[string]struct{}, len(s.Scans))
	for _, scan := range s.Scans {
		unique[scan.Code] = struct{}{}
		if scan.Valid {
			out.ValidScans++
		} else {
			out.InvalidScans++
		}
		if scan.ItemID != "" {
			out.MatchedItems++
		}
	}
	out.UniqueCodes = len(unique)

	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	if end.After(s.StartedAt) {
		out.Duration = end.Sub(s.StartedAt)
	}
	if out.Duration > 0 {
		minutes := decimal.NewFromFloat(out.Duration.Minutes())
		out.ScansPerMinute = decimal.NewFromInt(int64(out.TotalScans)).Div(minutes).Round(2)
	}
	return out
}
