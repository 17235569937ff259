package barcode_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-analytics/internal/domain"
	"github.com/jhoicas/Inventario-analytics/internal/domain/barcode"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func TestSessionManager_CicloCompleto(t *testing.T) {
	m := barcode.NewSessionManager(0)

	s, err := m.Start("user-1", "loc-1", t0)
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	assert.True(t, s.IsActive())

	scan, err := m.AddScan(s.ID, "4006381333931", "item-1", t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, scan.Valid)
	assert.Equal(t, "EAN_13", scan.Format)

	_, err = m.AddScan(s.ID, "4006381333932", "", t0.Add(2*time.Minute))
	require.NoError(t, err)
	_, err = m.AddScan(s.ID, "4006381333931", "item-1", t0.Add(3*time.Minute))
	require.NoError(t, err)

	assert.Len(t, m.Active(), 1)

	ended, err := m.End(s.ID, t0.Add(6*time.Minute))
	require.NoError(t, err)
	assert.False(t, ended.IsActive())
	assert.Empty(t, m.Active())

	sum := barcode.Summarize(ended, t0.Add(time.Hour))
	assert.Equal(t, 3, sum.TotalScans)
	assert.Equal(t, 2, sum.UniqueCodes)
	assert.Equal(t, 2, sum.ValidScans)
	assert.Equal(t, 1, sum.InvalidScans)
	assert.Equal(t, 2, sum.MatchedItems)
	assert.Equal(t, 6*time.Minute, sum.Duration, "sesión cerrada mide hasta EndedAt")
	assert.Equal(t, "0.5", sum.ScansPerMinute.String())
}

func TestSessionManager_Errores(t *testing.T) {
	m := barcode.NewSessionManager(1)

	_, err := m.AddScan("no-existe", "123456", "", t0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = m.Get("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, m.Remove("no-existe"), domain.ErrNotFound)

	s, err := m.Start("u", "l", t0)
	require.NoError(t, err)

	_, err = m.Start("u", "l", t0)
	assert.ErrorIs(t, err, domain.ErrConflict, "máximo de sesiones activas alcanzado")

	_, err = m.End(s.ID, t0)
	require.NoError(t, err)
	_, err = m.End(s.ID, t0)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	_, err = m.AddScan(s.ID, "123456", "", t0)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)

	_, err = m.Start("u", "l", t0)
	assert.NoError(t, err, "al cerrar se libera el cupo")

	require.NoError(t, m.Remove(s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionManager_DevuelveCopias(t *testing.T) {
	m := barcode.NewSessionManager(0)
	s, _ := m.Start("u", "l", t0)
	_, _ = m.AddScan(s.ID, "123456", "", t0)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	got.Scans[0].Code = "mutado"

	again, _ := m.Get(s.ID)
	assert.Equal(t, "123456", again.Scans[0].Code)
}

func TestSessionManager_Concurrente(t *testing.T) {
	m := barcode.NewSessionManager(0)
	s, _ := m.Start("u", "l", t0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.AddScan(s.ID, "036000291452", "", t0)
		}()
	}
	wg.Wait()

	got, _ := m.Get(s.ID)
	assert.Len(t, got.Scans, 50)
}

func TestSummarize_SesionAbiertaSinLecturas(t *testing.T) {
	m := barcode.NewSessionManager(0)
	s, _ := m.Start("u", "l", t0)
	sum := barcode.Summarize(s, t0.Add(30*time.Second))
	assert.Equal(t, 0, sum.TotalScans)
	assert.Equal(t, 30*time.Second, sum.Duration)
	assert.True(t, sum.ScansPerMinute.IsZero())
}

func TestSessionManager_LimitePorUsuario(t *testing.T) {
	m := barcode.NewSessionManager(3)
	for i := 0; i < 3; i++ {
		_, err := m.Start("user-a", "l", t0)
		require.NoError(t, err)
	}
	_, err := m.Start("user-a", "l", t0)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = m.Start("user-b", "l", t0)
	assert.NoError(t, err, "las sesiones de otro usuario no consumen su cupo")
}

func TestSessionManager_CierrePorInactividad(t *testing.T) {
	m := barcode.NewSessionManager(1)
	m.SetExpiry(10*time.Minute, time.Hour)

	s, err := m.Start("u", "l", t0)
	require.NoError(t, err)
	_, err = m.AddScan(s.ID, "036000291452", "", t0.Add(5*time.Minute))
	require.NoError(t, err)

	_, err = m.Start("u", "l", t0.Add(14*time.Minute))
	assert.ErrorIs(t, err, domain.ErrConflict, "la última lectura fue hace 9 minutos")

	_, err = m.Start("u", "l", t0.Add(15*time.Minute))
	require.NoError(t, err, "sesión abandonada libera el cupo")

	old, err := m.Get(s.ID)
	require.NoError(t, err, "cerrada pero dentro de la retención")
	assert.False(t, old.IsActive())
	assert.Equal(t, t0.Add(5*time.Minute), *old.EndedAt)
}

func TestSessionManager_EliminaCerradasTrasRetencion(t *testing.T) {
	m := barcode.NewSessionManager(1)
	m.SetExpiry(0, time.Hour)

	var first string
	at := t0
	for i := 0; i < 1000; i++ {
		s, err := m.Start("u", "l", at)
		require.NoError(t, err)
		if first == "" {
			first = s.ID
		}
		_, err = m.End(s.ID, at)
		require.NoError(t, err)
		at = at.Add(time.Minute)
	}

	_, err := m.Get(first)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Zero(t, m.Sweep(at.Add(-30*time.Minute)))
	assert.Equal(t, 60, m.Sweep(at.Add(time.Hour)), "quedaban las últimas 60 sesiones")
}
