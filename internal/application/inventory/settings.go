package inventory

import (
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
)

// Valores por defecto de las ventanas de cálculo (días).
const (
	DefaultUsageWindowDays = 30
	DefaultPeriodDays      = 30
	DefaultLeadTimeDays    = 7
)

// Settings parámetros configurables de los cálculos de inventario.
type Settings struct {
	Reorder         domaininv.ReorderParams
	UsageWindowDays int // ventana del consumo diario promedio
	PeriodDays      int // ventana de rotación, merma y costo de merma
	LeadTimeDays    int // lead time para ítems que no lo definen
}

// DefaultSettings devuelve la configuración por defecto.
func DefaultSettings() Settings {
	return Settings{
		Reorder:         domaininv.DefaultReorderParams(),
		UsageWindowDays: DefaultUsageWindowDays,
		PeriodDays:      DefaultPeriodDays,
		LeadTimeDays:    DefaultLeadTimeDays,
	}
}

// WithDefaults completa los campos no configurados.
func (s Settings) WithDefaults() Settings {
	if s.UsageWindowDays <= 0 {
		s.UsageWindowDays = DefaultUsageWindowDays
	}
	if s.PeriodDays <= 0 {
		s.PeriodDays = DefaultPeriodDays
	}
	if s.LeadTimeDays <= 0 {
		s.LeadTimeDays = DefaultLeadTimeDays
	}
	return s
}

// LeadTimeFor lead time del ítem o el valor por defecto configurado.
func (s Settings) LeadTimeFor(leadTimeDays int) int {
	if leadTimeDays > 0 {
		return leadTimeDays
	}
	return s.LeadTimeDays
}

// MovementWindowDays días de movimientos a cargar: el año del ABC o la ventana configurada más larga.
func (s Settings) MovementWindowDays() int {
	return max(domaininv.DaysPerYear, s.UsageWindowDays, s.PeriodDays)
}
