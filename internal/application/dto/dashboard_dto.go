package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Agrupa las métricas de inventario, el resumen ABC y las reposiciones más urgentes.
type DashboardSummaryDTO struct {
	Metrics    InventoryMetricsDTO          `json:"metrics"`
	ABC        []ABCSummaryDTO              `json:"abc"`
	TopReorder []ReplenishmentSuggestionDTO `json:"top_reorder"` // primeras N por prioridad
	DateLabel  string                       `json:"date_label"`  // ej: "Marzo 2026"
}
