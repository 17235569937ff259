package barcode

import "context"

// Label datos de una etiqueta imprimible.
type Label struct {
	Code   string // contenido del código de barras
	Format string // simbología detectada
	SKU    string
	Name   string
}

// LabelGenerator puerto para renderizar hojas de etiquetas (PDF).
type LabelGenerator interface {
	GenerateLabels(ctx context.Context, labels []Label) ([]byte, error)
}
