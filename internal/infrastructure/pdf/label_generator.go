// Package pdf genera hojas de etiquetas con código de barras en PDF usando Maroto v2.
//
// Layout de la página A4 (3 etiquetas por fila):
//
//	┌───────────────────┬───────────────────┬───────────────────┐
//	│ ║║│║║│║│║║│║│║║  │ ║║│║║│║│║║│║│║║  │ ║║│║║│║│║║│║│║║  │
//	│ 7501234567893     │ 036000291452      │ SKU-0042          │
//	│ Nombre del ítem   │ Nombre del ítem   │ Nombre del ítem   │
//	│ SKU · formato     │ SKU · formato     │ SKU · formato     │
//	└───────────────────┴───────────────────┴───────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbarcode "github.com/jhoicas/Inventario-analytics/internal/application/barcode"
)

// ── Paleta y medidas ──────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const (
	labelsPerRow = 3
	labelHeight  = 38
	nameMaxRunes = 32
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbarcode.LabelGenerator = (*MarotoLabelGenerator)(nil)

// MarotoLabelGenerator implementa barcode.LabelGenerator usando Maroto v2.
type MarotoLabelGenerator struct {
	title string
}

// NewMarotoLabelGenerator construye el generador. title va en los metadatos del PDF.
func NewMarotoLabelGenerator(title string) *MarotoLabelGenerator {
	if title == "" {
		title = "Etiquetas de inventario"
	}
	return &MarotoLabelGenerator{title: title}
}

// GenerateLabels genera la hoja de etiquetas y devuelve sus bytes.
func (g *MarotoLabelGenerator) GenerateLabels(ctx context.Context, labels []appbarcode.Label) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("pdf: sin etiquetas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)
	for start := 0; start < len(labels); start += labelsPerRow {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+labelsPerRow, len(labels))
		m.AddRows(labelRow(labels[start:end]))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.1, SizePercent: 100}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// labelRow: hasta labelsPerRow etiquetas; las celdas faltantes quedan vacías.
func labelRow(labels []appbarcode.Label) core.Row {
	size := 12 / labelsPerRow
	cols := make([]core.Col, 0, labelsPerRow)
	for _, l := range labels {
		cols = append(cols, labelCol(l, size))
	}
	for len(cols) < labelsPerRow {
		cols = append(cols, col.New(size))
	}
	return row.New(labelHeight).Add(cols...)
}

// labelCol: barras (Code-128) + código legible + nombre + SKU y formato.
func labelCol(l appbarcode.Label, size int) core.Col {
	return col.New(size).Add(
		code.NewBar(l.Code, props.Barcode{Percent: 90, Left: 3, Top: 2, Proportion: props.Proportion{Width: 20, Height: 5}}),
		text.New(l.Code, props.Text{
			Size: 8, Align: align.Center, Top: 20,
		}),
		text.New(truncate(l.Name, nameMaxRunes), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 25, Color: colorPrimary,
		}),
		text.New(l.SKU+" · "+l.Format, props.Text{
			Size: 7, Align: align.Center, Top: 30, Color: colorGray,
		}),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// truncate corta s a n runas agregando "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
