// import_items genera un script SQL para cargar el catálogo de ítems de una empresa
// a partir de un CSV exportado del sistema anterior.
//
// Uso: go run ./cmd/import_items -company <uuid> [-latin1] [-out archivo.sql] items.csv
// Columnas (con encabezado): sku, name, barcode, category, unit, current_stock,
// min_stock, max_stock, cost_price, reorder_point, lead_time_days.
// Escribe por defecto: internal/infrastructure/postgres/migrations/002_seed_items.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	domainbc "github.com/jhoicas/Inventario-analytics/internal/domain/barcode"
)

var columns = []string{
	"sku", "name", "barcode", "category", "unit", "current_stock",
	"min_stock", "max_stock", "cost_price", "reorder_point", "lead_time_days",
}

type itemRow struct {
	SKU          string
	Name         string
	Barcode      string
	Category     string
	Unit         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	CostPrice    decimal.Decimal
	ReorderPoint decimal.Decimal
	LeadTimeDays int
}

func main() {
	companyID := flag.String("company", "", "UUID de la empresa dueña de los ítems")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	outPath := flag.String("out", "", "archivo SQL de salida")
	flag.Parse()

	if _, err := uuid.Parse(*companyID); err != nil {
		fmt.Fprintln(os.Stderr, "-company debe ser un UUID válido")
		os.Exit(2)
	}
	csvPath := "items.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, warnings, err := parseItems(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "aviso:", w)
	}

	if *outPath == "" {
		*outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_items.sql")
	}
	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, *companyID, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d ítems (%d avisos)\n", *outPath, len(rows), len(warnings))
}

// parseItems lee el CSV. Las filas con errores se omiten y se reportan como avisos;
// un código de barras inválido solo se descarta, el ítem se importa igual.
func parseItems(r io.Reader) ([]itemRow, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range []string{"sku", "name"} {
		if _, ok := idx[c]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var (
		rows     []itemRow
		warnings []string
		seen     = make(map[string]bool)
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			if i, ok := idx[col]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		row := itemRow{
			SKU:      get("sku"),
			Name:     get("name"),
			Barcode:  get("barcode"),
			Category: get("category"),
			Unit:     get("unit"),
		}
		if row.SKU == "" || row.Name == "" {
			warnings = append(warnings, fmt.Sprintf("línea %d: sku y name son obligatorios", line))
			continue
		}
		if seen[row.SKU] {
			warnings = append(warnings, fmt.Sprintf("línea %d: sku %s repetido", line, row.SKU))
			continue
		}
		if row.Unit == "" {
			row.Unit = "und"
		}
		if row.Barcode != "" {
			if v := domainbc.Validate(row.Barcode); !v.Valid {
				warnings = append(warnings, fmt.Sprintf("línea %d: código %s descartado (%s)", line, row.Barcode, v.Reason))
				row.Barcode = ""
			}
		}

		var bad string
		for col, dst := range map[string]*decimal.Decimal{
			"current_stock": &row.CurrentStock,
			"min_stock":     &row.MinStock,
			"max_stock":     &row.MaxStock,
			"cost_price":    &row.CostPrice,
			"reorder_point": &row.ReorderPoint,
		} {
			s := strings.ReplaceAll(get(col), ",", ".")
			if s == "" {
				continue
			}
			d, err := decimal.NewFromString(s)
			if err != nil || d.IsNegative() {
				bad = col
				break
			}
			*dst = d
		}
		if s := get("lead_time_days"); bad == "" && s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				bad = "lead_time_days"
			}
			row.LeadTimeDays = n
		}
		if bad != "" {
			warnings = append(warnings, fmt.Sprintf("línea %d: valor inválido en %s", line, bad))
			continue
		}
		seen[row.SKU] = true
		rows = append(rows, row)
	}
	return rows, warnings, nil
}

func writeSQL(w io.Writer, companyID string, rows []itemRow) error {
	if _, err := fmt.Fprintf(w, "-- Catálogo de ítems importado desde CSV (%d filas)\n\n", len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w,
			"INSERT INTO inventory_items (id, company_id, sku, barcode, name, category, unit, current_stock, min_stock, max_stock, cost_price, reorder_point, lead_time_days)\n"+
				"VALUES ('%s', '%s', '%s', %s, '%s', '%s', '%s', %s, %s, %s, %s, %s, %d)\n"+
				"ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, barcode = EXCLUDED.barcode, category = EXCLUDED.category;\n",
			uuid.New().String(), companyID, escapeSQL(r.SKU), nullableSQL(r.Barcode), escapeSQL(r.Name),
			escapeSQL(r.Category), escapeSQL(r.Unit), r.CurrentStock, r.MinStock, r.MaxStock,
			r.CostPrice, r.ReorderPoint, r.LeadTimeDays,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func nullableSQL(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
