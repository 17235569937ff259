package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sampleCSV = `sku,name,barcode,category,unit,current_stock,cost_price,lead_time_days
ARR-1,Arroz,036000291452,granos,kg,"12,5",2.10,3
ACE-1,Aceite,036000291453,aceites,l,4,9,
SAL-1,Sal,,granos,,1,0.5,2
,Sin SKU,,,,,,
ARR-1,Arroz repetido,,,,,,
AZU-1,Azúcar,,dulces,kg,-3,1,
`

func TestParseItems(t *testing.T) {
	rows, warnings, err := parseItems(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ARR-1", rows[0].SKU)
	assert.True(t, rows[0].CurrentStock.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 3, rows[0].LeadTimeDays)

	// dígito de control inválido: se importa sin código
	assert.Equal(t, "ACE-1", rows[1].SKU)
	assert.Empty(t, rows[1].Barcode)

	assert.Equal(t, "und", rows[2].Unit)
	assert.Len(t, warnings, 4)
}

func TestParseItems_FaltaColumna(t *testing.T) {
	_, _, err := parseItems(strings.NewReader("name,unit\nArroz,kg\n"))
	assert.Error(t, err)
}

func TestParseItems_Latin1(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, charmap.ISO8859_1.NewEncoder())
	_, err := w.Write([]byte("sku,name\nPAN-1,Piña\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows, _, err := parseItems(transform.NewReader(&buf, charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Piña", rows[0].Name)
}

func TestWriteSQL_Escapa(t *testing.T) {
	var out bytes.Buffer
	err := writeSQL(&out, "00000000-0000-0000-0000-000000000002", []itemRow{
		{SKU: "CAF-1", Name: "Café d'Or", Unit: "kg", CostPrice: decimal.NewFromInt(8)},
	})
	require.NoError(t, err)
	sql := out.String()
	assert.Contains(t, sql, "'Café d''Or'")
	assert.Contains(t, sql, "NULL")
	assert.Contains(t, sql, "ON CONFLICT (company_id, sku)")
}
