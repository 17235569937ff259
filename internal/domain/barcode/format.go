// Package barcode contiene las utilidades de códigos de barras: detección de formato,
// validación de dígito de control GS1, normalización GTIN-14, parseo de cadenas GS1
// y la contabilidad de sesiones de escaneo.
package barcode

import (
	"regexp"
	"strings"
)

// Format simbología de código de barras.
type Format string

// Formatos soportados.
const (
	FormatUPCA    Format = "UPC_A"
	FormatUPCE    Format = "UPC_E"
	FormatEAN13   Format = "EAN_13"
	FormatEAN8    Format = "EAN_8"
	FormatCode39  Format = "CODE_39"
	FormatCodabar Format = "CODABAR"
	FormatITF     Format = "ITF"
	FormatCode128 Format = "CODE_128"
	FormatUnknown Format = "UNKNOWN"
)

func (f Format) String() string { return string(f) }

var (
	digitsRe  = regexp.MustCompile(`^[0-9]+$`)
	codabarRe = regexp.MustCompile(`^[A-D][0-9\-$:/.+]+[A-D]$`)
	code39Re  = regexp.MustCompile(`^[A-Z0-9\-. $/+%]+$`)
	asciiRe   = regexp.MustCompile(`^[\x20-\x7E]+$`)
)

// DetectFormat infiere la simbología a partir del contenido y la longitud.
// Los 8 dígitos son ambiguos: con sistema numérico 0 o 1 se toman como UPC-E; si no, EAN-8.
func DetectFormat(code string) Format {
	code = strings.TrimSpace(code)
	if code == "" {
		return FormatUnknown
	}
	if digitsRe.MatchString(code) {
		switch n := len(code); {
		case n == 12:
			return FormatUPCA
		case n == 13:
			return FormatEAN13
		case n == 6:
			return FormatUPCE
		case n == 8 && (code[0] == '0' || code[0] == '1'):
			return FormatUPCE
		case n == 8:
			return FormatEAN8
		case n == 14, n >= 6 && n%2 == 0:
			return FormatITF
		}
	}
	if codabarRe.MatchString(code) {
		return FormatCodabar
	}
	if code39Re.MatchString(unwrapCode39(code)) {
		return FormatCode39
	}
	if asciiRe.MatchString(code) {
		return FormatCode128
	}
	return FormatUnknown
}

// unwrapCode39 quita los delimitadores * de inicio/fin que algunos lectores dejan pasar.
func unwrapCode39(code string) string {
	if len(code) > 2 && strings.HasPrefix(code, "*") && strings.HasSuffix(code, "*") {
		return code[1 : len(code)-1]
	}
	return code
}
