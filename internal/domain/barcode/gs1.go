package barcode

import (
	"errors"
	"fmt"
	"strings"
)

// Identificadores de aplicación GS1 soportados.
const (
	aiGTIN   = "01" // GTIN-14, longitud fija 14
	aiExpiry = "17" // vencimiento YYMMDD, longitud fija 6
	aiLot    = "10" // lote, variable hasta 20
)

const maxLotLength = 20

// groupSeparator FNC1 transmitido por el lector al final de cada campo de longitud variable.
const groupSeparator = '\x1d'

// GS1Data campos extraídos de una cadena GS1 (p. ej. GS1-128 / DataMatrix).
type GS1Data struct {
	GTIN14     string
	ExpiryDate string // YYYYMM
	LotNumber  string
}

// ParseGS1 interpreta el código leído. Cadenas de 15 o más caracteres deben empezar con AI(01);
// las más cortas se tratan como GTIN simple y se normalizan a 14 dígitos.
func ParseGS1(code string) (*GS1Data, error) {
	code = strings.TrimSpace(code)
	switch n := len(code); {
	case n == 0:
		return nil, errors.New("barcode: código vacío")
	case n >= 15:
		if !strings.HasPrefix(code, aiGTIN) {
			return nil, errors.New("barcode: cadena GS1 sin AI(01) inicial")
		}
		return parseElementString(code)
	case n == 14:
		if !digitsRe.MatchString(code) {
			return nil, fmt.Errorf("barcode: GTIN no numérico %q", code)
		}
		return &GS1Data{GTIN14: code}, nil
	default:
		if !digitsRe.MatchString(code) {
			return nil, fmt.Errorf("barcode: GTIN no numérico %q", code)
		}
		return &GS1Data{GTIN14: strings.Repeat("0", 14-len(code)) + code}, nil
	}
}

func parseElementString(code string) (*GS1Data, error) {
	out := &GS1Data{}
	n := len(code)
	for i := 0; i < n; {
		rest := code[i:]
		switch {
		case rest[0] == groupSeparator:
			i++
		case strings.HasPrefix(rest, aiGTIN):
			if i+16 > n {
				return nil, errors.New("barcode: datos insuficientes para AI(01)")
			}
			out.GTIN14 = code[i+2 : i+16]
			i += 16
		case strings.HasPrefix(rest, aiExpiry):
			if i+8 > n {
				return nil, errors.New("barcode: datos insuficientes para AI(17)")
			}
			yymmdd := code[i+2 : i+8]
			out.ExpiryDate = "20" + yymmdd[0:2] + yymmdd[2:4]
			i += 8
		case strings.HasPrefix(rest, aiLot):
			start := i + 2
			end := lotEnd(code, start)
			out.LotNumber = code[start:end]
			i = end
		default:
			// AI no soportado: se descarta hasta el siguiente separador
			sep := strings.IndexByte(rest, groupSeparator)
			if sep < 0 {
				i = n
				break
			}
			i += sep + 1
		}
	}
	if out.GTIN14 == "" {
		return nil, errors.New("barcode: no se encontró GTIN AI(01)")
	}
	return out, nil
}

// lotEnd avanza sobre el lote hasta el separador FNC1, el máximo o un AI(01)/AI(17) completo.
func lotEnd(code string, start int) int {
	n := len(code)
	end := start
	for end < n && end-start < maxLotLength {
		rest := code[end:]
		if rest[0] == groupSeparator {
			break
		}
		if strings.HasPrefix(rest, aiGTIN) && len(rest) >= 16 {
			break
		}
		if strings.HasPrefix(rest, aiExpiry) && len(rest) >= 8 {
			break
		}
		end++
	}
	return end
}
