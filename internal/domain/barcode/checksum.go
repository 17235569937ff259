package barcode

import (
	"errors"
	"fmt"
	"strings"
)

// CheckDigit calcula el dígito de control GS1 (módulo 10) para el payload sin dígito.
// Pesos 3,1,3,1... desde la derecha.
func CheckDigit(payload string) (int, error) {
	if payload == "" || !digitsRe.MatchString(payload) {
		return 0, errors.New("barcode: el payload debe ser numérico")
	}
	sum := 0
	for i := len(payload) - 1; i >= 0; i-- {
		d := int(payload[i] - '0')
		if (len(payload)-1-i)%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10, nil
}

// HasValidCheckDigit valida el último dígito de un código GS1 numérico.
func HasValidCheckDigit(code string) bool {
	if len(code) < 2 || !digitsRe.MatchString(code) {
		return false
	}
	want, err := CheckDigit(code[:len(code)-1])
	if err != nil {
		return false
	}
	return int(code[len(code)-1]-'0') == want
}

// IsValidUPCA 12 dígitos con dígito de control correcto.
func IsValidUPCA(code string) bool {
	return len(code) == 12 && HasValidCheckDigit(code)
}

// IsValidEAN13 13 dígitos con dígito de control correcto.
func IsValidEAN13(code string) bool {
	return len(code) == 13 && HasValidCheckDigit(code)
}

// Validation resultado de validar un código leído.
type Validation struct {
	Code   string
	Format Format
	Valid  bool
	Reason string // vacío si Valid
}

// Validate detecta el formato y verifica el dígito de control en UPC-A y EAN-13.
// Los demás formatos se aceptan con solo coincidir el patrón.
func Validate(code string) Validation {
	code = strings.TrimSpace(code)
	v := Validation{Code: code, Format: DetectFormat(code)}
	switch v.Format {
	case FormatUnknown:
		v.Reason = "formato no reconocido"
	case FormatUPCA:
		v.Valid = IsValidUPCA(code)
	case FormatEAN13:
		v.Valid = IsValidEAN13(code)
	default:
		v.Valid = true
	}
	if !v.Valid && v.Reason == "" {
		v.Reason = fmt.Sprintf("dígito de control inválido para %s", v.Format)
	}
	return v
}

// ToGTIN14 normaliza códigos GTIN de 8, 12, 13 o 14 dígitos rellenando con ceros a la izquierda.
func ToGTIN14(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !digitsRe.MatchString(code) {
		return "", fmt.Errorf("barcode: GTIN no numérico %q", code)
	}
	switch len(code) {
	case 8, 12, 13, 14:
		return strings.Repeat("0", 14-len(code)) + code, nil
	}
	return "", fmt.Errorf("barcode: longitud GTIN no soportada (%d)", len(code))
}
