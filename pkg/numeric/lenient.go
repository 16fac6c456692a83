// Package numeric concentra la conversión permisiva de números de entrada.
//
// Los borradores de cotización llegan con campos vacíos o a medio escribir
// ("", "12abc", null). En lugar de fallar, todo valor no numérico se degrada a
// cero. Este es el único punto donde se aplica esa regla.
package numeric

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Límites equivalentes al rango de float64: fuera de ellos el valor no es un número
// utilizable y el costo de operar con él crece con la cantidad de dígitos.
const (
	maxInputLen  = 512
	maxMagnitude = 309  // 10^309 > math.MaxFloat64
	minMagnitude = -323 // por debajo, float64 ya es cero
	maxScale     = 20   // decimales conservados
)

// Parse convierte s en decimal. Acepta el prefijo numérico más largo
// ("12.5kg" → 12.5); si no hay ninguno devuelve cero. Valores fuera del rango de
// float64 ("1e400") también valen cero.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return decimal.Zero
	}
	if v, err := decimal.NewFromString(s); err == nil {
		return bounded(v)
	}
	if prefix := numericPrefix(s); prefix != "" {
		if v, err := decimal.NewFromString(prefix); err == nil {
			return bounded(v)
		}
	}
	return decimal.Zero
}

// bounded descarta magnitudes fuera de rango y recorta la escala a maxScale decimales.
func bounded(v decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return decimal.Zero
	}
	magnitude := int64(v.Exponent()) + int64(v.NumDigits())
	if magnitude > maxMagnitude || magnitude < minMagnitude {
		return decimal.Zero
	}
	if v.Exponent() < -maxScale {
		v = v.Round(maxScale)
	}
	return v
}

// numericPrefix devuelve el prefijo con forma [+-]digits[.digits][e[+-]digits].
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}
	// Exponente solo si trae dígitos.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return strings.TrimSuffix(s[:i], ".")
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Lenient es un número JSON que nunca falla al decodificar: acepta número,
// string, bool o null; lo que no sea interpretable queda en cero.
type Lenient struct {
	value decimal.Decimal
}

// NewLenient envuelve un decimal ya conocido.
func NewLenient(v decimal.Decimal) Lenient { return Lenient{value: v} }

// Decimal devuelve el valor convertido.
func (l Lenient) Decimal() decimal.Decimal { return l.value }

// UnmarshalJSON implementa json.Unmarshaler.
func (l *Lenient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		l.value = decimal.Zero
	case bytes.Equal(data, []byte("true")):
		l.value = decimal.NewFromInt(1)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			l.value = decimal.Zero
			return nil
		}
		l.value = Parse(s)
	case data[0] == '{' || data[0] == '[':
		l.value = decimal.Zero
	default:
		l.value = Parse(string(data))
	}
	return nil
}

// MarshalJSON serializa como número JSON.
func (l Lenient) MarshalJSON() ([]byte, error) {
	return []byte(l.value.String()), nil
}
