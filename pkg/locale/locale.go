// Package locale centraliza el formato de montos y fechas para el locale configurado.
// Cambiar moneda o idioma de los documentos es un cambio en un solo punto.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Locale formatea montos y fechas. Es inmutable y seguro para uso concurrente.
type Locale struct {
	tag        language.Tag
	unit       currency.Unit
	symbol     string
	pattern    numberPattern
	indian     bool
	dateLayout string
}

type numberPattern struct {
	group       string
	decimal     string
	symbolAfter bool
	spaced      bool // espacio entre símbolo y cifra
}

var patterns = map[string]numberPattern{
	"en": {group: ",", decimal: "."},
	"hi": {group: ",", decimal: "."},
	"ja": {group: ",", decimal: "."},
	"zh": {group: ",", decimal: "."},
	"es": {group: ".", decimal: ",", symbolAfter: true, spaced: true},
	"de": {group: ".", decimal: ",", symbolAfter: true, spaced: true},
	"it": {group: ".", decimal: ",", symbolAfter: true, spaced: true},
	"pt": {group: ".", decimal: ",", spaced: true},
	"fr": {group: " ", decimal: ",", symbolAfter: true, spaced: true},
}

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"COP": "$",
	"MXN": "$",
	"BRL": "R$",
	"AUD": "A$",
	"CAD": "CA$",
}

// New construye un Locale a partir de una etiqueta BCP 47 (ej. "en-IN") y un código
// ISO 4217. Si currencyCode está vacío se deriva de la región de la etiqueta.
func New(tag, currencyCode string) (*Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("locale: etiqueta %q inválida: %w", tag, err)
	}

	var unit currency.Unit
	if strings.TrimSpace(currencyCode) == "" {
		u, conf := currency.FromTag(t)
		if conf == language.No {
			return nil, fmt.Errorf("locale: no se pudo derivar la moneda de %q", tag)
		}
		unit = u
	} else {
		u, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(currencyCode)))
		if err != nil {
			return nil, fmt.Errorf("locale: moneda %q inválida: %w", currencyCode, err)
		}
		unit = u
	}

	base, _ := t.Base()
	region, _ := t.Region()

	p, ok := patterns[base.String()]
	if !ok {
		p = patterns["en"]
	}
	sym, ok := symbols[unit.String()]
	if !ok {
		sym = unit.String()
		p.spaced = true
	}

	return &Locale{
		tag:        t,
		unit:       unit,
		symbol:     sym,
		pattern:    p,
		indian:     region.String() == "IN",
		dateLayout: shortDateLayout(region.String()),
	}, nil
}

// MustNew como New pero entra en pánico; para valores por defecto y tests.
func MustNew(tag, currencyCode string) *Locale {
	l, err := New(tag, currencyCode)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag etiqueta BCP 47 normalizada.
func (l *Locale) Tag() string { return l.tag.String() }

// Language subetiqueta de idioma ("en" para "en-IN").
func (l *Locale) Language() string {
	b, _ := l.tag.Base()
	return b.String()
}

// Currency código ISO 4217.
func (l *Locale) Currency() string { return l.unit.String() }

// Money es la única función de formato monetario: símbolo, dos decimales fijos
// y separadores de miles del locale. Ej. en-IN: 123456.5 → "₹1,23,456.50".
func (l *Locale) Money(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i+1:]
	}
	number := l.group(intPart) + l.pattern.decimal + frac

	sep := ""
	if l.pattern.spaced {
		sep = " "
	}
	var out string
	if l.pattern.symbolAfter {
		out = number + sep + l.symbol
	} else {
		out = l.symbol + sep + number
	}
	// "-0.00" no tiene sentido en un documento.
	if neg && strings.Trim(intPart+frac, "0") != "" {
		out = "-" + out
	}
	return out
}

// group inserta separadores de miles. Con agrupación india los primeros tres dígitos
// forman un grupo y el resto va de dos en dos (1,00,000).
func (l *Locale) group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head, tail := digits[:n-3], digits[n-3:]
	size := 3
	if l.indian {
		size = 2
	}
	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	parts = append(parts, tail)
	return strings.Join(parts, l.pattern.group)
}

// Date forma corta de la fecha según la región; la fecha cero se muestra vacía.
func (l *Locale) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(l.dateLayout)
}

func shortDateLayout(region string) string {
	switch region {
	case "US", "PH":
		return "1/2/2006"
	case "DE", "AT", "CH", "RU", "PL", "CZ":
		return "2.1.2006"
	case "JP", "CN", "KR", "TW":
		return "2006/1/2"
	default:
		return "2/1/2006"
	}
}
