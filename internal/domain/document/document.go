// Package document compone la cotización como un árbol de secciones tipadas y lo
// serializa a HTML autocontenido (estilos en línea, una sola fuente web externa).
//
// Orden de las secciones en la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor (nombre, dirección, contacto)  │ QUOTATION   │
//	│  CLIENT INFORMATION                                          │
//	│  TABLA: No. | Item | Quantity | Rate | Amount                │
//	│                         SUMMARY: Subtotal / Tax / Discount   │
//	│  TERMS & CONDITIONS                                          │
//	│  SERVICE AND WARRANTY                                        │
//	│  FIRMAS: Authorized Signature │ Client Acceptance            │
//	└─────────────────────────────────────────────────────────────┘
//
// La composición es determinista: no usa la hora actual ni aleatoriedad.
package document

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/internal/domain/entity"
	"github.com/jhoicas/quotation-api/internal/domain/quotation"
	"github.com/jhoicas/quotation-api/pkg/locale"
)

const (
	// DefaultTerms se usa cuando la cotización no trae términos.
	DefaultTerms = "Net 30 days. Please make payment within 30 days of receiving this quotation."
	// DefaultFontURL fuente web referenciada por el documento.
	DefaultFontURL = "https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap"
)

// Options parámetros de presentación dependientes del locale.
type Options struct {
	Locale       *locale.Locale
	TaxLabel     string // Ej. "GST", "IVA"
	TaxIDLabel   string // Ej. "GSTIN", "NIT"
	DefaultTerms string
	FontURL      string
}

// DefaultOptions valores por defecto (India, GST, rupias).
func DefaultOptions() Options {
	return Options{
		Locale:       locale.MustNew("en-IN", "INR"),
		TaxLabel:     "GST",
		TaxIDLabel:   "GSTIN",
		DefaultTerms: DefaultTerms,
		FontURL:      DefaultFontURL,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Locale == nil {
		o.Locale = def.Locale
	}
	if o.TaxLabel == "" {
		o.TaxLabel = def.TaxLabel
	}
	if o.TaxIDLabel == "" {
		o.TaxIDLabel = def.TaxIDLabel
	}
	if !present(o.DefaultTerms) {
		o.DefaultTerms = def.DefaultTerms
	}
	if o.FontURL == "" {
		o.FontURL = def.FontURL
	}
	return o
}

// Document cotización compuesta, lista para entregar a un motor de renderizado.
type Document struct {
	Title    string
	Lang     string
	FontURL  string
	Sections []Section
}

// Build valida la estructura mínima y arma el árbol de secciones.
// Devuelve *domain.MissingFieldError si falta la cotización o el bloque serviceWarranty.
func Build(q *entity.Quotation, f entity.Financials, opts Options) (*Document, error) {
	if q == nil {
		return nil, &domain.MissingFieldError{Field: "quotation"}
	}
	if q.ServiceWarranty == nil {
		return nil, &domain.MissingFieldError{Field: "serviceWarranty"}
	}
	opts = opts.withDefaults()

	amounts := f.LineAmounts
	if len(amounts) != len(q.Items) {
		amounts = make([]decimal.Decimal, len(q.Items))
		for i, it := range q.Items {
			amounts[i] = quotation.LineAmount(it)
		}
	}

	return &Document{
		Title:   "Quotation - " + q.Number,
		Lang:    opts.Locale.Language(),
		FontURL: opts.FontURL,
		Sections: []Section{
			NewHeaderSection(q, opts.Locale, opts.TaxIDLabel),
			NewClientSection(q.Client, opts.TaxIDLabel),
			NewItemsSection(q.Items, amounts, opts.Locale),
			NewSummarySection(q, f, opts.Locale, opts.TaxLabel),
			NewTermsSection(q.Terms, opts.DefaultTerms),
			NewWarrantySection(q.ServiceWarranty),
			NewSignatureSection(),
		},
	}, nil
}

// HTML serializa el documento completo.
func (d *Document) HTML() (string, error) {
	var body strings.Builder
	for _, s := range d.Sections {
		part, err := s.HTML()
		if err != nil {
			return "", fmt.Errorf("document: sección %s: %w", s.Name(), err)
		}
		body.WriteString(part)
	}

	style := fmt.Sprintf("\n@import url('%s');\n%s", d.FontURL, baseCSS)
	out, err := execute(pageTmpl, struct {
		Lang  string
		Title string
		Style string
		Body  string
	}{
		Lang:  d.Lang,
		Title: d.Title,
		Style: style,
		Body:  body.String(),
	})
	if err != nil {
		return "", fmt.Errorf("document: página: %w", err)
	}
	return out, nil
}

// Compose atajo Build + HTML: de la cotización y sus importes al markup final.
func Compose(q *entity.Quotation, f entity.Financials, opts Options) (string, error) {
	doc, err := Build(q, f, opts)
	if err != nil {
		return "", err
	}
	return doc.HTML()
}
