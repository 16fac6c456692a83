package document

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/quotation-api/internal/domain/entity"
	"github.com/jhoicas/quotation-api/pkg/locale"
)

// Section es un nodo del documento. Cada sección se serializa de forma independiente;
// los valores ya vienen formateados (montos, fechas) al construirla.
type Section interface {
	Name() string
	HTML() (string, error)
}

// Field par etiqueta/valor. Label vacío = solo valor.
type Field struct {
	Label string
	Value string
}

func present(s string) bool { return strings.TrimSpace(s) != "" }

// appendIf agrega el campo solo si el valor no está vacío.
func appendIf(fields []Field, label, value string) []Field {
	if !present(value) {
		return fields
	}
	return append(fields, Field{Label: label, Value: value})
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ── Header ────────────────────────────────────────────────────────────────────

// HeaderSection identidad del emisor (izq) y de la cotización (der).
type HeaderSection struct {
	IssuerName  string
	IssuerLines []Field
	Title       string
	Meta        []Field
}

// NewHeaderSection arma la cabecera. La línea de identificación tributaria del emisor
// solo aparece si viene informada.
func NewHeaderSection(q *entity.Quotation, loc *locale.Locale, taxIDLabel string) *HeaderSection {
	lines := []Field{
		{Value: q.Issuer.Address},
		{Label: "Email", Value: q.Issuer.Email},
		{Label: "Phone", Value: q.Issuer.Phone},
	}
	lines = appendIf(lines, taxIDLabel, q.Issuer.TaxID)

	return &HeaderSection{
		IssuerName:  q.Issuer.Name,
		IssuerLines: lines,
		Title:       "QUOTATION",
		Meta: []Field{
			{Label: "Number", Value: q.Number},
			{Label: "Date", Value: loc.Date(q.IssueDate)},
			{Label: "Valid Until", Value: loc.Date(q.ValidUntil)},
		},
	}
}

func (s *HeaderSection) Name() string          { return "header" }
func (s *HeaderSection) HTML() (string, error) { return execute(headerTmpl, s) }

// ── Client ────────────────────────────────────────────────────────────────────

// ClientSection datos del cliente; empresa, teléfono e identificación tributaria son opcionales.
type ClientSection struct {
	Heading string
	Fields  []Field
}

func NewClientSection(c entity.Client, taxIDLabel string) *ClientSection {
	fields := []Field{{Label: "Name", Value: c.Name}}
	fields = appendIf(fields, "Company", c.Company)
	fields = append(fields, Field{Label: "Email", Value: c.Email})
	fields = appendIf(fields, "Phone", c.Phone)
	fields = appendIf(fields, taxIDLabel, c.TaxID)

	return &ClientSection{Heading: "CLIENT INFORMATION", Fields: fields}
}

func (s *ClientSection) Name() string          { return "client" }
func (s *ClientSection) HTML() (string, error) { return execute(clientTmpl, s) }

// ── Items ─────────────────────────────────────────────────────────────────────

// ItemRow fila de la tabla: [N°, nombre+descripción, cantidad, tarifa, importe].
type ItemRow struct {
	Position    int
	Name        string
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// ItemsSection tabla de líneas en el orden de entrada.
type ItemsSection struct {
	Columns []string
	Rows    []ItemRow
}

// NewItemsSection numera las filas desde 1 según su posición. amounts debe tener el
// mismo largo que items.
func NewItemsSection(items []entity.LineItem, amounts []decimal.Decimal, loc *locale.Locale) *ItemsSection {
	rows := make([]ItemRow, 0, len(items))
	for i, it := range items {
		desc := it.Description
		if !present(desc) {
			desc = ""
		}
		rows = append(rows, ItemRow{
			Position:    i + 1,
			Name:        it.Name,
			Description: desc,
			Quantity:    it.Quantity.String(),
			Rate:        loc.Money(it.Rate),
			Amount:      loc.Money(amounts[i]),
		})
	}
	return &ItemsSection{
		Columns: []string{"No.", "Item", "Quantity", "Rate", "Amount"},
		Rows:    rows,
	}
}

func (s *ItemsSection) Name() string          { return "items" }
func (s *ItemsSection) HTML() (string, error) { return execute(itemsTmpl, s) }

// ── Summary ───────────────────────────────────────────────────────────────────

// SummarySection subtotal, impuesto, descuento y total.
type SummarySection struct {
	Rows  []Field
	Total Field
}

func NewSummarySection(q *entity.Quotation, f entity.Financials, loc *locale.Locale, taxLabel string) *SummarySection {
	return &SummarySection{
		Rows: []Field{
			{Label: "Subtotal", Value: loc.Money(f.Subtotal)},
			{Label: taxLabel + " (" + q.TaxRatePercent.String() + "%)", Value: loc.Money(f.TaxAmount)},
			{Label: "Discount (" + q.DiscountPercent.String() + "%)", Value: loc.Money(f.DiscountAmount)},
		},
		Total: Field{Label: "Total", Value: loc.Money(f.Total)},
	}
}

func (s *SummarySection) Name() string          { return "summary" }
func (s *SummarySection) HTML() (string, error) { return execute(summaryTmpl, s) }

// ── Terms ─────────────────────────────────────────────────────────────────────

// TermsSection términos y condiciones; si no vienen se usa defaultTerms.
type TermsSection struct {
	Heading    string
	Paragraphs []string
}

func NewTermsSection(terms, defaultTerms string) *TermsSection {
	if !present(terms) {
		terms = defaultTerms
	}
	return &TermsSection{
		Heading: "TERMS & CONDITIONS",
		Paragraphs: []string{
			terms,
			"This is a quotation on the goods/services named, subject to the conditions noted below.",
			"The prices quoted are valid until the date mentioned above.",
		},
	}
}

func (s *TermsSection) Name() string          { return "terms" }
func (s *TermsSection) HTML() (string, error) { return execute(termsTmpl, s) }

// ── Service & warranty ────────────────────────────────────────────────────────

// WarrantySection bloque de servicio y garantía; sus tres campos se muestran siempre.
type WarrantySection struct {
	Heading string
	Fields  []Field
}

func NewWarrantySection(w *entity.ServiceWarranty) *WarrantySection {
	return &WarrantySection{
		Heading: "SERVICE AND WARRANTY",
		Fields: []Field{
			{Label: "Description", Value: w.Description},
			{Label: "Duration", Value: w.Duration},
			{Label: "Conditions", Value: w.Conditions},
		},
	}
}

func (s *WarrantySection) Name() string          { return "warranty" }
func (s *WarrantySection) HTML() (string, error) { return execute(warrantyTmpl, s) }

// ── Signature ─────────────────────────────────────────────────────────────────

// SignatureSection dos líneas de firma en blanco: emisor y cliente.
type SignatureSection struct {
	IssuerLabel string
	ClientLabel string
}

func NewSignatureSection() *SignatureSection {
	return &SignatureSection{
		IssuerLabel: "Authorized Signature",
		ClientLabel: "Client Acceptance (sign above)",
	}
}

func (s *SignatureSection) Name() string          { return "signature" }
func (s *SignatureSection) HTML() (string, error) { return execute(signatureTmpl, s) }
