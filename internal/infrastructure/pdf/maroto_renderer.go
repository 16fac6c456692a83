// Package pdf implementa los motores que convierten el documento de cotización en PDF.
//
// Layout de la página A4 (motor maroto):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + contacto         │  QUOTATION + N° + fechas│
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT INFORMATION                                          │
//	│  TABLA: No. | Item | Quantity | Rate | Amount                │
//	│  ─────────────────────────────────────────────────────────  │
//	│                    Subtotal / Impuesto / Descuento / TOTAL   │
//	│  TERMS & CONDITIONS / SERVICE AND WARRANTY                   │
//	│  FIRMAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/internal/domain/document"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 102, Green: 102, Blue: 102}
	colorBorder  = &props.Color{Red: 234, Green: 234, Blue: 234}
	colorHeadBg  = &props.Color{Red: 249, Green: 250, Blue: 251}
	colorInk     = &props.Color{Red: 51, Green: 51, Blue: 51}
)

const (
	fontSize    = 9.0
	lineHeight  = 4.5  // mm por línea de texto a 9pt
	charWidthMM = 1.75 // ancho medio de un carácter a 9pt
	contentMM   = 190.0
)

// EngineMaroto nombre del motor.
const EngineMaroto = "maroto"

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa quotation.DocumentRenderer en Go puro (sin navegador),
// recorriendo el árbol de secciones del documento.
type MarotoRenderer struct {
	family      string
	customFonts []*entity.CustomFont
	unicode     bool
}

// NewMarotoRenderer construye el motor. Si fontPath apunta a una fuente TTF se registra
// como UTF-8 (necesaria para símbolos como ₹); si está vacío se usa helvetica.
func NewMarotoRenderer(fontPath string) (*MarotoRenderer, error) {
	if fontPath == "" {
		return &MarotoRenderer{family: "helvetica"}, nil
	}
	const family = "quotation-unicode"
	fonts, err := repository.New().
		AddUTF8Font(family, fontstyle.Normal, fontPath).
		AddUTF8Font(family, fontstyle.Bold, fontPath).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuente %s: %w", fontPath, err)
	}
	return &MarotoRenderer{family: family, customFonts: fonts, unicode: true}, nil
}

// Engine nombre del motor.
func (r *MarotoRenderer) Engine() string { return EngineMaroto }

// Render genera el PDF y devuelve sus bytes.
func (r *MarotoRenderer) Render(ctx context.Context, doc *document.Document, opts appquote.PageOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RenderFailure{Engine: EngineMaroto, Err: err}
	}
	if doc == nil {
		return nil, &domain.RenderFailure{Engine: EngineMaroto, Err: fmt.Errorf("documento nil")}
	}
	if opts.Size != "" && opts.Size != appquote.PageSizeA4 {
		return nil, &domain.RenderFailure{Engine: EngineMaroto, Err: fmt.Errorf("tamaño de página %q no soportado", opts.Size)}
	}

	margin := opts.MarginMM
	if margin <= 0 {
		margin = 10
	}
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(margin).WithRightMargin(margin).
		WithTopMargin(margin).WithBottomMargin(margin).
		WithDefaultFont(&props.Font{Family: r.family, Size: fontSize, Color: colorInk}).
		WithTitle(r.clean(doc.Title), true)
	if len(r.customFonts) > 0 {
		b = b.WithCustomFonts(r.customFonts)
	}
	m := maroto.New(b.Build())

	for _, s := range doc.Sections {
		rows, err := r.sectionRows(s)
		if err != nil {
			return nil, &domain.RenderFailure{Engine: EngineMaroto, Err: err}
		}
		m.AddRows(rows...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, &domain.RenderFailure{Engine: EngineMaroto, Err: fmt.Errorf("generar documento: %w", err)}
	}
	return out.GetBytes(), nil
}

func (r *MarotoRenderer) sectionRows(s document.Section) ([]core.Row, error) {
	switch v := s.(type) {
	case *document.HeaderSection:
		return r.headerRows(v), nil
	case *document.ClientSection:
		return r.fieldBlockRows(v.Heading, v.Fields), nil
	case *document.ItemsSection:
		return r.tableRows(v), nil
	case *document.SummarySection:
		return r.summaryRows(v), nil
	case *document.TermsSection:
		return r.termsRows(v), nil
	case *document.WarrantySection:
		return r.fieldBlockRows(v.Heading, v.Fields), nil
	case *document.SignatureSection:
		return r.signatureRows(v), nil
	default:
		return nil, fmt.Errorf("sección %s no soportada", s.Name())
	}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: emisor (izq) y datos de la cotización (der).
func (r *MarotoRenderer) headerRows(h *document.HeaderSection) []core.Row {
	left := []core.Component{
		text.New(r.clean(h.IssuerName), props.Text{
			Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
		}),
	}
	top := 10.0
	for _, f := range h.IssuerLines {
		left = append(left, text.New(r.clean(labelled(f)), props.Text{
			Size: 8.5, Top: top, Color: colorGray,
		}))
		top += lineHeight
	}

	right := []core.Component{
		text.New(h.Title, props.Text{
			Style: fontstyle.Bold, Size: 13, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
	}
	rtop := 9.0
	for _, f := range h.Meta {
		right = append(right, text.New(r.clean(f.Label+": "+f.Value), props.Text{
			Size: 8.5, Align: align.Right, Top: rtop,
		}))
		rtop += lineHeight
	}

	height := math.Max(top, rtop) + 3
	return []core.Row{
		row.New(height).Add(col.New(7).Add(left...), col.New(5).Add(right...)),
		line.NewRow(2, props.Line{Color: colorBorder, Thickness: 0.3}),
		row.New(4),
	}
}

// fieldBlockRows: título + una línea por campo "Etiqueta: valor" (cliente, garantía).
func (r *MarotoRenderer) fieldBlockRows(heading string, fields []document.Field) []core.Row {
	rows := []core.Row{r.headingRow(heading)}
	for _, f := range fields {
		content := r.clean(labelled(f))
		rows = append(rows, row.New(textHeight(content, contentMM)).Add(
			col.New(12).Add(text.New(content, props.Text{Size: fontSize, Top: 0.5})),
		))
	}
	return append(rows, row.New(5))
}

// tableRows: cabecera con fondo y una fila por ítem en el orden recibido.
func (r *MarotoRenderer) tableRows(t *document.ItemsSection) []core.Row {
	sizes := []int{1, 5, 2, 2, 2}
	aligns := []align.Type{align.Left, align.Left, align.Left, align.Right, align.Right}

	head := make([]core.Col, 0, len(t.Columns))
	for i, c := range t.Columns {
		head = append(head, col.New(sizes[i]).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 8.5, Align: aligns[i], Top: 2, Left: 1, Right: 1,
		})))
	}
	rows := []core.Row{
		row.New(8).Add(head...).WithStyle(&props.Cell{BackgroundColor: colorHeadBg}),
		line.NewRow(1, props.Line{Color: colorBorder, Thickness: 0.5}),
	}

	nameMM := contentMM * 5 / 12
	for _, it := range t.Rows {
		name := r.clean(it.Name)
		height := textHeight(name, nameMM) + 2
		itemCol := col.New(5).Add(text.New(name, props.Text{
			Size: fontSize, Top: 1.5, Left: 1,
		}))
		if it.Description != "" {
			desc := r.clean(it.Description)
			itemCol = col.New(5).Add(
				text.New(name, props.Text{Size: fontSize, Top: 1.5, Left: 1}),
				text.New(desc, props.Text{Size: 8, Top: height - 0.5, Left: 1, Color: colorGray}),
			)
			height += textHeight(desc, nameMM)
		}
		rows = append(rows,
			row.New(height).Add(
				col.New(1).Add(text.New(strconv.Itoa(it.Position), props.Text{Size: fontSize, Top: 1.5, Left: 1})),
				itemCol,
				col.New(2).Add(text.New(it.Quantity, props.Text{Size: fontSize, Top: 1.5, Left: 1})),
				col.New(2).Add(text.New(r.clean(it.Rate), props.Text{Size: fontSize, Top: 1.5, Align: align.Right, Right: 1})),
				col.New(2).Add(text.New(r.clean(it.Amount), props.Text{Size: fontSize, Top: 1.5, Align: align.Right, Right: 1})),
			),
			line.NewRow(0.5, props.Line{Color: colorBorder, Thickness: 0.2}),
		)
	}
	return append(rows, row.New(6))
}

// summaryRows: bloque de totales alineado a la derecha.
func (r *MarotoRenderer) summaryRows(s *document.SummarySection) []core.Row {
	rows := make([]core.Row, 0, len(s.Rows)+3)
	for _, f := range s.Rows {
		rows = append(rows, row.New(6).Add(
			col.New(6), // espacio izquierdo
			col.New(3).Add(text.New(r.clean(f.Label+":"), props.Text{Size: fontSize, Top: 1})),
			col.New(3).Add(text.New(r.clean(f.Value), props.Text{Size: fontSize, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	rows = append(rows,
		row.New(2).Add(col.New(6), line.NewCol(6, props.Line{Color: colorBorder, Thickness: 0.5})),
		row.New(8).Add(
			col.New(6),
			col.New(3).Add(text.New(r.clean(s.Total.Label+":"), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 1.5,
			})),
			col.New(3).Add(text.New(r.clean(s.Total.Value), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 1.5, Align: align.Right, Right: 1,
			})),
		),
		row.New(8),
	)
	return rows
}

// termsRows: título + párrafos.
func (r *MarotoRenderer) termsRows(t *document.TermsSection) []core.Row {
	rows := []core.Row{r.headingRow(t.Heading)}
	for _, p := range t.Paragraphs {
		content := r.clean(p)
		rows = append(rows, row.New(textHeight(content, contentMM)).Add(
			col.New(12).Add(text.New(content, props.Text{Size: fontSize, Top: 0.5})),
		))
	}
	return append(rows, row.New(5))
}

// signatureRows: dos líneas de firma en blanco con su leyenda.
func (r *MarotoRenderer) signatureRows(s *document.SignatureSection) []core.Row {
	sig := props.Line{Color: colorInk, Thickness: 0.3}
	return []core.Row{
		row.New(25),
		row.New(1).Add(line.NewCol(5, sig), col.New(2), line.NewCol(5, sig)),
		row.New(6).Add(
			col.New(5).Add(text.New(r.clean(s.IssuerLabel), props.Text{Size: fontSize, Top: 1})),
			col.New(2),
			col.New(5).Add(text.New(r.clean(s.ClientLabel), props.Text{Size: fontSize, Top: 1})),
		),
	}
}

func (r *MarotoRenderer) headingRow(heading string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(r.clean(heading), props.Text{
		Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
	})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func labelled(f document.Field) string {
	if f.Label == "" {
		return f.Value
	}
	return f.Label + ": " + f.Value
}

// textHeight alto de fila estimado para que el texto quepa en widthMM.
func textHeight(s string, widthMM float64) float64 {
	perLine := int(widthMM / charWidthMM)
	if perLine < 1 {
		perLine = 1
	}
	n := utf8.RuneCountInString(s)
	lines := (n + perLine - 1) / perLine
	if lines < 1 {
		lines = 1
	}
	return float64(lines)*lineHeight + 1.5
}

// latin1Fallbacks sustituciones para las fuentes estándar (cp1252), que no tienen
// glifos para algunos símbolos de moneda.
var latin1Fallbacks = strings.NewReplacer(
	"₹", "Rs.",
	" ", " ",
	" ", " ",
)

func (r *MarotoRenderer) clean(s string) string {
	if r.unicode {
		return s
	}
	return latin1Fallbacks.Replace(s)
}

// Close no hay recursos que liberar.
func (r *MarotoRenderer) Close() error { return nil }
