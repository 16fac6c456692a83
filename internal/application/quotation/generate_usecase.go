// Package quotation orquesta la generación del documento de una cotización:
// validación de frontera → cálculo → composición → renderizado.
package quotation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/quotation-api/internal/application/dto"
	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/internal/domain/document"
	"github.com/jhoicas/quotation-api/internal/domain/entity"
	domainquote "github.com/jhoicas/quotation-api/internal/domain/quotation"
)

// ContentTypePDF tipo MIME del artefacto generado.
const ContentTypePDF = "application/pdf"

// Artifact documento binario listo para descargar.
type Artifact struct {
	Bytes       []byte
	ContentType string
	Filename    string
}

// GenerateUseCase genera cotizaciones en PDF. No guarda estado entre peticiones:
// cada llamada recalcula y vuelve a renderizar desde cero.
type GenerateUseCase struct {
	renderer DocumentRenderer
	docOpts  document.Options
	page     PageOptions
}

// NewGenerateUseCase construye el caso de uso inyectando el motor de renderizado.
func NewGenerateUseCase(renderer DocumentRenderer, docOpts document.Options, page PageOptions) *GenerateUseCase {
	return &GenerateUseCase{
		renderer: renderer,
		docOpts:  docOpts,
		page:     page,
	}
}

// Generate produce el PDF de la cotización.
//
// Retorna:
//   - (*Artifact, nil)             si todo sale bien.
//   - *domain.ValidationError      si faltan clientName, clientEmail o items.
//   - *domain.MissingFieldError    si falta el bloque serviceWarranty.
//   - *domain.RenderFailure        si el motor no pudo producir el PDF.
//
// Nunca devuelve artefactos parciales.
func (uc *GenerateUseCase) Generate(ctx context.Context, in dto.QuotationRequest) (*Artifact, error) {
	// ── 1. Precondición de frontera ──────────────────────────────────────────
	if err := Validate(in); err != nil {
		return nil, err
	}

	// ── 2. Cálculo + composición ─────────────────────────────────────────────
	doc, err := uc.build(in)
	if err != nil {
		return nil, err
	}

	// ── 3. Renderizado ───────────────────────────────────────────────────────
	pdf, err := uc.renderer.Render(ctx, doc, uc.page)
	if err != nil {
		var rf *domain.RenderFailure
		if errors.As(err, &rf) {
			return nil, err
		}
		return nil, &domain.RenderFailure{Engine: uc.renderer.Engine(), Err: err}
	}
	if len(pdf) == 0 {
		return nil, &domain.RenderFailure{Engine: uc.renderer.Engine(), Err: errors.New("documento vacío")}
	}

	return &Artifact{
		Bytes:       pdf,
		ContentType: ContentTypePDF,
		Filename:    Filename(in.QuotationNumber),
	}, nil
}

// Preview devuelve el markup que se entregaría al motor, sin renderizar.
func (uc *GenerateUseCase) Preview(_ context.Context, in dto.QuotationRequest) (string, error) {
	if err := Validate(in); err != nil {
		return "", err
	}
	doc, err := uc.build(in)
	if err != nil {
		return "", err
	}
	return doc.HTML()
}

// Calculate devuelve los importes derivados. Pensado para borradores: no valida
// campos obligatorios y los números inválidos valen cero.
func (uc *GenerateUseCase) Calculate(_ context.Context, in dto.QuotationRequest) *dto.CalculationResponse {
	q := ToEntity(in)
	f := domainquote.Compute(q)
	loc := uc.docOpts.Locale
	if loc == nil {
		loc = document.DefaultOptions().Locale
	}

	lines := make([]dto.LineAmountResponse, 0, len(q.Items))
	for i, it := range q.Items {
		lines = append(lines, dto.LineAmountResponse{
			Position: i + 1,
			Name:     it.Name,
			Amount:   f.LineAmounts[i].StringFixed(2),
		})
	}

	return &dto.CalculationResponse{
		Currency:       loc.Currency(),
		Lines:          lines,
		Subtotal:       f.Subtotal.StringFixed(2),
		TaxRate:        q.TaxRatePercent.String(),
		TaxAmount:      f.TaxAmount.StringFixed(2),
		DiscountRate:   q.DiscountPercent.String(),
		DiscountAmount: f.DiscountAmount.StringFixed(2),
		Total:          f.Total.StringFixed(2),
		Formatted: dto.FormattedFinancialsDTO{
			Subtotal:       loc.Money(f.Subtotal),
			TaxAmount:      loc.Money(f.TaxAmount),
			DiscountAmount: loc.Money(f.DiscountAmount),
			Total:          loc.Money(f.Total),
		},
	}
}

func (uc *GenerateUseCase) build(in dto.QuotationRequest) (*document.Document, error) {
	q := ToEntity(in)
	f := domainquote.Compute(q)
	doc, err := document.Build(q, f, uc.docOpts)
	if err != nil {
		return nil, fmt.Errorf("componer cotización %s: %w", in.QuotationNumber, err)
	}
	return doc, nil
}

// Validate aplica la precondición de frontera: nombre y email del cliente presentes y al
// menos un ítem. Solo se exige presencia; un valor con espacios cuenta como presente.
func Validate(in dto.QuotationRequest) error {
	var missing []string
	if in.ClientName == "" {
		missing = append(missing, "clientName")
	}
	if in.ClientEmail == "" {
		missing = append(missing, "clientEmail")
	}
	if len(in.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// ToEntity traduce el DTO a la entidad de dominio. Las conversiones numéricas ya
// ocurrieron al decodificar (numeric.Lenient); las fechas inválidas quedan en cero.
func ToEntity(in dto.QuotationRequest) *entity.Quotation {
	items := make([]entity.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.LineItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity.Decimal(),
			Rate:        it.Rate.Decimal(),
		})
	}

	var warranty *entity.ServiceWarranty
	if in.ServiceWarranty != nil {
		warranty = &entity.ServiceWarranty{
			Description: in.ServiceWarranty.Description,
			Duration:    in.ServiceWarranty.Duration,
			Conditions:  in.ServiceWarranty.Conditions,
		}
	}

	return &entity.Quotation{
		Number:     in.QuotationNumber,
		IssueDate:  parseDate(in.QuotationDate),
		ValidUntil: parseDate(in.ValidUntil),
		Client: entity.Client{
			Name:    in.ClientName,
			Company: in.ClientCompany,
			Email:   in.ClientEmail,
			Phone:   in.ClientPhone,
			TaxID:   in.ClientGstin,
		},
		Issuer: entity.Issuer{
			Name:    in.CompanyName,
			Address: in.CompanyAddress,
			Email:   in.CompanyEmail,
			Phone:   in.CompanyPhone,
			TaxID:   in.CompanyGstin,
			LogoRef: in.CompanyLogo,
		},
		Items:           items,
		TaxRatePercent:  in.GstRate.Decimal(),
		DiscountPercent: in.DiscountPercentage.Decimal(),
		Terms:           in.Terms,
		ServiceWarranty: warranty,
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// parseDate interpreta fechas de calendario. Con RFC 3339 se conserva el día civil
// indicado por el cliente, sin convertir zona horaria.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename nombre sugerido: Quotation-{número}.pdf. Los caracteres que no son seguros
// en una cabecera Content-Disposition se reemplazan por "-".
func Filename(number string) string {
	safe := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(number), "-")
	return "Quotation-" + safe + ".pdf"
}
