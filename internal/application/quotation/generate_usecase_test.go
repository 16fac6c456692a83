package quotation_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quotation-api/internal/application/dto"
	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/internal/domain/document"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const sampleJSON = `{
  "quotationNumber": "QT-2024-1234",
  "quotationDate": "2024-01-15",
  "validUntil": "2024-02-14T00:00:00.000Z",
  "clientName": "Asha Rao",
  "clientEmail": "asha@example.com",
  "companyName": "Acme Tools",
  "companyAddress": "12 MG Road",
  "companyEmail": "sales@acme.example",
  "companyPhone": "+91 80 1234 5678",
  "items": [
    {"name": "Widget", "quantity": 2, "rate": 100},
    {"name": "Service", "quantity": "1", "rate": "50"}
  ],
  "gstRate": 18,
  "discountPercentage": "10",
  "serviceWarranty": {"description": "On-site", "duration": "12 months", "conditions": "Standard"}
}`

func sampleRequest(t *testing.T) dto.QuotationRequest {
	t.Helper()
	var in dto.QuotationRequest
	require.NoError(t, json.Unmarshal([]byte(sampleJSON), &in))
	return in
}

// fakeRenderer registra las llamadas y devuelve lo configurado.
type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	html  string
	opts  appquote.PageOptions
	out   []byte
	err   error
}

func (f *fakeRenderer) Engine() string { return "fake" }

func (f *fakeRenderer) Render(_ context.Context, doc *document.Document, opts appquote.PageOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.opts = opts
	html, err := doc.HTML()
	if err != nil {
		return nil, err
	}
	f.html = html
	return f.out, f.err
}

func newUseCase(r *fakeRenderer) *appquote.GenerateUseCase {
	return appquote.NewGenerateUseCase(r, document.DefaultOptions(), appquote.DefaultPageOptions())
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_Exitoso(t *testing.T) {
	r := &fakeRenderer{out: []byte("%PDF-1.4 fake")}

	art, err := newUseCase(r).Generate(context.Background(), sampleRequest(t))

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), art.Bytes)
	assert.Equal(t, "application/pdf", art.ContentType)
	assert.Equal(t, "Quotation-QT-2024-1234.pdf", art.Filename)

	assert.Equal(t, 1, r.calls)
	assert.Equal(t, appquote.PageOptions{Size: appquote.PageSizeA4, PrintBackground: true, MarginMM: 10}, r.opts)
	assert.Contains(t, r.html, "₹270.00")
	assert.Contains(t, r.html, "<p><strong>Valid Until:</strong> 14/2/2024</p>")
}

func TestGenerate_SinItemsNoLlegaAlMotor(t *testing.T) {
	r := &fakeRenderer{out: []byte("%PDF")}
	in := sampleRequest(t)
	in.Items = []dto.QuotationItemRequest{}

	_, err := newUseCase(r).Generate(context.Background(), in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"items"}, vErr.Fields)
	assert.Equal(t, 0, r.calls)
}

func TestGenerate_CamposObligatorios(t *testing.T) {
	in := sampleRequest(t)
	in.ClientName = ""
	in.ClientEmail = ""

	err := appquote.Validate(in)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"clientName", "clientEmail"}, vErr.Fields)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Solo se exige presencia: un nombre con espacios no bloquea la generación.
func TestGenerate_CamposConEspaciosSonPresentes(t *testing.T) {
	in := sampleRequest(t)
	in.ClientName = "  "
	in.ClientEmail = " "

	assert.NoError(t, appquote.Validate(in))
}

func TestGenerate_SinGarantia(t *testing.T) {
	r := &fakeRenderer{out: []byte("%PDF")}
	in := sampleRequest(t)
	in.ServiceWarranty = nil

	_, err := newUseCase(r).Generate(context.Background(), in)

	var mErr *domain.MissingFieldError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "serviceWarranty", mErr.Field)
	assert.Equal(t, 0, r.calls)
}

func TestGenerate_ErrorDelMotorSeEnvuelve(t *testing.T) {
	cause := errors.New("chromium crashed")
	r := &fakeRenderer{err: cause}

	art, err := newUseCase(r).Generate(context.Background(), sampleRequest(t))

	assert.Nil(t, art)
	var rf *domain.RenderFailure
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, "fake", rf.Engine)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestGenerate_RenderFailureSeRespeta(t *testing.T) {
	original := &domain.RenderFailure{Engine: "chrome", Err: context.DeadlineExceeded}
	r := &fakeRenderer{err: original}

	_, err := newUseCase(r).Generate(context.Background(), sampleRequest(t))

	var rf *domain.RenderFailure
	require.ErrorAs(t, err, &rf)
	assert.Same(t, original, rf)
}

func TestGenerate_DocumentoVacioEsFallo(t *testing.T) {
	r := &fakeRenderer{out: nil}

	_, err := newUseCase(r).Generate(context.Background(), sampleRequest(t))

	assert.ErrorIs(t, err, domain.ErrRender)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview / Calculate
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_DevuelveMarkup(t *testing.T) {
	r := &fakeRenderer{}
	in := sampleRequest(t)
	in.ClientPhone = "+1 555"

	html, err := newUseCase(r).Preview(context.Background(), in)

	require.NoError(t, err)
	assert.Contains(t, html, "<p><strong>Phone:</strong> +1 555</p>")
	assert.Equal(t, 0, r.calls, "la vista previa no usa el motor")
}

func TestPreview_Idempotente(t *testing.T) {
	uc := newUseCase(&fakeRenderer{})
	in := sampleRequest(t)

	a, err := uc.Preview(context.Background(), in)
	require.NoError(t, err)
	b, err := uc.Preview(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCalculate_EscenarioReferencia(t *testing.T) {
	res := newUseCase(&fakeRenderer{}).Calculate(context.Background(), sampleRequest(t))

	assert.Equal(t, "INR", res.Currency)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, dto.LineAmountResponse{Position: 1, Name: "Widget", Amount: "200.00"}, res.Lines[0])
	assert.Equal(t, "250.00", res.Subtotal)
	assert.Equal(t, "18", res.TaxRate)
	assert.Equal(t, "45.00", res.TaxAmount)
	assert.Equal(t, "10", res.DiscountRate)
	assert.Equal(t, "25.00", res.DiscountAmount)
	assert.Equal(t, "270.00", res.Total)
	assert.Equal(t, "₹270.00", res.Formatted.Total)
}

func TestCalculate_BorradorConValoresInvalidos(t *testing.T) {
	var in dto.QuotationRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"items": [{"name": "a", "quantity": "", "rate": "abc"}, {"name": "b", "quantity": "3", "rate": 10}],
		"gstRate": null,
		"discountPercentage": "n/a"
	}`), &in))

	res := newUseCase(&fakeRenderer{}).Calculate(context.Background(), in)

	assert.Equal(t, "0.00", res.Lines[0].Amount)
	assert.Equal(t, "30.00", res.Subtotal)
	assert.Equal(t, "0.00", res.TaxAmount)
	assert.Equal(t, "0.00", res.DiscountAmount)
	assert.Equal(t, "30.00", res.Total)
}

func TestCalculate_ExponenteFueraDeRango(t *testing.T) {
	var in dto.QuotationRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"items": [{"name": "a", "quantity": "1e50000", "rate": 1}, {"name": "b", "quantity": 2, "rate": "1e-50000"}],
		"gstRate": 18
	}`), &in))

	res := newUseCase(&fakeRenderer{}).Calculate(context.Background(), in)

	assert.Equal(t, "0.00", res.Lines[0].Amount)
	assert.Equal(t, "0.00", res.Lines[1].Amount)
	assert.Equal(t, "0.00", res.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo
// ──────────────────────────────────────────────────────────────────────────────

func TestToEntity_Fechas(t *testing.T) {
	in := sampleRequest(t)
	in.ValidUntil = "mañana"

	q := appquote.ToEntity(in)

	assert.Equal(t, "2024-01-15", q.IssueDate.Format("2006-01-02"))
	assert.True(t, q.ValidUntil.IsZero())
}

func TestToEntity_CopiaCampos(t *testing.T) {
	in := sampleRequest(t)
	in.CompanyLogo = "data:image/png;base64,AAAA"
	in.ClientGstin = "29ABCDE1234F1Z5"

	q := appquote.ToEntity(in)

	assert.Equal(t, "data:image/png;base64,AAAA", q.Issuer.LogoRef)
	assert.Equal(t, "29ABCDE1234F1Z5", q.Client.TaxID)
	assert.Equal(t, "2", q.Items[0].Quantity.String())
	assert.Equal(t, "50", q.Items[1].Rate.String())
	require.NotNil(t, q.ServiceWarranty)
	assert.Equal(t, "12 months", q.ServiceWarranty.Duration)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Quotation-QT-2024-1234.pdf", appquote.Filename("QT-2024-1234"))
	assert.Equal(t, "Quotation-QT-2024-7.pdf", appquote.Filename("QT/2024 7"))
	assert.Equal(t, "Quotation--.pdf", appquote.Filename("\"\r\n"))
}
