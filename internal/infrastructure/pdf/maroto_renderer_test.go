package pdf_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/internal/domain/document"
	"github.com/jhoicas/quotation-api/internal/domain/entity"
	"github.com/jhoicas/quotation-api/internal/domain/quotation"
	"github.com/jhoicas/quotation-api/internal/infrastructure/pdf"
	"github.com/jhoicas/quotation-api/pkg/config"
)

func sampleDocument(t *testing.T, items int) *document.Document {
	t.Helper()
	q := &entity.Quotation{
		Number:     "QT-2024-1234",
		IssueDate:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC),
		Client:     entity.Client{Name: "Asha Rao", Email: "asha@example.com", Phone: "+1 555 0100"},
		Issuer: entity.Issuer{
			Name: "Acme Tools", Address: "12 MG Road, Bengaluru",
			Email: "sales@acme.example", Phone: "+91 80 1234 5678", TaxID: "29ABCDE1234F1Z5",
		},
		TaxRatePercent:  decimal.NewFromInt(18),
		DiscountPercent: decimal.NewFromInt(10),
		Terms:           "Payment within 30 days.",
		ServiceWarranty: &entity.ServiceWarranty{Description: "On-site", Duration: "12 months", Conditions: "Standard"},
	}
	for i := 0; i < items; i++ {
		q.Items = append(q.Items, entity.LineItem{
			Name:        "Widget",
			Description: strings.Repeat("Long description ", i%4),
			Quantity:    decimal.NewFromInt(int64(i + 1)),
			Rate:        decimal.RequireFromString("99.50"),
		})
	}
	doc, err := document.Build(q, quotation.Compute(q), document.DefaultOptions())
	require.NoError(t, err)
	return doc
}

func TestMarotoRenderer_ProducesPDF(t *testing.T) {
	r, err := pdf.NewMarotoRenderer("")
	require.NoError(t, err)
	assert.Equal(t, pdf.EngineMaroto, r.Engine())

	out, err := r.Render(context.Background(), sampleDocument(t, 2), appquote.DefaultPageOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
	assert.NoError(t, r.Close())
}

func TestMarotoRenderer_ManyItemsSpansPages(t *testing.T) {
	r, err := pdf.NewMarotoRenderer("")
	require.NoError(t, err)

	short, err := r.Render(context.Background(), sampleDocument(t, 1), appquote.DefaultPageOptions())
	require.NoError(t, err)
	long, err := r.Render(context.Background(), sampleDocument(t, 80), appquote.DefaultPageOptions())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(long, []byte("%PDF")))
	assert.Greater(t, len(long), len(short))
}

func TestMarotoRenderer_Errors(t *testing.T) {
	r, err := pdf.NewMarotoRenderer("")
	require.NoError(t, err)

	t.Run("documento nil", func(t *testing.T) {
		_, err := r.Render(context.Background(), nil, appquote.DefaultPageOptions())
		var rf *domain.RenderFailure
		require.True(t, errors.As(err, &rf))
		assert.Equal(t, pdf.EngineMaroto, rf.Engine)
	})

	t.Run("tamaño no soportado", func(t *testing.T) {
		opts := appquote.DefaultPageOptions()
		opts.Size = "Letter"
		_, err := r.Render(context.Background(), sampleDocument(t, 1), opts)
		assert.ErrorIs(t, err, domain.ErrRender)
	})

	t.Run("contexto cancelado", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Render(ctx, sampleDocument(t, 1), appquote.DefaultPageOptions())
		assert.ErrorIs(t, err, domain.ErrRender)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMarotoRenderer_MissingFont(t *testing.T) {
	_, err := pdf.NewMarotoRenderer("/no/existe/fuente.ttf")
	assert.Error(t, err)
}

func TestNew_SelectsEngine(t *testing.T) {
	r, err := pdf.New(config.RendererConfig{Engine: "maroto"})
	require.NoError(t, err)
	assert.Equal(t, pdf.EngineMaroto, r.Engine())

	r, err = pdf.New(config.RendererConfig{Engine: "chrome", PoolSize: 1, Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, pdf.EngineChrome, r.Engine())
	assert.NoError(t, r.Close())

	_, err = pdf.New(config.RendererConfig{Engine: "wkhtmltopdf"})
	assert.Error(t, err)
}
