package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quotation-api/internal/domain/entity"
	"github.com/jhoicas/quotation-api/internal/domain/quotation"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(name, qty, rate string) entity.LineItem {
	return entity.LineItem{Name: name, Quantity: d(qty), Rate: d(rate)}
}

// Escenario de referencia: 2×100 + 1×50, IVA/GST 18%, descuento 10%.
func TestCompute_EscenarioReferencia(t *testing.T) {
	q := &entity.Quotation{
		Items:           []entity.LineItem{item("Widget", "2", "100"), item("Service", "1", "50")},
		TaxRatePercent:  d("18"),
		DiscountPercent: d("10"),
	}

	f := quotation.Compute(q)

	require.Len(t, f.LineAmounts, 2)
	assert.True(t, f.LineAmounts[0].Equal(d("200")))
	assert.True(t, f.LineAmounts[1].Equal(d("50")))
	assert.True(t, f.Subtotal.Equal(d("250")), "subtotal = %s", f.Subtotal)
	assert.True(t, f.TaxAmount.Equal(d("45")), "tax = %s", f.TaxAmount)
	assert.True(t, f.DiscountAmount.Equal(d("25")), "discount = %s", f.DiscountAmount)
	assert.Equal(t, "270.00", f.Total.StringFixed(2))
}

func TestCompute_SinItemsTodoCero(t *testing.T) {
	f := quotation.Compute(&entity.Quotation{
		TaxRatePercent:  d("18"),
		DiscountPercent: d("10"),
	})

	assert.Empty(t, f.LineAmounts)
	assert.True(t, f.Subtotal.IsZero())
	assert.True(t, f.TaxAmount.IsZero())
	assert.True(t, f.DiscountAmount.IsZero())
	assert.True(t, f.Total.IsZero())
}

func TestCompute_NilNoFalla(t *testing.T) {
	f := quotation.Compute(nil)
	assert.True(t, f.Total.IsZero())
}

// El subtotal no depende del orden de las líneas.
func TestCompute_IndependienteDelOrden(t *testing.T) {
	items := []entity.LineItem{
		item("a", "3", "19.99"),
		item("b", "0.5", "1200"),
		item("c", "7", "0.01"),
	}
	reversed := []entity.LineItem{items[2], items[1], items[0]}

	f1 := quotation.Compute(&entity.Quotation{Items: items, TaxRatePercent: d("5")})
	f2 := quotation.Compute(&entity.Quotation{Items: reversed, TaxRatePercent: d("5")})

	assert.True(t, f1.Subtotal.Equal(f2.Subtotal))
	assert.True(t, f1.Total.Equal(f2.Total))
	assert.True(t, f1.Subtotal.Equal(d("660.04")), "subtotal = %s", f1.Subtotal)
}

func TestCompute_TotalCoincideConFormula(t *testing.T) {
	cases := []struct {
		name     string
		tax      string
		discount string
	}{
		{"sin impuesto ni descuento", "0", "0"},
		{"solo impuesto", "19", "0"},
		{"solo descuento", "0", "15"},
		{"fraccionarios", "12.5", "7.25"},
	}
	items := []entity.LineItem{item("x", "4", "333.33"), item("y", "1", "0.07")}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := quotation.Compute(&entity.Quotation{
				Items:           items,
				TaxRatePercent:  d(tc.tax),
				DiscountPercent: d(tc.discount),
			})
			sub := d("1333.39")
			want := sub.
				Add(sub.Mul(d(tc.tax)).Div(decimal.NewFromInt(100))).
				Sub(sub.Mul(d(tc.discount)).Div(decimal.NewFromInt(100)))
			assert.True(t, f.Subtotal.Equal(sub))
			assert.True(t, f.Total.Equal(want), "total = %s, esperado %s", f.Total, want)
		})
	}
}

// Un descuento mayor al 100% más el impuesto produce un total negativo; no se limita.
func TestCompute_TotalNegativoNoSeLimita(t *testing.T) {
	f := quotation.Compute(&entity.Quotation{
		Items:           []entity.LineItem{item("x", "1", "100")},
		TaxRatePercent:  d("10"),
		DiscountPercent: d("150"),
	})

	assert.True(t, f.Total.Equal(d("-40")), "total = %s", f.Total)
}

func TestCompute_Idempotente(t *testing.T) {
	q := &entity.Quotation{
		Items:           []entity.LineItem{item("x", "3", "10.10")},
		TaxRatePercent:  d("18"),
		DiscountPercent: d("2.5"),
	}

	assert.Equal(t, quotation.Compute(q), quotation.Compute(q))
}
