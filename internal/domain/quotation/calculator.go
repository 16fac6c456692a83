// Package quotation contiene el cálculo financiero de una cotización (servicio de dominio puro).
package quotation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/quotation-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Compute deriva importes por línea, subtotal, impuesto, descuento y total.
//
//	lineAmount = quantity * rate
//	subtotal   = Σ lineAmount
//	tax        = subtotal * taxRate / 100
//	discount   = subtotal * discountPercent / 100
//	total      = subtotal + tax - discount
//
// No redondea: el redondeo es responsabilidad de la presentación. El total no se
// limita a cero. Sin ítems (o con q nil) todos los valores son cero.
func Compute(q *entity.Quotation) entity.Financials {
	if q == nil {
		return entity.Financials{LineAmounts: []decimal.Decimal{}}
	}

	lines := make([]decimal.Decimal, len(q.Items))
	subtotal := decimal.Zero
	for i, item := range q.Items {
		lines[i] = LineAmount(item)
		subtotal = subtotal.Add(lines[i])
	}

	tax := percentOf(subtotal, q.TaxRatePercent)
	discount := percentOf(subtotal, q.DiscountPercent)

	return entity.Financials{
		LineAmounts:    lines,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		Total:          subtotal.Add(tax).Sub(discount),
	}
}

// LineAmount importe de una línea.
func LineAmount(item entity.LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.Rate)
}

func percentOf(base, percent decimal.Decimal) decimal.Decimal {
	if percent.IsZero() || base.IsZero() {
		return decimal.Zero
	}
	return base.Mul(percent).Div(hundred)
}
