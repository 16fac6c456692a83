package entity

import "github.com/shopspring/decimal"

// Financials valores derivados de las líneas. Nunca los envía el cliente ni se cachean:
// se recalculan en cada generación.
type Financials struct {
	LineAmounts    []decimal.Decimal // Mismo orden que Quotation.Items
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal // Puede ser negativo si el descuento supera 100% + impuesto
}
