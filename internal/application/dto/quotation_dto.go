package dto

import "github.com/jhoicas/quotation-api/pkg/numeric"

// QuotationRequest body para POST /api/generate-pdf (mismo formato que envía el formulario).
// Los campos numéricos aceptan número o string; lo no interpretable vale cero.
type QuotationRequest struct {
	QuotationNumber string `json:"quotationNumber"`
	QuotationDate   string `json:"quotationDate"` // YYYY-MM-DD o RFC 3339
	ValidUntil      string `json:"validUntil"`

	ClientName    string `json:"clientName"`
	ClientCompany string `json:"clientCompany,omitempty"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientGstin   string `json:"clientGstin,omitempty"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyGstin   string `json:"companyGstin,omitempty"`
	CompanyLogo    string `json:"companyLogo,omitempty"` // Base64 o URL

	Items              []QuotationItemRequest  `json:"items"`
	GstRate            numeric.Lenient         `json:"gstRate"`
	DiscountPercentage numeric.Lenient         `json:"discountPercentage"`
	Terms              string                  `json:"terms,omitempty"`
	ServiceWarranty    *ServiceWarrantyRequest `json:"serviceWarranty"`
}

// QuotationItemRequest línea de la cotización.
type QuotationItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    numeric.Lenient `json:"quantity"`
	Rate        numeric.Lenient `json:"rate"`
}

// ServiceWarrantyRequest bloque de servicio y garantía.
type ServiceWarrantyRequest struct {
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Conditions  string `json:"conditions"`
}

// CalculationResponse importes derivados para POST /api/quotations/calculate.
// Los montos van como string con dos decimales para no perder precisión en JSON.
type CalculationResponse struct {
	Currency       string                 `json:"currency"`
	Lines          []LineAmountResponse   `json:"lines"`
	Subtotal       string                 `json:"subtotal"`
	TaxRate        string                 `json:"tax_rate"`
	TaxAmount      string                 `json:"tax_amount"`
	DiscountRate   string                 `json:"discount_rate"`
	DiscountAmount string                 `json:"discount_amount"`
	Total          string                 `json:"total"`
	Formatted      FormattedFinancialsDTO `json:"formatted"`
}

// LineAmountResponse importe de una línea (posición 1-based).
type LineAmountResponse struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
}

// FormattedFinancialsDTO los mismos importes con el formato de moneda del documento.
type FormattedFinancialsDTO struct {
	Subtotal       string `json:"subtotal"`
	TaxAmount      string `json:"tax_amount"`
	DiscountAmount string `json:"discount_amount"`
	Total          string `json:"total"`
}
