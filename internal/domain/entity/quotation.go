package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation representa una cotización recibida para generar su documento.
// Se construye por petición y se descarta al terminar; nunca se persiste.
type Quotation struct {
	Number          string // Número suministrado por el cliente, se usa tal cual
	IssueDate       time.Time
	ValidUntil      time.Time // Cero = no informado
	Client          Client
	Issuer          Issuer
	Items           []LineItem
	TaxRatePercent  decimal.Decimal
	DiscountPercent decimal.Decimal
	Terms           string           // Vacío = texto por defecto
	ServiceWarranty *ServiceWarranty // Obligatorio para componer el documento
}

// Client datos del destinatario de la cotización.
type Client struct {
	Name    string
	Company string
	Email   string
	Phone   string
	TaxID   string
}

// Issuer datos de la empresa que emite la cotización.
type Issuer struct {
	Name    string
	Address string
	Email   string
	Phone   string
	TaxID   string
	LogoRef string // Base64 o URL; solo se transporta, no se dibuja
}

// LineItem línea facturable: cantidad por tarifa unitaria.
type LineItem struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
}

// ServiceWarranty bloque de servicio y garantía.
type ServiceWarranty struct {
	Description string
	Duration    string
	Conditions  string
}
