package dto

// ErrorResponse cuerpo de error HTTP. Error es el mensaje para el cliente; Code permite
// distinguir el tipo de fallo sin parsear el texto.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse cuerpo de GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}
