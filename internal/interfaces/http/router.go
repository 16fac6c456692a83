package http

import (
	"github.com/gofiber/fiber/v2"

	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Quotations  *appquote.GenerateUseCase
	Logger      *logger.Logger
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Health (público)
	api.Get("/health", NewHealthHandler(deps.ServiceName).Check)

	// Cotizaciones (público; ruta heredada del formulario web)
	quotationHandler := NewQuotationHandler(deps.Quotations, deps.Logger)
	api.Post("/generate-pdf", quotationHandler.GeneratePDF)

	quotations := api.Group("/quotations")
	quotations.Post("/preview", quotationHandler.Preview)
	quotations.Post("/calculate", quotationHandler.Calculate)
}
