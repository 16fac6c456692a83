package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/quotation-api/internal/application/dto"
	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/pkg/logger"
)

const msgRenderFailed = "Failed to generate PDF"

// QuotationHandler maneja las peticiones HTTP de cotizaciones (público).
type QuotationHandler struct {
	uc  *appquote.GenerateUseCase
	log *logger.Logger
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *appquote.GenerateUseCase, log *logger.Logger) *QuotationHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotationHandler{uc: uc, log: log}
}

// GeneratePDF godoc
// @Summary      Generar cotización en PDF
// @Tags         quotations
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.QuotationRequest  true  "Datos de la cotización"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/generate-pdf [post]
func (h *QuotationHandler) GeneratePDF(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	art, err := h.uc.Generate(c.Context(), in)
	if err != nil {
		return h.fail(c, in.QuotationNumber, err)
	}

	h.log.Info().
		Str("request_id", requestID(c)).
		Str("quotation", in.QuotationNumber).
		Int("items", len(in.Items)).
		Int("bytes", len(art.Bytes)).
		Msg("cotización generada")

	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+art.Filename)
	return c.Status(fiber.StatusOK).Send(art.Bytes)
}

// Preview godoc
// @Summary      Vista previa HTML de la cotización
// @Tags         quotations
// @Accept       json
// @Produce      html
// @Param        body  body  dto.QuotationRequest  true  "Datos de la cotización"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/quotations/preview [post]
func (h *QuotationHandler) Preview(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	markup, err := h.uc.Preview(c.Context(), in)
	if err != nil {
		return h.fail(c, in.QuotationNumber, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(markup)
}

// Calculate godoc
// @Summary      Calcular importes de la cotización
// @Description  No valida campos obligatorios: sirve para borradores. Números inválidos valen cero.
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuotationRequest  true  "Datos de la cotización"
// @Success      200   {object}  dto.CalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations/calculate [post]
func (h *QuotationHandler) Calculate(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.Calculate(c.Context(), in))
}

// fail traduce los errores del caso de uso a respuestas HTTP. El detalle de los fallos
// de renderizado solo va al log.
func (h *QuotationHandler) fail(c *fiber.Ctx, number string, err error) error {
	var (
		ve *domain.ValidationError
		mf *domain.MissingFieldError
		rf *domain.RenderFailure
	)
	switch {
	case errors.As(err, &ve):
		h.log.Warn().
			Str("request_id", requestID(c)).
			Str("missing", ve.Detail()).
			Msg("cotización rechazada")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ve.Error(), Code: "VALIDATION"})
	case errors.As(err, &mf):
		h.log.Error().
			Str("request_id", requestID(c)).
			Str("quotation", number).
			Str("field", mf.Field).
			Msg("cotización incompleta")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: mf.Error(), Code: "MISSING_FIELD"})
	case errors.As(err, &rf):
		h.log.Error().
			Err(err).
			Str("request_id", requestID(c)).
			Str("quotation", number).
			Str("engine", rf.Engine).
			Msg("error generando PDF")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgRenderFailed, Code: "RENDER_FAILED"})
	default:
		h.log.Error().
			Err(err).
			Str("request_id", requestID(c)).
			Str("quotation", number).
			Msg("error inesperado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgRenderFailed, Code: "INTERNAL"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body", Code: "INVALID_BODY"})
}

// requestID devuelve el identificador asignado por el middleware requestid.
func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
