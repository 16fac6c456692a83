package http

import (
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/quotation-api/internal/application/dto"
)

// ServerConfig opciones de la aplicación Fiber.
type ServerConfig struct {
	Name         string
	BodyLimit    int // bytes
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
	SwaggerFile  string // vacío = sin /docs
}

// NewApp crea la aplicación Fiber con middlewares y rutas registradas.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    "Quotation API",
		}))
	}

	Router(app, deps)
	return app
}

// errorHandler responde los errores de Fiber (404, 413, pánicos recuperados) con el
// mismo formato que los handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: msg, Code: codeFor(code)})
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "INVALID_BODY"
	default:
		return "INTERNAL"
	}
}
