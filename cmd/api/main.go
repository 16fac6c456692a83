package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain/document"
	infrapdf "github.com/jhoicas/quotation-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/quotation-api/internal/interfaces/http"
	"github.com/jhoicas/quotation-api/pkg/config"
	"github.com/jhoicas/quotation-api/pkg/locale"
	"github.com/jhoicas/quotation-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("engine", cfg.Renderer.Engine).
		Str("locale", cfg.Document.Locale).
		Msg("iniciando aplicación")

	loc, err := locale.New(cfg.Document.Locale, cfg.Document.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("locale")
	}
	docOpts := document.Options{
		Locale:       loc,
		TaxLabel:     cfg.Document.TaxLabel,
		TaxIDLabel:   cfg.Document.TaxIDLabel,
		DefaultTerms: cfg.Document.DefaultTerms,
		FontURL:      cfg.Document.FontURL,
	}

	// PDF: motor chrome (navegador headless) o maroto (Go puro)
	renderer, err := infrapdf.New(cfg.Renderer)
	if err != nil {
		log.Fatal().Err(err).Msg("motor de PDF")
	}
	defer renderer.Close()

	generateUC := appquote.NewGenerateUseCase(renderer, docOpts, appquote.DefaultPageOptions())

	serverCfg := httpRouter.ServerConfig{
		Name:         cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitBytes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		AllowOrigins: cfg.HTTP.AllowOrigins,
	}
	if _, err := os.Stat(swaggerFile); err == nil {
		serverCfg.SwaggerFile = swaggerFile
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no encontrado, /docs deshabilitado")
	}

	app := httpRouter.NewApp(serverCfg, httpRouter.RouterDeps{
		Quotations:  generateUC,
		Logger:      log,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
