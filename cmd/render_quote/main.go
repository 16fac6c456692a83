// render_quote genera una cotización a partir de un archivo JSON con el mismo formato
// que POST /api/generate-pdf.
//
// Uso: go run ./cmd/render_quote <cotizacion.json> [salida.pdf|salida.html]
// Por defecto escribe Quotation-<número>.pdf en el directorio actual.
// Con extensión .html escribe el markup en lugar del PDF.
// Acepta archivos en UTF-8 o Windows-1252 (exportaciones de Excel).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/quotation-api/internal/application/dto"
	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain/document"
	infrapdf "github.com/jhoicas/quotation-api/internal/infrastructure/pdf"
	"github.com/jhoicas/quotation-api/pkg/config"
	"github.com/jhoicas/quotation-api/pkg/locale"
	"github.com/jhoicas/quotation-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: render_quote <cotizacion.json> [salida.pdf|salida.html]")
		os.Exit(1)
	}
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "render_quote: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: "development", Level: "info", Output: os.Stderr})

	in, err := readRequest(args[0])
	if err != nil {
		return err
	}

	loc, err := locale.New(cfg.Document.Locale, cfg.Document.Currency)
	if err != nil {
		return err
	}
	docOpts := document.Options{
		Locale:       loc,
		TaxLabel:     cfg.Document.TaxLabel,
		TaxIDLabel:   cfg.Document.TaxIDLabel,
		DefaultTerms: cfg.Document.DefaultTerms,
		FontURL:      cfg.Document.FontURL,
	}

	renderer, err := infrapdf.New(cfg.Renderer)
	if err != nil {
		return err
	}
	defer renderer.Close()

	uc := appquote.NewGenerateUseCase(renderer, docOpts, appquote.DefaultPageOptions())
	ctx := context.Background()

	out := appquote.Filename(in.QuotationNumber)
	if len(args) > 1 {
		out = args[1]
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(out), ".html") {
		markup, err := uc.Preview(ctx, in)
		if err != nil {
			return err
		}
		data = []byte(markup)
	} else {
		art, err := uc.Generate(ctx, in)
		if err != nil {
			return err
		}
		data = art.Bytes
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	log.Info().Str("file", out).Int("bytes", len(data)).Str("engine", renderer.Engine()).Msg("cotización escrita")
	return nil
}

func readRequest(path string) (dto.QuotationRequest, error) {
	var in dto.QuotationRequest
	raw, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("leer %s: %w", path, err)
	}
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return in, fmt.Errorf("decodificar %s: %w", path, err)
		}
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return in, nil
}
