package quotation

import (
	"context"

	"github.com/jhoicas/quotation-api/internal/domain/document"
)

// PageSize tamaño de página soportado por los motores.
type PageSize string

const PageSizeA4 PageSize = "A4"

// PageOptions configuración de página entregada al motor de renderizado.
type PageOptions struct {
	Size            PageSize
	PrintBackground bool
	MarginMM        float64 // Margen uniforme en los cuatro lados
}

// DefaultPageOptions A4, fondos impresos y margen de 1 cm.
func DefaultPageOptions() PageOptions {
	return PageOptions{Size: PageSizeA4, PrintBackground: true, MarginMM: 10}
}

// DocumentRenderer puerto de salida hacia el motor que convierte el documento en PDF.
// Cada implementación adquiere y libera sus recursos (navegador, pestaña) dentro de
// Render en todas las salidas; el caso de uso no gestiona su ciclo de vida.
type DocumentRenderer interface {
	Engine() string
	Render(ctx context.Context, doc *document.Document, opts PageOptions) ([]byte, error)
}
