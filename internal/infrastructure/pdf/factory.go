package pdf

import (
	"fmt"

	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/pkg/config"
)

// Renderer motor de PDF con recursos que liberar al apagar.
type Renderer interface {
	appquote.DocumentRenderer
	Close() error
}

// New crea el motor indicado en la configuración.
func New(cfg config.RendererConfig) (Renderer, error) {
	switch cfg.Engine {
	case EngineChrome, "":
		return NewChromeRenderer(ChromeConfig{
			ExecPath:  cfg.ChromePath,
			NoSandbox: cfg.NoSandbox,
			PoolSize:  int64(cfg.PoolSize),
			Timeout:   cfg.Timeout,
		}), nil
	case EngineMaroto:
		return NewMarotoRenderer(cfg.FontPath)
	default:
		return nil, fmt.Errorf("pdf: motor %q no soportado", cfg.Engine)
	}
}
