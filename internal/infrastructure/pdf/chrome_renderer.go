package pdf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	appquote "github.com/jhoicas/quotation-api/internal/application/quotation"
	"github.com/jhoicas/quotation-api/internal/domain"
	"github.com/jhoicas/quotation-api/internal/domain/document"
)

// EngineChrome nombre del motor.
const EngineChrome = "chrome"

// ChromeConfig opciones del navegador headless.
type ChromeConfig struct {
	ExecPath  string        // vacío = buscar en el PATH
	NoSandbox bool          // necesario dentro de contenedores
	PoolSize  int64         // pestañas simultáneas
	Timeout   time.Duration // límite por render
}

// ChromeRenderer imprime el HTML del documento con Chromium vía DevTools.
// Un único navegador compartido (arranque perezoso); cada render abre su propia pestaña.
type ChromeRenderer struct {
	cfg ChromeConfig
	sem *semaphore.Weighted

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromeRenderer no arranca el navegador; se inicia en el primer Render.
func NewChromeRenderer(cfg ChromeConfig) *ChromeRenderer {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ChromeRenderer{cfg: cfg, sem: semaphore.NewWeighted(cfg.PoolSize)}
}

// Engine nombre del motor.
func (r *ChromeRenderer) Engine() string { return EngineChrome }

// Render espera un hueco del pool, abre una pestaña, carga el HTML, espera las fuentes
// e imprime a PDF. Pestaña y hueco se liberan en cualquier salida.
func (r *ChromeRenderer) Render(ctx context.Context, doc *document.Document, opts appquote.PageOptions) ([]byte, error) {
	if doc == nil {
		return nil, r.fail(errors.New("documento nil"))
	}
	params, err := printParams(opts)
	if err != nil {
		return nil, r.fail(err)
	}
	markup, err := doc.HTML()
	if err != nil {
		return nil, r.fail(fmt.Errorf("componer html: %w", err))
	}

	waitCtx, cancelWait := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancelWait()
	if err := r.sem.Acquire(waitCtx, 1); err != nil {
		return nil, r.fail(fmt.Errorf("esperar pestaña libre: %w", err))
	}
	defer r.sem.Release(1)

	browserCtx, err := r.browser()
	if err != nil {
		return nil, r.fail(err)
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	// la espera del hueco descuenta del mismo plazo
	tabCtx, cancelTimeout := withSameDeadline(tabCtx, waitCtx)
	defer cancelTimeout()
	// la cancelación del llamador cierra la pestaña
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	var (
		out        []byte
		fontsReady bool
	)
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, awaitPromise),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := params.Do(ctx)
			out = buf
			return err
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return nil, r.fail(fmt.Errorf("imprimir pdf: %w", err))
	}
	return out, nil
}

// Close apaga el navegador. Seguro de llamar aunque nunca haya arrancado.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdownLocked()
	return nil
}

// browser devuelve el contexto del navegador, arrancándolo (o relanzándolo si murió).
func (r *ChromeRenderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}
	if r.browserCtx != nil {
		log.Warn().Str("engine", EngineChrome).Msg("navegador caído, relanzando")
		r.shutdownLocked()
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ExecPath))
	}
	if r.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox, chromedp.Flag("disable-setuid-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("iniciar navegador: %w", err)
	}

	r.allocCancel, r.browserCtx, r.browserCancel = allocCancel, browserCtx, browserCancel
	log.Info().
		Str("engine", EngineChrome).
		Str("exec_path", r.cfg.ExecPath).
		Int64("pool_size", r.cfg.PoolSize).
		Msg("navegador iniciado")
	return browserCtx, nil
}

func (r *ChromeRenderer) shutdownLocked() {
	if r.browserCancel != nil {
		r.browserCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	r.allocCancel, r.browserCtx, r.browserCancel = nil, nil, nil
}

func (r *ChromeRenderer) fail(err error) error {
	return &domain.RenderFailure{Engine: EngineChrome, Err: err}
}

// withSameDeadline deriva de parent un contexto que vence junto con src.
func withSameDeadline(parent, src context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := src.Deadline(); ok {
		return context.WithDeadline(parent, dl)
	}
	return context.WithCancel(parent)
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// ── Página ────────────────────────────────────────────────────────────────────

const mmPerInch = 25.4

// paperInches tamaños de papel soportados (ancho, alto) en pulgadas.
var paperInches = map[appquote.PageSize][2]float64{
	appquote.PageSizeA4: {8.27, 11.69},
}

// printParams traduce PageOptions a los parámetros de Page.printToPDF.
func printParams(opts appquote.PageOptions) (*page.PrintToPDFParams, error) {
	size := opts.Size
	if size == "" {
		size = appquote.PageSizeA4
	}
	dims, ok := paperInches[size]
	if !ok {
		return nil, fmt.Errorf("tamaño de página %q no soportado", size)
	}
	margin := opts.MarginMM / mmPerInch
	return page.PrintToPDF().
		WithPaperWidth(dims[0]).
		WithPaperHeight(dims[1]).
		WithPrintBackground(opts.PrintBackground).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin), nil
}
