package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quotation-api/pkg/config"
)

// isolate evita que variables del entorno de CI alteren los valores por defecto.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "HTTP_PORT", "RENDERER_ENGINE", "CHROME_NO_SANDBOX", "RENDERER_TIMEOUT_SECONDS", "LOCALE", "DOC_TAX_LABEL", "APP_NAME"} {
		t.Setenv(k, "")
	}
	t.Setenv("CURRENCY", "INR")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "quotation-api", cfg.App.Name)
	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.Equal(t, 50*1024*1024, cfg.HTTP.BodyLimitBytes())
	assert.Equal(t, "chrome", cfg.Renderer.Engine)
	assert.True(t, cfg.Renderer.NoSandbox)
	assert.Equal(t, 30*time.Second, cfg.Renderer.Timeout)
	assert.Equal(t, "en-IN", cfg.Document.Locale)
	assert.Equal(t, "INR", cfg.Document.Currency)
	assert.Equal(t, "GST", cfg.Document.TaxLabel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("RENDERER_ENGINE", "Maroto")
	t.Setenv("CHROME_NO_SANDBOX", "false")
	t.Setenv("RENDERER_TIMEOUT_SECONDS", "5")
	t.Setenv("LOCALE", "es-CO")
	t.Setenv("CURRENCY", "")
	t.Setenv("DOC_TAX_LABEL", "  ")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8088", cfg.HTTP.Addr())
	assert.Equal(t, "maroto", cfg.Renderer.Engine)
	assert.False(t, cfg.Renderer.NoSandbox)
	assert.Equal(t, 5*time.Second, cfg.Renderer.Timeout)
	assert.Equal(t, "es-CO", cfg.Document.Locale)
	assert.Empty(t, cfg.Document.Currency, "CURRENCY vacío = derivar de la región")
	assert.Equal(t, "GST", cfg.Document.TaxLabel, "vacío en las demás claves = valor por defecto")
}

func TestLoad_PortFallback(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "4000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTP.Port)

	t.Setenv("HTTP_PORT", "5000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.HTTP.Port)
}

func TestLoad_InvalidEngine(t *testing.T) {
	isolate(t)
	t.Setenv("RENDERER_ENGINE", "wkhtmltopdf")

	_, err := config.Load()
	assert.ErrorContains(t, err, "RENDERER_ENGINE")
}
