package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Renderer RendererConfig
	Document DocumentConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	BodyLimitMB  int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string // lista separada por comas; "*" = cualquiera
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimitBytes límite del cuerpo de la petición en bytes.
func (c HTTPConfig) BodyLimitBytes() int {
	return c.BodyLimitMB * 1024 * 1024
}

// RendererConfig motor de PDF y opciones del navegador.
type RendererConfig struct {
	Engine     string // chrome | maroto
	ChromePath string
	NoSandbox  bool
	PoolSize   int
	Timeout    time.Duration
	FontPath   string // TTF opcional para el motor maroto (símbolos fuera de Latin-1)
}

// DocumentConfig presentación del documento: idioma, moneda y etiquetas fiscales.
type DocumentConfig struct {
	Locale       string // BCP-47, ej. en-IN
	Currency     string // ISO 4217; vacío = derivada de la región
	TaxLabel     string
	TaxIDLabel   string
	FontURL      string
	DefaultTerms string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, RENDERER_ENGINE, LOCALE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.AllowEmptyEnv(true) // CURRENCY="" significa "derivar de la región"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// PORT se respeta si HTTP_PORT no está definido (plataformas tipo Heroku/Render)
	port := getInt(v, "PORT", 3001)
	port = getInt(v, "HTTP_PORT", port)

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "quotation-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         port,
			BodyLimitMB:  getInt(v, "HTTP_BODY_LIMIT_MB", 50),
			ReadTimeout:  time.Duration(getInt(v, "HTTP_READ_TIMEOUT_SECONDS", 30)) * time.Second,
			WriteTimeout: time.Duration(getInt(v, "HTTP_WRITE_TIMEOUT_SECONDS", 60)) * time.Second,
			AllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Renderer: RendererConfig{
			Engine:     strings.ToLower(getString(v, "RENDERER_ENGINE", "chrome")),
			ChromePath: getString(v, "CHROME_PATH", "/usr/bin/chromium"),
			NoSandbox:  getBool(v, "CHROME_NO_SANDBOX", true),
			PoolSize:   getInt(v, "RENDERER_POOL_SIZE", 2),
			Timeout:    time.Duration(getInt(v, "RENDERER_TIMEOUT_SECONDS", 30)) * time.Second,
			FontPath:   getString(v, "RENDERER_FONT_PATH", ""),
		},
		Document: DocumentConfig{
			Locale:       getString(v, "LOCALE", "en-IN"),
			Currency:     getOptional(v, "CURRENCY", "INR"),
			TaxLabel:     getString(v, "DOC_TAX_LABEL", "GST"),
			TaxIDLabel:   getString(v, "DOC_TAX_ID_LABEL", "GSTIN"),
			FontURL:      getString(v, "DOC_FONT_URL", ""),
			DefaultTerms: getString(v, "DOC_DEFAULT_TERMS", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Renderer.Engine {
	case "chrome", "maroto":
	default:
		return fmt.Errorf("config: RENDERER_ENGINE %q no soportado (chrome|maroto)", c.Renderer.Engine)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: puerto HTTP inválido: %d", c.HTTP.Port)
	}
	if c.HTTP.BodyLimitMB <= 0 {
		return fmt.Errorf("config: HTTP_BODY_LIMIT_MB debe ser positivo")
	}
	if c.Renderer.PoolSize <= 0 {
		return fmt.Errorf("config: RENDERER_POOL_SIZE debe ser positivo")
	}
	return nil
}

// getString devuelve def si la clave no existe o viene vacía.
func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			return s
		}
	}
	return def
}

// getOptional como getString pero respeta el valor vacío explícito.
func getOptional(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return strings.TrimSpace(v.GetString(key))
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
