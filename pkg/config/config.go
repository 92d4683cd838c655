package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Export    ExportConfig
	Invoice   InvoiceConfig
	Session   SessionConfig
	Signature SignatureConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	SwaggerFile string // ruta al swagger.json servido en /docs (vacío = deshabilitado)
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// Modos de exportación del PDF.
const (
	ExportModeRaster = "raster" // factura rasterizada a PNG e incrustada en una página de ancho fijo
	ExportModeVector = "vector" // documento A4 generado con Maroto
)

// ExportConfig configuración de la exportación del documento.
type ExportConfig struct {
	Mode          string
	PageWidthMM   float64 // ancho fijo de la página; el alto es proporcional al raster
	FileName      string
	RasterWidthPx int
	MaxConcurrent int
	Timeout       time.Duration
	LogoPath      string // opcional: logo de la empresa en el encabezado
	FontPath      string // opcional: fuente TTF/OTF del raster; sin ella solo se dibuja ASCII
}

// InvoiceConfig reglas del formulario.
type InvoiceConfig struct {
	DefaultTaxRate float64
	StrictNumbers  bool // rechaza precios/cantidades/descuentos no numéricos al enviar
}

// SessionConfig ciclo de vida de las sesiones en memoria.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// SignatureConfig límites de la carga de la imagen de firma.
type SignatureConfig struct {
	MaxBytes int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, EXPORT_MODE, etc.
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
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "invoice-generator"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Export: ExportConfig{
			Mode:          strings.ToLower(getString(v, "EXPORT_MODE", ExportModeRaster)),
			PageWidthMM:   getFloat(v, "EXPORT_PAGE_WIDTH_MM", 210),
			FileName:      getString(v, "EXPORT_FILENAME", "invoice.pdf"),
			RasterWidthPx: getInt(v, "EXPORT_RASTER_WIDTH_PX", 794),
			MaxConcurrent: getInt(v, "EXPORT_MAX_CONCURRENT", 4),
			Timeout:       time.Duration(getInt(v, "EXPORT_TIMEOUT_SECONDS", 30)) * time.Second,
			LogoPath:      getString(v, "EXPORT_LOGO_PATH", ""),
			FontPath:      getString(v, "EXPORT_FONT_PATH", ""),
		},
		Invoice: InvoiceConfig{
			DefaultTaxRate: getFloat(v, "INVOICE_DEFAULT_TAX_RATE", 18),
			StrictNumbers:  getBool(v, "INVOICE_STRICT_NUMBERS", false),
		},
		Session: SessionConfig{
			TTL:           time.Duration(getInt(v, "SESSION_TTL_MINUTES", 60)) * time.Minute,
			SweepInterval: time.Duration(getInt(v, "SESSION_SWEEP_SECONDS", 60)) * time.Second,
		},
		Signature: SignatureConfig{
			MaxBytes: getInt(v, "SIGNATURE_MAX_BYTES", 5*1024*1024),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Export.Mode != ExportModeRaster && c.Export.Mode != ExportModeVector {
		return fmt.Errorf("config: EXPORT_MODE inválido %q (raster|vector)", c.Export.Mode)
	}
	if c.Export.PageWidthMM <= 0 {
		return fmt.Errorf("config: EXPORT_PAGE_WIDTH_MM debe ser positivo")
	}
	if c.Export.RasterWidthPx < 200 {
		return fmt.Errorf("config: EXPORT_RASTER_WIDTH_PX debe ser al menos 200")
	}
	if c.Export.MaxConcurrent < 1 {
		c.Export.MaxConcurrent = 1
	}
	if r := c.Invoice.DefaultTaxRate; !(r >= 0) || math.IsInf(r, 1) {
		return fmt.Errorf("config: INVOICE_DEFAULT_TAX_RATE debe ser un número no negativo")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL_MINUTES debe ser positivo")
	}
	if c.Session.SweepInterval <= 0 {
		c.Session.SweepInterval = time.Minute
	}
	if c.Signature.MaxBytes <= 0 {
		return fmt.Errorf("config: SIGNATURE_MAX_BYTES debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
