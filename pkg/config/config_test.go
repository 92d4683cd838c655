package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.ExportModeRaster, cfg.Export.Mode)
	assert.Equal(t, 210.0, cfg.Export.PageWidthMM)
	assert.Equal(t, "invoice.pdf", cfg.Export.FileName)
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
	assert.Equal(t, 18.0, cfg.Invoice.DefaultTaxRate)
	assert.False(t, cfg.Invoice.StrictNumbers)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*1024*1024, cfg.Signature.MaxBytes)
}

func TestFromViper_ValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("EXPORT_MODE", "VECTOR")
	v.Set("EXPORT_PAGE_WIDTH_MM", "216")
	v.Set("INVOICE_STRICT_NUMBERS", "true")
	v.Set("SESSION_TTL_MINUTES", "5")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.ExportModeVector, cfg.Export.Mode)
	assert.Equal(t, 216.0, cfg.Export.PageWidthMM)
	assert.True(t, cfg.Invoice.StrictNumbers)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
}

func TestFromViper_ModoInvalido(t *testing.T) {
	v := viper.New()
	v.Set("EXPORT_MODE", "html")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_TarifaCeroEsValida(t *testing.T) {
	v := viper.New()
	v.Set("INVOICE_DEFAULT_TAX_RATE", "0")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Invoice.DefaultTaxRate)
}

func TestFromViper_TarifaInvalida(t *testing.T) {
	for _, rate := range []string{"-5", "NaN", "Inf"} {
		v := viper.New()
		v.Set("INVOICE_DEFAULT_TAX_RATE", rate)
		_, err := config.FromViper(v)
		assert.Error(t, err, rate)
	}
}
