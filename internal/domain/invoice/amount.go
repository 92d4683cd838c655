package invoice

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount interpreta un monto capturado como texto con coerción numérica laxa:
// se ignoran espacios, "" vale 0 y cualquier texto que no sea un literal decimal es NaN.
// Un literal decimal fuera de rango se satura a ±Inf.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// isDecimalLiteral acepta solo literales decimales simples (signo, dígitos, punto y
// exponente). Excluye inf, NaN, hexadecimales y separadores "_" que ParseFloat admite.
func isDecimalLiteral(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}

// FormatAmount representación textual de un monto sin redondeo de moneda.
// NaN e infinitos se muestran tal cual ("NaN", "Infinity", "-Infinity").
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatRate tarifa de impuesto con sufijo de porcentaje, p. ej. "18%".
func FormatRate(rate float64) string {
	return FormatAmount(rate) + "%"
}
