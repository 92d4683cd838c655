package dto

import (
	"math"
	"strconv"
)

// ErrorResponse cuerpo de error HTTP. Errors solo se incluye en fallas de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Amount monto sin redondeo. Se serializa como número JSON; NaN e infinitos,
// que JSON no admite, se serializan como texto ("NaN", "Infinity", "-Infinity").
type Amount float64

// MarshalJSON implementa json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	f := float64(a)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// UnmarshalJSON acepta tanto números como los textos producidos por MarshalJSON.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	switch s {
	case `"NaN"`:
		*a = Amount(math.NaN())
		return nil
	case `"Infinity"`:
		*a = Amount(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*a = Amount(math.Inf(-1))
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}
