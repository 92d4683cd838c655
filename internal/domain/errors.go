package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrSessionFinalized    = errors.New("la sesión ya fue finalizada")
	ErrSessionNotFinalized = errors.New("la sesión aún no fue finalizada")
	ErrExportInProgress    = errors.New("ya hay una exportación en curso")
	ErrUnknownField        = errors.New("campo desconocido")
	ErrReadOnlyField       = errors.New("campo de solo lectura")
	ErrItemOutOfRange      = errors.New("índice de ítem fuera de rango")
	ErrInvalidImage        = errors.New("imagen inválida")
)
