package invoice

import (
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// Edit aplica una acción al borrador de una sesión en edición.
func Edit(s *entity.Session, a Action, now time.Time) error {
	if s.IsFinalized() {
		return domain.ErrSessionFinalized
	}
	next, err := Reduce(s.Draft, a)
	if err != nil {
		return err
	}
	s.Draft = next
	s.UpdatedAt = now
	return nil
}

// Submit ejecuta la transición EDITING → FINALIZED si errs está vacío.
// errs es el resultado de Validate (más ValidateNumbers en modo estricto).
// No existe la transición inversa.
func Submit(s *entity.Session, errs ErrorMap, now time.Time) error {
	if s.IsFinalized() {
		return domain.ErrSessionFinalized
	}
	if !errs.Valid() {
		return nil
	}
	s.State = entity.SessionFinalized
	s.UpdatedAt = now
	s.FinalizedAt = &now
	return nil
}

// BeginExport marca la sesión con una exportación en curso identificada por token.
// Una segunda exportación mientras la primera no termina se rechaza.
func BeginExport(s *entity.Session, token string) error {
	if !s.IsFinalized() {
		return domain.ErrSessionNotFinalized
	}
	if s.ExportToken != "" {
		return domain.ErrExportInProgress
	}
	s.ExportToken = token
	return nil
}

// EndExport libera la marca solo si pertenece a token.
func EndExport(s *entity.Session, token string) {
	if s.ExportToken == token {
		s.ExportToken = ""
	}
}
