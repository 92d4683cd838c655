package entity

import "time"

// SessionState estado de la sesión de edición.
type SessionState string

// Estados de la sesión. La única transición es EDITING → FINALIZED.
const (
	SessionEditing   SessionState = "EDITING"
	SessionFinalized SessionState = "FINALIZED"
)

// Session agrupa el borrador de un usuario y su estado.
type Session struct {
	ID          string
	State       SessionState
	Draft       InvoiceDraft
	ExportToken string // no vacío mientras hay una exportación en curso
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time
}

// IsFinalized indica si el borrador ya quedó congelado.
func (s *Session) IsFinalized() bool {
	return s.State == SessionFinalized
}
