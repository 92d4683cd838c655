// Package memory implementa los puertos de persistencia en memoria del proceso.
// Los borradores viven solo mientras dura la sesión; no hay almacenamiento durable.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// SessionRepository implementa repository.SessionRepository con un mapa protegido por mutex.
// Las lecturas devuelven copias para que nadie fuera del repositorio modifique el estado.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewSessionRepository construye el repositorio vacío.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*entity.Session)}
}

// Create guarda una sesión nueva. Devuelve domain.ErrConflict si el ID ya existe.
func (r *SessionRepository) Create(_ context.Context, session *entity.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return fmt.Errorf("%w: sesión %s ya existe", domain.ErrConflict, session.ID)
	}
	r.sessions[session.ID] = snapshot(session)
	return nil
}

// GetByID devuelve una copia de la sesión o domain.ErrNotFound.
func (r *SessionRepository) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snapshot(s), nil
}

// Update aplica fn sobre una copia y la publica solo si fn no falla.
func (r *SessionRepository) Update(_ context.Context, id string, fn func(s *entity.Session) error) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := snapshot(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	r.sessions[id] = next
	return snapshot(next), nil
}

// Delete descarta la sesión.
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteIdle elimina las sesiones cuyo UpdatedAt es anterior a before.
// Las sesiones con una exportación en curso se conservan.
func (r *SessionRepository) DeleteIdle(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(before) && s.ExportToken == "" {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func snapshot(s *entity.Session) *entity.Session {
	cp := *s
	cp.Draft = s.Draft.Clone()
	if s.FinalizedAt != nil {
		t := *s.FinalizedAt
		cp.FinalizedAt = &t
	}
	return &cp
}
