package repository

import (
	"context"
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// SessionRepository define el puerto del contenedor de estado de las sesiones.
// Update es el único camino de escritura: aplica fn sobre la sesión de forma atómica
// (un solo escritor por sesión); si fn retorna error no se guarda ningún cambio.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, id string, fn func(s *entity.Session) error) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteIdle elimina las sesiones sin actividad desde before y devuelve cuántas borró.
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}
