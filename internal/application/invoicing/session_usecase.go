package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
	"github.com/jhoicas/invoice-generator/pkg/logger"
)

// FormConfig reglas del formulario para el caso de uso.
type FormConfig struct {
	DefaultTaxRate float64
	StrictNumbers  bool
}

// SessionUseCase gestiona el ciclo de vida del borrador: edición, validación y finalización.
// Toda escritura pasa por el reductor del dominio dentro de repository.Update.
type SessionUseCase struct {
	repo repository.SessionRepository
	cfg  FormConfig
	log  *logger.Logger
	now  func() time.Time
}

// NewSessionUseCase construye el caso de uso. cfg.DefaultTaxRate se usa tal cual
// (0 es una tarifa válida); el valor por defecto lo resuelve pkg/config.
func NewSessionUseCase(repo repository.SessionRepository, cfg FormConfig, log *logger.Logger) *SessionUseCase {
	return &SessionUseCase{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// Create abre una sesión con el borrador vacío (un ítem vacío).
func (uc *SessionUseCase) Create(ctx context.Context) (*entity.Session, error) {
	now := uc.now()
	s := &entity.Session{
		ID:        uuid.New().String(),
		State:     entity.SessionEditing,
		Draft:     entity.NewInvoiceDraft(uc.cfg.DefaultTaxRate),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("sesión: crear: %w", err)
	}
	uc.log.ForSession(s.ID).Debug().Msg("sesión creada")
	return s, nil
}

// DraftFromRequest borrador sin sesión con la tarifa configurada en cada ítem.
func (uc *SessionUseCase) DraftFromRequest(in dto.InvoiceDraftRequest, signature *entity.SignatureImage) entity.InvoiceDraft {
	return DraftFromRequest(in, signature, uc.cfg.DefaultTaxRate)
}

// Get obtiene la sesión.
func (uc *SessionUseCase) Get(ctx context.Context, id string) (*entity.Session, error) {
	return uc.repo.GetByID(ctx, id)
}

// Discard descarta la sesión y su borrador.
func (uc *SessionUseCase) Discard(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.ForSession(id).Debug().Msg("sesión descartada")
	return nil
}

// ChangeField aplica un evento de cambio (ruta, valor).
func (uc *SessionUseCase) ChangeField(ctx context.Context, id, path, value string) (*entity.Session, error) {
	return uc.dispatch(ctx, id, invoice.SetField{Path: path, Value: value})
}

// ChangeItemField aplica un evento de cambio sobre el ítem index.
func (uc *SessionUseCase) ChangeItemField(ctx context.Context, id string, index int, field, value string) (*entity.Session, error) {
	return uc.dispatch(ctx, id, invoice.SetItemField{Index: index, Field: field, Value: value})
}

// AddItem agrega un ítem vacío con la tarifa por defecto.
func (uc *SessionUseCase) AddItem(ctx context.Context, id string) (*entity.Session, error) {
	return uc.dispatch(ctx, id, invoice.AddItem{TaxRate: uc.cfg.DefaultTaxRate})
}

// AttachSignature asigna la imagen de firma ya leída y verificada.
func (uc *SessionUseCase) AttachSignature(ctx context.Context, id string, img *entity.SignatureImage) (*entity.Session, error) {
	return uc.dispatch(ctx, id, invoice.SetSignature{Image: img})
}

// RemoveSignature quita la imagen de firma.
func (uc *SessionUseCase) RemoveSignature(ctx context.Context, id string) (*entity.Session, error) {
	return uc.dispatch(ctx, id, invoice.ClearSignature{})
}

func (uc *SessionUseCase) dispatch(ctx context.Context, id string, a invoice.Action) (*entity.Session, error) {
	now := uc.now()
	return uc.repo.Update(ctx, id, func(s *entity.Session) error {
		return invoice.Edit(s, a, now)
	})
}

// Validate valida el borrador actual sin cambiar el estado; puede llamarse las veces que sea.
func (uc *SessionUseCase) Validate(ctx context.Context, id string) (invoice.ErrorMap, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.ValidateDraft(s.Draft), nil
}

// ValidateDraft aplica las reglas del formulario (y la verificación numérica en modo estricto).
func (uc *SessionUseCase) ValidateDraft(d entity.InvoiceDraft) invoice.ErrorMap {
	errs := invoice.Validate(d)
	if uc.cfg.StrictNumbers {
		errs.Merge(invoice.ValidateNumbers(d.Items))
	}
	return errs
}

// Submit valida y, si no hay errores, congela el borrador (EDITING → FINALIZED).
// Con errores devuelve el ErrorMap no vacío y la sesión sigue en edición.
func (uc *SessionUseCase) Submit(ctx context.Context, id string) (*entity.Session, invoice.ErrorMap, error) {
	var errs invoice.ErrorMap
	now := uc.now()
	s, err := uc.repo.Update(ctx, id, func(s *entity.Session) error {
		errs = uc.ValidateDraft(s.Draft)
		return invoice.Submit(s, errs, now)
	})
	if err != nil {
		return nil, nil, err
	}

	log := uc.log.ForSession(id)
	if !errs.Valid() {
		log.Debug().Strs("campos", errs.Keys()).Msg("envío rechazado por validación")
		return s, errs, nil
	}
	log.Info().Int("items", len(s.Draft.Items)).Msg("sesión finalizada")
	return s, errs, nil
}

// View devuelve la factura generada; solo disponible para sesiones finalizadas.
func (uc *SessionUseCase) View(ctx context.Context, id string) (*InvoiceView, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.IsFinalized() {
		return nil, errSessionNotFinalized(s)
	}
	return NewInvoiceView(s), nil
}

// SweepIdle descarta las sesiones sin actividad durante ttl.
func (uc *SessionUseCase) SweepIdle(ctx context.Context, ttl time.Duration) int {
	n, err := uc.repo.DeleteIdle(ctx, uc.now().Add(-ttl))
	if err != nil {
		uc.log.Error().Err(err).Msg("limpieza de sesiones")
		return 0
	}
	if n > 0 {
		uc.log.Info().Int("eliminadas", n).Msg("sesiones inactivas descartadas")
	}
	return n
}

func errSessionNotFinalized(s *entity.Session) error {
	return fmt.Errorf("%w: estado %s", domain.ErrSessionNotFinalized, s.State)
}
