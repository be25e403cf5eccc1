/**
 * @description
 * Core business logic of the virement-service: creation with synchronous
 * beneficiary validation, the status lifecycle, guarded cancellation,
 * best-effort detail enrichment, and period aggregates.
 *
 * Failure semantics:
 * - The beneficiary existence check keeps "absent" (invalid argument) apart
 *   from "unreachable" (dependency unavailable); callers map them to 400 and
 *   503 respectively.
 * - The existence check and the insert are separate calls with no
 *   cross-service transaction. A beneficiary deleted in between leaves a
 *   dangling reference; the enrichment path treats that as a normal miss.
 * - Enrichment failures on reads are logged and swallowed; the response is
 *   degraded, never failed.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/d-sar/poc/internal/virement/domain"
	"github.com/d-sar/poc/internal/virement/store"
	"github.com/d-sar/poc/pkg/beneficiaireclient"
)

// BeneficiairePort is the narrow capability the virement-service needs from
// the beneficiaire-service. Exists answers found / not-found; a transport
// failure comes back as an error wrapping
// beneficiaireclient.ErrServiceUnavailable.
type BeneficiairePort interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*beneficiaireclient.Beneficiaire, error)
	GetByRib(ctx context.Context, rib string) (*beneficiaireclient.Beneficiaire, error)
}

// Publisher is the subset of the event producer the service depends on.
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// Service exposes the virement operations consumed by the API layer.
type Service interface {
	Create(ctx context.Context, req domain.VirementRequest) (*domain.VirementResponse, error)
	GetWithDetails(ctx context.Context, id int64) (*domain.VirementResponse, error)
	List(ctx context.Context) ([]domain.VirementResponse, error)
	ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]domain.VirementResponse, error)
	ListByRibSource(ctx context.Context, ribSource string) ([]domain.VirementResponse, error)
	ListByStatut(ctx context.Context, statut domain.StatutVirement) ([]domain.VirementResponse, error)
	ListByType(ctx context.Context, t domain.TypeVirement) ([]domain.VirementResponse, error)
	UpdateStatut(ctx context.Context, id int64, statut domain.StatutVirement) (*domain.VirementResponse, error)
	Annuler(ctx context.Context, id int64) error
	TotalForPeriod(ctx context.Context, ribSource string, start, end time.Time) (decimal.Decimal, error)
	CountForPeriod(ctx context.Context, ribSource string, start, end time.Time) (int64, error)
}

type service struct {
	repo          store.Repository
	beneficiaires BeneficiairePort
	events        Publisher
	exchange      string
	logger        *slog.Logger
}

// NewService wires the repository, the beneficiary port and the event
// producer into a Service.
func NewService(repo store.Repository, beneficiaires BeneficiairePort, events Publisher, exchange string, logger *slog.Logger) Service {
	return &service{
		repo:          repo,
		beneficiaires: beneficiaires,
		events:        events,
		exchange:      exchange,
		logger:        logger,
	}
}

// Create validates the request against the beneficiary port and the business
// rules, persists the transfer with statut VALIDE, and returns the enriched
// response. Nothing is persisted when any validation fails.
func (s *service) Create(ctx context.Context, req domain.VirementRequest) (*domain.VirementResponse, error) {
	exists, err := s.beneficiaires.Exists(ctx, req.BeneficiaireID)
	if err != nil {
		return nil, fmt.Errorf("checking beneficiaire %d: %w", req.BeneficiaireID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: beneficiaire %d", domain.ErrBeneficiaireInconnu, req.BeneficiaireID)
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	v := &domain.Virement{
		BeneficiaireID: req.BeneficiaireID,
		RibSource:      req.RibSource,
		Montant:        req.Montant,
		Description:    req.Description,
		Type:           req.Type,
		Statut:         domain.StatutValide,
	}
	if err := s.repo.CreateVirement(ctx, v); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.RoutingKeyCreated, v)

	return s.enrich(ctx, v), nil
}

// validate applies the business rules in order: amount, type ceiling, source
// RIB. The first failing rule is reported.
func validate(req domain.VirementRequest) error {
	if !req.Montant.IsPositive() {
		return domain.ErrMontantInvalide
	}
	if !req.Type.Valid() {
		return domain.ErrTypeInvalide
	}
	if req.Type == domain.TypeInstantane && req.Montant.GreaterThan(domain.PlafondInstantane) {
		return domain.ErrPlafondDepasse
	}
	if len(req.RibSource) < domain.RibSourceMinLength {
		return domain.ErrRibSourceInvalide
	}
	return nil
}

// GetWithDetails fetches one transfer and enriches it with the beneficiary
// details when the lookup succeeds.
func (s *service) GetWithDetails(ctx context.Context, id int64) (*domain.VirementResponse, error) {
	v, err := s.repo.FindVirementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, v), nil
}

func (s *service) List(ctx context.Context) ([]domain.VirementResponse, error) {
	return s.mapList(s.repo.ListVirements(ctx))
}

func (s *service) ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]domain.VirementResponse, error) {
	return s.mapList(s.repo.ListByBeneficiaire(ctx, beneficiaireID))
}

func (s *service) ListByRibSource(ctx context.Context, ribSource string) ([]domain.VirementResponse, error) {
	return s.mapList(s.repo.ListByRibSource(ctx, ribSource))
}

func (s *service) ListByStatut(ctx context.Context, statut domain.StatutVirement) ([]domain.VirementResponse, error) {
	if !statut.Valid() {
		return nil, domain.ErrStatutInvalide
	}
	return s.mapList(s.repo.ListByStatut(ctx, statut))
}

func (s *service) ListByType(ctx context.Context, t domain.TypeVirement) ([]domain.VirementResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrTypeInvalide
	}
	return s.mapList(s.repo.ListByType(ctx, t))
}

// UpdateStatut moves a transfer to a new status. Every change goes through
// the domain transition table; illegal transitions are rejected uniformly.
func (s *service) UpdateStatut(ctx context.Context, id int64, statut domain.StatutVirement) (*domain.VirementResponse, error) {
	if !statut.Valid() {
		return nil, domain.ErrStatutInvalide
	}
	v, err := s.repo.FindVirementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Statut.CanTransitionTo(statut) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrTransitionInterdite, v.Statut, statut)
	}
	if err := s.repo.UpdateStatut(ctx, id, statut); err != nil {
		return nil, err
	}
	v.Statut = statut

	s.publish(ctx, domain.RoutingKeyStatutChange, v)

	return v.ToResponse(), nil
}

// Annuler cancels a transfer. Only INITIE and VALIDE are cancellable; any
// other status leaves the record unchanged and reports the illegal state.
func (s *service) Annuler(ctx context.Context, id int64) error {
	v, err := s.repo.FindVirementByID(ctx, id)
	if err != nil {
		return err
	}
	if !v.Statut.Cancellable() {
		return fmt.Errorf("%w: cannot cancel a virement in statut %s", domain.ErrTransitionInterdite, v.Statut)
	}
	if err := s.repo.UpdateStatut(ctx, id, domain.StatutAnnule); err != nil {
		return err
	}
	v.Statut = domain.StatutAnnule

	s.publish(ctx, domain.RoutingKeyAnnule, v)

	return nil
}

func (s *service) TotalForPeriod(ctx context.Context, ribSource string, start, end time.Time) (decimal.Decimal, error) {
	return s.repo.TotalForPeriod(ctx, ribSource, start, end)
}

func (s *service) CountForPeriod(ctx context.Context, ribSource string, start, end time.Time) (int64, error) {
	return s.repo.CountForPeriod(ctx, ribSource, start, end)
}

// enrich copies the transfer into a response and fills in the beneficiary
// fields on a best-effort basis. Any lookup failure, including a beneficiary
// deleted since creation, degrades the payload instead of failing the read.
func (s *service) enrich(ctx context.Context, v *domain.Virement) *domain.VirementResponse {
	resp := v.ToResponse()

	b, err := s.beneficiaires.GetByID(ctx, v.BeneficiaireID)
	if err != nil {
		s.logger.Warn("beneficiaire enrichment failed",
			"virement_id", v.ID,
			"beneficiaire_id", v.BeneficiaireID,
			"error", err,
		)
		return resp
	}

	resp.BeneficiaireNom = b.Nom
	resp.BeneficiairePrenom = b.Prenom
	resp.BeneficiaireRib = b.Rib
	return resp
}

func (s *service) mapList(virements []domain.Virement, err error) ([]domain.VirementResponse, error) {
	if err != nil {
		return nil, err
	}
	responses := make([]domain.VirementResponse, 0, len(virements))
	for i := range virements {
		responses = append(responses, *virements[i].ToResponse())
	}
	return responses, nil
}

// publish emits a lifecycle event, best effort. A publish failure is logged
// and never propagated to the caller.
func (s *service) publish(ctx context.Context, routingKey string, v *domain.Virement) {
	if s.events == nil {
		return
	}
	event := domain.VirementEvent{
		EventID:        uuid.NewString(),
		VirementID:     v.ID,
		BeneficiaireID: v.BeneficiaireID,
		RibSource:      v.RibSource,
		Montant:        v.Montant,
		Type:           v.Type,
		Statut:         v.Statut,
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, s.exchange, routingKey, event); err != nil {
		s.logger.Warn("failed to publish virement event",
			"routing_key", routingKey,
			"virement_id", v.ID,
			"error", err,
		)
	}
}

// IsDependencyUnavailable reports whether err comes from a failed call to
// the beneficiaire service, as opposed to the beneficiary being absent.
func IsDependencyUnavailable(err error) bool {
	return errors.Is(err, beneficiaireclient.ErrServiceUnavailable)
}
