/**
 * @description
 * This file defines the `Repository` interface for virement data access.
 * The service layer and its tests depend on this contract, not on the
 * PostgreSQL implementation.
 */
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d-sar/poc/internal/virement/domain"
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// CreateVirement inserts the transfer and fills in its assigned id and
	// server-side dateVirement.
	CreateVirement(ctx context.Context, v *domain.Virement) error
	FindVirementByID(ctx context.Context, id int64) (*domain.Virement, error)
	ListVirements(ctx context.Context) ([]domain.Virement, error)
	ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]domain.Virement, error)
	ListByRibSource(ctx context.Context, ribSource string) ([]domain.Virement, error)
	ListByStatut(ctx context.Context, statut domain.StatutVirement) ([]domain.Virement, error)
	ListByType(ctx context.Context, t domain.TypeVirement) ([]domain.Virement, error)
	UpdateStatut(ctx context.Context, id int64, statut domain.StatutVirement) error
	// TotalForPeriod sums montant over [start, end] for one source RIB.
	// An empty matching set yields decimal zero, never an error.
	TotalForPeriod(ctx context.Context, ribSource string, start, end time.Time) (decimal.Decimal, error)
	CountForPeriod(ctx context.Context, ribSource string, start, end time.Time) (int64, error)
}
