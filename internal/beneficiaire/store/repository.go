/**
 * @description
 * This file defines the `Repository` interface for beneficiary data access.
 * Keeping the contract separate from the PostgreSQL implementation lets the
 * handler tests run against in-memory stubs.
 */
package store

import (
	"context"

	"github.com/d-sar/poc/internal/beneficiaire/domain"
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	CreateBeneficiaire(ctx context.Context, b *domain.Beneficiaire) (*domain.Beneficiaire, error)
	FindBeneficiaireByID(ctx context.Context, id int64) (*domain.Beneficiaire, error)
	ListBeneficiaires(ctx context.Context) ([]domain.Beneficiaire, error)
	// UpdateBeneficiaire replaces the mutable fields (nom, prenom, rib, type).
	UpdateBeneficiaire(ctx context.Context, id int64, b *domain.Beneficiaire) (*domain.Beneficiaire, error)
	DeleteBeneficiaire(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindBeneficiaireByRib(ctx context.Context, rib string) (*domain.Beneficiaire, error)
	ExistsByRib(ctx context.Context, rib string) (bool, error)
}
