/**
 * @description
 * PostgreSQL implementation of the beneficiary `Repository` interface.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - github.com/jackc/pgx/v5/pgconn: For inspecting constraint violations.
 */
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d-sar/poc/internal/beneficiaire/domain"
)

// uniqueViolation is the SQLSTATE code raised by the unique index on rib.
const uniqueViolation = "23505"

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateBeneficiaire inserts a new beneficiary and returns it with its assigned id.
func (r *PostgresRepository) CreateBeneficiaire(ctx context.Context, b *domain.Beneficiaire) (*domain.Beneficiaire, error) {
	query := `
        INSERT INTO beneficiaires (nom, prenom, rib, type)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, b.Nom, b.Prenom, b.Rib, b.Type).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrRibConflict
		}
		return nil, fmt.Errorf("failed to create beneficiaire: %w", err)
	}
	return b, nil
}

// FindBeneficiaireByID retrieves a beneficiary by its id.
func (r *PostgresRepository) FindBeneficiaireByID(ctx context.Context, id int64) (*domain.Beneficiaire, error) {
	var b domain.Beneficiaire
	query := `SELECT id, nom, prenom, rib, type FROM beneficiaires WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Nom, &b.Prenom, &b.Rib, &b.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBeneficiaireNotFound
		}
		return nil, fmt.Errorf("failed to query beneficiaire: %w", err)
	}
	return &b, nil
}

// ListBeneficiaires returns all beneficiaries.
func (r *PostgresRepository) ListBeneficiaires(ctx context.Context) ([]domain.Beneficiaire, error) {
	query := `SELECT id, nom, prenom, rib, type FROM beneficiaires ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaires: %w", err)
	}
	defer rows.Close()

	beneficiaires := []domain.Beneficiaire{}
	for rows.Next() {
		var b domain.Beneficiaire
		if err := rows.Scan(&b.ID, &b.Nom, &b.Prenom, &b.Rib, &b.Type); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiaire row: %w", err)
		}
		beneficiaires = append(beneficiaires, b)
	}
	return beneficiaires, rows.Err()
}

// UpdateBeneficiaire performs a full replace of the mutable fields.
func (r *PostgresRepository) UpdateBeneficiaire(ctx context.Context, id int64, b *domain.Beneficiaire) (*domain.Beneficiaire, error) {
	var updated domain.Beneficiaire
	query := `
        UPDATE beneficiaires
        SET nom = $2, prenom = $3, rib = $4, type = $5
        WHERE id = $1
        RETURNING id, nom, prenom, rib, type
    `
	err := r.db.QueryRow(ctx, query, id, b.Nom, b.Prenom, b.Rib, b.Type).
		Scan(&updated.ID, &updated.Nom, &updated.Prenom, &updated.Rib, &updated.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBeneficiaireNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrRibConflict
		}
		return nil, fmt.Errorf("failed to update beneficiaire: %w", err)
	}
	return &updated, nil
}

// DeleteBeneficiaire removes a beneficiary. The delete is immediate and
// unconditional; existing virements keep their beneficiaire_id reference.
func (r *PostgresRepository) DeleteBeneficiaire(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM beneficiaires WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete beneficiaire: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBeneficiaireNotFound
	}
	return nil
}

// ExistsByID reports whether a beneficiary with the given id exists.
func (r *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM beneficiaires WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check beneficiaire existence: %w", err)
	}
	return exists, nil
}

// FindBeneficiaireByRib retrieves a beneficiary by its unique RIB.
func (r *PostgresRepository) FindBeneficiaireByRib(ctx context.Context, rib string) (*domain.Beneficiaire, error) {
	var b domain.Beneficiaire
	query := `SELECT id, nom, prenom, rib, type FROM beneficiaires WHERE rib = $1`
	err := r.db.QueryRow(ctx, query, rib).Scan(&b.ID, &b.Nom, &b.Prenom, &b.Rib, &b.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBeneficiaireNotFound
		}
		return nil, fmt.Errorf("failed to query beneficiaire by rib: %w", err)
	}
	return &b, nil
}

// ExistsByRib reports whether a beneficiary with the given RIB exists.
func (r *PostgresRepository) ExistsByRib(ctx context.Context, rib string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM beneficiaires WHERE rib = $1)`, rib).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check rib existence: %w", err)
	}
	return exists, nil
}
