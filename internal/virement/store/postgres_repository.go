/**
 * @description
 * PostgreSQL implementation of the virement `Repository` interface.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - github.com/shopspring/decimal: montant is scanned from NUMERIC without
 *   precision loss (decimal.Decimal implements sql.Scanner/driver.Valuer,
 *   which pgx falls back to).
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/d-sar/poc/internal/virement/domain"
)

const virementColumns = `id, beneficiaire_id, rib_source, montant, description, date_virement, type, statut`

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateVirement inserts the transfer. date_virement is assigned by the
// database at insert time (UTC) and returned to the caller.
func (r *PostgresRepository) CreateVirement(ctx context.Context, v *domain.Virement) error {
	query := `
        INSERT INTO virements (beneficiaire_id, rib_source, montant, description, date_virement, type, statut)
        VALUES ($1, $2, $3, $4, now(), $5, $6)
        RETURNING id, date_virement
    `
	err := r.db.QueryRow(ctx, query,
		v.BeneficiaireID,
		v.RibSource,
		v.Montant,
		nullableText(v.Description),
		v.Type,
		v.Statut,
	).Scan(&v.ID, &v.DateVirement)
	if err != nil {
		return fmt.Errorf("failed to create virement: %w", err)
	}
	return nil
}

// FindVirementByID retrieves one transfer by id.
func (r *PostgresRepository) FindVirementByID(ctx context.Context, id int64) (*domain.Virement, error) {
	row := r.db.QueryRow(ctx, `SELECT `+virementColumns+` FROM virements WHERE id = $1`, id)
	v, err := scanVirement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVirementNotFound
		}
		return nil, fmt.Errorf("failed to query virement: %w", err)
	}
	return v, nil
}

// ListVirements returns all transfers.
func (r *PostgresRepository) ListVirements(ctx context.Context) ([]domain.Virement, error) {
	return r.list(ctx, `SELECT `+virementColumns+` FROM virements ORDER BY id`)
}

// ListByBeneficiaire returns the transfers referencing one beneficiary.
func (r *PostgresRepository) ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]domain.Virement, error) {
	return r.list(ctx, `SELECT `+virementColumns+` FROM virements WHERE beneficiaire_id = $1 ORDER BY id`, beneficiaireID)
}

// ListByRibSource returns the transfers issued from one source RIB.
func (r *PostgresRepository) ListByRibSource(ctx context.Context, ribSource string) ([]domain.Virement, error) {
	return r.list(ctx, `SELECT `+virementColumns+` FROM virements WHERE rib_source = $1 ORDER BY id`, ribSource)
}

// ListByStatut returns the transfers currently in one status.
func (r *PostgresRepository) ListByStatut(ctx context.Context, statut domain.StatutVirement) ([]domain.Virement, error) {
	return r.list(ctx, `SELECT `+virementColumns+` FROM virements WHERE statut = $1 ORDER BY id`, statut)
}

// ListByType returns the transfers of one type.
func (r *PostgresRepository) ListByType(ctx context.Context, t domain.TypeVirement) ([]domain.Virement, error) {
	return r.list(ctx, `SELECT `+virementColumns+` FROM virements WHERE type = $1 ORDER BY id`, t)
}

// UpdateStatut overwrites the status of one transfer. Transition legality is
// the service layer's responsibility; this is a plain single-row write.
func (r *PostgresRepository) UpdateStatut(ctx context.Context, id int64, statut domain.StatutVirement) error {
	tag, err := r.db.Exec(ctx, `UPDATE virements SET statut = $2 WHERE id = $1`, id, statut)
	if err != nil {
		return fmt.Errorf("failed to update virement statut: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVirementNotFound
	}
	return nil
}

// TotalForPeriod sums montant over the period for one source RIB. COALESCE
// turns an empty matching set into a plain zero.
func (r *PostgresRepository) TotalForPeriod(ctx context.Context, ribSource string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
        SELECT COALESCE(SUM(montant), 0)
        FROM virements
        WHERE rib_source = $1 AND date_virement BETWEEN $2 AND $3
    `
	if err := r.db.QueryRow(ctx, query, ribSource, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to total virements: %w", err)
	}
	return total, nil
}

// CountForPeriod counts the transfers over the period for one source RIB.
func (r *PostgresRepository) CountForPeriod(ctx context.Context, ribSource string, start, end time.Time) (int64, error) {
	var count int64
	query := `
        SELECT COUNT(*)
        FROM virements
        WHERE rib_source = $1 AND date_virement BETWEEN $2 AND $3
    `
	if err := r.db.QueryRow(ctx, query, ribSource, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count virements: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]domain.Virement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query virements: %w", err)
	}
	defer rows.Close()

	virements := []domain.Virement{}
	for rows.Next() {
		v, err := scanVirement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan virement row: %w", err)
		}
		virements = append(virements, *v)
	}
	return virements, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVirement(row rowScanner) (*domain.Virement, error) {
	var v domain.Virement
	var description *string
	err := row.Scan(
		&v.ID,
		&v.BeneficiaireID,
		&v.RibSource,
		&v.Montant,
		&description,
		&v.DateVirement,
		&v.Type,
		&v.Statut,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		v.Description = *description
	}
	return &v, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
