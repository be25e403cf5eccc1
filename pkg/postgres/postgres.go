/**
 * @description
 * Shared helper for establishing the PostgreSQL connection pool used by the
 * beneficiaire-service and the virement-service. The dial is retried with
 * exponential backoff so a service starting before its database does not
 * crash-loop.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5/pgxpool: connection pooling.
 * - github.com/cenkalti/backoff/v4: bounded exponential retry on the dial.
 */
package postgres

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect parses databaseURL, configures the pool, and dials with retry.
// It pings the database before returning so callers get a usable pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	cfg.MaxConns = 20
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	dial := func() error {
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}

	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(dial, backoff.WithContext(boff, ctx)); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}
