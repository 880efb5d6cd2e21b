package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open connects to PostgreSQL, retrying the initial ping with exponential
// backoff until maxWait elapses.
func Open(ctx context.Context, dsn string, maxWait time.Duration) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait
	ping := func() error {
		err := pool.Ping(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("db ping failed, retrying")
		}
		return err
	}
	if err := backoff.Retry(ping, backoff.WithContext(bo, ctx)); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func MustOpen(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := Open(ctx, dsn, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	if err := Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("db migrate fail")
	}
	return pool
}
