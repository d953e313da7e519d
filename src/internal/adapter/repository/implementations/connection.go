package implementations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
)

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(15 * time.Minute)

	return db, nil
}

// OpenWithRetry keeps dialing with exponential backoff until the database answers,
// maxAttempts is spent or ctx ends.
func OpenWithRetry(ctx context.Context, dsn string, maxAttempts uint64, initialInterval time.Duration) (*sql.DB, error) {
	policy := backoff.NewExponentialBackOff()
	if initialInterval > 0 {
		policy.InitialInterval = initialInterval
	}

	var (
		db      *sql.DB
		attempt int
	)
	operation := func() error {
		attempt++
		opened, err := Open(ctx, dsn)
		if err != nil {
			logger.Warn("postgres not ready", logger.Fields{
				"attempt": attempt,
				"error":   err.Error(),
			})
			return err
		}
		db = opened
		return nil
	}

	var retry backoff.BackOff = policy
	if maxAttempts > 0 {
		retry = backoff.WithMaxRetries(policy, maxAttempts-1)
	}
	if err := backoff.Retry(operation, backoff.WithContext(retry, ctx)); err != nil {
		return nil, err
	}

	return db, nil
}
