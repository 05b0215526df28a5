package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app_errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// queryTimeout bounds every single store call so an unreachable database
// surfaces as ErrStoreUnavailable instead of hanging the request. It is set
// once from config at pool creation.
var queryTimeout = 5 * time.Second

type Storage struct {
	Pool *pgxpool.Pool
}

func NewPostgresPool(username, password, host, port, dbName string, timeout time.Duration) (*Storage, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if timeout > 0 {
		queryTimeout = timeout
	}

	return &Storage{Pool: pool}, nil
}

func (p *Storage) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

func UnwrapPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// storeErr maps timeouts and connection failures to the retryable
// ErrStoreUnavailable; everything else is wrapped with the operation name.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, app_errors.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
