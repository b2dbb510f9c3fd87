package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// OperationLogRepository implements usecase.OperationLogRepository. The table
// carries a unique index on operation_id; the insert inside the unit of work
// is what makes concurrent replays lose.
type OperationLogRepository struct {
	pool *pgxpool.Pool
}

// NewOperationLogRepository creates a new OperationLogRepository.
func NewOperationLogRepository(pool *pgxpool.Pool) *OperationLogRepository {
	return &OperationLogRepository{pool: pool}
}

// ExistsByOperationID reports whether a live entry exists for the operation id.
func (r *OperationLogRepository) ExistsByOperationID(ctx context.Context, operationID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM operation_log WHERE operation_id = $1 AND expires_at > now())`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, operationID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// Create inserts a new entry inside the unit of work. A unique violation on
// operation_id maps to domain.ErrDuplicateOperation.
func (r *OperationLogRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.OperationLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO operation_log (id, operation_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.OperationID,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.ExpiresAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateOperation
		}

		return err
	}

	return nil
}

// DeleteExpired removes entries past their TTL. Meant for a periodic sweep.
func (r *OperationLogRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM operation_log WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
