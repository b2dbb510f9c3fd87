package usecase

import (
	"context"
	"time"

	"github.com/iho/finledger/internal/domain"
)

// IdempotencyGuard deduplicates commands by their client-supplied operation id.
// Check runs before any lock is taken; Record runs inside the command's
// database transaction, where the unique constraint on operation_id closes
// the race between concurrent replays.
type IdempotencyGuard struct {
	operationRepo OperationLogRepository
	idGen         IDGenerator
}

// NewIdempotencyGuard creates a new IdempotencyGuard.
func NewIdempotencyGuard(operationRepo OperationLogRepository, idGen IDGenerator) *IdempotencyGuard {
	return &IdempotencyGuard{
		operationRepo: operationRepo,
		idGen:         idGen,
	}
}

// Check fails with domain.ErrDuplicateOperation when a live entry exists for
// the operation id. A nil or empty operation id disables deduplication.
func (g *IdempotencyGuard) Check(ctx context.Context, operationID *string) error {
	if operationID == nil || *operationID == "" {
		return nil
	}

	exists, err := g.operationRepo.ExistsByOperationID(ctx, *operationID)
	if err != nil {
		return err
	}

	if exists {
		return domain.ErrDuplicateOperation
	}

	return nil
}

// Record writes the operation log entry for a command that is about to
// commit. Rolls back with the surrounding transaction on failure.
func (g *IdempotencyGuard) Record(ctx context.Context, tx Transaction, operationID *string) error {
	if operationID == nil || *operationID == "" {
		return nil
	}

	entry := domain.NewOperationLog(g.idGen.Generate(), *operationID, time.Now().UTC())

	return g.operationRepo.Create(ctx, tx, entry)
}
