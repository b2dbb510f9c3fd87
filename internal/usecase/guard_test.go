package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

func TestIdempotencyGuard_NilOperationID(t *testing.T) {
	guard := usecase.NewIdempotencyGuard(mocks.NewMockOperationLogRepository(), mocks.NewMockIDGenerator())

	require.NoError(t, guard.Check(context.Background(), nil))

	empty := ""
	require.NoError(t, guard.Check(context.Background(), &empty))
}

func TestIdempotencyGuard_DetectsReplay(t *testing.T) {
	operationRepo := mocks.NewMockOperationLogRepository()
	guard := usecase.NewIdempotencyGuard(operationRepo, mocks.NewMockIDGenerator())

	opID := "op-1"
	tx := &mocks.MockTransaction{}

	require.NoError(t, guard.Check(context.Background(), &opID))
	require.NoError(t, guard.Record(context.Background(), tx, &opID))

	assert.ErrorIs(t, guard.Check(context.Background(), &opID), domain.ErrDuplicateOperation)
}

func TestIdempotencyGuard_RecordConflict(t *testing.T) {
	// Two concurrent commands pass Check; the second Record hits the unique
	// constraint and fails inside its transaction.
	operationRepo := mocks.NewMockOperationLogRepository()
	guard := usecase.NewIdempotencyGuard(operationRepo, mocks.NewMockIDGenerator())

	opID := "op-1"

	require.NoError(t, guard.Record(context.Background(), &mocks.MockTransaction{}, &opID))
	assert.ErrorIs(t, guard.Record(context.Background(), &mocks.MockTransaction{}, &opID), domain.ErrDuplicateOperation)
}

func TestOperationLogExpiry(t *testing.T) {
	now := time.Now().UTC()
	entry := domain.NewOperationLog("id-1", "op-1", now)

	assert.False(t, entry.IsExpired(now))
	assert.False(t, entry.IsExpired(now.Add(domain.OperationLogTTL-time.Second)))
	assert.True(t, entry.IsExpired(now.Add(domain.OperationLogTTL)))
}
