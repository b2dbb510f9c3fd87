package usecase

import (
	"context"
	"time"

	"github.com/iho/finledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	Update(ctx context.Context, tx Transaction, account *domain.Account) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
}

// OperationLogRepository defines data access for the idempotency log.
type OperationLogRepository interface {
	// ExistsByOperationID reports whether a live (non-expired) entry exists.
	ExistsByOperationID(ctx context.Context, operationID string) (bool, error)
	// Create inserts a new entry; returns domain.ErrDuplicateOperation when
	// the operation id is already taken.
	Create(ctx context.Context, tx Transaction, entry *domain.OperationLog) error
}

// RecurrenceRepository defines data access for recurrence templates.
type RecurrenceRepository interface {
	Create(ctx context.Context, template *domain.RecurrenceTemplate) error
	GetByID(ctx context.Context, id string) (*domain.RecurrenceTemplate, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.RecurrenceTemplate, error)
	ListActive(ctx context.Context) ([]*domain.RecurrenceTemplate, error)
	Update(ctx context.Context, tx Transaction, template *domain.RecurrenceTemplate) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles HTTP-level idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
