package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

const transactionColumns = `
	id, account_id, category_id, type, amount, description,
	competence_date, due_date, status,
	is_adjustment, original_transaction_id, has_adjustment,
	installment_group_id, installment_number, total_installments,
	is_recurrent, recurrence_template_id, transfer_group_id,
	cancellation_reason, cancelled_by, cancelled_at, operation_id,
	created_by, created_at, updated_by, updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction inside the unit of work.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		txn.CategoryID,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		txn.Description,
		timeToPgTimestamptz(txn.CompetenceDate),
		ptrToPgTimestamptz(txn.DueDate),
		string(txn.Status),
		txn.IsAdjustment,
		ptrToPgText(txn.OriginalTransactionID),
		txn.HasAdjustment,
		ptrToPgText(txn.InstallmentGroupID),
		txn.InstallmentNumber,
		txn.TotalInstallments,
		txn.IsRecurrent,
		ptrToPgText(txn.RecurrenceTemplateID),
		ptrToPgText(txn.TransferGroupID),
		ptrToPgText(txn.CancellationReason),
		ptrToPgText(txn.CancelledBy),
		ptrToPgTimestamptz(txn.CancelledAt),
		ptrToPgText(txn.OperationID),
		txn.CreatedBy,
		timeToPgTimestamptz(txn.CreatedAt),
		txn.UpdatedBy,
		timeToPgTimestamptz(txn.UpdatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	return scanTransaction(pgxTx.QueryRow(ctx, query, id))
}

// Update persists the mutable state of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions SET
			status = $2, has_adjustment = $3,
			cancellation_reason = $4, cancelled_by = $5, cancelled_at = $6,
			updated_by = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		txn.ID,
		string(txn.Status),
		txn.HasAdjustment,
		ptrToPgText(txn.CancellationReason),
		ptrToPgText(txn.CancelledBy),
		ptrToPgTimestamptz(txn.CancelledAt),
		txn.UpdatedBy,
		timeToPgTimestamptz(txn.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByAccount lists transactions for an account, newest competence first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY competence_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn            domain.Transaction
		txnType        string
		amount         pgtype.Numeric
		status         string
		competenceDate pgtype.Timestamptz
		dueDate        pgtype.Timestamptz
		originalID     pgtype.Text
		installmentGID pgtype.Text
		recurrenceTID  pgtype.Text
		transferGID    pgtype.Text
		cancelReason   pgtype.Text
		cancelledBy    pgtype.Text
		cancelledAt    pgtype.Timestamptz
		operationID    pgtype.Text
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.CategoryID,
		&txnType,
		&amount,
		&txn.Description,
		&competenceDate,
		&dueDate,
		&status,
		&txn.IsAdjustment,
		&originalID,
		&txn.HasAdjustment,
		&installmentGID,
		&txn.InstallmentNumber,
		&txn.TotalInstallments,
		&txn.IsRecurrent,
		&recurrenceTID,
		&transferGID,
		&cancelReason,
		&cancelledBy,
		&cancelledAt,
		&operationID,
		&txn.CreatedBy,
		&createdAt,
		&txn.UpdatedBy,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Amount = numericToDecimal(amount)
	txn.Status = domain.TransactionStatus(status)
	txn.CompetenceDate = competenceDate.Time
	txn.DueDate = pgTimestamptzToPtr(dueDate)
	txn.OriginalTransactionID = pgTextToPtr(originalID)
	txn.InstallmentGroupID = pgTextToPtr(installmentGID)
	txn.RecurrenceTemplateID = pgTextToPtr(recurrenceTID)
	txn.TransferGroupID = pgTextToPtr(transferGID)
	txn.CancellationReason = pgTextToPtr(cancelReason)
	txn.CancelledBy = pgTextToPtr(cancelledBy)
	txn.CancelledAt = pgTimestamptzToPtr(cancelledAt)
	txn.OperationID = pgTextToPtr(operationID)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time

	return &txn, nil
}
