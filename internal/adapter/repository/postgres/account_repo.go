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

const accountColumns = `
	id, name, type, balance, allow_negative_balance, is_active,
	credit_limit, closing_day, due_day, debit_account_id, enforce_credit_limit,
	created_by, created_at, updated_by, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query, accountArgs(account)...)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return scanAccount(pgxTx.QueryRow(ctx, query, id))
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks. Rows
// are locked in ascending id order regardless of the order of ids, so two
// commands locking the same pair cannot deadlock.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := pgxTx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Update persists the current state of an account.
func (r *AccountRepository) Update(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts SET
			name = $2, balance = $3, allow_negative_balance = $4, is_active = $5,
			credit_limit = $6, closing_day = $7, due_day = $8,
			debit_account_id = $9, enforce_credit_limit = $10,
			updated_by = $11, updated_at = $12
		WHERE id = $1
	`

	limit, closing, due, debitID, enforce := cardFields(account)

	tag, err := pgxTx.Exec(ctx, query,
		account.ID,
		account.Name,
		decimalToNumeric(account.Balance),
		account.AllowNegativeBalance,
		account.IsActive,
		limit,
		closing,
		due,
		debitID,
		enforce,
		account.UpdatedBy,
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func accountArgs(account *domain.Account) []any {
	limit, closing, due, debitID, enforce := cardFields(account)

	return []any{
		account.ID,
		account.Name,
		string(account.Type),
		decimalToNumeric(account.Balance),
		account.AllowNegativeBalance,
		account.IsActive,
		limit,
		closing,
		due,
		debitID,
		enforce,
		account.CreatedBy,
		timeToPgTimestamptz(account.CreatedAt),
		account.UpdatedBy,
		timeToPgTimestamptz(account.UpdatedAt),
	}
}

func cardFields(account *domain.Account) (pgtype.Numeric, pgtype.Int4, pgtype.Int4, pgtype.Text, pgtype.Bool) {
	if account.CreditCard == nil {
		return pgtype.Numeric{}, pgtype.Int4{}, pgtype.Int4{}, pgtype.Text{}, pgtype.Bool{}
	}

	cc := account.CreditCard

	return decimalToNumeric(cc.CreditLimit),
		pgtype.Int4{Int32: int32(cc.ClosingDay), Valid: true},
		pgtype.Int4{Int32: int32(cc.DueDay), Valid: true},
		pgtype.Text{String: cc.DebitAccountID, Valid: true},
		pgtype.Bool{Bool: cc.EnforceCreditLimit, Valid: true}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		accType   string
		balance   pgtype.Numeric
		limit     pgtype.Numeric
		closing   pgtype.Int4
		due       pgtype.Int4
		debitID   pgtype.Text
		enforce   pgtype.Bool
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.Name,
		&accType,
		&balance,
		&account.AllowNegativeBalance,
		&account.IsActive,
		&limit,
		&closing,
		&due,
		&debitID,
		&enforce,
		&account.CreatedBy,
		&createdAt,
		&account.UpdatedBy,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Type = domain.AccountType(accType)
	account.Balance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	if limit.Valid {
		account.CreditCard = &domain.CreditCardDetails{
			CreditLimit:        numericToDecimal(limit),
			ClosingDay:         int(closing.Int32),
			DueDay:             int(due.Int32),
			DebitAccountID:     debitID.String,
			EnforceCreditLimit: enforce.Bool,
		}
	}

	return &account, nil
}
