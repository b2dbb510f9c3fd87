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

const recurrenceColumns = `
	id, account_id, category_id, type, amount, description,
	day_of_month, default_status, is_active, last_generated_at,
	created_by, created_at, updated_by, updated_at`

// RecurrenceRepository implements usecase.RecurrenceRepository.
type RecurrenceRepository struct {
	pool *pgxpool.Pool
}

// NewRecurrenceRepository creates a new RecurrenceRepository.
func NewRecurrenceRepository(pool *pgxpool.Pool) *RecurrenceRepository {
	return &RecurrenceRepository{pool: pool}
}

// Create inserts a new recurrence template.
func (r *RecurrenceRepository) Create(ctx context.Context, template *domain.RecurrenceTemplate) error {
	query := `
		INSERT INTO recurrence_templates (` + recurrenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		template.ID,
		template.AccountID,
		template.CategoryID,
		string(template.Type),
		decimalToNumeric(template.Amount),
		template.Description,
		template.DayOfMonth,
		string(template.DefaultStatus),
		template.IsActive,
		ptrToPgTimestamptz(template.LastGeneratedAt),
		template.CreatedBy,
		timeToPgTimestamptz(template.CreatedAt),
		template.UpdatedBy,
		timeToPgTimestamptz(template.UpdatedAt),
	)

	return err
}

// GetByID retrieves a template by ID.
func (r *RecurrenceRepository) GetByID(ctx context.Context, id string) (*domain.RecurrenceTemplate, error) {
	query := `SELECT ` + recurrenceColumns + ` FROM recurrence_templates WHERE id = $1`

	return scanRecurrenceTemplate(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a template with a FOR UPDATE lock.
func (r *RecurrenceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.RecurrenceTemplate, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + recurrenceColumns + ` FROM recurrence_templates WHERE id = $1 FOR UPDATE`

	return scanRecurrenceTemplate(pgxTx.QueryRow(ctx, query, id))
}

// ListActive lists every active template.
func (r *RecurrenceRepository) ListActive(ctx context.Context) ([]*domain.RecurrenceTemplate, error) {
	query := `SELECT ` + recurrenceColumns + ` FROM recurrence_templates WHERE is_active ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.RecurrenceTemplate
	for rows.Next() {
		template, err := scanRecurrenceTemplate(rows)
		if err != nil {
			return nil, err
		}

		templates = append(templates, template)
	}

	return templates, rows.Err()
}

// Update persists the mutable state of a template.
func (r *RecurrenceRepository) Update(ctx context.Context, tx usecase.Transaction, template *domain.RecurrenceTemplate) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE recurrence_templates SET
			is_active = $2, last_generated_at = $3, updated_by = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		template.ID,
		template.IsActive,
		ptrToPgTimestamptz(template.LastGeneratedAt),
		template.UpdatedBy,
		timeToPgTimestamptz(template.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecurrenceTemplateNotFound
	}

	return nil
}

func scanRecurrenceTemplate(row pgx.Row) (*domain.RecurrenceTemplate, error) {
	var (
		template      domain.RecurrenceTemplate
		txnType       string
		amount        pgtype.Numeric
		defaultStatus string
		lastGenerated pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&template.ID,
		&template.AccountID,
		&template.CategoryID,
		&txnType,
		&amount,
		&template.Description,
		&template.DayOfMonth,
		&defaultStatus,
		&template.IsActive,
		&lastGenerated,
		&template.CreatedBy,
		&createdAt,
		&template.UpdatedBy,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurrenceTemplateNotFound
		}

		return nil, err
	}

	template.Type = domain.TransactionType(txnType)
	template.Amount = numericToDecimal(amount)
	template.DefaultStatus = domain.TransactionStatus(defaultStatus)
	template.LastGeneratedAt = pgTimestamptzToPtr(lastGenerated)
	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return &template, nil
}
