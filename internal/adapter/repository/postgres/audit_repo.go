package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// AuditRepository implements audit log persistence.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditInsert = `
	INSERT INTO audit_logs (id, actor, action, resource_type, resource_id, payload, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Create inserts a new audit log entry outside any unit of work.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	payload, err := marshalPayload(log.Payload)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, auditInsert,
		log.ID, log.Actor, log.Action, log.ResourceType, log.ResourceID,
		payload, log.Status, timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// CreateTx inserts a new audit log entry inside the unit of work, so the
// entry commits or rolls back together with the command it records.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	payload, err := marshalPayload(log.Payload)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, auditInsert,
		log.ID, log.Actor, log.Action, log.ResourceType, log.ResourceID,
		payload, log.Status, timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// List retrieves audit logs with filtering.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, actor, action, resource_type, resource_id, payload, status, created_at
		FROM audit_logs
		WHERE 1=1
	`
	args := []any{}

	appendFilter := func(clause, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND %s = $%d", clause, len(args))
	}

	appendFilter("actor", filter.Actor)
	appendFilter("action", filter.Action)
	appendFilter("resource_type", filter.ResourceType)
	appendFilter("resource_id", filter.ResourceID)

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log       domain.AuditLog
			payload   []byte
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&log.ID, &log.Actor, &log.Action, &log.ResourceType, &log.ResourceID,
			&payload, &log.Status, &createdAt,
		)
		if err != nil {
			return nil, err
		}

		if payload != nil {
			_ = json.Unmarshal(payload, &log.Payload)
		}

		log.CreatedAt = createdAt.Time
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

func marshalPayload(payload domain.JSON) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	return json.Marshal(payload)
}
