package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction commands: create, cancel, adjust and
// installment plans. Every command follows the same discipline: idempotency
// check, lock the account row, mutate through the domain, persist, audit
// inside the transaction, commit.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	guard           *IdempotencyGuard
	idGen           IDGenerator
	groupGen        IDGenerator
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	auditRepo AuditRepository,
	guard *IdempotencyGuard,
	idGen IDGenerator,
	groupGen IDGenerator,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		guard:           guard,
		idGen:           idGen,
		groupGen:        groupGen,
		metrics:         m,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	AccountID      string
	CategoryID     string
	Type           domain.TransactionType
	Amount         decimal.Decimal
	Description    string
	CompetenceDate time.Time
	DueDate        *time.Time
	Status         domain.TransactionStatus
	OperationID    *string
	Actor          string
}

// CreateTransaction creates a single transaction and applies its balance
// effect when it is paid.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	if err := uc.guard.Check(ctx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, uc.countError(err)
	}

	if err := account.ValidateCanReceiveTransaction(); err != nil {
		return nil, uc.countError(err)
	}

	txn, err := domain.NewTransaction(account, domain.NewTransactionParams{
		ID:             uc.idGen.Generate(),
		CategoryID:     input.CategoryID,
		Type:           input.Type,
		Amount:         input.Amount,
		Description:    input.Description,
		CompetenceDate: input.CompetenceDate,
		DueDate:        input.DueDate,
		Status:         input.Status,
		OperationID:    input.OperationID,
		Actor:          input.Actor,
	})
	if err != nil {
		return nil, uc.countError(err)
	}

	if err := domain.ApplyTransactionEffect(account, txn, input.Actor); err != nil {
		return nil, uc.countError(err)
	}

	if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.guard.Record(txCtx, tx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	if err := uc.audit(txCtx, tx, domain.AuditActionTransactionCreate, txn.ID, input.Actor, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(txn.Type), string(txn.Status)).Inc()
		uc.metrics.CommandDuration.WithLabelValues("transaction.create").Observe(time.Since(start).Seconds())
	}

	return txn, nil
}

// CancelTransactionInput represents input for cancelling a transaction.
type CancelTransactionInput struct {
	TransactionID string
	Reason        string
	OperationID   *string
	Actor         string
}

// CancelTransaction moves a transaction to cancelled and reverses its balance
// effect when it was paid. Cancellation is one-way and never repeatable.
func (uc *TransactionUseCase) CancelTransaction(ctx context.Context, input CancelTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	if err := uc.guard.Check(ctx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	txn, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, input.TransactionID)
	if err != nil {
		return nil, uc.countError(err)
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, txn.AccountID)
	if err != nil {
		return nil, uc.countError(err)
	}

	priorStatus := txn.Status

	if err := txn.Cancel(input.Actor, input.Reason); err != nil {
		return nil, uc.countError(err)
	}

	domain.ReverseTransactionEffect(account, txn, priorStatus, input.Actor)

	if err := uc.transactionRepo.Update(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.guard.Record(txCtx, tx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	if err := uc.audit(txCtx, tx, domain.AuditActionTransactionCancel, txn.ID, input.Actor, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCancelled.Inc()
		uc.metrics.CommandDuration.WithLabelValues("transaction.cancel").Observe(time.Since(start).Seconds())
	}

	return txn, nil
}

// AdjustTransactionInput represents input for adjusting a transaction.
type AdjustTransactionInput struct {
	TransactionID string
	Amount        decimal.Decimal
	Description   string
	OperationID   *string
	Actor         string
}

// AdjustTransaction creates a paid adjustment linked to the original
// transaction. The adjustment's amount is applied to the account in addition
// to the original's effect.
func (uc *TransactionUseCase) AdjustTransaction(ctx context.Context, input AdjustTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	if err := uc.guard.Check(ctx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	original, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, input.TransactionID)
	if err != nil {
		return nil, uc.countError(err)
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, original.AccountID)
	if err != nil {
		return nil, uc.countError(err)
	}

	adjustment, err := original.NewAdjustment(uc.idGen.Generate(), input.Amount, input.Description, input.Actor)
	if err != nil {
		return nil, uc.countError(err)
	}

	if err := domain.ApplyTransactionEffect(account, adjustment, input.Actor); err != nil {
		return nil, uc.countError(err)
	}

	original.MarkAdjusted(input.Actor)

	if err := uc.transactionRepo.Create(txCtx, tx, adjustment); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(txCtx, tx, original); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.guard.Record(txCtx, tx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	if err := uc.audit(txCtx, tx, domain.AuditActionTransactionAdjust, adjustment.ID, input.Actor, adjustment); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsAdjusted.Inc()
		uc.metrics.CommandDuration.WithLabelValues("transaction.adjust").Observe(time.Since(start).Seconds())
	}

	return adjustment, nil
}

// CreateInstallmentPlanInput represents input for splitting a purchase into
// dated installments.
type CreateInstallmentPlanInput struct {
	AccountID           string
	CategoryID          string
	Type                domain.TransactionType
	TotalAmount         decimal.Decimal
	Count               int
	Description         string
	FirstCompetenceDate time.Time
	FirstDueDate        *time.Time
	Status              domain.TransactionStatus
	OperationID         *string
	Actor               string
}

// CreateInstallmentPlan splits the total into count transactions sharing one
// installment group id, all persisted atomically.
func (uc *TransactionUseCase) CreateInstallmentPlan(ctx context.Context, input CreateInstallmentPlanInput) ([]*domain.Transaction, error) {
	start := time.Now()

	if err := uc.guard.Check(ctx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	installments, err := domain.SplitInstallments(input.TotalAmount, input.Count, input.FirstCompetenceDate, input.FirstDueDate)
	if err != nil {
		return nil, uc.countError(err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, uc.countError(err)
	}

	if err := account.ValidateCanReceiveTransaction(); err != nil {
		return nil, uc.countError(err)
	}

	groupID := uc.groupGen.Generate()

	transactions := make([]*domain.Transaction, 0, len(installments))
	for _, inst := range installments {
		txn, err := domain.NewTransaction(account, domain.NewTransactionParams{
			ID:             uc.idGen.Generate(),
			CategoryID:     input.CategoryID,
			Type:           input.Type,
			Amount:         inst.Amount,
			Description:    fmt.Sprintf("%s (%d/%d)", input.Description, inst.Number, input.Count),
			CompetenceDate: inst.CompetenceDate,
			DueDate:        inst.DueDate,
			Status:         input.Status,
			OperationID:    input.OperationID,
			Actor:          input.Actor,
		})
		if err != nil {
			return nil, uc.countError(err)
		}

		txn.SetInstallmentInfo(groupID, inst.Number, input.Count)

		if err := domain.ApplyTransactionEffect(account, txn, input.Actor); err != nil {
			return nil, uc.countError(err)
		}

		if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
			return nil, err
		}

		transactions = append(transactions, txn)
	}

	if err := uc.accountRepo.Update(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.guard.Record(txCtx, tx, input.OperationID); err != nil {
		return nil, uc.countError(err)
	}

	if err := uc.audit(txCtx, tx, domain.AuditActionInstallmentCreate, groupID, input.Actor, domain.JSON{
		"installment_group_id": groupID,
		"account_id":           input.AccountID,
		"total_amount":         input.TotalAmount.String(),
		"count":                input.Count,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InstallmentPlansCreated.Inc()
		uc.metrics.InstallmentsPerPlan.Observe(float64(input.Count))
		uc.metrics.CommandDuration.WithLabelValues("transaction.installments").Observe(time.Since(start).Seconds())
	}

	return transactions, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsByAccountInput represents input for listing transactions.
type ListTransactionsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists transactions for an account.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.transactionRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

func (uc *TransactionUseCase) audit(ctx context.Context, tx Transaction, action domain.AuditAction, resourceID, actor string, state any) error {
	if uc.auditRepo == nil {
		return nil
	}

	return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Actor:        actor,
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   resourceID,
		Payload:      domain.MarshalState(state),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

func (uc *TransactionUseCase) countError(err error) error {
	if uc.metrics != nil && err != nil {
		if err == domain.ErrDuplicateOperation {
			uc.metrics.DuplicateOperations.Inc()
		}
		uc.metrics.TransactionErrors.WithLabelValues(err.Error()).Inc()
	}

	return err
}
