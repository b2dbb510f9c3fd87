package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/metrics"
)

// RecurrenceUseCase materializes monthly transactions from recurrence
// templates. The per-template generation gate makes the scheduled run
// idempotent per calendar month.
type RecurrenceUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	recurrenceRepo  RecurrenceRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewRecurrenceUseCase creates a new RecurrenceUseCase.
func NewRecurrenceUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	recurrenceRepo RecurrenceRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *RecurrenceUseCase {
	return &RecurrenceUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		recurrenceRepo:  recurrenceRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		metrics:         m,
		logger:          slog.Default(),
	}
}

// CreateTemplateInput represents input for creating a recurrence template.
type CreateTemplateInput struct {
	AccountID     string
	CategoryID    string
	Type          domain.TransactionType
	Amount        decimal.Decimal
	Description   string
	DayOfMonth    int
	DefaultStatus domain.TransactionStatus
	Actor         string
}

// CreateTemplate creates a new active recurrence template.
func (uc *RecurrenceUseCase) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*domain.RecurrenceTemplate, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidTransactionAmount
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	template := &domain.RecurrenceTemplate{
		ID:            uc.idGen.Generate(),
		AccountID:     input.AccountID,
		CategoryID:    input.CategoryID,
		Type:          input.Type,
		Amount:        input.Amount,
		Description:   input.Description,
		DayOfMonth:    input.DayOfMonth,
		DefaultStatus: input.DefaultStatus,
		IsActive:      true,
		CreatedBy:     input.Actor,
		CreatedAt:     now,
		UpdatedBy:     input.Actor,
		UpdatedAt:     now,
	}

	if err := uc.recurrenceRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

// GenerateForMonth materializes one transaction per active template that has
// not yet generated for the given month. Each template runs in its own
// database transaction; a failing template is logged and skipped so the rest
// of the run proceeds. Returns the number of transactions generated.
func (uc *RecurrenceUseCase) GenerateForMonth(ctx context.Context, month time.Time, actor string) (int, error) {
	templates, err := uc.recurrenceRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, template := range templates {
		if !template.ShouldGenerateForMonth(month) {
			continue
		}

		if err := uc.generateOne(ctx, template.ID, month, actor); err != nil {
			uc.logger.Warn("recurrence generation failed",
				"template_id", template.ID,
				"error", err,
			)
			continue
		}

		generated++
	}

	if uc.metrics != nil {
		uc.metrics.RecurrenceRuns.Inc()
		uc.metrics.RecurrencesGenerated.Add(float64(generated))
	}

	return generated, nil
}

func (uc *RecurrenceUseCase) generateOne(ctx context.Context, templateID string, month time.Time, actor string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Re-check the gate under the template row lock: a concurrent run may
	// have generated for this month between the list and the lock.
	template, err := uc.recurrenceRepo.GetByIDForUpdate(txCtx, tx, templateID)
	if err != nil {
		return err
	}

	if !template.ShouldGenerateForMonth(month) {
		return nil
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, template.AccountID)
	if err != nil {
		return err
	}

	if err := account.ValidateCanReceiveTransaction(); err != nil {
		return err
	}

	competence := competenceFor(month, template.DayOfMonth)

	txn, err := domain.NewTransaction(account, domain.NewTransactionParams{
		ID:             uc.idGen.Generate(),
		CategoryID:     template.CategoryID,
		Type:           template.Type,
		Amount:         template.Amount,
		Description:    template.Description,
		CompetenceDate: competence,
		Status:         template.DefaultStatus,
		Actor:          actor,
	})
	if err != nil {
		return err
	}

	txn.SetRecurrenceInfo(template.ID)

	if err := domain.ApplyTransactionEffect(account, txn, actor); err != nil {
		return err
	}

	if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
		return err
	}

	if err := uc.accountRepo.Update(txCtx, tx, account); err != nil {
		return err
	}

	template.MarkGenerated(competence, actor)

	if err := uc.recurrenceRepo.Update(txCtx, tx, template); err != nil {
		return err
	}

	if uc.auditRepo != nil {
		err := uc.auditRepo.CreateTx(txCtx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			Actor:        actor,
			Action:       string(domain.AuditActionRecurrenceGenerate),
			ResourceType: "recurrence",
			ResourceID:   template.ID,
			Payload: domain.JSON{
				"template_id":    template.ID,
				"transaction_id": txn.ID,
				"month":          month.Format("2006-01"),
			},
			Status:    string(domain.AuditStatusSuccess),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit(txCtx)
}

// ListTemplates lists all active templates.
func (uc *RecurrenceUseCase) ListTemplates(ctx context.Context) ([]*domain.RecurrenceTemplate, error) {
	return uc.recurrenceRepo.ListActive(ctx)
}

// competenceFor places the transaction on the template's day of month,
// clamped to the month's last day.
func competenceFor(month time.Time, dayOfMonth int) time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if dayOfMonth > lastDay {
		dayOfMonth = lastDay
	}
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}

	return time.Date(month.Year(), month.Month(), dayOfMonth, 0, 0, 0, 0, time.UTC)
}
