package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates paired debit+credit transactions: plain
// inter-account transfers and credit card invoice settlements.
type TransferUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	categoryRepo    CategoryRepository
	auditRepo       AuditRepository
	guard           *IdempotencyGuard
	idGen           IDGenerator
	groupGen        IDGenerator
	metrics         *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	categoryRepo CategoryRepository,
	auditRepo AuditRepository,
	guard *IdempotencyGuard,
	idGen IDGenerator,
	groupGen IDGenerator,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		auditRepo:       auditRepo,
		guard:           guard,
		idGen:           idGen,
		groupGen:        groupGen,
		metrics:         m,
	}
}

// TransferInput represents input for creating a transfer.
type TransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	CategoryID           string
	Amount               decimal.Decimal
	Date                 time.Time
	OperationID          *string
	Actor                string
}

// TransferResult is the pair of transactions produced by one transfer.
type TransferResult struct {
	TransferGroupID string
	Debit           *domain.Transaction
	Credit          *domain.Transaction
}

// Transfer creates one paid debit on the source account and one paid credit
// on the destination, sharing a transfer group id. All-or-nothing: if the
// source debit fails validation, nothing is persisted.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	start := time.Now()

	result, err := uc.execTransfer(ctx, input, domain.AuditActionTransferCreate)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		amount, _ := input.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amount)
		uc.metrics.CommandDuration.WithLabelValues("transfer.create").Observe(time.Since(start).Seconds())
	}

	return result, nil
}

// PayInvoiceInput represents input for settling a credit card invoice.
type PayInvoiceInput struct {
	CreditCardAccountID string
	Amount              decimal.Decimal
	CompetenceDate      time.Time
	OperationID         *string
	Actor               string
}

// PayInvoice transfers the amount from the card's linked debit account to the
// card account, using the system invoice payment category. The amount is not
// capped to the owed balance: partial, full and over-payment are all valid,
// and any excess becomes a positive card balance (credit in favor).
func (uc *TransferUseCase) PayInvoice(ctx context.Context, input PayInvoiceInput) (*TransferResult, error) {
	start := time.Now()

	if input.CompetenceDate.After(time.Now()) {
		return nil, domain.ErrInvalidCompetenceDate
	}

	card, err := uc.accountRepo.GetByID(ctx, input.CreditCardAccountID)
	if err != nil {
		return nil, err
	}

	if card.Type != domain.AccountTypeCreditCard || card.CreditCard == nil {
		return nil, domain.ErrAccountIsNotCreditCard
	}

	categories, err := uc.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	category, err := domain.FindSystemCategory(categories, domain.SystemCategoryInvoicePayment)
	if err != nil {
		return nil, err
	}

	result, err := uc.execTransfer(ctx, TransferInput{
		SourceAccountID:      card.CreditCard.DebitAccountID,
		DestinationAccountID: card.ID,
		CategoryID:           category.ID,
		Amount:               input.Amount,
		Date:                 input.CompetenceDate,
		OperationID:          input.OperationID,
		Actor:                input.Actor,
	}, domain.AuditActionInvoicePay)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicesPaid.Inc()
		uc.metrics.CommandDuration.WithLabelValues("invoice.pay").Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *TransferUseCase) execTransfer(ctx context.Context, input TransferInput, action domain.AuditAction) (*TransferResult, error) {
	if input.SourceAccountID == input.DestinationAccountID {
		return nil, domain.ErrSameAccount
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidTransactionAmount
	}

	if err := uc.guard.Check(ctx, input.OperationID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// The repository locks rows in ascending id order regardless of the
	// request's source/destination order, so concurrent opposite-direction
	// transfers cannot deadlock.
	accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, []string{input.SourceAccountID, input.DestinationAccountID})
	if err != nil {
		return nil, err
	}

	if len(accounts) != 2 {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, 2)
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	source := accountMap[input.SourceAccountID]
	destination := accountMap[input.DestinationAccountID]

	if source == nil || destination == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := source.ValidateCanReceiveTransaction(); err != nil {
		return nil, err
	}

	if err := destination.ValidateCanReceiveTransaction(); err != nil {
		return nil, err
	}

	groupID := uc.groupGen.Generate()

	debit, err := domain.NewTransaction(source, domain.NewTransactionParams{
		ID:             uc.idGen.Generate(),
		CategoryID:     input.CategoryID,
		Type:           domain.TransactionTypeDebit,
		Amount:         input.Amount,
		Description:    "Transfer to " + destination.Name,
		CompetenceDate: input.Date,
		Status:         domain.TransactionStatusPaid,
		OperationID:    input.OperationID,
		Actor:          input.Actor,
	})
	if err != nil {
		return nil, err
	}
	debit.SetTransferGroup(groupID)

	credit, err := domain.NewTransaction(destination, domain.NewTransactionParams{
		ID:             uc.idGen.Generate(),
		CategoryID:     input.CategoryID,
		Type:           domain.TransactionTypeCredit,
		Amount:         input.Amount,
		Description:    "Transfer from " + source.Name,
		CompetenceDate: input.Date,
		Status:         domain.TransactionStatusPaid,
		OperationID:    input.OperationID,
		Actor:          input.Actor,
	})
	if err != nil {
		return nil, err
	}
	credit.SetTransferGroup(groupID)

	if err := domain.ApplyTransactionEffect(source, debit, input.Actor); err != nil {
		return nil, err
	}

	if err := domain.ApplyTransactionEffect(destination, credit, input.Actor); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(txCtx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(txCtx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(txCtx, tx, source); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(txCtx, tx, destination); err != nil {
		return nil, err
	}

	if err := uc.guard.Record(txCtx, tx, input.OperationID); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		err := uc.auditRepo.CreateTx(txCtx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			Actor:        input.Actor,
			Action:       string(action),
			ResourceType: "transfer",
			ResourceID:   groupID,
			Payload: domain.JSON{
				"transfer_group_id":      groupID,
				"source_account_id":      source.ID,
				"destination_account_id": destination.ID,
				"amount":                 input.Amount.String(),
			},
			Status:    string(domain.AuditStatusSuccess),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &TransferResult{
		TransferGroupID: groupID,
		Debit:           debit,
		Credit:          credit,
	}, nil
}
