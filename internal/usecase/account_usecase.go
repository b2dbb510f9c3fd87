package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreditCardConfigInput carries a credit card configuration.
type CreditCardConfigInput struct {
	CreditLimit        decimal.Decimal
	ClosingDay         int
	DueDay             int
	DebitAccountID     string
	EnforceCreditLimit bool
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name                 string
	Type                 domain.AccountType
	InitialBalance       decimal.Decimal
	AllowNegativeBalance bool
	CreditCard           *CreditCardConfigInput
	Actor                string
}

// CreateAccount creates a new account. Credit card accounts require a valid
// card configuration; other types must not carry one.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		ID:                   uc.idGen.Generate(),
		Name:                 input.Name,
		Type:                 input.Type,
		Balance:              input.InitialBalance,
		AllowNegativeBalance: input.AllowNegativeBalance,
		IsActive:             true,
		CreatedBy:            input.Actor,
		CreatedAt:            now,
		UpdatedBy:            input.Actor,
		UpdatedAt:            now,
	}

	// CreditCardDetails present iff type is credit_card.
	if (account.Type == domain.AccountTypeCreditCard) != (input.CreditCard != nil) {
		return nil, domain.ErrInvalidCreditCardConfig
	}

	if input.CreditCard != nil {
		err := account.CreateCreditCard(domain.CreditCardDetails{
			CreditLimit:        input.CreditCard.CreditLimit,
			ClosingDay:         input.CreditCard.ClosingDay,
			DueDay:             input.CreditCard.DueDay,
			DebitAccountID:     input.CreditCard.DebitAccountID,
			EnforceCreditLimit: input.CreditCard.EnforceCreditLimit,
		}, input.Actor)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			Actor:        input.Actor,
			Action:       string(domain.AuditActionAccountCreate),
			ResourceType: "account",
			ResourceID:   account.ID,
			Payload:      domain.MarshalState(account),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now().UTC(),
		})
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.WithLabelValues(string(account.Type)).Inc()
	}

	return account, nil
}

// UpdateCreditCardInput represents input for reconfiguring a card account.
type UpdateCreditCardInput struct {
	AccountID  string
	CreditCard CreditCardConfigInput
	Actor      string
}

// UpdateCreditCard replaces the credit card configuration of a card account
// under the account row lock.
func (uc *AccountUseCase) UpdateCreditCard(ctx context.Context, input UpdateCreditCardInput) (*domain.Account, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	err = account.UpdateCreditCard(domain.CreditCardDetails{
		CreditLimit:        input.CreditCard.CreditLimit,
		ClosingDay:         input.CreditCard.ClosingDay,
		DueDay:             input.CreditCard.DueDay,
		DebitAccountID:     input.CreditCard.DebitAccountID,
		EnforceCreditLimit: input.CreditCard.EnforceCreditLimit,
	}, input.Actor)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(txCtx, tx, account); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		err := uc.auditRepo.CreateTx(txCtx, tx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			Actor:        input.Actor,
			Action:       string(domain.AuditActionAccountCardConfig),
			ResourceType: "account",
			ResourceID:   account.ID,
			Payload:      domain.MarshalState(account.CreditCard),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
