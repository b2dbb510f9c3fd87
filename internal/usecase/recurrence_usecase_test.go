package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

type recurrenceFixture struct {
	uc              *usecase.RecurrenceUseCase
	accountRepo     *mocks.MockAccountRepository
	transactionRepo *mocks.MockTransactionRepository
	recurrenceRepo  *mocks.MockRecurrenceRepository
}

func newRecurrenceFixture() *recurrenceFixture {
	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	recurrenceRepo := mocks.NewMockRecurrenceRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	return &recurrenceFixture{
		uc: usecase.NewRecurrenceUseCase(
			txManager, accountRepo, transactionRepo, recurrenceRepo, auditRepo, idGen, nil,
		),
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		recurrenceRepo:  recurrenceRepo,
	}
}

func seedTemplate(f *recurrenceFixture, id string, dayOfMonth int, lastGenerated *time.Time) {
	f.recurrenceRepo.Seed(&domain.RecurrenceTemplate{
		ID:              id,
		AccountID:       "acc-1",
		CategoryID:      "cat-1",
		Type:            domain.TransactionTypeDebit,
		Amount:          decimal.RequireFromString("49.90"),
		Description:     "Streaming subscription",
		DayOfMonth:      dayOfMonth,
		DefaultStatus:   domain.TransactionStatusPending,
		IsActive:        true,
		LastGeneratedAt: lastGenerated,
	})
}

func TestGenerateForMonth_OncePerMonth(t *testing.T) {
	f := newRecurrenceFixture()
	f.accountRepo.Seed(activeAccount("acc-1", "Checking", "100"))
	seedTemplate(f, "tpl-1", 10, nil)

	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	generated, err := f.uc.GenerateForMonth(context.Background(), month, "scheduler")
	require.NoError(t, err)
	assert.Equal(t, 1, generated)

	transactions := f.transactionRepo.All()
	require.Len(t, transactions, 1)
	txn := transactions[0]
	assert.True(t, txn.IsRecurrent)
	require.NotNil(t, txn.RecurrenceTemplateID)
	assert.Equal(t, "tpl-1", *txn.RecurrenceTemplateID)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), txn.CompetenceDate)
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)

	// The second run for the same month is a no-op.
	generated, err = f.uc.GenerateForMonth(context.Background(), month, "scheduler")
	require.NoError(t, err)
	assert.Equal(t, 0, generated)
	assert.Len(t, f.transactionRepo.All(), 1)
}

func TestGenerateForMonth_NextMonthGeneratesAgain(t *testing.T) {
	f := newRecurrenceFixture()
	f.accountRepo.Seed(activeAccount("acc-1", "Checking", "100"))

	last := time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC)
	seedTemplate(f, "tpl-1", 10, &last)

	// Year boundary: December 2024 -> January 2025.
	month := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	generated, err := f.uc.GenerateForMonth(context.Background(), month, "scheduler")
	require.NoError(t, err)
	assert.Equal(t, 1, generated)
}

func TestGenerateForMonth_ClampsDayOfMonth(t *testing.T) {
	f := newRecurrenceFixture()
	f.accountRepo.Seed(activeAccount("acc-1", "Checking", "100"))
	seedTemplate(f, "tpl-1", 31, nil)

	month := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	generated, err := f.uc.GenerateForMonth(context.Background(), month, "scheduler")
	require.NoError(t, err)
	require.Equal(t, 1, generated)

	transactions := f.transactionRepo.All()
	require.Len(t, transactions, 1)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), transactions[0].CompetenceDate)
}

func TestGenerateForMonth_SkipsFailingTemplate(t *testing.T) {
	f := newRecurrenceFixture()
	f.accountRepo.Seed(activeAccount("acc-1", "Checking", "100"))
	seedTemplate(f, "tpl-ok", 10, nil)

	// Template pointing at a missing account fails and is skipped.
	f.recurrenceRepo.Seed(&domain.RecurrenceTemplate{
		ID:            "tpl-broken",
		AccountID:     "acc-missing",
		CategoryID:    "cat-1",
		Type:          domain.TransactionTypeDebit,
		Amount:        decimal.RequireFromString("10"),
		DayOfMonth:    5,
		DefaultStatus: domain.TransactionStatusPending,
		IsActive:      true,
	})

	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	generated, err := f.uc.GenerateForMonth(context.Background(), month, "scheduler")
	require.NoError(t, err)
	assert.Equal(t, 1, generated)
}

func TestCreateTemplate(t *testing.T) {
	f := newRecurrenceFixture()
	f.accountRepo.Seed(activeAccount("acc-1", "Checking", "100"))

	template, err := f.uc.CreateTemplate(context.Background(), usecase.CreateTemplateInput{
		AccountID:     "acc-1",
		CategoryID:    "cat-1",
		Type:          domain.TransactionTypeDebit,
		Amount:        decimal.RequireFromString("49.90"),
		Description:   "Streaming subscription",
		DayOfMonth:    10,
		DefaultStatus: domain.TransactionStatusPending,
		Actor:         "tester",
	})
	require.NoError(t, err)

	assert.True(t, template.IsActive)
	assert.Nil(t, template.LastGeneratedAt)
}

func TestCreateTemplate_UnknownAccount(t *testing.T) {
	f := newRecurrenceFixture()

	_, err := f.uc.CreateTemplate(context.Background(), usecase.CreateTemplateInput{
		AccountID:  "acc-missing",
		CategoryID: "cat-1",
		Type:       domain.TransactionTypeDebit,
		Amount:     decimal.RequireFromString("49.90"),
		DayOfMonth: 10,
		Actor:      "tester",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
