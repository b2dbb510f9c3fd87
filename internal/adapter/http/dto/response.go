package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// CreditCardResponse represents a card configuration in API responses.
type CreditCardResponse struct {
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	AvailableLimit     decimal.Decimal `json:"available_limit"`
	ClosingDay         int             `json:"closing_day"`
	DueDay             int             `json:"due_day"`
	DebitAccountID     string          `json:"debit_account_id"`
	EnforceCreditLimit bool            `json:"enforce_credit_limit"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Type                 string              `json:"type"`
	Balance              decimal.Decimal     `json:"balance"`
	AllowNegativeBalance bool                `json:"allow_negative_balance"`
	IsActive             bool                `json:"is_active"`
	CreditCard           *CreditCardResponse `json:"credit_card,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		Type:                 string(a.Type),
		Balance:              a.Balance,
		AllowNegativeBalance: a.AllowNegativeBalance,
		IsActive:             a.IsActive,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	if a.CreditCard != nil {
		resp.CreditCard = &CreditCardResponse{
			CreditLimit:        a.CreditCard.CreditLimit,
			AvailableLimit:     a.AvailableLimit(),
			ClosingDay:         a.CreditCard.ClosingDay,
			DueDay:             a.CreditCard.DueDay,
			DebitAccountID:     a.CreditCard.DebitAccountID,
			EnforceCreditLimit: a.CreditCard.EnforceCreditLimit,
		}
	}

	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                    string          `json:"id"`
	AccountID             string          `json:"account_id"`
	CategoryID            string          `json:"category_id"`
	Type                  string          `json:"type"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	CompetenceDate        time.Time       `json:"competence_date"`
	DueDate               *time.Time      `json:"due_date,omitempty"`
	Status                string          `json:"status"`
	IsAdjustment          bool            `json:"is_adjustment,omitempty"`
	OriginalTransactionID *string         `json:"original_transaction_id,omitempty"`
	HasAdjustment         bool            `json:"has_adjustment,omitempty"`
	InstallmentGroupID    *string         `json:"installment_group_id,omitempty"`
	InstallmentNumber     int             `json:"installment_number,omitempty"`
	TotalInstallments     int             `json:"total_installments,omitempty"`
	IsRecurrent           bool            `json:"is_recurrent,omitempty"`
	RecurrenceTemplateID  *string         `json:"recurrence_template_id,omitempty"`
	TransferGroupID       *string         `json:"transfer_group_id,omitempty"`
	CancellationReason    *string         `json:"cancellation_reason,omitempty"`
	CancelledAt           *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    t.ID,
		AccountID:             t.AccountID,
		CategoryID:            t.CategoryID,
		Type:                  string(t.Type),
		Amount:                t.Amount,
		Description:           t.Description,
		CompetenceDate:        t.CompetenceDate,
		DueDate:               t.DueDate,
		Status:                string(t.Status),
		IsAdjustment:          t.IsAdjustment,
		OriginalTransactionID: t.OriginalTransactionID,
		HasAdjustment:         t.HasAdjustment,
		InstallmentGroupID:    t.InstallmentGroupID,
		InstallmentNumber:     t.InstallmentNumber,
		TotalInstallments:     t.TotalInstallments,
		IsRecurrent:           t.IsRecurrent,
		RecurrenceTemplateID:  t.RecurrenceTemplateID,
		TransferGroupID:       t.TransferGroupID,
		CancellationReason:    t.CancellationReason,
		CancelledAt:           t.CancelledAt,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse represents the pair of transactions of one transfer.
type TransferResponse struct {
	TransferGroupID string               `json:"transfer_group_id"`
	Debit           *TransactionResponse `json:"debit"`
	Credit          *TransactionResponse `json:"credit"`
}

// TransferFromResult converts a transfer result to response.
func TransferFromResult(result *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		TransferGroupID: result.TransferGroupID,
		Debit:           TransactionFromDomain(result.Debit),
		Credit:          TransactionFromDomain(result.Credit),
	}
}

// RecurrenceTemplateResponse represents a recurrence template in API responses.
type RecurrenceTemplateResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	CategoryID      string          `json:"category_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	DayOfMonth      int             `json:"day_of_month"`
	DefaultStatus   string          `json:"default_status"`
	IsActive        bool            `json:"is_active"`
	LastGeneratedAt *time.Time      `json:"last_generated_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RecurrenceTemplateFromDomain converts a template to response.
func RecurrenceTemplateFromDomain(t *domain.RecurrenceTemplate) *RecurrenceTemplateResponse {
	return &RecurrenceTemplateResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		CategoryID:      t.CategoryID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		DayOfMonth:      t.DayOfMonth,
		DefaultStatus:   string(t.DefaultStatus),
		IsActive:        t.IsActive,
		LastGeneratedAt: t.LastGeneratedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// RecurrenceTemplatesFromDomain converts templates to responses.
func RecurrenceTemplatesFromDomain(templates []*domain.RecurrenceTemplate) []*RecurrenceTemplateResponse {
	result := make([]*RecurrenceTemplateResponse, len(templates))
	for i, t := range templates {
		result[i] = RecurrenceTemplateFromDomain(t)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsSystem bool   `json:"is_system"`
}

// CategoriesFromDomain converts categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = &CategoryResponse{ID: c.ID, Name: c.Name, IsSystem: c.IsSystem}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
