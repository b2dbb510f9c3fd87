package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// CreditCardConfig carries the credit card section of account requests.
type CreditCardConfig struct {
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	ClosingDay         int             `json:"closing_day"`
	DueDay             int             `json:"due_day"`
	DebitAccountID     string          `json:"debit_account_id"`
	EnforceCreditLimit bool            `json:"enforce_credit_limit"`
}

func (c *CreditCardConfig) toUseCaseInput() *usecase.CreditCardConfigInput {
	if c == nil {
		return nil
	}

	return &usecase.CreditCardConfigInput{
		CreditLimit:        c.CreditLimit,
		ClosingDay:         c.ClosingDay,
		DueDay:             c.DueDay,
		DebitAccountID:     c.DebitAccountID,
		EnforceCreditLimit: c.EnforceCreditLimit,
	}
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name                 string            `json:"name"`
	Type                 string            `json:"type"`
	InitialBalance       decimal.Decimal   `json:"initial_balance"`
	AllowNegativeBalance bool              `json:"allow_negative_balance"`
	CreditCard           *CreditCardConfig `json:"credit_card,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(actor string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:                 r.Name,
		Type:                 domain.AccountType(r.Type),
		InitialBalance:       r.InitialBalance,
		AllowNegativeBalance: r.AllowNegativeBalance,
		CreditCard:           r.CreditCard.toUseCaseInput(),
		Actor:                actor,
	}
}

// UpdateCreditCardRequest represents a request to reconfigure a card account.
type UpdateCreditCardRequest struct {
	CreditCard CreditCardConfig `json:"credit_card"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCreditCardRequest) ToUseCaseInput(accountID, actor string) usecase.UpdateCreditCardInput {
	return usecase.UpdateCreditCardInput{
		AccountID:  accountID,
		CreditCard: *r.CreditCard.toUseCaseInput(),
		Actor:      actor,
	}
}

// CreateTransactionRequest represents a request to create a transaction.
type CreateTransactionRequest struct {
	AccountID      string          `json:"account_id"`
	CategoryID     string          `json:"category_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	CompetenceDate time.Time       `json:"competence_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         string          `json:"status,omitempty"`
	OperationID    *string         `json:"operation_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(actor string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		AccountID:      r.AccountID,
		CategoryID:     r.CategoryID,
		Type:           domain.TransactionType(r.Type),
		Amount:         r.Amount,
		Description:    r.Description,
		CompetenceDate: r.CompetenceDate,
		DueDate:        r.DueDate,
		Status:         domain.TransactionStatus(r.Status),
		OperationID:    r.OperationID,
		Actor:          actor,
	}
}

// CancelTransactionRequest represents a request to cancel a transaction.
type CancelTransactionRequest struct {
	Reason      string  `json:"reason,omitempty"`
	OperationID *string `json:"operation_id,omitempty"`
}

// AdjustTransactionRequest represents a request to adjust a transaction.
type AdjustTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OperationID *string         `json:"operation_id,omitempty"`
}

// CreateInstallmentPlanRequest represents a request to split a purchase.
type CreateInstallmentPlanRequest struct {
	AccountID           string          `json:"account_id"`
	CategoryID          string          `json:"category_id"`
	Type                string          `json:"type"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	Count               int             `json:"count"`
	Description         string          `json:"description"`
	FirstCompetenceDate time.Time       `json:"first_competence_date"`
	FirstDueDate        *time.Time      `json:"first_due_date,omitempty"`
	Status              string          `json:"status,omitempty"`
	OperationID         *string         `json:"operation_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInstallmentPlanRequest) ToUseCaseInput(actor string) usecase.CreateInstallmentPlanInput {
	return usecase.CreateInstallmentPlanInput{
		AccountID:           r.AccountID,
		CategoryID:          r.CategoryID,
		Type:                domain.TransactionType(r.Type),
		TotalAmount:         r.TotalAmount,
		Count:               r.Count,
		Description:         r.Description,
		FirstCompetenceDate: r.FirstCompetenceDate,
		FirstDueDate:        r.FirstDueDate,
		Status:              domain.TransactionStatus(r.Status),
		OperationID:         r.OperationID,
		Actor:               actor,
	}
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	CategoryID           string          `json:"category_id"`
	Amount               decimal.Decimal `json:"amount"`
	Date                 time.Time       `json:"date"`
	OperationID          *string         `json:"operation_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput(actor string) usecase.TransferInput {
	return usecase.TransferInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		CategoryID:           r.CategoryID,
		Amount:               r.Amount,
		Date:                 r.Date,
		OperationID:          r.OperationID,
		Actor:                actor,
	}
}

// PayInvoiceRequest represents a request to settle a credit card invoice.
type PayInvoiceRequest struct {
	CreditCardAccountID string          `json:"credit_card_account_id"`
	Amount              decimal.Decimal `json:"amount"`
	CompetenceDate      time.Time       `json:"competence_date"`
	OperationID         *string         `json:"operation_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PayInvoiceRequest) ToUseCaseInput(actor string) usecase.PayInvoiceInput {
	return usecase.PayInvoiceInput{
		CreditCardAccountID: r.CreditCardAccountID,
		Amount:              r.Amount,
		CompetenceDate:      r.CompetenceDate,
		OperationID:         r.OperationID,
		Actor:               actor,
	}
}

// CreateRecurrenceTemplateRequest represents a request to create a template.
type CreateRecurrenceTemplateRequest struct {
	AccountID     string          `json:"account_id"`
	CategoryID    string          `json:"category_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	DayOfMonth    int             `json:"day_of_month"`
	DefaultStatus string          `json:"default_status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRecurrenceTemplateRequest) ToUseCaseInput(actor string) usecase.CreateTemplateInput {
	return usecase.CreateTemplateInput{
		AccountID:     r.AccountID,
		CategoryID:    r.CategoryID,
		Type:          domain.TransactionType(r.Type),
		Amount:        r.Amount,
		Description:   r.Description,
		DayOfMonth:    r.DayOfMonth,
		DefaultStatus: domain.TransactionStatus(r.DefaultStatus),
		Actor:         actor,
	}
}
