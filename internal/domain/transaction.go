package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// TransactionStatus is the lifecycle state of a transaction.
// Valid transitions: pending -> paid, pending -> cancelled, paid -> cancelled.
// Cancelled is terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusPaid      TransactionStatus = "paid"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction represents a single categorized ledger movement.
type Transaction struct {
	ID                    string
	AccountID             string
	CategoryID            string
	Type                  TransactionType
	Amount                decimal.Decimal
	Description           string
	CompetenceDate        time.Time
	DueDate               *time.Time
	Status                TransactionStatus
	IsAdjustment          bool
	OriginalTransactionID *string
	HasAdjustment         bool
	InstallmentGroupID    *string
	InstallmentNumber     int
	TotalInstallments     int
	IsRecurrent           bool
	RecurrenceTemplateID  *string
	TransferGroupID       *string
	CancellationReason    *string
	CancelledBy           *string
	CancelledAt           *time.Time
	OperationID           *string
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedBy             string
	UpdatedAt             time.Time
}

// NewTransactionParams carries the caller-supplied fields for NewTransaction.
type NewTransactionParams struct {
	ID             string
	AccountID      string
	CategoryID     string
	Type           TransactionType
	Amount         decimal.Decimal
	Description    string
	CompetenceDate time.Time
	DueDate        *time.Time
	Status         TransactionStatus
	OperationID    *string
	Actor          string
}

// NewTransaction creates a transaction against the given account.
// Transactions on credit card accounts are always paid, regardless of the
// requested status.
func NewTransaction(account *Account, p NewTransactionParams) (*Transaction, error) {
	if !p.Amount.IsPositive() {
		return nil, ErrInvalidTransactionAmount
	}

	status := p.Status
	if status == "" {
		status = TransactionStatusPending
	}

	if account.Type == AccountTypeCreditCard {
		status = TransactionStatusPaid
	}

	now := time.Now().UTC()

	return &Transaction{
		ID:             p.ID,
		AccountID:      account.ID,
		CategoryID:     p.CategoryID,
		Type:           p.Type,
		Amount:         p.Amount,
		Description:    p.Description,
		CompetenceDate: p.CompetenceDate,
		DueDate:        p.DueDate,
		Status:         status,
		OperationID:    p.OperationID,
		CreatedBy:      p.Actor,
		CreatedAt:      now,
		UpdatedBy:      p.Actor,
		UpdatedAt:      now,
	}, nil
}

// Cancel moves the transaction to cancelled. The transition is one-way and
// not repeatable. Balance reversal is the caller's responsibility, decided
// from the status prior to this call.
func (t *Transaction) Cancel(actor, reason string) error {
	if t.Status == TransactionStatusCancelled {
		return ErrTransactionAlreadyCancelled
	}

	now := time.Now().UTC()
	t.Status = TransactionStatusCancelled
	t.CancelledBy = &actor
	t.CancelledAt = &now
	if reason != "" {
		t.CancellationReason = &reason
	}
	t.UpdatedBy = actor
	t.UpdatedAt = now

	return nil
}

// NewAdjustment creates an adjustment transaction linked to t. Adjustments
// are always paid. The caller must also MarkAdjusted the original.
func (t *Transaction) NewAdjustment(id string, amount decimal.Decimal, description, actor string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidTransactionAmount
	}

	now := time.Now().UTC()
	originalID := t.ID

	return &Transaction{
		ID:                    id,
		AccountID:             t.AccountID,
		CategoryID:            t.CategoryID,
		Type:                  t.Type,
		Amount:                amount,
		Description:           description,
		CompetenceDate:        t.CompetenceDate,
		Status:                TransactionStatusPaid,
		IsAdjustment:          true,
		OriginalTransactionID: &originalID,
		CreatedBy:             actor,
		CreatedAt:             now,
		UpdatedBy:             actor,
		UpdatedAt:             now,
	}, nil
}

// MarkAdjusted flags the transaction as having an adjustment.
func (t *Transaction) MarkAdjusted(actor string) {
	t.HasAdjustment = true
	t.UpdatedBy = actor
	t.UpdatedAt = time.Now().UTC()
}

// SetInstallmentInfo links the transaction to an installment group.
func (t *Transaction) SetInstallmentInfo(groupID string, number, total int) {
	t.InstallmentGroupID = &groupID
	t.InstallmentNumber = number
	t.TotalInstallments = total
}

// SetRecurrenceInfo links the transaction to a recurrence template.
func (t *Transaction) SetRecurrenceInfo(templateID string) {
	t.IsRecurrent = true
	t.RecurrenceTemplateID = &templateID
}

// SetTransferGroup links the transaction to a transfer pair.
func (t *Transaction) SetTransferGroup(groupID string) {
	t.TransferGroupID = &groupID
}

// IsOverdue reports whether a pending transaction is past its due date.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.Status == TransactionStatusPending && t.DueDate != nil && t.DueDate.Before(now)
}
