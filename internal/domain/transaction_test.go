package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransaction(t *testing.T) {
	checking := &Account{ID: "acc-1", Type: AccountTypeChecking, IsActive: true}
	card := &Account{ID: "acc-card", Type: AccountTypeCreditCard, IsActive: true}

	tests := []struct {
		name        string
		account     *Account
		amount      decimal.Decimal
		status      TransactionStatus
		wantStatus  TransactionStatus
		expectError error
	}{
		{
			name:       "pending by default",
			account:    checking,
			amount:     decimal.NewFromInt(50),
			wantStatus: TransactionStatusPending,
		},
		{
			name:       "paid when requested",
			account:    checking,
			amount:     decimal.NewFromInt(50),
			status:     TransactionStatusPaid,
			wantStatus: TransactionStatusPaid,
		},
		{
			name:       "credit card forces paid",
			account:    card,
			amount:     decimal.NewFromInt(50),
			status:     TransactionStatusPending,
			wantStatus: TransactionStatusPaid,
		},
		{
			name:        "zero amount rejected",
			account:     checking,
			amount:      decimal.Zero,
			expectError: ErrInvalidTransactionAmount,
		},
		{
			name:        "negative amount rejected",
			account:     checking,
			amount:      decimal.NewFromInt(-10),
			expectError: ErrInvalidTransactionAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := NewTransaction(tt.account, NewTransactionParams{
				ID:             "txn-1",
				CategoryID:     "cat-1",
				Type:           TransactionTypeDebit,
				Amount:         tt.amount,
				Description:    "groceries",
				CompetenceDate: time.Now(),
				Status:         tt.status,
				Actor:          "tester",
			})

			if tt.expectError != nil {
				if err != tt.expectError {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if txn.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, txn.Status)
			}

			if txn.AccountID != tt.account.ID {
				t.Errorf("expected account %s, got %s", tt.account.ID, txn.AccountID)
			}
		})
	}
}

func TestTransaction_Cancel(t *testing.T) {
	txn := &Transaction{ID: "txn-1", Status: TransactionStatusPaid}

	if err := txn.Cancel("tester", "wrong amount"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Status != TransactionStatusCancelled {
		t.Errorf("expected status cancelled, got %s", txn.Status)
	}

	if txn.CancelledBy == nil || *txn.CancelledBy != "tester" {
		t.Error("expected cancelledBy to be recorded")
	}

	if txn.CancellationReason == nil || *txn.CancellationReason != "wrong amount" {
		t.Error("expected cancellation reason to be recorded")
	}

	// Cancelled is terminal: a second cancel must fail.
	if err := txn.Cancel("tester", ""); err != ErrTransactionAlreadyCancelled {
		t.Errorf("expected ErrTransactionAlreadyCancelled, got %v", err)
	}
}

func TestTransaction_NewAdjustment(t *testing.T) {
	original := &Transaction{
		ID:         "txn-1",
		AccountID:  "acc-1",
		CategoryID: "cat-1",
		Type:       TransactionTypeDebit,
		Amount:     decimal.NewFromInt(100),
		Status:     TransactionStatusPaid,
	}

	adj, err := original.NewAdjustment("txn-2", decimal.NewFromInt(15), "missed tip", "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !adj.IsAdjustment {
		t.Error("expected isAdjustment to be set")
	}

	if adj.Status != TransactionStatusPaid {
		t.Errorf("expected adjustment to be paid, got %s", adj.Status)
	}

	if adj.OriginalTransactionID == nil || *adj.OriginalTransactionID != "txn-1" {
		t.Error("expected adjustment to link to the original transaction")
	}

	if adj.Type != original.Type || adj.AccountID != original.AccountID {
		t.Error("expected adjustment to share type and account with the original")
	}

	original.MarkAdjusted("tester")
	if !original.HasAdjustment {
		t.Error("expected hasAdjustment to be set on the original")
	}

	if _, err := original.NewAdjustment("txn-3", decimal.Zero, "", "tester"); err != ErrInvalidTransactionAmount {
		t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
	}
}

func TestTransaction_Setters(t *testing.T) {
	txn := &Transaction{ID: "txn-1"}

	txn.SetInstallmentInfo("grp-1", 2, 6)
	if txn.InstallmentGroupID == nil || *txn.InstallmentGroupID != "grp-1" || txn.InstallmentNumber != 2 || txn.TotalInstallments != 6 {
		t.Error("installment info not set")
	}

	txn.SetRecurrenceInfo("tpl-1")
	if !txn.IsRecurrent || txn.RecurrenceTemplateID == nil || *txn.RecurrenceTemplateID != "tpl-1" {
		t.Error("recurrence info not set")
	}

	txn.SetTransferGroup("tg-1")
	if txn.TransferGroupID == nil || *txn.TransferGroupID != "tg-1" {
		t.Error("transfer group not set")
	}
}

func TestTransaction_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		status  TransactionStatus
		dueDate *time.Time
		want    bool
	}{
		{name: "pending past due", status: TransactionStatusPending, dueDate: &past, want: true},
		{name: "pending not yet due", status: TransactionStatusPending, dueDate: &future, want: false},
		{name: "pending without due date", status: TransactionStatusPending, want: false},
		{name: "paid past due", status: TransactionStatusPaid, dueDate: &past, want: false},
		{name: "cancelled past due", status: TransactionStatusCancelled, dueDate: &past, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &Transaction{Status: tt.status, DueDate: tt.dueDate}
			if got := txn.IsOverdue(now); got != tt.want {
				t.Errorf("expected IsOverdue=%v, got %v", tt.want, got)
			}
		})
	}
}
