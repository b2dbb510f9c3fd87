package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestApplyTransactionEffect(t *testing.T) {
	tests := []struct {
		name        string
		txnType     TransactionType
		status      TransactionStatus
		wantBalance decimal.Decimal
	}{
		{
			name:        "paid debit moves balance down",
			txnType:     TransactionTypeDebit,
			status:      TransactionStatusPaid,
			wantBalance: decimal.NewFromInt(70),
		},
		{
			name:        "paid credit moves balance up",
			txnType:     TransactionTypeCredit,
			status:      TransactionStatusPaid,
			wantBalance: decimal.NewFromInt(130),
		},
		{
			name:        "pending debit has no effect",
			txnType:     TransactionTypeDebit,
			status:      TransactionStatusPending,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "pending credit has no effect",
			txnType:     TransactionTypeCredit,
			status:      TransactionStatusPending,
			wantBalance: decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.NewFromInt(100), IsActive: true}
			txn := &Transaction{Type: tt.txnType, Status: tt.status, Amount: decimal.NewFromInt(30)}

			if err := ApplyTransactionEffect(acc, txn, "tester"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !acc.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestApplyTransactionEffect_InsufficientBalance(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(20), IsActive: true}
	txn := &Transaction{Type: TransactionTypeDebit, Status: TransactionStatusPaid, Amount: decimal.NewFromInt(30)}

	if err := ApplyTransactionEffect(acc, txn, "tester"); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if !acc.Balance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected balance unchanged at 20, got %s", acc.Balance)
	}
}

func TestReverseTransactionEffect(t *testing.T) {
	tests := []struct {
		name        string
		txnType     TransactionType
		priorStatus TransactionStatus
		wantBalance decimal.Decimal
	}{
		{
			name:        "cancelling a paid debit restores the amount",
			txnType:     TransactionTypeDebit,
			priorStatus: TransactionStatusPaid,
			wantBalance: decimal.NewFromInt(130),
		},
		{
			name:        "cancelling a paid credit removes the amount",
			txnType:     TransactionTypeCredit,
			priorStatus: TransactionStatusPaid,
			wantBalance: decimal.NewFromInt(70),
		},
		{
			name:        "cancelling a pending debit leaves balance unchanged",
			txnType:     TransactionTypeDebit,
			priorStatus: TransactionStatusPending,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "cancelling a pending credit leaves balance unchanged",
			txnType:     TransactionTypeCredit,
			priorStatus: TransactionStatusPending,
			wantBalance: decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.NewFromInt(100), IsActive: true}
			txn := &Transaction{Type: tt.txnType, Status: TransactionStatusCancelled, Amount: decimal.NewFromInt(30)}

			ReverseTransactionEffect(acc, txn, tt.priorStatus, "tester")

			if !acc.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestAdjustmentEffectAddsToOriginal(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(200), IsActive: true}

	original := &Transaction{ID: "txn-1", Type: TransactionTypeDebit, Status: TransactionStatusPaid, Amount: decimal.NewFromInt(50)}
	if err := ApplyTransactionEffect(acc, original, "tester"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adj, err := original.NewAdjustment("txn-2", decimal.NewFromInt(10), "tip", "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ApplyTransactionEffect(acc, adj, "tester"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Original effect and adjustment effect are both applied.
	if !acc.Balance.Equal(decimal.NewFromInt(140)) {
		t.Errorf("expected balance 140, got %s", acc.Balance)
	}
}
