package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ApplyDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		allowNeg    bool
		card        *CreditCardDetails
		expectError error
		wantBalance decimal.Decimal
	}{
		{
			name:        "debit within balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(30),
			wantBalance: decimal.NewFromInt(70),
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(100),
			wantBalance: decimal.Zero,
		},
		{
			name:        "debit beyond balance without allowance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(150),
			expectError: ErrInsufficientBalance,
			wantBalance: decimal.NewFromInt(100),
		},
		{
			name:        "debit beyond balance with allowance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(150),
			allowNeg:    true,
			wantBalance: decimal.NewFromInt(-50),
		},
		{
			name:     "card debit within available limit",
			balance:  decimal.NewFromInt(-400),
			amount:   decimal.NewFromInt(500),
			allowNeg: true,
			card: &CreditCardDetails{
				CreditLimit:        decimal.NewFromInt(1000),
				ClosingDay:         5,
				DueDay:             15,
				DebitAccountID:     "acc-debit",
				EnforceCreditLimit: true,
			},
			wantBalance: decimal.NewFromInt(-900),
		},
		{
			name:     "card debit exceeding available limit",
			balance:  decimal.NewFromInt(-400),
			amount:   decimal.NewFromInt(700),
			allowNeg: true,
			card: &CreditCardDetails{
				CreditLimit:        decimal.NewFromInt(1000),
				ClosingDay:         5,
				DueDay:             15,
				DebitAccountID:     "acc-debit",
				EnforceCreditLimit: true,
			},
			expectError: ErrCreditLimitExceeded,
			wantBalance: decimal.NewFromInt(-400),
		},
		{
			name:     "card in credit in favor still limited by abs balance",
			balance:  decimal.NewFromInt(200),
			amount:   decimal.NewFromInt(900),
			allowNeg: true,
			card: &CreditCardDetails{
				CreditLimit:        decimal.NewFromInt(1000),
				ClosingDay:         5,
				DueDay:             15,
				DebitAccountID:     "acc-debit",
				EnforceCreditLimit: true,
			},
			expectError: ErrCreditLimitExceeded,
			wantBalance: decimal.NewFromInt(200),
		},
		{
			name:     "card without limit enforcement",
			balance:  decimal.NewFromInt(-400),
			amount:   decimal.NewFromInt(5000),
			allowNeg: true,
			card: &CreditCardDetails{
				CreditLimit:        decimal.NewFromInt(1000),
				ClosingDay:         5,
				DueDay:             15,
				DebitAccountID:     "acc-debit",
				EnforceCreditLimit: false,
			},
			wantBalance: decimal.NewFromInt(-5400),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{
				Type:                 AccountTypeChecking,
				Balance:              tt.balance,
				AllowNegativeBalance: tt.allowNeg,
				IsActive:             true,
				CreditCard:           tt.card,
			}
			if tt.card != nil {
				acc.Type = AccountTypeCreditCard
			}

			err := acc.ApplyDebit(tt.amount, "tester")

			if tt.expectError != nil {
				if err != tt.expectError {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !acc.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestAccount_DebitThenRevertRestoresBalance(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(250), IsActive: true}
	amount := decimal.RequireFromString("99.37")

	if err := acc.ApplyDebit(amount, "tester"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acc.RevertDebit(amount, "tester")

	if !acc.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected balance restored to 250, got %s", acc.Balance)
	}
}

func TestAccount_ApplyCreditAndRevert(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	acc.ApplyCredit(decimal.NewFromInt(30), "tester")
	if !acc.Balance.Equal(decimal.NewFromInt(130)) {
		t.Errorf("expected balance 130, got %s", acc.Balance)
	}

	acc.RevertCredit(decimal.NewFromInt(30), "tester")
	if !acc.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100, got %s", acc.Balance)
	}
}

func TestAccount_ValidateCanReceiveTransaction(t *testing.T) {
	active := &Account{IsActive: true}
	if err := active.ValidateCanReceiveTransaction(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	inactive := &Account{IsActive: false}
	if err := inactive.ValidateCanReceiveTransaction(); err != ErrInactiveAccount {
		t.Errorf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestAccount_AvailableLimit(t *testing.T) {
	checking := &Account{Type: AccountTypeChecking, Balance: decimal.NewFromInt(500)}
	if !checking.AvailableLimit().Equal(decimal.Zero) {
		t.Errorf("expected zero available limit for non-card, got %s", checking.AvailableLimit())
	}

	card := &Account{
		Type:    AccountTypeCreditCard,
		Balance: decimal.NewFromInt(-300),
		CreditCard: &CreditCardDetails{
			CreditLimit:    decimal.NewFromInt(1000),
			ClosingDay:     5,
			DueDay:         15,
			DebitAccountID: "acc-debit",
		},
	}
	if !card.AvailableLimit().Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected available limit 700, got %s", card.AvailableLimit())
	}
}

func TestAccount_CreateCreditCard(t *testing.T) {
	valid := CreditCardDetails{
		CreditLimit:    decimal.NewFromInt(1000),
		ClosingDay:     5,
		DueDay:         15,
		DebitAccountID: "acc-debit",
	}

	tests := []struct {
		name        string
		accountType AccountType
		details     CreditCardDetails
		expectError bool
	}{
		{
			name:        "valid configuration",
			accountType: AccountTypeCreditCard,
			details:     valid,
		},
		{
			name:        "non-card account",
			accountType: AccountTypeChecking,
			details:     valid,
			expectError: true,
		},
		{
			name:        "non-positive limit",
			accountType: AccountTypeCreditCard,
			details: CreditCardDetails{
				CreditLimit:    decimal.Zero,
				ClosingDay:     5,
				DueDay:         15,
				DebitAccountID: "acc-debit",
			},
			expectError: true,
		},
		{
			name:        "closing day out of range",
			accountType: AccountTypeCreditCard,
			details: CreditCardDetails{
				CreditLimit:    decimal.NewFromInt(1000),
				ClosingDay:     29,
				DueDay:         15,
				DebitAccountID: "acc-debit",
			},
			expectError: true,
		},
		{
			name:        "missing debit account",
			accountType: AccountTypeCreditCard,
			details: CreditCardDetails{
				CreditLimit: decimal.NewFromInt(1000),
				ClosingDay:  5,
				DueDay:      15,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Type: tt.accountType, IsActive: true}

			err := acc.CreateCreditCard(tt.details, "tester")

			if tt.expectError {
				if err != ErrInvalidCreditCardConfig {
					t.Fatalf("expected ErrInvalidCreditCardConfig, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if acc.CreditCard == nil {
				t.Fatal("expected credit card details to be attached")
			}
		})
	}
}

func TestAccount_UpdateCreditCardOnNonCard(t *testing.T) {
	acc := &Account{Type: AccountTypeChecking, IsActive: true}

	err := acc.UpdateCreditCard(CreditCardDetails{
		CreditLimit:    decimal.NewFromInt(1000),
		ClosingDay:     5,
		DueDay:         15,
		DebitAccountID: "acc-debit",
	}, "tester")

	if err != ErrInvalidCreditCardConfig {
		t.Errorf("expected ErrInvalidCreditCardConfig, got %v", err)
	}
}
