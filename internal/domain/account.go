package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeWallet     AccountType = "wallet"
)

// CreditCardDetails holds the credit card configuration of an account.
// Present if and only if the account type is credit_card.
type CreditCardDetails struct {
	CreditLimit        decimal.Decimal
	ClosingDay         int
	DueDay             int
	DebitAccountID     string
	EnforceCreditLimit bool
}

// Account represents a finance account that holds a balance.
// A positive balance is funds owned (or credit in favor on a card);
// a negative balance is an amount owed.
type Account struct {
	ID                   string
	Name                 string
	Type                 AccountType
	Balance              decimal.Decimal
	AllowNegativeBalance bool
	IsActive             bool
	CreditCard           *CreditCardDetails
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedBy            string
	UpdatedAt            time.Time
}

// ApplyDebit decreases the balance by amount, enforcing the negative-balance
// rule and, for cards, the credit limit evaluated before the debit.
func (a *Account) ApplyDebit(amount decimal.Decimal, actor string) error {
	newBalance := a.Balance.Sub(amount)
	if newBalance.IsNegative() && !a.AllowNegativeBalance {
		return ErrInsufficientBalance
	}

	if err := a.ValidateCreditLimit(amount); err != nil {
		return err
	}

	a.Balance = newBalance
	a.touch(actor)

	return nil
}

// ApplyCredit increases the balance by amount. Unconditional.
func (a *Account) ApplyCredit(amount decimal.Decimal, actor string) {
	a.Balance = a.Balance.Add(amount)
	a.touch(actor)
}

// RevertDebit undoes a previously applied debit. It is used only when
// reversing the effect of a paid transaction and is never re-validated.
func (a *Account) RevertDebit(amount decimal.Decimal, actor string) {
	a.Balance = a.Balance.Add(amount)
	a.touch(actor)
}

// RevertCredit undoes a previously applied credit.
func (a *Account) RevertCredit(amount decimal.Decimal, actor string) {
	a.Balance = a.Balance.Sub(amount)
	a.touch(actor)
}

// ValidateCanReceiveTransaction checks the account accepts new transactions.
func (a *Account) ValidateCanReceiveTransaction() error {
	if !a.IsActive {
		return ErrInactiveAccount
	}

	return nil
}

// ValidateCreditLimit checks a debit of amount against the available limit
// without mutating state. No-op unless the card enforces its limit.
func (a *Account) ValidateCreditLimit(amount decimal.Decimal) error {
	if a.CreditCard == nil || !a.CreditCard.EnforceCreditLimit {
		return nil
	}

	if amount.GreaterThan(a.AvailableLimit()) {
		return ErrCreditLimitExceeded
	}

	return nil
}

// AvailableLimit returns creditLimit - |balance|, or zero for non-cards.
// The absolute value also covers a card already in credit in favor.
func (a *Account) AvailableLimit() decimal.Decimal {
	if a.CreditCard == nil {
		return decimal.Zero
	}

	return a.CreditCard.CreditLimit.Sub(a.Balance.Abs())
}

// CreateCreditCard attaches a validated credit card configuration.
// The account must already be of type credit_card.
func (a *Account) CreateCreditCard(details CreditCardDetails, actor string) error {
	if a.Type != AccountTypeCreditCard {
		return ErrInvalidCreditCardConfig
	}

	if err := validateCreditCardDetails(details); err != nil {
		return err
	}

	a.CreditCard = &details
	a.touch(actor)

	return nil
}

// UpdateCreditCard replaces the credit card configuration of a card account.
func (a *Account) UpdateCreditCard(details CreditCardDetails, actor string) error {
	if a.Type != AccountTypeCreditCard || a.CreditCard == nil {
		return ErrInvalidCreditCardConfig
	}

	if err := validateCreditCardDetails(details); err != nil {
		return err
	}

	a.CreditCard = &details
	a.touch(actor)

	return nil
}

func validateCreditCardDetails(d CreditCardDetails) error {
	if !d.CreditLimit.IsPositive() {
		return ErrInvalidCreditCardConfig
	}

	if d.ClosingDay < 1 || d.ClosingDay > 28 || d.DueDay < 1 || d.DueDay > 28 {
		return ErrInvalidCreditCardConfig
	}

	if d.DebitAccountID == "" {
		return ErrInvalidCreditCardConfig
	}

	return nil
}

func (a *Account) touch(actor string) {
	a.UpdatedBy = actor
	a.UpdatedAt = time.Now().UTC()
}
