package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound         = errors.New("account not found")
	ErrInactiveAccount         = errors.New("account is inactive")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrCreditLimitExceeded     = errors.New("credit limit exceeded")
	ErrInvalidCreditCardConfig = errors.New("invalid credit card configuration")
	ErrAccountIsNotCreditCard  = errors.New("account is not a credit card")

	// Transaction errors
	ErrTransactionNotFound         = errors.New("transaction not found")
	ErrInvalidTransactionAmount    = errors.New("transaction amount must be positive")
	ErrTransactionAlreadyCancelled = errors.New("transaction is already cancelled")
	ErrInvalidInstallmentCount     = errors.New("installment count must be at least 1")

	// Transfer errors
	ErrSameAccount            = errors.New("cannot transfer to same account")
	ErrInvalidCompetenceDate  = errors.New("competence date cannot be in the future")
	ErrSystemCategoryNotFound = errors.New("system category not found")

	// Command errors
	ErrDuplicateOperation = errors.New("operation was already executed")

	// Recurrence errors
	ErrRecurrenceTemplateNotFound = errors.New("recurrence template not found")
)
