package domain

// Balance effect of a transaction per (type, transition):
//
//	event                  debit txn      credit txn
//	create as paid         ApplyDebit     ApplyCredit
//	create as pending      none           none
//	cancel a paid txn      RevertDebit    RevertCredit
//	cancel a pending txn   none           none
//	adjustment (paid)      ApplyDebit     ApplyCredit   (adjustment's amount)
//
// Every command handler goes through these two functions; they are the single
// source of truth for how transactions move account balances.

// ApplyTransactionEffect applies the balance effect of creating t (or an
// adjustment) against account. Pending transactions have no effect.
func ApplyTransactionEffect(account *Account, t *Transaction, actor string) error {
	if t.Status != TransactionStatusPaid {
		return nil
	}

	switch t.Type {
	case TransactionTypeDebit:
		return account.ApplyDebit(t.Amount, actor)
	case TransactionTypeCredit:
		account.ApplyCredit(t.Amount, actor)
	}

	return nil
}

// ReverseTransactionEffect reverses the balance effect of t on cancellation,
// based on its status prior to the cancel. Cancelling a pending transaction
// leaves the balance unchanged.
func ReverseTransactionEffect(account *Account, t *Transaction, priorStatus TransactionStatus, actor string) {
	if priorStatus != TransactionStatusPaid {
		return
	}

	switch t.Type {
	case TransactionTypeDebit:
		account.RevertDebit(t.Amount, actor)
	case TransactionTypeCredit:
		account.RevertCredit(t.Amount, actor)
	}
}
