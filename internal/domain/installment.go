package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one dated part of a split purchase.
type Installment struct {
	Number         int
	Amount         decimal.Decimal
	CompetenceDate time.Time
	DueDate        *time.Time
}

// SplitInstallments splits total into count dated installments.
//
// Each installment gets the total floored at the currency minor unit
// (floor(total*100/count)/100); the rounding remainder is added to the LAST
// installment so the parts always sum to exactly total. Dates advance by
// calendar months from the first date, clamping the day when the target
// month is shorter.
func SplitInstallments(total decimal.Decimal, count int, firstCompetence time.Time, firstDue *time.Time) ([]Installment, error) {
	if !total.IsPositive() {
		return nil, ErrInvalidTransactionAmount
	}

	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}

	countDec := decimal.NewFromInt(int64(count))
	base := total.Shift(2).Div(countDec).Floor().Shift(-2)
	last := total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	installments := make([]Installment, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}

		inst := Installment{
			Number:         i + 1,
			Amount:         amount,
			CompetenceDate: AddMonths(firstCompetence, i),
		}

		if firstDue != nil {
			due := AddMonths(*firstDue, i)
			inst.DueDate = &due
		}

		installments = append(installments, inst)
	}

	return installments, nil
}

// AddMonths advances t by the given number of calendar months, preserving the
// day of month where the target month supports it and clamping to the last
// day otherwise (Jan 31 + 1 month = Feb 28/29, not Mar 2/3).
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	hour, min, sec := t.Clock()

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}
