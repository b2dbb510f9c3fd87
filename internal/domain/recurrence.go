package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceTemplate describes a monthly recurring charge. A scheduled job
// materializes one transaction per template per calendar month; the template
// itself only carries the generation gate that keeps that job idempotent.
type RecurrenceTemplate struct {
	ID              string
	AccountID       string
	CategoryID      string
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	DayOfMonth      int
	DefaultStatus   TransactionStatus
	IsActive        bool
	LastGeneratedAt *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedBy       string
	UpdatedAt       time.Time
}

// ShouldGenerateForMonth reports whether the template still needs a
// transaction for d's calendar month. True only while active and the last
// generation happened in an earlier (year, month).
func (r *RecurrenceTemplate) ShouldGenerateForMonth(d time.Time) bool {
	if !r.IsActive {
		return false
	}

	if r.LastGeneratedAt == nil {
		return true
	}

	return monthIndex(*r.LastGeneratedAt) < monthIndex(d)
}

// MarkGenerated records d as the last generated date. It is the only mutator
// of that field.
func (r *RecurrenceTemplate) MarkGenerated(d time.Time, actor string) {
	r.LastGeneratedAt = &d
	r.UpdatedBy = actor
	r.UpdatedAt = time.Now().UTC()
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}
