package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSplitInstallments_Amounts(t *testing.T) {
	first := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		total    string
		count    int
		wantBase string
		wantLast string
	}{
		{name: "even split", total: "300.00", count: 3, wantBase: "100", wantLast: "100"},
		{name: "remainder goes to last", total: "100.00", count: 3, wantBase: "33.33", wantLast: "33.34"},
		{name: "two installments with cent remainder", total: "0.03", count: 2, wantBase: "0.01", wantLast: "0.02"},
		{name: "ten installments", total: "999.99", count: 10, wantBase: "99.99", wantLast: "100.08"},
		{name: "single installment", total: "55.55", count: 1, wantBase: "55.55", wantLast: "55.55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)

			installments, err := SplitInstallments(total, tt.count, first, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(installments) != tt.count {
				t.Fatalf("expected %d installments, got %d", tt.count, len(installments))
			}

			sum := decimal.Zero
			for i, inst := range installments {
				sum = sum.Add(inst.Amount)

				if inst.Number != i+1 {
					t.Errorf("installment %d: expected number %d, got %d", i, i+1, inst.Number)
				}

				want := decimal.RequireFromString(tt.wantBase)
				if i == tt.count-1 {
					want = decimal.RequireFromString(tt.wantLast)
				}
				if !inst.Amount.Equal(want) {
					t.Errorf("installment %d: expected amount %s, got %s", i+1, want, inst.Amount)
				}
			}

			// No rounding drift: parts always sum to the exact total.
			if !sum.Equal(total) {
				t.Errorf("expected sum %s, got %s", total, sum)
			}
		})
	}
}

func TestSplitInstallments_Dates(t *testing.T) {
	first := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	installments, err := SplitInstallments(decimal.NewFromInt(400), 4, first, &due)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCompetence := []time.Time{
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), // clamped
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), // clamped
	}

	for i, inst := range installments {
		if !inst.CompetenceDate.Equal(wantCompetence[i]) {
			t.Errorf("installment %d: expected competence %s, got %s", i+1, wantCompetence[i], inst.CompetenceDate)
		}

		wantDue := AddMonths(due, i)
		if inst.DueDate == nil || !inst.DueDate.Equal(wantDue) {
			t.Errorf("installment %d: expected due %s, got %v", i+1, wantDue, inst.DueDate)
		}
	}
}

func TestSplitInstallments_Invalid(t *testing.T) {
	first := time.Now()

	if _, err := SplitInstallments(decimal.Zero, 3, first, nil); err != ErrInvalidTransactionAmount {
		t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
	}

	if _, err := SplitInstallments(decimal.NewFromInt(100), 0, first, nil); err != ErrInvalidInstallmentCount {
		t.Errorf("expected ErrInvalidInstallmentCount, got %v", err)
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "plain month step",
			start:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "jan 31 clamps to feb 28",
			start:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "jan 31 clamps to feb 29 in leap year",
			start:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "year rollover",
			start:  time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.start, tt.months); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
