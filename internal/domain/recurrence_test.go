package domain

import (
	"testing"
	"time"
)

func TestRecurrenceTemplate_ShouldGenerateForMonth(t *testing.T) {
	june := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	lastMay := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		isActive      bool
		lastGenerated *time.Time
		forMonth      time.Time
		want          bool
	}{
		{name: "inactive template never generates", isActive: false, forMonth: june, want: false},
		{name: "never generated", isActive: true, forMonth: june, want: true},
		{name: "generated in earlier month", isActive: true, lastGenerated: &lastMay, forMonth: june, want: true},
		{name: "already generated this month", isActive: true, lastGenerated: &june, forMonth: june, want: false},
		{name: "generated this month, asked for later day", isActive: true, lastGenerated: &june, forMonth: june.AddDate(0, 0, 20), want: false},
		{name: "generated this month, next month due", isActive: true, lastGenerated: &june, forMonth: july, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := &RecurrenceTemplate{IsActive: tt.isActive, LastGeneratedAt: tt.lastGenerated}
			if got := tpl.ShouldGenerateForMonth(tt.forMonth); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRecurrenceTemplate_GeneratesOncePerMonth(t *testing.T) {
	tpl := &RecurrenceTemplate{IsActive: true}

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if !tpl.ShouldGenerateForMonth(d) {
		t.Fatal("expected first generation to be due")
	}

	tpl.MarkGenerated(d, "worker")

	if tpl.ShouldGenerateForMonth(d) {
		t.Error("expected no second generation within the same month")
	}

	next := d.AddDate(0, 1, 0)
	if !tpl.ShouldGenerateForMonth(next) {
		t.Error("expected generation to be due again the following month")
	}

	// December to January crosses a year boundary.
	tpl.MarkGenerated(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), "worker")
	if !tpl.ShouldGenerateForMonth(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected generation to be due in january of the next year")
	}
}

func TestOperationLog_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry := NewOperationLog("op-row-1", "client-key-1", now)

	if !entry.ExpiresAt.Equal(now.Add(OperationLogTTL)) {
		t.Errorf("expected expiry %s, got %s", now.Add(OperationLogTTL), entry.ExpiresAt)
	}

	if entry.IsExpired(now.Add(23 * time.Hour)) {
		t.Error("expected entry to still be live before the TTL")
	}

	if !entry.IsExpired(now.Add(OperationLogTTL)) {
		t.Error("expected entry to be expired at the TTL boundary")
	}
}

func TestFindSystemCategory(t *testing.T) {
	categories := []*Category{
		{ID: "cat-1", Name: "Groceries"},
		{ID: "cat-2", Name: SystemCategoryInvoicePayment, IsSystem: true},
		{ID: "cat-3", Name: SystemCategoryInvoicePayment}, // same name, not system
	}

	got, err := FindSystemCategory(categories, SystemCategoryInvoicePayment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "cat-2" {
		t.Errorf("expected cat-2, got %s", got.ID)
	}

	if _, err := FindSystemCategory(categories[:1], SystemCategoryInvoicePayment); err != ErrSystemCategoryNotFound {
		t.Errorf("expected ErrSystemCategoryNotFound, got %v", err)
	}
}
