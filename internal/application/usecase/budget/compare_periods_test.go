package budget

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComparePeriods(t *testing.T) {
	ctx := context.Background()

	t.Run("diffs the month against the one before", func(t *testing.T) {
		ledger := &fakeLedger{sums: map[string]int64{
			monthKey(2026, time.March, ""):    12000,
			monthKey(2026, time.February, ""): 10000,
		}}

		out, err := NewComparePeriodsUseCase(ledger).Execute(ctx, ComparePeriodsInput{
			AccountID: 42,
			Year:      2026,
			Month:     time.March,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		total := out.Comparison.Total
		if total.Current != 12000 || total.Previous != 10000 || total.Diff != 2000 {
			t.Errorf("unexpected total diff: %+v", total)
		}
		if total.Pct == nil || !total.Pct.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected +20%%, got %v", total.Pct)
		}
	})

	t.Run("january compares against last december", func(t *testing.T) {
		ledger := &fakeLedger{sums: map[string]int64{
			monthKey(2026, time.January, ""):  5000,
			monthKey(2025, time.December, ""): 20000,
		}}

		out, err := NewComparePeriodsUseCase(ledger).Execute(ctx, ComparePeriodsInput{
			AccountID: 42,
			Year:      2026,
			Month:     time.January,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Comparison.Total.Previous != 20000 {
			t.Errorf("expected previous total 20000, got %d", out.Comparison.Total.Previous)
		}
	})

	t.Run("empty previous period leaves pct undefined", func(t *testing.T) {
		ledger := &fakeLedger{sums: map[string]int64{
			monthKey(2026, time.March, ""): 12000,
		}}

		out, err := NewComparePeriodsUseCase(ledger).Execute(ctx, ComparePeriodsInput{
			AccountID: 42,
			Year:      2026,
			Month:     time.March,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Comparison.Total.Pct != nil {
			t.Errorf("expected nil pct against an empty month, got %s", out.Comparison.Total.Pct)
		}
		if out.Comparison.Total.Diff != 12000 {
			t.Errorf("expected diff 12000, got %d", out.Comparison.Total.Diff)
		}
	})
}
