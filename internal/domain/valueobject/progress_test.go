package valueobject

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewBudgetProgress(t *testing.T) {
	t.Run("pct is spent over effective limit", func(t *testing.T) {
		p := NewBudgetProgress(95000, 100000)
		if p.Pct == nil {
			t.Fatal("expected pct to be defined")
		}
		if !p.Pct.Equal(decimal.NewFromInt(95)) {
			t.Errorf("expected 95%%, got %s", p.Pct)
		}
	})

	t.Run("zero effective limit leaves pct undefined", func(t *testing.T) {
		p := NewBudgetProgress(5000, 0)
		if p.Pct != nil {
			t.Errorf("expected nil pct, got %s", p.Pct)
		}
		if p.Level() != AlertNone {
			t.Error("expected no alert for undefined pct")
		}
	})
}

func TestAlertLevel(t *testing.T) {
	cases := []struct {
		name  string
		spent int64
		limit int64
		want  AlertLevel
	}{
		{"below warning", 79999, 100000, AlertNone},
		{"at warning threshold", 80000, 100000, AlertWarning},
		{"inside warning band", 95000, 100000, AlertWarning},
		{"just below exceeded", 99999, 100000, AlertWarning},
		{"at limit", 100000, 100000, AlertExceeded},
		{"over limit", 150000, 100000, AlertExceeded},
		{"nothing spent", 0, 100000, AlertNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewBudgetProgress(tc.spent, tc.limit).Level(); got != tc.want {
				t.Errorf("spent=%d limit=%d: expected level %d, got %d", tc.spent, tc.limit, tc.want, got)
			}
		})
	}
}

func TestComparePeriods(t *testing.T) {
	current := PeriodTotals{
		Total:      12000,
		ByCategory: map[string]int64{"Food": 8000, "Transit": 4000},
	}
	previous := PeriodTotals{
		Total:      10000,
		ByCategory: map[string]int64{"Food": 10000},
	}

	report := ComparePeriods(current, previous)

	t.Run("overall diff and pct", func(t *testing.T) {
		if report.Total.Diff != 2000 {
			t.Errorf("expected diff 2000, got %d", report.Total.Diff)
		}
		if report.Total.Pct == nil || !report.Total.Pct.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected 20%%, got %v", report.Total.Pct)
		}
	})

	t.Run("category union covers both periods", func(t *testing.T) {
		if len(report.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(report.Categories))
		}
		food := report.Categories["Food"]
		if food.Diff != -2000 {
			t.Errorf("expected Food diff -2000, got %d", food.Diff)
		}
		transit := report.Categories["Transit"]
		if transit.Previous != 0 || transit.Diff != 4000 {
			t.Errorf("expected Transit to appear with previous 0, got %+v", transit)
		}
	})

	t.Run("pct is nil when previous is zero", func(t *testing.T) {
		if report.Categories["Transit"].Pct != nil {
			t.Error("expected nil pct for category absent from previous period")
		}
	})
}

func TestPeriodWindows(t *testing.T) {
	t.Run("month window is half open", func(t *testing.T) {
		w := MonthWindow(2026, time.February)
		if !w.Contains(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected first day inside window")
		}
		if !w.Contains(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected last day inside window")
		}
		if w.Contains(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected next month outside window")
		}
	})

	t.Run("previous month crosses year boundary", func(t *testing.T) {
		y, m := PreviousMonth(2026, time.January)
		if y != 2025 || m != time.December {
			t.Errorf("expected 2025-12, got %d-%d", y, m)
		}
	})

	t.Run("week key is stable within an ISO week", func(t *testing.T) {
		monday := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
		sunday := monday.AddDate(0, 0, 6)
		if WeekKey(monday) != WeekKey(sunday) {
			t.Errorf("expected same key, got %s and %s", WeekKey(monday), WeekKey(sunday))
		}
		if WeekKey(monday) == WeekKey(monday.AddDate(0, 0, 7)) {
			t.Error("expected different key for next week")
		}
	})
}
