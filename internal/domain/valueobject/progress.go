// Package valueobject contains domain value objects for the Expense Bot core.
package valueobject

import "github.com/shopspring/decimal"

// BudgetProgress is the spent-vs-limit position of one budget for one period.
// Pct is nil when the effective limit is zero; it is never a division by zero.
type BudgetProgress struct {
	Spent          int64 // minor units
	EffectiveLimit int64 // minor units, after rollover carry-forward
	Pct            *decimal.Decimal
}

// NewBudgetProgress computes the progress for a spent/limit pair.
func NewBudgetProgress(spent, effectiveLimit int64) BudgetProgress {
	p := BudgetProgress{Spent: spent, EffectiveLimit: effectiveLimit}
	if effectiveLimit > 0 {
		pct := decimal.NewFromInt(spent).
			Div(decimal.NewFromInt(effectiveLimit)).
			Mul(decimal.NewFromInt(100))
		p.Pct = &pct
	}
	return p
}

// AlertLevel classifies a progress position against the alert thresholds.
type AlertLevel int

const (
	// AlertNone means pct is undefined or below the warning threshold.
	AlertNone AlertLevel = iota
	// AlertWarning means 80% <= pct < 100%.
	AlertWarning
	// AlertExceeded means pct >= 100%.
	AlertExceeded
)

var (
	warningThreshold  = decimal.NewFromInt(80)
	exceededThreshold = decimal.NewFromInt(100)
)

// Level returns the alert classification for this progress.
func (p BudgetProgress) Level() AlertLevel {
	if p.Pct == nil {
		return AlertNone
	}
	switch {
	case p.Pct.GreaterThanOrEqual(exceededThreshold):
		return AlertExceeded
	case p.Pct.GreaterThanOrEqual(warningThreshold):
		return AlertWarning
	default:
		return AlertNone
	}
}

// PeriodTotals is the aggregate spend for one period: the overall total plus
// a per-category breakdown, both in minor units.
type PeriodTotals struct {
	Total      int64
	ByCategory map[string]int64
}

// PeriodDiff is the change of one line between two periods. Pct is nil when
// the previous value is zero.
type PeriodDiff struct {
	Current  int64
	Previous int64
	Diff     int64
	Pct      *decimal.Decimal
}

// PeriodComparison is the diff report between two periods: the overall line
// plus one line per category appearing in either period.
type PeriodComparison struct {
	Total      PeriodDiff
	Categories map[string]PeriodDiff
}

// NewPeriodDiff computes a single diff line.
func NewPeriodDiff(current, previous int64) PeriodDiff {
	d := PeriodDiff{Current: current, Previous: previous, Diff: current - previous}
	if previous > 0 {
		pct := decimal.NewFromInt(d.Diff).
			Div(decimal.NewFromInt(previous)).
			Mul(decimal.NewFromInt(100))
		d.Pct = &pct
	}
	return d
}

// ComparePeriods builds the diff report for two period totals. Pure; no I/O.
func ComparePeriods(current, previous PeriodTotals) PeriodComparison {
	comparison := PeriodComparison{
		Total:      NewPeriodDiff(current.Total, previous.Total),
		Categories: make(map[string]PeriodDiff),
	}

	for cat := range current.ByCategory {
		comparison.Categories[cat] = NewPeriodDiff(current.ByCategory[cat], previous.ByCategory[cat])
	}
	for cat := range previous.ByCategory {
		if _, seen := comparison.Categories[cat]; !seen {
			comparison.Categories[cat] = NewPeriodDiff(current.ByCategory[cat], previous.ByCategory[cat])
		}
	}

	return comparison
}
