// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Frequency identifies how often a recurring rule fires. It is the wire/db
// representation; in-memory scheduling always goes through the Schedule
// variant so call sites cannot fall through a default branch.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule is a closed variant over the recurrence frequencies. The three
// implementations are the only ones; a type switch over them is exhaustive.
type Schedule interface {
	// Frequency returns the wire representation of the schedule.
	Frequency() Frequency
	// DueOn reports whether the schedule fires on the given calendar date.
	// Lifecycle flags (active/paused) are checked by the rule, not here.
	DueOn(today time.Time) bool

	sealed()
}

// DailySchedule fires every day.
type DailySchedule struct{}

// WeeklySchedule fires on one weekday. A nil anchor is a defensive default
// that makes the schedule fire on any weekday; creation always sets one.
type WeeklySchedule struct {
	Day *time.Weekday
}

// MonthlySchedule fires on one day of the month (1-31). Months shorter than
// the anchor day never fire that month; the anchor is matched exactly, not
// clamped to the month end. A nil anchor fires on any day.
type MonthlySchedule struct {
	Day *int
}

func (DailySchedule) Frequency() Frequency   { return FrequencyDaily }
func (WeeklySchedule) Frequency() Frequency  { return FrequencyWeekly }
func (MonthlySchedule) Frequency() Frequency { return FrequencyMonthly }

func (DailySchedule) DueOn(_ time.Time) bool { return true }

func (s WeeklySchedule) DueOn(today time.Time) bool {
	if s.Day == nil {
		return true
	}
	return today.Weekday() == *s.Day
}

func (s MonthlySchedule) DueOn(today time.Time) bool {
	if s.Day == nil {
		return true
	}
	return today.Day() == *s.Day
}

func (DailySchedule) sealed()   {}
func (WeeklySchedule) sealed()  {}
func (MonthlySchedule) sealed() {}

// NewSchedule builds a Schedule from its wire representation. Weekly and
// monthly anchors default to the given creation date when unset, anchoring
// the rule to "today" unless the caller overrides it.
func NewSchedule(freq Frequency, dayOfWeek *time.Weekday, dayOfMonth *int, today time.Time) (Schedule, bool) {
	switch freq {
	case FrequencyDaily:
		return DailySchedule{}, true
	case FrequencyWeekly:
		if dayOfWeek == nil {
			d := today.Weekday()
			dayOfWeek = &d
		}
		return WeeklySchedule{Day: dayOfWeek}, true
	case FrequencyMonthly:
		if dayOfMonth == nil {
			d := today.Day()
			dayOfMonth = &d
		}
		return MonthlySchedule{Day: dayOfMonth}, true
	default:
		return nil, false
	}
}

// Template holds the transaction fields a recurring rule copies into every
// generated transaction.
type Template struct {
	Label    string
	Amount   int64 // minor units
	Currency string
	Category string
	Tags     string
	Note     string
}

// RecurringRule is a template plus schedule that periodically materializes a
// new transaction. Rules are never hard-deleted: cancellation and repetition
// exhaustion both land in the terminal !Active state.
type RecurringRule struct {
	ID        uuid.UUID
	AccountID int64
	Template  Template
	Schedule  Schedule
	// RepeatCount is the originally requested number of repetitions;
	// Remaining counts down on successful generation. nil means infinite.
	RepeatCount *int
	Remaining   *int
	Active      bool
	Paused      bool
	CreatedAt   time.Time
}

// NewRecurringRule creates an active, unpaused rule.
func NewRecurringRule(accountID int64, tmpl Template, schedule Schedule, repeatCount *int) *RecurringRule {
	var remaining *int
	if repeatCount != nil {
		r := *repeatCount
		remaining = &r
	}
	return &RecurringRule{
		ID:          uuid.New(),
		AccountID:   accountID,
		Template:    tmpl,
		Schedule:    schedule,
		RepeatCount: repeatCount,
		Remaining:   remaining,
		Active:      true,
		Paused:      false,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsDue reports whether the rule should generate a transaction on the given
// account-local date. Suspended and terminal rules are never due.
func (r *RecurringRule) IsDue(today time.Time) bool {
	if !r.Active || r.Paused {
		return false
	}
	return r.Schedule.DueOn(today)
}

// Pause suspends generation. Returns false if the rule is terminal.
func (r *RecurringRule) Pause() bool {
	if !r.Active {
		return false
	}
	r.Paused = true
	return true
}

// Resume lifts a suspension. Returns false if the rule is terminal.
func (r *RecurringRule) Resume() bool {
	if !r.Active {
		return false
	}
	r.Paused = false
	return true
}

// Cancel moves the rule to its terminal state. Cancellation is permanent.
func (r *RecurringRule) Cancel() {
	r.Active = false
}

// RecordGeneration counts down a finite repetition after a successful
// generation, moving the rule to terminal when the countdown reaches zero.
// Infinite rules are untouched.
func (r *RecurringRule) RecordGeneration() {
	if r.Remaining == nil {
		return
	}
	if *r.Remaining > 0 {
		*r.Remaining--
	}
	if *r.Remaining == 0 {
		r.Active = false
	}
}

// MaterializeOn builds the transaction this rule generates for the given
// account-local date, carrying the back-reference to the rule.
func (r *RecurringRule) MaterializeOn(localDate time.Time) *Transaction {
	tx := NewTransaction(r.AccountID, r.Template.Label, r.Template.Amount, r.Template.Currency, localDate)
	tx.Category = r.Template.Category
	tx.Tags = r.Template.Tags
	tx.Note = r.Template.Note
	ruleID := r.ID
	tx.RecurringRuleID = &ruleID
	return tx
}
