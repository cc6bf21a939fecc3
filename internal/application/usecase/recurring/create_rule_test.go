package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

func TestCreateRule(t *testing.T) {
	ctx := context.Background()

	newUseCase := func(today time.Time) (*CreateRuleUseCase, *fakeRuleRepo) {
		rules := &fakeRuleRepo{}
		return NewCreateRuleUseCase(rules, &fakeAccounts{}, &fixedClock{today: today}), rules
	}

	t.Run("weekly anchor defaults to the creation weekday", func(t *testing.T) {
		uc, _ := newUseCase(date(2026, time.January, 14)) // a Wednesday
		out, err := uc.Execute(ctx, CreateRuleInput{
			AccountID: 42,
			Label:     "gym",
			Amount:    9900,
			Currency:  "USD",
			Frequency: entity.FrequencyWeekly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		schedule, ok := out.Rule.Schedule.(entity.WeeklySchedule)
		if !ok {
			t.Fatalf("expected weekly schedule, got %T", out.Rule.Schedule)
		}
		if schedule.Day == nil || *schedule.Day != time.Wednesday {
			t.Errorf("expected Wednesday anchor, got %v", schedule.Day)
		}
	})

	t.Run("monthly anchor defaults to the creation day", func(t *testing.T) {
		uc, _ := newUseCase(date(2026, time.January, 28))
		out, err := uc.Execute(ctx, CreateRuleInput{
			AccountID: 42,
			Label:     "rent",
			Amount:    120000,
			Currency:  "USD",
			Frequency: entity.FrequencyMonthly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		schedule, ok := out.Rule.Schedule.(entity.MonthlySchedule)
		if !ok {
			t.Fatalf("expected monthly schedule, got %T", out.Rule.Schedule)
		}
		if schedule.Day == nil || *schedule.Day != 28 {
			t.Errorf("expected day-28 anchor, got %v", schedule.Day)
		}
	})

	t.Run("explicit anchor wins over the default", func(t *testing.T) {
		uc, _ := newUseCase(date(2026, time.January, 28))
		anchor := 1
		out, err := uc.Execute(ctx, CreateRuleInput{
			AccountID:  42,
			Label:      "rent",
			Amount:     120000,
			Currency:   "USD",
			Frequency:  entity.FrequencyMonthly,
			DayOfMonth: &anchor,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		schedule := out.Rule.Schedule.(entity.MonthlySchedule)
		if *schedule.Day != 1 {
			t.Errorf("expected day-1 anchor, got %d", *schedule.Day)
		}
	})

	t.Run("finite repeat count seeds the countdown", func(t *testing.T) {
		uc, _ := newUseCase(date(2026, time.January, 1))
		repeat := 6
		out, err := uc.Execute(ctx, CreateRuleInput{
			AccountID:   42,
			Label:       "installment",
			Amount:      5000,
			Currency:    "USD",
			Frequency:   entity.FrequencyMonthly,
			RepeatCount: &repeat,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Rule.Remaining == nil || *out.Rule.Remaining != 6 {
			t.Errorf("expected remaining 6, got %v", out.Rule.Remaining)
		}
	})

	t.Run("rejects an unrecognized frequency", func(t *testing.T) {
		uc, rules := newUseCase(date(2026, time.January, 1))
		_, err := uc.Execute(ctx, CreateRuleInput{
			AccountID: 42,
			Label:     "rent",
			Amount:    120000,
			Currency:  "USD",
			Frequency: entity.Frequency("fortnightly"),
		})
		if !errors.Is(err, domainerror.ErrInvalidRecurrence) {
			t.Fatalf("expected ErrInvalidRecurrence, got %v", err)
		}
		if len(rules.rules) != 0 {
			t.Error("invalid rule must not be persisted")
		}
	})

	t.Run("rejects a non-positive repeat count", func(t *testing.T) {
		uc, rules := newUseCase(date(2026, time.January, 1))

		for _, repeat := range []int{0, -1} {
			r := repeat
			_, err := uc.Execute(ctx, CreateRuleInput{
				AccountID:   42,
				Label:       "installment",
				Amount:      5000,
				Currency:    "USD",
				Frequency:   entity.FrequencyMonthly,
				RepeatCount: &r,
			})
			if !errors.Is(err, domainerror.ErrInvalidRecurrence) {
				t.Errorf("repeat %d: expected ErrInvalidRecurrence, got %v", repeat, err)
			}
		}
		if len(rules.rules) != 0 {
			t.Error("invalid rule must not be persisted")
		}
	})

	t.Run("rejects a missing label and a non-positive amount", func(t *testing.T) {
		uc, _ := newUseCase(date(2026, time.January, 1))

		_, err := uc.Execute(ctx, CreateRuleInput{AccountID: 42, Amount: 100, Frequency: entity.FrequencyDaily})
		if !errors.Is(err, domainerror.ErrMissingLabel) {
			t.Errorf("expected ErrMissingLabel, got %v", err)
		}

		_, err = uc.Execute(ctx, CreateRuleInput{AccountID: 42, Label: "x", Amount: 0, Frequency: entity.FrequencyDaily})
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestUpdateRuleState(t *testing.T) {
	ctx := context.Background()

	setup := func() (*UpdateRuleStateUseCase, *entity.RecurringRule) {
		rules := &fakeRuleRepo{}
		rule := monthlyRule(42, 15, nil)
		rules.rules = append(rules.rules, rule)
		return NewUpdateRuleStateUseCase(rules), rule
	}

	boolPtr := func(b bool) *bool { return &b }

	t.Run("pause and resume flip the suspension flag", func(t *testing.T) {
		uc, rule := setup()
		ref := rule.ID.String()[:8]

		if _, err := uc.Execute(ctx, UpdateRuleStateInput{AccountID: 42, Ref: ref, Paused: boolPtr(true)}); err != nil {
			t.Fatalf("pause: %v", err)
		}
		if !rule.Paused {
			t.Fatal("rule should be paused")
		}

		if _, err := uc.Execute(ctx, UpdateRuleStateInput{AccountID: 42, Ref: ref, Paused: boolPtr(false)}); err != nil {
			t.Fatalf("resume: %v", err)
		}
		if rule.Paused {
			t.Fatal("rule should be resumed")
		}
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		uc, rule := setup()
		ref := rule.ID.String()[:8]

		if _, err := uc.Execute(ctx, UpdateRuleStateInput{AccountID: 42, Ref: ref, Active: boolPtr(false)}); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if rule.Active {
			t.Fatal("rule should be cancelled")
		}

		_, err := uc.Execute(ctx, UpdateRuleStateInput{AccountID: 42, Ref: ref, Active: boolPtr(true)})
		if !errors.Is(err, domainerror.ErrRuleTerminal) {
			t.Errorf("reactivation should fail with ErrRuleTerminal, got %v", err)
		}

		_, err = uc.Execute(ctx, UpdateRuleStateInput{AccountID: 42, Ref: ref, Paused: boolPtr(true)})
		if !errors.Is(err, domainerror.ErrRuleTerminal) {
			t.Errorf("pausing a cancelled rule should fail with ErrRuleTerminal, got %v", err)
		}
	})

	t.Run("unknown reference fails resolution", func(t *testing.T) {
		uc, _ := setup()
		_, err := uc.Execute(ctx, UpdateRuleStateInput{AccountID: 42, Ref: "zzzzzzzz", Paused: boolPtr(true)})
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound, got %v", err)
		}
	})
}
