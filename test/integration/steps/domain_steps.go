package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^an account (\d+) exists$`, anAccountExists)
	ctx.Step(`^an account (\d+) exists with timezone "([^"]*)"$`, anAccountExistsWithTimezone)
	ctx.Step(`^account (\d+) has a transaction "([^"]*)" of (\d+) "([^"]*)" on "([^"]*)" saved as "([^"]*)"$`, accountHasATransactionSavedAs)
	ctx.Step(`^account (\d+) has a transaction "([^"]*)" of (\d+) "([^"]*)" in category "([^"]*)" on "([^"]*)"$`, accountHasACategorizedTransaction)
	ctx.Step(`^account (\d+) has a daily rule "([^"]*)" of (\d+) "([^"]*)" saved as "([^"]*)"$`, accountHasADailyRuleSavedAs)
	ctx.Step(`^account (\d+) has a monthly rule "([^"]*)" of (\d+) "([^"]*)" on day (\d+) saved as "([^"]*)"$`, accountHasAMonthlyRuleSavedAs)
	ctx.Step(`^account (\d+) has an overall (month|month_rollover|year) budget of (\d+) saved as "([^"]*)"$`, accountHasAnOverallBudgetSavedAs)
	ctx.Step(`^account (\d+) has a "([^"]*)" category (month|month_rollover|year) budget of (\d+) saved as "([^"]*)"$`, accountHasACategoryBudgetSavedAs)
	ctx.Step(`^there should be (\d+) rows in the "([^"]*)" table$`, thereShouldBeRowsInTheTable)
	ctx.Step(`^there should be (\d+) rows in the "([^"]*)" table with:$`, thereShouldBeRowsInTheTableWith)
}

func anAccountExists(ctx context.Context, accountID int64) error {
	return anAccountExistsWithTimezone(ctx, accountID, "UTC")
}

func anAccountExistsWithTimezone(ctx context.Context, accountID int64, timezone string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	row := map[string]any{
		"id":         accountID,
		"timezone":   timezone,
		"email":      fmt.Sprintf("account%d@example.com", accountID),
		"created_at": time.Now().UTC(),
	}
	return tc.harness.db.DbConn.Table("accounts").Create(row).Error
}

func insertTransaction(tc *TestContext, accountID int64, label string, amount int64, currency, category, date string) (uuid.UUID, error) {
	localDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	id := uuid.New()
	row := map[string]any{
		"id":         id.String(),
		"account_id": accountID,
		"label":      label,
		"amount":     amount,
		"currency":   currency,
		"category":   category,
		"local_date": localDate,
		"created_at": time.Now().UTC(),
	}
	return id, tc.harness.db.DbConn.Table("transactions").Create(row).Error
}

func accountHasATransactionSavedAs(ctx context.Context, accountID int64, label string, amount int64, currency, date, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	id, err := insertTransaction(tc, accountID, label, amount, currency, "", date)
	if err != nil {
		return err
	}
	tc.saved[name] = id.String()[:8]
	return nil
}

func accountHasACategorizedTransaction(ctx context.Context, accountID int64, label string, amount int64, currency, category, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := insertTransaction(tc, accountID, label, amount, currency, category, date)
	return err
}

func insertRule(tc *TestContext, accountID int64, label string, amount int64, currency, frequency string, dayOfMonth *int, name string) error {
	id := uuid.New()
	row := map[string]any{
		"id":         id.String(),
		"account_id": accountID,
		"label":      label,
		"amount":     amount,
		"currency":   currency,
		"frequency":  frequency,
		"active":     true,
		"paused":     false,
		"created_at": time.Now().UTC(),
	}
	if dayOfMonth != nil {
		row["day_of_month"] = *dayOfMonth
	}
	if err := tc.harness.db.DbConn.Table("recurring_rules").Create(row).Error; err != nil {
		return err
	}
	tc.saved[name] = id.String()[:8]
	return nil
}

func accountHasADailyRuleSavedAs(ctx context.Context, accountID int64, label string, amount int64, currency, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return insertRule(tc, accountID, label, amount, currency, "daily", nil, name)
}

func accountHasAMonthlyRuleSavedAs(ctx context.Context, accountID int64, label string, amount int64, currency string, day int, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return insertRule(tc, accountID, label, amount, currency, "monthly", &day, name)
}

func insertBudget(tc *TestContext, accountID int64, scope, category, period string, limit int64, name string) error {
	id := uuid.New()
	row := map[string]any{
		"id":           id.String(),
		"account_id":   accountID,
		"scope":        scope,
		"category":     category,
		"limit_amount": limit,
		"period":       period,
		"active":       true,
		"created_at":   time.Now().UTC(),
	}
	if err := tc.harness.db.DbConn.Table("budgets").Create(row).Error; err != nil {
		return err
	}
	tc.saved[name] = id.String()[:8]
	return nil
}

func accountHasAnOverallBudgetSavedAs(ctx context.Context, accountID int64, period string, limit int64, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return insertBudget(tc, accountID, "overall", "", period, limit, name)
}

func accountHasACategoryBudgetSavedAs(ctx context.Context, accountID int64, category, period string, limit int64, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return insertBudget(tc, accountID, "category", category, period, limit, name)
}

func thereShouldBeRowsInTheTable(ctx context.Context, expected int64, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	m, ok := tc.harness.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	var count int64
	if err := tc.harness.db.DbConn.Model(m).Count(&count).Error; err != nil {
		return fmt.Errorf("count rows in %s: %w", table, err)
	}
	if count != expected {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func thereShouldBeRowsInTheTableWith(ctx context.Context, expected int64, table string, criteria *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	m, ok := tc.harness.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	var where map[string]any
	if err := json.Unmarshal([]byte(tc.replacePlaceholders(criteria.Content)), &where); err != nil {
		return fmt.Errorf("parse criteria: %w", err)
	}
	var count int64
	if err := tc.harness.db.DbConn.Model(m).Where(where).Count(&count).Error; err != nil {
		return fmt.Errorf("count rows in %s: %w", table, err)
	}
	if count != expected {
		return fmt.Errorf("expected %d rows in %s matching %v, got %d", expected, table, where, count)
	}
	return nil
}
