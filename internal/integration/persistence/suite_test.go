package persistence

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/integration/persistence/model"
)

// openTestDB opens a fresh in-memory sqlite database with the full schema.
// Each test gets its own database so tests stay independent.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.AccountModel{},
		&model.TransactionModel{},
		&model.RecurringRuleModel{},
		&model.BudgetModel{},
		&model.DigestSendModel{},
	)
	if err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	return db
}

func localDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newTx(accountID int64, label string, amount int64, day time.Time) *entity.Transaction {
	return entity.NewTransaction(accountID, label, amount, "USD", day)
}
