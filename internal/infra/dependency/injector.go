// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expensebot/backend/config"
	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/application/usecase/budget"
	"github.com/expensebot/backend/internal/application/usecase/recurring"
	"github.com/expensebot/backend/internal/application/usecase/transaction"
	"github.com/expensebot/backend/internal/infra/server/router"
	"github.com/expensebot/backend/internal/integration/adapters"
	"github.com/expensebot/backend/internal/integration/entrypoint/controller"
	"github.com/expensebot/backend/internal/integration/entrypoint/middleware"
	"github.com/expensebot/backend/internal/integration/notifier"
	"github.com/expensebot/backend/internal/integration/persistence"
	"github.com/expensebot/backend/internal/integration/worker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *worker.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, healthController *controller.HealthController) *Injector {
	// Repositories
	accountRepo := persistence.NewAccountRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	ruleRepo := persistence.NewRecurringRuleRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	digestRepo := persistence.NewDigestRepository(db)

	// Adapters
	clock := adapters.NewTimezoneClock(cfg.Accounts.DefaultTimezone)
	lock := adapters.NewRedisGenerationLock(redisClient, cfg.Worker.LockTTL)

	var sink adapter.Notifier = notifier.NoopNotifier{}
	if cfg.Notifier.Enabled && cfg.Notifier.ResendAPIKey != "" {
		sink = notifier.NewResendClient(cfg.Notifier.ResendAPIKey, cfg.Notifier.FromName, cfg.Notifier.FromEmail)
	}

	// Recurring use cases
	createRuleUseCase := recurring.NewCreateRuleUseCase(ruleRepo, accountRepo, clock)
	listRulesUseCase := recurring.NewListRulesUseCase(ruleRepo)
	updateRuleStateUseCase := recurring.NewUpdateRuleStateUseCase(ruleRepo)
	generateDueUseCase := recurring.NewGenerateDueUseCase(ruleRepo, ledgerRepo, accountRepo, clock, lock)

	// Budget use cases
	addBudgetUseCase := budget.NewAddBudgetUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	getProgressUseCase := budget.NewGetProgressUseCase(ledgerRepo)
	checkAlertsUseCase := budget.NewCheckAlertsUseCase(budgetRepo, accountRepo, getProgressUseCase, clock)
	comparePeriodsUseCase := budget.NewComparePeriodsUseCase(ledgerRepo)

	// Transaction use cases
	postTransactionUseCase := transaction.NewPostTransactionUseCase(ledgerRepo, accountRepo, createRuleUseCase, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(ledgerRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(ledgerRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(ledgerRepo)
	searchTransactionsUseCase := transaction.NewSearchTransactionsUseCase(ledgerRepo)
	periodSummaryUseCase := transaction.NewPeriodSummaryUseCase(ledgerRepo)

	// Controllers
	transactionController := controller.NewTransactionController(
		postTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		listTransactionsUseCase,
		searchTransactionsUseCase,
		periodSummaryUseCase,
		comparePeriodsUseCase,
		checkAlertsUseCase,
	)

	recurringController := controller.NewRecurringController(
		createRuleUseCase,
		listRulesUseCase,
		updateRuleStateUseCase,
		generateDueUseCase,
	)

	budgetController := controller.NewBudgetController(
		addBudgetUseCase,
		listBudgetsUseCase,
		deleteBudgetUseCase,
		getProgressUseCase,
		checkAlertsUseCase,
		budgetRepo,
	)

	// Middleware
	// Use a higher rate limit ceiling in test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter()
	}
	accountMiddleware := middleware.NewAccountMiddleware()

	r := router.NewRouter(healthController, transactionController, recurringController, budgetController, rateLimiter, accountMiddleware)

	var w *worker.Worker
	if cfg.Worker.Enabled {
		w = worker.New(generateDueUseCase, accountRepo, ledgerRepo, digestRepo, sink, clock, worker.Config{
			PollInterval: cfg.Worker.PollInterval,
			DigestDay:    cfg.Worker.DigestDay,
		})
	}

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
		Worker: w,
	}
}
