// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/expensebot/backend/internal/application/usecase/budget"
	"github.com/expensebot/backend/internal/application/usecase/recurring"
	"github.com/expensebot/backend/internal/application/usecase/transaction"
	"github.com/expensebot/backend/internal/infra/server/router"
	"github.com/expensebot/backend/internal/integration/adapters"
	"github.com/expensebot/backend/internal/integration/entrypoint/controller"
	"github.com/expensebot/backend/internal/integration/entrypoint/middleware"
	"github.com/expensebot/backend/internal/integration/persistence"
	"github.com/expensebot/backend/internal/integration/persistence/model"
	"github.com/expensebot/backend/test/integration/mock"
)

// testHarness holds the shared server and backing stores. It is built once
// for the whole suite; scenarios reset the stores between runs.
type testHarness struct {
	db     *mock.Db
	redis  *redis.Client
	clock  *mock.Clock
	server *httptest.Server
}

var harnessOnce sync.Once
var harness *testHarness

func getHarness() *testHarness {
	harnessOnce.Do(func() {
		harness = buildHarness()
	})
	return harness
}

// buildHarness wires the full application against the in-memory stores,
// mirroring the production injector with a settable clock.
func buildHarness() *testHarness {
	gin.SetMode(gin.TestMode)

	db := mock.NewDb(map[string]any{
		"accounts":        &model.AccountModel{},
		"transactions":    &model.TransactionModel{},
		"recurring_rules": &model.RecurringRuleModel{},
		"budgets":         &model.BudgetModel{},
		"digest_sends":    &model.DigestSendModel{},
	})
	redisClient := mock.NewRedis()
	clock := mock.NewClock()

	accountRepo := persistence.NewAccountRepository(db.DbConn)
	ledgerRepo := persistence.NewLedgerRepository(db.DbConn)
	ruleRepo := persistence.NewRecurringRuleRepository(db.DbConn)
	budgetRepo := persistence.NewBudgetRepository(db.DbConn)
	lock := adapters.NewRedisGenerationLock(redisClient, 30*time.Second)

	createRuleUseCase := recurring.NewCreateRuleUseCase(ruleRepo, accountRepo, clock)
	listRulesUseCase := recurring.NewListRulesUseCase(ruleRepo)
	updateRuleStateUseCase := recurring.NewUpdateRuleStateUseCase(ruleRepo)
	generateDueUseCase := recurring.NewGenerateDueUseCase(ruleRepo, ledgerRepo, accountRepo, clock, lock)

	addBudgetUseCase := budget.NewAddBudgetUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	getProgressUseCase := budget.NewGetProgressUseCase(ledgerRepo)
	checkAlertsUseCase := budget.NewCheckAlertsUseCase(budgetRepo, accountRepo, getProgressUseCase, clock)
	comparePeriodsUseCase := budget.NewComparePeriodsUseCase(ledgerRepo)

	postTransactionUseCase := transaction.NewPostTransactionUseCase(ledgerRepo, accountRepo, createRuleUseCase, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(ledgerRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(ledgerRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(ledgerRepo)
	searchTransactionsUseCase := transaction.NewSearchTransactionsUseCase(ledgerRepo)
	periodSummaryUseCase := transaction.NewPeriodSummaryUseCase(ledgerRepo)

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
	healthController := controller.NewHealthController(
		func() bool { return db.DbConn != nil },
		func() bool { return redisClient.Ping(context.Background()).Err() == nil },
	)

	rateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	accountMiddleware := middleware.NewAccountMiddleware()

	r := router.NewRouter(healthController, transactionController, recurringController, budgetController, rateLimiter, accountMiddleware)
	engine := r.Setup("test")

	return &testHarness{
		db:     db,
		redis:  redisClient,
		clock:  clock,
		server: httptest.NewServer(engine),
	}
}

// TestContext holds per-scenario state.
type TestContext struct {
	harness      *testHarness
	response     *http.Response
	responseBody []byte
	headers      map[string]string
	saved        map[string]string
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up shared resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		getHarness()
	})
	ctx.AfterSuite(func() {
		if harness != nil && harness.server != nil {
			harness.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions and resets the shared
// stores before each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		h := getHarness()
		if err := h.db.Reset(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(h.redis); err != nil {
			return ctx, err
		}
		h.clock.Set(time.Now().UTC())

		tc := &TestContext{
			harness: h,
			headers: make(map[string]string),
			saved:   make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I am acting as account (\d+)$`, iAmActingAsAccount)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^today is "([^"]*)"$`, todayIs)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should be absent$`, theResponseFieldShouldBeAbsent)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, iSaveTheResponseFieldAs)
}

// replacePlaceholders substitutes {{name}} markers with values captured
// earlier in the scenario.
func (t *TestContext) replacePlaceholders(s string) string {
	for name, value := range t.saved {
		s = strings.ReplaceAll(s, "{{"+name+"}}", value)
	}
	return s
}

func (t *TestContext) execute(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, t.harness.server.URL+t.replacePlaceholders(endpoint), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	t.response = resp
	t.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return nil
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.harness.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iAmActingAsAccount(ctx context.Context, accountID int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.headers["X-Account-ID"] = strconv.Itoa(accountID)
	return nil
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.headers[header] = value
	return nil
}

func todayIs(ctx context.Context, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	// Pin midday so every timezone lands on the same calendar date.
	tc.harness.clock.Set(day.Add(12 * time.Hour))
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.execute(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	payload := tc.replacePlaceholders(body.Content)
	return tc.execute(method, endpoint, bytes.NewBufferString(payload))
}

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if !strings.Contains(string(tc.responseBody), tc.replacePlaceholders(expected)) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	value := tc.fieldValue(field)
	if value == nil {
		return fmt.Errorf("field %q not found in response: %s", field, string(tc.responseBody))
	}
	actual := fmt.Sprintf("%v", value)
	if actual != tc.replacePlaceholders(expected) {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.fieldValue(field) == nil {
		return fmt.Errorf("field %q not found in response: %s", field, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBeAbsent(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if value := tc.fieldValue(field); value != nil {
		return fmt.Errorf("field %q should be absent but is %v", field, value)
	}
	return nil
}

func iSaveTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	value := tc.fieldValue(field)
	if value == nil {
		return fmt.Errorf("field %q not found in response: %s", field, string(tc.responseBody))
	}
	tc.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

// fieldValue walks a dot-separated path through the response JSON. Numeric
// path segments index into arrays.
func (t *TestContext) fieldValue(dotSeparatedField string) any {
	var body any
	if err := json.Unmarshal(t.responseBody, &body); err != nil {
		return nil
	}

	current := body
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		switch node := current.(type) {
		case map[string]any:
			current = node[segment]
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			current = node[i]
		default:
			return nil
		}
		if current == nil {
			return nil
		}
	}
	return current
}
