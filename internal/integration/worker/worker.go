// Package worker runs the periodic recurring-generation and digest driver.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/application/usecase/recurring"
	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// Worker drives recurring generation and the weekly digest on a coarse
// timer. Every tick is idempotent per calendar day: generation is guarded
// per (rule, date) and the digest per (account, ISO week), so overlapping
// or repeated ticks never double-post or double-send.
type Worker struct {
	generateDue  *recurring.GenerateDueUseCase
	accountRepo  adapter.AccountRepository
	ledgerRepo   adapter.LedgerRepository
	digestRepo   adapter.DigestRepository
	notifier     adapter.Notifier
	clock        adapter.Clock
	pollInterval time.Duration
	digestDay    time.Weekday
}

// Config holds configuration for the periodic worker.
type Config struct {
	PollInterval time.Duration
	DigestDay    time.Weekday
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval: 1 * time.Minute,
		DigestDay:    time.Sunday,
	}
}

// New creates a new periodic worker.
func New(
	generateDue *recurring.GenerateDueUseCase,
	accountRepo adapter.AccountRepository,
	ledgerRepo adapter.LedgerRepository,
	digestRepo adapter.DigestRepository,
	notifier adapter.Notifier,
	clock adapter.Clock,
	config Config,
) *Worker {
	return &Worker{
		generateDue:  generateDue,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		digestRepo:   digestRepo,
		notifier:     notifier,
		clock:        clock,
		pollInterval: config.PollInterval,
		digestDay:    config.DigestDay,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Periodic worker started",
		"poll_interval", w.pollInterval,
		"digest_day", w.digestDay.String(),
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processTick(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Periodic worker shutting down")
			return
		case <-ticker.C:
			w.processTick(ctx)
		}
	}
}

// processTick runs one generation pass followed by the digest check.
func (w *Worker) processTick(ctx context.Context) {
	output, err := w.generateDue.Execute(ctx)
	if err != nil {
		slog.Error("Recurring generation pass failed", "error", err)
	} else if len(output.Transactions) > 0 {
		slog.Info("Recurring generation pass completed", "generated", len(output.Transactions))
		w.notifyGenerated(ctx, output.Transactions)
	}

	w.sendDigests(ctx)
}

// notifyGenerated informs each account of its newly generated transactions.
// Delivery is best-effort; the ledger writes stand regardless.
func (w *Worker) notifyGenerated(ctx context.Context, transactions []*entity.Transaction) {
	byAccount := make(map[int64][]*entity.Transaction)
	for _, tx := range transactions {
		byAccount[tx.AccountID] = append(byAccount[tx.AccountID], tx)
	}

	for accountID, txs := range byAccount {
		account, err := w.accountRepo.FindByID(ctx, accountID)
		if err != nil || account == nil || account.Email == "" {
			continue
		}

		var lines []string
		for _, tx := range txs {
			lines = append(lines, fmt.Sprintf("- %s: %.2f %s", tx.Label, float64(tx.Amount)/100, tx.Currency))
		}

		err = w.notifier.Send(ctx, adapter.NotificationInput{
			To:      account.Email,
			Subject: "Recurring transactions posted",
			Body:    fmt.Sprintf("Posted today:\n%s", strings.Join(lines, "\n")),
		})
		if err != nil {
			slog.Warn("Generation notification failed",
				"account_id", accountID,
				"error", err,
			)
		}
	}
}

// sendDigests sends each account its weekly spending digest when the
// account-local day matches the configured digest day. The durable
// (account, week) record makes the send at-most-once per week across
// restarts and overlapping ticks.
func (w *Worker) sendDigests(ctx context.Context) {
	accounts, err := w.accountRepo.ListAll(ctx)
	if err != nil {
		slog.Error("Failed to list accounts for digest", "error", err)
		return
	}

	for _, account := range accounts {
		if account.Email == "" {
			continue
		}

		today := w.clock.LocalDate(account.Timezone)
		if today.Weekday() != w.digestDay {
			continue
		}

		periodKey := valueobject.WeekKey(today)
		sent, err := w.digestRepo.AlreadySent(ctx, account.ID, periodKey)
		if err != nil {
			slog.Error("Digest dedupe check failed", "account_id", account.ID, "error", err)
			continue
		}
		if sent {
			continue
		}

		if err := w.sendDigest(ctx, account, today, periodKey); err != nil {
			slog.Warn("Weekly digest failed",
				"account_id", account.ID,
				"period", periodKey,
				"error", err,
			)
		}
	}
}

// sendDigest builds and delivers one account's digest for the week ending
// today, then records the send.
func (w *Worker) sendDigest(ctx context.Context, account *entity.Account, today time.Time, periodKey string) error {
	// Seven calendar days ending today; last week's digest day belongs to
	// the previous digest, not this one.
	window := valueobject.PeriodWindow{
		Start: today.AddDate(0, 0, -6),
		End:   today.AddDate(0, 0, 1),
	}

	totals, err := w.ledgerRepo.TotalsForWindow(ctx, account.ID, window)
	if err != nil {
		return err
	}

	err = w.notifier.Send(ctx, adapter.NotificationInput{
		To:      account.Email,
		Subject: fmt.Sprintf("Your weekly spending digest (%s)", periodKey),
		Body:    digestBody(totals),
	})
	if err != nil {
		return err
	}

	return w.digestRepo.MarkSent(ctx, account.ID, periodKey)
}

// digestBody renders the digest as plain text, categories sorted by spend.
func digestBody(totals valueobject.PeriodTotals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total spent this week: %.2f\n", float64(totals.Total)/100)

	categories := make([]string, 0, len(totals.ByCategory))
	for category := range totals.ByCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return totals.ByCategory[categories[i]] > totals.ByCategory[categories[j]]
	})

	for _, category := range categories {
		fmt.Fprintf(&b, "- %s: %.2f\n", category, float64(totals.ByCategory[category])/100)
	}

	return b.String()
}

// ProcessNow runs one tick immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processTick(ctx)
}
