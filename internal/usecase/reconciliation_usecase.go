package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationUseCase checks that the operation store and the ledger
// history agree for every account.
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
	settings
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledgerRepo LedgerRepository, opts ...Option) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo: ledgerRepo,
		settings:   newSettings(opts),
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID       int64
	OperationsTotal decimal.Decimal
	HistoryTotal    decimal.Decimal
	Difference      decimal.Decimal
	IsReconciled    bool
	LastChecked     time.Time
}

// ReconcileAccount compares the signed totals of an account's operations and
// history entries.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID int64) (*ReconciliationResult, error) {
	operations, history, err := uc.ledgerRepo.SignedTotals(ctx, accountID)
	if err != nil {
		return nil, err
	}

	diff := operations.Sub(history)
	result := &ReconciliationResult{
		AccountID:       accountID,
		OperationsTotal: operations,
		HistoryTotal:    history,
		Difference:      diff,
		IsReconciled:    diff.IsZero(),
		LastChecked:     uc.now(),
	}

	if !result.IsReconciled {
		uc.logger.Error().
			Int64("account_id", accountID).
			Str("operations_total", operations.String()).
			Str("history_total", history.String()).
			Msg("operations and history diverge")
	}

	return result, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// GenerateReport reconciles every account.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	ids, err := uc.ledgerRepo.ListAccountIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAccounts: len(ids),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     uc.now(),
	}

	for _, id := range ids {
		result, err := uc.ReconcileAccount(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile account %d: %w", id, err)
		}
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	uc.metrics.ReconciliationDiscrepancies(len(report.Discrepancies))

	return report, nil
}
