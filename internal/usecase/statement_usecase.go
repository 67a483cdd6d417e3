package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// Statement variants reported to metrics.
const (
	StatementVariantHistory = "history"
	StatementVariantRecent  = "recent"
)

// StatementUseCase builds account statements.
type StatementUseCase struct {
	accountRepo AccountRepository
	historyRepo HistoryRepository
	settings
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(accountRepo AccountRepository, historyRepo HistoryRepository, opts ...Option) *StatementUseCase {
	return &StatementUseCase{
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		settings:    newSettings(opts),
	}
}

// GenerateAccountStatement builds the statement of an account from its ledger
// history, listing the entries recorded at or after fromDate. A zero fromDate
// means the start of the lookback window. Statements for an explicit fromDate
// are cached when a cache is configured.
func (uc *StatementUseCase) GenerateAccountStatement(ctx context.Context, accountID int64, fromDate time.Time) (*domain.AccountStatement, error) {
	cacheable := uc.cache != nil && !fromDate.IsZero()
	if fromDate.IsZero() {
		fromDate = uc.since()
	}

	// The version is read before the history so that a write committed while
	// the statement is being built lands under a newer version.
	var version int64
	if cacheable {
		v, err := uc.cache.Version(ctx, accountID)
		if err != nil {
			uc.logger.Warn().Err(err).Int64("account_id", accountID).Msg("statement cache version lookup failed")
			cacheable = false
		}
		version = v
	}

	if cacheable {
		cached, ok, err := uc.cache.Get(ctx, accountID, version, fromDate)
		if err != nil {
			uc.logger.Warn().Err(err).Int64("account_id", accountID).Msg("statement cache lookup failed")
		}
		uc.metrics.StatementCacheLookup(ok)
		if ok {
			return cached, nil
		}
	}

	history, err := uc.historyRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if len(history) == 0 {
		if _, err := uc.accountRepo.GetAccount(ctx, accountID, uc.now()); err != nil {
			return nil, err
		}
	}

	statement, err := domain.GenerateStatement(accountID, history, fromDate)
	if err != nil {
		if errors.Is(err, domain.ErrNoTransactionsFound) {
			uc.logger.Info().Int64("account_id", accountID).Time("from_date", fromDate).Msg("no transactions for statement")
		}
		return nil, err
	}

	if cacheable {
		if err := uc.cache.Set(ctx, accountID, version, fromDate, statement, uc.cacheTTL); err != nil {
			uc.logger.Warn().Err(err).Int64("account_id", accountID).Msg("failed to cache statement")
		}
	}

	uc.metrics.StatementGenerated(StatementVariantHistory, len(statement.Lines))

	return statement, nil
}

// GetRecentStatement builds a statement from the operations of the lookback
// window, seeded with the balance at the start of the window.
func (uc *StatementUseCase) GetRecentStatement(ctx context.Context, accountID int64) (*domain.AccountStatement, error) {
	account, err := uc.accountRepo.GetAccount(ctx, accountID, uc.since())
	if err != nil {
		return nil, err
	}

	statement := domain.GenerateAccountStatement(account)
	uc.metrics.StatementGenerated(StatementVariantRecent, len(statement.Lines))

	return statement, nil
}
