package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// AccountRepository loads account views from storage.
type AccountRepository interface {
	// GetAccount returns the account with its balance as of baselineDate and
	// the operations recorded since.
	GetAccount(ctx context.Context, accountID int64, baselineDate time.Time) (*domain.Account, error)
	// GetAccountForUpdate is GetAccount inside tx, locking the account until tx ends.
	GetAccountForUpdate(ctx context.Context, tx Transaction, accountID int64, baselineDate time.Time) (*domain.Account, error)
	ListAccounts(ctx context.Context, baselineDate time.Time) ([]*domain.Account, error)
}

// OperationRepository stores operations against the current account state.
type OperationRepository interface {
	Save(ctx context.Context, tx Transaction, op domain.Operation) (int64, error)
}

// HistoryRepository is the append-only ledger history.
type HistoryRepository interface {
	Append(ctx context.Context, tx Transaction, entry domain.HistoryEntry) (int64, error)
	// ListByAccount returns every entry of the account in insertion order.
	ListByAccount(ctx context.Context, accountID int64) ([]domain.HistoryEntry, error)
}

// LedgerRepository exposes totals used to reconcile operations with history.
type LedgerRepository interface {
	ListAccountIDs(ctx context.Context) ([]int64, error)
	SignedTotals(ctx context.Context, accountID int64) (operations, history decimal.Decimal, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs fn while it fails with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, fn func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// StatementCache keeps generated statements per account and start date.
// Statements are stored under the account version read before the history
// was loaded. Invalidate moves the account to a new version, so a statement
// built from history older than the last invalidation is never served.
type StatementCache interface {
	Version(ctx context.Context, accountID int64) (int64, error)
	Get(ctx context.Context, accountID, version int64, fromDate time.Time) (*domain.AccountStatement, bool, error)
	Set(ctx context.Context, accountID, version int64, fromDate time.Time, statement *domain.AccountStatement, ttl time.Duration) error
	Invalidate(ctx context.Context, accountID int64) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not complete, so it can be retried.
	Release(ctx context.Context, key string) error
}

// MetricsRecorder receives business events worth counting.
type MetricsRecorder interface {
	OperationRecorded(opType domain.OperationType, amount decimal.Decimal)
	OperationRejected(reason string)
	StatementGenerated(variant string, lines int)
	StatementCacheLookup(hit bool)
	ReconciliationDiscrepancies(count int)
}
