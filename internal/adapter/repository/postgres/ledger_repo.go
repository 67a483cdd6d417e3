package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// ListAccountIDs returns all account ids in ascending order.
func (r *LedgerRepository) ListAccountIDs(ctx context.Context) ([]int64, error) {
	return r.queries.ListAccountIDs(ctx)
}

// SignedTotals returns the signed sums of the operations and history of an account.
func (r *LedgerRepository) SignedTotals(ctx context.Context, accountID int64) (decimal.Decimal, decimal.Decimal, error) {
	if _, err := r.queries.GetAccount(ctx, accountID); err != nil {
		return decimal.Zero, decimal.Zero, notFound(err, accountID)
	}

	result, err := r.queries.GetSignedTotals(ctx, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	operations, err := numericToDecimal(result.OperationsTotal)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	history, err := numericToDecimal(result.HistoryTotal)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return operations, history, nil
}
