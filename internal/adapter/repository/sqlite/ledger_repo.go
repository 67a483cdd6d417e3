package sqlite

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

const (
	listOperationAmounts = `SELECT amount, operation_type FROM operations WHERE account_id = ?`
	listHistoryAmounts   = `SELECT amount, operation_type FROM operation_history WHERE account_id = ?`
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListAccountIDs returns all account ids in ascending order.
func (r *LedgerRepository) ListAccountIDs(ctx context.Context) ([]int64, error) {
	return listAccountIDs(ctx, r.db)
}

// SignedTotals returns the signed sums of the operations and history of an account.
func (r *LedgerRepository) SignedTotals(ctx context.Context, accountID int64) (decimal.Decimal, decimal.Decimal, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, getAccount, accountID).Scan(&id); err != nil {
		return decimal.Zero, decimal.Zero, notFound(err, accountID)
	}

	operations, err := r.signedTotal(ctx, listOperationAmounts, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	history, err := r.signedTotal(ctx, listHistoryAmounts, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return operations, history, nil
}

func (r *LedgerRepository) signedTotal(ctx context.Context, query string, accountID int64) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	return sumSigned(rows)
}
