package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

const (
	getAccount = `SELECT account_id FROM accounts WHERE account_id = ?`

	listAccounts = `SELECT account_id FROM accounts ORDER BY account_id`

	listOperationsBefore = `SELECT amount, operation_type FROM operations
WHERE account_id = ? AND occurred_at < ?`

	listOperationsSince = `SELECT id, account_id, reference, amount, operation_type, occurred_at FROM operations
WHERE account_id = ? AND occurred_at >= ?
ORDER BY occurred_at, id`
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccount returns the account view as of baselineDate.
func (r *AccountRepository) GetAccount(ctx context.Context, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	var account *domain.Account
	err := r.readSnapshot(ctx, func(q querier) error {
		var err error
		account, err = loadAccount(ctx, q, accountID, baselineDate)
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccountForUpdate reads the account inside tx. The connection opens
// transactions with BEGIN IMMEDIATE, which already holds the write lock.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, tx usecase.Transaction, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	q, err := querierFor(tx)
	if err != nil {
		return nil, err
	}

	return loadAccount(ctx, q, accountID, baselineDate)
}

// ListAccounts returns every account view as of baselineDate.
func (r *AccountRepository) ListAccounts(ctx context.Context, baselineDate time.Time) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := r.readSnapshot(ctx, func(q querier) error {
		ids, err := listAccountIDs(ctx, q)
		if err != nil {
			return err
		}

		accounts = make([]*domain.Account, 0, len(ids))
		for _, id := range ids {
			account, err := loadAccount(ctx, q, id, baselineDate)
			if err != nil {
				return err
			}
			accounts = append(accounts, account)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// readSnapshot runs fn inside one transaction so that the baseline balance
// and the operations after it are read without a writer committing between them.
func (r *AccountRepository) readSnapshot(ctx context.Context, fn func(q querier) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin read snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func loadAccount(ctx context.Context, q querier, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	var id int64
	if err := q.QueryRowContext(ctx, getAccount, accountID).Scan(&id); err != nil {
		return nil, notFound(err, accountID)
	}

	baseline, err := balanceBefore(ctx, q, accountID, baselineDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute baseline balance: %w", err)
	}

	rows, err := q.QueryContext(ctx, listOperationsSince, accountID, toNanos(baselineDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var ops []domain.Operation
	for rows.Next() {
		opID, m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, domain.Operation{ID: opID, Movement: m})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.NewAccount(accountID, baseline, ops), nil
}

// balanceBefore sums in Go since sqlite has no exact decimal type.
func balanceBefore(ctx context.Context, q querier, accountID int64, before time.Time) (decimal.Decimal, error) {
	rows, err := q.QueryContext(ctx, listOperationsBefore, accountID, toNanos(before))
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	return sumSigned(rows)
}

func sumSigned(rows *sql.Rows) (decimal.Decimal, error) {
	sum := decimal.Zero
	for rows.Next() {
		var amount, opType string
		if err := rows.Scan(&amount, &opType); err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		sum = sum.Add(domain.OperationType(opType).Signed(d))
	}
	return sum, rows.Err()
}

func listAccountIDs(ctx context.Context, q querier) ([]int64, error) {
	rows, err := q.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
