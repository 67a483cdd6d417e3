package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/infrastructure/postgres/generated"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

// snapshotOptions gives every query of a read the same snapshot, so the
// baseline balance and the operations after it never straddle a commit.
var snapshotOptions = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

type snapshotDB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db snapshotDB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db snapshotDB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccount returns the account view as of baselineDate.
func (r *AccountRepository) GetAccount(ctx context.Context, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	var account *domain.Account
	err := r.readSnapshot(ctx, func(q *generated.Queries) error {
		if _, err := q.GetAccount(ctx, accountID); err != nil {
			return notFound(err, accountID)
		}

		var err error
		account, err = loadAccount(ctx, q, accountID, baselineDate)
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccountForUpdate locks the account row for the duration of tx.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, tx usecase.Transaction, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	if _, err := queries.GetAccountForUpdate(ctx, accountID); err != nil {
		return nil, notFound(err, accountID)
	}

	return loadAccount(ctx, queries, accountID, baselineDate)
}

// ListAccounts returns every account view as of baselineDate.
func (r *AccountRepository) ListAccounts(ctx context.Context, baselineDate time.Time) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := r.readSnapshot(ctx, func(q *generated.Queries) error {
		rows, err := q.ListAccounts(ctx)
		if err != nil {
			return err
		}

		accounts = make([]*domain.Account, 0, len(rows))
		for _, row := range rows {
			account, err := loadAccount(ctx, q, row.AccountID, baselineDate)
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

// readSnapshot runs fn inside a read-only REPEATABLE READ transaction.
func (r *AccountRepository) readSnapshot(ctx context.Context, fn func(q *generated.Queries) error) error {
	tx, err := r.db.BeginTx(ctx, snapshotOptions)
	if err != nil {
		return fmt.Errorf("failed to begin read snapshot: %w", err)
	}

	if err := fn(generated.New(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

func loadAccount(ctx context.Context, q *generated.Queries, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	at := timeToPgTimestamptz(baselineDate)

	rawBalance, err := q.GetBalanceBefore(ctx, generated.GetBalanceBeforeParams{AccountID: accountID, OccurredAt: at})
	if err != nil {
		return nil, fmt.Errorf("failed to compute baseline balance: %w", err)
	}
	baseline, err := numericToDecimal(rawBalance)
	if err != nil {
		return nil, err
	}

	rows, err := q.ListOperationsSince(ctx, generated.ListOperationsSinceParams{AccountID: accountID, OccurredAt: at})
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	ops := make([]domain.Operation, 0, len(rows))
	for _, row := range rows {
		op, err := rowToOperation(row)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return domain.NewAccount(accountID, baseline, ops), nil
}
