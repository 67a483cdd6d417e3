package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdci-projets/bank-account/internal/usecase"
)

func TestTxLifecycle(t *testing.T) {
	cases := []struct {
		name   string
		expect func(pgxmock.PgxPoolIface)
		run    func(context.Context, usecase.Transaction) error
	}{
		{
			name: "commit",
			expect: func(p pgxmock.PgxPoolIface) {
				p.ExpectBegin()
				p.ExpectCommit()
			},
			run: func(ctx context.Context, tx usecase.Transaction) error { return tx.Commit(ctx) },
		},
		{
			name: "rollback",
			expect: func(p pgxmock.PgxPoolIface) {
				p.ExpectBegin()
				p.ExpectRollback()
			},
			run: func(ctx context.Context, tx usecase.Transaction) error { return tx.Rollback(ctx) },
		},
		{
			name: "deferred rollback after commit",
			expect: func(p pgxmock.PgxPoolIface) {
				p.ExpectBegin()
				p.ExpectCommit()
				p.ExpectRollback().WillReturnError(pgx.ErrTxClosed)
			},
			run: func(ctx context.Context, tx usecase.Transaction) error {
				if err := tx.Commit(ctx); err != nil {
					return err
				}
				return tx.Rollback(ctx)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := newMockPool(t)
			tc.expect(pool)

			ctx := context.Background()
			tx, err := newTxManagerWithPool(pool).Begin(ctx)
			require.NoError(t, err)

			require.NoError(t, tc.run(ctx, tx))
			assertExpectations(t, pool)
		})
	}
}

func TestTxManagerBeginFailure(t *testing.T) {
	pool := newMockPool(t)
	refused := errors.New("connection refused")
	pool.ExpectBegin().WillReturnError(refused)

	_, err := newTxManagerWithPool(pool).Begin(context.Background())

	assert.ErrorIs(t, err, refused)
	assert.ErrorContains(t, err, "failed to begin transaction")
}

func TestRollbackPropagatesRealFailure(t *testing.T) {
	pool := newMockPool(t)
	broken := errors.New("connection reset")
	pool.ExpectBegin()
	pool.ExpectRollback().WillReturnError(broken)

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, tx.Rollback(context.Background()), broken)
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return nil }

func TestQueriesForRejectsForeignTransaction(t *testing.T) {
	_, err := queriesFor(foreignTx{})
	assert.ErrorContains(t, err, "unsupported transaction type")
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	require.NoError(t, pool.ExpectationsWereMet())
}
