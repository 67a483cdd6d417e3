package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
	"github.com/mdci-projets/bank-account/internal/usecase/mocks"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type accountMocks struct {
	txManager  *mocks.MockTransactionManager
	tx         *mocks.MockTransaction
	accounts   *mocks.MockAccountRepository
	operations *mocks.MockOperationRepository
	history    *mocks.MockHistoryRepository
	idGen      *mocks.MockIDGenerator
	cache      *mocks.MockStatementCache
	metrics    *mocks.MockMetricsRecorder
}

func newAccountUseCase(t *testing.T, opts ...usecase.Option) (*usecase.AccountUseCase, accountMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := accountMocks{
		txManager:  mocks.NewMockTransactionManager(ctrl),
		tx:         mocks.NewMockTransaction(ctrl),
		accounts:   mocks.NewMockAccountRepository(ctrl),
		operations: mocks.NewMockOperationRepository(ctrl),
		history:    mocks.NewMockHistoryRepository(ctrl),
		idGen:      mocks.NewMockIDGenerator(ctrl),
		cache:      mocks.NewMockStatementCache(ctrl),
		metrics:    mocks.NewMockMetricsRecorder(ctrl),
	}

	opts = append([]usecase.Option{
		usecase.WithClock(clock),
		usecase.WithStatementCache(m.cache, time.Minute),
		usecase.WithMetrics(m.metrics),
	}, opts...)

	uc := usecase.NewAccountUseCase(m.txManager, m.accounts, m.operations, m.history, m.idGen, opts...)
	return uc, m
}

func existingAccount() *domain.Account {
	return domain.NewAccount(654321, dec("100"), []domain.Operation{
		{ID: 1, Movement: domain.Movement{AccountID: 654321, Timestamp: now.Add(-48 * time.Hour), Amount: dec("500"), Type: domain.Deposit}},
		{ID: 2, Movement: domain.Movement{AccountID: 654321, Timestamp: now.Add(-24 * time.Hour), Amount: dec("300"), Type: domain.Withdrawal}},
	})
}

func TestAccountUseCase_SendMoney_Deposit(t *testing.T) {
	uc, m := newAccountUseCase(t)
	ctx := context.Background()

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.accounts.EXPECT().
		GetAccountForUpdate(gomock.Any(), m.tx, int64(654321), now.Add(-usecase.DefaultLookback)).
		Return(existingAccount(), nil)
	m.idGen.EXPECT().Generate().Return("01HREF")

	var saved domain.Operation
	m.operations.EXPECT().Save(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, op domain.Operation) (int64, error) {
			saved = op
			return 10, nil
		})

	var appended domain.HistoryEntry
	m.history.EXPECT().Append(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, entry domain.HistoryEntry) (int64, error) {
			appended = entry
			return 77, nil
		})
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Invalidate(ctx, int64(654321)).Return(nil)
	m.metrics.EXPECT().OperationRecorded(domain.Deposit, dec("200"))

	op, err := uc.SendMoney(ctx, &usecase.OperationRequest{AccountID: 654321, Amount: dec("200"), Type: domain.Deposit})
	require.NoError(t, err)

	assert.Equal(t, int64(10), op.ID)
	assert.Equal(t, domain.Deposit, op.Type)
	assert.Equal(t, now, op.Timestamp)
	assert.Equal(t, "01HREF", op.Reference)

	assert.Zero(t, saved.ID)
	assert.Equal(t, "01HREF", saved.Reference)
	assert.Zero(t, appended.ID)
	assert.Equal(t, op.Movement, appended.Movement)
}

func TestAccountUseCase_SendMoney_NilRequest(t *testing.T) {
	uc, m := newAccountUseCase(t)
	m.metrics.EXPECT().OperationRejected("null_request")

	_, err := uc.SendMoney(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNullRequest)
}

func TestAccountUseCase_SendMoney_UnknownType(t *testing.T) {
	uc, m := newAccountUseCase(t)
	m.metrics.EXPECT().OperationRejected("unknown_operation_type")

	_, err := uc.SendMoney(context.Background(), &usecase.OperationRequest{AccountID: 1, Amount: dec("1"), Type: "TRANSFER"})
	require.ErrorIs(t, err, domain.ErrUnknownOperationType)
	assert.Contains(t, err.Error(), "TRANSFER")
}

func TestAccountUseCase_SendMoney_BusinessRuleRollsBack(t *testing.T) {
	tests := []struct {
		name    string
		req     usecase.OperationRequest
		wantErr error
		reason  string
	}{
		{
			name:    "insufficient funds",
			req:     usecase.OperationRequest{AccountID: 654321, Amount: dec("301"), Type: domain.Withdrawal},
			wantErr: domain.ErrInsufficientFunds,
			reason:  "insufficient_funds",
		},
		{
			name:    "negative deposit",
			req:     usecase.OperationRequest{AccountID: 654321, Amount: dec("-300"), Type: domain.Deposit},
			wantErr: domain.ErrInvalidAmount,
			reason:  "invalid_amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newAccountUseCase(t)

			m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
			m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(654321), gomock.Any()).Return(existingAccount(), nil)
			m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			m.metrics.EXPECT().OperationRejected(tt.reason)

			_, err := uc.SendMoney(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountUseCase_SendMoney_InsufficientFundsMessage(t *testing.T) {
	uc, m := newAccountUseCase(t)

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(654321), gomock.Any()).Return(existingAccount(), nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.metrics.EXPECT().OperationRejected("insufficient_funds")

	_, err := uc.Withdraw(context.Background(), 654321, dec("301"))
	require.EqualError(t, err, "Insufficient balance: Withdrawal of 301 is not possible, current balance: 300")
}

func TestAccountUseCase_SendMoney_AccountNotFound(t *testing.T) {
	uc, m := newAccountUseCase(t)

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(42), gomock.Any()).Return(nil, domain.ErrAccountNotFound)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.metrics.EXPECT().OperationRejected("account_not_found")

	_, err := uc.Deposit(context.Background(), 42, dec("10"))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_SendMoney_HistoryFailureDoesNotCommit(t *testing.T) {
	uc, m := newAccountUseCase(t)
	storageErr := errors.New("disk full")

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(654321), gomock.Any()).Return(existingAccount(), nil)
	m.idGen.EXPECT().Generate().Return("ref")
	m.operations.EXPECT().Save(gomock.Any(), m.tx, gomock.Any()).Return(int64(11), nil)
	m.history.EXPECT().Append(gomock.Any(), m.tx, gomock.Any()).Return(int64(0), storageErr)
	m.tx.EXPECT().Commit(gomock.Any()).Times(0)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.metrics.EXPECT().OperationRejected("storage")

	_, err := uc.Deposit(context.Background(), 654321, dec("10"))
	require.ErrorIs(t, err, storageErr)
}

func TestAccountUseCase_SendMoney_RetriesTransientFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	retrier := mocks.NewMockRetrier(ctrl)
	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func() error) error {
			if err := fn(); err == nil {
				t.Fatalf("expected first attempt to fail")
			}
			return fn()
		})

	uc, m := newAccountUseCase(t, usecase.WithRetrier(retrier))
	deadlock := &pgconn.PgError{Code: "40P01"}

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil).Times(2)
	m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(654321), gomock.Any()).
		DoAndReturn(func(context.Context, usecase.Transaction, int64, time.Time) (*domain.Account, error) {
			return existingAccount(), nil
		}).Times(2)
	m.idGen.EXPECT().Generate().Return("ref").Times(2)
	gomock.InOrder(
		m.operations.EXPECT().Save(gomock.Any(), m.tx, gomock.Any()).Return(int64(0), deadlock),
		m.operations.EXPECT().Save(gomock.Any(), m.tx, gomock.Any()).Return(int64(12), nil),
	)
	m.history.EXPECT().Append(gomock.Any(), m.tx, gomock.Any()).Return(int64(13), nil)
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).Times(2)
	m.cache.EXPECT().Invalidate(gomock.Any(), int64(654321)).Return(nil)
	m.metrics.EXPECT().OperationRecorded(domain.Withdrawal, dec("50"))

	op, err := uc.Withdraw(context.Background(), 654321, dec("50"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), op.ID)
}

func TestAccountUseCase_SendMoney_CacheFailureIsNotFatal(t *testing.T) {
	uc, m := newAccountUseCase(t)

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(654321), gomock.Any()).Return(existingAccount(), nil)
	m.idGen.EXPECT().Generate().Return("ref")
	m.operations.EXPECT().Save(gomock.Any(), m.tx, gomock.Any()).Return(int64(1), nil)
	m.history.EXPECT().Append(gomock.Any(), m.tx, gomock.Any()).Return(int64(1), nil)
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Invalidate(gomock.Any(), int64(654321)).Return(errors.New("redis down"))
	m.metrics.EXPECT().OperationRecorded(domain.Deposit, dec("1"))

	_, err := uc.Deposit(context.Background(), 654321, dec("1"))
	require.NoError(t, err)
}

func TestAccountUseCase_SendMoney_UsesConfiguredLookback(t *testing.T) {
	uc, m := newAccountUseCase(t, usecase.WithLookback(72*time.Hour))

	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.accounts.EXPECT().GetAccountForUpdate(gomock.Any(), m.tx, int64(1), now.Add(-72*time.Hour)).Return(nil, domain.ErrAccountNotFound)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.metrics.EXPECT().OperationRejected("account_not_found")

	_, err := uc.Deposit(context.Background(), 1, dec("1"))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	uc, m := newAccountUseCase(t)
	baseline := now.AddDate(0, 0, -3)

	m.accounts.EXPECT().GetAccount(gomock.Any(), int64(654321), baseline).Return(existingAccount(), nil)
	m.accounts.EXPECT().GetAccount(gomock.Any(), int64(654321), now).Return(existingAccount(), nil)

	account, err := uc.GetAccount(context.Background(), 654321, baseline)
	require.NoError(t, err)
	assert.True(t, account.CalculateBalance().Equal(dec("300")))

	_, err = uc.GetAccount(context.Background(), 654321, time.Time{})
	require.NoError(t, err)
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	uc, m := newAccountUseCase(t)

	m.accounts.EXPECT().ListAccounts(gomock.Any(), now).Return([]*domain.Account{existingAccount()}, nil)

	accounts, err := uc.ListAccounts(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, int64(654321), accounts[0].ID)
}
