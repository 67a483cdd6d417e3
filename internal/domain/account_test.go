package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdci-projets/bank-account/internal/domain"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func op(t domain.OperationType, amount string, at time.Time) domain.Operation {
	return domain.Operation{Movement: domain.Movement{
		AccountID: 1,
		Timestamp: at,
		Amount:    dec(amount),
		Type:      t,
	}}
}

func sampleOperations() []domain.Operation {
	return []domain.Operation{
		op(domain.Deposit, "200", fixedNow.Add(-4*time.Hour)),
		op(domain.Deposit, "500", fixedNow.Add(-3*time.Hour)),
		op(domain.Withdrawal, "100", fixedNow.Add(-2*time.Hour)),
		op(domain.Withdrawal, "400", fixedNow.Add(-1*time.Hour)),
	}
}

func TestAccount_CalculateBalance(t *testing.T) {
	account := domain.NewAccount(1, dec("500"), sampleOperations())

	assert.True(t, account.CalculateBalance().Equal(dec("700")), "got %s", account.CalculateBalance())
}

func TestAccount_CalculateBalanceOperationsToDisplay(t *testing.T) {
	account := domain.NewAccount(1, dec("300"), sampleOperations())

	assert.True(t, account.CalculateBalanceOperationsToDisplay().Equal(dec("200")))
	assert.True(t, account.CalculateBalance().Equal(dec("500")))
}

func TestAccount_CalculateBalanceIgnoresOrder(t *testing.T) {
	ops := sampleOperations()
	reversed := []domain.Operation{ops[3], ops[2], ops[1], ops[0]}

	a := domain.NewAccount(1, dec("10"), ops)
	b := domain.NewAccount(1, dec("10"), reversed)

	assert.True(t, a.CalculateBalance().Equal(b.CalculateBalance()))
}

func TestAccount_Deposit(t *testing.T) {
	account := domain.NewAccount(1, decimal.Zero, nil).WithClock(func() time.Time { return fixedNow })

	created, err := account.Deposit(dec("200"))
	require.NoError(t, err)

	assert.Equal(t, domain.Deposit, created.Type)
	assert.True(t, created.Amount.Equal(dec("200")))
	assert.Equal(t, int64(1), created.AccountID)
	assert.Equal(t, fixedNow, created.Timestamp)
	assert.Zero(t, created.ID)
	require.Len(t, account.Operations(), 1)
	assert.True(t, account.CalculateBalance().Equal(dec("200")))
}

func TestAccount_DepositRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-300", "-0.01"} {
		t.Run(amount, func(t *testing.T) {
			account := domain.NewAccount(1, dec("100"), sampleOperations())

			_, err := account.Deposit(dec(amount))
			require.ErrorIs(t, err, domain.ErrInvalidAmount)
			assert.Contains(t, err.Error(), "deposit amount must be positive")
			assert.Len(t, account.Operations(), 4)
			assert.True(t, account.CalculateBalance().Equal(dec("300")))
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	account := domain.NewAccount(1, dec("100"), sampleOperations())

	created, err := account.Withdraw(dec("300"))
	require.NoError(t, err)

	assert.Equal(t, domain.Withdrawal, created.Type)
	assert.True(t, created.Amount.Equal(dec("300")))
	assert.True(t, account.CalculateBalance().IsZero())
	assert.Len(t, account.Operations(), 5)
}

func TestAccount_WithdrawInsufficientFunds(t *testing.T) {
	account := domain.NewAccount(1, dec("100"), sampleOperations())

	_, err := account.Withdraw(dec("301"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))
	assert.Equal(t, "Insufficient balance: Withdrawal of 301 is not possible, current balance: 300", err.Error())
	assert.Len(t, account.Operations(), 4)
	assert.True(t, account.CalculateBalance().Equal(dec("300")))
}

func TestAccount_WithdrawRejectsNonPositiveAmount(t *testing.T) {
	account := domain.NewAccount(1, dec("100"), nil)

	_, err := account.Withdraw(dec("-5"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, account.Operations())
}

func TestAccount_BalanceProperties(t *testing.T) {
	amounts := []string{"0.01", "1", "99.99", "250", "1000000.5"}

	for _, a := range amounts {
		t.Run(a, func(t *testing.T) {
			account := domain.NewAccount(7, dec("1000"), sampleOperations())
			before := account.CalculateBalance()

			_, err := account.Deposit(dec(a))
			require.NoError(t, err)
			assert.True(t, account.CalculateBalance().Equal(before.Add(dec(a))))

			before = account.CalculateBalance()
			_, err = account.Withdraw(dec(a))
			require.NoError(t, err)
			assert.True(t, account.CalculateBalance().Equal(before.Sub(dec(a))))
		})
	}
}

func TestAccount_OperationsReturnsCopy(t *testing.T) {
	account := domain.NewAccount(1, decimal.Zero, sampleOperations())

	ops := account.Operations()
	ops[0] = op(domain.Withdrawal, "999", fixedNow)

	assert.Equal(t, domain.Deposit, account.Operations()[0].Type)
}
