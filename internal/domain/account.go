package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a view of a bank account: the balance as of a baseline date plus
// the operations recorded since then. It is rebuilt on every read and never
// persisted as a whole.
type Account struct {
	ID              int64
	BaselineBalance decimal.Decimal

	operations []Operation
	now        func() time.Time
}

// NewAccount creates an account view from a baseline balance and the
// operations recorded after the baseline date.
func NewAccount(id int64, baseline decimal.Decimal, operations []Operation) *Account {
	ops := make([]Operation, len(operations))
	copy(ops, operations)

	return &Account{
		ID:              id,
		BaselineBalance: baseline,
		operations:      ops,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp new operations.
func (a *Account) WithClock(now func() time.Time) *Account {
	a.now = now
	return a
}

// Operations returns a copy of the operations held by the account.
func (a *Account) Operations() []Operation {
	ops := make([]Operation, len(a.operations))
	copy(ops, a.operations)
	return ops
}

// Deposit records a deposit of amount and returns the new operation.
func (a *Account) Deposit(amount decimal.Decimal) (Operation, error) {
	if err := ValidateAmount(Deposit, amount); err != nil {
		return Operation{}, err
	}

	return a.AddOperation(a.newOperation(Deposit, amount)), nil
}

// Withdraw records a withdrawal of amount and returns the new operation.
// The withdrawal is rejected when amount exceeds the current balance.
func (a *Account) Withdraw(amount decimal.Decimal) (Operation, error) {
	if err := ValidateAmount(Withdrawal, amount); err != nil {
		return Operation{}, err
	}

	balance := a.CalculateBalance()
	if amount.GreaterThan(balance) {
		return Operation{}, fmt.Errorf("%w: Withdrawal of %s is not possible, current balance: %s",
			ErrInsufficientFunds, amount.String(), balance.String())
	}

	return a.AddOperation(a.newOperation(Withdrawal, amount)), nil
}

// AddOperation appends an operation to the account without validation.
func (a *Account) AddOperation(op Operation) Operation {
	a.operations = append(a.operations, op)
	return op
}

// CalculateBalance returns the baseline balance plus the signed sum of the
// held operations.
func (a *Account) CalculateBalance() decimal.Decimal {
	return a.BaselineBalance.Add(SignedSum(a.operations))
}

// CalculateBalanceOperationsToDisplay returns the signed sum of the held
// operations, without the baseline.
func (a *Account) CalculateBalanceOperationsToDisplay() decimal.Decimal {
	return SignedSum(a.operations)
}

func (a *Account) newOperation(t OperationType, amount decimal.Decimal) Operation {
	return Operation{
		Movement: Movement{
			AccountID: a.ID,
			Timestamp: a.now(),
			Amount:    amount,
			Type:      t,
		},
	}
}
