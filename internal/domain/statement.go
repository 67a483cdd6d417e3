package domain

import (
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one row of an account statement.
type StatementLine struct {
	Timestamp      time.Time
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal
}

// AccountStatement lists statement lines most recent first.
type AccountStatement struct {
	AccountID int64
	Lines     []StatementLine
}

// GenerateStatement builds the statement of an account from its full history.
// Entries before fromDate only contribute to the opening balance. Balances
// accumulate in history order, and since the lines are returned newest first,
// entries sharing a timestamp appear in reverse insertion order.
func GenerateStatement(accountID int64, history []HistoryEntry, fromDate time.Time) (*AccountStatement, error) {
	var before, after []HistoryEntry
	for _, entry := range history {
		if entry.Timestamp.Before(fromDate) {
			before = append(before, entry)
		} else {
			after = append(after, entry)
		}
	}

	if len(after) == 0 {
		return nil, ErrNoTransactionsFound
	}

	sort.SliceStable(after, func(i, j int) bool {
		return after[i].Timestamp.Before(after[j].Timestamp)
	})

	balance := SignedSum(before)
	lines := make([]StatementLine, 0, len(after))
	for _, entry := range after {
		balance, lines = appendLine(lines, balance, entry.Movement)
	}

	slices.Reverse(lines)

	return &AccountStatement{AccountID: accountID, Lines: lines}, nil
}

// GenerateAccountStatement builds a statement from the operations held by an
// account view. Operations are walked most recent first starting from the
// baseline balance, or from the operations total when no baseline is tracked.
func GenerateAccountStatement(account *Account) *AccountStatement {
	ops := account.Operations()
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Timestamp.After(ops[j].Timestamp)
	})

	balance := account.BaselineBalance
	if balance.IsZero() {
		balance = SignedSum(ops)
	}

	lines := make([]StatementLine, 0, len(ops))
	for _, op := range ops {
		balance, lines = appendLine(lines, balance, op.Movement)
	}

	return &AccountStatement{AccountID: account.ID, Lines: lines}
}

func appendLine(lines []StatementLine, balance decimal.Decimal, m Movement) (decimal.Decimal, []StatementLine) {
	signed := m.SignedAmount()
	balance = balance.Add(signed)

	return balance, append(lines, StatementLine{
		Timestamp:      m.Timestamp,
		Amount:         signed,
		RunningBalance: balance,
	})
}
