package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/infrastructure/postgres/generated"
)

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(n.Int.String())
	if err != nil {
		return decimal.Zero, err
	}

	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d, nil
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func rowToMovement(accountID int64, ref string, amount pgtype.Numeric, opType string, at pgtype.Timestamptz) (domain.Movement, error) {
	d, err := numericToDecimal(amount)
	if err != nil {
		return domain.Movement{}, err
	}

	return domain.Movement{
		AccountID: accountID,
		Timestamp: at.Time.UTC(),
		Amount:    d,
		Type:      domain.OperationType(opType),
		Reference: ref,
	}, nil
}

func rowToOperation(row generated.Operation) (domain.Operation, error) {
	m, err := rowToMovement(row.AccountID, row.Reference, row.Amount, row.OperationType, row.OccurredAt)
	if err != nil {
		return domain.Operation{}, err
	}
	return domain.Operation{ID: row.ID, Movement: m}, nil
}

func rowToHistoryEntry(row generated.OperationHistory) (domain.HistoryEntry, error) {
	m, err := rowToMovement(row.AccountID, row.Reference, row.Amount, row.OperationType, row.OccurredAt)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	return domain.HistoryEntry{ID: row.ID, Movement: m}, nil
}
