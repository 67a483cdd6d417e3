package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// Amounts are stored as decimal strings and timestamps as unix nanoseconds.

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovement(s scanner) (int64, domain.Movement, error) {
	var (
		id       int64
		m        domain.Movement
		amount   string
		opType   string
		occurred int64
	)

	if err := s.Scan(&id, &m.AccountID, &m.Reference, &amount, &opType, &occurred); err != nil {
		return 0, domain.Movement{}, err
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, domain.Movement{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}

	m.Amount = d
	m.Type = domain.OperationType(opType)
	m.Timestamp = fromNanos(occurred)

	return id, m, nil
}

func notFound(err error, accountID int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: account with ID %d not found", domain.ErrAccountNotFound, accountID)
	}
	return err
}
