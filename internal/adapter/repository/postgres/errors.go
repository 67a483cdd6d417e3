package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// SQLSTATE codes that mean the transaction lost a race and can be replayed.
var retryableCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

// IsRetryableError reports whether a whole balance-changing transaction can
// be replayed after err.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := retryableCodes[pgErr.Code]
		return ok
	}
	return pgconn.SafeToRetry(err)
}

func notFound(err error, accountID int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: account with ID %d not found", domain.ErrAccountNotFound, accountID)
	}
	return err
}
