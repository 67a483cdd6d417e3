package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseOperationType parses an operation type, ignoring case and surrounding spaces.
func ParseOperationType(s string) (OperationType, error) {
	t := OperationType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperationType, s)
	}
	return t, nil
}

// ValidateAmount checks that an amount of the given operation type is positive.
func ValidateAmount(t OperationType, amount decimal.Decimal) error {
	if amount.IsPositive() {
		return nil
	}

	switch t {
	case Deposit:
		return fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount)
	case Withdrawal:
		return fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidAmount)
	default:
		return ErrInvalidAmount
	}
}
