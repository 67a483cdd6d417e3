package domain

import "errors"

var (
	// Request errors
	ErrNullRequest          = errors.New("invalid request: operation request is nil")
	ErrUnknownOperationType = errors.New("unknown operation type")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("Insufficient balance") //nolint:staticcheck // message is part of the public contract

	// Statement errors
	ErrNoTransactionsFound = errors.New("no transaction found after the specified date")
)
