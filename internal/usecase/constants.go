package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single balance-changing transaction
	// so a stuck row lock cannot pin the account.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultLookback is the statement and balance window: ten days.
	DefaultLookback = 10 * 24 * time.Hour

	// DefaultStatementCacheTTL is how long a cached statement is served.
	DefaultStatementCacheTTL = 5 * time.Minute
)
