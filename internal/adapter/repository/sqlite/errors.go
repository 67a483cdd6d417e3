package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// IsRetryableError reports whether err is a transient locking error.
func IsRetryableError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return true
		}
	}
	return false
}
