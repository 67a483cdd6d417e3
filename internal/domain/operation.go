package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the direction of a monetary movement.
type OperationType string

const (
	Deposit    OperationType = "DEPOSIT"
	Withdrawal OperationType = "WITHDRAWAL"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case Deposit, Withdrawal:
		return true
	default:
		return false
	}
}

func (t OperationType) String() string {
	return string(t)
}

// Signed applies the direction of t to a positive magnitude.
func (t OperationType) Signed(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case Deposit:
		return amount
	case Withdrawal:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

// Movement holds the fields shared by operations and history entries.
// Amount is always a positive magnitude; the sign comes from Type.
type Movement struct {
	AccountID int64
	Timestamp time.Time
	Amount    decimal.Decimal
	Type      OperationType
	Reference string
}

// SignedAmount returns the amount with the sign of the movement type.
func (m Movement) SignedAmount() decimal.Decimal {
	return m.Type.Signed(m.Amount)
}

// LedgerRecord is implemented by every persisted kind of movement.
type LedgerRecord interface {
	RecordID() int64
	Record() Movement
}

// Operation is a movement recorded against the current state of an account.
// ID is zero until the operation has been persisted.
type Operation struct {
	ID int64
	Movement
}

// RecordID returns the storage identifier of the operation.
func (o Operation) RecordID() int64 { return o.ID }

// Record returns the movement carried by the operation.
func (o Operation) Record() Movement { return o.Movement }

// WithID returns a copy of the operation carrying the given identifier.
func (o Operation) WithID(id int64) Operation {
	o.ID = id
	return o
}

// WithReference returns a copy of the operation carrying the given reference.
func (o Operation) WithReference(ref string) Operation {
	o.Reference = ref
	return o
}

// HistoryEntry is an append-only copy of an operation kept in the ledger history.
type HistoryEntry struct {
	ID int64
	Movement
}

// RecordID returns the storage identifier of the history entry.
func (h HistoryEntry) RecordID() int64 { return h.ID }

// Record returns the movement carried by the history entry.
func (h HistoryEntry) Record() Movement { return h.Movement }

// HistoryEntryFromOperation builds the history twin of an operation.
// The history entry gets its own identifier when appended.
func HistoryEntryFromOperation(op Operation) HistoryEntry {
	return HistoryEntry{Movement: op.Movement}
}

// SignedSum adds up the signed amounts of records.
func SignedSum[T LedgerRecord](records []T) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Record().SignedAmount())
	}
	return sum
}
