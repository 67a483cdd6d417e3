package sqlite

import (
	"context"
	"database/sql"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

const (
	createHistoryEntry = `INSERT INTO operation_history (account_id, reference, amount, operation_type, occurred_at)
VALUES (?, ?, ?, ?, ?)`

	listHistoryByAccount = `SELECT id, account_id, reference, amount, operation_type, occurred_at FROM operation_history
WHERE account_id = ?
ORDER BY id`
)

// HistoryRepository implements usecase.HistoryRepository.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts entry within tx and returns its id.
func (r *HistoryRepository) Append(ctx context.Context, tx usecase.Transaction, entry domain.HistoryEntry) (int64, error) {
	q, err := querierFor(tx)
	if err != nil {
		return 0, err
	}

	return insertMovement(ctx, q, createHistoryEntry, entry.Movement)
}

// ListByAccount returns the history of an account in insertion order.
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, listHistoryByAccount, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		id, m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.HistoryEntry{ID: id, Movement: m})
	}

	return entries, rows.Err()
}
