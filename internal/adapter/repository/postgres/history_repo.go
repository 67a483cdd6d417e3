package postgres

import (
	"context"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/infrastructure/postgres/generated"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

// HistoryRepository implements usecase.HistoryRepository.
type HistoryRepository struct {
	queries *generated.Queries
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db generated.DBTX) *HistoryRepository {
	return &HistoryRepository{queries: generated.New(db)}
}

// Append inserts entry within tx and returns its id.
func (r *HistoryRepository) Append(ctx context.Context, tx usecase.Transaction, entry domain.HistoryEntry) (int64, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return 0, err
	}

	return queries.CreateHistoryEntry(ctx, generated.CreateHistoryEntryParams{
		AccountID:     entry.AccountID,
		Reference:     entry.Reference,
		Amount:        decimalToNumeric(entry.Amount),
		OperationType: entry.Type.String(),
		OccurredAt:    timeToPgTimestamptz(entry.Timestamp),
	})
}

// ListByAccount returns the history of an account in insertion order.
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.HistoryEntry, error) {
	rows, err := r.queries.ListHistoryByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := rowToHistoryEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
