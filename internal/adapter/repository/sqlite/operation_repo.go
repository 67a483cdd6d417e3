package sqlite

import (
	"context"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

const createOperation = `INSERT INTO operations (account_id, reference, amount, operation_type, occurred_at)
VALUES (?, ?, ?, ?, ?)`

// OperationRepository implements usecase.OperationRepository.
type OperationRepository struct{}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository() *OperationRepository {
	return &OperationRepository{}
}

// Save inserts op within tx and returns its id.
func (r *OperationRepository) Save(ctx context.Context, tx usecase.Transaction, op domain.Operation) (int64, error) {
	q, err := querierFor(tx)
	if err != nil {
		return 0, err
	}

	return insertMovement(ctx, q, createOperation, op.Movement)
}

func insertMovement(ctx context.Context, q querier, query string, m domain.Movement) (int64, error) {
	res, err := q.ExecContext(ctx, query,
		m.AccountID,
		m.Reference,
		m.Amount.String(),
		m.Type.String(),
		toNanos(m.Timestamp),
	)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}
