package postgres

import (
	"context"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/infrastructure/postgres/generated"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

// OperationRepository implements usecase.OperationRepository.
type OperationRepository struct{}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository() *OperationRepository {
	return &OperationRepository{}
}

// Save inserts op within tx and returns its id.
func (r *OperationRepository) Save(ctx context.Context, tx usecase.Transaction, op domain.Operation) (int64, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return 0, err
	}

	return queries.CreateOperation(ctx, generated.CreateOperationParams{
		AccountID:     op.AccountID,
		Reference:     op.Reference,
		Amount:        decimalToNumeric(op.Amount),
		OperationType: op.Type.String(),
		OccurredAt:    timeToPgTimestamptz(op.Timestamp),
	})
}
