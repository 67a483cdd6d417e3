package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

// OperationRequest represents a request to deposit or withdraw money.
type OperationRequest struct {
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *OperationRequest) ToUseCaseInput() (*usecase.OperationRequest, error) {
	opType, err := domain.ParseOperationType(r.Type)
	if err != nil {
		return nil, err
	}

	return &usecase.OperationRequest{
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Type:      opType,
	}, nil
}

// AmountRequest carries the amount of a deposit or withdrawal on a known account.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
