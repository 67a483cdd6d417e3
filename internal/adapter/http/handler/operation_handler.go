package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

// OperationService defines the behavior needed by OperationHandler.
type OperationService interface {
	SendMoney(ctx context.Context, req *usecase.OperationRequest) (domain.Operation, error)
}

// OperationHandler handles generic operation requests.
type OperationHandler struct {
	operationUC OperationService
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(operationUC OperationService) *OperationHandler {
	return &OperationHandler{operationUC: operationUC}
}

// Create records the operation described by the body. A JSON null body is
// passed on as a nil request.
func (h *OperationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body *dto.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var req *usecase.OperationRequest
	if body != nil {
		var err error
		req, err = body.ToUseCaseInput()
		if err != nil {
			writeDomainError(w, "invalid operation", err)
			return
		}
	}

	op, err := h.operationUC.SendMoney(r.Context(), req)
	if err != nil {
		writeDomainError(w, "failed to record operation", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(op))
}
