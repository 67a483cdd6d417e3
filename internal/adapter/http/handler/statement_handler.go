package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
	"github.com/mdci-projets/bank-account/internal/domain"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	GenerateAccountStatement(ctx context.Context, accountID int64, fromDate time.Time) (*domain.AccountStatement, error)
	GetRecentStatement(ctx context.Context, accountID int64) (*domain.AccountStatement, error)
}

// StatementHandler serves account statements.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// Get returns the statement of an account from its ledger history.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	from, err := parseDateQuery(r, "from_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	statement, err := h.statementUC.GenerateAccountStatement(r.Context(), id, from)
	if err != nil {
		writeDomainError(w, "failed to generate statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// Recent returns the statement of the recent operations of an account.
func (h *StatementHandler) Recent(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	statement, err := h.statementUC.GetRecentStatement(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to generate statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}
