package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
	"github.com/mdci-projets/bank-account/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountID       int64           `json:"account_id"`
	BaselineBalance decimal.Decimal `json:"baseline_balance"`
	Balance         decimal.Decimal `json:"balance"`
	Operations      int             `json:"operations"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID:       a.ID,
		BaselineBalance: a.BaselineBalance,
		Balance:         a.CalculateBalance(),
		Operations:      len(a.Operations()),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// OperationResponse represents a recorded operation.
type OperationResponse struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Reference string          `json:"reference"`
}

// OperationFromDomain converts domain operation to response.
func OperationFromDomain(op domain.Operation) *OperationResponse {
	return &OperationResponse{
		ID:        op.ID,
		AccountID: op.AccountID,
		Type:      op.Type.String(),
		Amount:    op.Amount,
		Timestamp: op.Timestamp,
		Reference: op.Reference,
	}
}

// StatementLineResponse is one statement row.
type StatementLineResponse struct {
	Timestamp      time.Time       `json:"timestamp"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// StatementResponse represents an account statement, most recent line first.
type StatementResponse struct {
	AccountID int64                   `json:"account_id"`
	Lines     []StatementLineResponse `json:"lines"`
}

// StatementFromDomain converts a domain statement to response.
func StatementFromDomain(s *domain.AccountStatement) *StatementResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = StatementLineResponse(l)
	}
	return &StatementResponse{AccountID: s.AccountID, Lines: lines}
}

// ReconciliationResponse reports whether an account's operations and history agree.
type ReconciliationResponse struct {
	AccountID       int64           `json:"account_id"`
	OperationsTotal decimal.Decimal `json:"operations_total"`
	HistoryTotal    decimal.Decimal `json:"history_total"`
	Difference      decimal.Decimal `json:"difference"`
	Reconciled      bool            `json:"reconciled"`
	CheckedAt       time.Time       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:       r.AccountID,
		OperationsTotal: r.OperationsTotal,
		HistoryTotal:    r.HistoryTotal,
		Difference:      r.Difference,
		Reconciled:      r.IsReconciled,
		CheckedAt:       r.LastChecked,
	}
}

// ReconciliationReportResponse summarizes reconciliation over all accounts.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a report to response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, 0, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		discrepancies = append(discrepancies, ReconciliationFromUseCase(d))
	}
	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
