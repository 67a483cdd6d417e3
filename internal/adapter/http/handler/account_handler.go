package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
	"github.com/mdci-projets/bank-account/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(ctx context.Context, accountID int64, baselineDate time.Time) (*domain.Account, error)
	ListAccounts(ctx context.Context, baselineDate time.Time) ([]*domain.Account, error)
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Operation, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Operation, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	baseline, err := parseDateQuery(r, "baseline_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid baseline date", err.Error())
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id, baseline)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	baseline, err := parseDateQuery(r, "baseline_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid baseline date", err.Error())
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), baseline)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Deposit deposits money to an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.accountUC.Deposit, "failed to deposit")
}

// Withdraw withdraws money from an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.accountUC.Withdraw, "failed to withdraw")
}

type movementFunc func(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Operation, error)

func (h *AccountHandler) move(w http.ResponseWriter, r *http.Request, fn movementFunc, summary string) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	op, err := fn(r.Context(), id, req.Amount)
	if err != nil {
		writeDomainError(w, summary, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(op))
}
