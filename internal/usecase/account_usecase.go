package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// AccountUseCase handles deposits, withdrawals and account reads.
type AccountUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	operationRepo OperationRepository
	historyRepo   HistoryRepository
	idGen         IDGenerator
	settings
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	operationRepo OperationRepository,
	historyRepo HistoryRepository,
	idGen IDGenerator,
	opts ...Option,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		historyRepo:   historyRepo,
		idGen:         idGen,
		settings:      newSettings(opts),
	}
}

// OperationRequest asks for money to be deposited to or withdrawn from an account.
type OperationRequest struct {
	AccountID int64
	Amount    decimal.Decimal
	Type      domain.OperationType
}

// SendMoney applies req to the account and records the resulting operation
// in both the operation store and the ledger history, in one transaction.
func (uc *AccountUseCase) SendMoney(ctx context.Context, req *OperationRequest) (domain.Operation, error) {
	if req == nil {
		uc.metrics.OperationRejected(rejectionReason(domain.ErrNullRequest))
		return domain.Operation{}, domain.ErrNullRequest
	}
	if !req.Type.Valid() {
		err := fmt.Errorf("%w: %s", domain.ErrUnknownOperationType, req.Type)
		uc.metrics.OperationRejected(rejectionReason(err))
		return domain.Operation{}, err
	}

	uc.logger.Debug().
		Int64("account_id", req.AccountID).
		Str("type", req.Type.String()).
		Str("amount", req.Amount.String()).
		Msg("processing operation")

	var recorded domain.Operation
	err := uc.retrier.Retry(ctx, func() error {
		op, err := uc.record(ctx, req)
		if err != nil {
			return err
		}
		recorded = op
		return nil
	})
	if err != nil {
		uc.metrics.OperationRejected(rejectionReason(err))
		event := uc.logger.Warn()
		if rejectionReason(err) == "storage" {
			event = uc.logger.Error()
		}
		event.Err(err).
			Int64("account_id", req.AccountID).
			Str("type", req.Type.String()).
			Msg("operation rejected")
		return domain.Operation{}, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.AccountID); err != nil {
			uc.logger.Warn().Err(err).Int64("account_id", req.AccountID).Msg("failed to invalidate statement cache")
		}
	}

	uc.metrics.OperationRecorded(recorded.Type, recorded.Amount)
	uc.logger.Info().
		Int64("account_id", recorded.AccountID).
		Int64("operation_id", recorded.ID).
		Str("type", recorded.Type.String()).
		Str("amount", recorded.Amount.String()).
		Msg("operation recorded")

	return recorded, nil
}

// Deposit deposits amount to the account.
func (uc *AccountUseCase) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Operation, error) {
	return uc.SendMoney(ctx, &OperationRequest{AccountID: accountID, Amount: amount, Type: domain.Deposit})
}

// Withdraw withdraws amount from the account.
func (uc *AccountUseCase) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Operation, error) {
	return uc.SendMoney(ctx, &OperationRequest{AccountID: accountID, Amount: amount, Type: domain.Withdrawal})
}

func (uc *AccountUseCase) record(ctx context.Context, req *OperationRequest) (domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return domain.Operation{}, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetAccountForUpdate(ctx, tx, req.AccountID, uc.since())
	if err != nil {
		return domain.Operation{}, err
	}
	account.WithClock(uc.now)

	var op domain.Operation
	switch req.Type {
	case domain.Deposit:
		op, err = account.Deposit(req.Amount)
	case domain.Withdrawal:
		op, err = account.Withdraw(req.Amount)
	}
	if err != nil {
		return domain.Operation{}, err
	}

	op = op.WithReference(uc.idGen.Generate())

	id, err := uc.operationRepo.Save(ctx, tx, op)
	if err != nil {
		return domain.Operation{}, fmt.Errorf("failed to save operation: %w", err)
	}
	op = op.WithID(id)

	if _, err := uc.historyRepo.Append(ctx, tx, domain.HistoryEntryFromOperation(op)); err != nil {
		return domain.Operation{}, fmt.Errorf("failed to append history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Operation{}, err
	}

	return op, nil
}

// GetAccount returns the account with its balance as of baselineDate.
// A zero baselineDate means now.
func (uc *AccountUseCase) GetAccount(ctx context.Context, accountID int64, baselineDate time.Time) (*domain.Account, error) {
	if baselineDate.IsZero() {
		baselineDate = uc.now()
	}
	return uc.accountRepo.GetAccount(ctx, accountID, baselineDate)
}

// ListAccounts returns every account with its balance as of baselineDate.
// A zero baselineDate means now.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, baselineDate time.Time) ([]*domain.Account, error) {
	if baselineDate.IsZero() {
		baselineDate = uc.now()
	}
	return uc.accountRepo.ListAccounts(ctx, baselineDate)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNullRequest):
		return "null_request"
	case errors.Is(err, domain.ErrUnknownOperationType):
		return "unknown_operation_type"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	default:
		return "storage"
	}
}
