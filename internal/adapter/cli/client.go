package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
)

// APIError is a non-success response from the bank API.
type APIError struct {
	StatusCode int
	Summary    string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Summary != "" {
		return e.Summary
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client talks to the bank HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Deposit credits amount to the account.
func (c *Client) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error) {
	return c.move(ctx, accountID, "deposit", amount)
}

// Withdraw debits amount from the account.
func (c *Client) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error) {
	return c.move(ctx, accountID, "withdraw", amount)
}

func (c *Client) move(ctx context.Context, accountID int64, action string, amount decimal.Decimal) (*dto.OperationResponse, error) {
	var op dto.OperationResponse
	path := fmt.Sprintf("/api/v1/accounts/%d/%s", accountID, action)
	if err := c.do(ctx, http.MethodPost, path, dto.AmountRequest{Amount: amount}, &op, http.StatusCreated); err != nil {
		return nil, err
	}
	return &op, nil
}

// Statement fetches the history statement of an account. A zero from lets
// the server apply its default lookback.
func (c *Client) Statement(ctx context.Context, accountID int64, from time.Time) (*dto.StatementResponse, error) {
	path := "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/statement"
	if !from.IsZero() {
		path += "?" + url.Values{"from_date": {from.UTC().Format(time.RFC3339)}}.Encode()
	}

	var statement dto.StatementResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &statement, http.StatusOK); err != nil {
		return nil, err
	}
	return &statement, nil
}

// RecentStatement fetches the statement built from the account's recent operations.
func (c *Client) RecentStatement(ctx context.Context, accountID int64) (*dto.StatementResponse, error) {
	var statement dto.StatementResponse
	path := fmt.Sprintf("/api/v1/accounts/%d/statement/recent", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, &statement, http.StatusOK); err != nil {
		return nil, err
	}
	return &statement, nil
}

// Accounts lists all accounts with their balances.
func (c *Client) Accounts(ctx context.Context) ([]*dto.AccountResponse, error) {
	var list dto.ListAccountsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/accounts", nil, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Accounts, nil
}

// Reconcile checks a single account. A diverging account is a result, not an error.
func (c *Client) Reconcile(ctx context.Context, accountID int64) (*dto.ReconciliationResponse, error) {
	var result dto.ReconciliationResponse
	path := fmt.Sprintf("/api/v1/ledger/reconciliation/%d", accountID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK, http.StatusConflict); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReconciliationReport checks every account.
func (c *Client) ReconciliationReport(ctx context.Context) (*dto.ReconciliationReportResponse, error) {
	var report dto.ReconciliationReportResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/ledger/reconciliation", nil, &report, http.StatusOK, http.StatusConflict); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, accepted ...int) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if !slices.Contains(accepted, resp.StatusCode) {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody dto.ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil {
			apiErr.Summary = errBody.Error
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
