package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", time.Second)
}

func TestClientDepositPostsAmount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/accounts/654321/deposit" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"amount":"500"}` {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"account_id":654321,"type":"DEPOSIT","amount":"500","timestamp":"2024-01-01T10:00:00Z"}`))
	})

	op, err := client.Deposit(context.Background(), 654321, decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.ID != 1 || op.Type != "DEPOSIT" || !op.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected operation %+v", op)
	}
}

func TestClientReturnsServerMessage(t *testing.T) {
	const message = "Insufficient balance: Withdrawal of 900 is not possible, current balance: 800"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to withdraw", "message": message})
	})

	_, err := client.Withdraw(context.Background(), 654321, decimal.NewFromInt(900))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Error() != message {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestClientErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Accounts(context.Background())
	if err == nil || err.Error() != "unexpected status 502" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientStatementQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("from_date")
		w.Write([]byte(`{"account_id":654321,"lines":[{"timestamp":"2024-01-01T10:00:00Z","amount":"-200","running_balance":"800"}]}`))
	})

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	statement, err := client.Statement(context.Background(), 654321, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected from_date %q", gotQuery)
	}
	if len(statement.Lines) != 1 || !statement.Lines[0].RunningBalance.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("unexpected statement %+v", statement)
	}

	if _, err := client.Statement(context.Background(), 654321, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no from_date for zero time, got %q", gotQuery)
	}
}

func TestClientReconcileAcceptsConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ledger/reconciliation/78965" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"account_id":78965,"operations_total":"100","history_total":"90","difference":"10","reconciled":false}`))
	})

	result, err := client.Reconcile(context.Background(), 78965)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reconciled || !result.Difference.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestClientAccounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accounts":[{"account_id":78965,"balance":"0"},{"account_id":654321,"balance":"800"}],"total":2}`))
	})

	accounts, err := client.Accounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[1].AccountID != 654321 {
		t.Fatalf("unexpected accounts %+v", accounts)
	}
}
