package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
)

type call struct {
	action    string
	accountID int64
	amount    string
}

type fakeAPI struct {
	calls       []call
	withdrawErr error
}

func (f *fakeAPI) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error) {
	f.calls = append(f.calls, call{"deposit", accountID, amount.String()})
	return &dto.OperationResponse{AccountID: accountID, Type: "DEPOSIT", Amount: amount}, nil
}

func (f *fakeAPI) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error) {
	f.calls = append(f.calls, call{"withdraw", accountID, amount.String()})
	if f.withdrawErr != nil {
		return nil, f.withdrawErr
	}
	return &dto.OperationResponse{AccountID: accountID, Type: "WITHDRAWAL", Amount: amount}, nil
}

func (f *fakeAPI) Statement(ctx context.Context, accountID int64, from time.Time) (*dto.StatementResponse, error) {
	f.calls = append(f.calls, call{"statement", accountID, ""})
	return &dto.StatementResponse{AccountID: accountID}, nil
}

func (f *fakeAPI) Accounts(ctx context.Context) ([]*dto.AccountResponse, error) {
	return []*dto.AccountResponse{{AccountID: 654321, Balance: decimal.NewFromInt(800)}}, nil
}

func TestMenuRunsChoicesUntilExit(t *testing.T) {
	api := &fakeAPI{withdrawErr: &APIError{StatusCode: 403, Message: "Insufficient balance: Withdrawal of 900 is not possible, current balance: 800"}}
	input := strings.Join([]string{
		"1", "654321", "100",
		"9",
		"2", "654321", "900",
		"3", "654321",
		"4",
		"1", "654321", "5",
	}, "\n")
	var out bytes.Buffer

	if err := NewMenu(api, strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedCalls := []call{
		{"deposit", 654321, "100"},
		{"withdraw", 654321, "900"},
		{"statement", 654321, ""},
	}
	if len(api.calls) != len(expectedCalls) {
		t.Fatalf("expected calls %v, got %v", expectedCalls, api.calls)
	}
	for i := range expectedCalls {
		if api.calls[i] != expectedCalls[i] {
			t.Fatalf("call %d: expected %v, got %v", i, expectedCalls[i], api.calls[i])
		}
	}

	for _, want := range []string{
		"654321 (balance: 800.00)",
		"Deposit of 100.00 on account 654321 succeeded.",
		"Invalid choice, please try again.",
		"Insufficient balance: Withdrawal of 900 is not possible, current balance: 800",
		"DATE | AMOUNT | BALANCE",
		"Goodbye.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestMenuRejectsInvalidInput(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	input := "1\nabc\n1\n654321\nten\n"
	if err := NewMenu(api, strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.calls) != 0 {
		t.Fatalf("expected no API calls, got %v", api.calls)
	}
	if !strings.Contains(out.String(), `Error: invalid account ID "abc"`) || !strings.Contains(out.String(), `Error: invalid amount "ten"`) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunDemo(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	if err := RunDemo(context.Background(), api, NewPrinter(&out)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.calls) != len(demoSteps)+2 {
		t.Fatalf("expected %d calls, got %d", len(demoSteps)+2, len(api.calls))
	}
	if api.calls[2] != (call{"withdraw", 654321, "300"}) {
		t.Fatalf("unexpected third call %v", api.calls[2])
	}
	if api.calls[len(api.calls)-1] != (call{"statement", 789123, ""}) {
		t.Fatalf("unexpected last call %v", api.calls[len(api.calls)-1])
	}
}

func TestRunDemoStopsOnError(t *testing.T) {
	api := &fakeAPI{withdrawErr: errors.New("down")}

	err := RunDemo(context.Background(), api, NewPrinter(&bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "account 654321") {
		t.Fatalf("expected demo error, got %v", err)
	}
	if len(api.calls) != 3 {
		t.Fatalf("expected demo to stop after failing withdrawal, got %v", api.calls)
	}
}
