package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
)

func TestPrinterStatement(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Statement(&dto.StatementResponse{
		AccountID: 654321,
		Lines: []dto.StatementLineResponse{
			{Timestamp: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), Amount: decimal.NewFromInt(-300), RunningBalance: decimal.NewFromInt(1000)},
			{Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("1300.5"), RunningBalance: decimal.RequireFromString("1300.5")},
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"Statement for account 654321",
		"DATE | AMOUNT | BALANCE",
		"2024-01-02 09:30:00 | -300.00 | 1000.00",
		"2024-01-01 08:00:00 | 1300.50 | 1300.50",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Fatalf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestPrinterErrorShowsServerMessage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Error(&APIError{StatusCode: 404, Summary: "failed", Message: "account not found: account with ID 42 not found"})
	p.Error(errors.New("boom"))

	if got := buf.String(); got != "account not found: account with ID 42 not found\nError: boom\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrinterReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Report(&dto.ReconciliationReportResponse{
		TotalAccounts:      3,
		ReconciledAccounts: 2,
		Discrepancies: []*dto.ReconciliationResponse{
			{AccountID: 78965, OperationsTotal: decimal.NewFromInt(100), HistoryTotal: decimal.NewFromInt(90), Difference: decimal.NewFromInt(10)},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "2/3 accounts reconciled") || !strings.Contains(out, "Account 78965 diverges: operations 100.00, history 90.00, difference 10.00") {
		t.Fatalf("unexpected output %q", out)
	}
}
