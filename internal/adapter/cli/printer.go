package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
)

// DateLayout is how statement dates are shown.
const DateLayout = "2006-01-02 15:04:05"

// Printer renders API results on a terminal.
type Printer struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	header  *color.Color
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		header:  color.New(color.Bold),
	}
}

// Success prints a green message.
func (p *Printer) Success(format string, args ...any) {
	p.success.Fprintf(p.out, format+"\n", args...)
}

// Error prints err in red. API errors show the server message verbatim.
func (p *Printer) Error(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		p.failure.Fprintln(p.out, apiErr.Error())
		return
	}
	p.failure.Fprintf(p.out, "Error: %v\n", err)
}

// Println prints an uncoloured line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Operation reports a recorded deposit or withdrawal.
func (p *Printer) Operation(op *dto.OperationResponse) {
	verb := "Deposit"
	if op.Type == "WITHDRAWAL" {
		verb = "Withdrawal"
	}
	p.Success("%s of %s on account %d succeeded.", verb, op.Amount.StringFixed(2), op.AccountID)
}

// Statement prints one row per statement line, in the order received.
func (p *Printer) Statement(s *dto.StatementResponse) {
	p.header.Fprintf(p.out, "Statement for account %d\n", s.AccountID)
	fmt.Fprintln(p.out, "DATE | AMOUNT | BALANCE")
	for _, line := range s.Lines {
		fmt.Fprintf(p.out, "%s | %s | %s\n",
			line.Timestamp.Format(DateLayout),
			line.Amount.StringFixed(2),
			line.RunningBalance.StringFixed(2),
		)
	}
}

// Accounts prints every account with its balance.
func (p *Printer) Accounts(accounts []*dto.AccountResponse) {
	p.header.Fprintln(p.out, "Available accounts:")
	for _, a := range accounts {
		fmt.Fprintf(p.out, "  %d (balance: %s)\n", a.AccountID, a.Balance.StringFixed(2))
	}
}

// Reconciliation prints the outcome for a single account.
func (p *Printer) Reconciliation(r *dto.ReconciliationResponse) {
	if r.Reconciled {
		p.Success("Account %d reconciled: %s", r.AccountID, r.OperationsTotal.StringFixed(2))
		return
	}
	p.failure.Fprintf(p.out, "Account %d diverges: operations %s, history %s, difference %s\n",
		r.AccountID,
		r.OperationsTotal.StringFixed(2),
		r.HistoryTotal.StringFixed(2),
		r.Difference.StringFixed(2),
	)
}

// Report prints a reconciliation report over all accounts.
func (p *Printer) Report(r *dto.ReconciliationReportResponse) {
	fmt.Fprintf(p.out, "%d/%d accounts reconciled\n", r.ReconciledAccounts, r.TotalAccounts)
	for _, d := range r.Discrepancies {
		p.Reconciliation(d)
	}
	if len(r.Discrepancies) == 0 {
		p.Success("Ledger is consistent.")
	}
}
