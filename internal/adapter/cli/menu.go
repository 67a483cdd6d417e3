package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/adapter/http/dto"
)

// API is the part of Client used by the menu and the demo.
type API interface {
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error)
	Statement(ctx context.Context, accountID int64, from time.Time) (*dto.StatementResponse, error)
	Accounts(ctx context.Context) ([]*dto.AccountResponse, error)
}

// Menu is the interactive line menu.
type Menu struct {
	api     API
	printer *Printer
	out     io.Writer
	in      *bufio.Scanner
}

// NewMenu creates a menu reading choices from in.
func NewMenu(api API, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		api:     api,
		printer: NewPrinter(out),
		out:     out,
		in:      bufio.NewScanner(in),
	}
}

// Run loops until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	if accounts, err := m.api.Accounts(ctx); err != nil {
		m.printer.Error(err)
	} else {
		m.printer.Accounts(accounts)
	}

	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "1. Deposit")
		fmt.Fprintln(m.out, "2. Withdraw")
		fmt.Fprintln(m.out, "3. Statement")
		fmt.Fprintln(m.out, "4. Exit")

		choice, ok := m.prompt("Choose an option: ")
		if !ok {
			return m.in.Err()
		}

		switch choice {
		case "1":
			m.move(ctx, m.api.Deposit)
		case "2":
			m.move(ctx, m.api.Withdraw)
		case "3":
			m.statement(ctx)
		case "4":
			m.printer.Println("Goodbye.")
			return nil
		default:
			m.printer.Println("Invalid choice, please try again.")
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

type moveFunc func(ctx context.Context, accountID int64, amount decimal.Decimal) (*dto.OperationResponse, error)

func (m *Menu) move(ctx context.Context, fn moveFunc) {
	accountID, ok := m.accountID()
	if !ok {
		return
	}

	raw, ok := m.prompt("Amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		m.printer.Error(fmt.Errorf("invalid amount %q", raw))
		return
	}

	op, err := fn(ctx, accountID, amount)
	if err != nil {
		m.printer.Error(err)
		return
	}
	m.printer.Operation(op)
}

func (m *Menu) statement(ctx context.Context) {
	accountID, ok := m.accountID()
	if !ok {
		return
	}

	statement, err := m.api.Statement(ctx, accountID, time.Time{})
	if err != nil {
		m.printer.Error(err)
		return
	}
	m.printer.Statement(statement)
}

func (m *Menu) accountID() (int64, bool) {
	raw, ok := m.prompt("Account ID: ")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.printer.Error(fmt.Errorf("invalid account ID %q", raw))
		return 0, false
	}
	return id, true
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}
