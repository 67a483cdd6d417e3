package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type demoStep struct {
	accountID int64
	deposit   bool
	amount    int64
}

var demoSteps = []demoStep{
	{654321, true, 500},
	{654321, true, 800},
	{654321, false, 300},
	{654321, false, 200},
	{789123, true, 200},
	{789123, true, 100},
	{789123, false, 100},
	{789123, false, 100},
}

// RunDemo records the demo operations and prints the resulting statements.
func RunDemo(ctx context.Context, api API, printer *Printer) error {
	for _, step := range demoSteps {
		fn := api.Withdraw
		if step.deposit {
			fn = api.Deposit
		}

		op, err := fn(ctx, step.accountID, decimal.NewFromInt(step.amount))
		if err != nil {
			return fmt.Errorf("demo operation on account %d failed: %w", step.accountID, err)
		}
		printer.Operation(op)
	}

	for _, accountID := range []int64{654321, 789123} {
		statement, err := api.Statement(ctx, accountID, time.Time{})
		if err != nil {
			return fmt.Errorf("demo statement for account %d failed: %w", accountID, err)
		}
		printer.Println()
		printer.Statement(statement)
	}

	return nil
}
