package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mdci-projets/bank-account/internal/adapter/cli"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bank-cli",
		Short:         "Bank account CLI tool",
		Long:          `A command line interface for depositing, withdrawing and printing statements through the bank account API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bank account API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		moveCmd("deposit", "Deposit money to an account"),
		moveCmd("withdraw", "Withdraw money from an account"),
		statementCmd(),
		accountsCmd(),
		reconcileCmd(),
		demoCmd(),
		interactiveCmd(),
	)

	return rootCmd
}

func newClient() *cli.Client {
	return cli.NewClient(baseURL, timeout)
}

// run prints err in red and hands it back so cobra exits non-zero.
func run(cmd *cobra.Command, fn func(ctx context.Context, p *cli.Printer) error) error {
	p := cli.NewPrinter(cmd.OutOrStdout())
	if err := fn(cmd.Context(), p); err != nil {
		p.Error(err)
		return err
	}
	return nil
}

func moveCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <account> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, p *cli.Printer) error {
				accountID, err := parseAccountID(args[0])
				if err != nil {
					return err
				}
				amount, err := decimal.NewFromString(args[1])
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[1])
				}

				client := newClient()
				fn := client.Deposit
				if action == "withdraw" {
					fn = client.Withdraw
				}

				op, err := fn(ctx, accountID, amount)
				if err != nil {
					return err
				}
				p.Operation(op)
				return nil
			})
		},
	}
}

func statementCmd() *cobra.Command {
	var (
		from   string
		recent bool
	)

	cmd := &cobra.Command{
		Use:   "statement <account>",
		Short: "Print an account statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, p *cli.Printer) error {
				accountID, err := parseAccountID(args[0])
				if err != nil {
					return err
				}

				client := newClient()
				if recent {
					statement, err := client.RecentStatement(ctx, accountID)
					if err != nil {
						return err
					}
					p.Statement(statement)
					return nil
				}

				var fromDate time.Time
				if from != "" {
					if fromDate, err = parseDate(from); err != nil {
						return err
					}
				}

				statement, err := client.Statement(ctx, accountID, fromDate)
				if err != nil {
					return err
				}
				p.Statement(statement)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (2006-01-02, 2006-01-02T15:04:05 or RFC 3339)")
	cmd.Flags().BoolVar(&recent, "recent", false, "Build the statement from the account's recent operations")
	cmd.MarkFlagsMutuallyExclusive("from", "recent")

	return cmd
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, p *cli.Printer) error {
				accounts, err := newClient().Accounts(ctx)
				if err != nil {
					return err
				}
				p.Accounts(accounts)
				return nil
			})
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [account]",
		Short: "Check that operations and history agree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, p *cli.Printer) error {
				client := newClient()
				if len(args) == 0 {
					report, err := client.ReconciliationReport(ctx)
					if err != nil {
						return err
					}
					p.Report(report)
					return nil
				}

				accountID, err := parseAccountID(args[0])
				if err != nil {
					return err
				}
				result, err := client.Reconcile(ctx, accountID)
				if err != nil {
					return err
				}
				p.Reconciliation(result)
				return nil
			})
		},
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Record the demo operations and print the statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, p *cli.Printer) error {
				return cli.RunDemo(ctx, newClient(), p)
			})
		},
	}
}

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewMenu(newClient(), cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

func parseAccountID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account ID %q", s)
	}
	return id, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
