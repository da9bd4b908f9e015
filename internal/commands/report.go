package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/reports"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reports over posted journal entries",
	}
	reportCmd.AddCommand(newTrialBalanceCommand())
	return reportCmd
}

func newTrialBalanceCommand() *cobra.Command {
	var booksDir string
	var month string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Per-account debit/credit totals through a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(booksDir)
			if err != nil {
				return err
			}
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			return runTrialBalance(b, year, m)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")
	cmd.Flags().StringVar(&month, "month", "", "month to report through, YYYY-MM (required)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runTrialBalance(b *books, year, month int) error {
	tb, err := reports.TrialBalanceThrough(b.receipts.Journal(), b.accounts, year, month)
	if err != nil {
		return err
	}
	if len(tb.Rows) == 0 {
		fmt.Printf("No journal entries through %04d-%02d.\n", year, month)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tNAME\tTYPE\tDEBIT\tCREDIT")
	for _, row := range tb.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.AccountID, row.AccountName, row.AccountType,
			row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	fmt.Fprintf(w, "\tTOTAL\t\t%s\t%s\n",
		tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))
	if err := w.Flush(); err != nil {
		return err
	}

	if !tb.Balanced() {
		logger.Error().
			Str("debit", tb.TotalDebit.StringFixed(2)).
			Str("credit", tb.TotalCredit.StringFixed(2)).
			Msg("trial balance does not balance")
		return fmt.Errorf("trial balance off by %s",
			tb.TotalDebit.Sub(tb.TotalCredit).StringFixed(2))
	}
	fmt.Println("Balanced.")
	return nil
}
