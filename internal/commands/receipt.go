package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/auditlog"
	"github.com/propbooks-dev/propbooks/internal/gitops"
	"github.com/propbooks-dev/propbooks/internal/id"
	"github.com/propbooks-dev/propbooks/internal/receipt"
	"github.com/propbooks-dev/propbooks/internal/splits"
)

func newReceiptCommand() *cobra.Command {
	receiptCmd := &cobra.Command{
		Use:   "receipt",
		Short: "Sales receipt operations",
	}
	receiptCmd.AddCommand(newReceiptAddCommand())
	receiptCmd.AddCommand(newReceiptSplitsCommand())
	receiptCmd.AddCommand(newReceiptListCommand())
	return receiptCmd
}

func newReceiptAddCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "add <draft.yaml>",
		Short: "Post a sales receipt from a draft file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(booksDir)
			if err != nil {
				return err
			}
			return runReceiptAdd(b, args[0])
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")

	return cmd
}

func runReceiptAdd(b *books, draftPath string) error {
	draft, err := receipt.LoadDraft(draftPath, b.catalog)
	if err != nil {
		return err
	}
	if draft.AssetAccountID == 0 {
		draft.AssetAccountID = b.cfg.Receipts.DefaultAssetAccountID
	}

	rcpt, entryID, err := b.receipts.Create(draft)
	if err != nil {
		return err
	}

	event := auditlog.NewEvent(b.cfg.Receipts.Actor, auditlog.ActionCreateReceipt)
	event.ReceiptNo = rcpt.No
	event.EntryID = entryID
	event.Details = rcpt.Description
	if err := auditlog.Append(b.dir, []auditlog.Event{event}); err != nil {
		logger.Warn().Err(err).Msg("failed to write audit log")
	}

	b.commit(gitops.ReceiptMessage(rcpt.No, rcpt.Description))

	logger.Info().
		Str("receipt", id.FormatReceiptRef(rcpt.No)).
		Str("entry", entryID).
		Str("amount", rcpt.Amount.StringFixed(2)).
		Msg("posted receipt")
	fmt.Printf("Posted %s (entry %s) for %s\n",
		id.FormatReceiptRef(rcpt.No), entryID, rcpt.Amount.StringFixed(2))
	return nil
}

func newReceiptSplitsCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "splits <draft.yaml>",
		Short: "Preview the debit/credit splits of a draft without posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(booksDir)
			if err != nil {
				return err
			}
			return runReceiptSplits(b, args[0])
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")

	return cmd
}

func runReceiptSplits(b *books, draftPath string) error {
	draft, err := receipt.LoadDraft(draftPath, b.catalog)
	if err != nil {
		return err
	}
	if draft.AssetAccountID == 0 {
		draft.AssetAccountID = b.cfg.Receipts.DefaultAssetAccountID
	}

	raw, adjusted := b.receipts.Preview(draft)
	if len(raw.Rows) == 0 {
		fmt.Println("No splits: add line items and choose an asset account.")
		return nil
	}

	if !raw.Balanced {
		fmt.Printf("Raw derivation off by %s; adjustment applied to first credit row.\n",
			raw.Residue.StringFixed(2))
	}
	printPreview(adjusted)
	return nil
}

func printPreview(p splits.Preview) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tNAME\tPAYER\tDEBIT\tCREDIT")
	for _, row := range p.Rows {
		debit, credit := "", ""
		if !row.Debit.IsZero() {
			debit = row.Debit.StringFixed(2)
		}
		if !row.Credit.IsZero() {
			credit = row.Credit.StringFixed(2)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.AccountID, row.AccountName, row.PayerName, debit, credit)
	}
	fmt.Fprintf(w, "\tTOTAL\t\t%s\t%s\n",
		p.TotalDebit.StringFixed(2), p.TotalCredit.StringFixed(2))
	w.Flush()
}

func newReceiptListCommand() *cobra.Command {
	var booksDir string
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posted receipts for a month",
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
			return runReceiptList(b, year, m)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")
	cmd.Flags().StringVar(&month, "month", "", "month to list, YYYY-MM (required)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runReceiptList(b *books, year, month int) error {
	receipts, err := b.receipts.ReadMonth(year, month)
	if err != nil {
		return err
	}
	if len(receipts) == 0 {
		fmt.Printf("No receipts for %04d-%02d.\n", year, month)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RECEIPT\tDATE\tUNIT\tPAYER\tAMOUNT\tSTATUS\tDESCRIPTION")
	for _, r := range receipts {
		unit, payer := "", ""
		if r.UnitID != 0 {
			unit = b.contacts.UnitName(r.UnitID)
		}
		if r.PayerID != 0 {
			payer = b.contacts.PersonName(r.PayerID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			id.FormatReceiptRef(r.No),
			r.Date.Format("2006-01-02"),
			unit,
			payer,
			r.Amount.StringFixed(2),
			r.Status,
			r.Description)
	}
	return w.Flush()
}

// parseMonth parses "YYYY-MM" into year and month.
func parseMonth(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d: must be 1-12", month)
	}
	return year, month, nil
}
