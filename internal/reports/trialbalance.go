// Package reports computes summaries over posted journal legs.
package reports

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// JournalReader supplies the legs a report runs over.
type JournalReader interface {
	ReadThrough(year, month int) ([]model.Leg, error)
}

// AccountDirectory resolves account ids to accounts.
type AccountDirectory interface {
	Account(id int) (model.Account, bool)
}

// TrialBalanceRow is one account's debit and credit totals.
type TrialBalanceRow struct {
	AccountID   int
	AccountName string
	AccountType model.AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalance is per-account debit/credit totals through a month. Legs from
// voided receipts are excluded.
type TrialBalance struct {
	Year        int
	Month       int
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Balanced reports whether total debits equal total credits.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// TrialBalanceThrough computes the trial balance from the start of the books
// through year/month inclusive.
func TrialBalanceThrough(journal JournalReader, accounts AccountDirectory, year, month int) (TrialBalance, error) {
	legs, err := journal.ReadThrough(year, month)
	if err != nil {
		return TrialBalance{}, fmt.Errorf("reading journal: %w", err)
	}

	byAccount := make(map[int]*TrialBalanceRow)
	for _, leg := range legs {
		if leg.Status == model.ReceiptStatusVoided {
			continue
		}
		row, ok := byAccount[leg.AccountID]
		if !ok {
			row = &TrialBalanceRow{AccountID: leg.AccountID}
			if acct, found := accounts.Account(leg.AccountID); found {
				row.AccountName = acct.Name
				row.AccountType = acct.Type
			} else {
				row.AccountName = fmt.Sprintf("ID: %d", leg.AccountID)
			}
			byAccount[leg.AccountID] = row
		}
		row.Debit = row.Debit.Add(leg.Debit)
		row.Credit = row.Credit.Add(leg.Credit)
	}

	tb := TrialBalance{Year: year, Month: month}
	ids := make([]int, 0, len(byAccount))
	for id := range byAccount {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		row := byAccount[id]
		tb.Rows = append(tb.Rows, *row)
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}
	return tb, nil
}
