// Package splits derives the double-entry preview for a sales receipt from
// its line items. The derivation is pure: it is recomputed from scratch on
// every edit and never persists anything. The posted journal, not this
// preview, is the system of record.
package splits

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// ItemResolver resolves catalog item IDs to items.
type ItemResolver interface {
	Item(id int) (model.Item, bool)
}

// AccountResolver resolves account IDs to chart-of-accounts entries.
type AccountResolver interface {
	Account(id int) (model.Account, bool)
}

// PersonResolver resolves people IDs to display records.
type PersonResolver interface {
	Person(id int) (model.Person, bool)
}

// Input is one snapshot of the receipt form.
type Input struct {
	Lines          []model.LineItem
	AssetAccountID int // where the money lands; required for any output
	PayerID        int // 0 = none; metadata on every row
	Items          ItemResolver
	Accounts       AccountResolver
	People         PersonResolver // may be nil
}

// Row is one derived debit or credit line. Exactly one of Debit/Credit is
// non-zero.
type Row struct {
	AccountID   int
	AccountName string
	PayerID     int
	PayerName   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Status      model.ReceiptStatus
}

// Preview is the raw derivation result. Residue is TotalDebit - TotalCredit;
// a non-zero residue means the rows as derived would not post cleanly and
// Balance would adjust them. Callers must treat an empty preview as "not
// ready", not as a balanced zero receipt.
type Preview struct {
	Rows        []Row
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Residue     decimal.Decimal
	Balanced    bool
}

func emptyPreview() Preview {
	return Preview{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Residue:     decimal.Zero,
		Balanced:    true,
	}
}

// Derive computes the split rows for the given form snapshot. It returns an
// empty preview when there are no lines or the asset account is missing or
// unknown; it never returns an error.
func Derive(in Input) Preview {
	if len(in.Lines) == 0 || in.AssetAccountID == 0 || in.Accounts == nil {
		return emptyPreview()
	}
	assetAcct, ok := in.Accounts.Account(in.AssetAccountID)
	if !ok {
		return emptyPreview()
	}

	// Accumulate per-kind totals. Service lines bucket by income account and
	// by sign: non-negative totals credit the account, negative totals debit
	// it, so one account can surface on both sides of the entry.
	serviceCredit := make(map[int]decimal.Decimal)
	serviceDebit := make(map[int]decimal.Decimal)
	discountByAccount := make(map[int]decimal.Decimal)
	paymentByAccount := make(map[int]decimal.Decimal)
	serviceTotal := decimal.Zero
	discountTotal := decimal.Zero
	paymentTotal := decimal.Zero

	for _, line := range in.Lines {
		if line.ItemID == 0 {
			continue
		}
		item, ok := in.Items.Item(line.ItemID)
		if !ok {
			continue
		}

		switch item.Kind {
		case model.ItemKindDiscount:
			amt := line.Total.Abs()
			discountTotal = discountTotal.Add(amt)
			if item.IncomeAccountID != 0 {
				discountByAccount[item.IncomeAccountID] = discountByAccount[item.IncomeAccountID].Add(amt)
			}
		case model.ItemKindPayment:
			amt := line.Total.Abs()
			paymentTotal = paymentTotal.Add(amt)
			if item.AssetAccountID != 0 {
				paymentByAccount[item.AssetAccountID] = paymentByAccount[item.AssetAccountID].Add(amt)
			}
		case model.ItemKindService:
			serviceTotal = serviceTotal.Add(line.Total)
			if item.IncomeAccountID != 0 {
				if line.Total.IsNegative() {
					serviceDebit[item.IncomeAccountID] = serviceDebit[item.IncomeAccountID].Add(line.Total.Abs())
				} else {
					serviceCredit[item.IncomeAccountID] = serviceCredit[item.IncomeAccountID].Add(line.Total)
				}
			}
		}
	}

	payerID, payerName := resolvePayer(in)

	row := func(accountID int, debit, credit decimal.Decimal) Row {
		return Row{
			AccountID:   accountID,
			AccountName: accountName(in.Accounts, accountID),
			PayerID:     payerID,
			PayerName:   payerName,
			Debit:       debit,
			Credit:      credit,
			Status:      model.ReceiptStatusActive,
		}
	}

	var rows []Row

	// Asset account takes the net of the receipt: debit when money comes in,
	// credit when the receipt nets out as a refund. No row for an exact zero.
	netAsset := serviceTotal.Sub(discountTotal).Sub(paymentTotal)
	switch {
	case netAsset.IsPositive():
		r := row(assetAcct.ID, netAsset, decimal.Zero)
		r.AccountName = assetAcct.Name
		rows = append(rows, r)
	case netAsset.IsNegative():
		r := row(assetAcct.ID, decimal.Zero, netAsset.Abs())
		r.AccountName = assetAcct.Name
		rows = append(rows, r)
	}

	// Discounts and prior payments debit their own accounts, one row per
	// distinct account.
	for _, id := range sortedKeys(discountByAccount) {
		if amt := discountByAccount[id]; amt.IsPositive() {
			rows = append(rows, row(id, amt, decimal.Zero))
		}
	}
	for _, id := range sortedKeys(paymentByAccount) {
		if amt := paymentByAccount[id]; amt.IsPositive() {
			rows = append(rows, row(id, amt, decimal.Zero))
		}
	}

	// Service income: credits for positive accumulation, debits for
	// negative-rate reversals.
	for _, id := range sortedKeys(serviceCredit) {
		if amt := serviceCredit[id]; amt.IsPositive() {
			rows = append(rows, row(id, decimal.Zero, amt))
		}
	}
	for _, id := range sortedKeys(serviceDebit) {
		if amt := serviceDebit[id]; amt.IsPositive() {
			rows = append(rows, row(id, amt, decimal.Zero))
		}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, r := range rows {
		totalDebit = totalDebit.Add(r.Debit)
		totalCredit = totalCredit.Add(r.Credit)
	}

	residue := totalDebit.Sub(totalCredit)
	return Preview{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Residue:     residue,
		Balanced:    residue.IsZero(),
	}
}

// Balance absorbs a non-zero residue into the first pure-credit row and
// returns the adjusted preview. The raw preview from Derive is left intact so
// callers can still see that an adjustment was needed. If no pure-credit row
// exists the preview is returned unchanged, residue and all.
func Balance(p Preview) Preview {
	if p.Residue.IsZero() {
		return p
	}

	idx := -1
	for i, r := range p.Rows {
		if r.Debit.IsZero() && !r.Credit.IsZero() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p
	}

	rows := make([]Row, len(p.Rows))
	copy(rows, p.Rows)
	rows[idx].Credit = rows[idx].Credit.Add(p.Residue)

	return Preview{
		Rows:        rows,
		TotalDebit:  p.TotalDebit,
		TotalCredit: p.TotalCredit.Add(p.Residue),
		Residue:     decimal.Zero,
		Balanced:    true,
	}
}

func resolvePayer(in Input) (int, string) {
	if in.PayerID == 0 {
		return 0, ""
	}
	if in.People != nil {
		if p, ok := in.People.Person(in.PayerID); ok {
			return in.PayerID, p.Name
		}
	}
	// Unknown payer IDs still tag the rows; the name just stays blank.
	return in.PayerID, ""
}

func accountName(accounts AccountResolver, id int) string {
	if a, ok := accounts.Account(id); ok {
		return a.Name
	}
	return fmt.Sprintf("ID: %d", id)
}

func sortedKeys(m map[int]decimal.Decimal) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
