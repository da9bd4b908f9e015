package model

import "github.com/shopspring/decimal"

// ItemKind controls how a catalog item's amount flows into receipt splits.
type ItemKind string

const (
	// ItemKindService bills quantity x rate into an income account.
	ItemKindService ItemKind = "service"
	// ItemKindDiscount reduces the receipt total; always quantity 1.
	ItemKindDiscount ItemKind = "discount"
	// ItemKindPayment applies a prior payment against the receipt; always quantity 1.
	ItemKindPayment ItemKind = "payment"
)

// Item is a row in the billing catalog (catalog/items.csv).
type Item struct {
	ID              int
	Name            string
	Kind            ItemKind
	IncomeAccountID int // 0 = none
	AssetAccountID  int // 0 = none; only meaningful for payment items
	AvgCost         decimal.Decimal
	Description     string
}

// ReducesTotal reports whether the item always subtracts from the receipt total.
func (i Item) ReducesTotal() bool {
	return i.Kind == ItemKindDiscount || i.Kind == ItemKindPayment
}
