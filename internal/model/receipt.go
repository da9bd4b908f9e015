package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus is the lifecycle state of a sales receipt.
type ReceiptStatus string

const (
	ReceiptStatusActive ReceiptStatus = "active"
	ReceiptStatusVoided ReceiptStatus = "voided"
)

// LineItem is one editable row of a receipt being drafted. Qty, Rate, and
// Total are normalized by the line policy before split derivation; Total is
// derived, never user-entered.
type LineItem struct {
	ItemID        int // 0 = not yet chosen
	Qty           decimal.Decimal
	Rate          decimal.Decimal
	PreviousValue decimal.NullDecimal // meter reading carry-over, optional
	CurrentValue  decimal.NullDecimal
	Total         decimal.Decimal
}

// Receipt is a persisted receipt header (one row in receipts.csv). The line
// items it was built from are posted to the journal as splits; the header
// keeps only the clamped display total.
type Receipt struct {
	No          int
	Date        time.Time
	UnitID      int
	PayerID     int
	AccountID   int // asset account the money lands in
	Amount      decimal.Decimal
	Description string
	Status      ReceiptStatus
}
