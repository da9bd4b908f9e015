package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leg is a single row in journal.csv (one side of a double-entry split).
type Leg struct {
	EntryID     string    // "YYYY-MM-NNNx" where x = a,b,c...
	Date        time.Time //nolint:revive // plain field name is clearest
	AccountID   int       //nolint:revive
	Description string    //nolint:revive
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	PayerID     int             // 0 = no payer attached
	PayerName   string
	UnitID      int
	ReceiptNo   int
	Status      ReceiptStatus
}

// EntryGroup returns the base entry ID (without leg suffix).
// "2025-01-001a" -> "2025-01-001"
func (l Leg) EntryGroup() string {
	id := l.EntryID
	if len(id) == 0 {
		return ""
	}
	// Trim trailing letter(s) that form the leg suffix.
	i := len(id)
	for i > 0 && id[i-1] >= 'a' && id[i-1] <= 'z' {
		i--
	}
	return id[:i]
}
