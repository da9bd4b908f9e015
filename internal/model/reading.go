package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reading is a metered-utility reading for a unit (readings.csv). Amount is
// derived: (CurrentValue - PreviousValue) x UnitPrice.
type Reading struct {
	ItemID        int
	UnitID        int
	Date          time.Time
	PreviousValue decimal.Decimal
	CurrentValue  decimal.Decimal
	UnitPrice     decimal.Decimal
	Amount        decimal.Decimal
}
