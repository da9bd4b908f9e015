package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/apidata"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// LegacyReceipt is one receipt from a legacy backend export, ready to be
// re-derived and posted.
type LegacyReceipt struct {
	No          int
	Date        time.Time
	UnitID      int
	PayerID     int
	AccountID   int
	Amount      decimal.Decimal
	Description string
	Lines       []model.LineItem
}

// LegacyReceiptParser parses JSON receipt exports from the legacy backend.
// Exports arrive either as a bare array of receipts or wrapped under a
// "sales_receipts" key, and individual line items may carry meter values.
type LegacyReceiptParser struct{}

const legacyDateFormat = "2006-01-02"

// legacyReceiptJSON mirrors the export's wire shape. The backend emits
// decimals as strings and dates as YYYY-MM-DD.
type legacyReceiptJSON struct {
	No          int              `json:"no"`
	Date        string           `json:"date"`
	UnitID      int              `json:"unit_id"`
	CustomerID  int              `json:"customer_id"`
	AccountID   int              `json:"account_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	LineItems   []legacyLineJSON `json:"line_items"`
}

type legacyLineJSON struct {
	ItemID        int                 `json:"item_id"`
	Qty           decimal.Decimal     `json:"qty"`
	Rate          decimal.Decimal     `json:"rate"`
	PreviousValue decimal.NullDecimal `json:"previous_value"`
	CurrentValue  decimal.NullDecimal `json:"current_value"`
	Total         decimal.Decimal     `json:"total"`
}

// Format returns the parser name.
func (p *LegacyReceiptParser) Format() string { return "legacy" }

// Parse reads a legacy JSON export and returns its receipts.
func (p *LegacyReceiptParser) Parse(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("reading legacy export: %w", err)
	}

	var wire []legacyReceiptJSON
	if _, err := apidata.UnmarshalList(data, "sales_receipts", &wire); err != nil {
		return Batch{}, fmt.Errorf("parsing legacy export: %w", err)
	}

	var receipts []LegacyReceipt
	for i, rec := range wire {
		lr, err := convertLegacyReceipt(rec)
		if err != nil {
			return Batch{}, fmt.Errorf("receipt %d: %w", i+1, err)
		}
		receipts = append(receipts, lr)
	}
	return Batch{Receipts: receipts}, nil
}

func convertLegacyReceipt(rec legacyReceiptJSON) (LegacyReceipt, error) {
	date, err := time.Parse(legacyDateFormat, rec.Date)
	if err != nil {
		return LegacyReceipt{}, fmt.Errorf("parsing date %q: %w", rec.Date, err)
	}
	if len(rec.LineItems) == 0 {
		return LegacyReceipt{}, fmt.Errorf("receipt %d has no line items", rec.No)
	}

	lines := make([]model.LineItem, 0, len(rec.LineItems))
	for _, li := range rec.LineItems {
		lines = append(lines, model.LineItem{
			ItemID:        li.ItemID,
			Qty:           li.Qty,
			Rate:          li.Rate,
			PreviousValue: li.PreviousValue,
			CurrentValue:  li.CurrentValue,
			Total:         li.Total,
		})
	}

	return LegacyReceipt{
		No:          rec.No,
		Date:        date,
		UnitID:      rec.UnitID,
		PayerID:     rec.CustomerID,
		AccountID:   rec.AccountID,
		Amount:      rec.Amount,
		Description: rec.Description,
		Lines:       lines,
	}, nil
}
