package receipt

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/propbooks-dev/propbooks/internal/catalog"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// draftFile is the YAML shape of a receipt draft on disk.
type draftFile struct {
	Date           string      `yaml:"date"`
	UnitID         int         `yaml:"unit_id"`
	PayerID        int         `yaml:"payer_id"`
	AssetAccountID int         `yaml:"asset_account_id"`
	Description    string      `yaml:"description"`
	Items          []draftLine `yaml:"items"`
}

type draftLine struct {
	ItemID        int    `yaml:"item_id"`
	Qty           string `yaml:"qty"`
	Rate          string `yaml:"rate"`
	PreviousValue string `yaml:"previous_value"`
	CurrentValue  string `yaml:"current_value"`
}

// LoadDraft reads a receipt draft YAML file. Blank quantities default to 1
// and a blank rate defaults to the catalog item's average cost, matching how
// the receipt form seeds a freshly chosen item.
func LoadDraft(path string, cat *catalog.Service) (Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, fmt.Errorf("reading draft: %w", err)
	}

	var df draftFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return Draft{}, fmt.Errorf("parsing draft: %w", err)
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if df.Date != "" {
		date, err = time.Parse("2006-01-02", df.Date)
		if err != nil {
			return Draft{}, fmt.Errorf("parsing draft date %q: %w", df.Date, err)
		}
	}

	lines := make([]model.LineItem, 0, len(df.Items))
	for i, dl := range df.Items {
		line, err := dl.toLine(cat)
		if err != nil {
			return Draft{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}

	return Draft{
		Date:           date,
		UnitID:         df.UnitID,
		PayerID:        df.PayerID,
		AssetAccountID: df.AssetAccountID,
		Description:    df.Description,
		Lines:          lines,
	}, nil
}

func (dl draftLine) toLine(cat *catalog.Service) (model.LineItem, error) {
	line := model.LineItem{ItemID: dl.ItemID, Qty: decimal.NewFromInt(1)}

	var err error
	if dl.Qty != "" {
		line.Qty, err = decimal.NewFromString(dl.Qty)
		if err != nil {
			return model.LineItem{}, fmt.Errorf("parsing qty %q: %w", dl.Qty, err)
		}
	}

	switch {
	case dl.Rate != "":
		line.Rate, err = decimal.NewFromString(dl.Rate)
		if err != nil {
			return model.LineItem{}, fmt.Errorf("parsing rate %q: %w", dl.Rate, err)
		}
	case dl.ItemID != 0 && cat != nil:
		if item, ok := cat.Item(dl.ItemID); ok {
			line.Rate = item.AvgCost
		}
	}

	if dl.PreviousValue != "" {
		prev, err := decimal.NewFromString(dl.PreviousValue)
		if err != nil {
			return model.LineItem{}, fmt.Errorf("parsing previous_value %q: %w", dl.PreviousValue, err)
		}
		line.PreviousValue = decimal.NewNullDecimal(prev)
	}
	if dl.CurrentValue != "" {
		curr, err := decimal.NewFromString(dl.CurrentValue)
		if err != nil {
			return model.LineItem{}, fmt.Errorf("parsing current_value %q: %w", dl.CurrentValue, err)
		}
		line.CurrentValue = decimal.NewNullDecimal(curr)
	}

	return line, nil
}
