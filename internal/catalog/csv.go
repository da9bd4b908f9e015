package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

const (
	numFields    = 7
	colID        = 0
	colName      = 1
	colKind      = 2
	colIncomeID  = 3
	colAssetID   = 4
	colAvgCost   = 5
	colDesc      = 6
)

// ReadItems reads catalog/items.csv.
func ReadItems(r io.Reader) ([]model.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var items []model.Item
	for i, rec := range records[1:] {
		item, err := UnmarshalItem(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteItems writes catalog/items.csv.
func WriteItems(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"item_id", "name", "kind", "income_account_id", "asset_account_id", "avg_cost", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range items {
		if err := cw.Write(MarshalItem(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalItem converts an Item to a CSV row.
func MarshalItem(item model.Item) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(item.ID)
	row[colName] = item.Name
	row[colKind] = string(item.Kind)
	if item.IncomeAccountID != 0 {
		row[colIncomeID] = strconv.Itoa(item.IncomeAccountID)
	}
	if item.AssetAccountID != 0 {
		row[colAssetID] = strconv.Itoa(item.AssetAccountID)
	}
	if !item.AvgCost.IsZero() {
		row[colAvgCost] = item.AvgCost.String()
	}
	row[colDesc] = item.Description
	return row
}

// UnmarshalItem converts a CSV row to an Item.
func UnmarshalItem(record []string) (model.Item, error) {
	if len(record) != numFields {
		return model.Item{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Item{}, fmt.Errorf("parsing item_id %q: %w", record[colID], err)
	}

	var incomeID, assetID int
	if record[colIncomeID] != "" {
		incomeID, err = strconv.Atoi(record[colIncomeID])
		if err != nil {
			return model.Item{}, fmt.Errorf("parsing income_account_id %q: %w", record[colIncomeID], err)
		}
	}
	if record[colAssetID] != "" {
		assetID, err = strconv.Atoi(record[colAssetID])
		if err != nil {
			return model.Item{}, fmt.Errorf("parsing asset_account_id %q: %w", record[colAssetID], err)
		}
	}

	avgCost := decimal.Zero
	if record[colAvgCost] != "" {
		avgCost, err = decimal.NewFromString(record[colAvgCost])
		if err != nil {
			return model.Item{}, fmt.Errorf("parsing avg_cost %q: %w", record[colAvgCost], err)
		}
	}

	kind := model.ItemKind(record[colKind])
	switch kind {
	case model.ItemKindService, model.ItemKindDiscount, model.ItemKindPayment:
	default:
		return model.Item{}, fmt.Errorf("unknown item kind %q", record[colKind])
	}

	return model.Item{
		ID:              id,
		Name:            record[colName],
		Kind:            kind,
		IncomeAccountID: incomeID,
		AssetAccountID:  assetID,
		AvgCost:         avgCost,
		Description:     record[colDesc],
	}, nil
}
