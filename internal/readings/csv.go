package readings

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// Header is the CSV header for readings.csv.
const Header = "item_id,unit_id,date,previous_value,current_value,unit_price,amount"

const (
	numFields   = 7
	dateFormat  = "2006-01-02"
	colItemID   = 0
	colUnitID   = 1
	colDate     = 2
	colPrevious = 3
	colCurrent  = 4
	colPrice    = 5
	colAmount   = 6
)

// ReadReadings reads all readings from a readings.csv reader.
func ReadReadings(r io.Reader) ([]model.Reading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading readings CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var readings []model.Reading
	for i, rec := range records[1:] {
		rd, err := UnmarshalReading(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		readings = append(readings, rd)
	}
	return readings, nil
}

// WriteReadings writes readings to a readings.csv writer (including header).
func WriteReadings(w io.Writer, readings []model.Reading) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rd := range readings {
		if err := cw.Write(MarshalReading(rd)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendReadings appends readings to an existing readings.csv writer (no
// header).
func AppendReadings(w io.Writer, readings []model.Reading) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, rd := range readings {
		if err := cw.Write(MarshalReading(rd)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalReading converts a Reading to a CSV row.
func MarshalReading(rd model.Reading) []string {
	row := make([]string, numFields)
	row[colItemID] = strconv.Itoa(rd.ItemID)
	row[colUnitID] = strconv.Itoa(rd.UnitID)
	row[colDate] = rd.Date.Format(dateFormat)
	row[colPrevious] = rd.PreviousValue.String()
	row[colCurrent] = rd.CurrentValue.String()
	row[colPrice] = rd.UnitPrice.String()
	row[colAmount] = rd.Amount.StringFixed(2)
	return row
}

// UnmarshalReading converts a CSV row to a Reading.
func UnmarshalReading(record []string) (model.Reading, error) {
	if len(record) != numFields {
		return model.Reading{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	itemID, err := strconv.Atoi(record[colItemID])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing item_id %q: %w", record[colItemID], err)
	}
	unitID, err := strconv.Atoi(record[colUnitID])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing unit_id %q: %w", record[colUnitID], err)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	previous, err := decimal.NewFromString(record[colPrevious])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing previous_value %q: %w", record[colPrevious], err)
	}
	current, err := decimal.NewFromString(record[colCurrent])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing current_value %q: %w", record[colCurrent], err)
	}
	price, err := decimal.NewFromString(record[colPrice])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing unit_price %q: %w", record[colPrice], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Reading{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Reading{
		ItemID:        itemID,
		UnitID:        unitID,
		Date:          date,
		PreviousValue: previous,
		CurrentValue:  current,
		UnitPrice:     price,
		Amount:        amount,
	}, nil
}
