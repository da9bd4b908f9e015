package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ReadingRecord is one row of a utility-company meter export. The meter
// number still needs mapping to a unit and catalog item before it can become
// a stored reading.
type ReadingRecord struct {
	MeterNumber string
	Date        time.Time
	Previous    decimal.Decimal
	Current     decimal.Decimal
	Rate        decimal.Decimal
}

// MeterParser parses utility-company meter read CSV exports.
type MeterParser struct{}

const (
	meterDateFormat = "01/02/2006"
	meterNumFields  = 6
	meterColNumber  = 0
	meterColDate    = 2
	meterColPrev    = 3
	meterColCurrent = 4
	meterColRate    = 5
)

// Format returns the parser name.
func (p *MeterParser) Format() string { return "meter" }

// Parse reads a meter CSV and returns its reading records.
func (p *MeterParser) Parse(r io.Reader) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = meterNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return Batch{}, fmt.Errorf("reading meter CSV: %w", err)
	}

	if len(records) <= 1 {
		return Batch{}, nil
	}

	var readings []ReadingRecord
	for i, rec := range records[1:] {
		rd, err := parseMeterRow(rec)
		if err != nil {
			return Batch{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		readings = append(readings, rd)
	}
	return Batch{Readings: readings}, nil
}

func parseMeterRow(rec []string) (ReadingRecord, error) {
	date, err := time.Parse(meterDateFormat, rec[meterColDate])
	if err != nil {
		return ReadingRecord{}, fmt.Errorf("parsing read date %q: %w", rec[meterColDate], err)
	}

	prev, err := decimal.NewFromString(rec[meterColPrev])
	if err != nil {
		return ReadingRecord{}, fmt.Errorf("parsing previous read %q: %w", rec[meterColPrev], err)
	}
	current, err := decimal.NewFromString(rec[meterColCurrent])
	if err != nil {
		return ReadingRecord{}, fmt.Errorf("parsing current read %q: %w", rec[meterColCurrent], err)
	}
	rate, err := decimal.NewFromString(rec[meterColRate])
	if err != nil {
		return ReadingRecord{}, fmt.Errorf("parsing rate %q: %w", rec[meterColRate], err)
	}

	return ReadingRecord{
		MeterNumber: rec[meterColNumber],
		Date:        date,
		Previous:    prev,
		Current:     current,
		Rate:        rate,
	}, nil
}
