// Package readings records metered-utility readings per unit. The latest
// reading for an item/unit pair seeds the previous value of the next one, so
// consumption never has to be retyped.
package readings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// Consumption returns the metered usage between two readings.
func Consumption(previous, current decimal.Decimal) decimal.Decimal {
	return current.Sub(previous)
}

// BillAmount returns the amount to bill for a reading: consumption times the
// unit price, rounded to cents.
func BillAmount(previous, current, unitPrice decimal.Decimal) decimal.Decimal {
	return Consumption(previous, current).Mul(unitPrice).Round(2)
}

// Service provides business logic for meter readings. Readings live in
// monthly files under readings/YYYY/MM/readings.csv, keyed by reading date.
type Service struct {
	booksRoot string
}

// NewService creates a readings Service.
func NewService(booksRoot string) *Service {
	return &Service{booksRoot: booksRoot}
}

// Add derives the reading's amount, validates it, and appends it to the
// month's readings.csv. The stored reading is returned.
func (s *Service) Add(r model.Reading) (model.Reading, error) {
	if r.ItemID == 0 {
		return model.Reading{}, errors.New("reading requires an item")
	}
	if r.UnitID == 0 {
		return model.Reading{}, errors.New("reading requires a unit")
	}
	if r.CurrentValue.LessThan(r.PreviousValue) {
		return model.Reading{}, fmt.Errorf("current value %s below previous %s",
			r.CurrentValue, r.PreviousValue)
	}

	r.Amount = BillAmount(r.PreviousValue, r.CurrentValue, r.UnitPrice)

	path := s.monthPath(r)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return model.Reading{}, fmt.Errorf("creating readings dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return model.Reading{}, fmt.Errorf("opening readings: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return model.Reading{}, fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendReadings(f, []model.Reading{r}); err != nil {
		return model.Reading{}, fmt.Errorf("appending reading: %w", err)
	}
	return r, nil
}

// All returns every recorded reading across all months, in file order.
func (s *Service) All() ([]model.Reading, error) {
	pattern := filepath.Join(s.booksRoot, "readings",
		"[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "readings.csv")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing readings: %w", err)
	}
	sort.Strings(paths)

	var all []model.Reading
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		rs, err := ReadReadings(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		all = append(all, rs...)
	}
	return all, nil
}

// Latest returns the most recent reading for an item/unit pair.
func (s *Service) Latest(itemID, unitID int) (model.Reading, bool, error) {
	all, err := s.All()
	if err != nil {
		return model.Reading{}, false, err
	}

	var latest model.Reading
	found := false
	for _, r := range all {
		if r.ItemID != itemID || r.UnitID != unitID {
			continue
		}
		if !found || r.Date.After(latest.Date) {
			latest = r
			found = true
		}
	}
	return latest, found, nil
}

func (s *Service) monthPath(r model.Reading) string {
	return filepath.Join(s.booksRoot, "readings",
		r.Date.Format("2006"), r.Date.Format("01"), "readings.csv")
}
