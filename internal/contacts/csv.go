package contacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/propbooks-dev/propbooks/internal/model"
)

const (
	peopleFields = 4
	unitFields   = 3
)

// ReadPeople reads contacts/people.csv.
func ReadPeople(r io.Reader) ([]model.Person, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = peopleFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading people CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var people []model.Person
	for i, rec := range records[1:] {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing person_id %q: %w", i+2, rec[0], err)
		}
		people = append(people, model.Person{ID: id, Name: rec[1], Email: rec[2], Phone: rec[3]})
	}
	return people, nil
}

// WritePeople writes contacts/people.csv.
func WritePeople(w io.Writer, people []model.Person) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"person_id", "name", "email", "phone"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range people {
		row := []string{strconv.Itoa(p.ID), p.Name, p.Email, p.Phone}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadUnits reads contacts/units.csv.
func ReadUnits(r io.Reader) ([]model.Unit, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = unitFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading units CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var units []model.Unit
	for i, rec := range records[1:] {
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing unit_id %q: %w", i+2, rec[0], err)
		}
		units = append(units, model.Unit{ID: id, Name: rec[1], Number: rec[2]})
	}
	return units, nil
}

// WriteUnits writes contacts/units.csv.
func WriteUnits(w io.Writer, units []model.Unit) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"unit_id", "name", "number"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, u := range units {
		row := []string{strconv.Itoa(u.ID), u.Name, u.Number}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
