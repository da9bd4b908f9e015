// Package contacts holds the people and unit reference data used to label
// receipts and splits. Lookups are display-only: a missing record falls back
// to an "ID: <n>" placeholder and never blocks anything.
package contacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// Service provides in-memory lookup over people and units.
type Service struct {
	people    []model.Person
	units     []model.Unit
	personsByID map[int]model.Person
	unitsByID   map[int]model.Unit
}

// NewService creates a Service from slices of people and units.
func NewService(people []model.Person, units []model.Unit) *Service {
	pByID := make(map[int]model.Person, len(people))
	for _, p := range people {
		pByID[p.ID] = p
	}
	uByID := make(map[int]model.Unit, len(units))
	for _, u := range units {
		uByID[u.ID] = u
	}
	return &Service{people: people, units: units, personsByID: pByID, unitsByID: uByID}
}

// Load reads contacts/people.csv and contacts/units.csv from a books root.
// Missing files load as empty sets.
func Load(booksRoot string) (*Service, error) {
	people, err := loadPeople(filepath.Join(booksRoot, "contacts", "people.csv"))
	if err != nil {
		return nil, err
	}
	units, err := loadUnits(filepath.Join(booksRoot, "contacts", "units.csv"))
	if err != nil {
		return nil, err
	}
	return NewService(people, units), nil
}

func loadPeople(path string) ([]model.Person, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening people: %w", err)
	}
	defer f.Close()

	people, err := ReadPeople(f)
	if err != nil {
		return nil, fmt.Errorf("reading people: %w", err)
	}
	return people, nil
}

func loadUnits(path string) ([]model.Unit, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening units: %w", err)
	}
	defer f.Close()

	units, err := ReadUnits(f)
	if err != nil {
		return nil, fmt.Errorf("reading units: %w", err)
	}
	return units, nil
}

// People returns all people.
func (s *Service) People() []model.Person {
	return s.people
}

// Units returns all units.
func (s *Service) Units() []model.Unit {
	return s.units
}

// Person returns a person by ID.
func (s *Service) Person(id int) (model.Person, bool) {
	p, ok := s.personsByID[id]
	return p, ok
}

// Unit returns a unit by ID.
func (s *Service) Unit(id int) (model.Unit, bool) {
	u, ok := s.unitsByID[id]
	return u, ok
}

// PersonName returns a person's display name, or an "ID: <n>" placeholder.
func (s *Service) PersonName(id int) string {
	if p, ok := s.personsByID[id]; ok {
		return p.Name
	}
	return fmt.Sprintf("ID: %d", id)
}

// UnitName returns a unit's display name, preferring the unit number, or an
// "ID: <n>" placeholder.
func (s *Service) UnitName(id int) string {
	if u, ok := s.unitsByID[id]; ok {
		if u.Number != "" {
			return u.Number
		}
		return u.Name
	}
	return fmt.Sprintf("ID: %d", id)
}

// Save writes people and units under <booksRoot>/contacts/.
func (s *Service) Save(booksRoot string) error {
	dir := filepath.Join(booksRoot, "contacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating contacts dir: %w", err)
	}

	pf, err := os.Create(filepath.Join(dir, "people.csv"))
	if err != nil {
		return fmt.Errorf("creating people file: %w", err)
	}
	defer pf.Close()
	if err := WritePeople(pf, s.people); err != nil {
		return fmt.Errorf("writing people: %w", err)
	}

	uf, err := os.Create(filepath.Join(dir, "units.csv"))
	if err != nil {
		return fmt.Errorf("creating units file: %w", err)
	}
	defer uf.Close()
	if err := WriteUnits(uf, s.units); err != nil {
		return fmt.Errorf("writing units: %w", err)
	}
	return nil
}
