package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/id"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// Service provides business logic for posted journal entries.
type Service struct {
	booksRoot string
	accounts  AccountChecker
}

// NewService creates a journal Service.
func NewService(booksRoot string, accounts AccountChecker) *Service {
	return &Service{booksRoot: booksRoot, accounts: accounts}
}

// PostLine is one leg of an entry being posted. Exactly one of Debit/Credit
// must be non-zero.
type PostLine struct {
	AccountID int
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	PayerID   int
	PayerName string
}

// PostParams holds parameters for posting a multi-leg journal entry.
type PostParams struct {
	Date        time.Time
	Description string
	UnitID      int
	ReceiptNo   int
	Status      model.ReceiptStatus
	Lines       []PostLine
}

// Post creates an entry with one leg per line, validates the month's journal
// with the new legs included, and appends to journal.csv. Returns the entry ID.
func (s *Service) Post(params PostParams) (string, error) {
	if len(params.Lines) == 0 {
		return "", errors.New("posting an entry requires at least one leg")
	}

	year := params.Date.Year()
	month := int(params.Date.Month())

	seq, err := s.NextEntrySeq(year, month)
	if err != nil {
		return "", err
	}
	entryID := id.FormatEntryID(year, month, seq)

	status := params.Status
	if status == "" {
		status = model.ReceiptStatusActive
	}

	newLegs := make([]model.Leg, len(params.Lines))
	for i, line := range params.Lines {
		newLegs[i] = model.Leg{
			EntryID:     id.FormatLegID(entryID, i),
			Date:        params.Date,
			AccountID:   line.AccountID,
			Description: params.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			PayerID:     line.PayerID,
			PayerName:   line.PayerName,
			UnitID:      params.UnitID,
			ReceiptNo:   params.ReceiptNo,
			Status:      status,
		}
	}

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	// Validate ALL legs together.
	allLegs := append(existing, newLegs...)
	if verrs := ValidateLegs(allLegs, s.accounts, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendLegs(f, newLegs); err != nil {
		return "", fmt.Errorf("appending legs: %w", err)
	}

	return entryID, nil
}

// ReadMonth reads all legs for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Leg, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	legs, err := ReadLegs(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return legs, nil
}

// ReadThrough reads all legs from the start of the books through the given
// year/month inclusive, in month order.
func (s *Service) ReadThrough(year, month int) ([]model.Leg, error) {
	pattern := filepath.Join(s.booksRoot,
		"[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing journals: %w", err)
	}
	sort.Strings(paths)

	var all []model.Leg
	for _, path := range paths {
		monthDir := filepath.Base(filepath.Dir(path))
		yearDir := filepath.Base(filepath.Dir(filepath.Dir(path)))
		y, err := strconv.Atoi(yearDir)
		if err != nil {
			continue
		}
		m, err := strconv.Atoi(monthDir)
		if err != nil {
			continue
		}
		if y > year || (y == year && m > month) {
			continue
		}

		legs, err := s.ReadMonth(y, m)
		if err != nil {
			return nil, err
		}
		all = append(all, legs...)
	}
	return all, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	legs, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, leg := range legs {
		_, _, seq, err := id.ParseEntryID(leg.EntryID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.booksRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
