// Package receipt drafts, previews, and posts sales receipts. The split
// preview shown before posting is advisory; the posted journal entry is the
// record that counts, and receipt numbers are issued from persisted data at
// submission time, never guessed ahead.
package receipt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/propbooks-dev/propbooks/internal/accounts"
	"github.com/propbooks-dev/propbooks/internal/catalog"
	"github.com/propbooks-dev/propbooks/internal/contacts"
	"github.com/propbooks-dev/propbooks/internal/journal"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/splits"
)

// Draft is an unposted receipt as assembled by the caller.
type Draft struct {
	Date           time.Time
	UnitID         int
	PayerID        int
	AssetAccountID int
	Description    string
	Lines          []model.LineItem
}

// Service provides business logic for sales receipts.
type Service struct {
	booksRoot string
	catalog   *catalog.Service
	accounts  *accounts.Service
	contacts  *contacts.Service
	journal   *journal.Service
}

// NewService creates a receipt Service.
func NewService(booksRoot string, cat *catalog.Service, accts *accounts.Service, people *contacts.Service) *Service {
	return &Service{
		booksRoot: booksRoot,
		catalog:   cat,
		accounts:  accts,
		contacts:  people,
		journal:   journal.NewService(booksRoot, accts),
	}
}

// Preview normalizes the draft's lines and derives its splits. It returns the
// raw derivation and the balanced view side by side so callers can show both
// the adjustment and the fact that one was needed.
func (s *Service) Preview(draft Draft) (raw, adjusted splits.Preview) {
	lines := splits.NormalizeLines(draft.Lines, s.catalog)
	raw = splits.Derive(splits.Input{
		Lines:          lines,
		AssetAccountID: draft.AssetAccountID,
		PayerID:        draft.PayerID,
		Items:          s.catalog,
		Accounts:       s.accounts,
		People:         s.contacts,
	})
	return raw, splits.Balance(raw)
}

// Create posts a draft: derives and balances its splits, writes the journal
// entry, and appends the receipt header. Returns the receipt and the journal
// entry ID.
func (s *Service) Create(draft Draft) (model.Receipt, string, error) {
	if len(draft.Lines) == 0 {
		return model.Receipt{}, "", errors.New("receipt has no line items")
	}
	acct, ok := s.accounts.Account(draft.AssetAccountID)
	if !ok {
		return model.Receipt{}, "", fmt.Errorf("unknown asset account %d", draft.AssetAccountID)
	}
	if !acct.IsAsset() {
		return model.Receipt{}, "", fmt.Errorf("account %d (%s) is not an asset account", acct.ID, acct.Name)
	}

	lines := splits.NormalizeLines(draft.Lines, s.catalog)
	amount := splits.ReceiptTotal(lines, s.catalog)

	raw, adjusted := s.Preview(Draft{
		Date:           draft.Date,
		UnitID:         draft.UnitID,
		PayerID:        draft.PayerID,
		AssetAccountID: draft.AssetAccountID,
		Description:    draft.Description,
		Lines:          lines,
	})
	if len(raw.Rows) == 0 {
		return model.Receipt{}, "", errors.New("receipt is not ready: no splits derived")
	}
	if !adjusted.Balanced {
		return model.Receipt{}, "", fmt.Errorf("splits do not balance: debit %s, credit %s",
			adjusted.TotalDebit.StringFixed(2), adjusted.TotalCredit.StringFixed(2))
	}

	no, err := s.NextReceiptNo()
	if err != nil {
		return model.Receipt{}, "", err
	}

	postLines := make([]journal.PostLine, len(adjusted.Rows))
	for i, row := range adjusted.Rows {
		postLines[i] = journal.PostLine{
			AccountID: row.AccountID,
			Debit:     row.Debit,
			Credit:    row.Credit,
			PayerID:   row.PayerID,
			PayerName: row.PayerName,
		}
	}

	entryID, err := s.journal.Post(journal.PostParams{
		Date:        draft.Date,
		Description: draft.Description,
		UnitID:      draft.UnitID,
		ReceiptNo:   no,
		Status:      model.ReceiptStatusActive,
		Lines:       postLines,
	})
	if err != nil {
		return model.Receipt{}, "", fmt.Errorf("posting splits: %w", err)
	}

	rcpt := model.Receipt{
		No:          no,
		Date:        draft.Date,
		UnitID:      draft.UnitID,
		PayerID:     draft.PayerID,
		AccountID:   draft.AssetAccountID,
		Amount:      amount,
		Description: draft.Description,
		Status:      model.ReceiptStatusActive,
	}
	if err := s.append(rcpt); err != nil {
		return model.Receipt{}, "", err
	}
	return rcpt, entryID, nil
}

// ReadMonth reads all receipts for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Receipt, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening receipts %s: %w", path, err)
	}
	defer f.Close()

	receipts, err := ReadReceipts(f)
	if err != nil {
		return nil, fmt.Errorf("reading receipts %s: %w", path, err)
	}
	return receipts, nil
}

// NextReceiptNo issues the next receipt number from the persisted receipts
// across all months.
func (s *Service) NextReceiptNo() (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.booksRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "receipts.csv"))
	if err != nil {
		return 0, fmt.Errorf("scanning receipts: %w", err)
	}

	maxNo := 0
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("opening receipts %s: %w", path, err)
		}
		receipts, err := ReadReceipts(f)
		f.Close()
		if err != nil {
			return 0, fmt.Errorf("reading receipts %s: %w", path, err)
		}
		for _, r := range receipts {
			if r.No > maxNo {
				maxNo = r.No
			}
		}
	}
	return maxNo + 1, nil
}

// Journal exposes the underlying journal service.
func (s *Service) Journal() *journal.Service {
	return s.journal
}

func (s *Service) append(rcpt model.Receipt) error {
	path := s.monthPath(rcpt.Date.Year(), int(rcpt.Date.Month()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating receipts dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening receipts: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendReceipts(f, []model.Receipt{rcpt}); err != nil {
		return fmt.Errorf("appending receipt: %w", err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.booksRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "receipts.csv")
}
