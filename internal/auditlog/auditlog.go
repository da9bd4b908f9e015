// Package auditlog keeps a CSV trail of receipt actions in the books
// repository. Every create, void, and import gets a row, so the history of a
// receipt can be reconstructed without digging through git.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one row in the audit log.
type Event struct {
	ID        string
	Timestamp time.Time
	Actor     string
	Action    string
	ReceiptNo int
	EntryID   string
	Details   string
}

// Actions recorded by the CLI.
const (
	ActionCreateReceipt = "create_receipt"
	ActionVoidReceipt   = "void_receipt"
	ActionImportFile    = "import_file"
	ActionAddReading    = "add_reading"
)

// Header is the CSV header for audit-log.csv.
const Header = "event_id,timestamp,actor,action,receipt_no,entry_id,details"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "logs/audit-log.csv"
	colID        = 0
	colTimestamp = 1
	colActor     = 2
	colAction    = 3
	colReceiptNo = 4
	colEntryID   = 5
	colDetails   = 6
)

// NewEvent builds an event with a fresh uuid and the current time.
func NewEvent(actor, action string) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Action:    action,
	}
}

// MarshalEvent converts an Event to a CSV row.
func MarshalEvent(e Event) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colActor] = e.Actor
	row[colAction] = e.Action
	if e.ReceiptNo != 0 {
		row[colReceiptNo] = strconv.Itoa(e.ReceiptNo)
	}
	row[colEntryID] = e.EntryID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEvent converts a CSV row to an Event.
func UnmarshalEvent(record []string) (Event, error) {
	if len(record) != numFields {
		return Event{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Event{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var receiptNo int
	if record[colReceiptNo] != "" {
		receiptNo, err = strconv.Atoi(record[colReceiptNo])
		if err != nil {
			return Event{}, fmt.Errorf("parsing receipt_no %q: %w", record[colReceiptNo], err)
		}
	}

	return Event{
		ID:        record[colID],
		Timestamp: ts,
		Actor:     record[colActor],
		Action:    record[colAction],
		ReceiptNo: receiptNo,
		EntryID:   record[colEntryID],
		Details:   record[colDetails],
	}, nil
}

// Append writes events to <booksRoot>/logs/audit-log.csv, creating the file
// and header if needed.
func Append(booksRoot string, events []Event) error {
	dir := filepath.Join(booksRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(booksRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range events {
		if err := cw.Write(MarshalEvent(e)); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all events from <booksRoot>/logs/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(booksRoot string) ([]Event, error) {
	path := filepath.Join(booksRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEvents(f)
}

// ForReceipt returns the events recorded for one receipt, oldest first.
func ForReceipt(booksRoot string, receiptNo int) ([]Event, error) {
	all, err := Read(booksRoot)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, e := range all {
		if e.ReceiptNo == receiptNo {
			events = append(events, e)
		}
	}
	return events, nil
}

func readEvents(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var events []Event
	for i, rec := range records[1:] {
		e, err := UnmarshalEvent(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, e)
	}
	return events, nil
}
