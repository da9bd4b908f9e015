package receipt

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

// Header is the CSV header for receipts.csv.
const Header = "receipt_no,date,unit_id,payer_id,account_id,amount,description,status"

const (
	numFields    = 8
	dateFormat   = "2006-01-02"
	colNo        = 0
	colDate      = 1
	colUnitID    = 2
	colPayerID   = 3
	colAccountID = 4
	colAmount    = 5
	colDesc      = 6
	colStatus    = 7
)

// ReadReceipts reads all receipts from a receipts.csv reader.
func ReadReceipts(r io.Reader) ([]model.Receipt, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading receipts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var receipts []model.Receipt
	for i, rec := range records[1:] {
		rcpt, err := UnmarshalReceipt(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		receipts = append(receipts, rcpt)
	}
	return receipts, nil
}

// WriteReceipts writes receipts to a receipts.csv writer (including header).
func WriteReceipts(w io.Writer, receipts []model.Receipt) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rcpt := range receipts {
		if err := cw.Write(MarshalReceipt(rcpt)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendReceipts appends receipts to an existing receipts.csv writer (no header).
func AppendReceipts(w io.Writer, receipts []model.Receipt) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, rcpt := range receipts {
		if err := cw.Write(MarshalReceipt(rcpt)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalReceipt converts a Receipt to a CSV row.
func MarshalReceipt(rcpt model.Receipt) []string {
	row := make([]string, numFields)
	row[colNo] = strconv.Itoa(rcpt.No)
	row[colDate] = rcpt.Date.Format(dateFormat)
	if rcpt.UnitID != 0 {
		row[colUnitID] = strconv.Itoa(rcpt.UnitID)
	}
	if rcpt.PayerID != 0 {
		row[colPayerID] = strconv.Itoa(rcpt.PayerID)
	}
	row[colAccountID] = strconv.Itoa(rcpt.AccountID)
	row[colAmount] = rcpt.Amount.StringFixed(2)
	row[colDesc] = rcpt.Description
	row[colStatus] = string(rcpt.Status)
	return row
}

// UnmarshalReceipt converts a CSV row to a Receipt.
func UnmarshalReceipt(record []string) (model.Receipt, error) {
	if len(record) != numFields {
		return model.Receipt{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	no, err := strconv.Atoi(record[colNo])
	if err != nil {
		return model.Receipt{}, fmt.Errorf("parsing receipt_no %q: %w", record[colNo], err)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Receipt{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var unitID, payerID int
	if record[colUnitID] != "" {
		unitID, err = strconv.Atoi(record[colUnitID])
		if err != nil {
			return model.Receipt{}, fmt.Errorf("parsing unit_id %q: %w", record[colUnitID], err)
		}
	}
	if record[colPayerID] != "" {
		payerID, err = strconv.Atoi(record[colPayerID])
		if err != nil {
			return model.Receipt{}, fmt.Errorf("parsing payer_id %q: %w", record[colPayerID], err)
		}
	}

	accountID, err := strconv.Atoi(record[colAccountID])
	if err != nil {
		return model.Receipt{}, fmt.Errorf("parsing account_id %q: %w", record[colAccountID], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Receipt{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Receipt{
		No:          no,
		Date:        date,
		UnitID:      unitID,
		PayerID:     payerID,
		AccountID:   accountID,
		Amount:      amount,
		Description: record[colDesc],
		Status:      model.ReceiptStatus(record[colStatus]),
	}, nil
}
