package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/model"
)

func sampleLegs() []model.Leg {
	return []model.Leg{
		{
			EntryID:     "2025-01-001a",
			Date:        date(2025, 1, 15),
			AccountID:   1010,
			Description: "Rent receipt",
			Debit:       dec("925.00"),
			PayerID:     12,
			PayerName:   "Dana Whitfield",
			UnitID:      3,
			ReceiptNo:   7,
			Status:      model.ReceiptStatusActive,
		},
		{
			EntryID:     "2025-01-001b",
			Date:        date(2025, 1, 15),
			AccountID:   4010,
			Description: "Rent receipt",
			Credit:      dec("925.00"),
			PayerID:     12,
			PayerName:   "Dana Whitfield",
			UnitID:      3,
			ReceiptNo:   7,
			Status:      model.ReceiptStatusActive,
		},
	}
}

func TestWriteReadLegsRoundTrip(t *testing.T) {
	legs := sampleLegs()

	var buf bytes.Buffer
	require.NoError(t, WriteLegs(&buf, legs))

	got, err := ReadLegs(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, legs[0].EntryID, got[0].EntryID)
	assert.True(t, legs[0].Debit.Equal(got[0].Debit))
	assert.True(t, got[0].Credit.IsZero())
	assert.Equal(t, 12, got[0].PayerID)
	assert.Equal(t, "Dana Whitfield", got[0].PayerName)
	assert.Equal(t, 3, got[0].UnitID)
	assert.Equal(t, 7, got[0].ReceiptNo)
	assert.Equal(t, model.ReceiptStatusActive, got[0].Status)
}

func TestMarshalLeg_BlankOptionalFields(t *testing.T) {
	leg := model.Leg{
		EntryID:   "2025-01-001a",
		Date:      date(2025, 1, 15),
		AccountID: 1010,
		Debit:     dec("10.00"),
		Status:    model.ReceiptStatusActive,
	}

	row := MarshalLeg(leg)
	assert.Empty(t, row[colPayerID])
	assert.Empty(t, row[colUnitID])
	assert.Empty(t, row[colReceiptNo])
	assert.Empty(t, row[colCredit])
	assert.Equal(t, "10.00", row[colDebit])
}

func TestReadLegs_FieldCountMismatch(t *testing.T) {
	input := Header + "\n2025-01-001a,2025-01-15,1010\n"

	_, err := ReadLegs(strings.NewReader(input))
	require.Error(t, err)
}

func TestUnmarshalLeg_BadDate(t *testing.T) {
	rec := make([]string, numFields)
	rec[colEntryID] = "2025-01-001a"
	rec[colDate] = "15/01/2025"
	rec[colAcctID] = "1010"

	_, err := UnmarshalLeg(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestReadLegs_Empty(t *testing.T) {
	legs, err := ReadLegs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, legs)
}
