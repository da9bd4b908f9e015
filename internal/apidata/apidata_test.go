package apidata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type receiptRecord struct {
	No     int    `json:"no"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

func TestUnmarshal_Wrapped(t *testing.T) {
	data := []byte(`{"sales_receipt": {"no": 12, "date": "2025-01-15", "amount": "950.00"}}`)

	var rec receiptRecord
	shape, err := Unmarshal(data, "sales_receipt", &rec)
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, shape)
	assert.Equal(t, 12, rec.No)
	assert.Equal(t, "950.00", rec.Amount)
}

func TestUnmarshal_Flat(t *testing.T) {
	data := []byte(`{"no": 12, "date": "2025-01-15", "amount": "950.00"}`)

	var rec receiptRecord
	shape, err := Unmarshal(data, "sales_receipt", &rec)
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, shape)
	assert.Equal(t, 12, rec.No)
}

func TestUnmarshal_WrappedBadRecord(t *testing.T) {
	data := []byte(`{"sales_receipt": [1, 2]}`)

	var rec receiptRecord
	_, err := Unmarshal(data, "sales_receipt", &rec)
	require.Error(t, err)
}

func TestUnmarshalList_Flat(t *testing.T) {
	data := []byte(`  [{"no": 1}, {"no": 2}]`)

	var recs []receiptRecord
	shape, err := UnmarshalList(data, "sales_receipts", &recs)
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, shape)
	require.Len(t, recs, 2)
	assert.Equal(t, 2, recs[1].No)
}

func TestUnmarshalList_Wrapped(t *testing.T) {
	data := []byte(`{"sales_receipts": [{"no": 1}, {"no": 2}]}`)

	var recs []receiptRecord
	shape, err := UnmarshalList(data, "sales_receipts", &recs)
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, shape)
	require.Len(t, recs, 2)
}

func TestUnmarshalList_MissingKey(t *testing.T) {
	data := []byte(`{"other": []}`)

	var recs []receiptRecord
	_, err := UnmarshalList(data, "sales_receipts", &recs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sales_receipts")
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "flat", ShapeFlat.String())
	assert.Equal(t, "wrapped", ShapeWrapped.String())
}
