package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/model"
)

type fakeJournal struct {
	legs []model.Leg
	err  error
}

func (f *fakeJournal) ReadThrough(year, month int) ([]model.Leg, error) {
	return f.legs, f.err
}

type fakeAccounts map[int]model.Account

func (f fakeAccounts) Account(id int) (model.Account, bool) {
	acct, ok := f[id]
	return acct, ok
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func leg(acctID int, debit, credit string, status model.ReceiptStatus) model.Leg {
	return model.Leg{
		EntryID:   "2025-01-001a",
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		AccountID: acctID,
		Debit:     dec(debit),
		Credit:    dec(credit),
		Status:    status,
	}
}

var testAccounts = fakeAccounts{
	1010: {ID: 1010, Name: "Operating Checking", Type: model.AccountTypeAsset},
	4010: {ID: 4010, Name: "Rent Income", Type: model.AccountTypeRevenue},
	4090: {ID: 4090, Name: "Discounts Given", Type: model.AccountTypeRevenue},
}

func TestTrialBalanceThrough(t *testing.T) {
	j := &fakeJournal{legs: []model.Leg{
		leg(1010, "925.00", "0", model.ReceiptStatusActive),
		leg(4090, "25.00", "0", model.ReceiptStatusActive),
		leg(4010, "0", "950.00", model.ReceiptStatusActive),
		leg(1010, "105.00", "0", model.ReceiptStatusActive),
		leg(4010, "0", "105.00", model.ReceiptStatusActive),
	}}

	tb, err := TrialBalanceThrough(j, testAccounts, 2025, 1)
	require.NoError(t, err)

	require.Len(t, tb.Rows, 3)
	assert.Equal(t, 1010, tb.Rows[0].AccountID)
	assert.Equal(t, "Operating Checking", tb.Rows[0].AccountName)
	assert.Equal(t, "1030.00", tb.Rows[0].Debit.StringFixed(2))

	assert.Equal(t, 4010, tb.Rows[1].AccountID)
	assert.Equal(t, "1055.00", tb.Rows[1].Credit.StringFixed(2))

	assert.Equal(t, 4090, tb.Rows[2].AccountID)
	assert.Equal(t, "25.00", tb.Rows[2].Debit.StringFixed(2))

	assert.Equal(t, "1055.00", tb.TotalDebit.StringFixed(2))
	assert.Equal(t, "1055.00", tb.TotalCredit.StringFixed(2))
	assert.True(t, tb.Balanced())
}

func TestTrialBalanceThrough_SkipsVoided(t *testing.T) {
	j := &fakeJournal{legs: []model.Leg{
		leg(1010, "925.00", "0", model.ReceiptStatusActive),
		leg(4010, "0", "925.00", model.ReceiptStatusActive),
		leg(1010, "500.00", "0", model.ReceiptStatusVoided),
		leg(4010, "0", "500.00", model.ReceiptStatusVoided),
	}}

	tb, err := TrialBalanceThrough(j, testAccounts, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, "925.00", tb.TotalDebit.StringFixed(2))
	assert.Equal(t, "925.00", tb.TotalCredit.StringFixed(2))
}

func TestTrialBalanceThrough_UnknownAccountPlaceholder(t *testing.T) {
	j := &fakeJournal{legs: []model.Leg{
		leg(9999, "10.00", "0", model.ReceiptStatusActive),
	}}

	tb, err := TrialBalanceThrough(j, testAccounts, 2025, 1)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 1)
	assert.Equal(t, "ID: 9999", tb.Rows[0].AccountName)
}

func TestTrialBalanceThrough_Empty(t *testing.T) {
	tb, err := TrialBalanceThrough(&fakeJournal{}, testAccounts, 2025, 1)
	require.NoError(t, err)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.Balanced())
}

func TestTrialBalanceThrough_ReadError(t *testing.T) {
	j := &fakeJournal{err: assert.AnError}
	_, err := TrialBalanceThrough(j, testAccounts, 2025, 1)
	require.Error(t, err)
}
