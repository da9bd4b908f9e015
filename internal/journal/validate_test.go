package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/model"
)

func balancedEntry(seq int, debitAcct, creditAcct int, amount string) []model.Leg {
	entryID := fmt.Sprintf("2025-01-%03d", seq)
	return []model.Leg{
		{
			EntryID:   entryID + "a",
			Date:      date(2025, 1, 15),
			AccountID: debitAcct,
			Debit:     dec(amount),
			Status:    model.ReceiptStatusActive,
		},
		{
			EntryID:   entryID + "b",
			Date:      date(2025, 1, 15),
			AccountID: creditAcct,
			Credit:    dec(amount),
			Status:    model.ReceiptStatusActive,
		},
	}
}

var defaultAccounts = newMockAccounts(1010, 1020, 4010, 4090)

func TestValidate_Balanced(t *testing.T) {
	legs := balancedEntry(1, 1010, 4010, "950.00")
	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	assert.Empty(t, errs)
}

func TestValidate_UnbalancedGroup(t *testing.T) {
	legs := balancedEntry(1, 1010, 4010, "950.00")
	legs[1].Credit = dec("949.99")

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	require.NotEmpty(t, errs)
	assert.Equal(t, 1, errs[0].Invariant)
}

func TestValidate_BothSidesSet(t *testing.T) {
	legs := balancedEntry(1, 1010, 4010, "10.00")
	legs[0].Credit = dec("10.00") // debit leg also carries a credit

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	found := false
	for _, e := range errs {
		if e.Invariant == 2 {
			found = true
		}
	}
	assert.True(t, found, "expected invariant 2 violation")
}

func TestValidate_NeitherSideSet(t *testing.T) {
	legs := []model.Leg{{
		EntryID:   "2025-01-001a",
		Date:      date(2025, 1, 15),
		AccountID: 1010,
	}}

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	require.NotEmpty(t, errs)
	assert.Equal(t, 2, errs[0].Invariant)
}

func TestValidate_UnknownAccount(t *testing.T) {
	legs := balancedEntry(1, 9999, 4010, "10.00")

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	found := false
	for _, e := range errs {
		if e.Invariant == 3 {
			found = true
			assert.Contains(t, e.Description, "9999")
		}
	}
	assert.True(t, found)
}

func TestValidate_DateOutsideMonth(t *testing.T) {
	legs := balancedEntry(1, 1010, 4010, "10.00")
	legs[0].Date = date(2025, 2, 1)

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	found := false
	for _, e := range errs {
		if e.Invariant == 4 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_MissingSequence(t *testing.T) {
	legs := append(balancedEntry(1, 1010, 4010, "10.00"), balancedEntry(3, 1010, 4010, "20.00")...)

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	found := false
	for _, e := range errs {
		if e.Invariant == 5 {
			found = true
			assert.Contains(t, e.Description, "missing sequence 2")
		}
	}
	assert.True(t, found)
}

func TestValidate_TooManyDecimalPlaces(t *testing.T) {
	legs := balancedEntry(1, 1010, 4010, "10.001")

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	found := false
	for _, e := range errs {
		if e.Invariant == 6 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_MultiLegGroupBalances(t *testing.T) {
	legs := []model.Leg{
		{EntryID: "2025-01-001a", Date: date(2025, 1, 5), AccountID: 1010, Debit: dec("925.00")},
		{EntryID: "2025-01-001b", Date: date(2025, 1, 5), AccountID: 4090, Debit: dec("25.00")},
		{EntryID: "2025-01-001c", Date: date(2025, 1, 5), AccountID: 4010, Credit: dec("950.00")},
	}

	errs := ValidateLegs(legs, defaultAccounts, 2025, 1)
	assert.Empty(t, errs)
}
