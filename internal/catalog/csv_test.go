package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/model"
)

func decimalFrom(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReadItems(t *testing.T) {
	input := strings.Join([]string{
		"item_id,name,kind,income_account_id,asset_account_id,avg_cost,description",
		"1,Monthly Rent,service,4010,,950,",
		"4,Early Payment Discount,discount,4090,,25,",
		"5,Deposit Applied,payment,,1020,,",
	}, "\n")

	items, err := ReadItems(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, model.ItemKindService, items[0].Kind)
	assert.Equal(t, 4010, items[0].IncomeAccountID)
	assert.True(t, items[0].AvgCost.Equal(decimalFrom("950")))

	assert.True(t, items[1].ReducesTotal())
	assert.Equal(t, 1020, items[2].AssetAccountID)
	assert.Equal(t, 0, items[2].IncomeAccountID)
}

func TestReadItems_UnknownKind(t *testing.T) {
	input := strings.Join([]string{
		"item_id,name,kind,income_account_id,asset_account_id,avg_cost,description",
		"1,Mystery,fee,,,10,",
	}, "\n")

	_, err := ReadItems(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item kind")
}

func TestWriteReadRoundTrip(t *testing.T) {
	items := DefaultCatalog()

	var buf bytes.Buffer
	require.NoError(t, WriteItems(&buf, items))

	got, err := ReadItems(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(items))
	for i := range items {
		assert.Equal(t, items[i].ID, got[i].ID)
		assert.Equal(t, items[i].Kind, got[i].Kind)
		assert.True(t, items[i].AvgCost.Equal(got[i].AvgCost))
	}
}

func TestServiceLookup(t *testing.T) {
	svc := NewService(DefaultCatalog())

	item, ok := svc.Item(4)
	require.True(t, ok)
	assert.Equal(t, model.ItemKindDiscount, item.Kind)

	_, ok = svc.Item(99)
	assert.False(t, ok)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(DefaultCatalog())
	require.NoError(t, svc.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, loaded.All(), len(svc.All()))
}
