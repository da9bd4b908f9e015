package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/model"
)

func TestServiceLookups(t *testing.T) {
	svc := NewService(DefaultChart())

	a, ok := svc.Account(1010)
	require.True(t, ok)
	assert.Equal(t, "Operating Cash", a.Name)

	_, ok = svc.Account(9999)
	assert.False(t, ok)

	assert.True(t, svc.Exists(4010))
	assert.False(t, svc.Exists(0))
}

func TestAssetAccounts(t *testing.T) {
	svc := NewService(DefaultChart())

	assets := svc.AssetAccounts()
	require.NotEmpty(t, assets)
	for _, a := range assets {
		assert.Equal(t, model.AccountTypeAsset, a.Type)
	}
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultChart())

	revenue := svc.ByType(model.AccountTypeRevenue)
	require.NotEmpty(t, revenue)
	for _, a := range revenue {
		assert.Equal(t, model.AccountTypeRevenue, a.Type)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(DefaultChart())
	require.NoError(t, svc.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), loaded.All())
}
