package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("12 Maple St")
	cfg.Property.Address = "12 Maple St, Springfield"
	cfg.Meters = map[string]Meter{
		"W-8841-2": {UnitID: 1, ItemID: 2},
	}

	path := filepath.Join(t.TempDir(), "propbooks.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Property.Name, got.Property.Name)
	assert.Equal(t, cfg.Property.Address, got.Property.Address)
	assert.Equal(t, cfg.Fiscal.YearStart, got.Fiscal.YearStart)
	assert.Equal(t, cfg.Receipts.DefaultAssetAccountID, got.Receipts.DefaultAssetAccountID)
	assert.Equal(t, cfg.Receipts.Actor, got.Receipts.Actor)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	require.Contains(t, got.Meters, "W-8841-2")
	assert.Equal(t, 1, got.Meters["W-8841-2"].UnitID)
	assert.Equal(t, 2, got.Meters["W-8841-2"].ItemID)
}

func TestDefaults(t *testing.T) {
	cfg := Default("12 Maple St")

	assert.Equal(t, "12 Maple St", cfg.Property.Name)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, 1010, cfg.Receipts.DefaultAssetAccountID)
	assert.Equal(t, "manager", cfg.Receipts.Actor)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Empty(t, cfg.Meters)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propbooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("property: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("12 Maple St")
	path := filepath.Join(t.TempDir(), "propbooks.yaml")
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, "property:"))
	assert.True(t, strings.Contains(text, "year_start:"))
	assert.True(t, strings.Contains(text, "default_asset_account_id:"))
}
