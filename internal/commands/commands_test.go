package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/accounts"
	"github.com/propbooks-dev/propbooks/internal/catalog"
	"github.com/propbooks-dev/propbooks/internal/config"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "propbooks-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "propbooks")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/propbooks")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runPropbooks(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func initBooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runPropbooks(t, "init", dir, "--name", "12 Maple St")
	require.NoError(t, err, "init output: %s", out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initBooks(t)

	expectedDirs := []string{
		"accounts",
		"catalog",
		"contacts",
		"readings",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.NoError(t, err, "git repository should be initialized")
}

func TestInit_WritesDefaults(t *testing.T) {
	dir := initBooks(t)

	cfg, err := config.Load(filepath.Join(dir, "propbooks.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "12 Maple St", cfg.Property.Name)
	assert.Equal(t, 1010, cfg.Receipts.DefaultAssetAccountID)

	accts, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, accts.AssetAccounts())

	cat, err := catalog.Load(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, cat.All())
}

func TestInit_RequiresName(t *testing.T) {
	out, err := runPropbooks(t, "init", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "name")
}

func writeDraft(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const rentDraft = `date: 2025-01-15
unit_id: 1
payer_id: 4
description: January rent
items:
  - item_id: 1
  - item_id: 4
`

func TestReceiptAdd_PostsReceipt(t *testing.T) {
	dir := initBooks(t)
	draft := writeDraft(t, t.TempDir(), rentDraft)

	out, err := runPropbooks(t, "receipt", "add", draft, "--books", dir)
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "Posted R-0001")
	assert.Contains(t, out, "entry 2025-01-001")

	// Posted files exist.
	_, err = os.Stat(filepath.Join(dir, "2025", "01", "receipts.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "2025", "01", "journal.csv"))
	assert.NoError(t, err)

	// Audit trail written.
	_, err = os.Stat(filepath.Join(dir, "logs", "audit-log.csv"))
	assert.NoError(t, err)
}

func TestReceiptAdd_SequentialNumbers(t *testing.T) {
	dir := initBooks(t)
	draft := writeDraft(t, t.TempDir(), rentDraft)

	out, err := runPropbooks(t, "receipt", "add", draft, "--books", dir)
	require.NoError(t, err, "output: %s", out)
	out, err = runPropbooks(t, "receipt", "add", draft, "--books", dir)
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "Posted R-0002")
}

func TestReceiptSplits_PreviewsWithoutPosting(t *testing.T) {
	dir := initBooks(t)
	draft := writeDraft(t, t.TempDir(), rentDraft)

	out, err := runPropbooks(t, "receipt", "splits", draft, "--books", dir)
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "1010")
	assert.Contains(t, out, "TOTAL")

	// Nothing posted.
	_, err = os.Stat(filepath.Join(dir, "2025"))
	assert.True(t, os.IsNotExist(err))
}

func TestReceiptList(t *testing.T) {
	dir := initBooks(t)
	draft := writeDraft(t, t.TempDir(), rentDraft)

	_, err := runPropbooks(t, "receipt", "add", draft, "--books", dir)
	require.NoError(t, err)

	out, err := runPropbooks(t, "receipt", "list", "--books", dir, "--month", "2025-01")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "R-0001")
	assert.Contains(t, out, "January rent")

	out, err = runPropbooks(t, "receipt", "list", "--books", dir, "--month", "2025-02")
	require.NoError(t, err)
	assert.Contains(t, out, "No receipts")
}

func TestReportTrialBalance(t *testing.T) {
	dir := initBooks(t)
	draft := writeDraft(t, t.TempDir(), rentDraft)

	_, err := runPropbooks(t, "receipt", "add", draft, "--books", dir)
	require.NoError(t, err)

	out, err := runPropbooks(t, "report", "trial-balance", "--books", dir, "--month", "2025-01")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "Balanced.")
	assert.Contains(t, out, "Rent Income")
}

func TestReadingAdd(t *testing.T) {
	dir := initBooks(t)

	out, err := runPropbooks(t, "reading", "add", "--books", dir,
		"--item", "2", "--unit", "1", "--date", "2025-01-15",
		"--previous", "1200", "--current", "1230", "--price", "3.50")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "consumption 30")
	assert.Contains(t, out, "amount 105.00")

	// Second reading seeds previous from the first.
	out, err = runPropbooks(t, "reading", "add", "--books", dir,
		"--item", "2", "--unit", "1", "--date", "2025-02-15",
		"--current", "1255", "--price", "3.50")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "consumption 25")
}

func TestImportMeterFile(t *testing.T) {
	dir := initBooks(t)

	// Map one of the two meters in the fixture.
	cfgPath := filepath.Join(dir, "propbooks.yaml")
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Meters = map[string]config.Meter{
		"W-8841-2": {UnitID: 1, ItemID: 2},
	}
	require.NoError(t, config.Save(cfgPath, cfg))

	data, err := os.ReadFile("../../testdata/meter_water.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "water.csv"), data, 0o644))

	out, err := runPropbooks(t, "import", "list", "--books", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "water.csv")

	out, err = runPropbooks(t, "import", "run", "water.csv", "--books", dir, "--format", "meter")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "Imported 2 records")

	// File moved to processed.
	_, err = os.Stat(filepath.Join(dir, "import", "water.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "water.csv"))
	assert.NoError(t, err)
}

func TestImportLegacyReceipts(t *testing.T) {
	dir := initBooks(t)

	data, err := os.ReadFile("../../testdata/legacy_receipts.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "receipts.json"), data, 0o644))

	out, err := runPropbooks(t, "import", "run", "receipts.json", "--books", dir, "--format", "legacy")
	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "Imported 2 records")

	out, err = runPropbooks(t, "receipt", "list", "--books", dir, "--month", "2025-01")
	require.NoError(t, err)
	// Numbers are reissued by the store, starting from 1.
	assert.Contains(t, out, "R-0001")
	assert.Contains(t, out, "R-0002")
}

func TestImport_UnknownFormat(t *testing.T) {
	dir := initBooks(t)
	out, err := runPropbooks(t, "import", "run", "x.csv", "--books", dir, "--format", "nope")
	require.Error(t, err)
	assert.Contains(t, out, "unknown import format")
}

func TestVersionFlag(t *testing.T) {
	out, err := runPropbooks(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "dev") || strings.Contains(out, "commit"))
}
