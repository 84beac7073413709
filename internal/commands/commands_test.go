package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watspent/watspent/internal/commands"
	"github.com/watspent/watspent/internal/config"
	"github.com/watspent/watspent/internal/export"
	"github.com/watspent/watspent/internal/history"
)

var fixturePath = filepath.Join("..", "..", "testdata", "watcard_paste.txt")

func runWatspent(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runWatspent(t, "", "init", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "America/Toronto", cfg.Import.Timezone)
	assert.Equal(t, "negative", cfg.Analytics.SpendSign)
	assert.Equal(t, []string{"003"}, cfg.Analytics.ExcludedTypeCodes)
	assert.Equal(t, filepath.Join("logs", "imports.csv"), cfg.History.File)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runWatspent(t, "", "init", dir)
	require.NoError(t, err)

	_, err = runWatspent(t, "", "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runWatspent(t, "", "init", dir, "--force")
	assert.NoError(t, err)
}

func TestInit_BadTimezone(t *testing.T) {
	_, err := runWatspent(t, "", "init", t.TempDir(), "--timezone", "Mars/Olympus")
	assert.Error(t, err)
}

func TestAnalyze_Text(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	out, err := runWatspent(t, "", "analyze", fixturePath, "--config", cfgPath)
	require.NoError(t, err, out)

	assert.Contains(t, out, "WatCard Spending")
	assert.Contains(t, out, "$40.50")
	assert.Contains(t, out, "REVelation (3 visits)")
}

func TestAnalyze_JSONFromStdin(t *testing.T) {
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err)

	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	out, err := runWatspent(t, string(data), "analyze", "-", "--json", "--config", cfgPath, "--log-level", "error")
	require.NoError(t, err, out)

	var report struct {
		Count           int    `json:"count"`
		TotalSpent      string `json:"totalSpent"`
		UniqueTerminals int    `json:"uniqueTerminals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, 6, report.Count)
	assert.Equal(t, "40.5", report.TotalSpent)
	assert.Equal(t, 4, report.UniqueTerminals)
}

func TestAnalyze_ParseError(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	_, err := runWatspent(t, "no table here", "analyze", "--config", cfgPath, "--log-level", "error")
	require.Error(t, err)
	assert.Equal(t, "Could not find transaction data. Please copy the entire transaction table from WatCard.", err.Error())
}

func TestAnalyze_ConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.Default()
	cfg.Analytics.OutlierLimit = "10"
	cfg.Venues = map[string]string{"00043": "REV Cafeteria"}
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runWatspent(t, "", "analyze", fixturePath, "--config", cfgPath)
	require.NoError(t, err, out)
	// The 11.20 purchase is at or over the limit.
	assert.Contains(t, out, "$29.30")
	assert.Contains(t, out, "REV Cafeteria (3 visits)")
}

func TestAnalyze_BadLogLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	_, err := runWatspent(t, "", "analyze", fixturePath, "--config", cfgPath, "--log-level", "loud")
	assert.Error(t, err)
}

func TestExport_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "exports")
	cfgPath := filepath.Join(dir, config.FileName)

	out, err := runWatspent(t, "", "export", fixturePath, "--out", outDir, "--config", cfgPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exported 6 transactions")

	matches, err := filepath.Glob(filepath.Join(outDir, "watcard_transactions_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, export.HeaderLine(), lines[0])

	// The export feeds back into analyze.
	out, err = runWatspent(t, "", "analyze", matches[0], "--config", cfgPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "$40.50")
}

func TestExport_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	_, err := runWatspent(t, "", "init", dir)
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, config.FileName)

	_, err = runWatspent(t, "", "export", fixturePath, "--out", dir, "--config", cfgPath)
	require.NoError(t, err)
	_, err = runWatspent(t, "garbage", "export", "--out", dir, "--config", cfgPath)
	require.Error(t, err)

	entries, err := history.New(filepath.Join(dir, "logs", "imports.csv")).Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.OutcomeImported, entries[0].Outcome)
	assert.Equal(t, "watcard_paste.txt", entries[0].Source)
	assert.Equal(t, history.OutcomeRejected, entries[1].Outcome)
	assert.Equal(t, "stdin", entries[1].Source)
}

func TestVersion(t *testing.T) {
	out, err := runWatspent(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
}
