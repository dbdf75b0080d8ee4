package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charscan/pkg/charscan/models"
)

func TestWriteResultsCSV(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "input.xlsx"), "", nil)

	rows := [][]string{
		{"sheet", "row", "col"},
		{"Sheet1", "4", "3"},
	}
	path, err := sink.WriteResultsCSV(rows)
	require.NoError(t, err)
	assert.True(t, strings.Contains(filepath.Base(path), "input_char_scan_results_"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	read, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, rows, read)
}

func TestWriteFindingsReport(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "input.xlsx"), "", nil)

	path, err := sink.WriteFindingsReport("Found 1 instances of problematic characters:\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Problematic Character Report for: input.xlsx")
	assert.Contains(t, content, "Run ID: "+sink.RunID())
	assert.Contains(t, content, "Found 1 instances")
}

func TestWriteCleaningLog(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(filepath.Join(dir, "input.xlsx"), "", nil)

	entries := []models.CleaningLogEntry{
		{
			Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			Sheet:     "Sheet1", Row: 4, Col: 3,
			Char: 0x81, Operation: models.OpDelete,
			Original: "John Doe's Café",
			Result:   "John Doe's Café",
		},
		{
			Timestamp: time.Date(2026, 8, 30, 12, 0, 1, 0, time.UTC),
			Sheet:     "Sheet1", Row: 5, Col: 3,
			Char: 0x82, Operation: models.OpReplace, Replacement: "?",
			Original: "x",
			Result:   "x?",
		},
	}

	path, err := sink.WriteCleaningLog(entries)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Total edits applied: 2")
	assert.Contains(t, content, "Change 1:")
	assert.Contains(t, content, "Cell: C4")
	assert.Contains(t, content, "Character: 0x81")
	assert.Contains(t, content, "Operation: delete")
	assert.Contains(t, content, "Replacement: ?")
	assert.Contains(t, content, "Cleaned: John Doe's Café")
}

func TestSinkOutputDir(t *testing.T) {
	base := t.TempDir()
	out := filepath.Join(base, "reports")
	sink := NewSink(filepath.Join(base, "input.xlsx"), out, nil)

	path, err := sink.WriteFindingsReport("text\n")
	require.NoError(t, err)
	assert.Equal(t, out, filepath.Dir(path))

	cleaned := sink.CleanedPath()
	assert.Equal(t, out, filepath.Dir(cleaned))
	assert.True(t, strings.HasSuffix(cleaned, ".xlsx"))
}
