package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixedNow(t *testing.T) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = prev })
}

func TestGenerateReportFiles_SingleFormat(t *testing.T) {
	withFixedNow(t)
	dir := t.TempDir()
	res := runFixture(t)

	files, err := GenerateReportFiles(res, "csv-yearly", dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "swp_report_20250101_093000.csv")}, files)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Scenario,Year,TotalInvested")
}

func TestGenerateReportFiles_All(t *testing.T) {
	withFixedNow(t)
	dir := t.TempDir()
	res := runFixture(t)

	files, err := GenerateReportFiles(res, "all", dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, ".txt", filepath.Ext(files[0]))
	assert.Equal(t, ".csv", filepath.Ext(files[1]))
	assert.Equal(t, ".json", filepath.Ext(files[2]))
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestGenerateReportFiles_UnknownFormat(t *testing.T) {
	dir := t.TempDir()

	files, err := GenerateReportFiles(runFixture(t), "xml", dir)
	assert.Empty(t, files)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateReportFiles_MissingDirectory(t *testing.T) {
	_, err := GenerateReportFiles(runFixture(t), "json", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, runFixture(t), "summary"))
	assert.Contains(t, buf.String(), "SWP PROJECTION SUMMARY")

	err := WriteReport(&buf, runFixture(t), "nope")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"console":      "txt",
		"lite":         "txt",
		"csv":          "csv",
		"csv-monthly":  "csv",
		"detailed-csv": "csv",
		"json":         "json",
		"html-report":  "html",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtensionFor(in), in)
	}
}
