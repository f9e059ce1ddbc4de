package export

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsynth/costsynth-go/internal/domain/entity"
	"github.com/costsynth/costsynth-go/internal/domain/generator"
)

func TestWriteReportCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()
	outputFile := filepath.Join(dir, "report.csv")

	columns := []string{"a", "b", "c"}
	rows := []generator.Row{
		{"a": "1", "b": "2", "c": "3"},
		{"a": "4", "c": "6"},
	}

	require.NoError(t, repo.WriteReportCSV(outputFile, columns, rows))

	f, err := os.Open(outputFile)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	t.Run("header equals the column list in order", func(t *testing.T) {
		assert.Equal(t, columns, records[0])
	})

	t.Run("rows are serialized in column order", func(t *testing.T) {
		assert.Equal(t, []string{"1", "2", "3"}, records[1])
	})

	t.Run("absent fields stay empty", func(t *testing.T) {
		assert.Equal(t, []string{"4", "", "6"}, records[2])
	})
}

func TestGzipFile(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	source := filepath.Join(dir, "report.csv")
	content := []byte("a,b\n1,2\n")
	require.NoError(t, os.WriteFile(source, content, 0644))

	archive, err := repo.GzipFile(source)
	require.NoError(t, err)
	defer os.Remove(archive)

	f, err := os.Open(archive)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	decompressed, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, content, decompressed)
}

func TestTarGzipDir(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "usage.csv"), []byte("a\n"), 0644))

	archive, err := repo.TarGzipDir(dir)
	require.NoError(t, err)
	defer os.Remove(archive)

	info, err := os.Stat(archive)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".gz", filepath.Ext(archive))
}

func TestCreateTemporaryCopy(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	source := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(source, []byte("data"), 0644))

	copied, err := repo.CreateTemporaryCopy(source, "renamed.csv", "payload-test")
	require.NoError(t, err)
	defer os.RemoveAll(filepath.Dir(copied))

	assert.Equal(t, "renamed.csv", filepath.Base(copied))
	assert.Equal(t, "payload-test", filepath.Base(filepath.Dir(copied)))

	content, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)
}

func TestWriteTempManifest(t *testing.T) {
	repo := NewExportRepository()

	path, err := repo.WriteTempManifest([]byte(`{"assemblyId":"x"}`))
	require.NoError(t, err)
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"assemblyId":"x"}`, string(content))
	assert.Equal(t, ".json", filepath.Ext(path))
}

func TestExportSummaryToCSV(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	summaries := []entity.MonthSummary{
		{
			Provider:   "AWS",
			Month:      "June",
			Year:       2024,
			OutputFile: "/tmp/June-2024-cur-report.csv",
			RowCount:   47,
			Generators: []string{"S3Generator"},
			Delivered:  true,
		},
	}

	path, err := repo.ExportSummaryToCSV(summaries, "run-summary", dir)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AWS", records[1][0])
	assert.Equal(t, "June", records[1][1])
	assert.Equal(t, "47", records[1][4])
	assert.Equal(t, "true", records[1][6])
}
