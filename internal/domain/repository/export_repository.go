package repository

import (
	"github.com/costsynth/costsynth-go/internal/domain/entity"
	"github.com/costsynth/costsynth-go/internal/domain/generator"
)

// ExportRepository materializa linhas em arquivos e embala os artefatos de
// entrega de um mês.
type ExportRepository interface {
	// WriteReportCSV writes one month of rows to a CSV file whose header is
	// the provider's full column list in declared order.
	WriteReportCSV(outputFile string, columns []string, rows []generator.Row) error

	// GzipFile compresses a report into a temporary .csv.gz and returns its
	// path. The caller owns the temp file.
	GzipFile(reportPath string) (string, error)

	// TarGzipDir bundles a directory into a temporary .tar.gz and returns its
	// path. The caller owns the temp file.
	TarGzipDir(dir string) (string, error)

	// WriteTempManifest stores manifest bytes in a temporary file and returns
	// its path. The caller owns the temp file.
	WriteTempManifest(data []byte) (string, error)

	// CreateTemporaryCopy copies a file into the temp area under the given
	// name, optionally inside a named subdirectory.
	CreateTemporaryCopy(path, tempFileName, tempDirName string) (string, error)

	// Run summary exports
	ExportSummaryToCSV(summaries []entity.MonthSummary, filename, outputDir string) (string, error)
	ExportSummaryToPDF(summaries []entity.MonthSummary, filename, outputDir string) (string, error)
}
