package export

import (
	"archive/tar"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/entity"
	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/costsynth/costsynth-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Materialização do relatório ---

// WriteReportCSV writes the month's rows with the full column list as header.
// Absent fields stay empty strings so every row has the full schema.
func (r *ExportRepositoryImpl) WriteReportCSV(outputFile string, columns []string, rows []generator.Row) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("error writing report header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, column := range columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing report record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// --- Empacotamento ---

// GzipFile compresses the report into a temp .csv.gz file.
func (r *ExportRepositoryImpl) GzipFile(reportPath string) (string, error) {
	in, err := os.Open(reportPath)
	if err != nil {
		return "", fmt.Errorf("error opening report for compression: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp("", "*.csv.gz")
	if err != nil {
		return "", fmt.Errorf("error creating temp gzip file: %w", err)
	}

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("error compressing report: %w", err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("error finalizing gzip stream: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("error closing temp gzip file: %w", err)
	}
	return out.Name(), nil
}

// TarGzipDir bundles the directory contents into a temp .tar.gz file.
func (r *ExportRepositoryImpl) TarGzipDir(dir string) (string, error) {
	out, err := os.CreateTemp("", "*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("error creating temp archive file: %w", err)
	}

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = rel
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})

	if walkErr == nil {
		walkErr = tw.Close()
	} else {
		tw.Close()
	}
	if closeErr := gz.Close(); walkErr == nil {
		walkErr = closeErr
	}
	if closeErr := out.Close(); walkErr == nil {
		walkErr = closeErr
	}
	if walkErr != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("error building payload archive: %w", walkErr)
	}
	return out.Name(), nil
}

// WriteTempManifest stores manifest bytes in a temp .json file.
func (r *ExportRepositoryImpl) WriteTempManifest(data []byte) (string, error) {
	out, err := os.CreateTemp("", "*.json")
	if err != nil {
		return "", fmt.Errorf("error creating temp manifest file: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("error writing temp manifest: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("error closing temp manifest: %w", err)
	}
	return out.Name(), nil
}

// CreateTemporaryCopy copia um arquivo para a área temporária, opcionalmente
// dentro de um subdiretório nomeado.
func (r *ExportRepositoryImpl) CreateTemporaryCopy(path, tempFileName, tempDirName string) (string, error) {
	tempDir := os.TempDir()
	if tempDirName != "" {
		tempDir = filepath.Join(tempDir, tempDirName)
		if err := os.MkdirAll(tempDir, 0755); err != nil {
			return "", fmt.Errorf("error creating temp subdirectory: %w", err)
		}
	}
	tempPath := filepath.Join(tempDir, tempFileName)

	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening file for temporary copy: %w", err)
	}
	defer in.Close()

	out, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("error creating temporary copy: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("error copying file to temp location: %w", err)
	}
	return tempPath, nil
}

// --- Funções de Exportação do Resumo da Execução ---

func (r *ExportRepositoryImpl) ExportSummaryToCSV(summaries []entity.MonthSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating summary CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Provider", "Month", "Year", "Output File", "Rows", "Generators", "Delivered",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range summaries {
		record := []string{
			row.Provider,
			row.Month,
			fmt.Sprintf("%d", row.Year),
			row.OutputFile,
			fmt.Sprintf("%d", row.RowCount),
			strings.Join(row.Generators, "\n"),
			fmt.Sprintf("%t", row.Delivered),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToPDF(summaries []entity.MonthSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	for i, sum := range summaries {
		pdf.AddPage()

		// Cabeçalho
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Report Summary: %s %d", sum.Month, sum.Year)), "", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Provider: %s", sum.Provider)), "", 1, "L", true, 0, "")
		pdf.Ln(10)

		drawSection("Output", fmt.Sprintf("File: %s\nRows: %d\nDelivered: %t", sum.OutputFile, sum.RowCount, sum.Delivered))
		drawSection("Generators", strings.Join(sum.Generators, "\n"))

		// Rodapé
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by costsynth | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing summary PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
