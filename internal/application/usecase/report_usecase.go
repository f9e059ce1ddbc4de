package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/costsynth/costsynth-go/internal/domain/entity"
	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/costsynth/costsynth-go/internal/domain/generator/aws"
	"github.com/costsynth/costsynth-go/internal/domain/generator/ocp"
	"github.com/costsynth/costsynth-go/internal/domain/repository"
	"github.com/costsynth/costsynth-go/internal/shared/types"
)

// ReportUseCase orquestra a síntese dos relatórios: segmenta o intervalo em
// meses, instancia os geradores, finaliza, materializa, empacota e entrega.
type ReportUseCase struct {
	configRepo   repository.ConfigRepository
	exportRepo   repository.ExportRepository
	deliveryRepo repository.DeliveryRepository
	console      types.ConsoleInterface
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	deliveryRepo repository.DeliveryRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		configRepo:   configRepo,
		exportRepo:   exportRepo,
		deliveryRepo: deliveryRepo,
		console:      console,
	}
}

// newRand builds the single random source shared by the whole run. A zero
// seed means a fresh one per invocation.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RunAWSReport executa o pipeline AWS completo para o intervalo de datas.
func (uc *ReportUseCase) RunAWSReport(ctx context.Context, args *types.CLIArgs) error {
	rnd := newRand(args.Seed)

	static, err := uc.loadStaticConfig(args)
	if err != nil {
		return err
	}

	// Toda a configuração é validada antes de qualquer geração.
	specs, payer, usageAccounts, err := resolveAWSRun(static, rnd)
	if err != nil {
		return err
	}

	months, err := entity.MonthList(args.StartDate, args.EndDate)
	if err != nil {
		return err
	}

	status := uc.console.Status("Generating AWS cost and usage reports...")
	defer status.Stop()

	progress := uc.console.ProgressWithTotal(len(months))
	summaries := make([]entity.MonthSummary, 0, len(months))
	for _, month := range months {
		status.Update(fmt.Sprintf("Generating %s %d...", month.Name, month.Start.Year()))
		summary, err := uc.createAWSMonth(ctx, args, month, specs, payer, usageAccounts, rnd)
		if err != nil {
			progress.Stop()
			return err
		}
		summaries = append(summaries, summary)
		progress.Increment()
	}
	progress.Stop()
	status.Stop()

	return uc.exportSummaries(args, summaries, args.AWSReportName)
}

// createAWSMonth produz, finaliza, materializa e entrega o relatório de um
// mês. Todos os artefatos temporários são removidos antes do retorno.
func (uc *ReportUseCase) createAWSMonth(
	ctx context.Context,
	args *types.CLIArgs,
	month entity.MonthSegment,
	specs []generator.Spec,
	payer string,
	usageAccounts []string,
	rnd *rand.Rand,
) (entity.MonthSummary, error) {
	var data []generator.Row
	genNames := make([]string, 0, len(specs))

	for _, spec := range specs {
		genStart, genEnd := month.Start, month.End
		if spec.Attributes != nil {
			if !spec.Attributes.StartDate.IsZero() {
				genStart = spec.Attributes.StartDate
			}
			if !spec.Attributes.EndDate.IsZero() {
				genEnd = spec.Attributes.EndDate
			}
		}

		// O limite final avança um dia para incluir a última hora do último
		// dia do segmento.
		gen, err := aws.New(spec.Name, genStart, genEnd.AddDate(0, 0, 1), payer, usageAccounts, spec.Attributes, rnd)
		if err != nil {
			return entity.MonthSummary{}, err
		}
		rows, err := gen.GenerateData()
		if err != nil {
			return entity.MonthSummary{}, err
		}
		data = append(data, rows...)
		genNames = append(genNames, spec.Name)
	}

	fileBase := fmt.Sprintf("%s-%d-%s", month.Name, month.Start.Year(), args.AWSReportName)
	outputFile := filepath.Join(args.Dir, fileBase+".csv")

	switch args.AWSFinalizeMode {
	case "overwrite":
		data = finalizeAWSReport(data, rnd)
	case "copy":
		// Apenas local: a cópia finalizada nunca segue para a entrega.
		finalized := finalizeAWSReport(data, rnd)
		finalizedFile := filepath.Join(args.Dir, fileBase+"-finalized.csv")
		if err := uc.exportRepo.WriteReportCSV(finalizedFile, aws.Columns, finalized); err != nil {
			return entity.MonthSummary{}, err
		}
	}

	if err := uc.exportRepo.WriteReportCSV(outputFile, aws.Columns, data); err != nil {
		return entity.MonthSummary{}, err
	}
	uc.console.LogInfo("Wrote %d rows to %s", len(data), outputFile)

	delivered := false
	if args.AWSBucketName != "" {
		if err := uc.packageAndDeliverAWS(ctx, args, month, payer, outputFile); err != nil {
			return entity.MonthSummary{}, err
		}
		delivered = true
	}

	return entity.MonthSummary{
		Provider:   "AWS",
		Month:      month.Name,
		Year:       month.Start.Year(),
		OutputFile: outputFile,
		RowCount:   len(data),
		Generators: genNames,
		Delivered:  delivered,
	}, nil
}

// packageAndDeliverAWS builds the manifest, compresses the report, and routes
// three objects: the manifest at the month path and at the assembly path, and
// the compressed report at its full key. Temp files are removed on every exit
// path.
func (uc *ReportUseCase) packageAndDeliverAWS(
	ctx context.Context,
	args *types.CLIArgs,
	month entity.MonthSegment,
	payer string,
	outputFile string,
) error {
	reportKey, manifest := entity.NewAWSManifest(
		args.AWSBucketName, args.AWSReportName, args.AWSPrefixName,
		payer, aws.Columns, month.Start, month.End,
	)
	manifestData, err := manifest.JSON()
	if err != nil {
		return fmt.Errorf("error serializing manifest: %w", err)
	}

	tempManifest, err := uc.exportRepo.WriteTempManifest(manifestData)
	if err != nil {
		return err
	}
	defer os.Remove(tempManifest)

	tempReportZip, err := uc.exportRepo.GzipFile(outputFile)
	if err != nil {
		return err
	}
	defer os.Remove(tempReportZip)

	assemblyPath := path.Dir(reportKey)
	monthPath := path.Dir(assemblyPath)
	monthManifestKey := monthPath + "/" + args.AWSReportName + "-Manifest.json"
	assemblyManifestKey := assemblyPath + "/" + args.AWSReportName + "-Manifest.json"

	// O mesmo manifesto é entregue em duas chaves distintas.
	if err := uc.deliveryRepo.RouteObject(ctx, args.AWSBucketName, monthManifestKey, tempManifest); err != nil {
		return err
	}
	if err := uc.deliveryRepo.RouteObject(ctx, args.AWSBucketName, assemblyManifestKey, tempManifest); err != nil {
		return err
	}
	return uc.deliveryRepo.RouteObject(ctx, args.AWSBucketName, reportKey, tempReportZip)
}

// finalizeAWSReport stamps one shared invoice id across a deep copy of the
// month's rows; the un-finalized set stays untouched for side artifacts.
func finalizeAWSReport(data []generator.Row, rnd *rand.Rand) []generator.Row {
	invoiceID := generator.Digits(rnd, 9)
	finalized := make([]generator.Row, 0, len(data))
	for _, row := range data {
		rowCopy := make(generator.Row, len(row))
		for column, value := range row {
			rowCopy[column] = value
		}
		rowCopy["bill/InvoiceId"] = invoiceID
		finalized = append(finalized, rowCopy)
	}
	return finalized
}

// RunOCPReport executa o pipeline OCP completo para o intervalo de datas.
func (uc *ReportUseCase) RunOCPReport(ctx context.Context, args *types.CLIArgs) error {
	rnd := newRand(args.Seed)

	static, err := uc.loadStaticConfig(args)
	if err != nil {
		return err
	}

	specs, err := resolveOCPRun(static)
	if err != nil {
		return err
	}

	months, err := entity.MonthList(args.StartDate, args.EndDate)
	if err != nil {
		return err
	}

	status := uc.console.Status("Generating OpenShift usage reports...")
	defer status.Stop()

	progress := uc.console.ProgressWithTotal(len(months))
	summaries := make([]entity.MonthSummary, 0, len(months))
	for _, month := range months {
		status.Update(fmt.Sprintf("Generating %s %d...", month.Name, month.Start.Year()))
		summary, err := uc.createOCPMonth(ctx, args, month, specs, rnd)
		if err != nil {
			progress.Stop()
			return err
		}
		summaries = append(summaries, summary)
		progress.Increment()
	}
	progress.Stop()
	status.Stop()

	return uc.exportSummaries(args, summaries, args.OCPClusterID)
}

func (uc *ReportUseCase) createOCPMonth(
	ctx context.Context,
	args *types.CLIArgs,
	month entity.MonthSegment,
	specs []generator.Spec,
	rnd *rand.Rand,
) (entity.MonthSummary, error) {
	var data []generator.Row
	genNames := make([]string, 0, len(specs))

	for _, spec := range specs {
		genStart, genEnd := month.Start, month.End
		if spec.Attributes != nil {
			if !spec.Attributes.StartDate.IsZero() {
				genStart = spec.Attributes.StartDate
			}
			if !spec.Attributes.EndDate.IsZero() {
				genEnd = spec.Attributes.EndDate
			}
		}

		gen, err := ocp.New(spec.Name, genStart, genEnd.AddDate(0, 0, 1), spec.Attributes, rnd)
		if err != nil {
			return entity.MonthSummary{}, err
		}
		rows, err := gen.GenerateData()
		if err != nil {
			return entity.MonthSummary{}, err
		}
		data = append(data, rows...)
		genNames = append(genNames, spec.Name)
	}

	fileBase := fmt.Sprintf("%s-%d-%s", month.Name, month.Start.Year(), args.OCPClusterID)
	outputFile := filepath.Join(args.Dir, fileBase+".csv")

	if err := uc.exportRepo.WriteReportCSV(outputFile, ocp.Columns, data); err != nil {
		return entity.MonthSummary{}, err
	}
	uc.console.LogInfo("Wrote %d rows to %s", len(data), outputFile)

	delivered := false
	if args.InsightsUpload != "" {
		if err := uc.packageAndDeliverOCP(ctx, args, month, outputFile); err != nil {
			return entity.MonthSummary{}, err
		}
		delivered = true
	}

	return entity.MonthSummary{
		Provider:   "OCP",
		Month:      month.Name,
		Year:       month.Start.Year(),
		OutputFile: outputFile,
		RowCount:   len(data),
		Generators: genNames,
		Delivered:  delivered,
	}, nil
}

// packageAndDeliverOCP copies the report and its manifest into a payload
// directory, bundles them into one tar.gz, and routes the bundle. Temp
// artifacts are removed on every exit path, including the payload directory.
func (uc *ReportUseCase) packageAndDeliverOCP(
	ctx context.Context,
	args *types.CLIArgs,
	month entity.MonthSegment,
	outputFile string,
) error {
	assemblyID := uuid.New().String()
	usageFileName := fmt.Sprintf("%s_openshift_usage_report.csv", assemblyID)

	manifest := entity.NewOCPManifest(args.OCPClusterID, assemblyID, month.Start, []string{usageFileName})
	manifestData, err := manifest.JSON()
	if err != nil {
		return fmt.Errorf("error serializing manifest: %w", err)
	}

	tempManifest, err := uc.exportRepo.WriteTempManifest(manifestData)
	if err != nil {
		return err
	}
	defer os.Remove(tempManifest)

	payloadDirName := "payload-" + assemblyID
	tempUsageFile, err := uc.exportRepo.CreateTemporaryCopy(outputFile, usageFileName, payloadDirName)
	if err != nil {
		return err
	}
	defer os.RemoveAll(filepath.Dir(tempUsageFile))

	if _, err := uc.exportRepo.CreateTemporaryCopy(tempManifest, "manifest.json", payloadDirName); err != nil {
		return err
	}

	tempPayloadZip, err := uc.exportRepo.TarGzipDir(filepath.Dir(tempUsageFile))
	if err != nil {
		return err
	}
	defer os.Remove(tempPayloadZip)

	return uc.deliveryRepo.RoutePayload(ctx, args.InsightsUpload, tempPayloadZip)
}

// loadStaticConfig carrega o arquivo de configuração estática, se declarado.
func (uc *ReportUseCase) loadStaticConfig(args *types.CLIArgs) (*types.StaticReportConfig, error) {
	if args.StaticReportFile == "" {
		return nil, nil
	}
	return uc.configRepo.LoadStaticReportFile(args.StaticReportFile)
}

// exportSummaries grava o resumo da execução nos formatos pedidos. Falhas de
// exportação do resumo não derrubam uma execução já concluída.
func (uc *ReportUseCase) exportSummaries(args *types.CLIArgs, summaries []entity.MonthSummary, reportName string) error {
	if len(args.SummaryFormat) == 0 {
		return nil
	}

	base := reportName + "-summary"
	for _, format := range args.SummaryFormat {
		switch format {
		case "csv":
			csvPath, err := uc.exportRepo.ExportSummaryToCSV(summaries, base, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export summary to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported summary to CSV: %s", csvPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportSummaryToPDF(summaries, base, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export summary to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported summary to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown summary format '%s' (expected csv or pdf)", format)
		}
	}
	return nil
}
