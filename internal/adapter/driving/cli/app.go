package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/costsynth/costsynth-go/pkg/version"

	"github.com/costsynth/costsynth-go/internal/application/usecase"
	"github.com/costsynth/costsynth-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// Formatos aceitos nas flags --start-date e --end-date.
var flagDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "costsynth",
		Short:   "Synthetic cloud cost and usage report generator",
		Version: formattedVersion,
	}

	// Personaliza a template para incluir mais informações de versão
	rootCmd.SetVersionTemplate(`{{printf "costsynth version: %s\n" .Version}}`)

	// Flags compartilhadas pelos dois relatórios
	rootCmd.PersistentFlags().StringP("start-date", "s", "", "First day covered by the report (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringP("end-date", "e", "", "Last day covered by the report (default: today)")
	rootCmd.PersistentFlags().StringP("static-report-file", "f", "", "Path to a TOML, YAML, or JSON static report configuration file")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for the random source (0 uses a fresh seed per run)")
	rootCmd.PersistentFlags().StringSlice("summary-format", nil, "Export a run summary: csv, pdf (comma-separated)")

	awsCmd := &cobra.Command{
		Use:   "aws",
		Short: "Generate an AWS cost and usage report",
		RunE:  app.runAWSCommand,
	}
	awsCmd.Flags().StringP("report-name", "n", "cur-report", "Base name for the report files")
	awsCmd.Flags().StringP("bucket-name", "b", "", "Delivery destination: an S3 bucket name or a local directory path")
	awsCmd.Flags().String("prefix", "", "Report prefix inside the delivery destination")
	awsCmd.Flags().String("finalize", "", "Stamp an invoice id on the report: overwrite or copy")

	ocpCmd := &cobra.Command{
		Use:   "ocp",
		Short: "Generate an OpenShift usage report",
		RunE:  app.runOCPCommand,
	}
	ocpCmd.Flags().String("cluster-id", "", "Cluster identifier stamped on the report (required)")
	ocpCmd.Flags().String("insights-upload", "", "Delivery destination: an ingress upload URL or a local directory path")
	_ = ocpCmd.MarkFlagRequired("cluster-id")

	rootCmd.AddCommand(awsCmd, ocpCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseSharedArgs parses the persistent flags common to every report kind.
func (app *CLIApp) parseSharedArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	startDate, _ := cmd.Flags().GetString("start-date")
	endDate, _ := cmd.Flags().GetString("end-date")
	staticReportFile, _ := cmd.Flags().GetString("static-report-file")
	dir, _ := cmd.Flags().GetString("dir")
	seed, _ := cmd.Flags().GetInt64("seed")
	summaryFormat, _ := cmd.Flags().GetStringSlice("summary-format")

	if startDate == "" {
		return nil, fmt.Errorf("--start-date is required")
	}
	start, err := parseFlagDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid --start-date: %w", err)
	}

	end := time.Now()
	if endDate != "" {
		end, err = parseFlagDate(endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --end-date: %w", err)
		}
	}

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		// Convert to absolute path
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		StartDate:        start,
		EndDate:          end,
		StaticReportFile: staticReportFile,
		Dir:              dir,
		Seed:             seed,
		SummaryFormat:    summaryFormat,
	}

	return args, nil
}

// runAWSCommand é o ponto de entrada do subcomando aws.
func (app *CLIApp) runAWSCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseSharedArgs(cmd)
	if err != nil {
		return err
	}

	cliArgs.AWSReportName, _ = cmd.Flags().GetString("report-name")
	cliArgs.AWSBucketName, _ = cmd.Flags().GetString("bucket-name")
	cliArgs.AWSPrefixName, _ = cmd.Flags().GetString("prefix")
	cliArgs.AWSFinalizeMode, _ = cmd.Flags().GetString("finalize")

	switch cliArgs.AWSFinalizeMode {
	case "", "overwrite", "copy":
	default:
		return fmt.Errorf("invalid --finalize %q (expected overwrite or copy)", cliArgs.AWSFinalizeMode)
	}

	ctx := context.Background()
	return app.reportUseCase.RunAWSReport(ctx, cliArgs)
}

// runOCPCommand é o ponto de entrada do subcomando ocp.
func (app *CLIApp) runOCPCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseSharedArgs(cmd)
	if err != nil {
		return err
	}

	cliArgs.OCPClusterID, _ = cmd.Flags().GetString("cluster-id")
	cliArgs.InsightsUpload, _ = cmd.Flags().GetString("insights-upload")

	ctx := context.Background()
	return app.reportUseCase.RunOCPReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

func parseFlagDate(value string) (time.Time, error) {
	for _, format := range flagDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
