package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsynth/costsynth-go/internal/adapter/driven/export"
	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/costsynth/costsynth-go/internal/domain/generator/aws"
	"github.com/costsynth/costsynth-go/internal/shared/types"
)

// --- dublês de teste ---

type testConsole struct{}

func (testConsole) Print(a ...interface{})                  {}
func (testConsole) Printf(format string, a ...interface{})  {}
func (testConsole) Println(a ...interface{})                {}
func (testConsole) LogInfo(format string, a ...interface{}) {}
func (testConsole) LogWarning(format string, a ...interface{}) {
}
func (testConsole) LogError(format string, a ...interface{})   {}
func (testConsole) LogSuccess(format string, a ...interface{}) {}
func (testConsole) Status(message string) types.StatusHandle   { return noopStatus{} }
func (testConsole) ProgressWithTotal(total int) types.ProgressHandle {
	return noopProgress{}
}

type noopStatus struct{}

func (noopStatus) Update(message string) {}
func (noopStatus) Stop()                 {}

type noopProgress struct{}

func (noopProgress) Increment() {}
func (noopProgress) Stop()      {}

type recordingDelivery struct {
	objects  map[string]string
	payloads []string
}

func newRecordingDelivery() *recordingDelivery {
	return &recordingDelivery{objects: map[string]string{}}
}

func (d *recordingDelivery) RouteObject(_ context.Context, destination, objectKey, localPath string) error {
	d.objects[objectKey] = localPath
	return nil
}

func (d *recordingDelivery) RoutePayload(_ context.Context, destination, localPath string) error {
	d.payloads = append(d.payloads, localPath)
	return nil
}

type failingDelivery struct{}

func (failingDelivery) RouteObject(context.Context, string, string, string) error {
	return errors.New("destination unavailable")
}

func (failingDelivery) RoutePayload(context.Context, string, string) error {
	return errors.New("destination unavailable")
}

type staticConfigRepo struct {
	config *types.StaticReportConfig
}

func (r staticConfigRepo) LoadStaticReportFile(string) (*types.StaticReportConfig, error) {
	return r.config, nil
}

// --- finalização ---

func TestFinalizeAWSReport(t *testing.T) {
	rows := []generator.Row{
		{"bill/InvoiceId": "", "lineItem/UsageAmount": "1.0"},
		{"bill/InvoiceId": "", "lineItem/UsageAmount": "2.0"},
	}
	rnd := rand.New(rand.NewSource(13))

	finalized := finalizeAWSReport(rows, rnd)

	t.Run("one nine digit invoice id shared by every row", func(t *testing.T) {
		require.Len(t, finalized, 2)
		assert.Len(t, finalized[0]["bill/InvoiceId"], 9)
		assert.Equal(t, finalized[0]["bill/InvoiceId"], finalized[1]["bill/InvoiceId"])
	})

	t.Run("other fields are untouched", func(t *testing.T) {
		assert.Equal(t, "1.0", finalized[0]["lineItem/UsageAmount"])
		assert.Equal(t, "2.0", finalized[1]["lineItem/UsageAmount"])
	})

	t.Run("input rows are not mutated", func(t *testing.T) {
		assert.Equal(t, "", rows[0]["bill/InvoiceId"])
		assert.Equal(t, "", rows[1]["bill/InvoiceId"])
	})
}

// --- resolução da configuração estática ---

func TestBuildSpecs(t *testing.T) {
	t.Run("valid entries convert with their attributes", func(t *testing.T) {
		amount := 100.0
		entries := []types.GeneratorSpec{
			{Generator: "S3Generator", Attributes: &types.GeneratorAttributes{
				StartDate: "2024-06-01",
				Amount:    &amount,
			}},
			{Generator: "EC2Generator"},
		}

		specs, err := buildSpecs(entries, aws.KnownGenerator)

		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, "S3Generator", specs[0].Name)
		require.NotNil(t, specs[0].Attributes)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), specs[0].Attributes.StartDate)
		assert.Equal(t, "100", specs[0].Attributes.Amount.String())
		assert.Nil(t, specs[1].Attributes)
	})

	t.Run("all problems are reported together", func(t *testing.T) {
		negative := -5.0
		entries := []types.GeneratorSpec{
			{Generator: "NopeGenerator"},
			{Generator: "S3Generator", Attributes: &types.GeneratorAttributes{
				StartDate: "junk",
				Rate:      &negative,
			}},
		}

		_, err := buildSpecs(entries, aws.KnownGenerator)

		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrInvalidStaticConfig))
		assert.Contains(t, err.Error(), "NopeGenerator")
		assert.Contains(t, err.Error(), "start_date")
		assert.Contains(t, err.Error(), "rate")
	})

	t.Run("unknown generator error wraps the sentinel", func(t *testing.T) {
		entries := []types.GeneratorSpec{{Generator: "RDSGenerator"}}

		_, err := buildSpecs(entries, aws.KnownGenerator)

		assert.True(t, errors.Is(err, types.ErrUnknownGenerator))
	})
}

func TestResolveAccounts(t *testing.T) {
	rnd := rand.New(rand.NewSource(21))

	t.Run("configured accounts win", func(t *testing.T) {
		static := &types.StaticReportConfig{Accounts: &types.AccountsConfig{
			Payer: "1111111111111",
			Usage: []string{"1111111111111", "2222222222222"},
		}}

		payer, usage := resolveAccounts(static, rnd)

		assert.Equal(t, "1111111111111", payer)
		assert.Equal(t, []string{"1111111111111", "2222222222222"}, usage)
	})

	t.Run("nil config samples a payer plus four usage accounts", func(t *testing.T) {
		payer, usage := resolveAccounts(nil, rnd)

		assert.Len(t, payer, 13)
		require.Len(t, usage, 5)
		assert.Equal(t, payer, usage[0])
	})
}

func TestParseConfigDate(t *testing.T) {
	t.Run("accepts plain dates", func(t *testing.T) {
		parsed, err := parseConfigDate("2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("accepts datetime with space", func(t *testing.T) {
		parsed, err := parseConfigDate("2024-06-01 12:30:00")
		require.NoError(t, err)
		assert.Equal(t, 12, parsed.Hour())
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := parseConfigDate("June first")
		assert.Error(t, err)
	})
}

// --- execução completa de um mês ---

func TestRunAWSReport(t *testing.T) {
	dir := t.TempDir()
	delivery := newRecordingDelivery()

	amount := 100.0
	rate := 0.05
	static := &types.StaticReportConfig{
		Accounts: &types.AccountsConfig{Payer: "9780201379624", Usage: []string{"9780201379624"}},
		Generators: []types.GeneratorSpec{
			{Generator: "S3Generator", Attributes: &types.GeneratorAttributes{
				Amount: &amount,
				Rate:   &rate,
			}},
		},
	}

	uc := NewReportUseCase(
		staticConfigRepo{config: static},
		export.NewExportRepository(),
		delivery,
		testConsole{},
	)

	args := &types.CLIArgs{
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		StaticReportFile: "static.yml",
		Dir:              dir,
		Seed:             42,
		AWSReportName:    "cur-report",
		AWSBucketName:    "cost-bucket",
		AWSFinalizeMode:  "overwrite",
	}

	require.NoError(t, uc.RunAWSReport(context.Background(), args))

	outputFile := filepath.Join(dir, "June-2024-cur-report.csv")

	t.Run("month file lands under the naming convention", func(t *testing.T) {
		_, err := os.Stat(outputFile)
		require.NoError(t, err)
	})

	t.Run("header equals the full schema order", func(t *testing.T) {
		f, err := os.Open(outputFile)
		require.NoError(t, err)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.NotEmpty(t, records)
		assert.Equal(t, aws.Columns, records[0])
	})

	t.Run("finalize overwrite stamps the invoice id in place", func(t *testing.T) {
		f, err := os.Open(outputFile)
		require.NoError(t, err)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Greater(t, len(records), 1)

		invoiceCol := -1
		for i, column := range records[0] {
			if column == "bill/InvoiceId" {
				invoiceCol = i
			}
		}
		require.GreaterOrEqual(t, invoiceCol, 0)
		assert.Len(t, records[1][invoiceCol], 9)
	})

	t.Run("delivery receives both manifests and the compressed report", func(t *testing.T) {
		require.Len(t, delivery.objects, 3)

		var manifests, reports int
		for key := range delivery.objects {
			if filepath.Ext(key) == ".json" {
				manifests++
			}
			if filepath.Ext(key) == ".gz" {
				reports++
			}
		}
		assert.Equal(t, 2, manifests)
		assert.Equal(t, 1, reports)
	})
}

func TestRunOCPReport(t *testing.T) {
	dir := t.TempDir()
	delivery := newRecordingDelivery()

	uc := NewReportUseCase(
		staticConfigRepo{},
		export.NewExportRepository(),
		delivery,
		testConsole{},
	)

	args := &types.CLIArgs{
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Dir:            dir,
		Seed:           7,
		OCPClusterID:   "test-cluster",
		InsightsUpload: "https://ingress.example.com/api/ingress/v1/upload",
	}

	require.NoError(t, uc.RunOCPReport(context.Background(), args))

	t.Run("month file lands under the cluster naming convention", func(t *testing.T) {
		_, err := os.Stat(filepath.Join(dir, "June-2024-test-cluster.csv"))
		require.NoError(t, err)
	})

	t.Run("one payload archive is routed per month", func(t *testing.T) {
		assert.Len(t, delivery.payloads, 1)
	})
}

func TestRunAWSReportMultiMonth(t *testing.T) {
	dir := t.TempDir()

	uc := NewReportUseCase(
		staticConfigRepo{},
		export.NewExportRepository(),
		newRecordingDelivery(),
		testConsole{},
	)

	args := &types.CLIArgs{
		StartDate:     time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Dir:           dir,
		Seed:          3,
		AWSReportName: "cur-report",
	}

	require.NoError(t, uc.RunAWSReport(context.Background(), args))

	mayFile := filepath.Join(dir, "May-2024-cur-report.csv")
	juneFile := filepath.Join(dir, "June-2024-cur-report.csv")

	t.Run("one output file per month segment", func(t *testing.T) {
		_, err := os.Stat(mayFile)
		require.NoError(t, err)
		_, err = os.Stat(juneFile)
		require.NoError(t, err)
	})

	t.Run("account identifiers are shared across every month", func(t *testing.T) {
		mayPayers := readColumnSet(t, mayFile, "bill/PayerAccountId")
		junePayers := readColumnSet(t, juneFile, "bill/PayerAccountId")
		require.Len(t, mayPayers, 1)
		assert.Equal(t, mayPayers, junePayers)

		mayUsage := readColumnSet(t, mayFile, "lineItem/UsageAccountId")
		juneUsage := readColumnSet(t, juneFile, "lineItem/UsageAccountId")
		union := map[string]bool{}
		for account := range mayUsage {
			union[account] = true
		}
		for account := range juneUsage {
			union[account] = true
		}
		// One payer plus four extra usage accounts, generated once per run.
		assert.LessOrEqual(t, len(union), 5)
	})
}

// readColumnSet devolve os valores distintos de uma coluna do relatório.
func readColumnSet(t *testing.T, path, column string) map[string]bool {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	col := -1
	for i, name := range records[0] {
		if name == column {
			col = i
		}
	}
	require.GreaterOrEqual(t, col, 0, "column %s missing", column)

	values := map[string]bool{}
	for _, record := range records[1:] {
		values[record[col]] = true
	}
	return values
}

func TestTempArtifactCleanup(t *testing.T) {
	amount := 100.0
	rate := 0.05
	static := &types.StaticReportConfig{
		Accounts: &types.AccountsConfig{Payer: "9780201379624", Usage: []string{"9780201379624"}},
		Generators: []types.GeneratorSpec{
			{Generator: "S3Generator", Attributes: &types.GeneratorAttributes{
				Amount: &amount,
				Rate:   &rate,
			}},
		},
	}

	awsArgs := func(dir string) *types.CLIArgs {
		return &types.CLIArgs{
			StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			StaticReportFile: "static.yml",
			Dir:              dir,
			Seed:             42,
			AWSReportName:    "cur-report",
			AWSBucketName:    "cost-bucket",
		}
	}
	ocpArgs := func(dir string) *types.CLIArgs {
		return &types.CLIArgs{
			StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Dir:            dir,
			Seed:           42,
			OCPClusterID:   "test-cluster",
			InsightsUpload: "https://ingress.example.com/api/ingress/v1/upload",
		}
	}

	t.Run("aws delivery leaves no temp artifacts", func(t *testing.T) {
		dir := t.TempDir()
		tempRoot := t.TempDir()
		t.Setenv("TMPDIR", tempRoot)

		uc := NewReportUseCase(staticConfigRepo{config: static}, export.NewExportRepository(), newRecordingDelivery(), testConsole{})
		require.NoError(t, uc.RunAWSReport(context.Background(), awsArgs(dir)))

		entries, err := os.ReadDir(tempRoot)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("aws delivery failure still cleans up", func(t *testing.T) {
		dir := t.TempDir()
		tempRoot := t.TempDir()
		t.Setenv("TMPDIR", tempRoot)

		uc := NewReportUseCase(staticConfigRepo{config: static}, export.NewExportRepository(), failingDelivery{}, testConsole{})
		require.Error(t, uc.RunAWSReport(context.Background(), awsArgs(dir)))

		entries, err := os.ReadDir(tempRoot)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("ocp delivery leaves no temp artifacts", func(t *testing.T) {
		dir := t.TempDir()
		tempRoot := t.TempDir()
		t.Setenv("TMPDIR", tempRoot)

		uc := NewReportUseCase(staticConfigRepo{config: static}, export.NewExportRepository(), newRecordingDelivery(), testConsole{})
		require.NoError(t, uc.RunOCPReport(context.Background(), ocpArgs(dir)))

		entries, err := os.ReadDir(tempRoot)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("ocp delivery failure still cleans up", func(t *testing.T) {
		dir := t.TempDir()
		tempRoot := t.TempDir()
		t.Setenv("TMPDIR", tempRoot)

		uc := NewReportUseCase(staticConfigRepo{config: static}, export.NewExportRepository(), failingDelivery{}, testConsole{})
		require.Error(t, uc.RunOCPReport(context.Background(), ocpArgs(dir)))

		entries, err := os.ReadDir(tempRoot)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRunAWSReportInvalidConfig(t *testing.T) {
	static := &types.StaticReportConfig{
		Generators: []types.GeneratorSpec{{Generator: "BogusGenerator"}},
	}

	uc := NewReportUseCase(
		staticConfigRepo{config: static},
		export.NewExportRepository(),
		newRecordingDelivery(),
		testConsole{},
	)

	args := &types.CLIArgs{
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		StaticReportFile: "static.yml",
		Dir:              t.TempDir(),
		AWSReportName:    "cur-report",
	}

	err := uc.RunAWSReport(context.Background(), args)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidStaticConfig))
}
