package usecase

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/costsynth/costsynth-go/internal/domain/generator/aws"
	"github.com/costsynth/costsynth-go/internal/domain/generator/ocp"
	"github.com/costsynth/costsynth-go/internal/shared/types"
)

// Formatos de data aceitos nos atributos da configuração estática.
var configDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// resolveAWSRun turns the optional static configuration into the concrete run
// inputs: the generator specs and the account set. Every problem in the file
// is reported at once rather than one per invocation.
func resolveAWSRun(
	static *types.StaticReportConfig,
	rnd *rand.Rand,
) ([]generator.Spec, string, []string, error) {
	payer, usageAccounts := resolveAccounts(static, rnd)

	if static == nil || len(static.Generators) == 0 {
		specs := make([]generator.Spec, 0, len(aws.DefaultGeneratorNames))
		for _, name := range aws.DefaultGeneratorNames {
			specs = append(specs, generator.Spec{Name: name})
		}
		return specs, payer, usageAccounts, nil
	}

	specs, err := buildSpecs(static.Generators, aws.KnownGenerator)
	if err != nil {
		return nil, "", nil, err
	}
	return specs, payer, usageAccounts, nil
}

// resolveOCPRun resolve os specs do pipeline OpenShift.
func resolveOCPRun(static *types.StaticReportConfig) ([]generator.Spec, error) {
	if static == nil || len(static.Generators) == 0 {
		specs := make([]generator.Spec, 0, len(ocp.DefaultGeneratorNames))
		for _, name := range ocp.DefaultGeneratorNames {
			specs = append(specs, generator.Spec{Name: name})
		}
		return specs, nil
	}
	return buildSpecs(static.Generators, ocp.KnownGenerator)
}

// resolveAccounts takes the configured accounts when present and samples a
// fresh payer plus usage set otherwise. One set serves the entire run.
func resolveAccounts(static *types.StaticReportConfig, rnd *rand.Rand) (string, []string) {
	if static != nil && static.Accounts != nil && static.Accounts.Payer != "" {
		usage := static.Accounts.Usage
		if len(usage) == 0 {
			usage = []string{static.Accounts.Payer}
		}
		return static.Accounts.Payer, usage
	}
	return generator.GenerateAccounts(rnd)
}

// buildSpecs valida e converte cada entrada da configuração; todos os erros
// são acumulados e devolvidos juntos.
func buildSpecs(entries []types.GeneratorSpec, known func(string) bool) ([]generator.Spec, error) {
	specs := make([]generator.Spec, 0, len(entries))
	var errs []error

	for i, entry := range entries {
		if !known(entry.Generator) {
			errs = append(errs, fmt.Errorf("generators[%d]: unknown generator %q: %w",
				i, entry.Generator, types.ErrUnknownGenerator))
			continue
		}

		attrs, err := convertAttributes(entry.Attributes)
		if err != nil {
			errs = append(errs, fmt.Errorf("generators[%d] (%s): %w", i, entry.Generator, err))
			continue
		}
		specs = append(specs, generator.Spec{Name: entry.Generator, Attributes: attrs})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidStaticConfig, errors.Join(errs...))
	}
	return specs, nil
}

// convertAttributes parses the raw file values into domain attributes.
func convertAttributes(raw *types.GeneratorAttributes) (*generator.Attributes, error) {
	if raw == nil {
		return nil, nil
	}

	attrs := &generator.Attributes{
		ProductSku:   raw.ProductSku,
		ResourceID:   raw.ResourceID,
		InstanceType: raw.InstanceType,
		Tags:         raw.Tags,
	}
	var errs []error

	if raw.StartDate != "" {
		start, err := parseConfigDate(raw.StartDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("start_date: %w", err))
		} else {
			attrs.StartDate = start
		}
	}
	if raw.EndDate != "" {
		end, err := parseConfigDate(raw.EndDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("end_date: %w", err))
		} else {
			attrs.EndDate = end
		}
	}
	if raw.Amount != nil {
		if *raw.Amount < 0 {
			errs = append(errs, fmt.Errorf("amount: must not be negative, got %v", *raw.Amount))
		} else {
			amount := decimal.NewFromFloat(*raw.Amount)
			attrs.Amount = &amount
		}
	}
	if raw.Rate != nil {
		if *raw.Rate < 0 {
			errs = append(errs, fmt.Errorf("rate: must not be negative, got %v", *raw.Rate))
		} else {
			rate := decimal.NewFromFloat(*raw.Rate)
			attrs.Rate = &rate
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return attrs, nil
}

// parseConfigDate tenta cada formato aceito em ordem.
func parseConfigDate(value string) (time.Time, error) {
	for _, format := range configDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
