// Package ocp implementa o gerador de linhas de uso de pods no esquema de
// relatório OpenShift.
package ocp

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/costsynth/costsynth-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Columns is the fixed OCP usage schema in its canonical declared order.
var Columns = []string{
	"report_period_start", "report_period_end",
	"pod", "namespace", "node", "resource_id",
	"interval_start", "interval_end",
	"pod_usage_cpu_core_seconds", "pod_request_cpu_core_seconds",
	"pod_limit_cpu_core_seconds", "pod_usage_memory_byte_seconds",
	"pod_request_memory_byte_seconds", "pod_limit_memory_byte_seconds",
}

var namespaces = []string{"default", "kube-system", "openshift-monitoring", "koku-metrics", "web-frontend"}

// pod é a identidade sintética fixada na construção; cada hora fatura os
// mesmos pods.
type pod struct {
	name      string
	namespace string
	node      string
	resource  string
	cpuLimit  decimal.Decimal
	memLimit  decimal.Decimal
}

// OCPGenerator produces pod usage rows over the shared hourly timeline.
type OCPGenerator struct {
	startDate  time.Time
	endDate    time.Time
	attributes *generator.Attributes
	hours      []generator.TimeWindow
	rnd        *rand.Rand
	pods       []pod
}

// NewOCPGenerator fixes the pod set at construction time; constrained
// generators keep a single pod so fixtures stay small.
func NewOCPGenerator(start, end time.Time, attrs *generator.Attributes, rnd *rand.Rand) (*OCPGenerator, error) {
	hours, err := generator.Hours(start, end)
	if err != nil {
		return nil, err
	}

	numPods := 2 + rnd.Intn(5)
	if attrs != nil {
		numPods = 1
	}
	pods := make([]pod, 0, numPods)
	for i := 0; i < numPods; i++ {
		pods = append(pods, pod{
			name:      fmt.Sprintf("pod-%s", generator.Digits(rnd, 6)),
			namespace: generator.Choice(rnd, namespaces),
			node:      fmt.Sprintf("node-%s", generator.Digits(rnd, 4)),
			resource:  "i-" + generator.Digits(rnd, 17),
			cpuLimit:  generator.Uniform(rnd, 1, 4, 2),
			memLimit:  generator.Uniform(rnd, 2, 16, 2),
		})
	}

	return &OCPGenerator{
		startDate:  start,
		endDate:    end,
		attributes: attrs,
		hours:      hours,
		rnd:        rnd,
		pods:       pods,
	}, nil
}

// initDataRow creates a row with a placeholder for every schema column and
// the report period boundaries shared by all pods.
func (g *OCPGenerator) initDataRow(start, end time.Time) (generator.Row, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("init data row: %w", types.ErrInvalidTimeRange)
	}

	periodStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	periodEnd := generator.NextMonth(periodStart)
	periodStartStr, err := generator.Timestamp(periodStart)
	if err != nil {
		return nil, err
	}
	periodEndStr, err := generator.Timestamp(periodEnd)
	if err != nil {
		return nil, err
	}

	row := make(generator.Row, len(Columns))
	for _, column := range Columns {
		row[column] = ""
	}
	row["report_period_start"] = periodStartStr
	row["report_period_end"] = periodEndStr
	return row, nil
}

func (g *OCPGenerator) updateRow(row generator.Row, p pod, start, end time.Time) error {
	startStr, err := generator.Timestamp(start)
	if err != nil {
		return err
	}
	endStr, err := generator.Timestamp(end)
	if err != nil {
		return err
	}

	seconds := decimal.NewFromInt(3600)
	cpuRequest := p.cpuLimit.Mul(generator.Uniform(g.rnd, 0.5, 1.0, 2))
	cpuUsage := cpuRequest.Mul(generator.Uniform(g.rnd, 0.2, 1.0, 2))
	memRequest := p.memLimit.Mul(generator.Uniform(g.rnd, 0.5, 1.0, 2))
	memUsage := memRequest.Mul(generator.Uniform(g.rnd, 0.2, 1.0, 2))
	gig := decimal.NewFromInt(1024 * 1024 * 1024)

	row["pod"] = p.name
	row["namespace"] = p.namespace
	row["node"] = p.node
	row["resource_id"] = p.resource
	row["interval_start"] = startStr
	row["interval_end"] = endStr
	row["pod_usage_cpu_core_seconds"] = generator.FormatDecimal(cpuUsage.Mul(seconds))
	row["pod_request_cpu_core_seconds"] = generator.FormatDecimal(cpuRequest.Mul(seconds))
	row["pod_limit_cpu_core_seconds"] = generator.FormatDecimal(p.cpuLimit.Mul(seconds))
	row["pod_usage_memory_byte_seconds"] = generator.FormatDecimal(memUsage.Mul(gig).Mul(seconds))
	row["pod_request_memory_byte_seconds"] = generator.FormatDecimal(memRequest.Mul(gig).Mul(seconds))
	row["pod_limit_memory_byte_seconds"] = generator.FormatDecimal(p.memLimit.Mul(gig).Mul(seconds))
	return nil
}

// GenerateData produces one row per pod per timeline window, in timeline
// order.
func (g *OCPGenerator) GenerateData() ([]generator.Row, error) {
	data := make([]generator.Row, 0, len(g.hours)*len(g.pods))
	for _, hour := range g.hours {
		for _, p := range g.pods {
			row, err := g.initDataRow(hour.Start, hour.End)
			if err != nil {
				return nil, err
			}
			if err := g.updateRow(row, p, hour.Start, hour.End); err != nil {
				return nil, err
			}
			data = append(data, row)
		}
	}
	return data, nil
}

// New builds a registered OCP generator by name.
func New(name string, start, end time.Time, attrs *generator.Attributes, rnd *rand.Rand) (generator.Generator, error) {
	switch name {
	case "OCPGenerator":
		return NewOCPGenerator(start, end, attrs, rnd)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownGenerator, name)
	}
}

// DefaultGeneratorNames is the built-in OCP generator set.
var DefaultGeneratorNames = []string{"OCPGenerator"}

// KnownGenerator reports whether name belongs to the closed OCP generator set.
func KnownGenerator(name string) bool {
	for _, known := range DefaultGeneratorNames {
		if name == known {
			return true
		}
	}
	return false
}
