// Package aws implementa os geradores de linhas no esquema AWS Cost & Usage
// Report. Todos os geradores compartilham o mesmo conjunto fixo de colunas e
// a mesma mecânica de template por janela de uma hora.
package aws

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/costsynth/costsynth-go/internal/shared/types"
)

var identityCols = []string{"identity/LineItemId", "identity/TimeInterval"}

var billCols = []string{
	"bill/InvoiceId", "bill/BillingEntity", "bill/BillType",
	"bill/PayerAccountId", "bill/BillingPeriodStartDate",
	"bill/BillingPeriodEndDate",
}

var lineItemCols = []string{
	"lineItem/UsageAccountId",
	"lineItem/LineItemType", "lineItem/UsageStartDate",
	"lineItem/UsageEndDate", "lineItem/ProductCode",
	"lineItem/UsageType", "lineItem/Operation",
	"lineItem/AvailabilityZone", "lineItem/ResourceId",
	"lineItem/UsageAmount", "lineItem/NormalizationFactor",
	"lineItem/NormalizedUsageAmount", "lineItem/CurrencyCode",
	"lineItem/UnblendedRate", "lineItem/UnblendedCost",
	"lineItem/BlendedRate", "lineItem/BlendedCost",
	"lineItem/LineItemDescription", "lineItem/TaxType",
}

var productCols = []string{
	"product/ProductName", "product/accountAssistance",
	"product/architecturalReview", "product/architectureSupport",
	"product/availability", "product/bestPractices",
	"product/caseSeverityresponseTimes", "product/clockSpeed",
	"product/comments", "product/contentType",
	"product/currentGeneration",
	"product/customerServiceAndCommunities",
	"product/databaseEngine", "product/dedicatedEbsThroughput",
	"product/deploymentOption", "product/description",
	"product/directorySize", "product/directoryType",
	"product/directoryTypeDescription", "product/durability",
	"product/ebsOptimized", "product/ecu", "product/endpointType",
	"product/engineCode", "product/enhancedNetworkingSupported",
	"product/feeCode", "product/feeDescription",
	"product/fromLocation", "product/fromLocationType",
	"product/group", "product/groupDescription",
	"product/includedServices", "product/instanceFamily",
	"product/instanceType", "product/isshadow",
	"product/iswebsocket", "product/launchSupport",
	"product/licenseModel", "product/location",
	"product/locationType", "product/maxIopsBurstPerformance",
	"product/maxIopsvolume", "product/maxThroughputvolume",
	"product/maxVolumeSize", "product/memory", "product/memoryGib",
	"product/messageDeliveryFrequency",
	"product/messageDeliveryOrder", "product/minVolumeSize",
	"product/networkPerformance", "product/operatingSystem",
	"product/operation", "product/operationsSupport",
	"product/origin", "product/physicalProcessor",
	"product/preInstalledSw", "product/proactiveGuidance",
	"product/processorArchitecture", "product/processorFeatures",
	"product/productFamily", "product/programmaticCaseManagement",
	"product/protocol", "product/provisioned", "product/queueType",
	"product/recipient", "product/region", "product/requestDescription",
	"product/requestType", "product/resourceEndpoint",
	"product/routingTarget", "product/routingType",
	"product/servicecode", "product/sku", "product/softwareType",
	"product/storage", "product/storageClass",
	"product/storageMedia", "product/storageType",
	"product/technicalSupport", "product/tenancy",
	"product/thirdpartySoftwareSupport", "product/toLocation",
	"product/toLocationType", "product/training",
	"product/transferType", "product/usagetype", "product/vcpu",
	"product/version", "product/virtualInterfaceType",
	"product/volumeType", "product/whoCanOpenCases",
}

var pricingCols = []string{
	"pricing/LeaseContractLength", "pricing/OfferingClass",
	"pricing/PurchaseOption", "pricing/publicOnDemandCost",
	"pricing/publicOnDemandRate", "pricing/term", "pricing/unit",
}

var reserveCols = []string{
	"reservation/AvailabilityZone",
	"reservation/NormalizedUnitsPerReservation",
	"reservation/NumberOfReservations",
	"reservation/ReservationARN",
	"reservation/TotalReservedNormalizedUnits",
	"reservation/TotalReservedUnits",
	"reservation/UnitsPerReservation",
}

var resourceTagCols = []string{
	"resourceTags/user:environment",
	"resourceTags/user:version",
}

// Columns is the full fixed CUR schema in its canonical declared order. The
// CSV header for every AWS report equals this list.
var Columns = concatColumns(
	identityCols, billCols, lineItemCols, productCols,
	pricingCols, reserveCols, resourceTagCols,
)

func concatColumns(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// region tuples: location name, region, availability zone, storage region.
var regions = [][4]string{
	{"US East (N. Virginia)", "us-east-1", "us-east-1a", "USE1-EBS"},
	{"US East (N. Virginia)", "us-east-1", "us-east-1b", "USE1-EBS"},
	{"US West (N. California)", "us-west-1", "us-west-1a", "USW1-EBS"},
	{"US West (N. California)", "us-west-1", "us-west-1b", "USW1-EBS"},
	{"US West (Oregon)", "us-west-2", "us-west-2a", "USW2-EBS"},
	{"US West (Oregon)", "us-west-2", "us-west-2b", "USW2-EBS"},
}

// base carries the state shared by every AWS resource generator: the hourly
// timeline, the run-wide account identifiers, attribute overrides, and the
// injected random source.
type base struct {
	startDate     time.Time
	endDate       time.Time
	payerAccount  string
	usageAccounts []string
	attributes    *generator.Attributes
	hours         []generator.TimeWindow
	rnd           *rand.Rand
	numInstances  int
}

func newBase(start, end time.Time, payer string, usageAccounts []string, attrs *generator.Attributes, rnd *rand.Rand) (base, error) {
	hours, err := generator.Hours(start, end)
	if err != nil {
		return base{}, err
	}
	numInstances := 1
	if attrs == nil {
		numInstances = 2 + rnd.Intn(59)
	}
	return base{
		startDate:     start,
		endDate:       end,
		payerAccount:  payer,
		usageAccounts: usageAccounts,
		attributes:    attrs,
		hours:         hours,
		rnd:           rnd,
		numInstances:  numInstances,
	}, nil
}

// initDataRow creates a row with a placeholder for every schema column and
// fills the identity and bill fields shared by all resource types.
func (b *base) initDataRow(start, end time.Time) (generator.Row, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("init data row: %w", types.ErrInvalidTimeRange)
	}

	billBegin := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	billEnd := generator.NextMonth(billBegin)

	interval, err := generator.TimeInterval(start, end)
	if err != nil {
		return nil, err
	}
	billBeginStr, err := generator.Timestamp(billBegin)
	if err != nil {
		return nil, err
	}
	billEndStr, err := generator.Timestamp(billEnd)
	if err != nil {
		return nil, err
	}

	row := make(generator.Row, len(Columns))
	for _, column := range Columns {
		row[column] = ""
	}
	row["identity/LineItemId"] = generator.LineItemID()
	row["identity/TimeInterval"] = interval
	row["bill/BillingEntity"] = "AWS"
	row["bill/BillType"] = "Anniversary"
	row["bill/PayerAccountId"] = b.payerAccount
	row["bill/BillingPeriodStartDate"] = billBeginStr
	row["bill/BillingPeriodEndDate"] = billEndStr
	return row, nil
}

// addCommonUsageInfo stamps the per-row context fields every resource type
// shares: the usage account and the usage window.
func (b *base) addCommonUsageInfo(row generator.Row, start, end time.Time) error {
	startStr, err := generator.Timestamp(start)
	if err != nil {
		return err
	}
	endStr, err := generator.Timestamp(end)
	if err != nil {
		return err
	}
	row["lineItem/UsageAccountId"] = generator.Choice(b.rnd, b.usageAccounts)
	row["lineItem/LineItemType"] = "Usage"
	row["lineItem/UsageStartDate"] = startStr
	row["lineItem/UsageEndDate"] = endStr
	return nil
}

// location picks the instance location. Constrained generators stay pinned to
// one region so fixtures remain stable.
func (b *base) location() (string, string, string, string) {
	if b.attributes != nil {
		return "US East (N. Virginia)", "us-east-1", "us-east-1a", "USE1-EBS"
	}
	r := regions[b.rnd.Intn(len(regions))]
	return r[0], r[1], r[2], r[3]
}

// pickTag applies the tag selection policy: explicit tags win; a generator
// that was given any attributes but no tags omits the tag entirely; a fully
// random generator samples from the option set. This three-way policy is a
// conformance rule, not an accident.
func (b *base) pickTag(tagKey string, options []string) string {
	if b.attributes != nil && len(b.attributes.Tags) > 0 {
		return b.attributes.Tags[tagKey]
	}
	if b.attributes != nil {
		return ""
	}
	return generator.Choice(b.rnd, options)
}

// generateHourly produces one row per timeline window, in timeline order,
// delegating the resource-specific fill to update.
func (b *base) generateHourly(update func(row generator.Row, start, end time.Time) error) ([]generator.Row, error) {
	data := make([]generator.Row, 0, len(b.hours))
	for _, hour := range b.hours {
		row, err := b.initDataRow(hour.Start, hour.End)
		if err != nil {
			return nil, err
		}
		if err := update(row, hour.Start, hour.End); err != nil {
			return nil, err
		}
		data = append(data, row)
	}
	return data, nil
}

// New builds a registered AWS resource generator by name. The generator set
// is closed; unknown names fail before any generation work begins.
func New(name string, start, end time.Time, payer string, usageAccounts []string, attrs *generator.Attributes, rnd *rand.Rand) (generator.Generator, error) {
	switch name {
	case "S3Generator":
		return NewS3Generator(start, end, payer, usageAccounts, attrs, rnd)
	case "EC2Generator":
		return NewEC2Generator(start, end, payer, usageAccounts, attrs, rnd)
	case "EBSGenerator":
		return NewEBSGenerator(start, end, payer, usageAccounts, attrs, rnd)
	case "DataTransferGenerator":
		return NewDataTransferGenerator(start, end, payer, usageAccounts, attrs, rnd)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownGenerator, name)
	}
}

// DefaultGeneratorNames is the built-in generator set used when no static
// configuration declares one.
var DefaultGeneratorNames = []string{
	"DataTransferGenerator",
	"EBSGenerator",
	"EC2Generator",
	"S3Generator",
}

// KnownGenerator reports whether name belongs to the closed AWS generator set.
func KnownGenerator(name string) bool {
	for _, known := range DefaultGeneratorNames {
		if name == known {
			return true
		}
	}
	return false
}
