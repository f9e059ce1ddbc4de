package aws

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/shopspring/decimal"
)

// instanceType: type, vcpu, memory, storage, family, cost, rate.
type instanceType struct {
	inst    string
	vcpu    string
	memory  string
	storage string
	family  string
	cost    string
	rate    string
}

var instanceTypes = []instanceType{
	{"m5.large", "2", "8 GiB", "EBS Only", "General Purpose", "0.096", "0.096"},
	{"c5.xlarge", "4", "8 GiB", "EBS Only", "Compute Optimized", "0.17", "0.17"},
	{"c4.xlarge", "4", "7.5 GiB", "EBS Only", "Compute Optimized", "0.199", "0.199"},
	{"r4.large", "2", "15.25 GiB", "EBS Only", "Memory Optimized", "0.133", "0.133"},
	{"t2.micro", "1", "1 GiB", "EBS Only", "General Purpose", "0.0116", "0.0116"},
}

var archs = []string{"32-bit", "64-bit"}

// instance é uma identidade de máquina fixada na construção.
type instance struct {
	instType   instanceType
	resourceID string
	arch       string
	sku        string
}

// EC2Generator produces compute instance usage rows. The synthetic fleet is
// fixed at construction; each hour bills one instance sampled from it.
type EC2Generator struct {
	base
	instances []instance
}

// NewEC2Generator builds the instance fleet up front. Attribute overrides
// collapse the fleet to a single pinned instance.
func NewEC2Generator(start, end time.Time, payer string, usageAccounts []string, attrs *generator.Attributes, rnd *rand.Rand) (*EC2Generator, error) {
	b, err := newBase(start, end, payer, usageAccounts, attrs, rnd)
	if err != nil {
		return nil, err
	}

	instances := make([]instance, 0, b.numInstances)
	for i := 0; i < b.numInstances; i++ {
		inst := instance{
			instType:   instanceTypes[rnd.Intn(len(instanceTypes))],
			resourceID: "i-" + generator.Digits(rnd, 17),
			arch:       generator.Choice(rnd, archs),
			sku:        generator.UpperString(rnd, 12),
		}
		if attrs != nil {
			if attrs.InstanceType != "" {
				inst.instType = instanceType{
					inst:    attrs.InstanceType,
					vcpu:    "2",
					memory:  "8 GiB",
					storage: "EBS Only",
					family:  "General Purpose",
					cost:    "0.096",
					rate:    "0.096",
				}
			}
			if attrs.ResourceID != "" {
				inst.resourceID = "i-" + attrs.ResourceID
			}
			if attrs.ProductSku != "" {
				inst.sku = attrs.ProductSku
			}
		}
		instances = append(instances, inst)
	}

	return &EC2Generator{base: b, instances: instances}, nil
}

func (g *EC2Generator) updateRow(row generator.Row, start, end time.Time) error {
	if err := g.addCommonUsageInfo(row, start, end); err != nil {
		return err
	}

	inst := g.instances[g.rnd.Intn(len(g.instances))]

	rate, err := decimal.NewFromString(inst.instType.rate)
	if err != nil {
		return fmt.Errorf("parsing instance rate: %w", err)
	}
	cost, err := decimal.NewFromString(inst.instType.cost)
	if err != nil {
		return fmt.Errorf("parsing instance cost: %w", err)
	}
	location, awsRegion, availZone, _ := g.location()
	description := fmt.Sprintf("$%s per On Demand Linux %s Instance Hour", inst.instType.cost, inst.instType.inst)

	row["lineItem/ProductCode"] = "AmazonEC2"
	row["lineItem/UsageType"] = fmt.Sprintf("BoxUsage:%s", inst.instType.inst)
	row["lineItem/Operation"] = "RunInstances"
	row["lineItem/AvailabilityZone"] = availZone
	row["lineItem/ResourceId"] = inst.resourceID
	row["lineItem/UsageAmount"] = "1"
	row["lineItem/CurrencyCode"] = "USD"
	row["lineItem/UnblendedRate"] = generator.FormatDecimal(rate)
	row["lineItem/UnblendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/BlendedRate"] = generator.FormatDecimal(rate)
	row["lineItem/BlendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/LineItemDescription"] = description
	row["product/ProductName"] = "Amazon Elastic Compute Cloud"
	row["product/clockSpeed"] = "2.8 GHz"
	row["product/currentGeneration"] = "Yes"
	row["product/ecu"] = "14"
	row["product/enhancedNetworkingSupported"] = "Yes"
	row["product/instanceFamily"] = inst.instType.family
	row["product/instanceType"] = inst.instType.inst
	row["product/licenseModel"] = "No License required"
	row["product/location"] = location
	row["product/locationType"] = "AWS Region"
	row["product/memory"] = inst.instType.memory
	row["product/networkPerformance"] = "Moderate"
	row["product/operatingSystem"] = "Linux"
	row["product/operation"] = "RunInstances"
	row["product/physicalProcessor"] = "Intel Xeon Family"
	row["product/preInstalledSw"] = "NA"
	row["product/processorArchitecture"] = inst.arch
	row["product/productFamily"] = "Compute Instance"
	row["product/region"] = awsRegion
	row["product/servicecode"] = "AmazonEC2"
	row["product/sku"] = inst.sku
	row["product/storage"] = inst.instType.storage
	row["product/tenancy"] = "Shared"
	row["product/usagetype"] = fmt.Sprintf("BoxUsage:%s", inst.instType.inst)
	row["product/vcpu"] = inst.instType.vcpu
	row["pricing/publicOnDemandCost"] = generator.FormatDecimal(cost)
	row["pricing/publicOnDemandRate"] = generator.FormatDecimal(rate)
	row["pricing/term"] = "OnDemand"
	row["pricing/unit"] = "Hrs"
	row["resourceTags/user:environment"] = g.pickTag("resourceTags/user:environment",
		[]string{"dev", "ci", "qa", "stage", "prod"})
	row["resourceTags/user:version"] = g.pickTag("resourceTags/user:version",
		[]string{"alpha", "beta"})
	return nil
}

// GenerateData produces all compute rows for the timeline.
func (g *EC2Generator) GenerateData() ([]generator.Row, error) {
	return g.generateHourly(g.updateRow)
}
