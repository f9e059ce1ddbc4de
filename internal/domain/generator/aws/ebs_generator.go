package aws

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/shopspring/decimal"
)

// EBSGenerator produces block-storage volume usage rows.
type EBSGenerator struct {
	base
	amount     decimal.Decimal
	rate       decimal.Decimal
	resourceID string
}

// NewEBSGenerator samples the stored volume and rate once per instance.
func NewEBSGenerator(start, end time.Time, payer string, usageAccounts []string, attrs *generator.Attributes, rnd *rand.Rand) (*EBSGenerator, error) {
	b, err := newBase(start, end, payer, usageAccounts, attrs, rnd)
	if err != nil {
		return nil, err
	}

	g := &EBSGenerator{
		base:       b,
		amount:     generator.Uniform(rnd, 0.2, 300.99, 5),
		rate:       generator.Uniform(rnd, 0.02, 0.16, 3),
		resourceID: "vol-" + generator.Digits(rnd, 17),
	}
	if attrs != nil {
		if attrs.Amount != nil {
			g.amount = *attrs.Amount
		}
		if attrs.Rate != nil {
			g.rate = *attrs.Rate
		}
		if attrs.ResourceID != "" {
			g.resourceID = "vol-" + attrs.ResourceID
		}
	}
	return g, nil
}

func (g *EBSGenerator) updateRow(row generator.Row, start, end time.Time) error {
	if err := g.addCommonUsageInfo(row, start, end); err != nil {
		return err
	}

	cost := g.amount.Mul(g.rate)
	location, awsRegion, availZone, storageRegion := g.location()
	description := fmt.Sprintf("$%s per GB-Month of General Purpose SSD (gp2) provisioned storage - %s",
		generator.FormatDecimal(g.rate), location)

	row["lineItem/ProductCode"] = "AmazonEC2"
	row["lineItem/UsageType"] = fmt.Sprintf("%s:VolumeUsage.gp2", storageRegion)
	row["lineItem/Operation"] = "CreateVolume-Gp2"
	row["lineItem/AvailabilityZone"] = availZone
	row["lineItem/ResourceId"] = g.resourceID
	row["lineItem/UsageAmount"] = generator.FormatDecimal(g.amount)
	row["lineItem/CurrencyCode"] = "USD"
	row["lineItem/UnblendedRate"] = generator.FormatDecimal(g.rate)
	row["lineItem/UnblendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/BlendedRate"] = generator.FormatDecimal(g.rate)
	row["lineItem/BlendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/LineItemDescription"] = description
	row["product/ProductName"] = "Amazon Elastic Compute Cloud"
	row["product/location"] = location
	row["product/locationType"] = "AWS Region"
	row["product/maxIopsBurstPerformance"] = "3000 for volumes <= 1 TiB"
	row["product/maxIopsvolume"] = "16000"
	row["product/maxThroughputvolume"] = "250 MiB/s"
	row["product/maxVolumeSize"] = "16 TiB"
	row["product/productFamily"] = "Storage"
	row["product/region"] = awsRegion
	row["product/servicecode"] = "AmazonEC2"
	row["product/sku"] = generator.UpperString(g.rnd, 12)
	row["product/storageMedia"] = "SSD-backed"
	row["product/usagetype"] = fmt.Sprintf("%s:VolumeUsage.gp2", storageRegion)
	row["product/volumeType"] = "General Purpose"
	row["pricing/publicOnDemandCost"] = generator.FormatDecimal(cost)
	row["pricing/publicOnDemandRate"] = generator.FormatDecimal(g.rate)
	row["pricing/term"] = "OnDemand"
	row["pricing/unit"] = "GB-Mo"
	row["resourceTags/user:environment"] = g.pickTag("resourceTags/user:environment",
		[]string{"dev", "ci", "qa", "stage", "prod"})
	row["resourceTags/user:version"] = g.pickTag("resourceTags/user:version",
		[]string{"alpha", "beta"})
	return nil
}

// GenerateData produces all block-storage rows for the timeline.
func (g *EBSGenerator) GenerateData() ([]generator.Row, error) {
	return g.generateHourly(g.updateRow)
}
