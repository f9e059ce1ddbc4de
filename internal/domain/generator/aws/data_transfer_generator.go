package aws

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/shopspring/decimal"
)

var transferDirections = []string{"In", "Out"}

// DataTransferGenerator produces inter-region data transfer usage rows.
type DataTransferGenerator struct {
	base
	amount decimal.Decimal
	rate   decimal.Decimal
}

// NewDataTransferGenerator samples the transferred volume and rate once.
func NewDataTransferGenerator(start, end time.Time, payer string, usageAccounts []string, attrs *generator.Attributes, rnd *rand.Rand) (*DataTransferGenerator, error) {
	b, err := newBase(start, end, payer, usageAccounts, attrs, rnd)
	if err != nil {
		return nil, err
	}

	g := &DataTransferGenerator{
		base:   b,
		amount: generator.Uniform(rnd, 0.000002, 0.09, 9),
		rate:   generator.Uniform(rnd, 0.12, 0.19, 3),
	}
	if attrs != nil {
		if attrs.Amount != nil {
			g.amount = *attrs.Amount
		}
		if attrs.Rate != nil {
			g.rate = *attrs.Rate
		}
	}
	return g, nil
}

func (g *DataTransferGenerator) updateRow(row generator.Row, start, end time.Time) error {
	if err := g.addCommonUsageInfo(row, start, end); err != nil {
		return err
	}

	cost := g.amount.Mul(g.rate)
	location1, awsRegion, availZone, storageRegion1 := g.location()
	location2, _, _, storageRegion2 := g.location()
	direction := generator.Choice(g.rnd, transferDirections)
	transType := fmt.Sprintf("%s-%s-AWS-%s-Bytes", storageRegion1, storageRegion2, direction)

	row["lineItem/ProductCode"] = "AmazonEC2"
	row["lineItem/UsageType"] = transType
	row["lineItem/Operation"] = "PublicIP-In"
	row["lineItem/AvailabilityZone"] = availZone
	row["lineItem/ResourceId"] = "i-" + generator.Digits(g.rnd, 17)
	row["lineItem/UsageAmount"] = generator.FormatDecimal(g.amount)
	row["lineItem/CurrencyCode"] = "USD"
	row["lineItem/UnblendedRate"] = generator.FormatDecimal(g.rate)
	row["lineItem/UnblendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/BlendedRate"] = generator.FormatDecimal(g.rate)
	row["lineItem/BlendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/LineItemDescription"] = fmt.Sprintf("$%s per GB - %s data transfer to %s",
		generator.FormatDecimal(g.rate), location1, location2)
	row["product/ProductName"] = "Amazon Elastic Compute Cloud"
	row["product/fromLocation"] = location1
	row["product/fromLocationType"] = "AWS Region"
	row["product/location"] = location1
	row["product/locationType"] = "AWS Region"
	row["product/productFamily"] = "Data Transfer"
	row["product/region"] = awsRegion
	row["product/servicecode"] = "AWSDataTransfer"
	row["product/sku"] = generator.UpperString(g.rnd, 12)
	row["product/toLocation"] = location2
	row["product/toLocationType"] = "AWS Region"
	row["product/transferType"] = "InterRegion Inbound"
	row["product/usagetype"] = transType
	row["pricing/publicOnDemandCost"] = generator.FormatDecimal(cost)
	row["pricing/publicOnDemandRate"] = generator.FormatDecimal(g.rate)
	row["pricing/term"] = "OnDemand"
	row["pricing/unit"] = "GB"
	row["resourceTags/user:environment"] = g.pickTag("resourceTags/user:environment",
		[]string{"dev", "ci", "qa", "stage", "prod"})
	row["resourceTags/user:version"] = g.pickTag("resourceTags/user:version",
		[]string{"alpha", "beta"})
	return nil
}

// GenerateData produces all data-transfer rows for the timeline.
func (g *DataTransferGenerator) GenerateData() ([]generator.Row, error) {
	return g.generateHourly(g.updateRow)
}
