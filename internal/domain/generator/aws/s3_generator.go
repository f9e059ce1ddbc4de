package aws

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/costsynth/costsynth-go/internal/domain/generator"
	"github.com/shopspring/decimal"
)

// S3Generator produces object-storage usage rows.
type S3Generator struct {
	base
	amount     decimal.Decimal
	rate       decimal.Decimal
	productSku string
}

// NewS3Generator samples the amount, rate, and SKU up front, then lets
// attribute overrides replace any of them verbatim.
func NewS3Generator(start, end time.Time, payer string, usageAccounts []string, attrs *generator.Attributes, rnd *rand.Rand) (*S3Generator, error) {
	b, err := newBase(start, end, payer, usageAccounts, attrs, rnd)
	if err != nil {
		return nil, err
	}

	g := &S3Generator{
		base:       b,
		amount:     generator.Uniform(rnd, 0.2, 6000.99, 6),
		rate:       generator.Uniform(rnd, 0.02, 0.06, 3),
		productSku: generator.UpperString(rnd, 12),
	}
	if attrs != nil {
		if attrs.Amount != nil {
			g.amount = *attrs.Amount
		}
		if attrs.Rate != nil {
			g.rate = *attrs.Rate
		}
		if attrs.ProductSku != "" {
			g.productSku = attrs.ProductSku
		}
	}
	return g, nil
}

// arn cria um Amazon Resource Name de snapshot para a zona informada.
func (g *S3Generator) arn(availZone string) string {
	return fmt.Sprintf("arn:aws:ec2:%s:%s:snapshot/snap-%s", availZone, g.payerAccount, generator.EAN8(g.rnd))
}

func (g *S3Generator) updateRow(row generator.Row, start, end time.Time) error {
	if err := g.addCommonUsageInfo(row, start, end); err != nil {
		return err
	}

	// O custo deriva do mesmo amount/rate gravados nas colunas de rate, o que
	// mantém cada linha internamente consistente.
	cost := g.amount.Mul(g.rate)
	location, awsRegion, availZone, _ := g.location()
	description := fmt.Sprintf("$%s per GB-Month of snapshot data stored - %s", generator.FormatDecimal(g.rate), location)

	row["lineItem/ProductCode"] = "AmazonS3"
	row["lineItem/UsageType"] = "Requests-Tier2"
	row["lineItem/Operation"] = "GetObject"
	row["lineItem/ResourceId"] = g.arn(availZone)
	row["lineItem/UsageAmount"] = generator.FormatDecimal(g.amount)
	row["lineItem/CurrencyCode"] = "USD"
	row["lineItem/UnblendedRate"] = generator.FormatDecimal(g.rate)
	row["lineItem/UnblendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/BlendedRate"] = generator.FormatDecimal(g.rate)
	row["lineItem/BlendedCost"] = generator.FormatDecimal(cost)
	row["lineItem/LineItemDescription"] = description
	row["product/ProductName"] = "Amazon Simple Storage Service"
	row["product/location"] = location
	row["product/locationType"] = "AWS Region"
	row["product/productFamily"] = "Storage Snapshot"
	row["product/region"] = awsRegion
	row["product/servicecode"] = "AmazonS3"
	row["product/sku"] = g.productSku
	row["product/storageMedia"] = "Amazon S3"
	row["product/usagetype"] = "Requests-Tier2"
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

// GenerateData produces all object-storage rows for the timeline.
func (g *S3Generator) GenerateData() ([]generator.Row, error) {
	return g.generateHourly(g.updateRow)
}
