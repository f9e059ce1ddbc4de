package generator

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attributes pins generator output values that would otherwise be sampled
// randomly. A nil *Attributes means the generator is fully random; a non-nil
// value, even an empty one, marks the generator as caller-constrained, which
// also changes the tag selection policy.
type Attributes struct {
	StartDate    time.Time
	EndDate      time.Time
	Amount       *decimal.Decimal
	Rate         *decimal.Decimal
	ProductSku   string
	ResourceID   string
	InstanceType string
	Tags         map[string]string
}

// Spec couples a registered generator name with its attribute overrides.
// Consumed once per month iteration to build a fresh generator instance.
type Spec struct {
	Name       string
	Attributes *Attributes
}
