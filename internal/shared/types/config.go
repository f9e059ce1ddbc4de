package types

// StaticReportConfig represents a caller-declared report configuration that
// can be loaded from a TOML, YAML, or JSON file. It pins the accounts and the
// generator set instead of letting the run sample everything randomly.
type StaticReportConfig struct {
	Accounts   *AccountsConfig `json:"accounts" yaml:"accounts" toml:"accounts"`
	Generators []GeneratorSpec `json:"generators" yaml:"generators" toml:"generators"`
}

// AccountsConfig declara o pagador e as contas de uso do relatório.
type AccountsConfig struct {
	Payer string   `json:"payer" yaml:"payer" toml:"payer"`
	Usage []string `json:"usage" yaml:"usage" toml:"usage"`
}

// GeneratorSpec names one resource generator and its attribute overrides.
type GeneratorSpec struct {
	Generator  string               `json:"generator" yaml:"generator" toml:"generator"`
	Attributes *GeneratorAttributes `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// GeneratorAttributes carries the raw override values from the config file.
// Dates are strings here; parsing and validation happen before any generation
// work begins.
type GeneratorAttributes struct {
	StartDate    string            `json:"start_date" yaml:"start_date" toml:"start_date"`
	EndDate      string            `json:"end_date" yaml:"end_date" toml:"end_date"`
	Amount       *float64          `json:"amount" yaml:"amount" toml:"amount"`
	Rate         *float64          `json:"rate" yaml:"rate" toml:"rate"`
	ProductSku   string            `json:"product_sku" yaml:"product_sku" toml:"product_sku"`
	ResourceID   string            `json:"resource_id" yaml:"resource_id" toml:"resource_id"`
	InstanceType string            `json:"instance_type" yaml:"instance_type" toml:"instance_type"`
	Tags         map[string]string `json:"tags" yaml:"tags" toml:"tags"`
}
