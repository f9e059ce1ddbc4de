package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStaticReportFile(t *testing.T) {
	repo := NewConfigRepository()
	dir := t.TempDir()

	t.Run("loads YAML configuration", func(t *testing.T) {
		content := `
accounts:
  payer: "9780201379624"
  usage:
    - "9780201379624"
    - "9780201379617"
generators:
  - generator: S3Generator
    attributes:
      start_date: "2024-06-01"
      amount: 100
      rate: 0.05
      tags:
        "resourceTags/user:environment": prod
  - generator: EC2Generator
`
		path := filepath.Join(dir, "static.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := repo.LoadStaticReportFile(path)

		require.NoError(t, err)
		require.NotNil(t, config.Accounts)
		assert.Equal(t, "9780201379624", config.Accounts.Payer)
		assert.Len(t, config.Accounts.Usage, 2)

		require.Len(t, config.Generators, 2)
		assert.Equal(t, "S3Generator", config.Generators[0].Generator)
		require.NotNil(t, config.Generators[0].Attributes)
		assert.Equal(t, "2024-06-01", config.Generators[0].Attributes.StartDate)
		require.NotNil(t, config.Generators[0].Attributes.Amount)
		assert.Equal(t, 100.0, *config.Generators[0].Attributes.Amount)
		assert.Equal(t, "prod", config.Generators[0].Attributes.Tags["resourceTags/user:environment"])
		assert.Nil(t, config.Generators[1].Attributes)
	})

	t.Run("loads JSON configuration", func(t *testing.T) {
		content := `{
  "generators": [
    {"generator": "OCPGenerator", "attributes": {"resource_id": "abc123"}}
  ]
}`
		path := filepath.Join(dir, "static.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := repo.LoadStaticReportFile(path)

		require.NoError(t, err)
		require.Len(t, config.Generators, 1)
		assert.Equal(t, "abc123", config.Generators[0].Attributes.ResourceID)
	})

	t.Run("loads TOML configuration", func(t *testing.T) {
		content := `
[accounts]
payer = "1111111111111"
usage = ["1111111111111"]

[[generators]]
generator = "EBSGenerator"

[generators.attributes]
rate = 0.16
`
		path := filepath.Join(dir, "static.toml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		config, err := repo.LoadStaticReportFile(path)

		require.NoError(t, err)
		assert.Equal(t, "1111111111111", config.Accounts.Payer)
		require.Len(t, config.Generators, 1)
		require.NotNil(t, config.Generators[0].Attributes.Rate)
		assert.Equal(t, 0.16, *config.Generators[0].Attributes.Rate)
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		path := filepath.Join(dir, "static.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

		_, err := repo.LoadStaticReportFile(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported")
	})

	t.Run("rejects missing files", func(t *testing.T) {
		_, err := repo.LoadStaticReportFile(filepath.Join(dir, "nope.yml"))

		assert.Error(t, err)
	})

	t.Run("rejects directories", func(t *testing.T) {
		sub := filepath.Join(dir, "conf.yaml")
		require.NoError(t, os.Mkdir(sub, 0755))

		_, err := repo.LoadStaticReportFile(sub)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})
}
