package repository

import (
	"github.com/costsynth/costsynth-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading static report
// configuration files.
type ConfigRepository interface {
	LoadStaticReportFile(filePath string) (*types.StaticReportConfig, error)
}
