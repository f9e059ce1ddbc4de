package types

import "time"

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	StartDate        time.Time
	EndDate          time.Time
	StaticReportFile string
	Dir              string
	Seed             int64
	SummaryFormat    []string

	// AWS report options
	AWSReportName   string
	AWSBucketName   string
	AWSPrefixName   string
	AWSFinalizeMode string

	// OCP report options
	OCPClusterID   string
	InsightsUpload string
}
