package entity

import (
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// ManifestPeriod delimita o período de faturamento no formato fixo do
// manifesto ("20060102T150405.000Z").
type ManifestPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AWSManifest is the sidecar descriptor delivered next to a compressed CUR
// file. It lives only for one delivery attempt.
type AWSManifest struct {
	AssemblyID    string         `json:"assemblyId"`
	Account       string         `json:"account"`
	Columns       []string       `json:"columns"`
	BillingPeriod ManifestPeriod `json:"billingPeriod"`
	Bucket        string         `json:"bucket"`
	ReportKeys    []string       `json:"reportKeys"`
	Compression   string         `json:"compression"`
	ReportName    string         `json:"reportName"`
}

func manifestTimestamp(in time.Time) string {
	return in.Format("20060102T150405") + ".000Z"
}

// NewAWSManifest builds the manifest for one month and the object key where
// the compressed report lands:
//
//	{prefix}/{report_name}/{YYYYMMDD}-{YYYYMMDD}/{assembly_id}/{report_name}-1.csv.gz
func NewAWSManifest(bucket, reportName, prefix, payerAccount string, columns []string, start, end time.Time) (string, AWSManifest) {
	assemblyID := uuid.New().String()
	dateRange := fmt.Sprintf("%s-%s", start.Format("20060102"), end.Format("20060102"))
	reportKey := path.Join(prefix, reportName, dateRange, assemblyID, reportName+"-1.csv.gz")

	manifest := AWSManifest{
		AssemblyID: assemblyID,
		Account:    payerAccount,
		Columns:    columns,
		BillingPeriod: ManifestPeriod{
			Start: manifestTimestamp(start),
			End:   manifestTimestamp(end),
		},
		Bucket:      bucket,
		ReportKeys:  []string{reportKey},
		Compression: "GZIP",
		ReportName:  reportName,
	}
	return reportKey, manifest
}

// JSON serializa o manifesto para entrega.
func (m AWSManifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// OCPManifest is the descriptor bundled into an OCP payload archive.
type OCPManifest struct {
	UUID      string   `json:"uuid"`
	ClusterID string   `json:"cluster_id"`
	Date      string   `json:"date"`
	Files     []string `json:"files"`
}

// NewOCPManifest builds the manifest for one month's payload. The assembly id
// names both the manifest and the report file inside the bundle.
func NewOCPManifest(clusterID, assemblyID string, reportDatetime time.Time, files []string) OCPManifest {
	return OCPManifest{
		UUID:      assemblyID,
		ClusterID: clusterID,
		Date:      reportDatetime.Format("2006-01-02 15:04:05"),
		Files:     files,
	}
}

// JSON serializa o manifesto para entrega.
func (m OCPManifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
