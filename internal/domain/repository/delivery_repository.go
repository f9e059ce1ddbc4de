package repository

import "context"

// DeliveryRepository routes built artifacts to their destination. When the
// destination resolves to an existing local directory the payload is copied
// into it preserving its relative path; otherwise the payload is handed to
// the remote collaborator. Remote failures are reported as diagnostics, not
// returned as errors.
type DeliveryRepository interface {
	// RouteObject delivers a payload to destination under the given object
	// key (AWS-style: local dir or S3 bucket).
	RouteObject(ctx context.Context, destination, objectKey, localPath string) error

	// RoutePayload delivers a bundled payload archive to destination
	// (OCP-style: local dir or ingestion endpoint).
	RoutePayload(ctx context.Context, destination, localPath string) error
}
