// Package delivery implementa o roteamento de artefatos: diretório local ou
// colaborador remoto (bucket S3 para relatórios AWS, serviço de ingestão para
// payloads OCP). A decisão local-vs-remoto é um único ponto compartilhado:
// se o destino existe como diretório local, a entrega é uma cópia.
package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/costsynth/costsynth-go/internal/domain/repository"
	"github.com/costsynth/costsynth-go/internal/shared/types"
)

const insightsContentType = "application/vnd.redhat.hccm.tar+tgz"

// InsightsCredentials autentica o envio ao serviço de ingestão. Preenchido
// pela camada de CLI, nunca lido do ambiente aqui dentro.
type InsightsCredentials struct {
	User     string
	Password string
}

// DeliveryRepositoryImpl implementa o DeliveryRepository com cache do cliente S3.
type DeliveryRepositoryImpl struct {
	console       types.ConsoleInterface
	insightsCreds InsightsCredentials
	httpClient    *http.Client

	mu       sync.Mutex
	s3Client *s3.Client
}

// NewDeliveryRepository cria uma nova implementação do DeliveryRepository.
func NewDeliveryRepository(console types.ConsoleInterface, creds InsightsCredentials) repository.DeliveryRepository {
	return &DeliveryRepositoryImpl{
		console:       console,
		insightsCreds: creds,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *DeliveryRepositoryImpl) getS3Client(ctx context.Context) (*s3.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.s3Client != nil {
		return r.s3Client, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	r.s3Client = s3.NewFromConfig(cfg)
	return r.s3Client, nil
}

// isLocalDir é o ponto de decisão compartilhado entre os dois pipelines.
func isLocalDir(destination string) bool {
	info, err := os.Stat(destination)
	return err == nil && info.IsDir()
}

// copyToLocalDir copia o payload preservando a estrutura relativa do objeto.
func copyToLocalDir(destDir, objectKey, localPath string) error {
	target := filepath.Join(destDir, filepath.FromSlash(objectKey))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("error creating destination directory: %w", err)
	}

	in, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("error opening payload: %w", err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("error creating destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("error copying payload to %s: %w", target, err)
	}
	return nil
}

// RouteObject delivers one object either to a local directory or to an S3
// bucket. Remote failures are logged as diagnostics and swallowed; callers
// have no retry to drive.
func (r *DeliveryRepositoryImpl) RouteObject(ctx context.Context, destination, objectKey, localPath string) error {
	if isLocalDir(destination) {
		if err := copyToLocalDir(destination, objectKey, localPath); err != nil {
			return err
		}
		r.console.LogSuccess("Copied %s to %s", objectKey, destination)
		return nil
	}

	client, err := r.getS3Client(ctx)
	if err != nil {
		r.console.LogError("S3 client unavailable: %s", err)
		return nil
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("error opening payload for upload: %w", err)
	}
	defer file.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(destination),
		Key:    aws.String(objectKey),
		Body:   file,
	})
	if err != nil {
		r.console.LogError("Failed to upload %s to bucket %s: %s", objectKey, destination, err)
		return nil
	}

	r.console.LogSuccess("Uploaded %s to bucket %s", objectKey, destination)
	return nil
}

// RoutePayload delivers a bundled payload archive either to a local directory
// or to the ingestion endpoint via multipart POST. An HTTP 202 is the only
// status treated as success.
func (r *DeliveryRepositoryImpl) RoutePayload(ctx context.Context, destination, localPath string) error {
	if isLocalDir(destination) {
		if err := copyToLocalDir(destination, filepath.Base(localPath), localPath); err != nil {
			return err
		}
		r.console.LogSuccess("Copied payload to %s", destination)
		return nil
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("error opening payload for upload: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="upload"; filename="payload.tar.gz"`)
	header.Set("Content-Type", insightsContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("error building multipart payload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("error reading payload for upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error finalizing multipart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, &body)
	if err != nil {
		return fmt.Errorf("error building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(r.insightsCreds.User, r.insightsCreds.Password)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.console.LogError("Payload upload failed: %s", err)
		return nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusAccepted {
		r.console.LogSuccess("Payload uploaded successfully.")
		r.console.Println(string(respBody))
	} else {
		r.console.LogError("%d Payload upload failed.", resp.StatusCode)
		r.console.Println(string(respBody))
	}
	return nil
}
