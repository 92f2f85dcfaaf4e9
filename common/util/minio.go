package util

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sunthewhat/easy-cert-render/common"
)

// ArtifactStore persists rendered certificates and returns their public URL.
type ArtifactStore interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

func InitMinIO() error {
	if common.Config.MinIoEndpoint == nil || common.Config.MinIoAccessKey == nil || common.Config.MinIoSecretKey == nil {
		return fmt.Errorf("MinIO configuration is incomplete")
	}

	secure := true
	if common.Config.MinIoSecure != nil {
		secure = *common.Config.MinIoSecure
	}

	client, err := minio.New(*common.Config.MinIoEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(*common.Config.MinIoAccessKey, *common.Config.MinIoSecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	common.MinIOClient = client
	return nil
}

// MinIOStore writes artifacts into one public bucket.
type MinIOStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	secure   bool
}

func NewMinIOStore(client *minio.Client, endpoint string, bucket string, secure bool) *MinIOStore {
	return &MinIOStore{
		client:   client,
		endpoint: endpoint,
		bucket:   bucket,
		secure:   secure,
	}
}

var _ ArtifactStore = (*MinIOStore)(nil)

func (s *MinIOStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return ObjectURL(s.endpoint, s.bucket, objectName, s.secure), nil
}

func (s *MinIOStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	if err := s.client.SetBucketPolicy(ctx, s.bucket, publicReadPolicy(s.bucket)); err != nil {
		slog.Warn("MinIO Failed to set public read policy", "error", err, "bucket", s.bucket)
	}
	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

func ObjectURL(endpoint string, bucket string, objectName string, secure bool) string {
	scheme := "https"
	if !secure {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, objectName)
}

var unsafeObjectChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeObjectName reduces a client supplied name to a single object key
// segment that is also a safe zip entry name.
func SafeObjectName(name string) string {
	name = unsafeObjectChars.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "..", "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "_"
	}
	return name
}

// ExtractObjectNameFromURL extracts the object name from a MinIO URL
// Example: https://endpoint/bucket/path/to/file.pdf -> path/to/file.pdf
func ExtractObjectNameFromURL(url string, bucketName string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("URL is empty")
	}

	bucketPrefix := fmt.Sprintf("/%s/", bucketName)
	idx := strings.Index(url, bucketPrefix)
	if idx == -1 {
		return "", fmt.Errorf("bucket name not found in URL")
	}

	objectName := url[idx+len(bucketPrefix):]
	if objectName == "" {
		return "", fmt.Errorf("object name is empty")
	}

	return objectName, nil
}

// MockArtifactStore is a mock implementation for testing
type MockArtifactStore struct {
	PutFunc func(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

var _ ArtifactStore = (*MockArtifactStore)(nil)

func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{}
}

func (m *MockArtifactStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, objectName, data, contentType)
	}
	return ObjectURL("minio.test", "certificates", objectName, true), nil
}
