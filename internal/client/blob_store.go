package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3BlobStore stores receipts and payment proofs in an S3 bucket.
type S3BlobStore struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

// S3BlobStoreConfig holds configuration for S3BlobStore.
type S3BlobStoreConfig struct {
	Bucket        string
	Region        string
	Endpoint      string // optional, for MinIO or LocalStack
	Prefix        string
	PublicBaseURL string // optional CDN or bucket website URL
}

// NewS3BlobStore creates an S3-backed blob store.
func NewS3BlobStore(ctx context.Context, cfg S3BlobStoreConfig) (*S3BlobStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		switch {
		case cfg.Endpoint != "":
			baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		default:
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3BlobStore{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes body to the bucket under path.
func (s *S3BlobStore) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.prefix + path),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put failed: %w", err)
	}
	return nil
}

// PublicURL returns the address a stored object is served from.
func (s *S3BlobStore) PublicURL(path string) string {
	return publicURL(s.baseURL, s.prefix+path)
}

// MemoryBlobStore keeps uploads in memory. Used when no bucket is configured
// and in tests.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryBlobStore creates an empty in-memory blob store.
func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	return &MemoryBlobStore{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores body under path.
func (m *MemoryBlobStore) Upload(_ context.Context, path string, body io.Reader, size int64, contentType string) error {
	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(&buf, body); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = memoryObject{data: buf.Bytes(), contentType: contentType}
	return nil
}

// PublicURL returns the address of path under the base URL.
func (m *MemoryBlobStore) PublicURL(path string) string {
	return publicURL(m.baseURL, path)
}

// Get returns a stored object and its content type.
func (m *MemoryBlobStore) Get(path string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[path]
	return obj.data, obj.contentType, ok
}

func publicURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + strings.Join(segments, "/")
}
