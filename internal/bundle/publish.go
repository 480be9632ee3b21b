package bundle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PublishConfig describes an S3-compatible destination.
type PublishConfig struct {
	Endpoint    string
	Region      string
	AccessKey   string
	SecretKey   string
	Bucket      string
	Prefix      string
	UseSSL      bool
	Concurrency int
}

// objectStore is the subset of *minio.Client the publisher uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Publisher uploads bundles to object storage.
type Publisher struct {
	client      objectStore
	bucket      string
	region      string
	prefix      string
	concurrency int
	logger      *zap.Logger

	bucketMu    sync.Mutex
	bucketReady bool
}

// NewPublisher creates a minio-backed publisher. logger may be nil.
func NewPublisher(cfg PublishConfig, logger *zap.Logger) (*Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access, secret := strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return newPublisher(client, cfg.Bucket, region, cfg.Prefix, cfg.Concurrency, logger)
}

func newPublisher(client objectStore, bucket, region, prefix string, concurrency int, logger *zap.Logger) (*Publisher, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client:      client,
		bucket:      bucket,
		region:      region,
		prefix:      strings.Trim(prefix, "/"),
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

// ensureBucket creates the bucket on first use. Only a successful check is
// remembered; a failed one is tried again on the next Publish.
func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.bucketMu.Lock()
	defer p.bucketMu.Unlock()
	if p.bucketReady {
		return nil
	}

	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
			return err
		}
	}
	p.bucketReady = true
	return nil
}

// Key returns the object key for a bundle path under runID.
func (p *Publisher) Key(runID, rel string) string {
	return path.Join(p.prefix, runID, rel)
}

// Publish uploads every file under <prefix>/<runID>/ and returns the keys in
// manifest order. The first failed upload cancels the rest.
func (p *Publisher) Publish(ctx context.Context, runID string, m Manifest) ([]string, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run id is required")
	}
	if err := p.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	keys := make([]string, len(m.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, f := range m.Files {
		keys[i] = p.Key(runID, f.Path)
		g.Go(func() error {
			_, err := p.client.PutObject(gctx, p.bucket, keys[i], bytes.NewReader(f.Content), int64(len(f.Content)),
				minio.PutObjectOptions{ContentType: contentType(f.Path)})
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Path, err)
			}
			p.logger.Debug("uploaded bundle file", zap.String("key", keys[i]), zap.Int("bytes", len(f.Content)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

func contentType(name string) string {
	switch ext := path.Ext(name); ext {
	case ".md", "":
		return "text/markdown; charset=utf-8"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
