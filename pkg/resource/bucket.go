package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

// BucketConfig locates extracted images in an S3-compatible bucket.
type BucketConfig struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	UseSSL    bool   `toml:"use_ssl"`
}

// BucketSource lists images stored under a prefix of an S3 or MinIO bucket.
type BucketSource struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewBucketSource validates cfg and creates the object store client. No
// request is made until List.
func NewBucketSource(cfg BucketConfig) (*BucketSource, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "bucket endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "bucket access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "bucket name is required")
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
		return nil, ferrors.Wrap(ferrors.ErrCodeStorage, err, "init bucket client")
	}
	return &BucketSource{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(cfg.Prefix),
	}, nil
}

// List returns the images directly under the configured prefix. Unlike
// [DirSource], a missing bucket is an error.
func (s *BucketSource) List(ctx context.Context) ([]scaffold.ExternalResource, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix}) {
		if obj.Err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeStorage, obj.Err, "list %s/%s", s.bucket, s.prefix)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	return FromNames(names), nil
}

func (s *BucketSource) String() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

var _ Source = (*BucketSource)(nil)
