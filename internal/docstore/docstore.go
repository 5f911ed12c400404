// Package docstore archives uploaded résumé documents in S3-compatible
// object storage. Archiving is optional and best-effort: the analysis flow
// proceeds whether or not an archive is configured.
package docstore

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds connection settings for the object store. Endpoint overrides
// the AWS default for S3-compatible providers such as Cloudflare R2.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Archive stores résumé source documents. A nil Archive is a no-op, so
// callers don't need to guard for the unconfigured case.
type Archive struct {
	client *s3.Client
	bucket string
}

// New creates an archive for the configured bucket.
func New(ctx context.Context, cfg Config) (*Archive, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &Archive{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// ObjectKey builds the storage key for a profile's source document,
// keeping the original file extension.
func ObjectKey(profileID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "resumes/" + profileID.String() + ext
}

// Store uploads the source document for a profile and returns the object
// key. A nil archive returns an empty key without error.
func (a *Archive) Store(ctx context.Context, profileID uuid.UUID, filename string, data []byte) (string, error) {
	if a == nil || a.client == nil {
		return "", nil
	}

	key := ObjectKey(profileID, filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
