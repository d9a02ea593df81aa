package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"shortsfactory/config"
)

// ArtifactStore mirrors finished videos, thumbnails and timeline sidecars
// to an S3 bucket. It is optional; the pipeline works purely on local disk
// when no bucket is configured.
type ArtifactStore struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewArtifactStoreFromEnv builds a store from S3_BUCKET, S3_REGION,
// S3_PROFILE, S3_PREFIX and S3_USE_PATH_STYLE. Returns nil when no bucket
// is configured.
func NewArtifactStoreFromEnv(ctx context.Context) (*ArtifactStore, error) {
	bucket := config.GetEnvOrDefault("S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region := config.GetEnvOrDefault("S3_REGION", ""); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if profile := config.GetEnvOrDefault("S3_PROFILE", ""); profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = config.GetEnvBool("S3_USE_PATH_STYLE")
	})

	prefix := strings.Trim(config.GetEnvOrDefault("S3_PREFIX", ""), "/")
	if prefix != "" {
		prefix += "/"
	}
	return &ArtifactStore{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectKey is the bucket key a local artifact is mirrored under.
func (a *ArtifactStore) ObjectKey(jobID, localPath string) string {
	return a.prefix + path.Join("videos", jobID, path.Base(localPath))
}

// UploadFile streams a local file to the bucket under the job's prefix and
// returns the object key.
func (a *ArtifactStore) UploadFile(ctx context.Context, jobID, localPath, contentType string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	key := a.ObjectKey(jobID, localPath)
	in := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := a.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// Exists reports whether an object is already in the bucket.
func (a *ArtifactStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}
