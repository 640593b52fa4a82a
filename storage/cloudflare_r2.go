package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type CloudflareR2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// Endpoint переопределяет https://<account>.r2.cloudflarestorage.com (например, для minio).
	Endpoint string
}

type r2ImageSource struct {
	s3Client   *s3.Client
	bucketName string
}

func NewCloudflareR2ImageSource(ctx context.Context, cfg CloudflareR2Config) (ImageSource, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" || (cfg.AccountID == "" && cfg.Endpoint == "") {
		return nil, errors.New("invalid Cloudflare R2 configuration: credentials, bucket and account or endpoint are required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"), // R2 подписывает запросы с регионом "auto"
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &r2ImageSource{s3Client: client, bucketName: cfg.BucketName}, nil
}

func (s *r2ImageSource) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in R2 (prefix: %s): %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || (obj.Size != nil && *obj.Size == 0) {
				continue // "папки" в R2 - пустые объекты
			}
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

func (s *r2ImageSource) Get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", fmt.Errorf("%w: %s", ErrImageNotFound, key)
		}
		return nil, "", fmt.Errorf("failed to get object from R2 (key: %s): %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read object body from R2 (key: %s): %w", key, err)
	}
	return data, aws.ToString(out.ContentType), nil
}
